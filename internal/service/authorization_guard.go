package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/tdnghia98/Caracal/internal/apperror"
	"github.com/tdnghia98/Caracal/internal/auth"
	"github.com/tdnghia98/Caracal/internal/model"
	"github.com/tdnghia98/Caracal/internal/repository"
)

// AuthorizationGuard resolves the caller's own profile before any privileged
// write runs. The caller's token is only used to find out who they are; the
// role decision is made against the authoritative profile row read with the
// elevated store handle, never against a claim inside the token itself.
type AuthorizationGuard interface {
	// RequireSchoolAdmin returns the caller's profile when its role is
	// school_admin, or one of apperror.ErrNotAuthenticated,
	// apperror.ErrProfileNotFound, apperror.ErrForbidden.
	RequireSchoolAdmin(ctx context.Context, token string) (*model.UserProfile, error)
}

type authorizationGuard struct {
	authSvc     auth.Service
	profileRepo repository.UserProfileRepository
}

func NewAuthorizationGuard(authSvc auth.Service, profileRepo repository.UserProfileRepository) AuthorizationGuard {
	return &authorizationGuard{authSvc: authSvc, profileRepo: profileRepo}
}

func (g *authorizationGuard) RequireSchoolAdmin(ctx context.Context, token string) (*model.UserProfile, error) {
	identity, err := g.authSvc.GetCallerIdentity(ctx, token)
	if err != nil {
		if errors.Is(err, apperror.ErrNotAuthenticated) {
			return nil, apperror.ErrNotAuthenticated
		}
		log.Error().Err(err).Msg("RequireSchoolAdmin: identity lookup failed")
		return nil, err
	}

	profile, err := g.profileRepo.FindByID(identity.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// A valid credential with no profile row is a data-integrity
			// anomaly, reported as such rather than as an auth failure.
			log.Warn().Str("auth_user_id", identity.ID).Msg("RequireSchoolAdmin: identity has no profile row")
			return nil, apperror.ErrProfileNotFound
		}
		return nil, err
	}

	if profile.Role != model.RoleSchoolAdmin {
		log.Warn().Str("auth_user_id", identity.ID).Str("role", string(profile.Role)).Msg("RequireSchoolAdmin: caller is not a school admin")
		return nil, apperror.ErrForbidden
	}

	return profile, nil
}
