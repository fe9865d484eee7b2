package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"

	"github.com/tdnghia98/Caracal/internal/apperror"
	"github.com/tdnghia98/Caracal/internal/auth"
	"github.com/tdnghia98/Caracal/internal/dto"
	"github.com/tdnghia98/Caracal/internal/model"
	"github.com/tdnghia98/Caracal/internal/repository"
)

// ProvisioningService creates teacher accounts: an auth identity plus its
// linked profile row, written as two calls to two subsystems with no shared
// transaction.
//
// The flow is a linear state machine:
//
//	Validated -> AuthIdentityCreated -> ProfileSynced        (success)
//	Validated -> AuthIdentityCreated -> ProfileSyncFailed    (partial success)
//
// After the identity exists there is no rollback: the auth subsystem is not
// assumed to expose a deletion call that is safe from here, so a profile-sync
// failure is reported as a PartialProvisioningError carrying the orphaned
// identity's id and email. RepairProfile is the matching recovery path: it
// re-runs only the idempotent profile upsert. Re-running the whole flow with
// the same email is NOT safe: identity creation is not idempotent and will
// hit the email uniqueness constraint.
type ProvisioningService interface {
	ProvisionTeacher(ctx context.Context, token string, req dto.ProvisionTeacherRequest) (*dto.ProvisionTeacherResponse, error)
	RepairProfile(ctx context.Context, token string, authUserID string, req dto.RepairProfileRequest) (*dto.UserProfileResponse, error)
	ListOrphanIdentities(ctx context.Context, token string) ([]dto.OrphanIdentityResponse, error)
}

type provisioningService struct {
	guard       AuthorizationGuard
	authSvc     auth.Service
	profileRepo repository.UserProfileRepository
	validate    *validator.Validate
}

func NewProvisioningService(
	guard AuthorizationGuard,
	authSvc auth.Service,
	profileRepo repository.UserProfileRepository,
) ProvisioningService {
	return &provisioningService{
		guard:       guard,
		authSvc:     authSvc,
		profileRepo: profileRepo,
		validate:    validator.New(),
	}
}

// validateRequest checks every field rule locally, before any network call.
// A failure here guarantees zero external side effects.
func (s *provisioningService) validateRequest(req *dto.ProvisionTeacherRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if err := s.validate.Var(req.Email, "required,email"); err != nil {
		return &apperror.ValidationError{Field: "email", Rule: "must be a valid email address"}
	}
	if len(req.Password) < 8 {
		return &apperror.ValidationError{Field: "password", Rule: "must be at least 8 characters"}
	}
	req.FullName = strings.TrimSpace(req.FullName)
	if len(req.FullName) < 2 {
		return &apperror.ValidationError{Field: "full_name", Rule: "must be at least 2 characters"}
	}
	req.Phone = normalizePhone(req.Phone)
	return nil
}

func normalizePhone(phone *string) *string {
	if phone == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*phone)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (s *provisioningService) ProvisionTeacher(ctx context.Context, token string, req dto.ProvisionTeacherRequest) (*dto.ProvisionTeacherResponse, error) {
	if err := s.validateRequest(&req); err != nil {
		return nil, err
	}

	adminProfile, err := s.guard.RequireSchoolAdmin(ctx, token)
	if err != nil {
		return nil, err
	}

	// The metadata mirrors the profile for operator convenience only; the
	// profile row written below stays authoritative for access control.
	metadata := auth.Metadata{
		"role":      string(model.RoleTeacher),
		"school_id": adminProfile.SchoolID,
		"full_name": req.FullName,
	}
	if req.Phone != nil {
		metadata["phone"] = *req.Phone
	}

	identity, err := s.authSvc.CreateIdentity(ctx, req.Email, req.Password, metadata)
	if err != nil {
		// Nothing was created; the system is unchanged.
		log.Error().Err(err).Str("email", req.Email).Msg("ProvisionTeacher: identity creation failed")
		return nil, err
	}

	profile := model.UserProfile{
		ID:       identity.ID,
		SchoolID: adminProfile.SchoolID,
		Role:     model.RoleTeacher,
		FullName: req.FullName,
		Phone:    req.Phone,
	}
	if err := s.profileRepo.Upsert(&profile); err != nil {
		// Partial-success terminal: the identity exists and is not rolled
		// back. The orphaned id/email travel with the error so the profile
		// alone can be repaired later.
		log.Error().Err(err).Str("auth_user_id", identity.ID).Str("email", identity.Email).
			Msg("ProvisionTeacher: profile sync failed, identity left orphaned")
		return nil, &apperror.PartialProvisioningError{
			AuthUserID: identity.ID,
			Email:      identity.Email,
			Err:        err,
		}
	}

	log.Info().Str("auth_user_id", identity.ID).Str("email", identity.Email).
		Uint("school_id", adminProfile.SchoolID).Msg("ProvisionTeacher: teacher account provisioned")

	var profileResp dto.UserProfileResponse
	copier.Copy(&profileResp, &profile)
	return &dto.ProvisionTeacherResponse{
		AuthUserID: identity.ID,
		Email:      identity.Email,
		Profile:    profileResp,
	}, nil
}

// RepairProfile re-runs only the profile upsert for an identity that already
// exists. Because the upsert is keyed on the identity id, repeating it is safe.
func (s *provisioningService) RepairProfile(ctx context.Context, token string, authUserID string, req dto.RepairProfileRequest) (*dto.UserProfileResponse, error) {
	req.FullName = strings.TrimSpace(req.FullName)
	if len(req.FullName) < 2 {
		return nil, &apperror.ValidationError{Field: "full_name", Rule: "must be at least 2 characters"}
	}

	adminProfile, err := s.guard.RequireSchoolAdmin(ctx, token)
	if err != nil {
		return nil, err
	}

	profile := model.UserProfile{
		ID:       authUserID,
		SchoolID: adminProfile.SchoolID,
		Role:     model.RoleTeacher,
		FullName: req.FullName,
		Phone:    normalizePhone(req.Phone),
	}
	if err := s.profileRepo.Upsert(&profile); err != nil {
		log.Error().Err(err).Str("auth_user_id", authUserID).Msg("RepairProfile: profile upsert failed")
		return nil, err
	}

	log.Info().Str("auth_user_id", authUserID).Msg("RepairProfile: profile synced")
	var resp dto.UserProfileResponse
	copier.Copy(&resp, &profile)
	return &resp, nil
}

// ListOrphanIdentities reports auth identities with no linked profile row,
// the leftovers of partial provisioning failures awaiting repair.
func (s *provisioningService) ListOrphanIdentities(ctx context.Context, token string) ([]dto.OrphanIdentityResponse, error) {
	if _, err := s.guard.RequireSchoolAdmin(ctx, token); err != nil {
		return nil, err
	}

	identities, err := s.authSvc.ListIdentities(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing identities: %w", err)
	}
	profileIDs, err := s.profileRepo.FindAllIDs()
	if err != nil {
		return nil, fmt.Errorf("listing profile ids: %w", err)
	}

	linked := make(map[string]bool, len(profileIDs))
	for _, id := range profileIDs {
		linked[id] = true
	}

	orphans := make([]dto.OrphanIdentityResponse, 0)
	for _, identity := range identities {
		if !linked[identity.ID] {
			orphans = append(orphans, dto.OrphanIdentityResponse{AuthUserID: identity.ID, Email: identity.Email})
		}
	}
	return orphans, nil
}
