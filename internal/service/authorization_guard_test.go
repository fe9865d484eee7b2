package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tdnghia98/Caracal/internal/apperror"
	"github.com/tdnghia98/Caracal/internal/auth"
	"github.com/tdnghia98/Caracal/internal/model"
)

func TestGuardResolvesAdminProfile(t *testing.T) {
	adminID := uuid.NewString()
	authSvc := &fakeAuthService{callers: map[string]auth.Identity{
		adminToken: {ID: adminID, Email: "admin@school.test"},
	}}
	profileRepo := newFakeProfileRepo()
	profileRepo.profiles[adminID] = model.UserProfile{
		ID: adminID, SchoolID: 7, Role: model.RoleSchoolAdmin, FullName: "The Admin",
	}
	guard := NewAuthorizationGuard(authSvc, profileRepo)

	profile, err := guard.RequireSchoolAdmin(context.Background(), adminToken)
	require.NoError(t, err)
	require.EqualValues(t, 7, profile.SchoolID)
	require.Equal(t, model.RoleSchoolAdmin, profile.Role)
}

func TestGuardOutcomes(t *testing.T) {
	adminID := uuid.NewString()
	orphanID := uuid.NewString()
	teacherID := uuid.NewString()

	authSvc := &fakeAuthService{callers: map[string]auth.Identity{
		adminToken:     {ID: adminID, Email: "admin@school.test"},
		"orphan-token": {ID: orphanID, Email: "orphan@school.test"},
		teacherToken:   {ID: teacherID, Email: "teacher@school.test"},
	}}
	profileRepo := newFakeProfileRepo()
	profileRepo.profiles[adminID] = model.UserProfile{ID: adminID, Role: model.RoleSchoolAdmin}
	profileRepo.profiles[teacherID] = model.UserProfile{ID: teacherID, Role: model.RoleTeacher}
	guard := NewAuthorizationGuard(authSvc, profileRepo)

	cases := []struct {
		name  string
		token string
		want  error
	}{
		{"no credential", "", apperror.ErrNotAuthenticated},
		{"unknown credential", "garbage", apperror.ErrNotAuthenticated},
		{"identity without profile", "orphan-token", apperror.ErrProfileNotFound},
		{"wrong role", teacherToken, apperror.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := guard.RequireSchoolAdmin(context.Background(), tc.token)
			require.ErrorIs(t, err, tc.want)
		})
	}
}
