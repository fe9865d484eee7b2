package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/tdnghia98/Caracal/internal/apperror"
	"github.com/tdnghia98/Caracal/internal/dto"
)

// stubProvisioningService returns a canned outcome per test case.
type stubProvisioningService struct {
	provisionErr error
	resp         *dto.ProvisionTeacherResponse
}

func (s *stubProvisioningService) ProvisionTeacher(_ context.Context, _ string, _ dto.ProvisionTeacherRequest) (*dto.ProvisionTeacherResponse, error) {
	if s.provisionErr != nil {
		return nil, s.provisionErr
	}
	return s.resp, nil
}

func (s *stubProvisioningService) RepairProfile(_ context.Context, _ string, authUserID string, req dto.RepairProfileRequest) (*dto.UserProfileResponse, error) {
	return &dto.UserProfileResponse{ID: authUserID, Role: "teacher", FullName: req.FullName}, nil
}

func (s *stubProvisioningService) ListOrphanIdentities(_ context.Context, _ string) ([]dto.OrphanIdentityResponse, error) {
	return []dto.OrphanIdentityResponse{}, nil
}

func newRouter(svc *stubProvisioningService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.HandleMethodNotAllowed = true
	ctrl := NewProvisioningController(svc)
	r.POST("/api/v1/admin/teachers", ctrl.ProvisionTeacher)
	r.PUT("/api/v1/admin/teachers/:id/profile", ctrl.RepairProfile)
	r.GET("/api/v1/admin/teachers/orphans", ctrl.ListOrphanIdentities)
	return r
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const provisionBody = `{"email":"t@school.test","password":"temp-password","full_name":"A Teacher"}`

func TestProvisionTeacherStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"validation", &apperror.ValidationError{Field: "email", Rule: "must be a valid email address"}, http.StatusBadRequest},
		{"unauthenticated", apperror.ErrNotAuthenticated, http.StatusUnauthorized},
		{"forbidden", apperror.ErrForbidden, http.StatusForbidden},
		{"profile anomaly", apperror.ErrProfileNotFound, http.StatusInternalServerError},
		{"store failure", &apperror.StoreWriteError{Op: "create identity", Err: errors.New("down")}, http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newRouter(&stubProvisioningService{provisionErr: tc.err})
			w := doRequest(r, http.MethodPost, "/api/v1/admin/teachers", provisionBody)
			require.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestProvisionTeacherSuccessPayload(t *testing.T) {
	id := uuid.NewString()
	r := newRouter(&stubProvisioningService{resp: &dto.ProvisionTeacherResponse{
		AuthUserID: id,
		Email:      "t@school.test",
		Profile:    dto.UserProfileResponse{ID: id, Role: "teacher", FullName: "A Teacher"},
	}})

	w := doRequest(r, http.MethodPost, "/api/v1/admin/teachers", provisionBody)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ProvisionTeacherResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, id, resp.AuthUserID)
	require.Equal(t, "teacher", resp.Profile.Role)
}

func TestProvisionTeacherPartialFailurePayload(t *testing.T) {
	id := uuid.NewString()
	r := newRouter(&stubProvisioningService{provisionErr: &apperror.PartialProvisioningError{
		AuthUserID: id,
		Email:      "t@school.test",
		Err:        errors.New("profile write rejected"),
	}})

	w := doRequest(r, http.MethodPost, "/api/v1/admin/teachers", provisionBody)
	require.Equal(t, http.StatusInternalServerError, w.Code)

	// The 500 payload must carry the orphaned identity, distinguishing the
	// partial-success terminal from a total failure.
	var resp dto.ProvisioningErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, id, resp.AuthUserID)
	require.Equal(t, "t@school.test", resp.Email)
	require.Contains(t, resp.Error, "profile write rejected")
}

func TestProvisionTeacherWrongMethodIs405(t *testing.T) {
	r := newRouter(&stubProvisioningService{})
	w := doRequest(r, http.MethodDelete, "/api/v1/admin/teachers", "")
	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
}

func TestProvisionTeacherMalformedBodyIs400(t *testing.T) {
	r := newRouter(&stubProvisioningService{})
	w := doRequest(r, http.MethodPost, "/api/v1/admin/teachers", "{not json")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
