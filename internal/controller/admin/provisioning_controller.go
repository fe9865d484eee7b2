package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/tdnghia98/Caracal/internal/apperror"
	"github.com/tdnghia98/Caracal/internal/dto"
	"github.com/tdnghia98/Caracal/internal/service"
)

type ProvisioningController struct {
	provisioningSvc service.ProvisioningService
}

func NewProvisioningController(provisioningSvc service.ProvisioningService) *ProvisioningController {
	return &ProvisioningController{provisioningSvc: provisioningSvc}
}

// bearerToken extracts the raw credential from the Authorization header.
// Empty means no credential; the service layer turns that into 401.
func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}

// ProvisionTeacher godoc
// @Summary Provision a new teacher account
// @Description Creates an auth identity and its linked profile row for a new teacher. Caller must be a school admin.
// @Tags provisioning
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token of the calling school admin"
// @Param teacher body dto.ProvisionTeacherRequest true "New teacher data"
// @Success 200 {object} dto.ProvisionTeacherResponse
// @Failure 400 {object} dto.ErrorResponse "Validation failure"
// @Failure 401 {object} dto.ErrorResponse "Missing or invalid credential"
// @Failure 403 {object} dto.ErrorResponse "Caller is not a school admin"
// @Failure 500 {object} dto.ProvisioningErrorResponse "Store/auth failure; partial success carries auth_user_id and email"
// @Router /admin/teachers [post]
func (ctrl *ProvisioningController) ProvisionTeacher(c *gin.Context) {
	var req dto.ProvisionTeacherRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.provisioningSvc.ProvisionTeacher(c.Request.Context(), bearerToken(c), req)
	if err != nil {
		ctrl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// RepairProfile godoc
// @Summary Repair the profile of an orphaned auth identity
// @Description Re-runs the idempotent profile upsert for an identity whose provisioning partially failed.
// @Tags provisioning
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token of the calling school admin"
// @Param id path string true "Auth identity ID"
// @Param profile body dto.RepairProfileRequest true "Profile data"
// @Success 200 {object} dto.UserProfileResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/teachers/{id}/profile [put]
func (ctrl *ProvisioningController) RepairProfile(c *gin.Context) {
	var req dto.RepairProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.provisioningSvc.RepairProfile(c.Request.Context(), bearerToken(c), c.Param("id"), req)
	if err != nil {
		ctrl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListOrphanIdentities godoc
// @Summary List auth identities with no linked profile
// @Tags provisioning
// @Produce json
// @Param Authorization header string true "Bearer token of the calling school admin"
// @Success 200 {array} dto.OrphanIdentityResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /admin/teachers/orphans [get]
func (ctrl *ProvisioningController) ListOrphanIdentities(c *gin.Context) {
	orphans, err := ctrl.provisioningSvc.ListOrphanIdentities(c.Request.Context(), bearerToken(c))
	if err != nil {
		ctrl.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orphans)
}

// writeError maps the provisioning error taxonomy onto the status contract.
// The partial-success terminal is still a 500, but with a payload shape that
// carries the orphaned identity so callers can tell it from a total failure.
func (ctrl *ProvisioningController) writeError(c *gin.Context, err error) {
	if ve, ok := apperror.AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: ve.Error()})
		return
	}
	if errors.Is(err, apperror.ErrNotAuthenticated) {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if errors.Is(err, apperror.ErrForbidden) {
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
		return
	}
	if pe, ok := apperror.AsPartialProvisioning(err); ok {
		c.JSON(http.StatusInternalServerError, dto.ProvisioningErrorResponse{
			Error:      pe.Error(),
			AuthUserID: pe.AuthUserID,
			Email:      pe.Email,
		})
		return
	}
	log.Error().Err(err).Msg("Provisioning request failed")
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: err.Error()})
}
