package auth

import (
	"net/http"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for authentication
type Controller struct {
	service *Service
}

// NewController creates a new auth controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Register godoc
// @Summary Resident self-registration
// @Tags auth
// @Router /api/v1/auth/register [post]
func (ctrl *Controller) Register(c *gin.Context) {
	var req RegisterRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	resident, err := ctrl.service.Register(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, RegisterResponse{
		Resident: resident,
		Message:  "registration received, awaiting approval",
	})
}

// Login godoc
// @Summary Exchange credentials for a token pair
// @Tags auth
// @Router /api/v1/auth/login [post]
func (ctrl *Controller) Login(c *gin.Context) {
	var req LoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	resp, err := ctrl.service.Login(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Refresh godoc
// @Summary Rotate a refresh token into a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh Request"
// @Success 200
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/auth/refresh [post]
func (ctrl *Controller) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	pair, err := ctrl.service.Refresh(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Me godoc
// @Summary Current account
// @Tags auth
// @Produce json
// @Success 200
// @Router /api/v1/auth/me [get]
func (ctrl *Controller) Me(c *gin.Context) {
	resp, err := ctrl.service.Me(c.Request.Context(), shared.PrincipalFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ChangePassword godoc
// @Summary Change the caller's password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body ChangePasswordRequest true "Change Password Request"
// @Success 200
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/auth/password [put]
func (ctrl *Controller) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	if err := ctrl.service.ChangePassword(c.Request.Context(), shared.PrincipalFrom(c), req); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
