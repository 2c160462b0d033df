package dashboard

import (
	"net/http"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for dashboard
type Controller struct {
	service *Service
}

// NewController creates a new dashboard controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Admin godoc
// @Summary Community overview for admins
// @Tags dashboard
// @Produce json
// @Success 200
// @Router /api/v1/dashboard [get]
func (ctrl *Controller) Admin(c *gin.Context) {
	dash, err := ctrl.service.Admin(c.Request.Context(), shared.CommunityFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Resident godoc
// @Summary Overview for the calling resident
// @Tags dashboard
// @Produce json
// @Success 200
// @Router /api/v1/dashboard/me [get]
func (ctrl *Controller) Resident(c *gin.Context) {
	dash, err := ctrl.service.Resident(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
