package providers

import (
	"net/http"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for providers
type Controller struct {
	service *Service
}

// NewController creates a new providers controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Create godoc
// @Summary Create a service provider
// @Tags providers
// @Accept json
// @Produce json
// @Param request body ProviderRequest true "Provider Request"
// @Success 201 {object} types.ServiceProvider
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/providers [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req ProviderRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	provider, err := ctrl.service.Create(c.Request.Context(), shared.CommunityFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, provider)
}

// List godoc
// @Summary List service providers
// @Tags providers
// @Produce json
// @Success 200
// @Router /api/v1/providers [get]
func (ctrl *Controller) List(c *gin.Context) {
	filter := types.ProviderFilter{
		Status:      types.ProviderStatus(c.Query("status")),
		ServiceType: types.ServiceType(c.Query("serviceType")),
		Search:      c.Query("search"),
	}

	resp, err := ctrl.service.List(c.Request.Context(), shared.CommunityFrom(c), filter, utils.Pagination(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a service provider
// @Tags providers
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.ServiceProvider
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/providers/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	provider, err := ctrl.service.Get(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

// Update godoc
// @Summary Update a service provider
// @Tags providers
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body ProviderRequest true "Provider Request"
// @Success 200 {object} types.ServiceProvider
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/providers/{id} [put]
func (ctrl *Controller) Update(c *gin.Context) {
	var req ProviderRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	provider, err := ctrl.service.Update(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

// SetStatus godoc
// @Summary Change a service provider's status
// @Tags providers
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body StatusRequest true "Status Request"
// @Success 200 {object} types.ServiceProvider
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/providers/{id}/status [patch]
func (ctrl *Controller) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	provider, err := ctrl.service.SetStatus(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, provider)
}

// Delete godoc
// @Summary Delete a service provider
// @Tags providers
// @Produce json
// @Param id path string true "id"
// @Success 204
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/providers/{id} [delete]
func (ctrl *Controller) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), shared.CommunityFrom(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// QRCode godoc
// @Summary Gate QR code PNG for a service provider
// @Tags providers
// @Produce png
// @Param id path string true "id"
// @Success 200
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/providers/{id}/qr [get]
func (ctrl *Controller) QRCode(c *gin.Context) {
	png, err := ctrl.service.QRCode(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// RotateQR godoc
// @Summary Issue a new gate QR code for a service provider
// @Tags providers
// @Produce png
// @Param id path string true "id"
// @Success 200
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/providers/{id}/qr/rotate [post]
func (ctrl *Controller) RotateQR(c *gin.Context) {
	png, err := ctrl.service.RotateQR(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
