package residents

import (
	"net/http"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for residents
type Controller struct {
	service *Service
}

// NewController creates a new residents controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Create godoc
// @Summary Create a resident
// @Tags residents
// @Accept json
// @Produce json
// @Param request body CreateResidentRequest true "Create Resident Request"
// @Success 201 {object} types.Resident
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/residents [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateResidentRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	resident, err := ctrl.service.Create(c.Request.Context(), shared.CommunityFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resident)
}

// List godoc
// @Summary List residents
// @Tags residents
// @Produce json
// @Success 200
// @Router /api/v1/residents [get]
func (ctrl *Controller) List(c *gin.Context) {
	filter := types.ResidentFilter{
		Status: types.ResidentStatus(c.Query("status")),
		Block:  c.Query("block"),
		Search: c.Query("search"),
	}

	resp, err := ctrl.service.List(c.Request.Context(), shared.CommunityFrom(c), filter, utils.Pagination(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a resident
// @Tags residents
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.Resident
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/residents/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	resident, err := ctrl.service.Get(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resident)
}

// Update godoc
// @Summary Update a resident
// @Tags residents
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body UpdateResidentRequest true "Update Resident Request"
// @Success 200 {object} types.Resident
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/residents/{id} [put]
func (ctrl *Controller) Update(c *gin.Context) {
	var req UpdateResidentRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	resident, err := ctrl.service.Update(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resident)
}

// SetStatus godoc
// @Summary Change a resident's status
// @Tags residents
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body StatusRequest true "Status Request"
// @Success 200 {object} types.Resident
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/residents/{id}/status [patch]
func (ctrl *Controller) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	resident, err := ctrl.service.SetStatus(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resident)
}

// Delete godoc
// @Summary Delete a resident
// @Tags residents
// @Produce json
// @Param id path string true "id"
// @Success 204
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/residents/{id} [delete]
func (ctrl *Controller) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), shared.CommunityFrom(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// QRCode godoc
// @Summary Gate QR code PNG for a resident
// @Tags residents
// @Produce png
// @Param id path string true "id"
// @Success 200
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/residents/{id}/qr [get]
func (ctrl *Controller) QRCode(c *gin.Context) {
	png, err := ctrl.service.QRCode(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// RotateQR godoc
// @Summary Issue a new gate QR code for a resident
// @Tags residents
// @Produce png
// @Param id path string true "id"
// @Success 200
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/residents/{id}/qr/rotate [post]
func (ctrl *Controller) RotateQR(c *gin.Context) {
	png, err := ctrl.service.RotateQR(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
