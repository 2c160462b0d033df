package guests

import (
	"net/http"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for guests
type Controller struct {
	service *Service
}

// NewController creates a new guests controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Create godoc
// @Summary Create a guest
// @Tags guests
// @Accept json
// @Produce json
// @Param request body CreateGuestRequest true "Create Guest Request"
// @Success 201 {object} types.Guest
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/guests [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateGuestRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	guest, err := ctrl.service.Create(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, guest)
}

// WalkIn godoc
// @Summary Admit a walk-in guest
// @Tags guests
// @Accept json
// @Produce json
// @Param request body WalkInRequest true "Walk In Request"
// @Success 201 {object} types.Guest
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/guests/walk-in [post]
func (ctrl *Controller) WalkIn(c *gin.Context) {
	var req WalkInRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	result, err := ctrl.service.WalkIn(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// List godoc
// @Summary List guests
// @Tags guests
// @Produce json
// @Success 200
// @Router /api/v1/guests [get]
func (ctrl *Controller) List(c *gin.Context) {
	day, err := utils.QueryTime(c, "date", ctrl.service.loc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	filter := types.GuestFilter{
		Status:     types.GuestStatus(c.Query("status")),
		ResidentID: c.Query("residentId"),
	}

	resp, err := ctrl.service.List(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), filter, day, utils.Pagination(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a guest
// @Tags guests
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.Guest
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/guests/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	guest, err := ctrl.service.Get(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}

// QRCode godoc
// @Summary Guest pass QR code
// @Tags guests
// @Produce png
// @Param id path string true "id"
// @Success 200
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/guests/{id}/qr [get]
func (ctrl *Controller) QRCode(c *gin.Context) {
	png, err := ctrl.service.QRCode(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// Cancel godoc
// @Summary Cancel an expected guest
// @Tags guests
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.Guest
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/guests/{id}/cancel [post]
func (ctrl *Controller) Cancel(c *gin.Context) {
	guest, err := ctrl.service.Cancel(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, guest)
}
