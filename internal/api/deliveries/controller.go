package deliveries

import (
	"net/http"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for deliveries
type Controller struct {
	service *Service
}

// NewController creates a new deliveries controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Create godoc
// @Summary Create a delivery
// @Tags deliveries
// @Accept json
// @Produce json
// @Param request body CreateDeliveryRequest true "Create Delivery Request"
// @Success 201 {object} types.Delivery
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/deliveries [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateDeliveryRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	delivery, err := ctrl.service.Create(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, delivery)
}

// List godoc
// @Summary List deliverys
// @Tags deliveries
// @Produce json
// @Success 200
// @Router /api/v1/deliveries [get]
func (ctrl *Controller) List(c *gin.Context) {
	filter := types.DeliveryFilter{
		Status:     types.DeliveryStatus(c.Query("status")),
		ResidentID: c.Query("residentId"),
	}
	resp, err := ctrl.service.List(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), filter, utils.Pagination(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a delivery
// @Tags deliveries
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.Delivery
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/deliveries/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	delivery, err := ctrl.service.Get(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, delivery)
}

// SetStatus godoc
// @Summary Mark a delivery collected or returned
// @Tags deliveries
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body StatusRequest true "Status Request"
// @Success 200 {object} types.Delivery
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/deliveries/{id}/status [patch]
func (ctrl *Controller) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	delivery, err := ctrl.service.SetStatus(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, delivery)
}
