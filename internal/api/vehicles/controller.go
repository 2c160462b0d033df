package vehicles

import (
	"net/http"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for vehicles
type Controller struct {
	service *Service
}

// NewController creates a new vehicles controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Create godoc
// @Summary Create a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param request body VehicleRequest true "Vehicle Request"
// @Success 201 {object} types.Vehicle
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/vehicles [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req VehicleRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	vehicle, err := ctrl.service.Create(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, vehicle)
}

// List godoc
// @Summary List vehicles
// @Tags vehicles
// @Produce json
// @Success 200
// @Router /api/v1/vehicles [get]
func (ctrl *Controller) List(c *gin.Context) {
	resp, err := ctrl.service.List(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c),
		c.Query("residentId"), utils.Pagination(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a vehicle
// @Tags vehicles
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.Vehicle
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/vehicles/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	vehicle, err := ctrl.service.Get(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// Update godoc
// @Summary Update a vehicle
// @Tags vehicles
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body VehicleRequest true "Vehicle Request"
// @Success 200 {object} types.Vehicle
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/vehicles/{id} [put]
func (ctrl *Controller) Update(c *gin.Context) {
	var req VehicleRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	vehicle, err := ctrl.service.Update(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

// Delete godoc
// @Summary Delete a vehicle
// @Tags vehicles
// @Produce json
// @Param id path string true "id"
// @Success 204
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/vehicles/{id} [delete]
func (ctrl *Controller) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Lookup godoc
// @Summary Find a vehicle and its owner by registration number
// @Tags vehicles
// @Produce json
// @Param number path string true "number"
// @Success 200 {object} types.Vehicle
// @Router /api/v1/vehicles/lookup/{number} [get]
func (ctrl *Controller) Lookup(c *gin.Context) {
	owner, err := ctrl.service.Lookup(c.Request.Context(), shared.CommunityFrom(c), c.Param("number"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, owner)
}
