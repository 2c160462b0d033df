package bookings

import (
	"net/http"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for bookings
type Controller struct {
	service *Service
}

// NewController creates a new bookings controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// CreateAmenity godoc
// @Summary Create an amenity
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body AmenityRequest true "Amenity Request"
// @Success 201
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/amenities [post]
func (ctrl *Controller) CreateAmenity(c *gin.Context) {
	var req AmenityRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	amenity, err := ctrl.service.CreateAmenity(c.Request.Context(), shared.CommunityFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, amenity)
}

// ListAmenities godoc
// @Summary List amenities
// @Tags bookings
// @Produce json
// @Success 200
// @Router /api/v1/amenities [get]
func (ctrl *Controller) ListAmenities(c *gin.Context) {
	amenities, err := ctrl.service.ListAmenities(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": amenities})
}

// GetAmenity godoc
// @Summary Get an amenity
// @Tags bookings
// @Produce json
// @Param id path string true "id"
// @Success 200
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/amenities/{id} [get]
func (ctrl *Controller) GetAmenity(c *gin.Context) {
	amenity, err := ctrl.service.GetAmenity(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, amenity)
}

// UpdateAmenity godoc
// @Summary Update an amenity
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body AmenityRequest true "Amenity Request"
// @Success 200
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/amenities/{id} [put]
func (ctrl *Controller) UpdateAmenity(c *gin.Context) {
	var req AmenityRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	amenity, err := ctrl.service.UpdateAmenity(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, amenity)
}

// DeleteAmenity godoc
// @Summary Delete an amenity
// @Tags bookings
// @Produce json
// @Param id path string true "id"
// @Success 204
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/amenities/{id} [delete]
func (ctrl *Controller) DeleteAmenity(c *gin.Context) {
	if err := ctrl.service.DeleteAmenity(c.Request.Context(), shared.CommunityFrom(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Create godoc
// @Summary Create a booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body CreateBookingRequest true "Create Booking Request"
// @Success 201 {object} types.Booking
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/bookings [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateBookingRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	booking, err := ctrl.service.Create(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

// List godoc
// @Summary List bookings
// @Tags bookings
// @Produce json
// @Success 200
// @Router /api/v1/bookings [get]
func (ctrl *Controller) List(c *gin.Context) {
	from, err := utils.QueryTime(c, "from", ctrl.service.loc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	to, err := utils.QueryTime(c, "to", ctrl.service.loc)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	filter := types.BookingFilter{
		AmenityID:  c.Query("amenityId"),
		ResidentID: c.Query("residentId"),
		Status:     types.BookingStatus(c.Query("status")),
		From:       from,
		To:         to,
	}

	resp, err := ctrl.service.List(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), filter, utils.Pagination(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a booking
// @Tags bookings
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.Booking
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/bookings/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	booking, err := ctrl.service.Get(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Decide godoc
// @Summary Approve or reject a pending booking
// @Tags bookings
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body DecisionRequest true "Decision Request"
// @Success 200 {object} types.Booking
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/bookings/{id}/status [patch]
func (ctrl *Controller) Decide(c *gin.Context) {
	var req DecisionRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	booking, err := ctrl.service.Decide(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// Cancel godoc
// @Summary Cancel a booking before it starts
// @Tags bookings
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.Booking
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/bookings/{id}/cancel [post]
func (ctrl *Controller) Cancel(c *gin.Context) {
	booking, err := ctrl.service.Cancel(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}
