package announcements

import (
	"net/http"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for announcements
type Controller struct {
	service *Service
}

// NewController creates a new announcements controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Create godoc
// @Summary Create a announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Param request body AnnouncementRequest true "Announcement Request"
// @Success 201 {object} types.Announcement
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/announcements [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req AnnouncementRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	a, err := ctrl.service.Create(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, a)
}

// List godoc
// @Summary List announcements
// @Tags announcements
// @Produce json
// @Success 200
// @Router /api/v1/announcements [get]
func (ctrl *Controller) List(c *gin.Context) {
	resp, err := ctrl.service.List(c.Request.Context(), shared.CommunityFrom(c), utils.Pagination(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a announcement
// @Tags announcements
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.Announcement
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/announcements/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	a, err := ctrl.service.Get(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Update godoc
// @Summary Update a announcement
// @Tags announcements
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body AnnouncementRequest true "Announcement Request"
// @Success 200 {object} types.Announcement
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/announcements/{id} [put]
func (ctrl *Controller) Update(c *gin.Context) {
	var req AnnouncementRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	a, err := ctrl.service.Update(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, a)
}

// Delete godoc
// @Summary Delete a announcement
// @Tags announcements
// @Produce json
// @Param id path string true "id"
// @Success 204
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/announcements/{id} [delete]
func (ctrl *Controller) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), shared.CommunityFrom(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
