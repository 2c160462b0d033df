package communities

import (
	"net/http"

	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for communities
type Controller struct {
	service *Service
}

// NewController creates a new communities controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Create godoc
// @Summary Create a community
// @Tags communities
// @Accept json
// @Produce json
// @Param request body CreateCommunityRequest true "Create Community Request"
// @Success 201 {object} types.Community
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/communities [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateCommunityRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	community, err := ctrl.service.Create(c.Request.Context(), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, community)
}

// List godoc
// @Summary List communitys
// @Tags communities
// @Produce json
// @Success 200
// @Router /api/v1/communities [get]
func (ctrl *Controller) List(c *gin.Context) {
	resp, err := ctrl.service.List(c.Request.Context(), c.Query("search"), utils.Pagination(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Get godoc
// @Summary Get a community
// @Tags communities
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.Community
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/communities/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	community, err := ctrl.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

// Update godoc
// @Summary Update a community
// @Tags communities
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body UpdateCommunityRequest true "Update Community Request"
// @Success 200 {object} types.Community
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/communities/{id} [put]
func (ctrl *Controller) Update(c *gin.Context) {
	var req UpdateCommunityRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	community, err := ctrl.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

// SetStatus godoc
// @Summary Change a community's status
// @Tags communities
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body StatusRequest true "Status Request"
// @Success 200 {object} types.Community
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/communities/{id}/status [patch]
func (ctrl *Controller) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	community, err := ctrl.service.SetStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, community)
}

// CreateAdmin godoc
// @Summary Create a community admin account
// @Tags communities
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body CreateAdminRequest true "Create Admin Request"
// @Success 201 {object} types.Community
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/communities/{id}/admins [post]
func (ctrl *Controller) CreateAdmin(c *gin.Context) {
	var req CreateAdminRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	user, err := ctrl.service.CreateAdmin(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}
