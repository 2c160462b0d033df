package complaints

import (
	"net/http"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for complaints
type Controller struct {
	service *Service
}

// NewController creates a new complaints controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Create godoc
// @Summary Create a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Param request body CreateComplaintRequest true "Create Complaint Request"
// @Success 201 {object} types.Complaint
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/complaints [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateComplaintRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	complaint, err := ctrl.service.Create(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, complaint)
}

// List godoc
// @Summary List complaints
// @Tags complaints
// @Produce json
// @Success 200
// @Router /api/v1/complaints [get]
func (ctrl *Controller) List(c *gin.Context) {
	filter := types.ComplaintFilter{
		Status:     types.ComplaintStatus(c.Query("status")),
		Category:   types.ComplaintCategory(c.Query("category")),
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
// @Summary Get a complaint
// @Tags complaints
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.Complaint
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/complaints/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	complaint, err := ctrl.service.Get(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// SetStatus godoc
// @Summary Move a complaint to another status
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body StatusRequest true "Status Request"
// @Success 200 {object} types.Complaint
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/complaints/{id}/status [patch]
func (ctrl *Controller) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	complaint, err := ctrl.service.SetStatus(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// Assign godoc
// @Summary Assign a complaint to an employee
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body AssignRequest true "Assign Request"
// @Success 200 {object} types.Complaint
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/complaints/{id}/assign [patch]
func (ctrl *Controller) Assign(c *gin.Context) {
	var req AssignRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	complaint, err := ctrl.service.Assign(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, complaint)
}

// Comment godoc
// @Summary Comment on a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body CommentRequest true "Comment Request"
// @Success 201 {object} types.Complaint
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/complaints/{id}/comments [post]
func (ctrl *Controller) Comment(c *gin.Context) {
	var req CommentRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	comment, err := ctrl.service.Comment(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}
