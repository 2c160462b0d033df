package bills

import (
	"net/http"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for bills
type Controller struct {
	service *Service
}

// NewController creates a new bills controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Generate godoc
// @Summary Bill every active resident for a period
// @Tags bills
// @Accept json
// @Produce json
// @Param request body GenerateRequest true "Generate Request"
// @Success 201
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/bills/generate [post]
func (ctrl *Controller) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	result, err := ctrl.service.Generate(c.Request.Context(), shared.CommunityFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, result)
}

// Create godoc
// @Summary Create a bill
// @Tags bills
// @Accept json
// @Produce json
// @Param request body CreateBillRequest true "Create Bill Request"
// @Success 201 {object} types.Bill
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/bills [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateBillRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	bill, err := ctrl.service.Create(c.Request.Context(), shared.CommunityFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, bill)
}

// List godoc
// @Summary List bills
// @Tags bills
// @Produce json
// @Success 200
// @Router /api/v1/bills [get]
func (ctrl *Controller) List(c *gin.Context) {
	filter := types.BillFilter{
		Status:     types.BillStatus(c.Query("status")),
		Period:     c.Query("period"),
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
// @Summary Get a bill
// @Tags bills
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.Bill
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/bills/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	bill, err := ctrl.service.Get(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

// Pay godoc
// @Summary Record a bill payment
// @Tags bills
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body PayRequest true "Pay Request"
// @Success 200 {object} types.Bill
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/bills/{id}/pay [post]
func (ctrl *Controller) Pay(c *gin.Context) {
	var req PayRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	bill, err := ctrl.service.Pay(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bill)
}

// Delete godoc
// @Summary Delete a bill
// @Tags bills
// @Produce json
// @Param id path string true "id"
// @Success 204
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/bills/{id} [delete]
func (ctrl *Controller) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), shared.CommunityFrom(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Summary godoc
// @Summary Billing totals for a period
// @Tags bills
// @Produce json
// @Success 200
// @Router /api/v1/bills/summary [get]
func (ctrl *Controller) Summary(c *gin.Context) {
	summary, err := ctrl.service.Summary(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), c.Query("period"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}
