package employees

import (
	"net/http"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for employees
type Controller struct {
	service *Service
}

// NewController creates a new employees controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Create godoc
// @Summary Create a employee
// @Tags employees
// @Accept json
// @Produce json
// @Param request body EmployeeRequest true "Employee Request"
// @Success 201 {object} types.Employee
// @Failure 400 {object} types.ErrorResponse
// @Router /api/v1/employees [post]
func (ctrl *Controller) Create(c *gin.Context) {
	var req EmployeeRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	employee, err := ctrl.service.Create(c.Request.Context(), shared.CommunityFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, employee)
}

// List godoc
// @Summary List employees
// @Tags employees
// @Produce json
// @Success 200
// @Router /api/v1/employees [get]
func (ctrl *Controller) List(c *gin.Context) {
	filter := types.EmployeeFilter{
		Status:      types.EmployeeStatus(c.Query("status")),
		Designation: types.Designation(c.Query("designation")),
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
// @Summary Get a employee
// @Tags employees
// @Produce json
// @Param id path string true "id"
// @Success 200 {object} types.Employee
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/employees/{id} [get]
func (ctrl *Controller) Get(c *gin.Context) {
	employee, err := ctrl.service.Get(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// Update godoc
// @Summary Update a employee
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body EmployeeRequest true "Employee Request"
// @Success 200 {object} types.Employee
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/employees/{id} [put]
func (ctrl *Controller) Update(c *gin.Context) {
	var req EmployeeRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	employee, err := ctrl.service.Update(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// SetStatus godoc
// @Summary Change a employee's status
// @Tags employees
// @Accept json
// @Produce json
// @Param id path string true "id"
// @Param request body StatusRequest true "Status Request"
// @Success 200 {object} types.Employee
// @Failure 400 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/employees/{id}/status [patch]
func (ctrl *Controller) SetStatus(c *gin.Context) {
	var req StatusRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	employee, err := ctrl.service.SetStatus(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"), req.Status)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, employee)
}

// Delete godoc
// @Summary Delete a employee
// @Tags employees
// @Produce json
// @Param id path string true "id"
// @Success 204
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/employees/{id} [delete]
func (ctrl *Controller) Delete(c *gin.Context) {
	if err := ctrl.service.Delete(c.Request.Context(), shared.CommunityFrom(c), c.Param("id")); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// QRCode godoc
// @Summary Gate QR code PNG for a employee
// @Tags employees
// @Produce png
// @Param id path string true "id"
// @Success 200
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/employees/{id}/qr [get]
func (ctrl *Controller) QRCode(c *gin.Context) {
	png, err := ctrl.service.QRCode(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// RotateQR godoc
// @Summary Issue a new gate QR code for a employee
// @Tags employees
// @Produce png
// @Param id path string true "id"
// @Success 200
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/employees/{id}/qr/rotate [post]
func (ctrl *Controller) RotateQR(c *gin.Context) {
	png, err := ctrl.service.RotateQR(c.Request.Context(), shared.CommunityFrom(c), c.Param("id"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
