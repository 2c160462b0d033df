package gate

import (
	"net/http"

	"github.com/Conversly/community-api/internal/shared"
	"github.com/Conversly/community-api/internal/types"
	"github.com/Conversly/community-api/internal/utils"
	"github.com/gin-gonic/gin"
)

// Controller handles HTTP requests for gate
type Controller struct {
	service *Service
}

// NewController creates a new gate controller
func NewController(service *Service) *Controller {
	return &Controller{service: service}
}

// Scan godoc
// @Summary Record a gate pass from a QR scan
// @Description Resolves the gate token, checks eligibility and toggles entry/exit
// @Tags gate
// @Accept json
// @Produce json
// @Param request body ScanRequest true "Scan Request"
// @Success 200 {object} types.ScanResult
// @Failure 403 {object} types.ErrorResponse
// @Failure 404 {object} types.ErrorResponse
// @Router /api/v1/gate/scan [post]
func (ctrl *Controller) Scan(c *gin.Context) {
	var req ScanRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	result, err := ctrl.service.Scan(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Manual godoc
// @Summary Record a gate pass without a QR code
// @Tags gate
// @Accept json
// @Produce json
// @Param request body ManualRequest true "Manual Request"
// @Success 200 {object} types.ScanResult
// @Failure 403 {object} types.ErrorResponse
// @Router /api/v1/gate/manual [post]
func (ctrl *Controller) Manual(c *gin.Context) {
	var req ManualRequest
	if err := utils.BindJSON(c, &req); err != nil {
		utils.RespondError(c, err)
		return
	}

	result, err := ctrl.service.Manual(c.Request.Context(), shared.CommunityFrom(c), shared.PrincipalFrom(c), req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// Entries godoc
// @Summary List gate entries
// @Tags gate
// @Produce json
// @Success 200
// @Router /api/v1/gate/entries [get]
func (ctrl *Controller) Entries(c *gin.Context) {
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
	filter := types.GateEntryFilter{
		PersonType: types.PersonType(c.Query("personType")),
		PersonID:   c.Query("personId"),
		Direction:  types.Direction(c.Query("direction")),
		From:       from,
		To:         to,
	}

	resp, err := ctrl.service.Entries(c.Request.Context(), shared.CommunityFrom(c), filter, utils.Pagination(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Inside lists people whose last pass was an entry.
func (ctrl *Controller) Inside(c *gin.Context) {
	resp, err := ctrl.service.Inside(c.Request.Context(), shared.CommunityFrom(c))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
