package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models/dto"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/services"
	"github.com/SheershikaSB/school-vaccination-portal/internal/middleware"
)

// DashboardController serves the dashboard aggregates
type DashboardController struct {
	dashboardService services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// Overview returns student counts and upcoming drives
// @Summary Dashboard overview
// @Description Total students, vaccinated students, the vaccinated percentage and drives in the next 30 days.
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardOverviewResponse} "Overview retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /dashboard/overview [get]
func (c *DashboardController) Overview(ctx *gin.Context) {
	overview, err := c.dashboardService.Overview(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(overview))
}
