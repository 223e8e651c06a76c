package controllers

import (
	"bytes"
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models/dto"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/services"
	"github.com/SheershikaSB/school-vaccination-portal/internal/middleware"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/helpers"
)

const (
	csvContentType  = "text/csv"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// ReportController serves the vaccination report
type ReportController struct {
	reportService services.ReportService
	logger        zerolog.Logger
}

// NewReportController creates a new ReportController
func NewReportController(reportService services.ReportService, logger zerolog.Logger) *ReportController {
	return &ReportController{
		reportService: reportService,
		logger:        logger,
	}
}

// ListRecords returns one page of the report
// @Summary Paginated vaccination report
// @Description One row per vaccination record; students without records appear once with empty vaccine fields unless a vaccine filter is given.
// @Tags reports
// @Produce json
// @Security BearerAuth
// @Param vaccine_name query string false "Exact vaccine name"
// @Param page query int false "Page number (1-based)" default(1)
// @Param limit query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.ReportPageResponse} "Report page"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports [get]
func (c *ReportController) ListRecords(ctx *gin.Context) {
	page, limit := helpers.ParsePaginationParams(ctx)

	report, err := c.reportService.ListRecords(ctx.Request.Context(), ctx.Query("vaccine_name"), page, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// Export downloads the full report
// @Summary Export the vaccination report
// @Tags reports
// @Produce text/csv
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param format query string false "csv (default) or xlsx" Enums(csv, xlsx)
// @Success 200 {file} file "Report file"
// @Failure 400 {object} dto.ErrorResponse "Unknown format"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /reports/export [get]
func (c *ReportController) Export(ctx *gin.Context) {
	var (
		render      func(context.Context) (*bytes.Buffer, error)
		filename    string
		contentType string
	)

	switch strings.ToLower(ctx.DefaultQuery("format", "csv")) {
	case "csv":
		render, filename, contentType = c.reportService.ExportCSV, "vaccination_report.csv", csvContentType
	case "xlsx":
		render, filename, contentType = c.reportService.ExportXLSX, "vaccination_report.xlsx", xlsxContentType
	default:
		badRequest(ctx, "format must be one of: csv, xlsx", "")
		return
	}

	buf, err := render(ctx.Request.Context())
	if err != nil {
		c.logger.Error().Err(err).Str("filename", filename).Msg("Report export failed")
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, contentType, buf.Bytes())
}
