package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/xuri/excelize/v2"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models/dto"
	"github.com/SheershikaSB/school-vaccination-portal/internal/app/repositories"
	"github.com/SheershikaSB/school-vaccination-portal/internal/config"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/helpers"
)

// ReportColumns is the header of both export formats.
var ReportColumns = []string{
	"student_id", "student_name", "student_class", "vaccine_name", "drive_name", "vaccination_date", "vaccinated",
}

const reportSheet = "Vaccination Report"

// ReportService produces the vaccination report
type ReportService interface {
	ListRecords(ctx context.Context, vaccineName string, page, limit int) (*dto.ReportPageResponse, error)
	ExportCSV(ctx context.Context) (*bytes.Buffer, error)
	ExportXLSX(ctx context.Context) (*bytes.Buffer, error)
}

type reportServiceImpl struct {
	reportRepo repositories.IReportRepository
	countMode  string
	logger     zerolog.Logger
}

// NewReportService creates a new ReportService. Unknown count modes fall back to filtered.
func NewReportService(reportRepo repositories.IReportRepository, countMode string, logger zerolog.Logger) ReportService {
	if countMode != config.CountModeAllRecords {
		countMode = config.CountModeFiltered
	}
	return &reportServiceImpl{
		reportRepo: reportRepo,
		countMode:  countMode,
		logger:     logger,
	}
}

// ListRecords returns one page of report rows, optionally restricted to one vaccine
func (s *reportServiceImpl) ListRecords(ctx context.Context, vaccineName string, page, limit int) (*dto.ReportPageResponse, error) {
	offset, size := helpers.CalculateOffsetLimit(page, limit)
	if page < 1 {
		page = helpers.DefaultPage
	}

	var filter *string
	if v := strings.TrimSpace(vaccineName); v != "" {
		filter = &v
	}

	rows, err := s.reportRepo.ListRows(ctx, repositories.ReportFilter{
		VaccineName: filter,
		Limit:       size,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}

	var total int64
	if s.countMode == config.CountModeAllRecords {
		total, err = s.reportRepo.CountRecords(ctx)
	} else {
		total, err = s.reportRepo.CountRows(ctx, filter)
	}
	if err != nil {
		return nil, err
	}

	return &dto.ReportPageResponse{
		Data:         dto.NewReportRowResponses(rows),
		TotalRecords: total,
		CurrentPage:  page,
		TotalPages:   helpers.TotalPages(total, int(size)),
		Limit:        int(size),
	}, nil
}

// ExportCSV renders every report row as CSV with a header line
func (s *reportServiceImpl) ExportCSV(ctx context.Context) (*bytes.Buffer, error) {
	rows, err := s.reportRepo.ListRows(ctx, repositories.ReportFilter{})
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	w := csv.NewWriter(buf)
	if err := w.Write(ReportColumns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for i := range rows {
		if err := w.Write(reportRecord(&rows[i])); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}

	s.logger.Info().Int("rows", len(rows)).Msg("Vaccination report exported as CSV")
	return buf, nil
}

// ExportXLSX renders every report row into a single-sheet workbook
func (s *reportServiceImpl) ExportXLSX(ctx context.Context) (*bytes.Buffer, error) {
	rows, err := s.reportRepo.ListRows(ctx, repositories.ReportFilter{})
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(reportSheet)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	_ = f.DeleteSheet("Sheet1")

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#D9E1F2"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	for i, name := range ReportColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(reportSheet, col, col, 18)
		_ = f.SetCellValue(reportSheet, cell(col, 1), name)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(ReportColumns))
	_ = f.SetCellStyle(reportSheet, "A1", cell(lastCol, 1), headerStyle)

	for i := range rows {
		r := &rows[i]
		line := i + 2
		_ = f.SetCellValue(reportSheet, cell("A", line), r.StudentID)
		_ = f.SetCellValue(reportSheet, cell("B", line), r.StudentName)
		_ = f.SetCellValue(reportSheet, cell("C", line), r.StudentClass)
		_ = f.SetCellValue(reportSheet, cell("D", line), derefString(r.VaccineName))
		_ = f.SetCellValue(reportSheet, cell("E", line), derefString(r.DriveName))
		_ = f.SetCellValue(reportSheet, cell("F", line), helpers.FormatDate(r.VaccinationDate))
		_ = f.SetCellValue(reportSheet, cell("G", line), r.Vaccinated)
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error().Err(err).Msg("Failed to write XLSX report")
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	s.logger.Info().Int("rows", len(rows)).Msg("Vaccination report exported as XLSX")
	return buf, nil
}

func reportRecord(r *models.ReportRow) []string {
	return []string{
		strconv.FormatInt(r.StudentID, 10),
		csvText(r.StudentName),
		csvText(r.StudentClass),
		csvText(derefString(r.VaccineName)),
		csvText(derefString(r.DriveName)),
		helpers.FormatDate(r.VaccinationDate),
		strconv.FormatBool(r.Vaccinated),
	}
}

// csvText quotes free text that a spreadsheet would otherwise evaluate as a formula.
func csvText(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}
