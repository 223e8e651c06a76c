package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models/dto"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/apperrors"
)

// ImportMode selects how bulk import failures are handled.
type ImportMode string

const (
	// ImportBestEffort inserts each row in its own transaction and skips failures.
	ImportBestEffort ImportMode = "best_effort"
	// ImportAtomic inserts all rows in one transaction; any failure rolls back all of them.
	ImportAtomic ImportMode = "atomic"
)

// Row outcome labels
const (
	RowImported   = "imported"
	RowFailed     = "failed"
	RowRolledBack = "rolled_back"
	RowSkipped    = "skipped"
)

// ParseImportMode maps a query value onto an ImportMode; blank means best effort.
func ParseImportMode(raw string) (ImportMode, error) {
	switch ImportMode(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ImportBestEffort:
		return ImportBestEffort, nil
	case ImportAtomic:
		return ImportAtomic, nil
	default:
		return "", apperrors.NewValidationError("mode must be one of: best_effort, atomic")
	}
}

// BulkImportInput is an uploaded CSV file and the failure policy to apply.
type BulkImportInput struct {
	File io.Reader
	Mode ImportMode
}

var importColumns = []string{"name", "grade", "dob", "vaccinated", "vaccine_name", "drive_name"}

// csvRow is one data line, keyed by lower-cased header name.
type csvRow struct {
	line   int
	fields map[string]string
	err    error
}

// BulkImport creates students from a CSV with header
// name,grade[,dob,vaccinated,vaccine_name,drive_name].
func (s *studentServiceImpl) BulkImport(ctx context.Context, input BulkImportInput) (*dto.BulkImportResponse, error) {
	mode := input.Mode
	if mode == "" {
		mode = ImportBestEffort
	}

	rows, err := parseStudentCSV(input.File)
	if err != nil {
		return nil, err
	}

	resp := &dto.BulkImportResponse{
		Mode:      string(mode),
		TotalRows: len(rows),
		Results:   make([]dto.BulkImportRowResult, 0, len(rows)),
	}

	if mode == ImportAtomic {
		return s.importAtomic(ctx, rows, resp)
	}
	return s.importBestEffort(ctx, rows, resp)
}

func (s *studentServiceImpl) importBestEffort(ctx context.Context, rows []csvRow, resp *dto.BulkImportResponse) (*dto.BulkImportResponse, error) {
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		var id int64
		err := s.tx.InTx(ctx, func(ctx context.Context) error {
			var err error
			id, err = s.importRow(ctx, row)
			return err
		})
		if err != nil {
			s.logger.Warn().Err(err).Int("row", row.line).Msg("Bulk import row failed")
			resp.Results = append(resp.Results, dto.BulkImportRowResult{Row: row.line, Status: RowFailed, Error: rowErrorMessage(err)})
			resp.Failed++
			continue
		}

		resp.Results = append(resp.Results, dto.BulkImportRowResult{Row: row.line, Status: RowImported, StudentID: &id})
		resp.Imported++
	}

	s.logger.Info().Int("imported", resp.Imported).Int("failed", resp.Failed).Msg("Bulk import finished")
	return resp, nil
}

// rowFailure marks a domain failure of a single row inside the atomic transaction.
type rowFailure struct {
	index int
	err   error
}

func (e *rowFailure) Error() string { return e.err.Error() }
func (e *rowFailure) Unwrap() error { return e.err }

func (s *studentServiceImpl) importAtomic(ctx context.Context, rows []csvRow, resp *dto.BulkImportResponse) (*dto.BulkImportResponse, error) {
	ids := make([]int64, 0, len(rows))
	err := s.tx.InTx(ctx, func(ctx context.Context) error {
		for i, row := range rows {
			id, err := s.importRow(ctx, row)
			if err != nil {
				if isRowError(err) {
					return &rowFailure{index: i, err: err}
				}
				return err
			}
			ids = append(ids, id)
		}
		return nil
	})

	if err == nil {
		for i, row := range rows {
			id := ids[i]
			resp.Results = append(resp.Results, dto.BulkImportRowResult{Row: row.line, Status: RowImported, StudentID: &id})
		}
		resp.Imported = len(rows)
		s.logger.Info().Int("imported", resp.Imported).Msg("Atomic bulk import committed")
		return resp, nil
	}

	var failure *rowFailure
	if !errors.As(err, &failure) {
		return nil, err
	}

	for i, row := range rows {
		switch {
		case i < failure.index:
			resp.Results = append(resp.Results, dto.BulkImportRowResult{Row: row.line, Status: RowRolledBack})
		case i == failure.index:
			resp.Results = append(resp.Results, dto.BulkImportRowResult{Row: row.line, Status: RowFailed, Error: rowErrorMessage(failure.err)})
		default:
			resp.Results = append(resp.Results, dto.BulkImportRowResult{Row: row.line, Status: RowSkipped})
		}
	}
	resp.Failed = 1

	line := rows[failure.index].line
	s.logger.Warn().Err(failure.err).Int("row", line).Msg("Atomic bulk import rolled back")
	return resp, apperrors.NewCustomError(apperrors.ErrValidationFailed,
		fmt.Sprintf("Bulk import aborted at row %d: %s", line, rowErrorMessage(failure.err)))
}

// importRow must run inside a transaction.
func (s *studentServiceImpl) importRow(ctx context.Context, row csvRow) (int64, error) {
	if row.err != nil {
		return 0, row.err
	}

	vaccinated, err := parseVaccinatedFlag(row.fields["vaccinated"])
	if err != nil {
		return 0, err
	}

	input, err := buildNewStudent(
		row.fields["name"],
		row.fields["grade"],
		row.fields["dob"],
		vaccinated,
		optionalField(row.fields, "vaccine_name"),
		optionalField(row.fields, "drive_name"),
	)
	if err != nil {
		return 0, err
	}

	return s.insertStudent(ctx, input)
}

// parseStudentCSV reads the whole upload. Structural problems (no header,
// broken quoting, missing required columns) fail the file; a data row with
// the wrong number of fields only fails that row.
func parseStudentCSV(r io.Reader) ([]csvRow, error) {
	if r == nil {
		return nil, apperrors.ErrMalformedCSV
	}

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, apperrors.NewCustomError(apperrors.ErrMalformedCSV, "CSV file is empty")
		}
		return nil, apperrors.NewCustomError(apperrors.ErrMalformedCSV, "Failed to parse CSV: "+err.Error())
	}

	columns := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if name == "" {
			continue
		}
		if _, dup := columns[name]; dup {
			return nil, apperrors.NewCustomError(apperrors.ErrMalformedCSV, "Duplicate CSV column: "+name)
		}
		columns[name] = i
	}
	for _, required := range []string{"name", "grade"} {
		if _, ok := columns[required]; !ok {
			return nil, apperrors.NewCustomError(apperrors.ErrMalformedCSV, "CSV header must include column: "+required)
		}
	}

	rows := make([]csvRow, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, apperrors.NewCustomError(apperrors.ErrMalformedCSV, "Failed to parse CSV: "+err.Error())
		}

		line, _ := reader.FieldPos(0)
		row := csvRow{line: line, fields: make(map[string]string, len(importColumns))}
		if len(record) != len(header) {
			row.err = apperrors.NewValidationError(
				fmt.Sprintf("expected %d fields, got %d", len(header), len(record)))
			rows = append(rows, row)
			continue
		}

		for _, col := range importColumns {
			if idx, ok := columns[col]; ok {
				row.fields[col] = strings.TrimSpace(record[idx])
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

func parseVaccinatedFlag(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return false, nil
	case "yes", "y":
		return true, nil
	case "no", "n":
		return false, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return false, apperrors.NewValidationError("vaccinated must be true or false")
	}
	return v, nil
}

func optionalField(fields map[string]string, key string) *string {
	v, ok := fields[key]
	if !ok || v == "" {
		return nil
	}
	return &v
}

// isRowError reports failures caused by the row's content rather than the database.
func isRowError(err error) bool {
	return apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrConflict, apperrors.ErrResourceNotFound)
}

func rowErrorMessage(err error) string {
	if isRowError(err) {
		return apperrors.Message(err)
	}
	return "failed to import row"
}
