package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/db"
)

const reportJoin = "vaccination_records v ON v.student_id = s.id"

// ReportRepository runs the aggregate queries for the dashboard and reports
type ReportRepository struct {
	db *db.PostgresDB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(database *db.PostgresDB) *ReportRepository {
	return &ReportRepository{db: database}
}

// StudentCounts returns the number of students and how many have at least one record
func (r *ReportRepository) StudentCounts(ctx context.Context) (int64, int64, error) {
	query := psql.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE EXISTS (SELECT 1 FROM vaccination_records v WHERE v.student_id = s.id))",
	).From("students s")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total, vaccinated int64
	if err := r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&total, &vaccinated); err != nil {
		return 0, 0, fmt.Errorf("error counting students: %w", err)
	}
	return total, vaccinated, nil
}

// ListRows returns students joined with their records. Students without a
// record appear once with empty vaccine columns unless a vaccine filter is set.
func (r *ReportRepository) ListRows(ctx context.Context, filter ReportFilter) ([]models.ReportRow, error) {
	query := psql.Select(
		"s.id", "s.name", "s.grade",
		"v.vaccine_name", "v.drive_name", "v.vaccination_date",
		"v.id IS NOT NULL",
	).
		From("students s").
		LeftJoin(reportJoin).
		OrderBy("s.name ASC", "s.id ASC", "v.vaccine_name ASC NULLS FIRST")

	query = applyVaccineFilter(query, filter.VaccineName)
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit).Offset(filter.Offset)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing report rows: %w", err)
	}
	defer rows.Close()

	result := make([]models.ReportRow, 0)
	for rows.Next() {
		var row models.ReportRow
		if err := rows.Scan(
			&row.StudentID,
			&row.StudentName,
			&row.StudentClass,
			&row.VaccineName,
			&row.DriveName,
			&row.VaccinationDate,
			&row.Vaccinated,
		); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating report rows: %w", err)
	}

	return result, nil
}

// CountRows counts the rows ListRows would return without pagination
func (r *ReportRepository) CountRows(ctx context.Context, vaccineName *string) (int64, error) {
	query := applyVaccineFilter(psql.Select("COUNT(*)").From("students s").LeftJoin(reportJoin), vaccineName)
	return r.count(ctx, query)
}

// CountRecords counts every vaccination record
func (r *ReportRepository) CountRecords(ctx context.Context) (int64, error) {
	return r.count(ctx, psql.Select("COUNT(*)").From("vaccination_records"))
}

func (r *ReportRepository) count(ctx context.Context, query squirrel.SelectBuilder) (int64, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var total int64
	if err := r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("error counting rows: %w", err)
	}
	return total, nil
}

func applyVaccineFilter(query squirrel.SelectBuilder, vaccineName *string) squirrel.SelectBuilder {
	if vaccineName != nil {
		return query.Where(squirrel.Eq{"v.vaccine_name": *vaccineName})
	}
	return query
}
