package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/db"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/apperrors"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/dberrors"
)

// RecordUniqueConstraint allows one record per student and vaccine.
const RecordUniqueConstraint = "uq_vaccination_records_student_vaccine"

// VaccinationRecordRepository handles database operations for vaccination records
type VaccinationRecordRepository struct {
	db *db.PostgresDB
}

// NewVaccinationRecordRepository creates a new VaccinationRecordRepository
func NewVaccinationRecordRepository(database *db.PostgresDB) *VaccinationRecordRepository {
	return &VaccinationRecordRepository{db: database}
}

// Create inserts a record. A zero VaccinationDate lets the database default to the current date.
func (r *VaccinationRecordRepository) Create(ctx context.Context, record *models.VaccinationRecord) (int64, error) {
	date := squirrel.Expr("CURRENT_DATE")
	if !record.VaccinationDate.IsZero() {
		date = squirrel.Expr("?", record.VaccinationDate)
	}

	query := psql.Insert("vaccination_records").
		Columns("student_id", "vaccine_name", "drive_name", "vaccination_date").
		Values(record.StudentID, record.VaccineName, record.DriveName, date).
		Suffix("RETURNING id, vaccination_date, created_at")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&record.ID, &record.VaccinationDate, &record.CreatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, RecordUniqueConstraint) {
			return 0, apperrors.ErrDuplicateVaccination
		}
		if dberrors.IsForeignKeyError(err) {
			return 0, apperrors.ErrStudentNotFound
		}
		return 0, fmt.Errorf("error creating vaccination record: %w", err)
	}

	return record.ID, nil
}

// ListByStudent returns a student's records ordered by date
func (r *VaccinationRecordRepository) ListByStudent(ctx context.Context, studentID int64) ([]models.VaccinationRecord, error) {
	query := psql.Select("id", "student_id", "vaccine_name", "drive_name", "vaccination_date", "created_at").
		From("vaccination_records").
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("vaccination_date ASC", "id ASC")

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing vaccination records: %w", err)
	}
	defer rows.Close()

	records := make([]models.VaccinationRecord, 0)
	for rows.Next() {
		var rec models.VaccinationRecord
		if err := rows.Scan(&rec.ID, &rec.StudentID, &rec.VaccineName, &rec.DriveName, &rec.VaccinationDate, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vaccination records: %w", err)
	}

	return records, nil
}
