package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/db"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/apperrors"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/dberrors"
)

// DriveUniqueConstraint guards against two drives for the same vaccine, date and grades.
const DriveUniqueConstraint = "uq_vaccination_drives_vaccine_date_grades"

var driveColumns = []string{
	"id", "drive_name", "vaccine_name", "drive_date", "available_doses", "applicable_grades", "created_at", "updated_at",
}

// DriveRepository handles database operations for vaccination drives
type DriveRepository struct {
	db *db.PostgresDB
}

// NewDriveRepository creates a new DriveRepository
func NewDriveRepository(database *db.PostgresDB) *DriveRepository {
	return &DriveRepository{db: database}
}

// Create inserts a drive. A duplicate (vaccine, date, grades) yields ErrDuplicateDrive.
func (r *DriveRepository) Create(ctx context.Context, drive *models.VaccinationDrive) (int64, error) {
	query := psql.Insert("vaccination_drives").
		Columns("drive_name", "vaccine_name", "drive_date", "available_doses", "applicable_grades").
		Values(drive.DriveName, drive.VaccineName, drive.DriveDate, drive.AvailableDoses, drive.ApplicableGrades).
		Suffix("RETURNING id, created_at, updated_at")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&drive.ID, &drive.CreatedAt, &drive.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, DriveUniqueConstraint) {
			return 0, apperrors.ErrDuplicateDrive
		}
		return 0, fmt.Errorf("error creating drive: %w", err)
	}

	return drive.ID, nil
}

// GetByID retrieves a drive by ID
func (r *DriveRepository) GetByID(ctx context.Context, id int64) (*models.VaccinationDrive, error) {
	query := psql.Select(driveColumns...).
		From("vaccination_drives").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	drive, err := scanDrive(r.db.Querier(ctx).QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDriveNotFound
		}
		return nil, fmt.Errorf("error retrieving drive: %w", err)
	}

	return drive, nil
}

// Update overwrites every mutable drive field and bumps updated_at
func (r *DriveRepository) Update(ctx context.Context, drive *models.VaccinationDrive) error {
	query := psql.Update("vaccination_drives").
		Set("drive_name", drive.DriveName).
		Set("vaccine_name", drive.VaccineName).
		Set("drive_date", drive.DriveDate).
		Set("available_doses", drive.AvailableDoses).
		Set("applicable_grades", drive.ApplicableGrades).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": drive.ID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, DriveUniqueConstraint) {
			return apperrors.ErrDuplicateDrive
		}
		return fmt.Errorf("error updating drive: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrDriveNotFound
	}

	return nil
}

// List returns all drives ordered by date
func (r *DriveRepository) List(ctx context.Context) ([]models.VaccinationDrive, error) {
	return r.list(ctx, psql.Select(driveColumns...).From("vaccination_drives"))
}

// ListBetween returns drives whose date falls in [from, to], inclusive
func (r *DriveRepository) ListBetween(ctx context.Context, from, to time.Time) ([]models.VaccinationDrive, error) {
	return r.list(ctx, psql.Select(driveColumns...).
		From("vaccination_drives").
		Where(squirrel.GtOrEq{"drive_date": from}).
		Where(squirrel.LtOrEq{"drive_date": to}))
}

func (r *DriveRepository) list(ctx context.Context, query squirrel.SelectBuilder) ([]models.VaccinationDrive, error) {
	sql, args, err := query.OrderBy("drive_date ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing drives: %w", err)
	}
	defer rows.Close()

	drives := make([]models.VaccinationDrive, 0)
	for rows.Next() {
		drive, err := scanDrive(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		drives = append(drives, *drive)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating drives: %w", err)
	}

	return drives, nil
}

func scanDrive(row pgx.Row) (*models.VaccinationDrive, error) {
	var d models.VaccinationDrive
	err := row.Scan(
		&d.ID,
		&d.DriveName,
		&d.VaccineName,
		&d.DriveDate,
		&d.AvailableDoses,
		&d.ApplicableGrades,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
