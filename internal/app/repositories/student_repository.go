package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/SheershikaSB/school-vaccination-portal/internal/app/models"
	"github.com/SheershikaSB/school-vaccination-portal/internal/db"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/apperrors"
)

var studentColumns = []string{
	"id", "name", "grade", "dob", "vaccinated", "vaccine_name", "drive_name", "created_at", "updated_at",
}

// likeEscaper escapes LIKE wildcards so search terms match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *db.PostgresDB
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(database *db.PostgresDB) *StudentRepository {
	return &StudentRepository{db: database}
}

// Create inserts a student and returns its id
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	query := psql.Insert("students").
		Columns("name", "grade", "dob").
		Values(student.Name, student.Grade, student.DateOfBirth).
		Suffix("RETURNING id, created_at, updated_at")

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	err = r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		return 0, fmt.Errorf("error creating student: %w", err)
	}

	return student.ID, nil
}

// GetByID retrieves a student by ID
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := psql.Select(studentColumns...).
		From("students").
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var s models.Student
	err = r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(
		&s.ID,
		&s.Name,
		&s.Grade,
		&s.DateOfBirth,
		&s.Vaccinated,
		&s.VaccineName,
		&s.DriveName,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &s, nil
}

// Exists reports whether a student with id exists
func (r *StudentRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := psql.Select("1").Prefix("SELECT EXISTS (").
		From("students").
		Where(squirrel.Eq{"id": id}).
		Suffix(")")

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var exists bool
	if err := r.db.Querier(ctx).QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking student: %w", err)
	}
	return exists, nil
}

// Update overwrites the editable student fields. Vaccination columns are
// only changed through MarkVaccinated.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := psql.Update("students").
		Set("name", student.Name).
		Set("grade", student.Grade).
		Set("dob", student.DateOfBirth).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": student.ID})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// MarkVaccinated sets the denormalised vaccination columns of a student
func (r *StudentRepository) MarkVaccinated(ctx context.Context, id int64, vaccineName string, driveName *string) error {
	query := psql.Update("students").
		Set("vaccinated", true).
		Set("vaccine_name", vaccineName).
		Set("drive_name", driveName).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Querier(ctx).Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error updating student vaccination: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Search returns one row per student whose name or grade contains term
// (case-insensitive) or whose id contains it. An empty term matches all.
func (r *StudentRepository) Search(ctx context.Context, term string) ([]models.StudentSummary, error) {
	query := psql.Select(
		"s.id", "s.name", "s.grade", "s.dob",
		"CASE WHEN EXISTS (SELECT 1 FROM vaccination_records v WHERE v.student_id = s.id) "+
			"THEN '"+models.StatusVaccinated+"' ELSE '"+models.StatusNotVaccinated+"' END",
	).
		From("students s").
		OrderBy("s.name ASC", "s.id ASC")

	if term = strings.TrimSpace(term); term != "" {
		pattern := "%" + likeEscaper.Replace(term) + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"s.name": pattern},
			squirrel.ILike{"s.grade": pattern},
			squirrel.Expr("s.id::text LIKE ?", pattern),
		})
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Querier(ctx).Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error searching students: %w", err)
	}
	defer rows.Close()

	students := make([]models.StudentSummary, 0)
	for rows.Next() {
		var s models.StudentSummary
		if err := rows.Scan(&s.ID, &s.Name, &s.Grade, &s.DateOfBirth, &s.VaccinationStatus); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating students: %w", err)
	}

	return students, nil
}
