package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: UniqueViolation, ConstraintName: "uq_vaccination_records_student_vaccine"}

	assert.True(t, IsDuplicateConstraintError(pgErr, "uq_vaccination_records_student_vaccine"))
	assert.True(t, IsDuplicateConstraintError(fmt.Errorf("insert: %w", pgErr), "uq_vaccination_records_student_vaccine"))
	assert.False(t, IsDuplicateConstraintError(pgErr, "users_username_key"))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), "uq_vaccination_records_student_vaccine"))
}

func TestIsForeignKeyError(t *testing.T) {
	assert.True(t, IsForeignKeyError(&pgconn.PgError{Code: ForeignKeyViolation}))
	assert.False(t, IsForeignKeyError(&pgconn.PgError{Code: UniqueViolation}))
}
