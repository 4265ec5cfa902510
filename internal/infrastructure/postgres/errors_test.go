package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-api-signup/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapError_UniqueViolation(t *testing.T) {
	err := mapError(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "User already exists")

	err = mapError(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "users_username_key"}))
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "username already taken")
}

func TestMapError_NoRows(t *testing.T) {
	assert.True(t, errors.Is(mapError(pgx.ErrNoRows), domain.ErrNotFound))
}

func TestMapError_Passthrough(t *testing.T) {
	other := &pgconn.PgError{Code: "23503"}
	assert.Same(t, other, mapError(other))
	assert.Nil(t, mapError(nil))
}

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/app?sslmode=disable", migrateURL("postgres://u:p@db:5432/app?sslmode=disable"))
	assert.Equal(t, "pgx5://db/app", migrateURL("postgresql://db/app"))
	assert.Equal(t, "pgx5://db/app", migrateURL("pgx5://db/app"))
}

func TestMigrate_RejectsDirection(t *testing.T) {
	assert.ErrorContains(t, Migrate("postgres://db/app", "sideways"), "direction must be up or down")
}
