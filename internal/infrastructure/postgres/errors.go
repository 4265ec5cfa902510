package postgres

import (
	"errors"
	"fmt"

	"github.com/go-api-signup/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// mapError translates driver errors into domain sentinels. Unique violations
// on users become ErrConflict; missing rows become ErrNotFound.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		if pgErr.ConstraintName == "users_username_key" {
			return fmt.Errorf("username already taken: %w", domain.ErrConflict)
		}
		return fmt.Errorf("User already exists with this email or phone: %w", domain.ErrConflict)
	}
	return err
}
