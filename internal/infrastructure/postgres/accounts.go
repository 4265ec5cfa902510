package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/go-api-signup/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// dbtx is the subset of pgx.Tx the queries need.
type dbtx interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Queries implements domain.AccountTx on top of an open transaction.
type Queries struct {
	db dbtx
}

var _ domain.AccountTx = (*Queries)(nil)

func (q *Queries) AccountExists(ctx context.Context, email, phone *string) (bool, error) {
	var exists bool
	err := q.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM users WHERE email = $1::text OR mobile_number = $2::text
		)`, email, phone).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check existing account: %w", err)
	}
	return exists, nil
}

func (q *Queries) InsertAccount(ctx context.Context, a *domain.Account) error {
	err := q.db.QueryRow(ctx, `
		INSERT INTO users (
			username, email, password, mobile_number,
			country_id, region_id, city_id,
			created_at, updated_at, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id`,
		a.Username, a.Email, a.PasswordHash, a.MobileNumber,
		a.CountryID, a.StateID, a.CityID,
		a.CreatedAt, a.UpdatedAt, a.Active,
	).Scan(&a.ID)
	if err != nil {
		return mapError(err)
	}
	return nil
}

// PendingAccountByPhone locks and returns the inactive account awaiting OTP
// confirmation for phone.
func (q *Queries) PendingAccountByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	a := &domain.Account{}
	err := q.db.QueryRow(ctx, `
		SELECT id, username, email, mobile_number, password,
		       country_id, region_id, city_id, is_active, created_at, updated_at
		FROM users
		WHERE mobile_number = $1 AND NOT is_active AND password IS NULL
		FOR UPDATE`, phone).Scan(
		&a.ID, &a.Username, &a.Email, &a.MobileNumber, &a.PasswordHash,
		&a.CountryID, &a.StateID, &a.CityID, &a.Active, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	return a, nil
}

func (q *Queries) ActivateAccount(ctx context.Context, accountID int64, passwordHash string, at time.Time) error {
	tag, err := q.db.Exec(ctx, `
		UPDATE users
		SET password = $2, is_active = TRUE, updated_at = $3
		WHERE id = $1 AND NOT is_active`, accountID, passwordHash, at)
	if err != nil {
		return fmt.Errorf("activate account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("pending account %d: %w", accountID, domain.ErrNotFound)
	}
	return nil
}
