package domain

import (
	"context"
	"time"
)

// AccountTx is the set of queries available inside a registration
// transaction. Lookups return ErrNotFound for missing rows; InsertAccount
// returns ErrConflict when a unique constraint rejects the row.
type AccountTx interface {
	AccountExists(ctx context.Context, email, phone *string) (bool, error)
	CountryIDByName(ctx context.Context, name string) (int64, error)
	StateIDByName(ctx context.Context, countryID int64, name string) (int64, error)
	CityIDByName(ctx context.Context, countryID, stateID int64, name string) (int64, error)
	InsertAccount(ctx context.Context, a *Account) error
	PendingAccountByPhone(ctx context.Context, phone string) (*Account, error)
	ActivateAccount(ctx context.Context, accountID int64, passwordHash string, at time.Time) error
}
