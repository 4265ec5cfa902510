package postgres

import (
	"context"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/go-api-signup/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// These tests need a disposable PostgreSQL database; set TEST_DATABASE_URL to run them.
func newTestStore(t *testing.T) (*Store, *pgxpool.Pool) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, Migrate(dsn, "up"))

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE users, cities, states, countries RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	_, err = pool.Exec(ctx, `
		INSERT INTO countries (id, name, phonecode) VALUES (1, 'United States', 1), (2, 'India', 91);
		INSERT INTO states (id, name, country_id, country_code) VALUES (1, 'Texas', 1, 'US'), (2, 'Kerala', 2, 'IN');
		INSERT INTO cities (id, name, state_id, country_id) VALUES (1, 'Austin', 1, 1), (2, 'Kochi', 2, 2);`)
	require.NoError(t, err)

	return NewStore(pool, 5*time.Second, zap.NewNop()), pool
}

func strPtr(s string) *string { return &s }

func newAccount(username, email string) *domain.Account {
	now := time.Now().UTC()
	return &domain.Account{
		Username: username, Email: strPtr(email), PasswordHash: strPtr("hash"),
		Active: true, CreatedAt: now, UpdatedAt: now,
	}
}

func TestStore_LocationLookups(t *testing.T) {
	s, _ := newTestStore(t)
	err := s.InTx(context.Background(), func(q domain.AccountTx) error {
		ctx := context.Background()
		id, err := q.CountryIDByName(ctx, "united STATES")
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)

		id, err = q.StateIDByName(ctx, 1, "texas")
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)

		_, err = q.StateIDByName(ctx, 2, "Texas")
		assert.True(t, errors.Is(err, domain.ErrNotFound))

		_, err = q.CountryIDByName(ctx, "United%")
		assert.True(t, errors.Is(err, domain.ErrNotFound), "names are not patterns")

		id, err = q.CityIDByName(ctx, 1, 1, "AUSTIN")
		require.NoError(t, err)
		assert.Equal(t, int64(1), id)
		return nil
	})
	require.NoError(t, err)
}

func TestStore_RollbackOnError(t *testing.T) {
	s, pool := newTestStore(t)
	boom := errors.New("boom")
	err := s.InTx(context.Background(), func(q domain.AccountTx) error {
		require.NoError(t, q.InsertAccount(context.Background(), newAccount("alice", "alice@example.com")))
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var n int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT count(*) FROM users`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestStore_RollbackOnPanic(t *testing.T) {
	s, pool := newTestStore(t)
	assert.Panics(t, func() {
		_ = s.InTx(context.Background(), func(q domain.AccountTx) error {
			require.NoError(t, q.InsertAccount(context.Background(), newAccount("alice", "alice@example.com")))
			panic("fault")
		})
	})
	var n int
	require.NoError(t, pool.QueryRow(context.Background(), `SELECT count(*) FROM users`).Scan(&n))
	assert.Equal(t, 0, n)
	assert.Equal(t, int32(0), pool.Stat().AcquiredConns())
}

func TestStore_UniqueEmailIsConflict(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, s.InTx(ctx, func(q domain.AccountTx) error {
		return q.InsertAccount(ctx, newAccount("alice", "alice@example.com"))
	}))
	err := s.InTx(ctx, func(q domain.AccountTx) error {
		return q.InsertAccount(ctx, newAccount("alice2", "alice@example.com"))
	})
	assert.True(t, errors.Is(err, domain.ErrConflict))
}

func TestStore_ConcurrentInsertsOneWins(t *testing.T) {
	s, pool := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = s.InTx(ctx, func(q domain.AccountTx) error {
				exists, err := q.AccountExists(ctx, strPtr("race@example.com"), nil)
				if err != nil || exists {
					return domain.ErrConflict
				}
				return q.InsertAccount(ctx, newAccount([]string{"racer-a", "racer-b"}[i], "race@example.com"))
			})
		}(i)
	}
	wg.Wait()

	conflicts := 0
	for _, err := range errs {
		if err != nil {
			assert.True(t, errors.Is(err, domain.ErrConflict), err.Error())
			conflicts++
		}
	}
	assert.Equal(t, 1, conflicts)
	var n int
	require.NoError(t, pool.QueryRow(ctx, `SELECT count(*) FROM users WHERE email = 'race@example.com'`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestStore_PendingAccountLifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Now().UTC()
	pending := &domain.Account{Username: "bob", MobileNumber: strPtr("+15551234567"), CreatedAt: now, UpdatedAt: now}

	require.NoError(t, s.InTx(ctx, func(q domain.AccountTx) error { return q.InsertAccount(ctx, pending) }))
	require.NotZero(t, pending.ID)

	require.NoError(t, s.InTx(ctx, func(q domain.AccountTx) error {
		a, err := q.PendingAccountByPhone(ctx, "+15551234567")
		require.NoError(t, err)
		assert.True(t, a.Pending())
		return q.ActivateAccount(ctx, a.ID, "hash", time.Now().UTC())
	}))

	err := s.InTx(ctx, func(q domain.AccountTx) error {
		_, err := q.PendingAccountByPhone(ctx, "+15551234567")
		return err
	})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
