package registration

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-api-signup/internal/domain"
	"github.com/stretchr/testify/mock"
)

// fakeDB is an in-memory AccountTx backend. Inserts are visible immediately
// and removed again on rollback, which mirrors a unique index blocking
// concurrent writers closely enough for these tests.
type fakeDB struct {
	mu       sync.Mutex
	accounts map[int64]*domain.Account
	nextID   int64

	countries map[string]int64
	states    map[int64]map[string]int64
	cities    map[[2]int64]map[string]int64

	// beforeCheck runs at the start of AccountExists, outside the lock.
	beforeCheck func()
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		accounts:  map[int64]*domain.Account{},
		countries: map[string]int64{"nigeria": 1},
		states:    map[int64]map[string]int64{1: {"lagos": 10}},
		cities:    map[[2]int64]map[string]int64{{1, 10}: {"ikeja": 100}},
	}
}

func (db *fakeDB) InTx(ctx context.Context, fn func(domain.AccountTx) error) (err error) {
	tx := &fakeTx{db: db}
	defer func() {
		if r := recover(); r != nil {
			tx.rollback()
			panic(r)
		}
		if err != nil {
			tx.rollback()
			return
		}
		tx.commit()
	}()
	return fn(tx)
}

func (db *fakeDB) snapshot() []domain.Account {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]domain.Account, 0, len(db.accounts))
	for _, a := range db.accounts {
		out = append(out, *a)
	}
	return out
}

type activation struct {
	id   int64
	hash string
	at   time.Time
}

type fakeTx struct {
	db          *fakeDB
	inserted    []int64
	activations []activation
}

func (tx *fakeTx) rollback() {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	for _, id := range tx.inserted {
		delete(tx.db.accounts, id)
	}
}

func (tx *fakeTx) commit() {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	for _, a := range tx.activations {
		acct := tx.db.accounts[a.id]
		h := a.hash
		acct.PasswordHash, acct.Active, acct.UpdatedAt = &h, true, a.at
	}
}

func sameValue(a, b *string) bool { return a != nil && b != nil && *a == *b }

func (tx *fakeTx) AccountExists(ctx context.Context, email, phone *string) (bool, error) {
	if tx.db.beforeCheck != nil {
		tx.db.beforeCheck()
	}
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	for _, a := range tx.db.accounts {
		if sameValue(a.Email, email) || sameValue(a.MobileNumber, phone) {
			return true, nil
		}
	}
	return false, nil
}

func (tx *fakeTx) CountryIDByName(ctx context.Context, name string) (int64, error) {
	if id, ok := tx.db.countries[strings.ToLower(name)]; ok {
		return id, nil
	}
	return 0, domain.ErrNotFound
}

func (tx *fakeTx) StateIDByName(ctx context.Context, countryID int64, name string) (int64, error) {
	if id, ok := tx.db.states[countryID][strings.ToLower(name)]; ok {
		return id, nil
	}
	return 0, domain.ErrNotFound
}

func (tx *fakeTx) CityIDByName(ctx context.Context, countryID, stateID int64, name string) (int64, error) {
	if id, ok := tx.db.cities[[2]int64{countryID, stateID}][strings.ToLower(name)]; ok {
		return id, nil
	}
	return 0, domain.ErrNotFound
}

func (tx *fakeTx) InsertAccount(ctx context.Context, a *domain.Account) error {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	for _, existing := range tx.db.accounts {
		if existing.Username == a.Username || sameValue(existing.Email, a.Email) || sameValue(existing.MobileNumber, a.MobileNumber) {
			return fmt.Errorf("%s: %w", msgAccountExists, domain.ErrConflict)
		}
	}
	tx.db.nextID++
	a.ID = tx.db.nextID
	cp := *a
	tx.db.accounts[a.ID] = &cp
	tx.inserted = append(tx.inserted, a.ID)
	return nil
}

func (tx *fakeTx) PendingAccountByPhone(ctx context.Context, phone string) (*domain.Account, error) {
	tx.db.mu.Lock()
	defer tx.db.mu.Unlock()
	for _, a := range tx.db.accounts {
		if a.MobileNumber != nil && *a.MobileNumber == phone && a.Pending() {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (tx *fakeTx) ActivateAccount(ctx context.Context, accountID int64, passwordHash string, at time.Time) error {
	tx.activations = append(tx.activations, activation{id: accountID, hash: passwordHash, at: at})
	return nil
}

type fakeVerifications struct {
	mu     sync.Mutex
	items  map[string]domain.UserVerification
	putErr error
}

func newFakeVerifications() *fakeVerifications {
	return &fakeVerifications{items: map[string]domain.UserVerification{}}
}

func (f *fakeVerifications) Put(ctx context.Context, v *domain.UserVerification) error {
	if f.putErr != nil {
		return f.putErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[v.UserID+"#"+v.Type] = *v
	return nil
}

func (f *fakeVerifications) Get(ctx context.Context, userID, verType string) (*domain.UserVerification, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.items[userID+"#"+verType]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &v, nil
}

func (f *fakeVerifications) Delete(ctx context.Context, userID, verType string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.items, userID+"#"+verType)
	return nil
}

type mockNotifier struct{ mock.Mock }

func (m *mockNotifier) SendSMS(to, message string) string {
	return m.Called(to, message).String(0)
}

func (m *mockNotifier) SendEmail(to, subject, body string) string {
	return m.Called(to, subject, body).String(0)
}
