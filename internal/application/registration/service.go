package registration

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-api-signup/internal/application/location"
	"github.com/go-api-signup/internal/domain"
	"github.com/go-api-signup/internal/pkg/token"
	"github.com/go-api-signup/internal/pkg/validate"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const (
	otpDigits         = 6
	defaultOTPTTL     = 15 * time.Minute
	msgRegistered     = "User registered successfully"
	msgAccountExists  = "User already exists with this email or phone"
	welcomeSubject    = "Welcome"
	welcomeBodyFormat = "Hi %s, your account has been created."
)

// Store runs fn inside one database transaction. The transaction commits
// when fn returns nil and rolls back otherwise.
type Store interface {
	InTx(ctx context.Context, fn func(domain.AccountTx) error) error
}

type verificationStore interface {
	Put(ctx context.Context, v *domain.UserVerification) error
	Get(ctx context.Context, userID, verType string) (*domain.UserVerification, error)
	Delete(ctx context.Context, userID, verType string) error
}

// Notifier delivers messages without blocking the caller.
type Notifier interface {
	SendSMS(to, message string) string
	SendEmail(to, subject, body string) string
}

type Service interface {
	Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegistrationResult, error)
	ConfirmOTP(ctx context.Context, req domain.ConfirmOTPRequest) error
}

// ServiceDeps groups the dependencies of the registration service.
type ServiceDeps struct {
	Store         Store
	Verifications verificationStore
	Notifier      Notifier
	OTPTTL        time.Duration
	BcryptCost    int
	Now           func() time.Time
	Log           *zap.Logger
}

type service struct {
	store         Store
	verifications verificationStore
	notifier      Notifier
	otpTTL        time.Duration
	bcryptCost    int
	now           func() time.Time
	log           *zap.Logger
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		store:         deps.Store,
		verifications: deps.Verifications,
		notifier:      deps.Notifier,
		otpTTL:        deps.OTPTTL,
		bcryptCost:    deps.BcryptCost,
		now:           deps.Now,
		log:           deps.Log,
	}
	if s.otpTTL <= 0 {
		s.otpTTL = defaultOTPTTL
	}
	if s.bcryptCost == 0 {
		s.bcryptCost = bcrypt.DefaultCost
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	return s
}

func (s *service) Register(ctx context.Context, req domain.RegisterRequest) (*domain.RegistrationResult, error) {
	req.Normalize()
	if err := validate.Struct(&req); err != nil {
		return nil, err
	}
	otp := req.WantsOTP()

	var hash *string
	if !otp {
		h, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		hs := string(h)
		hash = &hs
	}

	now := s.now().UTC()
	acct := &domain.Account{
		Username:     req.FullName,
		Email:        req.Email,
		MobileNumber: phone(req.PhoneNumber),
		PasswordHash: hash,
		Active:       !otp,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	var code string
	err := s.store.InTx(ctx, func(tx domain.AccountTx) error {
		exists, err := tx.AccountExists(ctx, acct.Email, acct.MobileNumber)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("%s: %w", msgAccountExists, domain.ErrConflict)
		}
		loc, err := location.Resolve(ctx, tx, req.Location())
		if err != nil {
			return err
		}
		acct.CountryID, acct.StateID, acct.CityID = loc.CountryID, loc.StateID, loc.CityID
		if err := tx.InsertAccount(ctx, acct); err != nil {
			return err
		}
		if otp {
			// A failed Put rolls the pending account back with it. A code left
			// behind by a failed commit points at an id that is never reused.
			code, err = s.storeOTP(ctx, acct.ID, now)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if otp {
		dispatchID := s.notifier.SendSMS(*acct.MobileNumber, "Your verification code is "+code)
		s.log.Info("pending account registered",
			zap.Int64("account_id", acct.ID), zap.String("dispatch_id", dispatchID))
		return &domain.RegistrationResult{Message: "OTP sent to " + *acct.MobileNumber}, nil
	}

	if acct.Email != nil {
		s.notifier.SendEmail(*acct.Email, welcomeSubject, fmt.Sprintf(welcomeBodyFormat, acct.Username))
	}
	s.log.Info("account registered", zap.Int64("account_id", acct.ID))
	return &domain.RegistrationResult{
		Message: msgRegistered,
		User: &domain.RegisteredUser{
			ID:           acct.ID,
			Username:     acct.Username,
			Email:        acct.Email,
			MobileNumber: acct.MobileNumber,
			Country:      req.Country,
			State:        req.State,
			City:         req.City,
		},
	}, nil
}

// storeOTP saves a fresh code for the pending account and returns it.
func (s *service) storeOTP(ctx context.Context, accountID int64, now time.Time) (string, error) {
	code, err := token.NewOTP(otpDigits)
	if err != nil {
		return "", err
	}
	v := &domain.UserVerification{
		UserID:    strconv.FormatInt(accountID, 10),
		Type:      domain.VerificationOTP,
		Code:      code,
		ExpiresAt: now.Add(s.otpTTL).Unix(),
	}
	if err := s.verifications.Put(ctx, v); err != nil {
		return "", fmt.Errorf("store otp: %w", err)
	}
	return code, nil
}

func (s *service) ConfirmOTP(ctx context.Context, req domain.ConfirmOTPRequest) error {
	if err := validate.Struct(&req); err != nil {
		return err
	}
	h, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	var userID string
	err = s.store.InTx(ctx, func(tx domain.AccountTx) error {
		acct, err := tx.PendingAccountByPhone(ctx, string(req.PhoneNumber))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("no pending registration for %s: %w", req.PhoneNumber, domain.ErrNotFound)
			}
			return err
		}
		userID = strconv.FormatInt(acct.ID, 10)

		v, err := s.verifications.Get(ctx, userID, domain.VerificationOTP)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return fmt.Errorf("OTP expired: %w", domain.ErrUnauthorized)
			}
			return err
		}
		// DynamoDB TTL deletion is lazy, so expiry is checked here too.
		if v.ExpiresAt < s.now().Unix() {
			return fmt.Errorf("OTP expired: %w", domain.ErrUnauthorized)
		}
		if v.Code != req.OTP {
			return fmt.Errorf("invalid OTP: %w", domain.ErrUnauthorized)
		}
		return tx.ActivateAccount(ctx, acct.ID, string(h), s.now().UTC())
	})
	if err != nil {
		return err
	}

	if err := s.verifications.Delete(ctx, userID, domain.VerificationOTP); err != nil {
		s.log.Warn("failed to delete OTP verification record", zap.String("user_id", userID), zap.Error(err))
	}
	s.log.Info("account activated", zap.String("user_id", userID))
	return nil
}

func phone(p *domain.PhoneNumber) *string {
	if p == nil || *p == "" {
		return nil
	}
	s := string(*p)
	return &s
}
