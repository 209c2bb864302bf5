package account

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
	"github.com/asthmaguard/asthmaguard/internal/platform/auth"
)

type Service struct {
	accounts AccountRepository
}

func NewService(accounts AccountRepository) *Service {
	return &Service{accounts: accounts}
}

// Register creates a new account with a bcrypt-hashed password. A duplicate
// email surfaces as a conflict from the repository.
func (s *Service) Register(ctx context.Context, fullName, email, password string) (*Account, error) {
	if strings.TrimSpace(fullName) == "" {
		return nil, fmt.Errorf("full name is required: %w", apperror.ErrValidation)
	}
	if !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address: %w", apperror.ErrValidation)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("password must be at least 8 characters: %w", apperror.ErrValidation)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	a := &Account{
		FullName:     fullName,
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.accounts.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Authenticate verifies an email/password pair. Every failure path returns
// the same generic error so the response never reveals whether the email or
// the password was wrong.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	invalid := fmt.Errorf("invalid credentials: %w", apperror.ErrNotFound)

	a, err := s.accounts.GetByEmail(ctx, email)
	if err != nil {
		return nil, invalid
	}
	if err := auth.CheckPassword(a.PasswordHash, password); err != nil {
		return nil, invalid
	}
	return a, nil
}

// Settings returns the stored profile for an account.
func (s *Service) Settings(ctx context.Context, accountID uuid.UUID) (*Account, error) {
	return s.accounts.GetByID(ctx, accountID)
}

// SettingsUpdate carries optional settings fields; nil leaves a field
// unchanged.
type SettingsUpdate struct {
	DoctorPhone  *string  `json:"doctor_phone"`
	PersonalBest *float64 `json:"personal_best"`
}

// UpdateSettings saves the doctor phone and/or personal best for an account.
func (s *Service) UpdateSettings(ctx context.Context, accountID uuid.UUID, in SettingsUpdate) error {
	if in.DoctorPhone != nil && !containsDigit(*in.DoctorPhone) {
		return fmt.Errorf("doctor phone must contain at least one digit: %w", apperror.ErrValidation)
	}
	if in.PersonalBest != nil && *in.PersonalBest <= 0 {
		return fmt.Errorf("personal best must be positive: %w", apperror.ErrValidation)
	}
	return s.accounts.UpdateSettings(ctx, accountID, in.DoctorPhone, in.PersonalBest)
}

// PersonalBest returns the stored personal best, or 0 when it has never
// been set. Callers classifying a reading reject a non-positive denominator.
func (s *Service) PersonalBest(ctx context.Context, accountID uuid.UUID) (float64, error) {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return 0, err
	}
	if a.PersonalBest == nil {
		return 0, nil
	}
	return *a.PersonalBest, nil
}

func containsDigit(s string) bool {
	for _, r := range s {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
