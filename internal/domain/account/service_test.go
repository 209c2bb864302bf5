package account

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/asthmaguard/asthmaguard/internal/platform/apperror"
)

// -- Mock Repository --

type mockAccountRepo struct {
	store map[uuid.UUID]*Account
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{store: make(map[uuid.UUID]*Account)}
}

func (m *mockAccountRepo) Create(_ context.Context, a *Account) error {
	for _, existing := range m.store {
		if existing.Email == a.Email {
			return fmt.Errorf("email already registered: %w", apperror.ErrConflict)
		}
	}
	a.ID = uuid.New()
	m.store[a.ID] = a
	return nil
}

func (m *mockAccountRepo) GetByID(_ context.Context, id uuid.UUID) (*Account, error) {
	a, ok := m.store[id]
	if !ok {
		return nil, fmt.Errorf("account: %w", apperror.ErrNotFound)
	}
	return a, nil
}

func (m *mockAccountRepo) GetByEmail(_ context.Context, email string) (*Account, error) {
	for _, a := range m.store {
		if a.Email == email {
			return a, nil
		}
	}
	return nil, fmt.Errorf("account: %w", apperror.ErrNotFound)
}

func (m *mockAccountRepo) UpdateSettings(_ context.Context, id uuid.UUID, doctorPhone *string, personalBest *float64) error {
	a, ok := m.store[id]
	if !ok {
		return fmt.Errorf("account: %w", apperror.ErrNotFound)
	}
	if doctorPhone != nil {
		a.DoctorPhone = doctorPhone
	}
	if personalBest != nil {
		a.PersonalBest = personalBest
	}
	return nil
}

// -- Tests --

func TestRegister_HashesPassword(t *testing.T) {
	svc := NewService(newMockAccountRepo())

	a, err := svc.Register(context.Background(), "Pat Example", "pat@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if a.PasswordHash == "s3cret-password" {
		t.Fatal("password stored in plaintext")
	}
	if a.PasswordHash == "" {
		t.Fatal("expected a password hash")
	}
}

func TestRegister_DuplicateEmailConflicts(t *testing.T) {
	svc := NewService(newMockAccountRepo())

	if _, err := svc.Register(context.Background(), "Pat", "pat@example.com", "s3cret-password"); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, err := svc.Register(context.Background(), "Other", "pat@example.com", "another-password")
	if !errors.Is(err, apperror.ErrConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegister_Validation(t *testing.T) {
	svc := NewService(newMockAccountRepo())
	cases := []struct {
		name, fullName, email, password string
	}{
		{"empty name", "", "pat@example.com", "s3cret-password"},
		{"bad email", "Pat", "not-an-email", "s3cret-password"},
		{"short password", "Pat", "pat@example.com", "short"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.fullName, tc.email, tc.password)
			if !errors.Is(err, apperror.ErrValidation) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestAuthenticate_Success(t *testing.T) {
	svc := NewService(newMockAccountRepo())
	registered, err := svc.Register(context.Background(), "Pat", "pat@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	a, err := svc.Authenticate(context.Background(), "pat@example.com", "s3cret-password")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if a.ID != registered.ID {
		t.Errorf("account id = %s, want %s", a.ID, registered.ID)
	}
}

func TestAuthenticate_GenericFailure(t *testing.T) {
	svc := NewService(newMockAccountRepo())
	if _, err := svc.Register(context.Background(), "Pat", "pat@example.com", "s3cret-password"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, errWrongPassword := svc.Authenticate(context.Background(), "pat@example.com", "wrong")
	_, errUnknownEmail := svc.Authenticate(context.Background(), "nobody@example.com", "s3cret-password")

	if errWrongPassword == nil || errUnknownEmail == nil {
		t.Fatal("expected both failures to error")
	}
	// Identical message: the caller must not learn which field was wrong.
	if errWrongPassword.Error() != errUnknownEmail.Error() {
		t.Errorf("credential errors differ: %q vs %q", errWrongPassword, errUnknownEmail)
	}
}

func TestUpdateSettings_Validation(t *testing.T) {
	repo := newMockAccountRepo()
	svc := NewService(repo)
	a, _ := svc.Register(context.Background(), "Pat", "pat@example.com", "s3cret-password")

	badPhone := "no digits here"
	err := svc.UpdateSettings(context.Background(), a.ID, SettingsUpdate{DoctorPhone: &badPhone})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("expected validation error for digitless phone, got %v", err)
	}

	zero := 0.0
	err = svc.UpdateSettings(context.Background(), a.ID, SettingsUpdate{PersonalBest: &zero})
	if !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("expected validation error for zero personal best, got %v", err)
	}
}

func TestUpdateSettings_PersistsAndReadsBack(t *testing.T) {
	repo := newMockAccountRepo()
	svc := NewService(repo)
	a, _ := svc.Register(context.Background(), "Pat", "pat@example.com", "s3cret-password")

	phone := "+92 300-1234567"
	best := 500.0
	if err := svc.UpdateSettings(context.Background(), a.ID, SettingsUpdate{DoctorPhone: &phone, PersonalBest: &best}); err != nil {
		t.Fatalf("UpdateSettings: %v", err)
	}

	got, err := svc.PersonalBest(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("PersonalBest: %v", err)
	}
	if got != 500.0 {
		t.Errorf("personal best = %v, want 500", got)
	}

	settings, err := svc.Settings(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("Settings: %v", err)
	}
	if settings.DoctorPhone == nil || *settings.DoctorPhone != phone {
		t.Errorf("doctor phone = %v, want %q", settings.DoctorPhone, phone)
	}
}

func TestPersonalBest_UnsetIsZero(t *testing.T) {
	svc := NewService(newMockAccountRepo())
	a, _ := svc.Register(context.Background(), "Pat", "pat@example.com", "s3cret-password")

	got, err := svc.PersonalBest(context.Background(), a.ID)
	if err != nil {
		t.Fatalf("PersonalBest: %v", err)
	}
	if got != 0 {
		t.Errorf("unset personal best = %v, want 0", got)
	}
}
