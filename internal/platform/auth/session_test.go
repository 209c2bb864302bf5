package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func testConfig() SessionConfig {
	return SessionConfig{Secret: []byte("test-secret-0123456789abcdef0123"), TTL: time.Hour}
}

func TestTokenRoundTrip(t *testing.T) {
	cfg := testConfig()
	accountID := uuid.New()

	token, err := NewToken(cfg, accountID, "pat@example.com", "Pat Example")
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	ident, err := ParseToken(cfg, token)
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if ident.AccountID != accountID {
		t.Errorf("account id = %s, want %s", ident.AccountID, accountID)
	}
	if ident.Email != "pat@example.com" {
		t.Errorf("email = %s", ident.Email)
	}
	if ident.FullName != "Pat Example" {
		t.Errorf("full name = %s", ident.FullName)
	}
}

func TestParseToken_RejectsWrongSecret(t *testing.T) {
	cfg := testConfig()
	token, err := NewToken(cfg, uuid.New(), "a@b.c", "A")
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	other := SessionConfig{Secret: []byte("another-secret-entirely-32bytes!"), TTL: time.Hour}
	if _, err := ParseToken(other, token); err == nil {
		t.Fatal("expected error for token signed with a different secret")
	}
}

func TestParseToken_RejectsExpired(t *testing.T) {
	cfg := SessionConfig{Secret: testConfig().Secret, TTL: -time.Minute}
	token, err := NewToken(cfg, uuid.New(), "a@b.c", "A")
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if _, err := ParseToken(testConfig(), token); err == nil {
		t.Fatal("expected error for expired token")
	}
}

func TestSessionMiddleware_AttachesIdentity(t *testing.T) {
	cfg := testConfig()
	accountID := uuid.New()
	token, _ := NewToken(cfg, accountID, "pat@example.com", "Pat Example")

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		ident, ok := IdentityFromContext(c.Request().Context())
		if !ok {
			t.Fatal("expected identity on request context")
		}
		if ident.AccountID != accountID {
			t.Errorf("account id = %s, want %s", ident.AccountID, accountID)
		}
		return c.NoContent(http.StatusOK)
	}

	if err := SessionMiddleware(cfg)(handler)(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSessionMiddleware_RejectsMissingHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := SessionMiddleware(testConfig())(handler)(c)
	if err == nil {
		t.Fatal("expected error without authorization header")
	}
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestSessionMiddleware_RejectsMalformedHeader(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	c := e.NewContext(req, httptest.NewRecorder())

	handler := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := SessionMiddleware(testConfig())(handler)(c)
	httpErr, ok := err.(*echo.HTTPError)
	if !ok || httpErr.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %v", err)
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("s3cret-password")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-password" {
		t.Fatal("hash must not equal the plaintext password")
	}
	if err := CheckPassword(hash, "s3cret-password"); err != nil {
		t.Errorf("expected matching password to verify: %v", err)
	}
	if err := CheckPassword(hash, "wrong-password"); err == nil {
		t.Error("expected mismatch for wrong password")
	}
}
