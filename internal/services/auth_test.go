package services

import (
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func strPtr(s string) *string { return &s }

func TestRegisterAndAuthenticate(t *testing.T) {
	f := newFixture(t)

	u, err := f.auth.Register(f.dbc, " alice ", strPtr("alice@example.com"), "s3cret")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if u.ID == 0 || u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
	if u.HashedPassword == "" || u.HashedPassword == "s3cret" {
		t.Fatalf("password must be stored hashed")
	}

	got, err := f.auth.Authenticate(f.dbc, "alice", "wrong")
	if err != nil || got != nil {
		t.Fatalf("wrong password: expected (nil, nil), got (%v, %v)", got, err)
	}
	got, err = f.auth.Authenticate(f.dbc, "nobody", "s3cret")
	if err != nil || got != nil {
		t.Fatalf("unknown user: expected (nil, nil), got (%v, %v)", got, err)
	}
	got, err = f.auth.Authenticate(f.dbc, "alice", "s3cret")
	if err != nil || got == nil || got.ID != u.ID {
		t.Fatalf("correct password: expected user %d, got (%v, %v)", u.ID, got, err)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	f := newFixture(t)

	if _, err := f.auth.Register(f.dbc, "bob", strPtr("bob@example.com"), "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := f.auth.Register(f.dbc, "bob", nil, "pw2")
	requireAPIError(t, err, http.StatusConflict, "username_taken")

	_, err = f.auth.Register(f.dbc, "bobby", strPtr("bob@example.com"), "pw2")
	requireAPIError(t, err, http.StatusConflict, "email_taken")

	if _, err := f.auth.Register(f.dbc, "carol", strPtr("  "), "pw"); err != nil {
		t.Fatalf("blank email should be treated as absent: %v", err)
	}
	if _, err := f.auth.Register(f.dbc, "dave", nil, "pw"); err != nil {
		t.Fatalf("second user without email: %v", err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	f := newFixture(t)
	u, err := f.auth.Register(f.dbc, "erin", nil, "pw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	tok, err := f.auth.IssueToken("erin", time.Minute)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	got, err := f.auth.ResolveToken(f.dbc, tok)
	if err != nil {
		t.Fatalf("ResolveToken: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("expected user %d, got %d", u.ID, got.ID)
	}

	// Any byte change in the signature must invalidate the token.
	tampered := tok[:len(tok)-2] + flip(tok[len(tok)-2:])
	_, err = f.auth.ResolveToken(f.dbc, tampered)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")

	_, err = f.auth.ResolveToken(f.dbc, "")
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")

	ghost, _ := f.auth.IssueToken("ghost", time.Minute)
	_, err = f.auth.ResolveToken(f.dbc, ghost)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")
}

func flip(s string) string {
	if strings.HasPrefix(s, "A") {
		return "B" + s[1:]
	}
	return "A" + s[1:]
}

func TestResolveTokenRejectsExpiredAndForeign(t *testing.T) {
	f := newFixture(t)
	if _, err := f.auth.Register(f.dbc, "frank", nil, "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	past := time.Now().Add(-time.Hour)
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "frank",
		IssuedAt:  jwt.NewNumericDate(past),
		ExpiresAt: jwt.NewNumericDate(past.Add(time.Minute)),
	})
	s, _ := expired.SignedString([]byte(testSecret))
	_, err := f.auth.ResolveToken(f.dbc, s)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "frank",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, _ = foreign.SignedString([]byte("other-secret"))
	_, err = f.auth.ResolveToken(f.dbc, s)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")

	noExpiry := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "frank"})
	s, _ = noExpiry.SignedString([]byte(testSecret))
	_, err = f.auth.ResolveToken(f.dbc, s)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "frank",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, _ = none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	_, err = f.auth.ResolveToken(f.dbc, s)
	requireAPIError(t, err, http.StatusUnauthorized, "unauthorized")
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	if _, err := f.auth.Register(f.dbc, "gina", nil, "pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}

	_, err := f.auth.Login(f.dbc, "gina", "nope")
	requireAPIError(t, err, http.StatusUnauthorized, "invalid_credentials")

	tok, err := f.auth.Login(f.dbc, "gina", "pw")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("parse issued token: %v", err)
	}
	if claims.Subject != "gina" {
		t.Fatalf("expected subject gina, got %q", claims.Subject)
	}
	ttl := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time)
	if ttl != f.auth.AccessTTL() {
		t.Fatalf("expected ttl %v, got %v", f.auth.AccessTTL(), ttl)
	}
}

func TestDisabledUser(t *testing.T) {
	f := newFixture(t)
	u, err := f.auth.Register(f.dbc, "hank", nil, "pw")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := f.tx.Model(u).Update("disabled", true).Error; err != nil {
		t.Fatalf("disable user: %v", err)
	}

	_, err = f.auth.Login(f.dbc, "hank", "pw")
	requireAPIError(t, err, http.StatusBadRequest, "inactive_user")

	tok, _ := f.auth.IssueToken("hank", time.Minute)
	if _, err := f.auth.ResolveToken(f.dbc, tok); err != nil {
		t.Fatalf("ResolveToken should not check disabled: %v", err)
	}
	_, err = f.auth.ActiveUser(f.dbc, tok)
	requireAPIError(t, err, http.StatusBadRequest, "inactive_user")
}

func TestIssueTokenDefaultTTL(t *testing.T) {
	f := newFixture(t)
	tok, err := f.auth.IssueToken("x", 0)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}
	claims := &jwt.RegisteredClaims{}
	if _, err := jwt.ParseWithClaims(tok, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got := claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time); got != DefaultTokenTTL {
		t.Fatalf("expected default ttl %v, got %v", DefaultTokenTTL, got)
	}
}
