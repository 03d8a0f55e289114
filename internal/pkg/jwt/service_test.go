package jwt

import (
	"errors"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func signTestToken(t *testing.T, secret, tokenType, email string, userID uuid.UUID, ttl time.Duration) string {
	t.Helper()

	now := time.Now().UTC()
	c := Claims{
		UserID:    userID,
		Email:     email,
		TokenType: tokenType,
		IssuedAt:  now,
		ExpiredAt: now.Add(ttl),
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			Subject:   userID.String(),
		},
	}

	tok, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, c).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return tok
}

func TestValidateToken_AccessToken(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret")
	userID := uuid.New()

	tok := signTestToken(t, "access-secret", TokenTypeAccess, "seeker@acme.test", userID, time.Hour)

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if claims.UserID != userID {
		t.Fatalf("expected user %s, got %s", userID, claims.UserID)
	}
	if claims.Email != "seeker@acme.test" {
		t.Fatalf("unexpected email %q", claims.Email)
	}
	if svc.IsRefreshToken(claims) {
		t.Fatalf("access token must not classify as refresh")
	}
}

func TestValidateToken_RefreshTokenClassified(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret")

	tok := signTestToken(t, "refresh-secret", TokenTypeRefresh, "", uuid.New(), time.Hour)

	claims, err := svc.ValidateToken(tok)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !svc.IsRefreshToken(claims) {
		t.Fatalf("refresh token must classify as refresh")
	}
}

func TestValidateToken_WrongSecret(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret")

	tok := signTestToken(t, "other-secret", TokenTypeAccess, "", uuid.New(), time.Hour)

	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestValidateToken_Expired(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret")

	tok := signTestToken(t, "access-secret", TokenTypeAccess, "", uuid.New(), -time.Minute)

	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
}

func TestValidateToken_UnknownTokenType(t *testing.T) {
	svc := NewHMACService("access-secret", "refresh-secret")

	tok := signTestToken(t, "access-secret", "session", "", uuid.New(), time.Hour)

	if _, err := svc.ValidateToken(tok); !errors.Is(err, ErrTokenInvalid) {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}
