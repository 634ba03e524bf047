package utils

import (
	"testing"
	"time"

	"consultify/config"
	"consultify/models"
)

func TestTokenRoundTrip(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	issued := models.Principal{ID: "c42", Name: "Asha", Role: models.RoleClient}
	token, err := GenerateToken(issued, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	got, err := PrincipalFromToken(token)
	if err != nil {
		t.Fatalf("PrincipalFromToken failed: %v", err)
	}
	if got != issued {
		t.Errorf("principal = %+v, want %+v", got, issued)
	}
}

func TestPrincipalFromToken_Invalid(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"

	if _, err := PrincipalFromToken("not-a-token"); err == nil {
		t.Errorf("expected an error for a malformed token")
	}

	expired, err := GenerateToken(models.Principal{ID: "c1", Role: models.RoleClient}, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	if _, err := PrincipalFromToken(expired); err == nil {
		t.Errorf("expected an error for an expired token")
	}
}

func TestPrincipalFromToken_WrongSecret(t *testing.T) {
	config.AppConfig.JWTSecret = "test-secret"
	token, err := GenerateToken(models.Principal{ID: "c1", Role: models.RoleClient}, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	config.AppConfig.JWTSecret = "another-secret"
	defer func() { config.AppConfig.JWTSecret = "test-secret" }()
	if _, err := PrincipalFromToken(token); err == nil {
		t.Errorf("expected a token signed with a different secret to be rejected")
	}
}
