package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestGenerateAndValidateTokens(t *testing.T) {
	access, refresh, err := GenerateTokens("ADMIN", 42)
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}

	for name, token := range map[string]string{"access": access, "refresh": refresh} {
		claims, err := ValidateToken(token)
		if err != nil {
			t.Fatalf("%s token did not validate: %v", name, err)
		}
		if role := claims["role"].(string); role != "ADMIN" {
			t.Errorf("%s token role = %q, want ADMIN", name, role)
		}
		if id := claims["id"].(float64); uint(id) != 42 {
			t.Errorf("%s token id = %v, want 42", name, id)
		}
	}
}

func TestValidateToken_RejectsGarbage(t *testing.T) {
	if _, err := ValidateToken("definitely.not.a.token"); err == nil {
		t.Error("garbage token validated")
	}
}

func TestRefreshTokens_RotatesPair(t *testing.T) {
	_, refresh, err := GenerateTokens("USER", 7)
	if err != nil {
		t.Fatalf("GenerateTokens failed: %v", err)
	}

	newAccess, newRefresh, err := RefreshTokens(refresh)
	if err != nil {
		t.Fatalf("RefreshTokens failed: %v", err)
	}

	claims, err := ValidateToken(newAccess)
	if err != nil {
		t.Fatalf("rotated access token did not validate: %v", err)
	}
	if role := claims["role"].(string); role != "USER" {
		t.Errorf("rotated role = %q, want USER", role)
	}

	if _, err := ValidateToken(newRefresh); err != nil {
		t.Errorf("rotated refresh token did not validate: %v", err)
	}
}

func TestRefreshTokens_RejectsInvalid(t *testing.T) {
	if _, _, err := RefreshTokens("bogus"); err == nil {
		t.Error("bogus refresh token accepted")
	}
}

// A well-signed token without identity claims must not rotate into an
// anonymous role-less pair.
func TestRefreshTokens_RejectsMissingClaims(t *testing.T) {
	tests := []struct {
		name   string
		claims jwt.MapClaims
	}{
		{name: "missing role", claims: jwt.MapClaims{"id": float64(7), "exp": time.Now().Add(time.Hour).Unix()}},
		{name: "missing id", claims: jwt.MapClaims{"role": "USER", "exp": time.Now().Add(time.Hour).Unix()}},
		{name: "id wrong type", claims: jwt.MapClaims{"role": "USER", "id": "seven", "exp": time.Now().Add(time.Hour).Unix()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, tt.claims)
			signed, err := token.SignedString(secret())
			if err != nil {
				t.Fatalf("failed to sign token: %v", err)
			}

			if _, _, err := RefreshTokens(signed); err == nil {
				t.Error("token without identity claims rotated successfully")
			}
		})
	}
}
