package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/threadline/threadline-backend/pkg/config"
	"github.com/threadline/threadline-backend/pkg/enums"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "threadline-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	now := time.Now()
	payload := AccessTokenPayload{
		UserID:   uuid.New(),
		Username: "casey",
		Role:     enums.RoleAdmin,
	}

	signed, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("MintAccessToken returned error: %v", err)
	}

	claims, err := ParseAccessToken(cfg, signed)
	if err != nil {
		t.Fatalf("ParseAccessToken returned error: %v", err)
	}
	if claims.UserID != payload.UserID {
		t.Fatalf("user id mismatch: %s vs %s", claims.UserID, payload.UserID)
	}
	if claims.Username != "casey" {
		t.Fatalf("unexpected username %q", claims.Username)
	}
	if claims.Role != enums.RoleAdmin {
		t.Fatalf("unexpected role %q", claims.Role)
	}
	if claims.ID == "" {
		t.Fatal("expected a generated jti")
	}
}

func TestMintAccessToken_Validation(t *testing.T) {
	now := time.Now()
	payload := AccessTokenPayload{UserID: uuid.New(), Role: enums.RoleUser}

	cases := []struct {
		name string
		cfg  config.JWTConfig
	}{
		{name: "missing secret", cfg: config.JWTConfig{Issuer: "x", ExpirationMinutes: 5}},
		{name: "missing issuer", cfg: config.JWTConfig{Secret: "x", ExpirationMinutes: 5}},
		{name: "non-positive expiry", cfg: config.JWTConfig{Secret: "x", Issuer: "x"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := MintAccessToken(tc.cfg, now, payload); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	if _, err := MintAccessToken(testJWTConfig(), now, AccessTokenPayload{UserID: uuid.New(), Role: "superuser"}); err == nil {
		t.Fatal("expected invalid role to be rejected")
	}
}

func TestParseAccessToken_RejectsForgedAndExpired(t *testing.T) {
	cfg := testJWTConfig()
	payload := AccessTokenPayload{UserID: uuid.New(), Role: enums.RoleUser}

	signed, err := MintAccessToken(cfg, time.Now(), payload)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}

	wrongSecret := cfg
	wrongSecret.Secret = "other-secret"
	if _, err := ParseAccessToken(wrongSecret, signed); err == nil {
		t.Fatal("expected signature mismatch to fail")
	}

	wrongIssuer := cfg
	wrongIssuer.Issuer = "someone-else"
	if _, err := ParseAccessToken(wrongIssuer, signed); err == nil {
		t.Fatal("expected issuer mismatch to fail")
	}

	expired, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), payload)
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	if _, err := ParseAccessToken(cfg, expired); err == nil {
		t.Fatal("expected expired token to fail")
	}
}
