package auth

import (
	"strings"
	"testing"
	"time"
)

func TestParseMode(t *testing.T) {
	cases := []struct {
		raw  string
		want Mode
		ok   bool
	}{
		{"oidc", ModeOIDC, true},
		{" Dev ", ModeDev, true},
		{"DISABLED", ModeDisabled, true},
		{"basic", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseMode(tc.raw)
		if tc.ok && (err != nil || got != tc.want) {
			t.Fatalf("ParseMode(%q) = %q, %v; want %q", tc.raw, got, err, tc.want)
		}
		if !tc.ok && err == nil {
			t.Fatalf("ParseMode(%q) accepted invalid mode", tc.raw)
		}
	}
}

func TestValidateRequiresOIDCIssuer(t *testing.T) {
	cfg := validConfig(ModeOIDC)
	cfg.OIDCIssuerURL = ""
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "OIDC_ISSUER_URL") {
		t.Fatalf("Validate() err=%v, want OIDC_ISSUER_URL failure", err)
	}
}

func TestValidateForLogin(t *testing.T) {
	cfg := validConfig(ModeDev)
	if err := cfg.ValidateForLogin(); err == nil {
		t.Fatalf("expected login validation to reject dev mode")
	}

	cfg = validConfig(ModeOIDC)
	if err := cfg.ValidateForLogin(); err == nil {
		t.Fatalf("expected login validation to require client secret")
	}
	cfg.OIDCClientSecret = "secret"
	cfg.OIDCRedirectURL = "https://metahub.example/auth/callback"
	if err := cfg.ValidateForLogin(); err != nil {
		t.Fatalf("ValidateForLogin() err=%v", err)
	}
}

func validConfig(mode Mode) Config {
	return Config{
		Mode:                  mode,
		RolesClaim:            "roles",
		EmailClaim:            "email",
		SessionCookieName:     "metahub_session",
		SessionCookieMaxAge:   time.Hour,
		SessionCookieSameSite: "Lax",
		OIDCIssuerURL:         "https://issuer.example",
		OIDCClientID:          "metahub",
		DevSubject:            "dev-user",
		DevRoles:              []string{"admin"},
	}
}
