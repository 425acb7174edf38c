package postgres

import (
	"testing"
	"time"
)

func TestConfigFromEnvDefaults(t *testing.T) {
	cfg, err := ConfigFromEnv()
	if err != nil {
		t.Fatalf("ConfigFromEnv() err=%v", err)
	}
	if cfg.URL == "" {
		t.Fatalf("expected default URL")
	}
	if cfg.Pool.MaxIdle > cfg.Pool.MaxOpen {
		t.Fatalf("default pool limits inconsistent: %+v", cfg.Pool)
	}
}

func TestConfigFromEnvRejectsMalformedTuning(t *testing.T) {
	t.Setenv("DATABASE_MAX_OPEN_CONNS", "lots")
	if _, err := ConfigFromEnv(); err == nil {
		t.Fatalf("expected parse error for DATABASE_MAX_OPEN_CONNS")
	}
}

func TestPoolLimitsValidate(t *testing.T) {
	cases := []struct {
		name string
		pool PoolLimits
		ok   bool
	}{
		{"defaults", PoolLimits{MaxOpen: 10, MaxIdle: 5}, true},
		{"zero open", PoolLimits{MaxOpen: 0}, false},
		{"idle above open", PoolLimits{MaxOpen: 2, MaxIdle: 3}, false},
		{"negative lifetime", PoolLimits{MaxOpen: 1, MaxLifetime: -time.Second}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.pool.validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected validation failure")
			}
		})
	}
}
