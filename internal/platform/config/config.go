package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/metahub-labs/metahub-go/internal/platform/env"
)

// Duration wraps time.Duration so YAML values like "30s" parse.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the service-level settings read from an optional YAML file.
// Environment variables override file values; with no file present the
// defaults apply.
type Config struct {
	HTTP    HTTPConfig    `yaml:"http"`
	Presign PresignConfig `yaml:"presign"`
}

type HTTPConfig struct {
	Addr            string   `yaml:"addr"`
	ShutdownTimeout Duration `yaml:"shutdownTimeout"`
}

type PresignConfig struct {
	UploadTTL   Duration `yaml:"uploadTTL"`
	DownloadTTL Duration `yaml:"downloadTTL"`
}

func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8080",
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Presign: PresignConfig{
			UploadTTL:   Duration(10 * time.Minute),
			DownloadTTL: Duration(10 * time.Minute),
		},
	}
}

// Load reads the YAML file at path, falling back to defaults when path is
// empty or the file does not exist, then applies environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	cfg.HTTP.Addr = env.String("CORE_HTTP_ADDR", cfg.HTTP.Addr)
	shutdownTimeout, err := env.Duration("CORE_SHUTDOWN_TIMEOUT", cfg.HTTP.ShutdownTimeout.Std())
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.ShutdownTimeout = Duration(shutdownTimeout)
	uploadTTL, err := env.Duration("CORE_PRESIGN_UPLOAD_TTL", cfg.Presign.UploadTTL.Std())
	if err != nil {
		return Config{}, err
	}
	cfg.Presign.UploadTTL = Duration(uploadTTL)
	downloadTTL, err := env.Duration("CORE_PRESIGN_DOWNLOAD_TTL", cfg.Presign.DownloadTTL.Std())
	if err != nil {
		return Config{}, err
	}
	cfg.Presign.DownloadTTL = Duration(downloadTTL)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("http addr is required")
	}
	if c.HTTP.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	if c.Presign.UploadTTL <= 0 {
		return errors.New("presign upload ttl must be positive")
	}
	if c.Presign.DownloadTTL <= 0 {
		return errors.New("presign download ttl must be positive")
	}
	return nil
}
