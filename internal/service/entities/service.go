package entities

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/metahub-labs/metahub-go/internal/marshal"
	"github.com/metahub-labs/metahub-go/internal/repo"
	"github.com/metahub-labs/metahub-go/internal/storage/objectstore"
)

// Repos bundles the per-kind repositories the service operates on.
type Repos struct {
	Projects  repo.ProjectRepository
	Artifacts repo.ArtifactRepository
	DataItems repo.DataItemRepository
	Functions repo.FunctionRepository
	Workflows repo.WorkflowRepository
	Runs      repo.RunRepository
	Logs      repo.LogRepository
}

type Config struct {
	Logger      *slog.Logger
	Registry    *marshal.Registry
	Repos       Repos
	Objects     objectstore.Store
	Bucket      string
	UploadTTL   time.Duration
	DownloadTTL time.Duration
}

// Service implements the entity lifecycle: payloads come in as decoded DTOs,
// get built into persisted form, and are rendered back through the configured
// projection.
type Service struct {
	logger      *slog.Logger
	registry    *marshal.Registry
	repos       Repos
	objects     objectstore.Store
	bucket      string
	uploadTTL   time.Duration
	downloadTTL time.Duration

	newID func() string
	now   func() time.Time
}

func New(cfg Config) (*Service, error) {
	if cfg.Registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	uploadTTL := cfg.UploadTTL
	if uploadTTL <= 0 {
		uploadTTL = 10 * time.Minute
	}
	downloadTTL := cfg.DownloadTTL
	if downloadTTL <= 0 {
		downloadTTL = 10 * time.Minute
	}
	return &Service{
		logger:      cfg.Logger,
		registry:    cfg.Registry,
		repos:       cfg.Repos,
		objects:     cfg.Objects,
		bucket:      cfg.Bucket,
		uploadTTL:   uploadTTL,
		downloadTTL: downloadTTL,
		newID:       func() string { return uuid.NewString() },
		now:         func() time.Time { return time.Now().UTC() },
	}, nil
}
