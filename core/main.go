// Command core runs the metadata API: project and entity CRUD backed by
// Postgres, artifact uploads and downloads through presigned MinIO URLs.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/metahub-labs/metahub-go/internal/builders"
	"github.com/metahub-labs/metahub-go/internal/platform/auth"
	"github.com/metahub-labs/metahub-go/internal/platform/config"
	"github.com/metahub-labs/metahub-go/internal/platform/env"
	"github.com/metahub-labs/metahub-go/internal/platform/httpserver"
	platformstore "github.com/metahub-labs/metahub-go/internal/platform/objectstore"
	"github.com/metahub-labs/metahub-go/internal/platform/postgres"
	pgrepo "github.com/metahub-labs/metahub-go/internal/repo/postgres"
	"github.com/metahub-labs/metahub-go/internal/service/entities"
	"github.com/metahub-labs/metahub-go/internal/storage/objectstore"
)

const serviceName = "core"

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("core exited", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(env.String("CORE_CONFIG", ""))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	pgCfg, err := postgres.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("postgres config: %w", err)
	}
	db, err := postgres.Open(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("open postgres: %w", err)
	}
	defer db.Close()

	storeCfg, err := platformstore.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("object store config: %w", err)
	}
	minioClient, err := platformstore.NewMinIOClient(storeCfg)
	if err != nil {
		return fmt.Errorf("minio client: %w", err)
	}
	if err := platformstore.EnsureBucket(ctx, minioClient, storeCfg); err != nil {
		return fmt.Errorf("ensure bucket: %w", err)
	}
	objects, err := objectstore.NewMinioStoreWithClient(minioClient)
	if err != nil {
		return fmt.Errorf("object store: %w", err)
	}

	reg, err := builders.NewRegistry()
	if err != nil {
		return fmt.Errorf("registry: %w", err)
	}

	svc, err := entities.New(entities.Config{
		Logger:   logger,
		Registry: reg,
		Repos: entities.Repos{
			Projects:  pgrepo.NewProjectStore(db),
			Artifacts: pgrepo.NewArtifactStore(db),
			DataItems: pgrepo.NewDataItemStore(db),
			Functions: pgrepo.NewFunctionStore(db),
			Workflows: pgrepo.NewWorkflowStore(db),
			Runs:      pgrepo.NewRunStore(db),
			Logs:      pgrepo.NewLogStore(db),
		},
		Objects:     objects,
		Bucket:      storeCfg.Bucket,
		UploadTTL:   cfg.Presign.UploadTTL.Std(),
		DownloadTTL: cfg.Presign.DownloadTTL.Std(),
	})
	if err != nil {
		return fmt.Errorf("entities service: %w", err)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", httpserver.Healthz(serviceName))
	mux.HandleFunc("GET /readyz", httpserver.ReadyzWithChecks(serviceName,
		httpserver.ReadinessCheck{Name: "postgres", Check: func(ctx context.Context) error {
			return db.PingContext(ctx)
		}},
		httpserver.ReadinessCheck{Name: "objectstore", Check: func(ctx context.Context) error {
			return platformstore.CheckBucket(ctx, minioClient, storeCfg)
		}},
	))

	api := newCoreAPI(logger, svc, reg)
	api.register(mux)

	authCfg, err := auth.ConfigFromEnv()
	if err != nil {
		return fmt.Errorf("auth config: %w", err)
	}
	authenticator, err := buildAuthenticator(ctx, logger, mux, authCfg)
	if err != nil {
		return err
	}

	handler := auth.Middleware{
		Logger:        logger,
		Authenticator: authenticator,
		Authorize:     auth.MethodRoleAuthorizer(),
		SkipPrefixes:  []string{"/healthz", "/readyz", "/auth/"},
	}.Wrap(mux)

	serverCfg := httpserver.Config{
		Service:         serviceName,
		Addr:            cfg.HTTP.Addr,
		ShutdownTimeout: cfg.HTTP.ShutdownTimeout.Std(),
	}
	logger.Info("starting core", "addr", serverCfg.Addr, "auth_mode", authCfg.Mode, "bucket", storeCfg.Bucket)
	return httpserver.Run(ctx, logger, serverCfg, httpserver.Wrap(logger, serviceName, handler))
}

// buildAuthenticator picks the authenticator for the configured mode and, for
// OIDC, mounts the login flow endpoints on the mux.
func buildAuthenticator(ctx context.Context, logger *slog.Logger, mux *http.ServeMux, cfg auth.Config) (auth.Authenticator, error) {
	switch cfg.Mode {
	case auth.ModeDisabled:
		logger.Warn("authentication disabled, all requests run as anonymous admin")
		return auth.AnonymousAuthenticator{}, nil
	case auth.ModeDev:
		logger.Warn("dev authentication enabled", "subject", cfg.DevSubject)
		return auth.NewDevAuthenticator(cfg), nil
	case auth.ModeOIDC:
		svc, err := auth.NewOIDCService(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("oidc service: %w", err)
		}
		login, err := svc.LoginHandler()
		if err != nil {
			return nil, fmt.Errorf("oidc login handler: %w", err)
		}
		callback, err := svc.CallbackHandler()
		if err != nil {
			return nil, fmt.Errorf("oidc callback handler: %w", err)
		}
		mux.HandleFunc("GET /auth/login", login)
		mux.HandleFunc("GET /auth/callback", callback)
		mux.HandleFunc("GET /auth/logout", svc.LogoutHandler())
		mux.HandleFunc("GET /auth/session", svc.SessionHandler())
		return svc, nil
	default:
		return nil, fmt.Errorf("unsupported auth mode: %q", cfg.Mode)
	}
}
