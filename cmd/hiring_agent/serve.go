package main

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arshsnaz/zidio-job-platform/internal/config"
	"github.com/arshsnaz/zidio-job-platform/internal/db"
	"github.com/arshsnaz/zidio-job-platform/internal/logging"
	"github.com/arshsnaz/zidio-job-platform/internal/memstore"
	"github.com/arshsnaz/zidio-job-platform/internal/notify"
	"github.com/arshsnaz/zidio-job-platform/internal/schemas"
	"github.com/arshsnaz/zidio-job-platform/internal/scheduling"
	"github.com/arshsnaz/zidio-job-platform/internal/server"
	"github.com/arshsnaz/zidio-job-platform/internal/types"
	"github.com/arshsnaz/zidio-job-platform/internal/workflow"
)

var (
	servePort int
	seedPath  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the workflow and interview endpoints.

Applications and users are read from PostgreSQL when a database URL is
configured. Otherwise an in-memory store is used, optionally seeded with
--seed.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	serveCmd.Flags().StringVar(&seedPath, "seed", "", "JSON file with applications and users for the in-memory store")
	rootCmd.AddCommand(serveCmd)
}

// collaborators are the backing implementations of the core's interfaces.
type collaborators struct {
	apps     workflow.ApplicationStore
	users    scheduling.UserDirectory
	notifier notify.Notifier
	close    func()
}

// applicationBackend is what both backends provide.
type applicationBackend interface {
	GetApplication(ctx context.Context, id int64) (*types.Application, error)
	SetApplicationStatus(ctx context.Context, id int64, status types.ApplicationStatus) error
	GetUserByEmail(ctx context.Context, email string) (*types.User, error)
	NotifyApplicationStatusUpdate(ctx context.Context, applicationID int64, message string) error
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if servePort != 0 {
		cfg.Server.Port = servePort
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// buildCollaborators connects to PostgreSQL when configured and falls back
// to the in-memory store otherwise. Every notification is logged as well as
// queued in the backend's outbox.
func buildCollaborators(ctx context.Context, cfg *config.Config, audit *logging.Audit) (*collaborators, error) {
	var backend applicationBackend
	closeFn := func() {}

	if cfg.Database.URL != "" {
		database, err := db.ConnectWithOptions(ctx, cfg.Database.URL, db.PoolOptions{
			MaxConns: cfg.Database.MaxConns,
			MinConns: cfg.Database.MinConns,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		audit.Info("Connected to database")
		backend = database
		closeFn = database.Close
	} else {
		store := memstore.New()
		if seedPath != "" {
			data, err := os.ReadFile(seedPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read seed file: %w", err)
			}
			if err := schemas.ValidateSeed(data); err != nil {
				return nil, fmt.Errorf("invalid seed file %s: %w", seedPath, err)
			}
			if err := store.Load(bytes.NewReader(data)); err != nil {
				return nil, err
			}
		}
		audit.Info("No database configured, using in-memory store",
			"applications", len(store.ApplicationIDs()))
		backend = store
	}

	return &collaborators{
		apps:     backend,
		users:    backend,
		notifier: notify.Fanout{notify.NewLogNotifier(audit.Sugar()), backend},
		close:    closeFn,
	}, nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	audit, err := logging.New(cfg.Log.JSON, cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = audit.Sync() }()

	deps, err := buildCollaborators(cmd.Context(), cfg, audit)
	if err != nil {
		return err
	}

	engine := workflow.NewEngine(workflow.NewStore(), deps.apps, deps.notifier, audit,
		workflow.WithBulkConcurrency(cfg.Workflow.BulkConcurrency))
	scheduler := scheduling.NewScheduler(scheduling.NewStore(), deps.apps, deps.users, deps.notifier, audit)

	srv := server.New(cfg, server.Deps{
		Workflow:   engine,
		Scheduler:  scheduler,
		Audit:      audit,
		OnShutdown: deps.close,
	})
	return srv.Start()
}
