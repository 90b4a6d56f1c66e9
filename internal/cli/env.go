package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"github.com/nhle/habit-tracker/internal/logging"
	"github.com/nhle/habit-tracker/internal/model"
	"github.com/nhle/habit-tracker/internal/store"
	"github.com/nhle/habit-tracker/internal/tracker"
)

// env bundles everything a command needs: the resolved config, the logger,
// the open store and a tracker loaded from it.
type env struct {
	cfgPath string
	cfg     *model.AppConfig
	log     *zap.Logger
	store   *store.SQLiteStore
	tracker *tracker.Tracker
}

// openEnv loads config, opens the database and loads the tracker. console
// receives a readable copy of the log; the TUI passes nil.
func openEnv(ctx context.Context, console io.Writer) (*env, error) {
	path := configPath
	if path == "" {
		path = model.DefaultConfigPath()
	}
	cfg, err := model.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Storage.DBPath = dbPath
	}

	if !verbose {
		console = nil
	}
	log, err := logging.New(cfg.Log, logging.Options{Verbose: verbose, Console: console})
	if err != nil {
		return nil, err
	}

	s, err := store.NewSQLiteStore(cfg.Storage.DBPath)
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("opening database: %w", err)
	}
	log.Debug("database opened", zap.String("path", cfg.Storage.DBPath))

	t := tracker.New(tracker.Options{Persister: s, Logger: log})
	t.Load(ctx)

	return &env{cfgPath: path, cfg: cfg, log: log, store: s, tracker: t}, nil
}

// Close releases the store and flushes the logger.
func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("closing database", zap.Error(err))
	}
	_ = e.log.Sync()
}

// stderr is where verbose console logging goes for non-TUI commands.
var stderr io.Writer = os.Stderr
