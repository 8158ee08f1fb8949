package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/timesdrill/internal/app"
	"github.com/abhisek/timesdrill/internal/config"
	"github.com/abhisek/timesdrill/internal/exercise"
	"github.com/abhisek/timesdrill/internal/logging"
	"github.com/abhisek/timesdrill/internal/practice"
	"github.com/abhisek/timesdrill/internal/store"
)

// env is everything a command needs to work on one profile.
type env struct {
	cfg    config.Config
	log    *zap.Logger
	store  *store.Store // nil with --memory
	engine *practice.Engine
}

func (e *env) Close() {
	if e.store != nil {
		if err := e.store.Close(); err != nil {
			e.log.Warn("close store", zap.Error(err))
		}
	}
	_ = e.log.Sync()
}

// setup resolves the configuration, opens the store and builds the engine.
// Flags set on the command line win over config file and environment.
func setup(cmd *cobra.Command) (*env, error) {
	flags := cmd.Flags()

	src := config.DefaultSources()
	if p, _ := flags.GetString("config"); p != "" {
		src.ConfigFile = p
	}
	cfg, err := config.Load(src)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	overrideString(cmd, "db", &cfg.DBPath)
	overrideString(cmd, "profile", &cfg.Profile)
	overrideString(cmd, "log-level", &cfg.LogLevel)
	overrideString(cmd, "log-file", &cfg.LogFile)

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	e := &env{cfg: cfg, log: logger}
	opts := practice.Options{
		Profile: cfg.Profile,
		Logger:  logger,
		Rand:    exercise.NewSource(cfg.Seed),
	}

	if memory, _ := flags.GetBool("memory"); memory {
		opts.Documents = store.NewMemoryDocuments()
		logger.Info("using in-memory profile")
	} else {
		if err := store.EnsureDir(cfg.DBPath); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
		st, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		e.store = st
		opts.Documents = st.DocumentRepo()
		opts.Events = st.EventRepo()
		opts.Snapshots = st.SnapshotRepo()
		logger.Debug("store opened", zap.String("path", cfg.DBPath))
	}

	e.engine = practice.NewEngine(opts)
	return e, nil
}

func overrideString(cmd *cobra.Command, name string, dst *string) {
	if !cmd.Flags().Changed(name) {
		return
	}
	if v, err := cmd.Flags().GetString(name); err == nil {
		*dst = v
	}
}

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	e, err := setup(cmd)
	if err != nil {
		return err
	}
	defer e.Close()

	return app.Run(app.Options{Engine: e.engine, Logger: e.log})
}
