// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/fitlog/assign"
	"github.com/danielhkuo/fitlog/cliparse"
	"github.com/danielhkuo/fitlog/critique"
	"github.com/danielhkuo/fitlog/db"
	"github.com/danielhkuo/fitlog/logging"
	"github.com/danielhkuo/fitlog/router"
)

const shutdownTimeout = 10 * time.Second

var (
	cfg    cliparse.Config
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:           "fitlog",
	Short:         "Personal sleep, meal and training log",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := cliparse.Resolve(cmd.Flags(), &cfg); err != nil {
			return err
		}
		logger = logging.New(cfg.Env)
		zap.ReplaceGlobals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the schema and seed the default catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := cfg.Check(false); err != nil {
			return err
		}
		conn, _, err := openStore(cmd.Context())
		if err != nil {
			return err
		}
		defer conn.Close()

		logger.Info("database schema ready", zap.String("database_type", cfg.DatabaseType))
		return nil
	},
}

func init() {
	cliparse.Bind(rootCmd.PersistentFlags(), &cfg)
	rootCmd.AddCommand(serveCmd, migrateCmd, exportCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// openStore connects, creates the schema and seeds the defaults.
func openStore(ctx context.Context) (*sql.DB, *db.Store, error) {
	conn, err := db.Open(cfg.DriverName(), cfg.DatabaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("database ping failed: %w", err)
	}
	if err := db.CreateSchema(conn); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("schema creation failed: %w", err)
	}

	store := db.NewStore(conn, logger)
	if err := store.SeedDefaults(ctx); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("seeding defaults failed: %w", err)
	}
	return conn, store, nil
}

func newCritic(ctx context.Context) *critique.Service {
	var gen critique.Generator
	if cfg.GenAIAPIKey == "" {
		logger.Warn("GEMINI_API_KEY not set, critiques are disabled")
		return critique.NewService(nil, logger)
	}
	gemini, err := critique.NewGemini(ctx, cfg.GenAIAPIKey, cfg.GenAIModel)
	if err != nil {
		logger.Warn("critiques are disabled", zap.Error(err))
	} else {
		gen = gemini
	}
	return critique.NewService(gen, logger)
}

func runServe(cmd *cobra.Command, args []string) error {
	if err := cfg.Check(true); err != nil {
		return err
	}
	ctx := cmd.Context()

	conn, store, err := openStore(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	queue := assign.NewQueue(cfg.AssignDelay)
	defer queue.Close()

	handler := router.NewRouter(cfg, router.Services{
		Store:    store,
		Executor: assign.NewExecutor(store, queue, logger),
		Critic:   newCritic(ctx),
		Logger:   logger,
	})

	server := &http.Server{
		Handler:           handler,
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("listening", zap.Int("port", cfg.Port), zap.String("env", cfg.Env))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err = g.Wait()
	logger.Info("server closed", zap.Error(err))
	return err
}
