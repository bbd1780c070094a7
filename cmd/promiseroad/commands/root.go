package commands

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/promiseroad/backend/libs/config"
	"github.com/promiseroad/backend/libs/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	migrationsDir string
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "promiseroad",
	Short: "Promise Road API server and maintenance tools",
	Long: `Promise Road serves the REST API for blog posts, videos, categories and playlists.

Subcommands:
  serve         - Run the HTTP server
  migrate       - Apply or roll back database migrations
  reap          - Remove stored files of deleted videos
  create-admin  - Create an administrator account`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&migrationsDir, "migrations-dir", "migrations", "Directory with migration files")
}

// bootstrap loads configuration, initializes the logger and connects to the database.
// The returned cleanup closes the database and flushes the logger.
func bootstrap() (*config.Config, *sql.DB, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.IsDevelopment()); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := connectDB(cfg.DSN())
	if err != nil {
		logger.Sync()
		return nil, nil, nil, err
	}

	cleanup := func() {
		db.Close()
		logger.Sync()
	}
	return cfg, db, cleanup, nil
}

// connectDB connects to the database
func connectDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}
