package commands

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/promiseroad/backend/libs/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Migrate flags
	steps int
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database migrations",
	Long: `Run database migrations to keep the schema in sync with the code.

Subcommands:
  up      - Apply pending migrations
  down    - Roll back migrations`,
}

// migrateUpCmd applies pending migrations
var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, db, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		return runMigrations(db, migrationsDir)
	},
}

// migrateDownCmd rolls back migrations
var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back migrations",
	Long: `Roll back applied migrations.

Examples:
  promiseroad migrate down              # Roll back the last migration
  promiseroad migrate down --steps 3    # Roll back three migrations`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if steps <= 0 {
			return fmt.Errorf("--steps must be positive")
		}

		_, db, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		m, err := newMigrate(db, migrationsDir)
		if err != nil {
			return err
		}
		if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			return fmt.Errorf("failed to roll back migrations: %w", err)
		}

		logger.Logger.Info("Migrations rolled back", zap.Int("steps", steps))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)

	migrateDownCmd.Flags().IntVar(&steps, "steps", 1, "Number of migrations to roll back")
}

// runMigrations applies every pending migration
func runMigrations(db *sql.DB, dir string) error {
	m, err := newMigrate(db, dir)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("failed to read migration version: %w", err)
	}
	logger.Logger.Info("Migrations applied", zap.Uint("version", version), zap.Bool("dirty", dirty))
	return nil
}

func newMigrate(db *sql.DB, dir string) (*migrate.Migrate, error) {
	driver, err := mysql.WithInstance(db, &mysql.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to create migration driver: %w", err)
	}

	// Fall back to the parent directory when running from cmd/
	if _, err := os.Stat(dir); os.IsNotExist(err) && !filepath.IsAbs(dir) {
		if _, err := os.Stat(filepath.Join("..", dir)); err == nil {
			dir = filepath.Join("..", dir)
		}
	}

	m, err := migrate.NewWithDatabaseInstance("file://"+filepath.ToSlash(dir), "mysql", driver)
	if err != nil {
		return nil, fmt.Errorf("failed to create migrate instance: %w", err)
	}

	return m, nil
}
