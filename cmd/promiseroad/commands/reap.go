package commands

import (
	"context"

	"github.com/promiseroad/backend/internal/repositories"
	"github.com/promiseroad/backend/internal/services"
	"github.com/promiseroad/backend/internal/storage"
	"github.com/promiseroad/backend/libs/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// reapCmd removes the stored files of deleted videos once and exits
var reapCmd = &cobra.Command{
	Use:   "reap",
	Short: "Remove stored files of deleted videos",
	Long: `Remove every file queued for deletion when a video was deleted.

Files that cannot be removed stay queued and are retried on the next run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		reaper := services.NewFileReaper(
			repositories.NewFileDeletionRepository(db, logger.Logger),
			storage.NewLocalStorage(cfg.Uploads.Dir),
			logger.Logger,
		)

		removed, err := reaper.Reap(context.Background())
		if err != nil {
			return err
		}

		logger.Logger.Info("File reap finished", zap.Int("removed", removed))
		cmd.Printf("Removed %d file(s)\n", removed)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(reapCmd)
}
