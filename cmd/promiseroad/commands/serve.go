package commands

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	_ "github.com/promiseroad/backend/docs"
	"github.com/promiseroad/backend/internal/handlers"
	"github.com/promiseroad/backend/internal/repositories"
	"github.com/promiseroad/backend/internal/services"
	"github.com/promiseroad/backend/internal/storage"
	authmw "github.com/promiseroad/backend/libs/auth/middleware"
	"github.com/promiseroad/backend/libs/auth/service"
	"github.com/promiseroad/backend/libs/config"
	"github.com/promiseroad/backend/libs/logger"
	loggerMiddleware "github.com/promiseroad/backend/libs/logger/middleware"
	sharedMiddleware "github.com/promiseroad/backend/libs/middlewares"
	"github.com/spf13/cobra"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

var (
	// Serve flags
	skipMigrations bool
)

// serveCmd runs the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, db, cleanup, err := bootstrap()
		if err != nil {
			return err
		}
		defer cleanup()

		return serve(cfg, db)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "Do not apply pending migrations on startup")
}

func serve(cfg *config.Config, db *sql.DB) error {
	logger.Logger.Info("Starting Promise Road API", zap.String("environment", cfg.Environment))

	if !skipMigrations {
		if err := runMigrations(db, migrationsDir); err != nil {
			return err
		}
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: cfg.Environment,
			Debug:       cfg.IsDevelopment(),
		}); err != nil {
			return fmt.Errorf("failed to initialize sentry: %w", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if err := os.MkdirAll(cfg.Uploads.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	tokenGenerator := service.NewTokenGenerator(cfg.JWT.Secret, cfg.JWT.Expiry)
	fileStorage := storage.NewLocalStorage(cfg.Uploads.Dir)

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db, logger.Logger)
	blogRepo := repositories.NewBlogPostRepository(db, logger.Logger)
	videoRepo := repositories.NewVideoRepository(db, logger.Logger)
	categoryRepo := repositories.NewCategoryRepository(db, logger.Logger)
	commentRepo := repositories.NewCommentRepository(db, logger.Logger)
	playlistRepo := repositories.NewPlaylistRepository(db, logger.Logger)
	fileDeletionRepo := repositories.NewFileDeletionRepository(db, logger.Logger)

	// Initialize services
	reaper := services.NewFileReaper(fileDeletionRepo, fileStorage, logger.Logger)
	authService := services.NewAuthService(userRepo, tokenGenerator, logger.Logger)
	blogService := services.NewBlogService(blogRepo, commentRepo, categoryRepo, logger.Logger)
	videoService := services.NewVideoService(videoRepo, commentRepo, categoryRepo, reaper, cfg.Uploads.URLPrefix, logger.Logger)
	categoryService := services.NewCategoryService(categoryRepo, logger.Logger)
	playlistService := services.NewPlaylistService(playlistRepo, videoRepo, logger.Logger)
	uploadService := services.NewUploadService(fileStorage, cfg.Uploads.URLPrefix, logger.Logger)

	api := &handlers.API{
		Auth:        handlers.NewAuthHandler(authService, logger.Logger),
		Blogs:       handlers.NewBlogHandler(blogService, logger.Logger),
		Videos:      handlers.NewVideoHandler(videoService, logger.Logger),
		Categories:  handlers.NewCategoryHandler(categoryService, logger.Logger),
		Playlists:   handlers.NewPlaylistHandler(playlistService, logger.Logger),
		Uploads:     handlers.NewUploadHandler(uploadService, logger.Logger),
		Health:      handlers.NewHealthHandler(db, cfg.Environment, logger.Logger),
		Maintenance: handlers.NewMaintenanceHandler(reaper, logger.Logger),
		Guards: handlers.Guards{
			Protect:  authmw.Protect(tokenGenerator),
			Optional: authmw.OptionalAuth(tokenGenerator),
		},
		APIKey: authmw.APIKeyMiddleware(cfg.APIKey),
	}

	// Setup router
	r := chi.NewRouter()

	// Apply middleware
	r.Use(sharedMiddleware.RequestIDMiddleware)
	r.Use(loggerMiddleware.LoggerMiddleware(logger.Logger))
	r.Use(sharedMiddleware.RecoveryMiddleware(logger.Logger))
	if cfg.Sentry.DSN != "" {
		// Repanic hands the panic back to the recovery middleware after it is reported
		r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	r.Use(sharedMiddleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	r.Use(httprate.LimitByIP(cfg.Server.RateLimitPerMinute, time.Minute))
	r.Use(sharedMiddleware.RequestSizeLimitMiddleware(10*1024*1024, "/api/upload/", "/api/video-upload/")) // 10MB, uploads enforce their own limits

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://localhost:%d/swagger/doc.json", cfg.Server.Port)),
	))

	// Uploaded files
	prefix := "/" + strings.Trim(cfg.Uploads.URLPrefix, "/")
	r.Handle(prefix+"/*", http.StripPrefix(prefix, http.FileServer(http.Dir(cfg.Uploads.Dir))))

	api.Mount(r)

	var scheduler *services.ReapScheduler
	if cfg.FileReapSchedule != "" {
		s, err := services.NewReapScheduler(cfg.FileReapSchedule, reaper, logger.Logger)
		if err != nil {
			return err
		}
		scheduler = s
		scheduler.Start()
	}

	// Start server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: r,
		// Video uploads can take minutes on slow links
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Logger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if scheduler != nil {
		scheduler.Stop(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server exited")
	return nil
}
