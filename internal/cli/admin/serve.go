package admin

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/kalichetiAravindreddy/image-search/internal/api/handlers"
	"github.com/kalichetiAravindreddy/image-search/internal/config"
	"github.com/kalichetiAravindreddy/image-search/internal/database"
	"github.com/kalichetiAravindreddy/image-search/internal/google"
	"github.com/kalichetiAravindreddy/image-search/internal/jobs"
	"github.com/kalichetiAravindreddy/image-search/internal/repository"
	"github.com/kalichetiAravindreddy/image-search/internal/server"
	"github.com/kalichetiAravindreddy/image-search/internal/service"
	"github.com/kalichetiAravindreddy/image-search/internal/storage"
	"github.com/kalichetiAravindreddy/image-search/internal/telemetry"
	"github.com/kalichetiAravindreddy/image-search/internal/unsplash"
	"github.com/spf13/cobra"
)

const sessionPurgeInterval = 10 * time.Minute

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the image search API server on the specified port",
		RunE:  runServe,
	}

	cmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	cmd.Flags().Bool("no-migrate", false, "Skip automatic database migrations on startup")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize Sentry with tracing if SENTRY_DSN is set
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		environment := os.Getenv("ENVIRONMENT")
		if environment == "" {
			environment = "development"
		}

		sampleRate := 0.1
		if environment == "development" {
			sampleRate = 1.0
		}

		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              dsn,
			Environment:      environment,
			TracesSampleRate: sampleRate,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	portFlag, _ := cmd.Flags().GetString("port")
	if portFlag != "" && portFlag != "8080" {
		cfg.Port = portFlag
	}

	if !cfg.HasGoogle() {
		return fmt.Errorf("GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET are required")
	}
	if !cfg.HasUnsplash() {
		log.Println("warning: UNSPLASH_ACCESS_KEY not set, searches will fail upstream")
	}

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Println("connected to database")

	// Run migrations unless --no-migrate flag is set
	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	userRepo := repository.NewUserRepository(pool)
	searchRepo := repository.NewSearchRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)

	googleClient, err := google.NewClient(ctx, google.Config{
		ClientID:     cfg.GoogleClientID,
		ClientSecret: cfg.GoogleClientSecret,
		RedirectURL:  cfg.ServerURL + "/api/auth/google/callback",
	})
	if err != nil {
		return fmt.Errorf("failed to create Google OAuth client: %w", err)
	}

	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	authSvc := service.NewAuthService(userRepo, sessionRepo, googleClient, sessionTTL)

	if cfg.HasS3() {
		s3Client, err := storage.NewS3Client(ctx, storage.S3ClientConfig{
			Endpoint:        cfg.S3Endpoint,
			Region:          cfg.S3Region,
			AccessKeyID:     cfg.S3AccessKey,
			SecretAccessKey: cfg.S3SecretKey,
			Bucket:          cfg.S3Bucket,
			UsePathStyle:    true,
		})
		if err != nil {
			return fmt.Errorf("failed to create S3 client: %w", err)
		}
		if err := s3Client.EnsureBucket(ctx); err != nil {
			return fmt.Errorf("failed to ensure S3 bucket: %w", err)
		}
		log.Printf("S3 bucket '%s' ready, avatar mirroring enabled", cfg.S3Bucket)
		authSvc = authSvc.WithAvatarStore(s3Client)
	}

	searchSvc := service.NewSearchService(searchRepo, unsplash.NewClient(cfg.UnsplashAccessKey))

	authHandler := handlers.NewAuthHandler(authSvc, cfg.ClientURL, sessionTTL, cfg.CookieSecure)
	searchHandler := handlers.NewSearchHandler(searchSvc)

	purgeWorker := jobs.NewWorker(jobs.NewSessionPurger(authSvc), sessionPurgeInterval)
	go purgeWorker.Start(ctx)
	log.Println("session purge worker started")

	router := server.NewRouter(server.RouterConfig{
		SessionValidator: authSvc,
		AuthHandler:      authHandler,
		SearchHandler:    searchHandler,
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("shutting down...")

	purgeWorker.Stop()

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database for migrations: %w", err)
	}
	defer db.Close()

	driver, err := postgres.WithInstance(db, &postgres.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	version, dirty, err := m.Version()
	if err != nil && err != migrate.ErrNilVersion {
		return fmt.Errorf("failed to get migration version: %w", err)
	}

	if err == migrate.ErrNilVersion {
		log.Println("migrations: database is up to date (no migrations applied)")
	} else if dirty {
		return fmt.Errorf("migration version %d is dirty - manual intervention required", version)
	} else if err == migrate.ErrNoChange {
		log.Printf("migrations: database is up to date (version %d)", version)
	} else {
		log.Printf("migrations: applied successfully (version %d)", version)
	}

	return nil
}
