package cli

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

	"github.com/dishaajyoti/vedicai/internal/agent"
	"github.com/dishaajyoti/vedicai/internal/api/handlers"
	"github.com/dishaajyoti/vedicai/internal/config"
	"github.com/dishaajyoti/vedicai/internal/database"
	"github.com/dishaajyoti/vedicai/internal/ingest"
	"github.com/dishaajyoti/vedicai/internal/jobs"
	"github.com/dishaajyoti/vedicai/internal/openai"
	"github.com/dishaajyoti/vedicai/internal/server"
	"github.com/dishaajyoti/vedicai/internal/service"
	"github.com/dishaajyoti/vedicai/internal/storage"
	"github.com/dishaajyoti/vedicai/internal/store"
	"github.com/dishaajyoti/vedicai/internal/telemetry"
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"
)

// ServeCmd returns the serve command
func ServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		Long:  "Start the vedicai API server on the specified port",
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

	if cfg.HasSentry() {
		shutdownTelemetry, err := telemetry.Init(telemetry.Config{
			DSN:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			TracesSampleRate: cfg.SentrySampleRate,
			Debug:            cfg.Debug,
		})
		if err != nil {
			log.Printf("telemetry init failed (continuing without tracing): %v", err)
		} else {
			defer shutdownTelemetry()
		}
	}

	applyPortFlag(cmd, cfg)

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()
	log.Println("connected to database")

	noMigrate, _ := cmd.Flags().GetBool("no-migrate")
	if !noMigrate {
		if err := runMigrations(cfg.DatabaseURL); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	llm := openai.NewClientWithConfig(openai.Config{
		APIKey:              cfg.OpenAIAPIKey,
		EmbeddingModel:      cfg.EmbeddingModel,
		EmbeddingDimensions: cfg.EmbeddingDimension,
		ChatModel:           cfg.OpenAIModel,
		Temperature:         cfg.OpenAITemperature,
		MaxTokens:           cfg.OpenAIMaxTokens,
	})

	knowledgeStore := store.NewKnowledgeStore(pool, llm)
	registry := agent.NewRegistry(agent.Deps{Store: knowledgeStore, LLM: llm})

	querySvc := service.NewQueryService(registry)
	reportSvc := service.NewReportService(registry)

	var reingestWorker *jobs.Worker
	if cfg.ReingestInterval > 0 {
		pipeline, err := buildPipeline(ctx, cfg, knowledgeStore)
		if err != nil {
			return fmt.Errorf("failed to build ingestion pipeline: %w", err)
		}
		reingestWorker = jobs.NewWorker(jobs.NewReingestProcessor(pipeline), cfg.ReingestInterval)
		go reingestWorker.Start(ctx)
		log.Printf("reingest worker started (interval: %v)", cfg.ReingestInterval)
	}

	router := server.NewRouter(server.RouterConfig{
		APIKey:        cfg.APIKey,
		QueryHandler:  handlers.NewQueryHandler(querySvc),
		ReportHandler: handlers.NewReportHandler(reportSvc),
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

	if reingestWorker != nil {
		reingestWorker.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Println("server exited")
	return nil
}

// applyPortFlag overrides the configured port only when the flag was set
// explicitly, so an explicit -p 8080 still wins over a PORT env value.
func applyPortFlag(cmd *cobra.Command, cfg *config.Config) {
	if !cmd.Flags().Changed("port") {
		return
	}
	if port, _ := cmd.Flags().GetString("port"); port != "" {
		cfg.Port = port
	}
}

// buildPipeline constructs the ingestion pipeline over the configured
// document source: an S3 bucket when credentials are set, the local knowledge
// base directory otherwise.
func buildPipeline(ctx context.Context, cfg *config.Config, knowledgeStore *store.KnowledgeStore) (*ingest.Pipeline, error) {
	var source ingest.DocumentSource
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
			return nil, fmt.Errorf("failed to create S3 client: %w", err)
		}
		scratchDir, err := os.MkdirTemp("", "vedicai-ingest-")
		if err != nil {
			return nil, fmt.Errorf("failed to create scratch dir: %w", err)
		}
		source = ingest.NewS3Source(s3Client, scratchDir)
		log.Printf("ingesting from S3 bucket '%s'", cfg.S3Bucket)
	} else {
		source = ingest.NewLocalDirSource(cfg.KnowledgeBasePath)
		log.Printf("ingesting from local path '%s'", cfg.KnowledgeBasePath)
	}

	return ingest.NewPipeline(source, knowledgeStore), nil
}

func runMigrations(databaseURL string) error {
	// golang-migrate needs database/sql, not the pgx pool
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
	} else {
		log.Printf("migrations: at version %d", version)
	}

	return nil
}
