package cli

import (
	"context"
	"fmt"

	"github.com/dishaajyoti/vedicai/internal/config"
	"github.com/dishaajyoti/vedicai/internal/database"
	"github.com/dishaajyoti/vedicai/internal/ingest"
	"github.com/dishaajyoti/vedicai/internal/openai"
	"github.com/dishaajyoti/vedicai/internal/store"
	"github.com/spf13/cobra"
)

// IngestCmd returns the ingest command
func IngestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest knowledge base documents into the vector index",
		Long:  "Extract, chunk, embed, and index the knowledge base documents for one domain or all domains",
		RunE:  runIngest,
	}

	cmd.Flags().String("domain", "", "Ingest a single domain")
	cmd.Flags().Bool("all", false, "Ingest every domain found in the source")
	cmd.Flags().Bool("reingest", false, "Delete each namespace before ingesting")

	return cmd
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	domainFlag, _ := cmd.Flags().GetString("domain")
	allFlag, _ := cmd.Flags().GetBool("all")
	reingestFlag, _ := cmd.Flags().GetBool("reingest")

	if domainFlag == "" && !allFlag {
		return fmt.Errorf("either --domain or --all is required")
	}
	if domainFlag != "" && allFlag {
		return fmt.Errorf("--domain and --all are mutually exclusive")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	pool, err := database.NewPool(ctx, database.Config{URL: cfg.DatabaseURL})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer pool.Close()

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	llm := openai.NewClientWithConfig(openai.Config{
		APIKey:              cfg.OpenAIAPIKey,
		EmbeddingModel:      cfg.EmbeddingModel,
		EmbeddingDimensions: cfg.EmbeddingDimension,
	})
	knowledgeStore := store.NewKnowledgeStore(pool, llm)

	pipeline, err := buildPipeline(ctx, cfg, knowledgeStore)
	if err != nil {
		return fmt.Errorf("failed to build ingestion pipeline: %w", err)
	}

	var reports []*ingest.Report
	if allFlag {
		if reingestFlag {
			domains, err := pipeline.ListDomains(ctx)
			if err != nil {
				return err
			}
			for _, d := range domains {
				report, err := pipeline.ReingestDomain(ctx, d)
				if err != nil {
					report = &ingest.Report{Domain: d, Status: ingest.StatusError, Error: err.Error()}
				}
				reports = append(reports, report)
			}
		} else {
			reports, err = pipeline.IngestAll(ctx)
			if err != nil {
				return err
			}
		}
	} else {
		var report *ingest.Report
		if reingestFlag {
			report, err = pipeline.ReingestDomain(ctx, domainFlag)
		} else {
			report, err = pipeline.IngestDomain(ctx, domainFlag)
		}
		if err != nil {
			return err
		}
		reports = append(reports, report)
	}

	printReports(cmd, reports)
	return nil
}

func printReports(cmd *cobra.Command, reports []*ingest.Report) {
	for _, r := range reports {
		switch r.Status {
		case ingest.StatusSuccess:
			cmd.Printf("%s: %d documents (%d skipped), %d chunks\n",
				r.Domain, r.DocumentsProcessed, r.DocumentsSkipped, r.TotalChunks)
		case ingest.StatusNoFiles:
			cmd.Printf("%s: no source documents found\n", r.Domain)
		case ingest.StatusError:
			cmd.Printf("%s: failed: %s\n", r.Domain, r.Error)
		}
	}
}
