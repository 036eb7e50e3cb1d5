package jobs

import (
	"context"
	"fmt"
	"log"

	"github.com/dishaajyoti/vedicai/internal/ingest"
)

// Ingester is the pipeline capability the reingest worker drives.
type Ingester interface {
	ListDomains(ctx context.Context) ([]string, error)
	ReingestDomain(ctx context.Context, domainID string) (*ingest.Report, error)
}

// ReingestProcessor rebuilds every knowledge namespace from its source
// documents. One run replaces each namespace wholesale; the worker is the
// single writer, so concurrent readers only ever see a consistent set.
type ReingestProcessor struct {
	pipeline Ingester
}

// NewReingestProcessor creates a new ReingestProcessor instance.
func NewReingestProcessor(pipeline Ingester) *ReingestProcessor {
	return &ReingestProcessor{pipeline: pipeline}
}

// ProcessJobs reingests all domains. A single domain's failure is logged and
// the remaining domains still run.
func (p *ReingestProcessor) ProcessJobs(ctx context.Context) error {
	domains, err := p.pipeline.ListDomains(ctx)
	if err != nil {
		return fmt.Errorf("failed to list domains: %w", err)
	}

	for _, domainID := range domains {
		report, err := p.pipeline.ReingestDomain(ctx, domainID)
		if err != nil {
			log.Printf("reingest failed for domain %s: %v", domainID, err)
			continue
		}
		log.Printf("reingested domain %s: %d documents, %d chunks",
			domainID, report.DocumentsProcessed, report.TotalChunks)
	}

	return nil
}
