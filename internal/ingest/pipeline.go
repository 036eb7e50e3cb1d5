package ingest

import (
	"context"
	"log"

	"github.com/dishaajyoti/vedicai/internal/domain"
	"github.com/dishaajyoti/vedicai/internal/telemetry"
)

// Ingestion statuses
const (
	StatusSuccess = "success"
	StatusNoFiles = "no_files"
	StatusError   = "error"
)

// Report summarizes one domain's ingestion run.
type Report struct {
	Domain             string   `json:"service_type"`
	DocumentsProcessed int      `json:"documents_processed"`
	DocumentsSkipped   int      `json:"documents_skipped"`
	ProcessedFiles     []string `json:"processed_files,omitempty"`
	TotalChunks        int      `json:"total_chunks"`
	Status             string   `json:"status"`
	Error              string   `json:"error,omitempty"`
}

// KnowledgeWriter is the store capability the pipeline writes through.
type KnowledgeWriter interface {
	Add(ctx context.Context, chunks []domain.KnowledgeChunk, namespace string) error
	DeleteNamespace(ctx context.Context, namespace string) error
}

// Pipeline turns raw source documents into indexed knowledge chunks. It is a
// batch workload: one writer per namespace at a time, serialized externally.
type Pipeline struct {
	source    DocumentSource
	extractor *TextExtractor
	splitter  *Splitter
	store     KnowledgeWriter
}

// NewPipeline creates a Pipeline with default extraction and chunking.
func NewPipeline(source DocumentSource, store KnowledgeWriter) *Pipeline {
	return &Pipeline{
		source:    source,
		extractor: NewTextExtractor(),
		splitter:  NewSplitter(DefaultChunkSize, DefaultChunkOverlap),
		store:     store,
	}
}

// NewPipelineWithSplitter creates a Pipeline with explicit chunking targets.
func NewPipelineWithSplitter(source DocumentSource, store KnowledgeWriter, splitter *Splitter) *Pipeline {
	return &Pipeline{
		source:    source,
		extractor: NewTextExtractor(),
		splitter:  splitter,
		store:     store,
	}
}

// ListDomains returns the domain identifiers the source knows about.
func (p *Pipeline) ListDomains(ctx context.Context) ([]string, error) {
	return p.source.ListDomains(ctx)
}

// IngestDomain extracts, chunks, and indexes every source document for the
// domain under its namespace. A single document's extraction failure is
// logged and skipped; it does not abort the batch. When no document at all
// survives extraction, the domain is reported as an error.
func (p *Pipeline) IngestDomain(ctx context.Context, domainID string) (*Report, error) {
	ctx, span := telemetry.StartSpan(ctx, "Pipeline.IngestDomain", telemetry.SpanAttributes{
		Domain:    domainID,
		Operation: "ingest",
	})
	defer span.End()

	docs, err := p.source.ListDocuments(ctx, domainID)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	if len(docs) == 0 {
		log.Printf("no source documents found for domain %s", domainID)
		return &Report{Domain: domainID, Status: StatusNoFiles}, nil
	}

	log.Printf("found %d source documents for domain %s", len(docs), domainID)

	var batch []domain.KnowledgeChunk
	var processed []string
	skipped := 0

	for _, doc := range docs {
		chunks, err := p.processDocument(doc, domainID)
		if err != nil {
			log.Printf("skipping document %s: %v", doc.Name, err)
			skipped++
			continue
		}
		batch = append(batch, chunks...)
		processed = append(processed, doc.Name)
	}

	if len(processed) == 0 {
		log.Printf("every document failed for domain %s (%d skipped)", domainID, skipped)
		return &Report{
			Domain:           domainID,
			DocumentsSkipped: skipped,
			Status:           StatusError,
			Error:            "all documents failed extraction",
		}, nil
	}

	if len(batch) > 0 {
		log.Printf("ingesting %d chunks for domain %s", len(batch), domainID)
		if err := p.store.Add(ctx, batch, domainID); err != nil {
			span.SetError(err)
			return nil, err
		}
	}

	return &Report{
		Domain:             domainID,
		DocumentsProcessed: len(processed),
		DocumentsSkipped:   skipped,
		ProcessedFiles:     processed,
		TotalChunks:        len(batch),
		Status:             StatusSuccess,
	}, nil
}

// processDocument extracts a document's text and splits it into chunks with
// provenance metadata attached.
func (p *Pipeline) processDocument(doc Document, domainID string) ([]domain.KnowledgeChunk, error) {
	text, err := p.extractor.ExtractText(doc.Path)
	if err != nil {
		return nil, err
	}

	pieces := p.splitter.Split(text)
	chunks := make([]domain.KnowledgeChunk, 0, len(pieces))
	for i, piece := range pieces {
		chunks = append(chunks, domain.KnowledgeChunk{
			Content:    piece,
			Source:     doc.Name,
			Domain:     domainID,
			ChunkIndex: i,
			ChunkCount: len(pieces),
		})
	}

	log.Printf("created %d chunks from %s", len(chunks), doc.Name)
	return chunks, nil
}

// ReingestDomain deletes the domain's namespace and ingests from scratch: a
// full replace, never incremental.
func (p *Pipeline) ReingestDomain(ctx context.Context, domainID string) (*Report, error) {
	log.Printf("reingesting domain %s", domainID)

	if err := p.store.DeleteNamespace(ctx, domainID); err != nil {
		return nil, err
	}

	return p.IngestDomain(ctx, domainID)
}

// IngestAll discovers domain directories and ingests each in turn. One
// domain's failure is recorded as an error report and does not stop the
// others.
func (p *Pipeline) IngestAll(ctx context.Context) ([]*Report, error) {
	domains, err := p.source.ListDomains(ctx)
	if err != nil {
		return nil, err
	}

	log.Printf("found %d domain directories", len(domains))

	reports := make([]*Report, 0, len(domains))
	for _, domainID := range domains {
		report, err := p.IngestDomain(ctx, domainID)
		if err != nil {
			log.Printf("failed to ingest domain %s: %v", domainID, err)
			reports = append(reports, &Report{
				Domain: domainID,
				Status: StatusError,
				Error:  err.Error(),
			})
			continue
		}
		reports = append(reports, report)
	}

	return reports, nil
}
