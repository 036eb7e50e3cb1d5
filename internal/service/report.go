package service

import (
	"context"
	"time"

	"github.com/dishaajyoti/vedicai/internal/domain"
	"github.com/dishaajyoti/vedicai/internal/telemetry"
)

// ReportSection is one titled block of a structured report.
type ReportSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Report is a structured report document.
type Report struct {
	Title    string          `json:"title"`
	Sections []ReportSection `json:"sections"`
}

// ReportResult is a generated report with request-level metadata attached.
type ReportResult struct {
	Report           Report             `json:"report"`
	Sources          []domain.SourceRef `json:"sources"`
	Confidence       float64            `json:"confidence"`
	AgentType        string             `json:"agent_type"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
	Timestamp        int64              `json:"timestamp"`
}

// ReportService generates structured domain reports by running an agent's
// report query template through the standard answer pipeline.
type ReportService struct {
	registry AgentResolver
	now      func() time.Time
}

// NewReportService creates a new ReportService instance.
func NewReportService(registry AgentResolver) *ReportService {
	return &ReportService{registry: registry, now: time.Now}
}

// GenerateReport builds the agent's report query from the supplied data,
// answers it, and wraps the answer into a single-section report.
func (s *ReportService) GenerateReport(ctx context.Context, agentType string, data map[string]any) (*ReportResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "ReportService.GenerateReport", telemetry.SpanAttributes{
		Domain:    agentType,
		Operation: "report",
	})
	defer span.End()

	a, err := s.registry.Resolve(agentType)
	if err != nil {
		return nil, err
	}

	start := s.now()
	resp, err := a.GenerateResponse(ctx, a.ReportQuery(data), data)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &ReportResult{
		Report: Report{
			Title: a.ReportTitle(data),
			Sections: []ReportSection{
				{Title: "Analysis", Content: resp.Answer},
			},
		},
		Sources:          resp.Sources,
		Confidence:       resp.Confidence,
		AgentType:        resp.DomainID,
		ProcessingTimeMs: s.now().Sub(start).Milliseconds(),
		Timestamp:        s.now().Unix(),
	}, nil
}
