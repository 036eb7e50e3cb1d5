package service

import (
	"context"
	"time"

	"github.com/dishaajyoti/vedicai/internal/agent"
	"github.com/dishaajyoti/vedicai/internal/domain"
	"github.com/dishaajyoti/vedicai/internal/telemetry"
)

// AgentResolver selects the domain agent for an agent type identifier.
type AgentResolver interface {
	Resolve(agentType string) (agent.DomainAgent, error)
	List() []agent.AgentInfo
}

// QueryResult is a grounded answer with request-level metadata attached.
type QueryResult struct {
	Answer           string             `json:"answer"`
	Sources          []domain.SourceRef `json:"sources"`
	Confidence       float64            `json:"confidence"`
	AgentType        string             `json:"agent_type"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
	Timestamp        int64              `json:"timestamp"`
}

// ChatResult is a conversational answer with request-level metadata attached.
type ChatResult struct {
	Answer           string             `json:"answer"`
	Sources          []domain.SourceRef `json:"sources"`
	AgentType        string             `json:"agent_type"`
	ProcessingTimeMs int64              `json:"processing_time_ms"`
	Timestamp        int64              `json:"timestamp"`
}

// QueryService orchestrates single-shot and conversational question
// answering across the registered domain agents.
type QueryService struct {
	registry AgentResolver
	now      func() time.Time
}

// NewQueryService creates a new QueryService instance.
func NewQueryService(registry AgentResolver) *QueryService {
	return &QueryService{registry: registry, now: time.Now}
}

// ProcessQuery answers a standalone question with the requested agent.
func (s *QueryService) ProcessQuery(ctx context.Context, agentType, query string, userContext map[string]any) (*QueryResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "QueryService.ProcessQuery", telemetry.SpanAttributes{
		Domain:    agentType,
		Operation: "query",
	})
	defer span.End()

	if query == "" {
		return nil, domain.ErrEmptyQuery
	}

	a, err := s.registry.Resolve(agentType)
	if err != nil {
		return nil, err
	}

	start := s.now()
	resp, err := a.GenerateResponse(ctx, query, userContext)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &QueryResult{
		Answer:           resp.Answer,
		Sources:          resp.Sources,
		Confidence:       resp.Confidence,
		AgentType:        resp.DomainID,
		ProcessingTimeMs: s.now().Sub(start).Milliseconds(),
		Timestamp:        s.now().Unix(),
	}, nil
}

// ProcessChat answers a conversational turn with the requested agent. The
// caller supplies the history; no conversation state is kept server side.
func (s *QueryService) ProcessChat(ctx context.Context, agentType, message string, history []domain.ConversationTurn, userContext map[string]any) (*ChatResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "QueryService.ProcessChat", telemetry.SpanAttributes{
		Domain:    agentType,
		Operation: "chat",
	})
	defer span.End()

	if message == "" {
		return nil, domain.ErrEmptyQuery
	}

	a, err := s.registry.Resolve(agentType)
	if err != nil {
		return nil, err
	}

	start := s.now()
	resp, err := a.GenerateChatResponse(ctx, message, history, userContext)
	if err != nil {
		span.SetError(err)
		return nil, err
	}

	return &ChatResult{
		Answer:           resp.Answer,
		Sources:          resp.Sources,
		AgentType:        resp.DomainID,
		ProcessingTimeMs: s.now().Sub(start).Milliseconds(),
		Timestamp:        s.now().Unix(),
	}, nil
}

// ListAgents returns the available agent types with descriptions.
func (s *QueryService) ListAgents() []agent.AgentInfo {
	return s.registry.List()
}
