package agent

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dishaajyoti/vedicai/internal/domain"
	"github.com/dishaajyoti/vedicai/internal/telemetry"
)

const (
	// searchK is the number of matches retrieved per query
	searchK = 5
	// relevanceThreshold gates matches into the prompt context and the
	// sources list. Both filters derive from the same score, so they must
	// stay in lock-step.
	relevanceThreshold = 0.7
	// confidenceThreshold selects which scores contribute to confidence
	confidenceThreshold = 0.5
	// lowConfidenceFloor signals "answered despite weak grounding"
	lowConfidenceFloor = 0.3
	// excerptLength bounds source excerpts in responses
	excerptLength = 200
	// historyWindow caps how many conversation turns enter the prompt
	historyWindow = 5

	noMatchesSentinel         = "No relevant information found in knowledge base."
	noRelevantMatchesSentinel = "No highly relevant information found in knowledge base."
)

// Retriever is the knowledge-store capability the answer pipeline depends on.
type Retriever interface {
	Search(ctx context.Context, query, namespace string, k int) ([]domain.RetrievedMatch, error)
}

// Generator is the external text-generation capability.
type Generator interface {
	GenerateCompletion(ctx context.Context, prompt string) (string, error)
}

// Response is a grounded answer to a standalone query.
type Response struct {
	Answer     string             `json:"answer"`
	Sources    []domain.SourceRef `json:"sources"`
	Confidence float64            `json:"confidence"`
	DomainID   string             `json:"agent_type"`
}

// ChatResponse is a grounded answer within a conversation. It carries no
// confidence score and its sources omit metadata.
type ChatResponse struct {
	Answer   string             `json:"answer"`
	Sources  []domain.SourceRef `json:"sources"`
	DomainID string             `json:"agent_type"`
}

// DomainAgent answers queries grounded in one knowledge domain. Agents are
// immutable after construction and stateless across requests.
type DomainAgent interface {
	DomainID() string
	Namespace() string
	Description() string
	GenerateResponse(ctx context.Context, query string, userContext map[string]any) (*Response, error)
	GenerateChatResponse(ctx context.Context, message string, history []domain.ConversationTurn, userContext map[string]any) (*ChatResponse, error)
	ReportQuery(data map[string]any) string
	ReportTitle(data map[string]any) string
}

// Deps bundles the external capabilities shared by all agents.
type Deps struct {
	Store Retriever
	LLM   Generator
}

// profile holds the static identity of one domain agent variant.
type profile struct {
	domainID     string
	namespace    string
	description  string
	systemPrompt string
	reportQuery  func(data map[string]any) string
	reportTitle  func(data map[string]any) string
}

type baseAgent struct {
	profile profile
	store   Retriever
	llm     Generator
}

func newBaseAgent(p profile, deps Deps) *baseAgent {
	return &baseAgent{profile: p, store: deps.Store, llm: deps.LLM}
}

func (a *baseAgent) DomainID() string    { return a.profile.domainID }
func (a *baseAgent) Namespace() string   { return a.profile.namespace }
func (a *baseAgent) Description() string { return a.profile.description }

func (a *baseAgent) ReportQuery(data map[string]any) string {
	return a.profile.reportQuery(data)
}

func (a *baseAgent) ReportTitle(data map[string]any) string {
	return a.profile.reportTitle(data)
}

// GenerateResponse runs the full retrieval-augmented pipeline for a
// standalone query.
func (a *baseAgent) GenerateResponse(ctx context.Context, query string, userContext map[string]any) (*Response, error) {
	ctx, span := telemetry.StartSpan(ctx, "Agent.GenerateResponse", telemetry.SpanAttributes{
		Domain:    a.profile.domainID,
		Operation: "query",
	})
	defer span.End()

	matches, err := a.store.Search(ctx, query, a.profile.namespace, searchK)
	if err != nil {
		span.SetError(err)
		return nil, domain.NewGenerationError("knowledge retrieval failed", err)
	}

	prompt := a.buildQueryPrompt(query, matches, userContext)

	answer, err := a.llm.GenerateCompletion(ctx, prompt)
	if err != nil {
		span.SetError(err)
		return nil, domain.NewGenerationError("text generation failed", err)
	}

	return &Response{
		Answer:     answer,
		Sources:    buildSources(matches, true),
		Confidence: calculateConfidence(matches),
		DomainID:   a.profile.domainID,
	}, nil
}

// GenerateChatResponse runs the pipeline for a conversational turn.
// Retrieval uses the latest message only; no history-aware reformulation.
func (a *baseAgent) GenerateChatResponse(ctx context.Context, message string, history []domain.ConversationTurn, userContext map[string]any) (*ChatResponse, error) {
	ctx, span := telemetry.StartSpan(ctx, "Agent.GenerateChatResponse", telemetry.SpanAttributes{
		Domain:    a.profile.domainID,
		Operation: "chat",
	})
	defer span.End()

	matches, err := a.store.Search(ctx, message, a.profile.namespace, searchK)
	if err != nil {
		span.SetError(err)
		return nil, domain.NewGenerationError("knowledge retrieval failed", err)
	}

	prompt := a.buildChatPrompt(message, history, matches, userContext)

	answer, err := a.llm.GenerateCompletion(ctx, prompt)
	if err != nil {
		span.SetError(err)
		return nil, domain.NewGenerationError("text generation failed", err)
	}

	return &ChatResponse{
		Answer:   answer,
		Sources:  buildSources(matches, false),
		DomainID: a.profile.domainID,
	}, nil
}

func (a *baseAgent) buildQueryPrompt(query string, matches []domain.RetrievedMatch, userContext map[string]any) string {
	var b strings.Builder
	b.WriteString(a.profile.systemPrompt)
	b.WriteString("\n\nKNOWLEDGE BASE REFERENCE:\n")
	b.WriteString(formatContext(matches))
	b.WriteString("\n\n")
	b.WriteString(formatUserContext(userContext))
	b.WriteString("\n\nUSER QUESTION:\n")
	b.WriteString(query)
	b.WriteString("\n\nPlease provide a detailed, accurate answer based on the knowledge base references and traditional principles.\n")
	b.WriteString("If the knowledge base doesn't have sufficient information, clearly state what you can and cannot answer confidently.\n")
	return b.String()
}

func (a *baseAgent) buildChatPrompt(message string, history []domain.ConversationTurn, matches []domain.RetrievedMatch, userContext map[string]any) string {
	var b strings.Builder
	b.WriteString(a.profile.systemPrompt)
	b.WriteString("\n\nKNOWLEDGE BASE REFERENCE:\n")
	b.WriteString(formatContext(matches))
	b.WriteString("\n\n")
	b.WriteString(formatUserContext(userContext))
	b.WriteString("\n\nCONVERSATION HISTORY:\n")
	b.WriteString(formatHistory(history))
	b.WriteString("\nUSER MESSAGE:\n")
	b.WriteString(message)
	b.WriteString("\n\nPlease respond naturally while maintaining accuracy based on the knowledge base and conversation context.\n")
	return b.String()
}

// formatContext renders matches above the relevance threshold as numbered
// reference blocks. Numbering follows the original match order, so a filtered
// match keeps its position visible. The two sentinels distinguish "nothing
// indexed matched" from "matches exist but none are strong", which downstream
// retrieval-health checks rely on.
func formatContext(matches []domain.RetrievedMatch) string {
	if len(matches) == 0 {
		return noMatchesSentinel
	}

	parts := make([]string, 0, len(matches))
	for i, m := range matches {
		if m.RelevanceScore > relevanceThreshold {
			parts = append(parts, fmt.Sprintf("Reference %d (Relevance: %.2f):\n%s\n", i+1, m.RelevanceScore, m.Chunk.Content))
		}
	}

	if len(parts) == 0 {
		return noRelevantMatchesSentinel
	}

	return strings.Join(parts, "\n")
}

// formatUserContext renders caller-supplied context as a bulleted block.
// Empty values are skipped; keys are humanized. Keys are sorted so prompt
// assembly is deterministic.
func formatUserContext(userContext map[string]any) string {
	if len(userContext) == 0 {
		return ""
	}

	keys := make([]string, 0, len(userContext))
	for k := range userContext {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := []string{"USER CONTEXT:"}
	for _, k := range keys {
		v := userContext[k]
		if v == nil {
			continue
		}
		value := fmt.Sprintf("%v", v)
		if strings.TrimSpace(value) == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("- %s: %s", humanizeKey(k), value))
	}

	if len(parts) == 1 {
		return ""
	}

	return strings.Join(parts, "\n")
}

func humanizeKey(key string) string {
	words := strings.Split(strings.ReplaceAll(key, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func formatHistory(history []domain.ConversationTurn) string {
	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}

	var b strings.Builder
	for _, turn := range history {
		role := turn.Role
		if role == "" {
			role = "user"
		}
		b.WriteString(strings.ToUpper(role))
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteString("\n")
	}
	return b.String()
}

// buildSources lists the matches above the relevance threshold in original
// order, each excerpted to 200 characters. Metadata is dropped for chat
// responses.
func buildSources(matches []domain.RetrievedMatch, includeMetadata bool) []domain.SourceRef {
	sources := make([]domain.SourceRef, 0, len(matches))
	for _, m := range matches {
		if m.RelevanceScore <= relevanceThreshold {
			continue
		}
		ref := domain.SourceRef{
			Content:        excerpt(m.Chunk.Content),
			RelevanceScore: m.RelevanceScore,
		}
		if includeMetadata {
			meta := m.Chunk.Metadata()
			ref.Metadata = &meta
		}
		sources = append(sources, ref)
	}
	return sources
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes) + "..."
}

// calculateConfidence estimates answer confidence from retrieval quality:
// 0.0 with no matches at all, a fixed low floor when matches exist but none
// score above the confidence threshold, otherwise the mean of qualifying
// scores capped at 1.0.
func calculateConfidence(matches []domain.RetrievedMatch) float64 {
	if len(matches) == 0 {
		return 0.0
	}

	var sum float64
	var n int
	for _, m := range matches {
		if m.RelevanceScore > confidenceThreshold {
			sum += m.RelevanceScore
			n++
		}
	}

	if n == 0 {
		return lowConfidenceFloor
	}

	confidence := sum / float64(n)
	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence
}
