package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dishaajyoti/vedicai/internal/agent"
	"github.com/dishaajyoti/vedicai/internal/api"
	"github.com/dishaajyoti/vedicai/internal/domain"
	"github.com/dishaajyoti/vedicai/internal/service"
)

type QueryProcessor interface {
	ProcessQuery(ctx context.Context, agentType, query string, userContext map[string]any) (*service.QueryResult, error)
	ProcessChat(ctx context.Context, agentType, message string, history []domain.ConversationTurn, userContext map[string]any) (*service.ChatResult, error)
	ListAgents() []agent.AgentInfo
}

type QueryHandler struct {
	svc QueryProcessor
}

func NewQueryHandler(svc QueryProcessor) *QueryHandler {
	return &QueryHandler{svc: svc}
}

type QueryRequest struct {
	AgentType string         `json:"agent_type"`
	Query     string         `json:"query"`
	Context   map[string]any `json:"context"`
}

type ChatRequest struct {
	AgentType string                    `json:"agent_type"`
	Message   string                    `json:"message"`
	History   []domain.ConversationTurn `json:"history"`
	Context   map[string]any            `json:"context"`
}

// Query answers a standalone question with the requested domain agent.
func (h *QueryHandler) Query(w http.ResponseWriter, r *http.Request) {
	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.AgentType == "" {
		api.Error(w, http.StatusBadRequest, "agent_type is required")
		return
	}
	if req.Query == "" {
		api.Error(w, http.StatusBadRequest, "query is required")
		return
	}

	result, err := h.svc.ProcessQuery(r.Context(), req.AgentType, req.Query, req.Context)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, result)
}

// Chat answers a conversational turn. History is caller-supplied; the server
// keeps no conversation state.
func (h *QueryHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.AgentType == "" {
		api.Error(w, http.StatusBadRequest, "agent_type is required")
		return
	}
	if req.Message == "" {
		api.Error(w, http.StatusBadRequest, "message is required")
		return
	}

	result, err := h.svc.ProcessChat(r.Context(), req.AgentType, req.Message, req.History, req.Context)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, result)
}

type AgentListResponse struct {
	Agents []agent.AgentInfo `json:"agents"`
}

// ListAgents returns the available agent types with descriptions.
func (h *QueryHandler) ListAgents(w http.ResponseWriter, r *http.Request) {
	api.Success(w, http.StatusOK, AgentListResponse{Agents: h.svc.ListAgents()})
}
