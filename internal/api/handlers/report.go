package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/dishaajyoti/vedicai/internal/api"
	"github.com/dishaajyoti/vedicai/internal/service"
)

type ReportGenerator interface {
	GenerateReport(ctx context.Context, agentType string, data map[string]any) (*service.ReportResult, error)
}

type ReportHandler struct {
	svc ReportGenerator
}

func NewReportHandler(svc ReportGenerator) *ReportHandler {
	return &ReportHandler{svc: svc}
}

type GenerateReportRequest struct {
	AgentType string         `json:"agent_type"`
	Data      map[string]any `json:"data"`
}

// Generate produces a structured report from the supplied subject data.
func (h *ReportHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.AgentType == "" {
		api.Error(w, http.StatusBadRequest, "agent_type is required")
		return
	}
	if len(req.Data) == 0 {
		api.Error(w, http.StatusBadRequest, "data is required")
		return
	}

	result, err := h.svc.GenerateReport(r.Context(), req.AgentType, req.Data)
	if err != nil {
		api.HandleError(w, err)
		return
	}

	api.Success(w, http.StatusOK, result)
}
