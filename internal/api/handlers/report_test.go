package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dishaajyoti/vedicai/internal/domain"
	"github.com/dishaajyoti/vedicai/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReportGenerator struct {
	mock.Mock
}

func (m *MockReportGenerator) GenerateReport(ctx context.Context, agentType string, data map[string]any) (*service.ReportResult, error) {
	args := m.Called(ctx, agentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReportResult), args.Error(1)
}

func TestReportHandler_Generate_Success(t *testing.T) {
	mockSvc := new(MockReportGenerator)
	mockSvc.On("GenerateReport", mock.Anything, "jyotisha", mock.MatchedBy(func(data map[string]any) bool {
		return data["full_name"] == "Asha Rao"
	})).Return(&service.ReportResult{
		Report: service.Report{
			Title: "Vedic Jyotish Report for Asha Rao",
			Sections: []service.ReportSection{
				{Title: "Analysis", Content: "Jupiter is strong."},
			},
		},
		Confidence: 0.9,
		AgentType:  "jyotisha",
	}, nil)

	handler := NewReportHandler(mockSvc)
	req := postJSON(t, "/api/generate-report", GenerateReportRequest{
		AgentType: "jyotisha",
		Data:      map[string]any{"full_name": "Asha Rao", "birth_date": "1990-04-12"},
	})
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data service.ReportResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Vedic Jyotish Report for Asha Rao", resp.Data.Report.Title)
	require.Len(t, resp.Data.Report.Sections, 1)
	assert.Equal(t, "Jupiter is strong.", resp.Data.Report.Sections[0].Content)
}

func TestReportHandler_Generate_MissingAgentType(t *testing.T) {
	handler := NewReportHandler(new(MockReportGenerator))
	req := postJSON(t, "/api/generate-report", GenerateReportRequest{
		Data: map[string]any{"full_name": "Asha Rao"},
	})
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "agent_type is required")
}

func TestReportHandler_Generate_MissingData(t *testing.T) {
	handler := NewReportHandler(new(MockReportGenerator))
	req := postJSON(t, "/api/generate-report", GenerateReportRequest{AgentType: "jyotisha"})
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "data is required")
}

func TestReportHandler_Generate_InvalidBody(t *testing.T) {
	handler := NewReportHandler(new(MockReportGenerator))
	req := httptest.NewRequest(http.MethodPost, "/api/generate-report", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportHandler_Generate_UnknownAgent(t *testing.T) {
	mockSvc := new(MockReportGenerator)
	mockSvc.On("GenerateReport", mock.Anything, "tarot", mock.Anything).
		Return(nil, domain.NewUnknownDomainError("tarot", []string{"jyotisha"}))

	handler := NewReportHandler(mockSvc)
	req := postJSON(t, "/api/generate-report", GenerateReportRequest{
		AgentType: "tarot",
		Data:      map[string]any{"full_name": "X"},
	})
	rec := httptest.NewRecorder()

	handler.Generate(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
