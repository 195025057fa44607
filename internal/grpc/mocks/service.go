package mocks

import (
	"errors"

	"github.com/godilite/survey-stats/internal/service"
)

// MockReportService is a mock implementation of the ReportService interface
// for testing the handler layer. It uses function-based mocking for flexibility.
type MockReportService struct {
	AnswerFunc      func(query string) string
	SummaryFunc     func() service.Summary
	RenderChartFunc func(req service.ChartRequest) (service.Chart, error)
	FingerprintFunc func() string
}

// Answer implements the ReportService interface
func (m *MockReportService) Answer(query string) string {
	if m.AnswerFunc != nil {
		return m.AnswerFunc(query)
	}
	return ""
}

// Summary implements the ReportService interface
func (m *MockReportService) Summary() service.Summary {
	if m.SummaryFunc != nil {
		return m.SummaryFunc()
	}
	return service.Summary{}
}

// RenderChart implements the ReportService interface
func (m *MockReportService) RenderChart(req service.ChartRequest) (service.Chart, error) {
	if m.RenderChartFunc != nil {
		return m.RenderChartFunc(req)
	}
	return service.Chart{}, errors.New("RenderChartFunc not implemented")
}

// Fingerprint implements the ReportService interface
func (m *MockReportService) Fingerprint() string {
	if m.FingerprintFunc != nil {
		return m.FingerprintFunc()
	}
	return "mock:0000"
}
