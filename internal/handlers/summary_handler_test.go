package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"receipt-scanner/internal/errors"
	"receipt-scanner/internal/logging"
	"receipt-scanner/internal/models"
	"receipt-scanner/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SummaryHandlerTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	echo          *echo.Echo
	mockSummaries *repository_mocks.MockSummaryRepositoryInterface
	handler       *SummaryHandler
}

func TestSummaryHandlerSuite(t *testing.T) {
	suite.Run(t, new(SummaryHandlerTestSuite))
}

func (s *SummaryHandlerTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.echo = echo.New()
	s.echo.Validator = NewValidator()
	s.mockSummaries = repository_mocks.NewMockSummaryRepositoryInterface(s.ctrl)
	s.handler = NewSummaryHandler(s.mockSummaries, logging.Discard())
}

func (s *SummaryHandlerTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *SummaryHandlerTestSuite) TestMonthly_Success() {
	req := httptest.NewRequest(http.MethodGet, "/api/summary/monthly?year=2026&month=2", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.mockSummaries.EXPECT().
		GetMonthlySummary(2026, 2).
		Return(&models.MonthlySummary{
			Year:        2026,
			Month:       2,
			TotalAmount: decimal.NewFromInt(3580),
			TotalCount:  3,
			Categories: []models.CategorySummary{
				{Category: models.CategoryFood, TotalAmount: decimal.NewFromInt(2580), Count: 2},
				{Category: models.CategoryUncategorized, TotalAmount: decimal.NewFromInt(1000), Count: 1},
			},
		}, nil)

	err := s.handler.Monthly(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)

	var summary models.MonthlySummary
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &summary))
	s.Equal(int64(3), summary.TotalCount)
	s.True(decimal.NewFromInt(3580).Equal(summary.TotalAmount))
	s.Require().Len(summary.Categories, 2)
	s.Equal(models.CategoryUncategorized, summary.Categories[1].Category)
}

func (s *SummaryHandlerTestSuite) TestMonthly_InvalidQuery() {
	tests := []struct {
		name  string
		query string
	}{
		{"missing month", "year=2026"},
		{"month out of range", "year=2026&month=13"},
		{"year out of range", "year=1999&month=1"},
		{"non numeric", "year=twenty&month=1"},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			req := httptest.NewRequest(http.MethodGet, "/api/summary/monthly?"+tt.query, nil)
			rec := httptest.NewRecorder()
			c := s.echo.NewContext(req, rec)

			err := s.handler.Monthly(c)

			s.NoError(err)
			s.Equal(http.StatusUnprocessableEntity, rec.Code)

			var body ErrorResponse
			s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
			s.Equal("入力値が正しくありません", body.Detail)
		})
	}
}

func (s *SummaryHandlerTestSuite) TestMonthly_RepositoryError() {
	req := httptest.NewRequest(http.MethodGet, "/api/summary/monthly?year=2026&month=2", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.mockSummaries.EXPECT().GetMonthlySummary(2026, 2).Return(nil, fmt.Errorf("no such table"))

	err := s.handler.Monthly(c)

	s.NoError(err)
	s.Equal(http.StatusInternalServerError, rec.Code)
}

func (s *SummaryHandlerTestSuite) TestMonthlyList_Success() {
	req := httptest.NewRequest(http.MethodGet, "/api/summary/monthly-list", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.mockSummaries.EXPECT().
		GetAvailableMonths().
		Return([]models.MonthOption{{Year: 2026, Month: 3, Count: 4}, {Year: 2026, Month: 2, Count: 1}}, nil)

	err := s.handler.MonthlyList(c)

	s.NoError(err)
	s.Equal(http.StatusOK, rec.Code)
	s.JSONEq(`{"months":[{"year":2026,"month":3,"count":4},{"year":2026,"month":2,"count":1}]}`, rec.Body.String())
}

func (s *SummaryHandlerTestSuite) TestMonthlyList_Empty() {
	req := httptest.NewRequest(http.MethodGet, "/api/summary/monthly-list", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.mockSummaries.EXPECT().GetAvailableMonths().Return([]models.MonthOption{}, nil)

	err := s.handler.MonthlyList(c)

	s.NoError(err)
	s.JSONEq(`{"months":[]}`, rec.Body.String())
}

func (s *SummaryHandlerTestSuite) TestMonthlyList_RepositoryError() {
	req := httptest.NewRequest(http.MethodGet, "/api/summary/monthly-list", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set(TraceIDContextKey, "trace-123")

	s.mockSummaries.EXPECT().GetAvailableMonths().Return(nil, fmt.Errorf("locked"))

	err := s.handler.MonthlyList(c)

	s.NoError(err)
	s.Equal(http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	s.Require().NoError(json.Unmarshal(rec.Body.Bytes(), &body))
	s.Equal(string(errors.SystemInternalError), body.Code)
	s.Equal("trace-123", body.TraceID)
}
