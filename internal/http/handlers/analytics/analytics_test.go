package analytics

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/grettaai/marketing-backend/internal/models"
)

// MockService реализует интерфейс analytics.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Analytics(ctx context.Context) (*models.Analytics, error) {
	args := m.Called(ctx)
	if res := args.Get(0); res != nil {
		return res.(*models.Analytics), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestAnalyticsHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешный снимок счётчиков",
			setupMock: func(m *MockService) {
				m.On("Analytics", mock.Anything).Return(&models.Analytics{
					TotalContacts:              3,
					TotalDemoRequests:          2,
					TotalTrialSignups:          1,
					TotalNewsletterSubscribers: 5,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"total_newsletter_subscribers":5`,
		},
		{
			name: "ошибка хранилища",
			setupMock: func(m *MockService) {
				m.On("Analytics", mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to get analytics"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodGet, "/api/analytics", nil)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
