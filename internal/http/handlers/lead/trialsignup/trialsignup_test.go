package trialsignup

import (
	"context"
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

// MockService реализует интерфейс trialsignup.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SubmitTrialSignup(ctx context.Context, req models.TrialSignupCreate) (*models.SubmitResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.SubmitResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestTrialSignupHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "новая заявка с синхронизацией CRM",
			body: `{"name":"Jane Doe","email":"jane@example.com","phone":"+1234567890","plan_type":"pro"}`,
			setupMock: func(m *MockService) {
				m.On("SubmitTrialSignup", mock.Anything, mock.Anything).Return(&models.SubmitResult{
					Message:       "Free trial signup successful! We'll contact you shortly.",
					HubspotSynced: true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"hubspot_synced":true`,
		},
		{
			name: "повторная заявка — успех с сообщением",
			body: `{"name":"Jane Doe","email":"jane@example.com","phone":"+1234567890","plan_type":"pro"}`,
			setupMock: func(m *MockService) {
				m.On("SubmitTrialSignup", mock.Anything, mock.Anything).Return(&models.SubmitResult{
					Message: "You have already signed up for a free trial",
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `already signed up`,
		},
		{
			name:           "некорректный email",
			body:           `{"name":"Jane Doe","email":"bad","phone":"+1234567890","plan_type":"pro"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Email must be a valid email address`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/trial-signup", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
