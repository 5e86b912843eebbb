package newsletter

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

// MockService реализует интерфейс newsletter.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SubscribeNewsletter(ctx context.Context, req models.NewsletterCreate) (*models.SubmitResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.SubmitResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestNewsletterHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "новая подписка",
			body: `{"email":"a@b.com"}`,
			setupMock: func(m *MockService) {
				m.On("SubscribeNewsletter", mock.Anything, models.NewsletterCreate{Email: "a@b.com"}).
					Return(&models.SubmitResult{Message: "Successfully subscribed to newsletter"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"message":"Successfully subscribed to newsletter"`,
		},
		{
			name: "повторная подписка — успех с сообщением",
			body: `{"email":"a@b.com"}`,
			setupMock: func(m *MockService) {
				m.On("SubscribeNewsletter", mock.Anything, models.NewsletterCreate{Email: "a@b.com"}).
					Return(&models.SubmitResult{Message: "You are already subscribed to our newsletter"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `already subscribed`,
		},
		{
			name:           "некорректный email",
			body:           `{"email":"nope"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Email must be a valid email address`,
		},
		{
			name: "ошибка сервиса",
			body: `{"email":"a@b.com"}`,
			setupMock: func(m *MockService) {
				m.On("SubscribeNewsletter", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to subscribe to newsletter"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/newsletter", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
