package contact

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

// MockService реализует интерфейс contact.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SubmitContact(ctx context.Context, req models.ContactCreate) (*models.SubmitResult, error) {
	args := m.Called(ctx, req)
	if res := args.Get(0); res != nil {
		return res.(*models.SubmitResult), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestContactHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		body           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешная отправка формы",
			body: `{"name":"Jane Doe","email":"jane@example.com","message":"hello"}`,
			setupMock: func(m *MockService) {
				m.On("SubmitContact", mock.Anything, mock.Anything).Return(&models.SubmitResult{
					Message:       "Contact request submitted successfully",
					HubspotSynced: true,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"hubspot_synced":true`,
		},
		{
			name:           "некорректный JSON",
			body:           `{name:`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"error":"invalid request body"`,
		},
		{
			name:           "некорректный email",
			body:           `{"name":"Jane Doe","email":"not-an-email","message":"hello"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Email must be a valid email address`,
		},
		{
			name:           "отсутствует обязательное поле",
			body:           `{"email":"jane@example.com","message":"hello"}`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnprocessableEntity,
			expectedBody:   `field Name is a required field`,
		},
		{
			name: "ошибка сервиса",
			body: `{"name":"Jane Doe","email":"jane@example.com","message":"hello"}`,
			setupMock: func(m *MockService) {
				m.On("SubmitContact", mock.Anything, mock.Anything).Return(nil, errors.New("db error"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `"error":"failed to submit contact request"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
