package response_test

import (
	"testing"

	"github.com/go-playground/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grettaai/marketing-backend/internal/http/response"
)

func TestError(t *testing.T) {
	resp := response.Error("something broke")

	assert.Equal(t, response.StatusError, resp.Status)
	assert.Equal(t, "something broke", resp.Error)
}

func TestValidationError(t *testing.T) {
	type form struct {
		Name  string `validate:"required"`
		Email string `validate:"required,email"`
	}

	validate := validator.New()

	tests := []struct {
		name     string
		input    form
		expected []string
	}{
		{
			name:     "missing required fields",
			input:    form{},
			expected: []string{"field Name is a required field", "field Email is a required field"},
		},
		{
			name:     "malformed email",
			input:    form{Name: "Jane Doe", Email: "not-an-email"},
			expected: []string{"field Email must be a valid email address"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.input)
			require.Error(t, err)

			resp := response.ValidationError(err.(validator.ValidationErrors))
			assert.Equal(t, response.StatusError, resp.Status)
			for _, msg := range tt.expected {
				assert.Contains(t, resp.Error, msg)
			}
		})
	}
}
