package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clinisupply/backend/internal/interfaces/http/dto"
)

type samplePayload struct {
	Name  string `json:"name" binding:"required,min=3"`
	Email string `json:"email" binding:"required,email"`
	Unit  string `json:"unit" binding:"omitempty,oneof=unit box"`
}

func bindSample(t *testing.T, body string) error {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var payload samplePayload
	return c.ShouldBindJSON(&payload)
}

func TestFormatValidationErrorsUsesJSONFieldNames(t *testing.T) {
	SetupValidator()

	err := bindSample(t, `{"name":"ab","email":"not-an-email","unit":"crate"}`)
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-1")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.RequestID)

	fields := make(map[string]string)
	for _, d := range resp.Error.Details {
		fields[d.Field] = d.Message
	}
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "unit")
	assert.Equal(t, "Invalid email format", fields["email"])
	assert.Equal(t, "Must be one of: unit box", fields["unit"])
}

func TestFormatValidationErrorsRequiredField(t *testing.T) {
	SetupValidator()

	err := bindSample(t, `{"email":"a@b.test"}`)
	require.Error(t, err)

	resp := FormatValidationErrors(err, "")
	require.NotNil(t, resp.Error)
	require.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "name", resp.Error.Details[0].Field)
	assert.Equal(t, "This field is required", resp.Error.Details[0].Message)
}

func TestFormatValidationErrorsNonValidationError(t *testing.T) {
	err := bindSample(t, `{not json`)
	require.Error(t, err)

	resp := FormatValidationErrors(err, "req-2")
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Empty(t, resp.Error.Details)
}
