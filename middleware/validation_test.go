package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupValidationRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/", ValidateCreateRequest(), func(c *gin.Context) {
		input := c.MustGet(CreateInputKey).(CreateRequestInput)
		c.JSON(http.StatusOK, gin.H{"success": true, "data": input})
	})
	return router
}

func postJSON(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/", bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestValidateCreateRequest(t *testing.T) {
	router := setupValidationRouter()

	tests := []struct {
		name           string
		body           string
		expectedStatus int
		expectedFields []string
	}{
		{
			name:           "Valid payload",
			body:           `{"name":"Jo Lee","email":"jo@example.com","jobTitle":"Backend Developer"}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Whitespace-padded payload passes",
			body:           `{"name":"  Jo Lee  ","email":" jo@example.com ","jobTitle":" Backend Developer "}`,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "Not JSON",
			body:           `not json`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "Wrong field type",
			body:           `{"name":42,"email":"jo@example.com","jobTitle":"Backend Developer"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "All fields missing",
			body:           `{}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"name", "email", "jobTitle"},
		},
		{
			name:           "Whitespace-only name",
			body:           `{"name":"   ","email":"jo@example.com","jobTitle":"Backend Developer"}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"name"},
		},
		{
			name:           "Name too long",
			body:           `{"name":"` + strings.Repeat("a", 101) + `","email":"jo@example.com","jobTitle":"Backend Developer"}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"name"},
		},
		{
			name:           "Email without domain",
			body:           `{"name":"Jo Lee","email":"jo@","jobTitle":"Backend Developer"}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"email"},
		},
		{
			name:           "Email with spaces",
			body:           `{"name":"Jo Lee","email":"jo doe@example.com","jobTitle":"Backend Developer"}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"email"},
		},
		{
			name:           "Event handler attribute",
			body:           `{"name":"Jo onerror=alert(1)","email":"jo@example.com","jobTitle":"Backend Developer"}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"general"},
		},
		{
			name:           "Eval call",
			body:           `{"name":"Jo Lee","email":"jo@example.com","jobTitle":"eval (document.cookie)"}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"general"},
		},
		{
			name:           "Iframe tag",
			body:           `{"name":"<iframe src=x>","email":"jo@example.com","jobTitle":"Backend Developer"}`,
			expectedStatus: http.StatusBadRequest,
			expectedFields: []string{"name", "general"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, tt.body)
			assert.Equal(t, tt.expectedStatus, w.Code)

			if len(tt.expectedFields) == 0 {
				return
			}

			var response struct {
				Details []FieldError `json:"details"`
			}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))

			fields := make([]string, 0, len(response.Details))
			for _, detail := range response.Details {
				fields = append(fields, detail.Field)
			}
			for _, expected := range tt.expectedFields {
				assert.Contains(t, fields, expected)
			}
		})
	}
}
