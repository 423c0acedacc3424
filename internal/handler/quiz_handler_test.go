package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newTestGinContext создает *gin.Context для тестов с JSON body
func newTestGinContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()

	var req *http.Request
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		req, _ = http.NewRequest(method, path, bytes.NewReader(bodyBytes))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req, _ = http.NewRequest(method, path, nil)
	}

	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

// parseJSONResponse парсит JSON ответ из *httptest.ResponseRecorder
func parseJSONResponse(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err, "Response body should be valid JSON: %s", w.Body.String())
	return resp
}

// ============================================================================
// Request validation tests — не требуют реальных сервисов:
// handler возвращает 400 до вызова сервиса
// ============================================================================

func TestCreateQuiz_ValidationErrors(t *testing.T) {
	handler := &QuizHandler{} // nil services — OK для validation tests

	validQuestion := map[string]interface{}{
		"text":           "Столица Франции?",
		"options":        []string{"Париж", "Лион"},
		"correct_answer": "Париж",
	}

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
	}{
		{
			name:       "empty body",
			body:       nil,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing title",
			body: map[string]interface{}{
				"creator_name": "ivan",
				"questions":    []interface{}{validQuestion},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing creator_name",
			body: map[string]interface{}{
				"title":     "История",
				"questions": []interface{}{validQuestion},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing questions",
			body: map[string]interface{}{
				"title":        "История",
				"creator_name": "ivan",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "question without correct_answer",
			body: map[string]interface{}{
				"title":        "История",
				"creator_name": "ivan",
				"questions": []interface{}{
					map[string]interface{}{
						"text":    "Вопрос?",
						"options": []string{"А", "Б"},
					},
				},
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/quizzes", tt.body)
			handler.CreateQuiz(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			resp := parseJSONResponse(t, w)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestCompleteQuiz_ValidationErrors(t *testing.T) {
	handler := &AttemptHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing player_name",
			body: map[string]interface{}{"answers": []string{"А"}},
		},
		{
			name: "missing answers",
			body: map[string]interface{}{"player_name": "ivan"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/quizzes/x/complete", tt.body)
			c.Set("quizID", "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
			handler.CompleteQuiz(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestSaveEdits_ValidationErrors(t *testing.T) {
	handler := &AttemptHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing selected_options",
			body: map[string]interface{}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("PUT", "/api/attempts/x/answers", tt.body)
			c.Set("attemptID", "6ba7b810-9dad-11d1-80b4-00c04fd430c8")
			handler.SaveEdits(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestGeneratePractice_ValidationErrors(t *testing.T) {
	handler := &PracticeHandler{}

	tests := []struct {
		name string
		body interface{}
	}{
		{
			name: "empty body",
			body: nil,
		},
		{
			name: "missing count",
			body: map[string]interface{}{},
		},
		{
			name: "zero count",
			body: map[string]interface{}{"count": 0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, w := newTestGinContext("POST", "/api/players/ivan/practice", tt.body)
			c.Set("playerName", "ivan")
			handler.GeneratePractice(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			resp := parseJSONResponse(t, w)
			assert.NotEmpty(t, resp["error"])
		})
	}
}

func TestExportAttempts_UnknownFormat(t *testing.T) {
	handler := &AttemptHandler{}

	c, w := newTestGinContext("GET", "/api/players/ivan/attempts/export?format=pdf", nil)
	c.Set("playerName", "ivan")
	handler.ExportAttempts(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
