package middleware

import (
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

func newParamContext(key, value string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest("GET", "/", nil)
	c.Params = gin.Params{{Key: key, Value: value}}
	return c, w
}

func TestExtractUUIDParam(t *testing.T) {
	t.Run("valid uuid is stored under context key", func(t *testing.T) {
		c, w := newParamContext("id", "6ba7b810-9dad-11d1-80b4-00c04fd430c8")

		ExtractUUIDParam("id", "quizID")(c)

		require.False(t, c.IsAborted())
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "6ba7b810-9dad-11d1-80b4-00c04fd430c8", c.MustGet("quizID"))
	})

	t.Run("malformed uuid is rejected", func(t *testing.T) {
		c, w := newParamContext("id", "not-a-uuid")

		ExtractUUIDParam("id", "quizID")(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestExtractNameParam(t *testing.T) {
	t.Run("name is trimmed and stored", func(t *testing.T) {
		c, _ := newParamContext("name", "  Иван ")

		ExtractNameParam("name", "playerName")(c)

		require.False(t, c.IsAborted())
		assert.Equal(t, "Иван", c.MustGet("playerName"))
	})

	t.Run("blank name is rejected", func(t *testing.T) {
		c, w := newParamContext("name", "   ")

		ExtractNameParam("name", "playerName")(c)

		assert.True(t, c.IsAborted())
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
