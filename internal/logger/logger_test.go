package logger

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestFormatFields(t *testing.T) {
	assert.Equal(t, "", formatFields(nil))
	assert.Equal(t,
		"{bpm=96, key=A minor, ratio=0.75, seed=42}",
		formatFields(Fields{"seed": int64(42), "key": "A minor", "bpm": 96, "ratio": 0.75}),
	)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "text", formatValue("text"))
	assert.Equal(t, "7", formatValue(7))
	assert.Equal(t, "-3", formatValue(int64(-3)))
	assert.Equal(t, "0.33", formatValue(1.0/3))
	assert.Equal(t, "true", formatValue(true))
	assert.Equal(t, "[a b]", formatValue([]string{"a", "b"}))
}

func TestWithContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("POST", "/api/v1/progressions", nil)
	c.Set("request_id", "req-1")

	fields := WithContext(c)
	assert.Equal(t, Fields{"request_id": "req-1", "method": "POST", "path": "/api/v1/progressions"}, fields)

	c.Set("composition_id", "comp-1")
	assert.Equal(t, "comp-1", WithContext(c)["composition_id"])
}

func TestConvertFieldsToMap(t *testing.T) {
	m := convertFieldsToMap(Fields{"a": 1})
	assert.Equal(t, map[string]interface{}{"a": 1}, m)
}
