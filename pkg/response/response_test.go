package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/noah-isme/spark-api/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestJSONWritesEnvelopeWithMeta(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	JSON(c, http.StatusOK, []string{"a"}, map[string]interface{}{"count": 1})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, []interface{}{"a"}, body["data"])
	assert.Equal(t, float64(1), body["meta"].(map[string]interface{})["count"])
	assert.NotContains(t, body, "error")
}

func TestErrorUsesTypedStatus(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Error(c, appErrors.ErrNotFound.WithMessage("program not found"))

	assert.Equal(t, http.StatusNotFound, w.Code)
	var body Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NotNil(t, body.Error)
	assert.Equal(t, "NOT_FOUND", body.Error.Code)
	assert.Equal(t, "program not found", body.Error.Message)
}

func TestAttachmentSetsDisposition(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Attachment(c, "programs.csv", "text/csv", []byte("id,title\n"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="programs.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Equal(t, "id,title\n", w.Body.String())
}
