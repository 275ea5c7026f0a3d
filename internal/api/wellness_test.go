package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// authAs fakes the JWT middleware by injecting the identity directly.
func authAs(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func performJSON(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var parsed map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	}
	return w, parsed
}

func TestPhysicalHealthHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/physical-health", authAs(1), PhysicalHealthHandler())

	w, body := performJSON(t, router, http.MethodPost, "/physical-health",
		`{"age":30,"weight":70,"height":175}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 95.0, body["wasi"])
	require.Equal(t, 114.3, body["mls"])
}

func TestPhysicalHealthHandlerRejectsOutOfRange(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/physical-health", authAs(1), PhysicalHealthHandler())

	w, body := performJSON(t, router, http.MethodPost, "/physical-health",
		`{"age":150,"weight":70,"height":175}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "Invalid input values", body["error"])
}

func TestPhysicalHealthHandlerRejectsMissingFields(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/physical-health", authAs(1), PhysicalHealthHandler())

	w, _ := performJSON(t, router, http.MethodPost, "/physical-health", `{"age":30}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPhysicalHealthHandlerRequiresAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/physical-health", PhysicalHealthHandler())

	w, _ := performJSON(t, router, http.MethodPost, "/physical-health",
		`{"age":30,"weight":70,"height":175}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestDietHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/diet", authAs(1), DietHandler())

	// Explicit bpm
	w, body := performJSON(t, router, http.MethodGet, "/diet?bpm=55", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 55.0, body["bpm"])
	require.Equal(t, "Energy-support diet (complex carbs, hydration)", body["recommendation"])

	// Resting default when omitted
	w, body = performJSON(t, router, http.MethodGet, "/diet", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 72.0, body["bpm"])
	require.Equal(t, "Balanced heart-healthy diet", body["recommendation"])

	// Garbage input
	w, _ = performJSON(t, router, http.MethodGet, "/diet?bpm=fast", "")
	require.Equal(t, http.StatusBadRequest, w.Code)
}
