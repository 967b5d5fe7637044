package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osfio/collections-moderation/pkg/ctxutil"
)

func captureLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})), &buf
}

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestLogger_Fields(t *testing.T) {
	t.Parallel()

	logger, buf := captureLogger()
	userID := uuid.New()

	h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("hello")) //nolint:errcheck
	}))

	req := httptest.NewRequest(http.MethodPost, "/collections/x/submissions", nil)
	ctx := ctxutil.WithRequestID(req.Context(), "req-1")
	ctx = ctxutil.WithUserID(ctx, userID)
	h.ServeHTTP(httptest.NewRecorder(), req.WithContext(ctx))

	line := decodeLine(t, buf)
	assert.Equal(t, "http.request", line["msg"])
	assert.Equal(t, "INFO", line["level"])
	assert.Equal(t, float64(http.StatusCreated), line["status"])
	assert.Equal(t, float64(5), line["bytes"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, userID.String(), line["user_id"])
}

func TestLogger_Levels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "INFO"},
		{http.StatusConflict, "WARN"},
		{http.StatusInternalServerError, "ERROR"},
	}

	for _, tt := range tests {
		logger, buf := captureLogger()
		h := Logger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		line := decodeLine(t, buf)
		assert.Equal(t, tt.level, line["level"], "status %d", tt.status)
		_, hasUser := line["user_id"]
		assert.False(t, hasUser)
	}
}
