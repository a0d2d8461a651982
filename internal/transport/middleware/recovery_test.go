package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/dante-lexicon/pkg/ctxutil"
)

func TestRecovery_PassesThrough(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	handler := Recovery(slog.New(slog.NewTextHandler(&buf, nil)))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"match":"exact","queries":1}`))
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/resolve?q=absent", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"match":"exact","queries":1}`, rec.Body.String())
	assert.Empty(t, buf.String())
}

func TestRecovery_Panic(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		method string
		target string
		value  any
		logged string
	}{
		{name: "string on resolve", method: http.MethodGet, target: "/api/v1/resolve?q=absent", value: "index corrupted", logged: "index corrupted"},
		{name: "error on commands", method: http.MethodPost, target: "/api/v1/commands", value: errors.New("nil translator"), logged: "nil translator"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelError}))
			handler := Recovery(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				panic(tt.value)
			}))

			req := httptest.NewRequest(tt.method, tt.target, nil)
			req = req.WithContext(ctxutil.WithRequestID(req.Context(), "req-1"))
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, map[string]string{"error": "internal server error"}, body)

			logs := buf.String()
			assert.Contains(t, logs, "panic recovered")
			assert.Contains(t, logs, tt.logged)
			assert.Contains(t, logs, "request_id=req-1")
			assert.Contains(t, logs, "stack=")
		})
	}
}
