package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonLogger(buf *bytes.Buffer, component string) *Logger {
	return New(Config{Level: slog.LevelDebug, Format: "json", Component: component, Output: buf})
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	dec := json.NewDecoder(buf)
	for dec.More() {
		var m map[string]any
		require.NoError(t, dec.Decode(&m))
		out = append(out, m)
	}
	return out
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestLogger_StampsComponentOnce(t *testing.T) {
	var buf bytes.Buffer
	l := jsonLogger(&buf, ComponentLedger).WithComponent(ComponentReports)
	l.Info("hello", FieldMonth, "2025-12")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, ComponentReports, lines[0][FieldComponent])
	assert.Equal(t, "2025-12", lines[0][FieldMonth])
}

func TestMiddleware_RequestIDInContextLogger(t *testing.T) {
	var buf bytes.Buffer
	base := jsonLogger(&buf, ComponentHTTP)

	h := Middleware(base)(RequestIDMiddleware(func(*http.Request) string { return "req_abc" })(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			FromContext(r.Context()).InfoContext(r.Context(), "inside")
		})))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "req_abc", lines[0][FieldRequestID])
}

func TestFromContext_Fallback(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)
	assert.Equal(t, "unknown", l.Component())
}

func TestStructuredLogger_HTTPEndLevel(t *testing.T) {
	var buf bytes.Buffer
	sl := NewStructuredLogger(jsonLogger(&buf, ComponentApp))
	r := httptest.NewRequest(http.MethodPost, "/api/transactions", nil)

	sl.LogHTTPEnd(context.Background(), r, 201, 3, "10.0.0.1")
	sl.LogHTTPEnd(context.Background(), r, 422, 3, "10.0.0.1")
	sl.LogHTTPEnd(context.Background(), r, 500, 3, "10.0.0.1")
	sl.LogError(context.Background(), "boom", errors.New("disk"), ComponentStorage, OpCreate, nil)

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 4)
	assert.Equal(t, "INFO", lines[0]["level"])
	assert.Equal(t, "WARN", lines[1]["level"])
	assert.Equal(t, "ERROR", lines[2]["level"])
	assert.Equal(t, ComponentHTTP, lines[2][FieldComponent])
	assert.Equal(t, "disk", lines[3][FieldError])
	assert.Equal(t, ComponentStorage, lines[3][FieldComponent])
}
