package trace

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
)

func TestMiddleware_RequestID(t *testing.T) {
	tests := []struct {
		name     string
		inbound  string
		wantSame bool
	}{
		{"generated when absent", "", false},
		{"inbound id kept", "abc-123", true},
		{"unsafe inbound id replaced", "bad id\nwith newline", false},
		{"overlong inbound id replaced", strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			var fromLogger *log.Logger
			h := NewMiddleware(nil, log.Discard()).Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = GetRequestID(r.Context())
				fromLogger = log.FromContext(r.Context())
				w.WriteHeader(http.StatusTeapot)
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/properties", nil)
			if tt.inbound != "" {
				req.Header.Set(HeaderRequestID, tt.inbound)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusTeapot, rec.Code)
			assert.Equal(t, seen, rec.Header().Get(HeaderRequestID))
			assert.NotNil(t, fromLogger)
			if tt.wantSame {
				assert.Equal(t, tt.inbound, seen)
			} else {
				assert.True(t, strings.HasPrefix(seen, "req_"), "got %q", seen)
			}
		})
	}
}

func TestMiddleware_Metrics(t *testing.T) {
	m := NewMiddleware(func(*http.Request) string { return "10.0.0.1" }, log.Discard())
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	for i := 0; i < 3; i++ {
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))
	}
	assert.Equal(t, int64(3), m.GetMetrics().TotalRequests)
}

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	rw := &responseWriter{ResponseWriter: rec, statusCode: http.StatusOK}
	_, _ = rw.Write([]byte("ok"))
	rw.WriteHeader(http.StatusInternalServerError)
	assert.Equal(t, http.StatusOK, rw.statusCode)
}

func TestGenerateRequestID(t *testing.T) {
	a, b := GenerateRequestID(), GenerateRequestID()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, len("req_")+16)
}
