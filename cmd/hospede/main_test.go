package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/config"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
)

func testConfig(backend, dbPath string) *config.Config {
	return &config.Config{
		Port:               "8081",
		CORSOrigins:        []string{"*"},
		DataBackend:        backend,
		SQLiteDBPath:       dbPath,
		StoreTimeout:       5 * time.Second,
		RateLimitPerMinute: 120,
		PropertyCacheTTL:   time.Minute,
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

func TestNewApp(t *testing.T) {
	tests := []struct {
		name    string
		backend string
	}{
		{"memory", config.BackendMemory},
		{"sqlite", config.BackendSQLite},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig(tt.backend, filepath.Join(t.TempDir(), "hospede.db"))
			a, err := newApp(context.Background(), cfg, log.Discard())
			require.NoError(t, err)
			defer a.shutdown(context.Background())

			rr := httptest.NewRecorder()
			a.server.Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			assert.Equal(t, http.StatusOK, rr.Code)

			rr = httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/api/properties", strings.NewReader(`{"name":"Casa","type":"airbnb"}`))
			a.server.Handler.ServeHTTP(rr, req)
			assert.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
		})
	}
}

func TestNewApp_InvalidBackend(t *testing.T) {
	_, err := newApp(context.Background(), testConfig("sheets", ""), log.Discard())
	assert.Error(t, err)
}
