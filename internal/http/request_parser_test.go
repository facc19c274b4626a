package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/aggregation"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{"valid", `{"name":"Casa"}`, ""},
		{"empty", "   ", "request body is empty"},
		{"malformed", `{"name":`, "malformed JSON"},
		{"trailing", `{"name":"a"}{"name":"b"}`, "trailing data"},
		{"too large", `{"name":"` + strings.Repeat("x", maxBodyBytes) + `"}`, "too large"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst propertyRequest
			err := decodeJSON(httptest.NewRecorder(), r, &dst)
			if tt.wantErr == "" {
				require.NoError(t, err)
				assert.Equal(t, "Casa", dst.Name)
				return
			}
			require.Error(t, err)
			var bad *badRequestError
			assert.True(t, errors.As(err, &bad))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestAmountField(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		want  string
		field bool
	}{
		{"number", `{"amount": 12.5}`, "12.5", false},
		{"integer", `{"amount": 300}`, "300", false},
		{"dot string", `{"amount": "12.34"}`, "12.34", false},
		{"comma string", `{"amount": "12,50"}`, "12.5", false},
		{"missing", `{}`, "", true},
		{"null", `{"amount": null}`, "", true},
		{"zero", `{"amount": 0}`, "", true},
		{"negative", `{"amount": "-3"}`, "", true},
		{"words", `{"amount": "abc"}`, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var req transactionRequest
			require.NoError(t, decodeJSON(httptest.NewRecorder(), r, &req))

			m, err := req.Amount.money()
			if tt.field {
				var verr *core.ValidationError
				require.True(t, errors.As(err, &verr))
				assert.Equal(t, "amount", verr.Field)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.String())
		})
	}
}

func TestTransactionRequestInput(t *testing.T) {
	req := transactionRequest{
		PropertyID:  " A ",
		PropertyIDs: []string{"B", "C"},
		Type:        "expense",
		Category:    " Luz ",
		Amount:      amountField{raw: "90", set: true},
		Description: "Conta\x00 de luz",
		Date:        " 2025-12 ",
		SplitPolicy: "EQUAL_SPLIT",
	}
	in, err := req.input()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, in.PropertyIDs)
	assert.Equal(t, "Luz", in.Category)
	assert.Equal(t, "Conta de luz", in.Description)
	assert.Equal(t, "2025-12", in.Month)
	assert.Equal(t, "90", in.Amount.String())
}

func TestParseMonthQuery(t *testing.T) {
	now := time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		query   string
		want    core.MonthKey
		wantErr bool
	}{
		{"", "2025-12", false},
		{"?month=2024-02", "2024-02", false},
		{"?month=2024-2", "", true},
		{"?month=all", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/reports/monthly"+tt.query, nil)
			got, err := parseMonthQuery(r, now)
			if tt.wantErr {
				var bad *badRequestError
				assert.True(t, errors.As(err, &bad))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseScopeQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/reports/categories", nil)
	got, err := parseScopeQuery(r)
	require.NoError(t, err)
	assert.Equal(t, aggregation.AllTime, got)

	r = httptest.NewRequest(http.MethodGet, "/api/reports/categories?month=2025-11", nil)
	got, err = parseScopeQuery(r)
	require.NoError(t, err)
	assert.Equal(t, aggregation.InMonth("2025-11"), got)

	r = httptest.NewRequest(http.MethodGet, "/api/reports/categories?month=nov", nil)
	_, err = parseScopeQuery(r)
	assert.Error(t, err)
}

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  Casa  ", "Casa"},
		{"a\x00b\x07c", "abc"},
		{"linha1\nlinha2\ttab", "linha1\nlinha2\ttab"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, sanitizeInput(tt.in))
	}
}
