// Package http provides HTTP server and handler implementations.
//
// This file implements decoding and validation of request bodies and query
// parameters.

package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/aggregation"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/services"
)

const maxBodyBytes = 1 << 20

// badRequestError marks input that could not be read at all, as opposed to
// well-formed input that fails validation.
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func badRequest(format string, args ...any) error {
	return &badRequestError{msg: fmt.Sprintf(format, args...)}
}

// decodeJSON reads one JSON object from the body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return badRequest("request body too large")
		}
		return badRequest("failed to read request body")
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return badRequest("request body is empty")
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	if err := dec.Decode(dst); err != nil {
		return badRequest("malformed JSON: %v", err)
	}
	if dec.More() {
		return badRequest("malformed JSON: trailing data")
	}
	return nil
}

// amountField accepts a JSON number or a string such as "12,50". Parsing is
// deferred so a bad amount is a validation failure, not a malformed body.
type amountField struct {
	raw string
	set bool
}

func (a *amountField) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*a = amountField{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*a = amountField{raw: s, set: true}
		return nil
	}
	*a = amountField{raw: string(b), set: true}
	return nil
}

func (a amountField) money() (core.Money, error) {
	if !a.set {
		return core.Money{}, core.Invalid("amount", core.ErrInvalidAmount)
	}
	m, err := core.ParseAmount(a.raw)
	if err != nil {
		return core.Money{}, core.Invalid("amount", err)
	}
	return m, nil
}

// transactionRequest is the body of POST and PUT /api/transactions.
// property_id and property_ids may be combined; duplicates are dropped.
type transactionRequest struct {
	PropertyID  string      `json:"property_id"`
	PropertyIDs []string    `json:"property_ids"`
	Type        string      `json:"type"`
	Category    string      `json:"category"`
	Amount      amountField `json:"amount"`
	Description string      `json:"description"`
	Date        string      `json:"date"`
	SplitPolicy string      `json:"split_policy"`
}

func (req transactionRequest) input() (services.TransactionInput, error) {
	amount, err := req.Amount.money()
	if err != nil {
		return services.TransactionInput{}, err
	}
	ids := make([]string, 0, len(req.PropertyIDs)+1)
	if id := strings.TrimSpace(req.PropertyID); id != "" {
		ids = append(ids, id)
	}
	ids = append(ids, req.PropertyIDs...)
	return services.TransactionInput{
		PropertyIDs: ids,
		Type:        sanitizeInput(req.Type),
		Category:    sanitizeInput(req.Category),
		Amount:      amount,
		Description: sanitizeInput(req.Description),
		Month:       strings.TrimSpace(req.Date),
		SplitPolicy: sanitizeInput(req.SplitPolicy),
	}, nil
}

type propertyRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	ImageURL string `json:"image_url"`
}

func (req propertyRequest) input() services.PropertyInput {
	return services.PropertyInput{
		Name:     sanitizeInput(req.Name),
		Type:     sanitizeInput(req.Type),
		ImageURL: sanitizeInput(req.ImageURL),
	}
}

// parseMonthQuery reads ?month=YYYY-MM, defaulting to the month of now.
func parseMonthQuery(r *http.Request, now time.Time) (core.MonthKey, error) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return core.MonthOf(now), nil
	}
	m, err := core.ParseMonthKey(v)
	if err != nil {
		return "", badRequest("invalid month %q: expected YYYY-MM", v)
	}
	return m, nil
}

// parseScopeQuery reads ?month=YYYY-MM|all. A missing value means all time.
func parseScopeQuery(r *http.Request) (aggregation.Scope, error) {
	v := strings.TrimSpace(r.URL.Query().Get("month"))
	if v == "" {
		return aggregation.AllTime, nil
	}
	s, err := aggregation.ParseScope(v)
	if err != nil {
		return aggregation.Scope{}, badRequest("invalid month %q: expected YYYY-MM or all", v)
	}
	return s, nil
}

// sanitizeInput removes control characters except tab, newline and
// carriage return, and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}
