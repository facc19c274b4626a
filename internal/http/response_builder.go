// Package http provides HTTP server and handler implementations.
//
// This file implements a small builder for JSON responses and the mapping
// from domain errors to status codes.

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
)

// JSONResponseBuilder provides a fluent API for building JSON responses.
type JSONResponseBuilder struct {
	statusCode int
	body       any
	headers    map[string]string
}

// NewJSONResponse creates a new response builder with default 200 status.
func NewJSONResponse() *JSONResponseBuilder {
	return &JSONResponseBuilder{
		statusCode: http.StatusOK,
		headers:    make(map[string]string),
	}
}

func (b *JSONResponseBuilder) Status(code int) *JSONResponseBuilder {
	b.statusCode = code
	return b
}

func (b *JSONResponseBuilder) Header(name, value string) *JSONResponseBuilder {
	b.headers[name] = value
	return b
}

// Body sets the value encoded as the response body.
func (b *JSONResponseBuilder) Body(v any) *JSONResponseBuilder {
	b.body = v
	return b
}

// Write sends the built response. A nil body writes no content.
func (b *JSONResponseBuilder) Write(w http.ResponseWriter) {
	for name, value := range b.headers {
		w.Header().Set(name, value)
	}
	if b.body == nil {
		w.WriteHeader(b.statusCode)
		return
	}

	data, err := json.Marshal(b.body)
	if err != nil {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"failed to encode response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(b.statusCode)
	_, _ = w.Write(data)
	_, _ = w.Write([]byte("\n"))
}

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Error              string   `json:"error"`
	Field              string   `json:"field,omitempty"`
	CreatedIDs         []string `json:"created_ids,omitempty"`
	MissingPropertyIDs []string `json:"missing_property_ids,omitempty"`
}

// ErrorResponse creates a standard {"error": message} response.
func ErrorResponse(statusCode int, message string) *JSONResponseBuilder {
	return NewJSONResponse().Status(statusCode).Body(errorBody{Error: message})
}

func BadRequestError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusBadRequest, message)
}

func NotFoundError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusNotFound, message)
}

func InternalServerError(message string) *JSONResponseBuilder {
	return ErrorResponse(http.StatusInternalServerError, message)
}

// ErrorFor maps a service error to its response:
// validation 422, bad request 400, not found 404, partial allocation 500
// with the created and missing ids, everything else 500.
func ErrorFor(err error) *JSONResponseBuilder {
	var (
		verr    *core.ValidationError
		partial *core.PartialAllocationError
		bad     *badRequestError
	)
	switch {
	case errors.As(err, &bad):
		return BadRequestError(bad.Error())
	case errors.As(err, &partial):
		return NewJSONResponse().
			Status(http.StatusInternalServerError).
			Body(errorBody{
				Error:              "allocation partially persisted",
				CreatedIDs:         partial.Created,
				MissingPropertyIDs: partial.Missing,
			})
	case errors.As(err, &verr):
		return NewJSONResponse().
			Status(http.StatusUnprocessableEntity).
			Body(errorBody{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, core.ErrNotFound):
		return NotFoundError(err.Error())
	default:
		return InternalServerError("internal error")
	}
}

// writeServiceError logs err with the request logger and writes the mapped
// response. Internal details never reach the client.
func writeServiceError(w http.ResponseWriter, r *http.Request, operation string, err error) {
	resp := ErrorFor(err)
	logger := log.FromContext(r.Context())
	errType := errorType(err)
	switch resp.statusCode {
	case http.StatusInternalServerError:
		log.NewStructuredLogger(logger).LogError(r.Context(), "Request failed", err, log.ComponentHTTP, operation,
			log.NewFields().WithHTTPRequest(r.Method, r.URL.Path, "", "").WithErrorType(errType))
	default:
		logger.DebugContext(r.Context(), "Request rejected",
			log.FieldOperation, operation,
			log.FieldError, err.Error(),
			log.FieldErrorType, errType)
	}
	resp.Write(w)
}

func errorType(err error) string {
	var (
		partial *core.PartialAllocationError
		bad     *badRequestError
	)
	switch {
	case errors.As(err, &partial):
		return log.ErrorTypePartial
	case errors.As(err, &bad), core.IsValidation(err):
		return log.ErrorTypeValidation
	case errors.Is(err, core.ErrNotFound):
		return log.ErrorTypeNotFound
	default:
		return log.ErrorTypeInternal
	}
}
