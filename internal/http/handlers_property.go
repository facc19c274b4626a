package http

import (
	"net/http"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
)

func (s *Server) handleListProperties(w http.ResponseWriter, r *http.Request) {
	props, err := s.ledger.ListProperties(r.Context())
	if err != nil {
		writeServiceError(w, r, log.OpList, err)
		return
	}
	NewJSONResponse().Body(props).Write(w)
}

func (s *Server) handleCreateProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, log.OpCreate, err)
		return
	}
	p, err := s.ledger.CreateProperty(r.Context(), req.input())
	if err != nil {
		writeServiceError(w, r, log.OpCreate, err)
		return
	}
	NewJSONResponse().
		Status(http.StatusCreated).
		Header("Location", "/api/properties/"+p.ID).
		Body(p).
		Write(w)
}

func (s *Server) handleGetProperty(w http.ResponseWriter, r *http.Request) {
	p, err := s.ledger.GetProperty(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(p).Write(w)
}

func (s *Server) handleUpdateProperty(w http.ResponseWriter, r *http.Request) {
	var req propertyRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, log.OpUpdate, err)
		return
	}
	p, err := s.ledger.UpdateProperty(r.Context(), r.PathValue("id"), req.input())
	if err != nil {
		writeServiceError(w, r, log.OpUpdate, err)
		return
	}
	NewJSONResponse().Body(p).Write(w)
}

// handleDeleteProperty cascades to the property's transactions.
func (s *Server) handleDeleteProperty(w http.ResponseWriter, r *http.Request) {
	removed, err := s.ledger.DeleteProperty(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, log.OpDelete, err)
		return
	}
	NewJSONResponse().Body(map[string]int{"deleted_transactions": removed}).Write(w)
}

func (s *Server) handlePropertySummary(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScopeQuery(r)
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	view, err := s.reports.PropertySummary(r.Context(), r.PathValue("id"), scope)
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(view).Write(w)
}
