package http

import (
	"net/http"
	"strings"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
)

// handleListTransactions returns the ledger in insertion order, optionally
// restricted to ?month=YYYY-MM.
func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	month := strings.TrimSpace(r.URL.Query().Get("month"))
	if month != "" {
		if _, err := core.ParseMonthKey(month); err != nil {
			writeServiceError(w, r, log.OpList, badRequest("invalid month %q: expected YYYY-MM", month))
			return
		}
	}
	txs, err := s.ledger.ListTransactions(r.Context(), month)
	if err != nil {
		writeServiceError(w, r, log.OpList, err)
		return
	}
	NewJSONResponse().Body(core.RecordsOf(txs)).Write(w)
}

// handleCreateTransaction submits one income or an expense allocation. The
// response lists every persisted record.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, log.OpCreate, err)
		return
	}
	in, err := req.input()
	if err != nil {
		writeServiceError(w, r, log.OpCreate, err)
		return
	}
	txs, err := s.ledger.SubmitTransaction(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, log.OpAllocate, err)
		return
	}
	NewJSONResponse().
		Status(http.StatusCreated).
		Body(map[string][]core.Record{"transactions": core.RecordsOf(txs)}).
		Write(w)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := s.ledger.GetTransaction(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(core.RecordOf(tx)).Write(w)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, log.OpUpdate, err)
		return
	}
	in, err := req.input()
	if err != nil {
		writeServiceError(w, r, log.OpUpdate, err)
		return
	}
	tx, err := s.ledger.UpdateTransaction(r.Context(), r.PathValue("id"), in)
	if err != nil {
		writeServiceError(w, r, log.OpUpdate, err)
		return
	}
	NewJSONResponse().Body(core.RecordOf(tx)).Write(w)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.DeleteTransaction(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, log.OpDelete, err)
		return
	}
	NewJSONResponse().Status(http.StatusNoContent).Write(w)
}
