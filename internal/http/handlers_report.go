package http

import (
	"net/http"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
)

// Missing ?month= on the month-scoped reports means the current month.

func (s *Server) handleMonthlyReport(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthQuery(r, s.now())
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	view, err := s.reports.MonthlySummary(r.Context(), month)
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(view).Write(w)
}

func (s *Server) handleIncomeByMonth(w http.ResponseWriter, r *http.Request) {
	series, err := s.reports.IncomeByMonth(r.Context())
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(series).Write(w)
}

func (s *Server) handleExpensesByMonth(w http.ResponseWriter, r *http.Request) {
	series, err := s.reports.ExpensesByMonth(r.Context())
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(series).Write(w)
}

func (s *Server) handleEnergyComparison(w http.ResponseWriter, r *http.Request) {
	series, err := s.reports.EnergyComparison(r.Context())
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(series).Write(w)
}

func (s *Server) handleIncomeByProperty(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthQuery(r, s.now())
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	series, err := s.reports.IncomeByProperty(r.Context(), month)
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(series).Write(w)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	month, err := parseMonthQuery(r, s.now())
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	view, err := s.reports.Dashboard(r.Context(), month)
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(view).Write(w)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	scope, err := parseScopeQuery(r)
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	view, err := s.reports.Categories(r.Context(), scope)
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(view).Write(w)
}

func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	months, err := s.reports.Months(r.Context())
	if err != nil {
		writeServiceError(w, r, log.OpRead, err)
		return
	}
	NewJSONResponse().Body(months).Write(w)
}
