// Package http serves the ledger and report API as JSON.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/aggregation"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/core"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/log"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/middleware/ratelimit"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/middleware/security"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/middleware/trace"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/report"
	"github.com/renanrba/hospede-ai-gestao-de-imoveis-emergent/internal/services"
)

// Ledger is the write side, implemented by *services.LedgerService.
type Ledger interface {
	SubmitTransaction(ctx context.Context, in services.TransactionInput) ([]core.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, in services.TransactionInput) (core.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	GetTransaction(ctx context.Context, id string) (core.Transaction, error)
	ListTransactions(ctx context.Context, month string) ([]core.Transaction, error)

	CreateProperty(ctx context.Context, in services.PropertyInput) (core.Property, error)
	UpdateProperty(ctx context.Context, id string, in services.PropertyInput) (core.Property, error)
	GetProperty(ctx context.Context, id string) (core.Property, error)
	ListProperties(ctx context.Context) ([]core.Property, error)
	DeleteProperty(ctx context.Context, id string) (int, error)
}

// Reports is the read side, implemented by *services.ReportService.
type Reports interface {
	MonthlySummary(ctx context.Context, month core.MonthKey) (report.MonthlySummaryView, error)
	IncomeByMonth(ctx context.Context) ([]report.IncomePoint, error)
	ExpensesByMonth(ctx context.Context) ([]report.ExpensePoint, error)
	EnergyComparison(ctx context.Context) ([]report.EnergyPoint, error)
	IncomeByProperty(ctx context.Context, month core.MonthKey) ([]report.PropertyIncomePoint, error)
	Dashboard(ctx context.Context, month core.MonthKey) (report.DashboardView, error)
	Categories(ctx context.Context, scope aggregation.Scope) (report.CategoryBreakdownView, error)
	PropertySummary(ctx context.Context, propertyID string, scope aggregation.Scope) (report.PropertySummaryView, error)
	Months(ctx context.Context) ([]report.MonthOption, error)
}

// Dependencies wires the server. Ledger and Reports are required.
type Dependencies struct {
	Ledger  Ledger
	Reports Reports
	// Ready backs /readyz; nil means always ready.
	Ready       func(ctx context.Context) error
	RateLimit   int
	CORSOrigins []string
	Logger      *log.Logger
	Now         func() time.Time
}

type Server struct {
	http.Server
	ledger   Ledger
	reports  Reports
	ready    func(ctx context.Context) error
	limiter  *ratelimit.Limiter
	detector *security.Detector
	tracer   *trace.Middleware
	logger   *log.Logger
	now      func() time.Time
	started  time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run server.
func NewServer(addr string, deps Dependencies) *Server {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default(log.ComponentHTTP)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}

	s := &Server{
		ledger:   deps.Ledger,
		reports:  deps.Reports,
		ready:    deps.Ready,
		limiter:  ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: deps.RateLimit}),
		detector: security.NewDetector(),
		logger:   logger,
		now:      now,
		started:  now(),
	}
	s.tracer = trace.NewMiddleware(s.detector.ClientIP, logger.WithComponent(log.ComponentTrace))

	mux := http.NewServeMux()
	s.routes(mux)

	s.Server = http.Server{
		Addr:              addr,
		Handler:           s.middleware(mux, deps.CORSOrigins),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) routes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/properties", s.handleListProperties)
	mux.HandleFunc("POST /api/properties", s.handleCreateProperty)
	mux.HandleFunc("GET /api/properties/{id}", s.handleGetProperty)
	mux.HandleFunc("PUT /api/properties/{id}", s.handleUpdateProperty)
	mux.HandleFunc("DELETE /api/properties/{id}", s.handleDeleteProperty)
	mux.HandleFunc("GET /api/properties/{id}/summary", s.handlePropertySummary)

	mux.HandleFunc("GET /api/transactions", s.handleListTransactions)
	mux.HandleFunc("POST /api/transactions", s.handleCreateTransaction)
	mux.HandleFunc("GET /api/transactions/{id}", s.handleGetTransaction)
	mux.HandleFunc("PUT /api/transactions/{id}", s.handleUpdateTransaction)
	mux.HandleFunc("DELETE /api/transactions/{id}", s.handleDeleteTransaction)

	mux.HandleFunc("GET /api/reports/monthly", s.handleMonthlyReport)
	mux.HandleFunc("GET /api/reports/income-by-month", s.handleIncomeByMonth)
	mux.HandleFunc("GET /api/reports/expenses-by-month", s.handleExpensesByMonth)
	mux.HandleFunc("GET /api/reports/energy-comparison", s.handleEnergyComparison)
	mux.HandleFunc("GET /api/reports/income-by-property", s.handleIncomeByProperty)
	mux.HandleFunc("GET /api/reports/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/reports/categories", s.handleCategories)
	mux.HandleFunc("GET /api/reports/months", s.handleMonths)
}

// middleware wraps h, outermost first: tracing, security headers, CORS,
// probe detection, write rate limiting, component logger.
func (s *Server) middleware(h http.Handler, origins []string) http.Handler {
	h = log.ComponentMiddleware(log.ComponentHTTP)(h)
	h = s.limiter.Middleware(s.detector.ClientIP, s.onRateLimit)(h)
	h = s.detect(h)
	h = security.CORS(origins)(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	return s.tracer.Middleware(h)
}

func (s *Server) onRateLimit(w http.ResponseWriter, r *http.Request) {
	log.FromContext(r.Context()).WithComponent(log.ComponentRateLimit).WarnContext(r.Context(), "Rate limit exceeded",
		log.FieldClientIP, s.detector.ClientIP(r),
		log.FieldMethod, r.Method,
		log.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "rate limit exceeded, try again later").Write(w)
}

// detect logs probing requests; they are still served normally.
func (s *Server) detect(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if reason := s.detector.Suspicious(r); reason != "" {
			log.FromContext(r.Context()).WithComponent(log.ComponentSecurity).WarnContext(r.Context(), "Suspicious request",
				"reason", reason,
				log.FieldClientIP, s.detector.ClientIP(r),
				log.FieldMethod, r.Method,
				log.FieldPath, r.URL.Path)
		}
		next.ServeHTTP(w, r)
	})
}

// Shutdown stops background work and drains the HTTP server once.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
