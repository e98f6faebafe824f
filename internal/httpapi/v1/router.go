// Package v1 wires the HTTP surface of the cost API.
// Handlers stay thin and delegate validation to middleware and data access to the stores.
package v1

import (
	"log/slog"
	"net/http"

	chi "github.com/go-chi/chi/v5"

	"github.com/tinoosan/costapi/internal/service/budget"
)

// BasePath prefixes every API route.
const BasePath = "/api/v1"

// Config holds optional HTTP behaviour.
type Config struct {
	// AllowedOrigins enables CORS for these origins; "*" allows any. Empty disables CORS.
	AllowedOrigins []string
}

// Server wires handlers and middleware using Chi.
type Server struct {
	clients   ClientReader
	providers ProviderReader
	services  ServiceReader
	usages    UsageReader
	invoices  InvoiceReader
	budgets   BudgetReader
	budgetSvc budget.Service
	db        Pinger
	log       *slog.Logger
	rt        *chi.Mux
}

// New constructs the HTTP server with routes and middleware.
// The logger is used by request logging, panic recovery and store failures.
func New(repo Repository, logger *slog.Logger, cfg Config) *Server {
	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(requestLogger(logger))
	r.Use(recoverer(logger))
	r.Use(metricsMiddleware)
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(corsMiddleware(cfg.AllowedOrigins))
	}

	s := &Server{
		clients:   repo,
		providers: repo,
		services:  repo,
		usages:    repo,
		invoices:  repo,
		budgets:   repo,
		budgetSvc: budget.New(repo, repo),
		db:        repo,
		log:       logger,
		rt:        r,
	}
	s.routes()
	return s
}

// Handler exposes the configured http.Handler.
func (s *Server) Handler() http.Handler { return s.rt }

// routes declares the public HTTP API endpoints and attaches any per-route middleware.
func (s *Server) routes() {
	s.rt.NotFound(routeNotFound)
	s.rt.MethodNotAllowed(methodNotAllowed)

	paged := s.rt.With(s.validatePaging())
	dated := s.rt.With(s.validatePaging(), s.validateDateRange())

	// Health
	s.rt.Get(BasePath+"/health", s.health)
	s.rt.Get(BasePath+"/health/db", s.healthDB)
	// Clients and their scoped resources
	paged.Get(BasePath+"/clients", s.listClients)
	s.rt.Get(BasePath+"/clients/{id:[0-9]+}", s.getClient)
	paged.Get(BasePath+"/clients/{id:[0-9]+}/budgets", s.listClientBudgets)
	s.rt.Get(BasePath+"/clients/{id:[0-9]+}/budgets/{bid:[0-9]+}", s.getClientBudget)
	dated.Get(BasePath+"/clients/{id:[0-9]+}/invoices", s.listClientInvoices)
	s.rt.Get(BasePath+"/clients/{id:[0-9]+}/invoices/{iid:[0-9]+}", s.getClientInvoice)
	dated.Get(BasePath+"/clients/{id:[0-9]+}/usages", s.listClientUsages)
	s.rt.Get(BasePath+"/clients/{id:[0-9]+}/usages/{uid:[0-9]+}", s.getClientUsage)
	// Providers
	paged.Get(BasePath+"/providers", s.listProviders)
	s.rt.Get(BasePath+"/providers/{id:[0-9]+}", s.getProvider)
	// Services
	paged.Get(BasePath+"/services", s.listServices)
	s.rt.Get(BasePath+"/services/{id:[0-9]+}", s.getService)
	dated.Get(BasePath+"/services/{id:[0-9]+}/usages", s.listServiceUsages)
	s.rt.Get(BasePath+"/services/{id:[0-9]+}/usages/{uid:[0-9]+}", s.getServiceUsage)
	// Usages
	dated.Get(BasePath+"/usages", s.listUsages)
	s.rt.Get(BasePath+"/usages/{id:[0-9]+}", s.getUsage)
	// Invoices
	dated.Get(BasePath+"/invoices", s.listInvoices)
	s.rt.Get(BasePath+"/invoices/{id:[0-9]+}", s.getInvoice)
	// Budgets
	paged.Get(BasePath+"/budgets", s.listBudgets)
	s.rt.Get(BasePath+"/budgets/{id:[0-9]+}", s.getBudget)
	s.rt.Patch(BasePath+"/budgets/{id:[0-9]+}", s.patchBudget)
	// Prometheus (unversioned)
	s.rt.Handle("/metrics", metricsHandler())
}
