// Package server exposes the quote wizard, the catalog and the collaborator
// endpoints over HTTP. Each request loads the visitor's wizard from the
// session store, applies one action and saves it back.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"winhouse-quote/internal/catalog"
	"winhouse-quote/internal/common/errors"
	"winhouse-quote/internal/common/logger"
	"winhouse-quote/internal/common/observability"
	emailgenerate "winhouse-quote/internal/handlers/ai/email-generate"
	emailnotify "winhouse-quote/internal/handlers/communication/email-notify"
	quotedocument "winhouse-quote/internal/handlers/document/quote-document"
	eventrelay "winhouse-quote/internal/handlers/relay/event-relay"
	"winhouse-quote/internal/leadcapture"
	"winhouse-quote/internal/pricing"
	"winhouse-quote/internal/quote"
	"winhouse-quote/internal/session"
)

// Options wires the server. Catalog, Calculator, Dispatcher and
// QuoteNumbers fall back to defaults; Sessions is required. Collaborator
// routes are only registered for the handlers that are set.
type Options struct {
	Logger        logger.Logger
	Catalog       *catalog.Catalog
	Calculator    *pricing.Calculator
	Sessions      session.Store
	Dispatcher    *leadcapture.Dispatcher
	Observability *observability.Observability

	Relay     *eventrelay.Handler
	Notify    *emailnotify.Handler
	Emails    *emailgenerate.Handler
	Documents *quotedocument.Handler

	QuoteNumbers func() string
	Now          func() time.Time
}

type Server struct {
	logger       logger.Logger
	catalog      *catalog.Catalog
	calculator   *pricing.Calculator
	sessions     session.Store
	dispatcher   *leadcapture.Dispatcher
	obs          *observability.Observability
	relay        *eventrelay.Handler
	notify       *emailnotify.Handler
	emails       *emailgenerate.Handler
	documents    *quotedocument.Handler
	quoteNumbers func() string
	now          func() time.Time
	errors       *errors.ErrorHandler
	mux          *http.ServeMux
}

func New(opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	log = log.WithFields(map[string]interface{}{"component": "server"})

	s := &Server{
		logger:       log,
		catalog:      opts.Catalog,
		calculator:   opts.Calculator,
		sessions:     opts.Sessions,
		dispatcher:   opts.Dispatcher,
		obs:          opts.Observability,
		relay:        opts.Relay,
		notify:       opts.Notify,
		emails:       opts.Emails,
		documents:    opts.Documents,
		quoteNumbers: opts.QuoteNumbers,
		now:          opts.Now,
		errors:       errors.NewErrorHandler(log),
		mux:          http.NewServeMux(),
	}
	if s.catalog == nil {
		s.catalog = catalog.Default()
	}
	if s.calculator == nil {
		s.calculator = pricing.Default()
	}
	if s.dispatcher == nil {
		s.dispatcher = leadcapture.NewDispatcher(leadcapture.Dependencies{Logger: log}, 0)
	}
	if s.quoteNumbers == nil {
		s.quoteNumbers = quote.NewGenerator().Number
	}
	if s.now == nil {
		s.now = time.Now
	}

	s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.handle("GET /healthz", http.HandlerFunc(s.handleHealth))
	s.mux.Handle("GET /metrics", promhttp.Handler())

	s.handle("GET /api/catalog/industries", http.HandlerFunc(s.handleIndustries))
	s.handle("GET /api/catalog/budgets", http.HandlerFunc(s.handleBudgets))
	s.handle("GET /api/catalog/modules", http.HandlerFunc(s.handleModules))
	s.handle("GET /api/catalog/styles", http.HandlerFunc(s.handleStyles))

	s.handle("POST /api/sessions", http.HandlerFunc(s.handleCreateSession))
	s.handle("GET /api/sessions/{id}", http.HandlerFunc(s.handleGetSession))
	s.handle("POST /api/sessions/{id}/next", s.mutate(s.nextStep))
	s.handle("POST /api/sessions/{id}/prev", s.mutate(s.prevStep))
	s.handle("POST /api/sessions/{id}/step", s.mutate(s.jumpToStep))
	s.handle("POST /api/sessions/{id}/reset", s.mutate(s.reset))
	s.handle("PUT /api/sessions/{id}/industry", s.mutate(s.selectIndustry))
	s.handle("PUT /api/sessions/{id}/budget", s.mutate(s.selectBudget))
	s.handle("PUT /api/sessions/{id}/style", s.mutate(s.selectStyle))
	s.handle("POST /api/sessions/{id}/modules", s.mutate(s.addModule))
	s.handle("DELETE /api/sessions/{id}/modules/{moduleId}", s.mutate(s.removeModule))
	s.handle("DELETE /api/sessions/{id}/modules", s.mutate(s.clearModules))
	s.handle("POST /api/sessions/{id}/lead", http.HandlerFunc(s.handleLead))
	s.handle("GET /api/sessions/{id}/quote", http.HandlerFunc(s.handleQuote))
	if s.documents != nil {
		s.handle("GET /api/sessions/{id}/quote/document", http.HandlerFunc(s.handleQuoteDocument))
		s.handle("/api/pdf", s.documents)
	}
	if s.emails != nil {
		s.handle("GET /api/sessions/{id}/quote/emails", http.HandlerFunc(s.handleQuoteEmails))
		s.handle("/api/ai/generate", s.emails)
	}
	if s.relay != nil {
		s.handle("/api/webhook", s.relay)
	}
	if s.notify != nil {
		s.handle("/api/email", s.notify)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
		"time":   s.now().Format(time.RFC3339),
	})
}
