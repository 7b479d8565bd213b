// Package api exposes the lending service over JSON/HTTP to the dashboard UI.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/ShivamAgarwal-code/Talent-Cred/internal/domain/model"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/metrics"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/passport"
	"github.com/ShivamAgarwal-code/Talent-Cred/internal/service"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const maxRequestBodyBytes = 1 << 20 // 1 MB

// LendingService is the surface of the lending core the API depends on.
// Tests substitute a mock.
type LendingService interface {
	CreateOrGetProfile(ctx context.Context, input service.ProfileInput) (*model.PassportProfile, *model.CreditLine, bool, error)
	GetBorrowerByWallet(ctx context.Context, wallet string) (*model.Borrower, error)
	SubmitApplication(ctx context.Context, input service.SubmitInput) (*model.LoanApplication, error)
	GetApplication(ctx context.Context, id uuid.UUID) (*model.LoanApplication, error)
	ListReviewQueue(ctx context.Context) ([]model.ReviewItem, error)
	Decide(ctx context.Context, id uuid.UUID, d service.Decision) (*service.DecisionResult, error)
	Repay(ctx context.Context, loanID uuid.UUID, amount int64) (*model.Loan, error)
	Allowance(score int) int64
}

// PassportFetcher resolves a wallet's reputation snapshot from the upstream
// passport API.
type PassportFetcher interface {
	GetByWallet(ctx context.Context, wallet string) (*passport.Passport, error)
}

// HealthChecker reports readiness of a dependency.
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// Server serves the lending HTTP API.
type Server struct {
	svc       LendingService
	passports PassportFetcher
	health    HealthChecker
	limiter   *RateLimitMiddleware
	logger    *slog.Logger
}

// ServerOption configures optional dependencies on the server.
type ServerOption func(*Server)

// WithPassportFetcher lets POST /profiles resolve reputation data server-side
// instead of trusting the snapshot in the request body.
func WithPassportFetcher(p PassportFetcher) ServerOption {
	return func(s *Server) { s.passports = p }
}

// WithHealthChecker wires a dependency ping into /healthz.
func WithHealthChecker(h HealthChecker) ServerOption {
	return func(s *Server) { s.health = h }
}

// WithRateLimiter applies per-IP rate limiting to mutating routes.
func WithRateLimiter(rl *RateLimitMiddleware) ServerOption {
	return func(s *Server) { s.limiter = rl }
}

func NewServer(svc LendingService, logger *slog.Logger, opts ...ServerOption) *Server {
	s := &Server{
		svc:    svc,
		logger: logger.With("component", "api"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Handler returns the HTTP handler for the lending API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("POST /api/v1/profiles", s.instrument("create_profile", s.handleCreateProfile))
	mux.Handle("GET /api/v1/profiles/{wallet}", s.instrument("get_borrower", s.handleGetBorrower))
	mux.Handle("GET /api/v1/passports/{wallet}", s.instrument("get_passport", s.handleGetPassport))
	mux.Handle("POST /api/v1/loan-applications", s.instrument("submit_application", s.handleSubmitApplication))
	mux.Handle("GET /api/v1/loan-applications", s.instrument("list_applications", s.handleListApplications))
	mux.Handle("GET /api/v1/loan-applications/{id}", s.instrument("get_application", s.handleGetApplication))
	mux.Handle("PATCH /api/v1/loan-applications/{id}", s.instrument("decide_application", s.handleDecideApplication))
	mux.Handle("POST /api/v1/loans/{id}/repayments", s.instrument("repay_loan", s.handleRepayLoan))
	mux.Handle("GET /api/v1/allowance", s.instrument("get_allowance", s.handleGetAllowance))

	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.Handler())

	if s.limiter != nil {
		return s.limiter.Wrap(mux)
	}
	return mux
}

// instrument records request duration per route.
func (s *Server) instrument(route string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		h(rec, r)
		metrics.HTTPRequestDuration.
			WithLabelValues(route, strconv.Itoa(rec.status/100*100)).
			Observe(time.Since(start).Seconds())
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.health.PingContext(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded", "error": err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
