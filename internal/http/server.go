package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"budgetbuddy/internal/cache"
	"budgetbuddy/internal/core"
	"budgetbuddy/internal/middleware/trace"
	"budgetbuddy/internal/services"
	appweb "budgetbuddy/web"
)

// Server wires the expense and advice services behind the HTTP surface.
// Month-scoped analysis and chart payloads are cached and every write
// invalidates both caches.
type Server struct {
	http.Server
	templates *template.Template
	expenses  *services.ExpenseService
	advice    *services.AdviceService

	rateLimiter *rateLimiter
	secMetrics  *securityMetrics
	tracer      *trace.Middleware

	analysisCache *cache.LRUCache[core.AnalysisResult]
	chartsCache   *cache.LRUCache[[]byte]
	cacheManager  *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes, caches and templates, returning a
// ready-to-run server. writeLimitPerMinute caps POST requests per client
// IP; zero or negative falls back to the built-in default.
func NewServer(addr string, expenses *services.ExpenseService, advice *services.AdviceService, writeLimitPerMinute int) *Server {
	mux := http.NewServeMux()

	s := &Server{
		expenses:      expenses,
		advice:        advice,
		rateLimiter:   newRateLimiter(writeLimitPerMinute),
		secMetrics:    &securityMetrics{},
		tracer:        trace.NewMiddleware(extractClientIP),
		analysisCache: cache.NewLRUCache[core.AnalysisResult](100, 5*time.Minute),
		chartsCache:   cache.NewLRUCache[[]byte](200, 5*time.Minute),
		cacheManager:  cache.NewManager(),
	}
	s.Server = http.Server{
		Addr:    addr,
		Handler: s.tracer.Middleware(mux),
	}

	s.cacheManager.Register(s.analysisCache)
	s.cacheManager.Register(s.chartsCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	// Static assets (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("/", s.withSecurityHeaders(s.handleIndex))
	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/metrics", s.withSecurityHeaders(s.handleMetrics))
	mux.HandleFunc("/expenses", s.withSecurityHeaders(s.handleExpenses))
	mux.HandleFunc("/expenses/import", s.withSecurityHeaders(s.handleImportCSV))
	mux.HandleFunc("/analysis", s.withSecurityHeaders(s.handleAnalysis))
	mux.HandleFunc("/advice", s.withSecurityHeaders(s.handleGenerateAdvice))
	mux.HandleFunc("/advice/recent", s.withSecurityHeaders(s.handleRecentAdvice))
	mux.HandleFunc("/charts/categories", s.withSecurityHeaders(s.handleCategoryChart))
	mux.HandleFunc("/charts/daily", s.withSecurityHeaders(s.handleDailyChart))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// invalidateCaches drops all cached month payloads after a write.
func (s *Server) invalidateCaches() {
	s.analysisCache.Clear()
	s.chartsCache.Clear()
}

// withSecurityHeaders adds security headers and rate limiting. Request IDs
// and lifecycle logging come from the trace middleware wrapping the mux.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		clientIP := extractClientIP(r)

		if detectSuspiciousRequest(r, s.secMetrics) {
			slog.WarnContext(r.Context(), "Suspicious request detected",
				"client_ip", clientIP, "method", r.Method, "path", r.URL.Path)
		}

		// Rate limit writes only; dashboard polling stays unthrottled.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, s.secMetrics) {
			slog.WarnContext(r.Context(), "Rate limit exceeded",
				"client_ip", clientIP, "method", r.Method, "path", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		next(w, r)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	m := s.tracer.GetMetrics()
	NewResponse().JSON(map[string]int64{
		"total_requests":           m.TotalRequests,
		"average_response_time_us": m.AverageResponseTime,
		"rate_limit_hits":          atomic.LoadInt64(&s.secMetrics.rateLimitHits),
		"suspicious_requests":      atomic.LoadInt64(&s.secMetrics.suspiciousRequests),
	}).Write(w)
}
