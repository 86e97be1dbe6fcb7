package server

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/osse101/SpinHall_Go/docs"
	"github.com/osse101/SpinHall_Go/internal/auth"
	"github.com/osse101/SpinHall_Go/internal/database"
	"github.com/osse101/SpinHall_Go/internal/handler"
	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/metrics"
	"github.com/osse101/SpinHall_Go/internal/promotion"
	"github.com/osse101/SpinHall_Go/internal/ratelimit"
	"github.com/osse101/SpinHall_Go/internal/realtime"
	"github.com/osse101/SpinHall_Go/internal/session"
	"github.com/osse101/SpinHall_Go/internal/wallet"
)

// Dependencies are the services the HTTP surface is built from
type Dependencies struct {
	DBPool           database.Pool
	Sessions         *session.Manager
	Wallet           wallet.Service
	Auth             auth.Service
	Promotions       promotion.Service
	Hub              *realtime.Hub
	LoginLimiter     *ratelimit.ProgressiveLimiter
	WithdrawLimiter  *ratelimit.FixedLimiter
	TrustedProxies   []string
	WSAllowedOrigins []string
}

type Server struct {
	httpServer *http.Server
}

// NewServer creates a new Server instance
func NewServer(port int, deps Dependencies) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           NewRouter(deps),
			ReadHeaderTimeout: ReadHeaderTimeout,
		},
	}
}

// NewRouter builds the chi router with middleware and all routes
func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	if deps.LoginLimiter == nil {
		deps.LoginLimiter = ratelimit.NewProgressiveLimiter()
	}
	if deps.WithdrawLimiter == nil {
		deps.WithdrawLimiter = ratelimit.NewWithdrawLimiter()
	}

	// Outermost first
	r.Use(SecurityHeadersMiddleware())
	r.Use(FloodGuardMiddleware(deps.TrustedProxies, NewFloodDetector()))
	r.Use(RequestSizeLimitMiddleware(MaxRequestBodyBytes))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)
	r.Use(recoverMiddleware)
	r.Use(deps.Sessions.Middleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(deps.DBPool))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	upgrader := realtime.NewUpgrader(deps.WSAllowedOrigins)
	r.Get("/ws", realtime.WSHandler(deps.Hub, upgrader))

	r.Route("/api", func(r chi.Router) {
		r.Get("/events", realtime.SSEHandler(deps.Hub))

		r.Get("/balance", handler.HandleGetBalance(deps.Wallet))
		r.Post("/balance", handler.HandlePostBalance(deps.Wallet))
		r.Get("/transactions", handler.HandleGetTransactions(deps.Wallet))
		r.With(ratelimit.WithdrawMiddleware(deps.WithdrawLimiter)).
			Post("/withdraw", handler.HandleWithdraw(deps.Wallet))

		r.Route("/admin", func(r chi.Router) {
			r.With(ratelimit.LoginMiddleware(deps.LoginLimiter)).
				Post("/login", handler.HandleLogin(deps.Auth, deps.Sessions, deps.LoginLimiter))
			r.Post("/logout", handler.HandleLogout(deps.Sessions))
			r.Get("/me", handler.HandleMe(deps.Auth))
		})

		r.Route("/promotions", func(r chi.Router) {
			r.Get("/", handler.HandleListPromotions(deps.Promotions))
			r.Get("/{id}/availability", handler.HandlePromotionAvailability(deps.Promotions))
		})
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

// Flush keeps SSE streams working through the wrapper
func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Hijack keeps WebSocket upgrades working through the wrapper
func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	rw.statusCode = http.StatusSwitchingProtocols
	rw.written = true
	return h.Hijack()
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		for _, p := range QuietPaths {
			if strings.HasPrefix(r.URL.Path, p) {
				next.ServeHTTP(w, r)
				return
			}
		}

		requestID := r.Header.Get(HeaderRequestID)
		if requestID == "" {
			requestID = logger.GenerateRequestID()
		}
		w.Header().Set(HeaderRequestID, requestID)

		ctx := logger.WithRequestID(r.Context(), requestID)
		r = r.WithContext(ctx)
		log := logger.FromContext(ctx)

		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAuthorization) || strings.EqualFold(k, HeaderCookie) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds())
	})
}

// recoverMiddleware turns handler panics into 500s
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.FromContext(r.Context()).Error(LogMsgPanicRecovered,
					"panic", rec,
					"stack", string(debug.Stack()))
				http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
