package ratelimit

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"

	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/metrics"
	"github.com/osse101/SpinHall_Go/internal/session"
)

// LimitError is the body of a 429 response
type LimitError struct {
	Message       string `json:"message"`
	Code          string `json:"code"`
	NextAttemptIn int    `json:"nextAttemptIn"` // seconds
	Strikes       int    `json:"strikes"`
}

// LimitResponse wraps LimitError as {"error": {...}}
type LimitResponse struct {
	Error LimitError `json:"error"`
}

// LoginMiddleware applies the progressive limiter to anonymous requests.
// Authenticated sessions bypass it.
func LoginMiddleware(l *ProgressiveLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := session.FromContext(r.Context())
			if sess.Authenticated() {
				next.ServeHTTP(w, r)
				return
			}

			d := l.Allow(SessionKey(r))
			if !d.Allowed {
				metrics.RateLimitedTotal.WithLabelValues(metrics.LimiterLogin).Inc()
				writeLimited(w, r, CodeTooManyAttempts, MsgTooManyAttempts, d)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WithdrawMiddleware applies a fixed limiter keyed by user, or by session
// for anonymous callers
func WithdrawMiddleware(l *FixedLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := SessionKey(r)
			if sess := session.FromContext(r.Context()); sess.Authenticated() {
				key = "user:" + sess.UserID
			}

			d := l.Allow(key)
			if !d.Allowed {
				metrics.RateLimitedTotal.WithLabelValues(metrics.LimiterWithdraw).Inc()
				writeLimited(w, r, CodeWithdrawalLimit, MsgWithdrawalLimit, d)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// SessionKey returns the limiter key for the request's session, falling
// back to the remote address
func SessionKey(r *http.Request) string {
	if sess := session.FromContext(r.Context()); sess != nil && sess.ID != "" {
		return "session:" + sess.ID
	}
	logger.FromContext(r.Context()).Debug(LogMsgMissingKey)
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return "addr:" + host
}

func writeLimited(w http.ResponseWriter, r *http.Request, code, msg string, d Decision) {
	seconds := int(math.Ceil(d.NextAttemptIn.Seconds()))

	logger.FromContext(r.Context()).Warn(LogMsgRateLimited,
		"code", code,
		"strikes", d.Strikes,
		"next_attempt_in", seconds)

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(HeaderRetryAfter, strconv.Itoa(seconds))
	w.WriteHeader(http.StatusTooManyRequests)

	body := LimitResponse{Error: LimitError{
		Message:       msg,
		Code:          code,
		NextAttemptIn: seconds,
		Strikes:       d.Strikes,
	}}
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.FromContext(r.Context()).Error(LogMsgEncodeFailed, "error", err)
	}
}
