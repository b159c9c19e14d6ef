package middleware

import (
	"net"
	"net/http"

	"github.com/careerforge/judge/internal/judge_errors"
	"github.com/careerforge/judge/internal/service/rate_limit_service"
)

// RateLimited gates a handler behind the sliding window limiter, keyed
// by the client's ip. A denied request gets a 429 and never reaches the
// handler, so the execution backend sees none of its cost.
func RateLimited(
	limiter *rate_limit_service.RateLimiter,
	next http.HandlerFunc,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// the limiter logs its own store failures and fails open
		allowed, _ := limiter.Allow(r.Context(), clientKey(r))
		if !allowed {
			http.Error(
				w,
				judge_errors.ErrTooManyRequests.Error(),
				http.StatusTooManyRequests,
			)
			return
		}
		next(w, r)
	}
}

// clientKey extracts the remote ip. chi's RealIP middleware has already
// folded forwarded headers into RemoteAddr at the root router.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
