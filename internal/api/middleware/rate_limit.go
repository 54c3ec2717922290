package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	appErrors "github.com/emberwake/merch-cart/internal/errors"
	"github.com/emberwake/merch-cart/internal/utils/response"
)

type RateLimiter interface {
	Allow(ctx context.Context, session string) (allowed bool, remaining int, retryAfter int, err error)
}

// RateLimit throttles cart mutations per session. A limiter failure lets the
// request through.
func RateLimit(limiter RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

			logger := LoggerFromContext(r.Context())

			session, ok := SessionFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			allowed, remaining, retryAfter, err := limiter.Allow(r.Context(), session)
			if err != nil {
				logger.Error("Rate limit check failed, allowing request", slog.Any("error", err))
				next.ServeHTTP(w, r)
				return
			}

			if !allowed {
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				response.Error(w, appErrors.TooManyRequestsError("Too many cart updates. Please slow down."))
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			next.ServeHTTP(w, r)
		})
	}
}
