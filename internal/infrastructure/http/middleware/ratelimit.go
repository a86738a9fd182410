package middleware

import (
	"net/http"
	"strconv"

	"github.com/alchemorsel/planner/internal/infrastructure/config"
	"github.com/alchemorsel/planner/internal/infrastructure/http/handlers"
	apperrors "github.com/alchemorsel/planner/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimiter throttles API requests with a shared token bucket
type RateLimiter struct {
	enabled bool
	limiter *rate.Limiter
	logger  *zap.Logger
}

// NewRateLimiter creates a limiter refilling RequestsPerMin tokens per minute
func NewRateLimiter(cfg config.RateLimitConfig, logger *zap.Logger) *RateLimiter {
	burst := cfg.BurstSize
	if burst <= 0 {
		burst = 1
	}

	return &RateLimiter{
		enabled: cfg.Enabled && cfg.RequestsPerMin > 0,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerMin)/60, burst),
		logger:  logger.Named("rate-limit"),
	}
}

// Handler rejects requests with 429 once the bucket is empty
func (l *RateLimiter) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !l.enabled {
			next.ServeHTTP(w, r)
			return
		}

		if !l.limiter.Allow() {
			l.logger.Warn("Rate limit exceeded",
				zap.String("path", r.URL.Path),
				zap.String("remote_addr", r.RemoteAddr),
			)
			w.Header().Set("Retry-After", strconv.Itoa(60))
			handlers.WriteError(w, r, l.logger, apperrors.NewAppError(
				apperrors.CodeTooManyRequests,
				"Rate limit exceeded",
				"",
			))
			return
		}

		next.ServeHTTP(w, r)
	})
}
