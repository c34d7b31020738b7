package ports

import (
	"log/slog"
	"net/http"

	"github.com/Amund211/brawltools/internal/logging"
	"github.com/Amund211/brawltools/internal/ratelimiting"
)

type Middleware = func(http.HandlerFunc) http.HandlerFunc

func NewRateLimitMiddleware(rateLimiter ratelimiting.RequestRateLimiter, onLimitExceeded http.HandlerFunc) Middleware {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if !rateLimiter.Consume(r) {
				onLimitExceeded(w, r)
				return
			}

			next(w, r)
		}
	}
}

func ComposeMiddlewares(middlewares ...Middleware) Middleware {
	if len(middlewares) == 1 {
		return middlewares[0]
	}
	first := middlewares[0]
	rest := ComposeMiddlewares(middlewares[1:]...)
	return func(h http.HandlerFunc) http.HandlerFunc {
		return first(rest(h))
	}
}

func makeOnLimitExceeded(rateLimiter ratelimiting.RequestRateLimiter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logging.FromContext(ctx).WarnContext(ctx, "Rate limit exceeded", "key", rateLimiter.KeyFor(r))
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Cause: "rate limit exceeded"})
	}
}

// BuildEndpointMiddleware is the middleware stack shared by all the api endpoints
//
// Metrics, logging and sentry run first so rejected requests are still observed.
func BuildEndpointMiddleware(
	endpointName string,
	rootLogger *slog.Logger,
	sentryMiddleware Middleware,
	allowedOrigins *DomainSuffixes,
	ipRateLimiter ratelimiting.RequestRateLimiter,
	userIDRateLimiter ratelimiting.RequestRateLimiter,
) Middleware {
	return ComposeMiddlewares(
		buildMetricsMiddleware(endpointName),
		logging.NewRequestLoggerMiddleware(rootLogger),
		sentryMiddleware,
		BuildCORSMiddleware(allowedOrigins),
		NewRateLimitMiddleware(ipRateLimiter, makeOnLimitExceeded(ipRateLimiter)),
		NewRateLimitMiddleware(userIDRateLimiter, makeOnLimitExceeded(userIDRateLimiter)),
	)
}

// NewIPRateLimiter returns a per ip rate limiter and a function to stop it
func NewIPRateLimiter() (ratelimiting.RequestRateLimiter, func()) {
	ipLimiter, stop := ratelimiting.NewTokenBucketRateLimiter(
		ratelimiting.RefillPerSecond(4),
		ratelimiting.BurstSize(240),
	)
	return ratelimiting.NewRequestBasedRateLimiter(ipLimiter, ratelimiting.IPKeyFunc), stop
}

// NewUserIDRateLimiter returns a rate limiter keyed on the X-User-Id header and a function to stop it
//
// Requests without a user id share one bucket.
func NewUserIDRateLimiter() (ratelimiting.RequestRateLimiter, func()) {
	userIDLimiter, stop := ratelimiting.NewTokenBucketRateLimiter(
		ratelimiting.RefillPerSecond(2),
		ratelimiting.BurstSize(120),
	)
	// NOTE: Rate limiting based on user controlled value
	return ratelimiting.NewRequestBasedRateLimiter(userIDLimiter, ratelimiting.UserIDKeyFunc), stop
}
