package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

// Options configures the HTTP middleware chain.
type Options struct {
	Logger            *slog.Logger
	Production        bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Stack returns the middleware chain of the HTTP API in order.
func Stack(opts Options) []func(http.Handler) http.Handler {
	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        opts.Production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !opts.Production,
	})

	stack := []func(http.Handler) http.Handler{
		middleware.RealIP,
		middleware.RequestID,
		NewStructuredLogger(opts.Logger),
		middleware.Recoverer,
		secureMiddleware.Handler,
	}
	if opts.RateLimitRequests > 0 {
		stack = append(stack, RateLimit(opts.RateLimitRequests, opts.RateLimitWindow))
	}
	return stack
}

// RateLimit limits each client IP to n requests per window.
func RateLimit(n int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(n, window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		}),
	)
}
