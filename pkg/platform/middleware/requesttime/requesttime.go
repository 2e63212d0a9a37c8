// Package requesttime pins one "now" per HTTP request so every timestamp a
// request produces agrees.
package requesttime

import (
	"net/http"
	"time"

	"certhub/pkg/requestcontext"
)

// Middleware stores the arrival time in the request context unless an earlier
// layer already set one.
func Middleware(next http.Handler) http.Handler {
	return MiddlewareWithClock(time.Now)(next)
}

// MiddlewareWithClock is Middleware with an injectable clock.
func MiddlewareWithClock(clock func() time.Time) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if _, ok := ctx.Value(requestcontext.ContextKeyRequestTime).(time.Time); !ok {
				ctx = requestcontext.WithTime(ctx, clock())
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
