package middleware

import (
	"fmt"
	"net/http"
	"sync"

	"bms/config"
	"bms/infras/otel"
	"bms/shared/cache"

	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

const (
	otelHTTPScopeName = "http"
)

type AppMiddleware interface {
	Tracing(next http.Handler) http.Handler
	RateLimit() func(http.Handler) http.Handler
	Throttle() func(http.Handler) http.Handler
}

type appMiddleware struct {
	otel   otel.Otel
	config *config.Config
	cache  cache.RedisCache

	throttleOnce sync.Once
	throttle     *throttle
}

func NewAppMiddleware(otel otel.Otel, config *config.Config, cache cache.RedisCache) AppMiddleware {
	return &appMiddleware{
		otel:   otel,
		config: config,
		cache:  cache,
	}
}

// Tracing opens one span per request and records the matched route and response status.
func (a *appMiddleware) Tracing(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := a.otel.NewScope(request.Context(), otelHTTPScopeName, fmt.Sprintf("%s %s", request.Method, request.URL.Path))
		defer scope.End()

		wrapped := chiMiddleware.NewWrapResponseWriter(writer, request.ProtoMajor)

		next.ServeHTTP(wrapped, request.WithContext(ctx))

		scope.SetAttributes(map[string]any{
			"app.name":         a.config.App.Name,
			"http.path":        request.URL.Path,
			"http.route":       routePattern(request),
			"http.method":      request.Method,
			"http.user_agent":  a.getUA(request),
			"http.host":        request.Host,
			"http.source":      a.getClientIP(request),
			"http.status_code": wrapped.Status(),
		})

		if wrapped.Status() >= http.StatusInternalServerError {
			scope.TraceError(fmt.Errorf("%s %s responded %d", request.Method, request.URL.Path, wrapped.Status()))
		}
	})
}
