package httpapi

import (
	"net/http"

	"github.com/riskibarqy/draft-assistant-api/internal/platform/logging"
)

type RouterOptions struct {
	CORSAllowedOrigins []string
	// Metrics serves /metrics when non-nil.
	Metrics        http.Handler
	RequestMetrics HTTPObserver
}

func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.Metrics)
	registerLeagueRoutes(mux, handler)

	return RequestTracing(RequestLogging(logger, opts.RequestMetrics, CORS(opts.CORSAllowedOrigins, recoverPanic(logger, mux))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "path", r.URL.Path)
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
