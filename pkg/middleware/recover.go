package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// Recover turns handler panics into 500 responses instead of dropped
// connections.
func Recover(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("PANIC recovered",
						zap.Any("error", err),
						zap.String("path", r.URL.Path),
						zap.String("method", r.Method),
						zap.Stack("stack"),
					)

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					w.Write([]byte(`{"status":false,"message":"internal server error"}`))
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
