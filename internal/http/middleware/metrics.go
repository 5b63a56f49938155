package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/regutech/plataforma/internal/observability"
)

// Metrics registra contador y duración por petición.
func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()

		next.ServeHTTP(ww, r)

		observability.RequestsTotal.WithLabelValues(r.Method, strconv.Itoa(ww.Status())).Inc()
		observability.RequestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
	})
}
