package middleware

import (
	"net/http"
	"runtime/debug"

	"animal-registry/internal/platform/logger"
	"animal-registry/internal/platform/respond"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover reemplaza a chimw.Recoverer: registra el panic con nuestro logger
// (con request_id) y responde 500 en el mismo formato JSON que el resto.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic recovered", map[string]any{
					"panic":      rec,
					"request_id": chimw.GetReqID(r.Context()),
					"path":       r.URL.Path,
					"stack":      string(debug.Stack()),
				})
				respond.Detail(w, http.StatusInternalServerError, "internal error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
