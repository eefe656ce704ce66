package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
)

// JobAuth проверяет shared secret внешнего планировщика в заголовке X-Job-Token
// Внутренние job-эндпоинты недоступны без него
func JobAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get("X-Job-Token")
			if secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				handlers.RespondForbidden(w, "доступ запрещен")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
