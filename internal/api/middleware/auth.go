// Package middleware содержит HTTP middleware сервиса
package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/helmline/Charter-BookingService/internal/api/handlers"
)

type contextKey string

const captainIDKey contextKey = "captainID"

// Auth извлекает ID капитана из заголовка X-Captain-ID и кладет его в контекст
// Заголовок проставляется API-гейтвеем после проверки сессии
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captainIDStr := r.Header.Get("X-Captain-ID")
		if captainIDStr == "" {
			handlers.RespondUnauthorized(w, "отсутствует заголовок X-Captain-ID")
			return
		}

		captainID, err := strconv.ParseInt(captainIDStr, 10, 64)
		if err != nil || captainID <= 0 {
			handlers.RespondUnauthorized(w, "некорректный заголовок X-Captain-ID")
			return
		}

		ctx := context.WithValue(r.Context(), captainIDKey, captainID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetCaptainID возвращает ID капитана из контекста запроса
func GetCaptainID(ctx context.Context) (int64, bool) {
	captainID, ok := ctx.Value(captainIDKey).(int64)
	return captainID, ok
}
