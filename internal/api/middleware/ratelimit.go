package middleware

import (
	"fmt"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	stdlibmiddleware "github.com/ulule/limiter/v3/drivers/middleware/stdlib"
	redisstore "github.com/ulule/limiter/v3/drivers/store/redis"
)

// NewRateLimit создает middleware лимита запросов по IP для публичных роутов
// Формат rate — ulule/limiter, например "60-M" (60 запросов в минуту)
// Состояние лимитера хранится в Redis, так что лимит общий для всех инстансов
func NewRateLimit(client *redis.Client, rate string) (func(http.Handler) http.Handler, error) {
	parsedRate, err := limiter.NewRateFromFormatted(rate)
	if err != nil {
		return nil, fmt.Errorf("middleware: invalid rate %q: %w", rate, err)
	}

	store, err := redisstore.NewStoreWithOptions(client, limiter.StoreOptions{
		Prefix:   "booking:ratelimit",
		MaxRetry: 3,
	})
	if err != nil {
		return nil, fmt.Errorf("middleware: failed to create redis store: %w", err)
	}

	instance := limiter.New(store, parsedRate, limiter.WithTrustForwardHeader(true))
	mw := stdlibmiddleware.NewMiddleware(instance)

	return func(next http.Handler) http.Handler {
		return mw.Handler(next)
	}, nil
}
