package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "booking:mgmt_token:"

// Store хранит management-токены гостей в Redis
// Токен живет независимо от бронирования: Redis сам удаляет ключ по TTL
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает новое хранилище токенов
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Register привязывает токен бронирования к booking_id
// Токен генерируется при создании бронирования и хранится в его строке,
// Redis держит обратный индекс token -> booking_id с TTL
func (s *Store) Register(ctx context.Context, token string, bookingID int64) error {
	err := s.client.Set(ctx, keyPrefix+token, bookingID, s.ttl).Err()
	if err != nil {
		return fmt.Errorf("%w: Register - set token: %v", ErrRedis, err)
	}
	return nil
}

// Resolve возвращает booking_id по токену
func (s *Store) Resolve(ctx context.Context, token string) (int64, error) {
	value, err := s.client.Get(ctx, keyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrTokenNotFound
		}
		return 0, fmt.Errorf("%w: Resolve - get token: %v", ErrRedis, err)
	}

	bookingID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: Resolve - parse booking id: %v", ErrRedis, err)
	}

	return bookingID, nil
}

// Revoke досрочно отзывает токен
// Отсутствие ключа не ошибка: токен мог истечь сам
func (s *Store) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("%w: Revoke - delete token: %v", ErrRedis, err)
	}
	return nil
}
