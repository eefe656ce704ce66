package tokenstore

import "errors"

var (
	// ErrTokenNotFound возвращается, когда токен истек или не выдавался
	ErrTokenNotFound = errors.New("tokenstore: management token not found or expired")

	// ErrRedis возвращается при ошибке обращения к Redis
	ErrRedis = errors.New("tokenstore: redis operation failed")
)
