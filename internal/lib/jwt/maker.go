// Package jwt реализует выпуск и проверку сессионных JWT-токенов.
//
// Токен самодостаточен: подпись HS256 и встроенный срок действия проверяются
// без обращения к хранилищу, серверной таблицы сессий нет.
package jwt

import (
	"time"
)

// Maker описывает стратегию выпуска и проверки сессионных токенов.
type Maker interface {
	// GenerateToken выпускает токен с uid пользователя и его email.
	GenerateToken(userUID, email string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl реализует Maker на секретном ключе и времени жизни токена.
type MakerImpl struct {
	secretKey string        // Секретный ключ для подписи токенов
	tokenTTL  time.Duration // Время жизни токена
}

// NewJWTMaker создаёт новый MakerImpl на основе секретного ключа и TTL.
func NewJWTMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
