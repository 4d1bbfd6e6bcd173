package auth

import (
	stderrors "errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/domain/ports"
)

// Claims é o payload do token de sessão: apenas o subject e a expiração.
// Role e nome não entram no token; a identidade é resolvida de novo a
// cada requisição, então um usuário deletado perde acesso imediatamente.
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// JWTManager implementa ports.TokenManager com HS256
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager cria um JWTManager. O secret é injetado na construção,
// não lido de estado global.
func NewJWTManager(secret string, expirationHours int) ports.TokenManager {
	if expirationHours <= 0 {
		expirationHours = 24
	}
	return &JWTManager{
		secret: []byte(secret),
		expiry: time.Duration(expirationHours) * time.Hour,
	}
}

func (m *JWTManager) Issue(userID string) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

func (m *JWTManager) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.ErrTokenInvalid
		}
		return m.secret, nil
	})
	if err != nil {
		if stderrors.Is(err, jwt.ErrTokenExpired) {
			return "", errors.ErrTokenExpired
		}
		return "", errors.ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == "" {
		return "", errors.ErrTokenInvalid
	}

	return claims.UserID, nil
}
