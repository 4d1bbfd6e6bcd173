package valueobjects

import (
	"errors"
	"strings"
)

var (
	ErrInvalidUsername = errors.New("invalid username")
)

// Username é um value object para o identificador de login.
// O campo viaja como "email" na API por compatibilidade, mas é um
// handle livre (ex: "gustavo_tsm"), não um endereço RFC 5322.
type Username struct {
	value string
}

// NewUsername cria um novo Username normalizado
func NewUsername(username string) (Username, error) {
	username = strings.TrimSpace(strings.ToLower(username))

	if len(username) < 2 || len(username) > 254 {
		return Username{}, ErrInvalidUsername
	}

	if strings.ContainsAny(username, " \t\n") {
		return Username{}, ErrInvalidUsername
	}

	return Username{value: username}, nil
}

// String retorna o valor do username
func (u Username) String() string {
	return u.value
}
