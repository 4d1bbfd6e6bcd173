package entities

import (
	"errors"
	"time"

	"github.com/tsmfield/os-backend/internal/domain/valueobjects"
)

// User representa um usuário do sistema
type User struct {
	ID           string
	Username     valueobjects.Username
	Name         string
	PasswordHash string
	Role         Role
	CreatedAt    time.Time
}

// IsAdmin verifica se o usuário é admin
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// HasPermission verifica se o usuário tem uma permissão
func (u *User) HasPermission(permission Permission) bool {
	return u.Role.HasPermission(permission)
}

// GetPermissions retorna todas as permissões do usuário
func (u *User) GetPermissions() []string {
	perms := u.Role.GetPermissions()
	result := make([]string, len(perms))
	for i, p := range perms {
		result[i] = string(p)
	}
	return result
}

// Validate valida regras de negócio da entidade User
func (u *User) Validate() error {
	if u.Username.String() == "" {
		return errors.New("username is required")
	}

	if u.Name == "" {
		return errors.New("name is required")
	}

	if len(u.Name) < 2 {
		return errors.New("name must be at least 2 characters")
	}

	if u.Role != RoleAdmin && u.Role != RoleUser {
		return errors.New("invalid role")
	}

	return nil
}
