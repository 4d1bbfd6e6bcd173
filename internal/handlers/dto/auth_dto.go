package dto

import (
	"github.com/tsmfield/os-backend/internal/domain/entities"
)

// RegisterRequest representa a requisição para registrar um usuário.
// "email" é o identificador de login (handle livre, não precisa ser um
// endereço de email).
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,min=2,max=254"`
	Password string `json:"password" binding:"required,min=4,max=72"`
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Role     string `json:"role" binding:"omitempty,oneof=ADMIN USER"`
}

// LoginRequest representa a requisição de login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// TokenResponse é a resposta de autenticação bem sucedida
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	User        UserResponse `json:"user"`
}

// ToTokenResponse monta a resposta de autenticação
func ToTokenResponse(user *entities.User, token string) TokenResponse {
	return TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User:        ToUserResponse(user),
	}
}
