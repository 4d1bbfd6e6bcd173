package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsmfield/os-backend/internal/domain/entities"
	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/domain/valueobjects"
	"github.com/tsmfield/os-backend/internal/handlers/dto"
	"github.com/tsmfield/os-backend/internal/handlers/middleware"
	"github.com/tsmfield/os-backend/internal/services"
)

// AuthHandler lida com autenticação e registro de usuários
type AuthHandler struct {
	authService *services.AuthService
}

// NewAuthHandler cria um novo AuthHandler
func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register registra um novo usuário (apenas administradores)
// @Summary Registrar usuário
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Dados do usuário"
// @Success 200 {object} dto.TokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.BindingErrors(err)))
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), caller, services.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Role:     entities.Role(req.Role),
	})
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrForbidden):
			c.JSON(http.StatusForbidden, dto.ForbiddenErrorResponseI18n(c))
		case errs.Is(err, errors.ErrEmailAlreadyExists):
			c.JSON(http.StatusBadRequest, dto.BadRequestErrorResponseI18n(c, "error.email_already_exists"))
		case errs.Is(err, valueobjects.ErrInvalidUsername):
			c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, nil))
		default:
			c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		}
		return
	}

	c.JSON(http.StatusOK, dto.ToTokenResponse(user, token))
}

// Login autentica por credenciais e emite um token
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credenciais"
// @Success 200 {object} dto.TokenResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, dto.BindingErrors(err)))
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errs.Is(err, errors.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, dto.UnauthorizedErrorResponseI18n(c, "error.invalid_credentials"))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.ToTokenResponse(user, token))
}

// Me retorna o usuário autenticado
// @Summary Usuário atual
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	c.JSON(http.StatusOK, dto.ToUserResponse(caller))
}
