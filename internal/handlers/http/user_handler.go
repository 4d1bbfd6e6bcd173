package http

import (
	errs "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/handlers/dto"
	"github.com/tsmfield/os-backend/internal/handlers/middleware"
	"github.com/tsmfield/os-backend/internal/services"
)

// UserHandler lida com requisições HTTP de gestão de usuários
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler cria um novo UserHandler
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
	}
}

// ListUsers lista todos os usuários (apenas administradores)
// @Summary Listar usuários
// @Tags users
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users [get]
func (h *UserHandler) ListUsers(c *gin.Context) {
	caller := middleware.CurrentUser(c)

	users, err := h.userService.ListUsers(c.Request.Context(), caller)
	if err != nil {
		if errs.Is(err, errors.ErrForbidden) {
			c.JSON(http.StatusForbidden, dto.ForbiddenErrorResponseI18n(c))
			return
		}
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		return
	}

	c.JSON(http.StatusOK, dto.ToUserResponses(users))
}

// DeleteUser remove um usuário (apenas administradores, nunca a si mesmo)
// @Summary Deletar usuário
// @Tags users
// @Produce json
// @Param id path string true "ID do usuário"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /users/{id} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	caller := middleware.CurrentUser(c)
	id := c.Param("id")

	err := h.userService.DeleteUser(c.Request.Context(), caller, id)
	if err != nil {
		switch {
		case errs.Is(err, errors.ErrForbidden):
			c.JSON(http.StatusForbidden, dto.ForbiddenErrorResponseI18n(c))
		case errs.Is(err, errors.ErrSelfDeletion):
			c.JSON(http.StatusBadRequest, dto.BadRequestErrorResponseI18n(c, "error.self_deletion"))
		case errs.Is(err, errors.ErrUserNotFound):
			c.JSON(http.StatusNotFound, dto.NotFoundErrorResponseI18n(c, "User"))
		default:
			c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": dto.T(c, "message.user_deleted")})
}
