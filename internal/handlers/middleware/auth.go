package middleware

import (
	errs "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tsmfield/os-backend/internal/domain/entities"
	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/infrastructure/i18n"
	"github.com/tsmfield/os-backend/internal/services"
)

// CurrentUserContextKey é a chave do usuário autenticado no contexto Gin
const CurrentUserContextKey = "current_user"

// AuthMiddleware valida o bearer token e resolve o usuário atual
type AuthMiddleware struct {
	authService *services.AuthService
}

// NewAuthMiddleware cria um novo AuthMiddleware
func NewAuthMiddleware(authService *services.AuthService) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// RequireAuth exige um token válido e carrega o usuário no contexto.
// A identidade é resolvida contra o banco a cada requisição: tokens de
// usuários deletados são rejeitados na hora.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearerToken(c)
		if token == "" {
			abortUnauthorized(c, "error.token_missing")
			return
		}

		user, err := m.authService.ResolveToken(c.Request.Context(), token)
		if err != nil {
			detailKey := "error.token_invalid"
			if errs.Is(err, errors.ErrTokenExpired) {
				detailKey = "error.token_expired"
			}
			abortUnauthorized(c, detailKey)
			return
		}

		c.Set(CurrentUserContextKey, user)
		c.Next()
	}
}

// CurrentUser retorna o usuário autenticado do contexto da requisição
func CurrentUser(c *gin.Context) *entities.User {
	value, exists := c.Get(CurrentUserContextKey)
	if !exists {
		return nil
	}

	user, ok := value.(*entities.User)
	if !ok {
		return nil
	}

	return user
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}

	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}

	return strings.TrimSpace(parts[1])
}

// abortUnauthorized responde 401 no formato RFC 7807. O corpo é montado
// aqui mesmo: o pacote dto depende deste pacote (chaves de contexto do
// i18n), então o middleware não pode usar os helpers de lá.
func abortUnauthorized(c *gin.Context, detailKey string) {
	baseURL := c.GetString("base_url")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"type":     baseURL + errors.ProblemTypeUnauthorized,
		"title":    translate(c, "error.unauthorized.title"),
		"status":   http.StatusUnauthorized,
		"detail":   translate(c, detailKey),
		"instance": c.Request.URL.Path,
	})
}

// translate resolve uma chave usando o serviço i18n do contexto,
// devolvendo a própria chave quando o middleware de i18n não rodou
func translate(c *gin.Context, key string) string {
	value, exists := c.Get(I18nServiceContextKey)
	if !exists {
		return key
	}

	service, ok := value.(*i18n.Service)
	if !ok {
		return key
	}

	lang, _ := c.Get(LanguageContextKey)
	langStr, ok := lang.(string)
	if !ok {
		langStr = service.GetDefaultLanguage()
	}

	return service.T(langStr, key)
}
