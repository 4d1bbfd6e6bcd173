package errors

import "errors"

// Business errors
// Nota: Estes são códigos de erro (message IDs para i18n).
// As traduções devem estar em internal/infrastructure/i18n/locales/*.json
var (
	ErrUserNotFound       = errors.New("error.user_not_found")
	ErrEmailAlreadyExists = errors.New("error.email_already_exists")
	ErrInvalidCredentials = errors.New("error.invalid_credentials")
	ErrForbidden          = errors.New("error.forbidden")
	ErrSelfDeletion       = errors.New("error.self_deletion")

	ErrTokenExpired = errors.New("error.token_expired")
	ErrTokenInvalid = errors.New("error.token_invalid")

	ErrOrderNotFound = errors.New("error.order_not_found")

	ErrInvalidImage        = errors.New("error.invalid_image")
	ErrVisionUnavailable   = errors.New("error.vision_unavailable")
	ErrVisionNotConfigured = errors.New("error.vision_not_configured")
)

// ProblemType define tipos de problemas (URIs RFC 7807)
// Nota: O domínio base virá de configuração (API_BASE_URL)
const (
	ProblemTypeValidation   = "/problems/validation-error"
	ProblemTypeNotFound     = "/problems/not-found"
	ProblemTypeUnauthorized = "/problems/unauthorized"
	ProblemTypeForbidden    = "/problems/forbidden"
	ProblemTypeInternal     = "/problems/internal-error"
	ProblemTypeBadRequest   = "/problems/bad-request"
)
