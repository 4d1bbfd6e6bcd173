package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/tsmfield/os-backend/internal/domain/entities"
)

// RegisterCustomValidators registra validações de domínio no engine do
// Gin. "os_status" valida o status da ordem contra o enum conhecido
// (oneof não serve: "EM ROTA" contém espaço).
func RegisterCustomValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}

	return v.RegisterValidation("os_status", func(fl validator.FieldLevel) bool {
		return entities.IsKnownStatus(fl.Field().String())
	})
}

// BindingErrors converte erros do validator em erros de campo para a
// resposta RFC 7807
func BindingErrors(err error) []ValidationError {
	validationErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return nil
	}

	result := make([]ValidationError, 0, len(validationErrs))
	for _, fieldErr := range validationErrs {
		result = append(result, ValidationError{
			Field:   fieldErr.Field(),
			Message: fieldErr.Error(),
			Tag:     fieldErr.Tag(),
		})
	}
	return result
}
