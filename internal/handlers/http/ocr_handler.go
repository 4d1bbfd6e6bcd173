package http

import (
	errs "errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/handlers/dto"
	"github.com/tsmfield/os-backend/internal/services"
)

// maxImageSize limita o upload a 10 MiB
const maxImageSize = 10 << 20

// OCRHandler lida com o upload de fotos de chamados em papel
type OCRHandler struct {
	ocrService *services.OCRService
}

// NewOCRHandler cria um novo OCRHandler
func NewOCRHandler(ocrService *services.OCRService) *OCRHandler {
	return &OCRHandler{
		ocrService: ocrService,
	}
}

// ProcessImage extrai campos de uma foto de ordem de serviço
// @Summary Extrair campos de uma imagem
// @Tags ocr
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Foto do chamado"
// @Success 200 {object} dto.OCRResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /ocr [post]
func (h *OCRHandler) ProcessImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ValidationErrorResponseI18n(c, nil))
		return
	}

	if fileHeader.Size > maxImageSize {
		c.JSON(http.StatusBadRequest, dto.BadRequestErrorResponseI18n(c, "error.image_too_large"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageSize))
	if err != nil {
		c.JSON(http.StatusInternalServerError, dto.InternalErrorResponseI18n(c))
		return
	}

	result, err := h.ocrService.Process(c.Request.Context(), data)
	if err != nil {
		if errs.Is(err, errors.ErrInvalidImage) {
			c.JSON(http.StatusBadRequest, dto.BadRequestErrorResponseI18n(c, "error.invalid_image"))
			return
		}
		// Falha da capacidade externa: o erro de upstream segue na
		// resposta para diagnóstico do operador
		c.JSON(http.StatusInternalServerError, dto.ExternalServiceErrorResponseI18n(c, err.Error()))
		return
	}

	c.JSON(http.StatusOK, dto.ToOCRResponse(result))
}
