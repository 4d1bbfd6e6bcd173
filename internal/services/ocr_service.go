package services

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"image"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/domain/ports"
)

// OCRResult é o resultado da extração: o texto bruto devolvido pela
// capacidade de visão e o melhor palpite estruturado por nome de campo
type OCRResult struct {
	ExtractedText  string
	StructuredData map[string]interface{}
}

// OCRService transforma uma foto de chamado em papel num palpite de
// campos para pré-preencher o formulário da ordem de serviço
type OCRService struct {
	vision ports.VisionClient
	logger ports.Logger
}

// NewOCRService cria um novo OCRService
func NewOCRService(vision ports.VisionClient, logger ports.Logger) *OCRService {
	return &OCRService{
		vision: vision,
		logger: logger,
	}
}

// Process valida e extrai os campos de uma imagem de ordem de serviço.
// A validação de imagem é local e acontece antes de qualquer chamada
// externa. Resposta externa que não estrutura em JSON não é erro: o
// resultado degrada para {raw_ocr, parse_error} e o texto bruto segue
// disponível. Apenas a ausência total de resposta da capacidade externa
// falha a operação.
func (s *OCRService) Process(ctx context.Context, data []byte) (*OCRResult, error) {
	mimeType, err := detectImage(data)
	if err != nil {
		return nil, errors.ErrInvalidImage
	}

	encoded := base64.StdEncoding.EncodeToString(data)

	text, err := s.vision.ExtractText(ctx, encoded, mimeType)
	if err != nil {
		return nil, err
	}

	structured, ok := parseStructured(text)
	if !ok {
		s.logger.Warn("could not parse JSON from OCR response")
		structured = map[string]interface{}{
			"raw_ocr":     text,
			"parse_error": true,
		}
	}

	return &OCRResult{
		ExtractedText:  text,
		StructuredData: structured,
	}, nil
}

// detectImage confirma que o payload decodifica como imagem raster e
// retorna o MIME type correspondente
func detectImage(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	return "image/" + format, nil
}

// parseStructured tenta interpretar a resposta do modelo como o objeto
// JSON de campos, tolerando cercas de markdown em volta
func parseStructured(text string) (map[string]interface{}, bool) {
	cleaned := stripFences(text)

	var structured map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &structured); err != nil {
		return nil, false
	}

	return structured, true
}

func stripFences(text string) string {
	cleaned := strings.TrimSpace(text)

	if strings.HasPrefix(cleaned, "```") {
		if idx := strings.Index(cleaned, "\n"); idx != -1 {
			cleaned = cleaned[idx+1:]
		}
	}

	cleaned = strings.TrimSpace(cleaned)
	if strings.HasSuffix(cleaned, "```") {
		if idx := strings.LastIndex(cleaned, "\n"); idx != -1 {
			cleaned = cleaned[:idx]
		}
	}

	return strings.TrimSpace(cleaned)
}
