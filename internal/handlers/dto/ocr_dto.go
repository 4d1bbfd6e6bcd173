package dto

import "github.com/tsmfield/os-backend/internal/services"

// OCRResponse é o resultado da extração de uma imagem de chamado:
// o texto bruto e o palpite estruturado por nome de campo (valores
// null para o que não estava visível)
type OCRResponse struct {
	ExtractedText  string                 `json:"extracted_text"`
	StructuredData map[string]interface{} `json:"structured_data"`
}

// ToOCRResponse converte o resultado do serviço para a resposta HTTP
func ToOCRResponse(result *services.OCRResult) OCRResponse {
	return OCRResponse{
		ExtractedText:  result.ExtractedText,
		StructuredData: result.StructuredData,
	}
}
