package ports

import "context"

// VisionClient abstrai a capacidade externa de visão/OCR:
// extract(image) -> texto livre. A estruturação do resultado em campos
// da ordem de serviço é responsabilidade do serviço de OCR, não do
// cliente.
type VisionClient interface {
	ExtractText(ctx context.Context, imageBase64, mimeType string) (string, error)
}
