package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/domain/ports"
	"github.com/tsmfield/os-backend/internal/infrastructure/config"
)

// Client implementa ports.VisionClient contra uma API de visão
// compatível com chat-completions (OpenAI e similares)
type Client struct {
	cfg        config.VisionConfig
	httpClient *http.Client
	logger     ports.Logger
}

// NewClient cria um novo cliente de visão
func NewClient(cfg config.VisionConfig, logger ports.Logger) ports.VisionClient {
	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
		logger: logger,
	}
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string        `json:"role"`
	Content []chatContent `json:"content"`
}

type chatContent struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *imageURL `json:"image_url,omitempty"`
}

type imageURL struct {
	URL string `json:"url"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *Client) ExtractText(ctx context.Context, imageBase64, mimeType string) (string, error) {
	if c.cfg.APIURL == "" || c.cfg.APIKey == "" {
		return "", errors.ErrVisionNotConfigured
	}

	body := chatRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{
				Role: "user",
				Content: []chatContent{
					{Type: "text", Text: extractionPrompt},
					{
						Type: "image_url",
						ImageURL: &imageURL{
							URL: fmt.Sprintf("data:%s;base64,%s", mimeType, imageBase64),
						},
					},
				},
			},
		},
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, bytes.NewBuffer(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrVisionUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Error("vision API returned error",
			"status", resp.StatusCode,
			"body", string(raw),
		)
		return "", fmt.Errorf("%w: status %d", errors.ErrVisionUnavailable, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrVisionUnavailable, err)
	}

	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("%w: empty response", errors.ErrVisionUnavailable)
	}

	return parsed.Choices[0].Message.Content, nil
}

// extractionPrompt instrui o modelo a devolver exatamente os campos da
// ordem de serviço, com null para o que não estiver visível na foto
const extractionPrompt = `You are an intelligent OCR assistant specialized in extracting service order information from images.
Analyze this service order image and extract ALL visible information.
Pay special attention to:
- Números (chamado, O.S., PAT)
- Datas (abertura, próxima visita)
- Nomes (responsáveis, técnico, cliente)
- Equipamento (marca, modelo, números de série da placa e equipamento)
- Endereço completo
- Descrição do problema
- Materiais utilizados

Return the data in a structured JSON format that matches these exact field names:
{
  "ticket_number": "número do chamado",
  "os_number": "número da O.S.",
  "pat": "código PAT se presente",
  "opening_date": "data de abertura (formato: DD/MM/YYYY ou DD/MM)",
  "responsible_opening": "nome do responsável pela abertura",
  "responsible_tech": "nome do técnico responsável",
  "phone": "telefone",
  "client_name": "nome do cliente",
  "unit": "unidade/local",
  "service_address": "endereço completo de atendimento",
  "equipment_serial": "número de série do equipamento (S/N EQUIP)",
  "equipment_board_serial": "número de série da placa (S/N PLACA)",
  "equipment_type": "tipo de equipamento (IMPRESSORA, etc)",
  "equipment_brand": "marca do equipamento",
  "equipment_model": "modelo do equipamento",
  "call_info": "descrição do problema/chamado",
  "materials": "materiais utilizados",
  "technical_report": "laudo técnico",
  "total_page_count": "contador de páginas",
  "observations": "observações gerais"
}
Return ONLY valid JSON. If a field is not found, use null.`
