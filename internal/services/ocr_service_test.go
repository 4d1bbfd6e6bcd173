package services_test

import (
	"bytes"
	"context"
	"image"
	"image/png"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/services"
)

// encodePNG gera uma imagem mínima válida para os testes
func encodePNG() []byte {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	var buf bytes.Buffer
	Expect(png.Encode(&buf, img)).To(Succeed())
	return buf.Bytes()
}

var _ = Describe("OCRService", func() {
	var (
		ctx     context.Context
		vision  *fakeVisionClient
		service *services.OCRService
	)

	BeforeEach(func() {
		ctx = context.Background()
		vision = &fakeVisionClient{}
		service = services.NewOCRService(vision, &fakeLogger{})
	})

	It("rejeita payload que não decodifica como imagem, sem chamar o serviço externo", func() {
		_, err := service.Process(ctx, []byte("definitivamente não é uma imagem"))

		Expect(err).To(MatchError(errors.ErrInvalidImage))
		Expect(vision.called).To(BeFalse())
	})

	It("estrutura a resposta JSON do modelo", func() {
		vision.response = `{"numero_chamado": "CH-1001", "cliente": "ACME"}`

		result, err := service.Process(ctx, encodePNG())

		Expect(err).NotTo(HaveOccurred())
		Expect(result.ExtractedText).To(Equal(vision.response))
		Expect(result.StructuredData).To(HaveKeyWithValue("numero_chamado", "CH-1001"))
		Expect(result.StructuredData).To(HaveKeyWithValue("cliente", "ACME"))
	})

	It("tolera cercas de markdown em volta do JSON", func() {
		vision.response = "```json\n{\"numero_chamado\": \"CH-7\"}\n```"

		result, err := service.Process(ctx, encodePNG())

		Expect(err).NotTo(HaveOccurred())
		Expect(result.StructuredData).To(HaveKeyWithValue("numero_chamado", "CH-7"))
	})

	It("degrada para raw_ocr quando a resposta não é JSON", func() {
		vision.response = "texto corrido sem estrutura nenhuma"

		result, err := service.Process(ctx, encodePNG())

		Expect(err).NotTo(HaveOccurred())
		Expect(result.ExtractedText).To(Equal(vision.response))
		Expect(result.StructuredData).To(HaveKeyWithValue("raw_ocr", vision.response))
		Expect(result.StructuredData).To(HaveKeyWithValue("parse_error", true))
	})

	It("propaga a falha da capacidade externa", func() {
		vision.err = errors.ErrVisionUnavailable

		_, err := service.Process(ctx, encodePNG())
		Expect(err).To(MatchError(errors.ErrVisionUnavailable))
	})
})
