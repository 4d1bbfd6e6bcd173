package ports

import "github.com/tsmfield/os-backend/internal/domain/entities"

// ReportExporter renderiza o relatório tabular do backlog de ordens.
// Recebe a lista já priorizada e devolve o arquivo pronto para download.
type ReportExporter interface {
	Export(orders []*entities.ServiceOrder) ([]byte, error)
}
