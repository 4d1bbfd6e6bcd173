package repositories

import (
	"context"

	"github.com/tsmfield/os-backend/internal/domain/entities"
)

// OrderRepository define a interface para persistência de ordens de serviço
type OrderRepository interface {
	Create(ctx context.Context, order *entities.ServiceOrder) error
	FindByID(ctx context.Context, id string) (*entities.ServiceOrder, error)
	// List retorna as ordens filtradas em ordem de criação ascendente
	// (mais antigas primeiro). A priorização URGENTE é aplicada depois,
	// pela camada de serviço.
	List(ctx context.Context, filters OrderFilters) ([]*entities.ServiceOrder, error)
	// Update aplica um patch parcial e retorna a ordem atualizada.
	// updated_at é sempre renovado, mesmo que nenhum campo mude.
	Update(ctx context.Context, id string, patch OrderPatch) (*entities.ServiceOrder, error)
	Delete(ctx context.Context, id string) error
	// CountByStatus retorna a contagem de ordens agrupada pelo valor
	// armazenado de status (vazio/nulo incluído como chave vazia).
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// OrderFilters contém filtros para listagem de ordens de serviço.
// Campos de texto são substring case-insensitive; Status é igualdade
// exata; DateStart/DateEnd delimitam opening_date por comparação
// lexical de strings (o formato da data é responsabilidade do caller).
type OrderFilters struct {
	Status          string
	PAT             string
	TicketNumber    string
	OSNumber        string
	EquipmentSerial string
	Unit            string
	DateStart       string
	DateEnd         string
}

// OrderPatch é a atualização parcial de uma ordem. Campos nil são
// deixados intocados; campos presentes substituem o valor armazenado.
type OrderPatch struct {
	TicketNumber *string
	OSNumber     *string
	PAT          *string
	Status       *string

	OpeningDate        *string
	ResponsibleOpening *string
	ResponsibleTech    *string
	Phone              *string

	ClientName     *string
	Unit           *string
	ServiceAddress *string

	EquipmentType        *string
	EquipmentBrand       *string
	EquipmentModel       *string
	EquipmentSerial      *string
	EquipmentBoardSerial *string

	CallInfo        *string
	Materials       *string
	TechnicalReport *string

	Verifications *[]entities.Verification

	TotalPageCount    *string
	PendingIssues     *string
	NextVisit         *string
	EquipmentReplaced *bool

	Observations *string
}
