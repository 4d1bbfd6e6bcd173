package services

import (
	"context"

	"github.com/tsmfield/os-backend/internal/domain/entities"
	"github.com/tsmfield/os-backend/internal/domain/errors"
	"github.com/tsmfield/os-backend/internal/domain/ports"
	"github.com/tsmfield/os-backend/internal/domain/repositories"
)

// StatsTotalKey é a chave do total no mapa de estatísticas
const StatsTotalKey = "total"

// OrderService contém a lógica de negócio para ordens de serviço
type OrderService struct {
	orderRepo        repositories.OrderRepository
	exporter         ports.ReportExporter
	logger           ports.Logger
	restrictMutation bool
}

// NewOrderService cria um novo OrderService. restrictMutation liga a
// regra opcional de propriedade: update/delete apenas pelo criador ou
// por um admin.
func NewOrderService(
	orderRepo repositories.OrderRepository,
	exporter ports.ReportExporter,
	logger ports.Logger,
	restrictMutation bool,
) *OrderService {
	return &OrderService{
		orderRepo:        orderRepo,
		exporter:         exporter,
		logger:           logger,
		restrictMutation: restrictMutation,
	}
}

// CreateOrderInput representa os dados para abrir uma ordem de serviço.
// Todos os campos são opcionais; o chamado é preenchido aos poucos.
type CreateOrderInput struct {
	TicketNumber *string
	OSNumber     *string
	PAT          *string
	Status       string

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

	Verifications []entities.Verification

	TotalPageCount    *string
	PendingIssues     *string
	NextVisit         *string
	EquipmentReplaced bool

	Observations *string
}

// CreateOrder abre uma nova ordem de serviço. O autor vem sempre da
// sessão autenticada, nunca do corpo da requisição.
func (s *OrderService) CreateOrder(ctx context.Context, caller *entities.User, input CreateOrderInput) (*entities.ServiceOrder, error) {
	status := input.Status
	if status == "" {
		status = entities.StatusAberto
	}

	verifications := input.Verifications
	if verifications == nil {
		verifications = []entities.Verification{}
	}

	order := &entities.ServiceOrder{
		Status:               status,
		TicketNumber:         input.TicketNumber,
		OSNumber:             input.OSNumber,
		PAT:                  input.PAT,
		OpeningDate:          input.OpeningDate,
		ResponsibleOpening:   input.ResponsibleOpening,
		ResponsibleTech:      input.ResponsibleTech,
		Phone:                input.Phone,
		ClientName:           input.ClientName,
		Unit:                 input.Unit,
		ServiceAddress:       input.ServiceAddress,
		EquipmentType:        input.EquipmentType,
		EquipmentBrand:       input.EquipmentBrand,
		EquipmentModel:       input.EquipmentModel,
		EquipmentSerial:      input.EquipmentSerial,
		EquipmentBoardSerial: input.EquipmentBoardSerial,
		CallInfo:             input.CallInfo,
		Materials:            input.Materials,
		TechnicalReport:      input.TechnicalReport,
		Verifications:        verifications,
		TotalPageCount:       input.TotalPageCount,
		PendingIssues:        input.PendingIssues,
		NextVisit:            input.NextVisit,
		EquipmentReplaced:    input.EquipmentReplaced,
		Observations:         input.Observations,
		CreatedBy:            caller.ID,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}

	s.logger.Info("service order created",
		"order_id", order.ID,
		"status", order.Status,
		"created_by", caller.ID,
	)

	return order, nil
}

// GetOrder busca uma ordem por ID
func (s *OrderService) GetOrder(ctx context.Context, id string) (*entities.ServiceOrder, error) {
	order, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.ErrOrderNotFound
	}
	return order, nil
}

// ListOrders lista ordens filtradas, com as URGENTE sempre na frente
func (s *OrderService) ListOrders(ctx context.Context, filters repositories.OrderFilters) ([]*entities.ServiceOrder, error) {
	orders, err := s.orderRepo.List(ctx, filters)
	if err != nil {
		return nil, err
	}

	return entities.RankByPriority(orders), nil
}

// UpdateOrder aplica uma atualização parcial: campos ausentes do patch
// ficam intocados, e updated_at é renovado mesmo sem mudança efetiva
func (s *OrderService) UpdateOrder(ctx context.Context, caller *entities.User, id string, patch repositories.OrderPatch) (*entities.ServiceOrder, error) {
	existing, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, errors.ErrOrderNotFound
	}

	if err := s.authorizeMutation(caller, existing); err != nil {
		return nil, err
	}

	updated, err := s.orderRepo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, errors.ErrOrderNotFound
	}

	return updated, nil
}

// DeleteOrder remove uma ordem por ID
func (s *OrderService) DeleteOrder(ctx context.Context, caller *entities.User, id string) error {
	existing, err := s.orderRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return errors.ErrOrderNotFound
	}

	if err := s.authorizeMutation(caller, existing); err != nil {
		return err
	}

	if err := s.orderRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("service order deleted",
		"order_id", id,
		"deleted_by", caller.ID,
	)

	return nil
}

// Stats retorna a contagem por status mais o total. Os oito status
// conhecidos sempre aparecem (zerados se vazios); status desconhecidos
// armazenados ganham a própria chave, então o total é sempre a soma do
// que foi publicado. Ordens sem status contam como ABERTO.
func (s *OrderService) Stats(ctx context.Context) (map[string]int64, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int64, len(entities.OrderStatuses)+2)
	for _, status := range entities.OrderStatuses {
		stats[status] = 0
	}

	var total int64
	for status, count := range counts {
		if status == "" {
			status = entities.StatusAberto
		}
		stats[status] += count
		total += count
	}
	stats[StatsTotalKey] = total

	return stats, nil
}

// Export gera o relatório XLSX do backlog completo (sem filtros),
// já priorizado
func (s *OrderService) Export(ctx context.Context) ([]byte, error) {
	orders, err := s.orderRepo.List(ctx, repositories.OrderFilters{})
	if err != nil {
		return nil, err
	}

	return s.exporter.Export(entities.RankByPriority(orders))
}

// authorizeMutation aplica a regra opcional de propriedade
func (s *OrderService) authorizeMutation(caller *entities.User, order *entities.ServiceOrder) error {
	if !s.restrictMutation {
		return nil
	}
	if caller.IsAdmin() || order.CreatedBy == caller.ID {
		return nil
	}
	return errors.ErrForbidden
}
