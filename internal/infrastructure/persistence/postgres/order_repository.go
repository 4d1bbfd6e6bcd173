package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tsmfield/os-backend/internal/domain/entities"
	"github.com/tsmfield/os-backend/internal/domain/repositories"
)

// OrderRepository implementa repositories.OrderRepository
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository cria um novo OrderRepository
func NewOrderRepository(db *gorm.DB) repositories.OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *entities.ServiceOrder) error {
	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	now := time.Now().UTC()
	order.CreatedAt = now
	order.UpdatedAt = now

	if order.Status == "" {
		order.Status = entities.StatusAberto
	}

	model := r.toModel(order)

	db := r.getDB(ctx)
	return db.WithContext(ctx).Create(model).Error
}

func (r *OrderRepository) FindByID(ctx context.Context, id string) (*entities.ServiceOrder, error) {
	var model ServiceOrderModel

	db := r.getDB(ctx)
	if err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.toEntity(&model), nil
}

func (r *OrderRepository) List(ctx context.Context, filters repositories.OrderFilters) ([]*entities.ServiceOrder, error) {
	var models []*ServiceOrderModel

	db := r.getDB(ctx)
	query := db.WithContext(ctx).Model(&ServiceOrderModel{})

	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.PAT != "" {
		query = query.Where("pat ILIKE ?", "%"+filters.PAT+"%")
	}
	if filters.TicketNumber != "" {
		query = query.Where("ticket_number ILIKE ?", "%"+filters.TicketNumber+"%")
	}
	if filters.OSNumber != "" {
		query = query.Where("os_number ILIKE ?", "%"+filters.OSNumber+"%")
	}
	if filters.EquipmentSerial != "" {
		query = query.Where("equipment_serial ILIKE ?", "%"+filters.EquipmentSerial+"%")
	}
	if filters.Unit != "" {
		query = query.Where("unit ILIKE ?", "%"+filters.Unit+"%")
	}

	// Período de abertura: comparação lexical de strings, não datas
	if filters.DateStart != "" {
		query = query.Where("opening_date >= ?", filters.DateStart)
	}
	if filters.DateEnd != "" {
		query = query.Where("opening_date <= ?", filters.DateEnd)
	}

	// Ordem base: mais antigas primeiro
	if err := query.Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}

	orders := make([]*entities.ServiceOrder, 0, len(models))
	for _, model := range models {
		orders = append(orders, r.toEntity(model))
	}

	return orders, nil
}

func (r *OrderRepository) Update(ctx context.Context, id string, patch repositories.OrderPatch) (*entities.ServiceOrder, error) {
	db := r.getDB(ctx)

	var model ServiceOrderModel
	if err := db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	values := patchValues(patch)
	// updated_at é renovado em todo update bem sucedido, mesmo sem
	// nenhum campo de negócio alterado
	values["updated_at"] = nextUpdatedAt(model.UpdatedAt)

	if err := db.WithContext(ctx).Model(&ServiceOrderModel{}).Where("id = ?", id).Updates(values).Error; err != nil {
		return nil, err
	}

	return r.FindByID(ctx, id)
}

func (r *OrderRepository) Delete(ctx context.Context, id string) error {
	db := r.getDB(ctx)
	return db.WithContext(ctx).Where("id = ?", id).Delete(&ServiceOrderModel{}).Error
}

func (r *OrderRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	type statusCount struct {
		Status *string
		Count  int64
	}

	var rows []statusCount

	db := r.getDB(ctx)
	err := db.WithContext(ctx).
		Model(&ServiceOrderModel{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		key := ""
		if row.Status != nil {
			key = *row.Status
		}
		counts[key] = row.Count
	}

	return counts, nil
}

// nextUpdatedAt garante que updated_at sempre avança: um update que
// cai no mesmo milissegundo do valor armazenado ganha o valor + 1
func nextUpdatedAt(previous int64) int64 {
	now := time.Now().UTC().UnixMilli()
	if now <= previous {
		return previous + 1
	}
	return now
}

// getDB extrai DB do contexto (para suportar transações)
func (r *OrderRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey).(*gorm.DB); ok {
		return tx
	}
	return r.db
}

// patchValues monta o mapa de colunas a atualizar: apenas campos
// presentes (não-nil) no patch entram no UPDATE
func patchValues(patch repositories.OrderPatch) map[string]interface{} {
	values := map[string]interface{}{}

	set := func(column string, v *string) {
		if v != nil {
			values[column] = *v
		}
	}

	set("ticket_number", patch.TicketNumber)
	set("os_number", patch.OSNumber)
	set("pat", patch.PAT)
	set("status", patch.Status)
	set("opening_date", patch.OpeningDate)
	set("responsible_opening", patch.ResponsibleOpening)
	set("responsible_tech", patch.ResponsibleTech)
	set("phone", patch.Phone)
	set("client_name", patch.ClientName)
	set("unit", patch.Unit)
	set("service_address", patch.ServiceAddress)
	set("equipment_type", patch.EquipmentType)
	set("equipment_brand", patch.EquipmentBrand)
	set("equipment_model", patch.EquipmentModel)
	set("equipment_serial", patch.EquipmentSerial)
	set("equipment_board_serial", patch.EquipmentBoardSerial)
	set("call_info", patch.CallInfo)
	set("materials", patch.Materials)
	set("technical_report", patch.TechnicalReport)
	set("total_page_count", patch.TotalPageCount)
	set("pending_issues", patch.PendingIssues)
	set("next_visit", patch.NextVisit)
	set("observations", patch.Observations)

	if patch.Verifications != nil {
		values["verifications"] = VerificationsJSON(*patch.Verifications)
	}
	if patch.EquipmentReplaced != nil {
		values["equipment_replaced"] = *patch.EquipmentReplaced
	}

	return values
}

// Conversores
func (r *OrderRepository) toModel(order *entities.ServiceOrder) *ServiceOrderModel {
	status := order.Status

	return &ServiceOrderModel{
		ID:                   order.ID,
		Status:               &status,
		TicketNumber:         order.TicketNumber,
		OSNumber:             order.OSNumber,
		PAT:                  order.PAT,
		OpeningDate:          order.OpeningDate,
		ResponsibleOpening:   order.ResponsibleOpening,
		ResponsibleTech:      order.ResponsibleTech,
		Phone:                order.Phone,
		ClientName:           order.ClientName,
		Unit:                 order.Unit,
		ServiceAddress:       order.ServiceAddress,
		EquipmentType:        order.EquipmentType,
		EquipmentBrand:       order.EquipmentBrand,
		EquipmentModel:       order.EquipmentModel,
		EquipmentSerial:      order.EquipmentSerial,
		EquipmentBoardSerial: order.EquipmentBoardSerial,
		CallInfo:             order.CallInfo,
		Materials:            order.Materials,
		TechnicalReport:      order.TechnicalReport,
		Verifications:        VerificationsJSON(order.Verifications),
		TotalPageCount:       order.TotalPageCount,
		PendingIssues:        order.PendingIssues,
		NextVisit:            order.NextVisit,
		EquipmentReplaced:    order.EquipmentReplaced,
		Observations:         order.Observations,
		CreatedBy:            order.CreatedBy,
		CreatedAt:            order.CreatedAt.UnixMilli(),
		UpdatedAt:            order.UpdatedAt.UnixMilli(),
	}
}

func (r *OrderRepository) toEntity(model *ServiceOrderModel) *entities.ServiceOrder {
	status := ""
	if model.Status != nil {
		status = *model.Status
	}

	return &entities.ServiceOrder{
		ID:                   model.ID,
		Status:               status,
		TicketNumber:         model.TicketNumber,
		OSNumber:             model.OSNumber,
		PAT:                  model.PAT,
		OpeningDate:          model.OpeningDate,
		ResponsibleOpening:   model.ResponsibleOpening,
		ResponsibleTech:      model.ResponsibleTech,
		Phone:                model.Phone,
		ClientName:           model.ClientName,
		Unit:                 model.Unit,
		ServiceAddress:       model.ServiceAddress,
		EquipmentType:        model.EquipmentType,
		EquipmentBrand:       model.EquipmentBrand,
		EquipmentModel:       model.EquipmentModel,
		EquipmentSerial:      model.EquipmentSerial,
		EquipmentBoardSerial: model.EquipmentBoardSerial,
		CallInfo:             model.CallInfo,
		Materials:            model.Materials,
		TechnicalReport:      model.TechnicalReport,
		Verifications:        []entities.Verification(model.Verifications),
		TotalPageCount:       model.TotalPageCount,
		PendingIssues:        model.PendingIssues,
		NextVisit:            model.NextVisit,
		EquipmentReplaced:    model.EquipmentReplaced,
		Observations:         model.Observations,
		CreatedBy:            model.CreatedBy,
		CreatedAt:            time.UnixMilli(model.CreatedAt).UTC(),
		UpdatedAt:            time.UnixMilli(model.UpdatedAt).UTC(),
	}
}
