package dto

import (
	"time"

	"github.com/tsmfield/os-backend/internal/domain/entities"
	"github.com/tsmfield/os-backend/internal/domain/repositories"
	"github.com/tsmfield/os-backend/internal/services"
)

// VerificationDTO é um item do checklist de verificação
type VerificationDTO struct {
	Item        string  `json:"item" binding:"required"`
	Status      string  `json:"status" binding:"required,oneof=BOA RUIM N/A"`
	Observation *string `json:"observation"`
}

// CreateOrderRequest representa a requisição para abrir uma ordem.
// Todos os campos são opcionais; status vazio vira ABERTO.
type CreateOrderRequest struct {
	TicketNumber *string `json:"ticket_number"`
	OSNumber     *string `json:"os_number"`
	PAT          *string `json:"pat"`
	Status       *string `json:"status" binding:"omitempty,os_status"`

	OpeningDate        *string `json:"opening_date"`
	ResponsibleOpening *string `json:"responsible_opening"`
	ResponsibleTech    *string `json:"responsible_tech"`
	Phone              *string `json:"phone"`

	ClientName     *string `json:"client_name"`
	Unit           *string `json:"unit"`
	ServiceAddress *string `json:"service_address"`

	EquipmentType        *string `json:"equipment_type"`
	EquipmentBrand       *string `json:"equipment_brand"`
	EquipmentModel       *string `json:"equipment_model"`
	EquipmentSerial      *string `json:"equipment_serial"`
	EquipmentBoardSerial *string `json:"equipment_board_serial"`

	CallInfo        *string `json:"call_info"`
	Materials       *string `json:"materials"`
	TechnicalReport *string `json:"technical_report"`

	Verifications []VerificationDTO `json:"verifications" binding:"omitempty,dive"`

	TotalPageCount    *string `json:"total_page_count"`
	PendingIssues     *string `json:"pending_issues"`
	NextVisit         *string `json:"next_visit"`
	EquipmentReplaced *bool   `json:"equipment_replaced"`

	Observations *string `json:"observations"`
}

// UpdateOrderRequest representa uma atualização parcial: campos
// omitidos (ou null) são deixados intocados
type UpdateOrderRequest struct {
	TicketNumber *string `json:"ticket_number"`
	OSNumber     *string `json:"os_number"`
	PAT          *string `json:"pat"`
	Status       *string `json:"status" binding:"omitempty,os_status"`

	OpeningDate        *string `json:"opening_date"`
	ResponsibleOpening *string `json:"responsible_opening"`
	ResponsibleTech    *string `json:"responsible_tech"`
	Phone              *string `json:"phone"`

	ClientName     *string `json:"client_name"`
	Unit           *string `json:"unit"`
	ServiceAddress *string `json:"service_address"`

	EquipmentType        *string `json:"equipment_type"`
	EquipmentBrand       *string `json:"equipment_brand"`
	EquipmentModel       *string `json:"equipment_model"`
	EquipmentSerial      *string `json:"equipment_serial"`
	EquipmentBoardSerial *string `json:"equipment_board_serial"`

	CallInfo        *string `json:"call_info"`
	Materials       *string `json:"materials"`
	TechnicalReport *string `json:"technical_report"`

	Verifications *[]VerificationDTO `json:"verifications" binding:"omitempty,dive"`

	TotalPageCount    *string `json:"total_page_count"`
	PendingIssues     *string `json:"pending_issues"`
	NextVisit         *string `json:"next_visit"`
	EquipmentReplaced *bool   `json:"equipment_replaced"`

	Observations *string `json:"observations"`
}

// OrderResponse representa uma ordem de serviço serializada.
// Campos ausentes saem como null, nunca como string vazia.
type OrderResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`

	TicketNumber *string `json:"ticket_number"`
	OSNumber     *string `json:"os_number"`
	PAT          *string `json:"pat"`

	OpeningDate        *string `json:"opening_date"`
	ResponsibleOpening *string `json:"responsible_opening"`
	ResponsibleTech    *string `json:"responsible_tech"`
	Phone              *string `json:"phone"`

	ClientName     *string `json:"client_name"`
	Unit           *string `json:"unit"`
	ServiceAddress *string `json:"service_address"`

	EquipmentType        *string `json:"equipment_type"`
	EquipmentBrand       *string `json:"equipment_brand"`
	EquipmentModel       *string `json:"equipment_model"`
	EquipmentSerial      *string `json:"equipment_serial"`
	EquipmentBoardSerial *string `json:"equipment_board_serial"`

	CallInfo        *string `json:"call_info"`
	Materials       *string `json:"materials"`
	TechnicalReport *string `json:"technical_report"`

	Verifications []VerificationDTO `json:"verifications"`

	TotalPageCount    *string `json:"total_page_count"`
	PendingIssues     *string `json:"pending_issues"`
	NextVisit         *string `json:"next_visit"`
	EquipmentReplaced bool    `json:"equipment_replaced"`

	Observations *string `json:"observations"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToCreateOrderInput converte a requisição para o input do serviço
func (r *CreateOrderRequest) ToCreateOrderInput() services.CreateOrderInput {
	status := ""
	if r.Status != nil {
		status = *r.Status
	}

	equipmentReplaced := false
	if r.EquipmentReplaced != nil {
		equipmentReplaced = *r.EquipmentReplaced
	}

	return services.CreateOrderInput{
		TicketNumber:         r.TicketNumber,
		OSNumber:             r.OSNumber,
		PAT:                  r.PAT,
		Status:               status,
		OpeningDate:          r.OpeningDate,
		ResponsibleOpening:   r.ResponsibleOpening,
		ResponsibleTech:      r.ResponsibleTech,
		Phone:                r.Phone,
		ClientName:           r.ClientName,
		Unit:                 r.Unit,
		ServiceAddress:       r.ServiceAddress,
		EquipmentType:        r.EquipmentType,
		EquipmentBrand:       r.EquipmentBrand,
		EquipmentModel:       r.EquipmentModel,
		EquipmentSerial:      r.EquipmentSerial,
		EquipmentBoardSerial: r.EquipmentBoardSerial,
		CallInfo:             r.CallInfo,
		Materials:            r.Materials,
		TechnicalReport:      r.TechnicalReport,
		Verifications:        toVerifications(r.Verifications),
		TotalPageCount:       r.TotalPageCount,
		PendingIssues:        r.PendingIssues,
		NextVisit:            r.NextVisit,
		EquipmentReplaced:    equipmentReplaced,
		Observations:         r.Observations,
	}
}

// ToOrderPatch converte a requisição de atualização para o patch parcial
func (r *UpdateOrderRequest) ToOrderPatch() repositories.OrderPatch {
	patch := repositories.OrderPatch{
		TicketNumber:         r.TicketNumber,
		OSNumber:             r.OSNumber,
		PAT:                  r.PAT,
		Status:               r.Status,
		OpeningDate:          r.OpeningDate,
		ResponsibleOpening:   r.ResponsibleOpening,
		ResponsibleTech:      r.ResponsibleTech,
		Phone:                r.Phone,
		ClientName:           r.ClientName,
		Unit:                 r.Unit,
		ServiceAddress:       r.ServiceAddress,
		EquipmentType:        r.EquipmentType,
		EquipmentBrand:       r.EquipmentBrand,
		EquipmentModel:       r.EquipmentModel,
		EquipmentSerial:      r.EquipmentSerial,
		EquipmentBoardSerial: r.EquipmentBoardSerial,
		CallInfo:             r.CallInfo,
		Materials:            r.Materials,
		TechnicalReport:      r.TechnicalReport,
		TotalPageCount:       r.TotalPageCount,
		PendingIssues:        r.PendingIssues,
		NextVisit:            r.NextVisit,
		EquipmentReplaced:    r.EquipmentReplaced,
		Observations:         r.Observations,
	}

	if r.Verifications != nil {
		verifications := toVerifications(*r.Verifications)
		patch.Verifications = &verifications
	}

	return patch
}

// ToOrderResponse converte uma entidade ServiceOrder para OrderResponse
func ToOrderResponse(order *entities.ServiceOrder) OrderResponse {
	return OrderResponse{
		ID:                   order.ID,
		Status:               order.Status,
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
		Verifications:        fromVerifications(order.Verifications),
		TotalPageCount:       order.TotalPageCount,
		PendingIssues:        order.PendingIssues,
		NextVisit:            order.NextVisit,
		EquipmentReplaced:    order.EquipmentReplaced,
		Observations:         order.Observations,
		CreatedBy:            order.CreatedBy,
		CreatedAt:            order.CreatedAt,
		UpdatedAt:            order.UpdatedAt,
	}
}

// ToOrderResponses converte uma lista de ordens preservando a ordem
func ToOrderResponses(orders []*entities.ServiceOrder) []OrderResponse {
	responses := make([]OrderResponse, len(orders))
	for i, order := range orders {
		responses[i] = ToOrderResponse(order)
	}
	return responses
}

func toVerifications(dtos []VerificationDTO) []entities.Verification {
	verifications := make([]entities.Verification, len(dtos))
	for i, v := range dtos {
		verifications[i] = entities.Verification{
			Item:        v.Item,
			Status:      v.Status,
			Observation: v.Observation,
		}
	}
	return verifications
}

func fromVerifications(verifications []entities.Verification) []VerificationDTO {
	dtos := make([]VerificationDTO, len(verifications))
	for i, v := range verifications {
		dtos[i] = VerificationDTO{
			Item:        v.Item,
			Status:      v.Status,
			Observation: v.Observation,
		}
	}
	return dtos
}
