package entities

import "time"

// Status de uma ordem de serviço.
// O quadro acompanha o fluxo operacional da equipe de campo: chamados
// URGENTE sempre aparecem antes dos demais nas listagens.
const (
	StatusUrgente   = "URGENTE"
	StatusAberto    = "ABERTO"
	StatusEmRota    = "EM ROTA"
	StatusLiberado  = "LIBERADO"
	StatusPendencia = "PENDENCIA"
	StatusSuspenso  = "SUSPENSO"
	StatusDefinir   = "DEFINIR"
	StatusResolvido = "RESOLVIDO"
)

// OrderStatuses lista os status conhecidos, na ordem usada nos relatórios
var OrderStatuses = []string{
	StatusUrgente,
	StatusAberto,
	StatusEmRota,
	StatusLiberado,
	StatusPendencia,
	StatusSuspenso,
	StatusDefinir,
	StatusResolvido,
}

// IsKnownStatus verifica se o status pertence ao conjunto conhecido
func IsKnownStatus(status string) bool {
	for _, s := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Status possíveis de um item de verificação
const (
	VerificationBoa  = "BOA"
	VerificationRuim = "RUIM"
	VerificationNA   = "N/A"
)

// Verification é um item do checklist de subsistemas do equipamento.
// A ordem dos itens é fornecida pelo chamador e preservada.
type Verification struct {
	Item        string  `json:"item"`
	Status      string  `json:"status"`
	Observation *string `json:"observation,omitempty"`
}

// ServiceOrder representa uma ordem de serviço (chamado de reparo).
// Quase todos os campos são opcionais: o chamado é preenchido
// incrementalmente durante o atendimento, então ausência é um estado
// válido e comum. Campos ausentes ficam nil, nunca string vazia.
type ServiceOrder struct {
	ID     string
	Status string

	// Identificadores do chamado
	TicketNumber *string
	OSNumber     *string
	PAT          *string

	// Agendamento e responsáveis
	OpeningDate        *string
	ResponsibleOpening *string
	ResponsibleTech    *string
	Phone              *string

	// Cliente
	ClientName     *string
	Unit           *string
	ServiceAddress *string

	// Equipamento
	EquipmentType        *string
	EquipmentBrand       *string
	EquipmentModel       *string
	EquipmentSerial      *string
	EquipmentBoardSerial *string

	// Chamado
	CallInfo        *string
	Materials       *string
	TechnicalReport *string

	// Verificações
	Verifications []Verification

	// Contadores e pendências
	TotalPageCount    *string
	PendingIssues     *string
	NextVisit         *string
	EquipmentReplaced bool

	// Observações
	Observations *string

	// Metadata
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsUrgent verifica se a ordem está marcada como URGENTE
func (o *ServiceOrder) IsUrgent() bool {
	return o.Status == StatusUrgente
}
