package postgres

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/tsmfield/os-backend/internal/domain/entities"
)

// UserModel é o model GORM para usuários
type UserModel struct {
	ID           string `gorm:"type:varchar(36);primary_key"`
	Username     string `gorm:"type:varchar(255);uniqueIndex;not null;column:email"`
	Name         string `gorm:"type:varchar(500);not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	Role         string `gorm:"type:varchar(50);not null;index"`
	CreatedAt    int64  `gorm:"index"`
}

func (UserModel) TableName() string {
	return "users"
}

// VerificationsJSON persiste o checklist como uma coluna JSONB,
// preservando a ordem dos itens fornecida pelo caller
type VerificationsJSON []entities.Verification

func (v VerificationsJSON) Value() (driver.Value, error) {
	if v == nil {
		return "[]", nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (v *VerificationsJSON) Scan(value interface{}) error {
	if value == nil {
		*v = VerificationsJSON{}
		return nil
	}

	var data []byte
	switch raw := value.(type) {
	case []byte:
		data = raw
	case string:
		data = []byte(raw)
	default:
		return fmt.Errorf("unsupported type for verifications: %T", value)
	}

	return json.Unmarshal(data, v)
}

// ServiceOrderModel é o model GORM para ordens de serviço.
// Campos opcionais são ponteiros: ausência persiste como NULL, nunca
// como string vazia. opening_date é varchar de propósito: o filtro de
// período compara strings lexicalmente, não datas de calendário.
type ServiceOrderModel struct {
	ID     string  `gorm:"type:varchar(36);primary_key"`
	Status *string `gorm:"type:varchar(50);index"`

	TicketNumber *string `gorm:"type:varchar(255)"`
	OSNumber     *string `gorm:"type:varchar(255);column:os_number"`
	PAT          *string `gorm:"type:varchar(255);column:pat"`

	OpeningDate        *string `gorm:"type:varchar(255)"`
	ResponsibleOpening *string `gorm:"type:varchar(500)"`
	ResponsibleTech    *string `gorm:"type:varchar(500)"`
	Phone              *string `gorm:"type:varchar(100)"`

	ClientName     *string `gorm:"type:varchar(500)"`
	Unit           *string `gorm:"type:varchar(500)"`
	ServiceAddress *string `gorm:"type:text"`

	EquipmentType        *string `gorm:"type:varchar(255)"`
	EquipmentBrand       *string `gorm:"type:varchar(255)"`
	EquipmentModel       *string `gorm:"type:varchar(255)"`
	EquipmentSerial      *string `gorm:"type:varchar(255)"`
	EquipmentBoardSerial *string `gorm:"type:varchar(255)"`

	CallInfo        *string `gorm:"type:text"`
	Materials       *string `gorm:"type:text"`
	TechnicalReport *string `gorm:"type:text"`

	Verifications VerificationsJSON `gorm:"type:jsonb"`

	TotalPageCount    *string `gorm:"type:varchar(255)"`
	PendingIssues     *string `gorm:"type:text"`
	NextVisit         *string `gorm:"type:varchar(255)"`
	EquipmentReplaced bool    `gorm:"not null;default:false"`

	Observations *string `gorm:"type:text"`

	CreatedBy string `gorm:"type:varchar(36);not null;index"`
	CreatedAt int64  `gorm:"index"`
	UpdatedAt int64
}

func (ServiceOrderModel) TableName() string {
	return "service_orders"
}
