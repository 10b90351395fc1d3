package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ServiceStatus string

const (
	ServiceActive    ServiceStatus = "active"
	ServiceInactive  ServiceStatus = "inactive"
	ServicePending   ServiceStatus = "pending"
	ServiceCompleted ServiceStatus = "completed"
	ServiceCancelled ServiceStatus = "cancelled"
)

func (s ServiceStatus) Valid() bool {
	switch s {
	case ServiceActive, ServiceInactive, ServicePending, ServiceCompleted, ServiceCancelled:
		return true
	}
	return false
}

type Service struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customer_id"`

	Name         string          `gorm:"not null" json:"name"`
	Description  string          `json:"description"`
	Status       ServiceStatus   `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	MonthlyPrice decimal.Decimal `gorm:"type:decimal(10,2)" json:"monthly_price"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	if s.Status == "" {
		s.Status = ServiceActive
	}
	return
}
