package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
	CustomerPending  CustomerStatus = "pending"
)

func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerActive, CustomerInactive, CustomerPending:
		return true
	}
	return false
}

// Customer is a company-level account record. Exactly one per profile,
// linked through the profile's user id.
type Customer struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`

	CompanyName   string         `gorm:"not null" json:"company_name"`
	ContactPerson string         `json:"contact_person"`
	Email         string         `json:"email"`
	Phone         string         `json:"phone"`
	Address       string         `json:"address"`
	City          string         `json:"city"`
	PostalCode    string         `json:"postal_code"`
	Country       string         `json:"country"`
	Status        CustomerStatus `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Notes         string         `json:"notes"`

	Services   []Service       `gorm:"foreignKey:CustomerID" json:"services,omitempty"`
	Invoices   []Invoice       `gorm:"foreignKey:CustomerID" json:"invoices,omitempty"`
	Activities []SalesActivity `gorm:"foreignKey:CustomerID" json:"activities,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	if c.Status == "" {
		c.Status = CustomerActive
	}
	return
}
