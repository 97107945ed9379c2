package model

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusCompleted OrderStatus = "completed"
	StatusCancelled OrderStatus = "cancelled"
)

// ValidStatus reports whether s is one of the closed status set.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

// Order's Total is computed from its items at creation time and frozen;
// status changes never recompute it.
type Order struct {
	BaseModel
	TenantID      uuid.UUID   `gorm:"type:uuid;not null;index" json:"tenant_id"`
	CustomerID    uuid.UUID   `gorm:"type:uuid;not null;index" json:"customer_id" validate:"uuid_required"`
	Customer      *Customer   `json:"customer,omitempty" validate:"-"`
	Status        OrderStatus `gorm:"type:varchar(20);not null;default:pending" json:"status" validate:"order_status"`
	PaymentMethod string      `gorm:"type:varchar(20);default:cash" json:"payment_method"`
	OrderDate     time.Time   `gorm:"not null" json:"order_date"`
	Total         float64     `gorm:"not null" json:"total"`
	Items         []OrderItem `gorm:"constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

// OrderItem snapshots the product's unit price at order time.
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id" validate:"uuid_required"`
	Product   *Product  `json:"product,omitempty" validate:"-"`
	Quantity  int       `gorm:"not null" json:"quantity" validate:"required,gt=0"`
	Price     float64   `gorm:"not null" json:"price"`
}
