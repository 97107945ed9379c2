package model

import (
	"time"

	"github.com/google/uuid"
)

// Customer carries denormalized lifetime aggregates (total_spent,
// visit_count, loyalty_points, last_visit). They are maintained
// incrementally by the order lifecycle, never recomputed from orders.
type Customer struct {
	BaseModel
	TenantID      uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_customers_tenant_email" json:"tenant_id"`
	Name          string     `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Email         string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_customers_tenant_email" json:"email" validate:"required,email"`
	Phone         string     `gorm:"type:varchar(30)" json:"phone"`
	Address       string     `gorm:"type:varchar(255)" json:"address"`
	TotalSpent    float64    `gorm:"default:0" json:"total_spent"`
	VisitCount    int        `gorm:"default:0" json:"visit_count"`
	LoyaltyPoints int        `gorm:"default:0" json:"loyalty_points"`
	LastVisit     *time.Time `json:"last_visit,omitempty"`

	Orders []Order `json:"orders,omitempty"`
}

// CustomerWithStats is the list-view row: customer plus order count.
type CustomerWithStats struct {
	Customer
	OrderCount int64 `json:"order_count"`
}
