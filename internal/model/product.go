package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	TenantID    uuid.UUID `gorm:"type:uuid;not null;index" json:"tenant_id"`
	Name        string    `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string    `gorm:"type:varchar(500)" json:"description"`
	Category    string    `gorm:"type:varchar(100);not null" json:"category" validate:"required"`
	Price       float64   `gorm:"not null" json:"price" validate:"required,gt=0"`
	Cost        float64   `gorm:"default:0" json:"cost" validate:"gte=0"`
	Stock       int       `gorm:"default:0" json:"stock" validate:"gte=0"` // never negative
	ImageURL    string    `gorm:"type:varchar(500)" json:"image_url"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`
}
