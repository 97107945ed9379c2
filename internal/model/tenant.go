package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Tenant is an isolated business account. Every customer, product and
// order row carries a tenant id; nothing is visible across tenants.
type Tenant struct {
	BaseModel
	Email        string     `gorm:"type:varchar(255);uniqueIndex;not null" json:"email" validate:"required,email"`
	Password     string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	BusinessName string     `gorm:"type:varchar(255)" json:"business_name" validate:"required"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty"`
}

// SetPassword hashes and sets the tenant's password
func (t *Tenant) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	t.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (t *Tenant) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(t.Password), []byte(password))
	return err == nil
}

// TenantResponse is used for API responses (without sensitive data)
type TenantResponse struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	BusinessName string     `json:"business_name"`
	IsActive     bool       `json:"is_active"`
	LastSeenAt   *time.Time `json:"last_seen_at,omitempty"`
}

// ToResponse converts Tenant to TenantResponse
func (t *Tenant) ToResponse() TenantResponse {
	return TenantResponse{
		ID:           t.ID,
		Email:        t.Email,
		BusinessName: t.BusinessName,
		IsActive:     t.IsActive,
		LastSeenAt:   t.LastSeenAt,
	}
}
