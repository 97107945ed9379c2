package repository

import (
	"time"

	"go-coffee-ops/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TenantRepository interface {
	Create(tenant *model.Tenant) error
	FindByID(id uuid.UUID) (*model.Tenant, error)
	FindByEmail(email string) (*model.Tenant, error)
	Update(tenant *model.Tenant) error
	TouchLastSeen(id uuid.UUID) error
}

type tenantRepo struct {
	db *gorm.DB
}

func NewTenantRepo(db *gorm.DB) TenantRepository {
	return &tenantRepo{db}
}

func (r *tenantRepo) Create(tenant *model.Tenant) error {
	return r.db.Create(tenant).Error
}

func (r *tenantRepo) FindByID(id uuid.UUID) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.db.First(&tenant, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepo) FindByEmail(email string) (*model.Tenant, error) {
	var tenant model.Tenant
	err := r.db.First(&tenant, "email = ?", email).Error
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

func (r *tenantRepo) Update(tenant *model.Tenant) error {
	return r.db.Save(tenant).Error
}

func (r *tenantRepo) TouchLastSeen(id uuid.UUID) error {
	now := time.Now()
	return r.db.Model(&model.Tenant{}).Where("id = ?", id).Update("last_seen_at", now).Error
}
