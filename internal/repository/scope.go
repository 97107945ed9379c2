package repository

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TenantScope restricts a query to rows owned by the given tenant. Every
// repository query goes through this scope so no query can forget the
// tenant filter. A row owned by another tenant is indistinguishable from
// a missing row (ErrRecordNotFound).
func TenantScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// lockForUpdate takes a row lock on postgres so the check-then-mutate
// sequence in the order lifecycle is serialized per row. SQLite locks the
// whole database per write transaction and rejects FOR UPDATE syntax.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}
