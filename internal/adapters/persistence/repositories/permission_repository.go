package repositories

import (
	"context"

	"eduhub-records/internal/adapters/persistence/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PermissionRepository handles the per-role permission sets
type PermissionRepository struct {
	*Table[models.Permission]
}

// NewPermissionRepository creates a new permission repository keyed by role_id
func NewPermissionRepository(db *gorm.DB) *PermissionRepository {
	return &PermissionRepository{Table: NewTable[models.Permission](db, "role_id")}
}

// Upsert creates the permission set of a role or overwrites the existing one
func (r *PermissionRepository) Upsert(ctx context.Context, perm *models.Permission) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "role_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"addition", "edition", "deletion", "view", "print", "customize"}),
	}).Create(perm).Error
}
