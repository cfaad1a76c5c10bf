package repositories

import (
	"context"
	"time"

	"eduhub-records/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Table is the adapter of a single entity table.
// owner is the parent key column ("id" for core tables), fixed holds conditions
// applied to every query, e.g. source_type on the shared financial tables.
type Table[T any] struct {
	db    *gorm.DB
	owner string
	fixed map[string]interface{}
}

// NewTable creates a table adapter keyed by the given owner column
func NewTable[T any](db *gorm.DB, owner string) *Table[T] {
	return &Table[T]{db: db, owner: owner}
}

// For scopes a polymorphic table to one person variant
func (t *Table[T]) For(source domain.SourceType) *Table[T] {
	return &Table[T]{
		db:    t.db,
		owner: t.owner,
		fixed: map[string]interface{}{"source_type": string(source)},
	}
}

// Create inserts a row, the generated id is written back into row
func (t *Table[T]) Create(ctx context.Context, row *T) error {
	return t.db.WithContext(ctx).Create(row).Error
}

// GetByID gets a single row by its own id, nil when absent
func (t *Table[T]) GetByID(ctx context.Context, id uint) (*T, error) {
	return t.first(ctx, t.where("id", id))
}

// GetByIDForOwner gets a row by id only when it belongs to ownerID, nil otherwise
func (t *Table[T]) GetByIDForOwner(ctx context.Context, id, ownerID uint) (*T, error) {
	cond := t.where(t.owner, ownerID)
	cond["id"] = id
	return t.first(ctx, cond)
}

// GetByOwner gets a single row by parent key, nil when absent
func (t *Table[T]) GetByOwner(ctx context.Context, ownerID uint) (*T, error) {
	return t.first(ctx, t.where(t.owner, ownerID))
}

// GetBy gets a single row by an arbitrary column, nil when absent
func (t *Table[T]) GetBy(ctx context.Context, column string, value interface{}) (*T, error) {
	return t.first(ctx, t.where(column, value))
}

// ListByOwner lists every row of a parent key in insertion order
func (t *Table[T]) ListByOwner(ctx context.Context, ownerID uint) ([]*T, error) {
	var rows []*T
	err := t.db.WithContext(ctx).Where(t.where(t.owner, ownerID)).Order("id").Find(&rows).Error
	return rows, err
}

// ListBetween lists rows whose time column falls in [from, to), ordered by owner
func (t *Table[T]) ListBetween(ctx context.Context, column string, from, to time.Time) ([]*T, error) {
	var rows []*T
	col := clause.Column{Name: column}
	q := t.scoped(ctx).Where(clause.Gte{Column: col, Value: from}).Where(clause.Lt{Column: col, Value: to})
	err := q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: t.owner}},
		{Column: col},
	}}).Find(&rows).Error
	return rows, err
}

// All lists the entire table
func (t *Table[T]) All(ctx context.Context) ([]*T, error) {
	var rows []*T
	err := t.scoped(ctx).Order("id").Find(&rows).Error
	return rows, err
}

// List lists the table with pagination
func (t *Table[T]) List(ctx context.Context, offset, limit int) ([]*T, int64, error) {
	var rows []*T
	var total int64

	// Count total
	if err := t.scoped(ctx).Model(new(T)).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := t.scoped(ctx).Order("id").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// ListByOwnerPaged lists the rows of a parent key with pagination
func (t *Table[T]) ListByOwnerPaged(ctx context.Context, ownerID uint, offset, limit int) ([]*T, int64, error) {
	var rows []*T
	var total int64
	cond := t.where(t.owner, ownerID)

	if err := t.db.WithContext(ctx).Model(new(T)).Where(cond).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := t.db.WithContext(ctx).Where(cond).Order("id").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

// UpdateByID updates the named columns of a row
func (t *Table[T]) UpdateByID(ctx context.Context, id uint, fields map[string]interface{}) error {
	return t.db.WithContext(ctx).Model(new(T)).Where(t.where("id", id)).Updates(fields).Error
}

// UpdateByIDForOwner updates a row by id, restricted to the rows of ownerID
func (t *Table[T]) UpdateByIDForOwner(ctx context.Context, id, ownerID uint, fields map[string]interface{}) error {
	cond := t.where(t.owner, ownerID)
	cond["id"] = id
	return t.db.WithContext(ctx).Model(new(T)).Where(cond).Updates(fields).Error
}

// UpdateByOwner updates the named columns of every row of a parent key
func (t *Table[T]) UpdateByOwner(ctx context.Context, ownerID uint, fields map[string]interface{}) error {
	return t.db.WithContext(ctx).Model(new(T)).Where(t.where(t.owner, ownerID)).Updates(fields).Error
}

// DeleteByID deletes a row, deleting nothing is not an error
func (t *Table[T]) DeleteByID(ctx context.Context, id uint) error {
	return t.db.WithContext(ctx).Where(t.where("id", id)).Delete(new(T)).Error
}

// DeleteByOwner deletes every row of a parent key
func (t *Table[T]) DeleteByOwner(ctx context.Context, ownerID uint) error {
	return t.db.WithContext(ctx).Where(t.where(t.owner, ownerID)).Delete(new(T)).Error
}

// DeleteIn deletes every row whose column matches one of values, an empty set deletes nothing
func (t *Table[T]) DeleteIn(ctx context.Context, column string, values []uint) error {
	if len(values) == 0 {
		return nil
	}
	return t.scoped(ctx).Where(clause.IN{Column: clause.Column{Name: column}, Values: toValues(values)}).Delete(new(T)).Error
}

func toValues(ids []uint) []interface{} {
	values := make([]interface{}, len(ids))
	for i, id := range ids {
		values[i] = id
	}
	return values
}

func (t *Table[T]) first(ctx context.Context, cond map[string]interface{}) (*T, error) {
	var row T
	result := t.db.WithContext(ctx).Where(cond).Limit(1).Find(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}

func (t *Table[T]) where(column string, value interface{}) map[string]interface{} {
	cond := map[string]interface{}{column: value}
	for k, v := range t.fixed {
		cond[k] = v
	}
	return cond
}

func (t *Table[T]) scoped(ctx context.Context) *gorm.DB {
	q := t.db.WithContext(ctx)
	if len(t.fixed) > 0 {
		q = q.Where(t.fixed)
	}
	return q
}
