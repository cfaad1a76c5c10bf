package repositories

import (
	"context"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/core/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AnalyticsRepository handles attendance_analytics data access
type AnalyticsRepository struct {
	*Table[models.AttendanceAnalytics]
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{Table: NewTable[models.AttendanceAnalytics](db, "source_id")}
}

// SavePeriod stores metrics, replacing rows already generated for the same person and period
func (r *AnalyticsRepository) SavePeriod(ctx context.Context, rows []*models.AttendanceAnalytics) error {
	if len(rows) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "source_id"},
			{Name: "source_type"},
			{Name: "period_start"},
			{Name: "period_end"},
		},
		DoUpdates: clause.AssignmentColumns([]string{"attendance_rate", "late_count", "total_hours", "generated_at"}),
	}).CreateInBatches(rows, 100).Error
}

// ListBySource lists generated metrics of one person variant, newest period first
func (r *AnalyticsRepository) ListBySource(ctx context.Context, source domain.SourceType) ([]*models.AttendanceAnalytics, error) {
	var rows []*models.AttendanceAnalytics
	err := r.db.WithContext(ctx).
		Where("source_type = ?", string(source)).
		Order("period_end DESC").
		Order("source_id").
		Find(&rows).Error
	return rows, err
}
