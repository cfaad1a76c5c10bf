package services

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"time"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/adapters/persistence/repositories"
	"eduhub-records/internal/core/domain"
)

// AnalyticsService aggregates attendance punches into attendance_analytics
type AnalyticsService struct {
	store     *repositories.Store
	lateAfter time.Duration // offset from midnight UTC
	log       *slog.Logger
}

// NewAnalyticsService creates a new analytics service. lateAfter is a HH:MM clock time.
func NewAnalyticsService(store *repositories.Store, lateAfter string, log *slog.Logger) (*AnalyticsService, error) {
	clock, err := time.Parse("15:04", lateAfter)
	if err != nil {
		return nil, fmt.Errorf("invalid late threshold %q: %w", lateAfter, err)
	}
	return &AnalyticsService{
		store:     store,
		lateAfter: time.Duration(clock.Hour())*time.Hour + time.Duration(clock.Minute())*time.Minute,
		log:       log.With("service", "analytics"),
	}, nil
}

// AttendanceWindow returns the trailing window of days ending at the start of today (UTC)
func AttendanceWindow(now time.Time, days int) (from, to time.Time) {
	if days < 1 {
		days = 1
	}
	to = now.UTC().Truncate(24 * time.Hour)
	return to.AddDate(0, 0, -days), to
}

type punch struct {
	kind domain.AttendanceType
	at   time.Time
}

// GenerateAttendance computes metrics over [from, to) for every person with punches in the window
func (s *AnalyticsService) GenerateAttendance(ctx context.Context, from, to time.Time) (int, error) {
	start := time.Now()
	if !to.After(from) {
		return 0, fmt.Errorf("%w: empty analytics window", domain.ErrInvalidInput)
	}

	employees, err := s.store.EmployeeAttendance.ListBetween(ctx, "time", from, to)
	if err != nil {
		return 0, err
	}
	byEmployee := map[uint][]punch{}
	for _, a := range employees {
		byEmployee[a.EmpID] = append(byEmployee[a.EmpID], punch{kind: domain.AttendanceType(a.Type), at: a.Time})
	}

	students, err := s.store.StudentAttendance.ListBetween(ctx, "time", from, to)
	if err != nil {
		return 0, err
	}
	byStudent := map[uint][]punch{}
	for _, a := range students {
		byStudent[a.StudentID] = append(byStudent[a.StudentID], punch{kind: domain.AttendanceType(a.Type), at: a.Time})
	}

	rows := s.summarize(domain.SourceEmployee, byEmployee, from, to)
	rows = append(rows, s.summarize(domain.SourceStudent, byStudent, from, to)...)
	if err := s.store.Analytics.SavePeriod(ctx, rows); err != nil {
		return 0, err
	}

	s.log.InfoContext(ctx, "attendance analytics generated",
		"rows", len(rows),
		"from", from.Format(dateLayout),
		"to", to.Format(dateLayout),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return len(rows), nil
}

// List returns stored metrics of one person variant
func (s *AnalyticsService) List(ctx context.Context, source domain.SourceType) ([]*models.AttendanceAnalytics, error) {
	if !source.Valid() {
		return nil, fmt.Errorf("%w: source_type must be employee or student", domain.ErrInvalidInput)
	}
	return s.store.Analytics.ListBySource(ctx, source)
}

func (s *AnalyticsService) summarize(source domain.SourceType, punches map[uint][]punch, from, to time.Time) []*models.AttendanceAnalytics {
	ids := make([]uint, 0, len(punches))
	for id := range punches {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	days := math.Max(1, math.Round(to.Sub(from).Hours()/24))
	rows := make([]*models.AttendanceAnalytics, 0, len(ids))
	for _, id := range ids {
		present, late, hours := s.measure(punches[id])
		rows = append(rows, &models.AttendanceAnalytics{
			SourceID:       id,
			SourceType:     string(source),
			AttendanceRate: round2(float64(present) / days),
			LateCount:      late,
			TotalHours:     round2(hours),
			PeriodStart:    from,
			PeriodEnd:      to,
		})
	}
	return rows
}

// measure counts present days, late first arrivals and worked hours of in→out pairs
func (s *AnalyticsService) measure(punches []punch) (present, late int, hours float64) {
	sort.Slice(punches, func(i, j int) bool { return punches[i].at.Before(punches[j].at) })

	seen := map[string]bool{}
	var open *time.Time
	for i := range punches {
		p := punches[i]
		switch p.kind {
		case domain.AttendanceIn:
			day := p.at.UTC().Truncate(24 * time.Hour)
			if key := day.Format(dateLayout); !seen[key] {
				seen[key] = true
				present++
				if p.at.UTC().Sub(day) > s.lateAfter {
					late++
				}
			}
			if open == nil {
				open = &punches[i].at
			}
		case domain.AttendanceOut:
			if open != nil {
				hours += p.at.Sub(*open).Hours()
				open = nil
			}
		}
	}
	return present, late, hours
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
