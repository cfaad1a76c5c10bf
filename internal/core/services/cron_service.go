package services

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// CronService schedules background jobs
type CronService struct {
	cron       *cron.Cron
	analytics  *AnalyticsService
	spec       string
	windowDays int
}

// NewCronService creates a cron service running attendance analytics on spec
func NewCronService(analytics *AnalyticsService, spec string, windowDays int) *CronService {
	return &CronService{
		cron:       cron.New(cron.WithLocation(time.UTC)),
		analytics:  analytics,
		spec:       spec,
		windowDays: windowDays,
	}
}

// Start registers the jobs and starts the scheduler
func (s *CronService) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.runAttendanceAnalytics); err != nil {
		return err
	}
	s.cron.Start()
	log.Printf("⏰ Cron started [attendance analytics: %s, window: %d days]", s.spec, s.windowDays)
	return nil
}

// Stop stops the scheduler and waits for running jobs
func (s *CronService) Stop() {
	<-s.cron.Stop().Done()
	log.Println("🛑 Cron stopped")
}

func (s *CronService) runAttendanceAnalytics() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	from, to := AttendanceWindow(time.Now(), s.windowDays)
	if _, err := s.analytics.GenerateAttendance(ctx, from, to); err != nil {
		log.Printf("❌ Attendance analytics failed: %v", err)
	}
}
