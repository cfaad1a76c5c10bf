package services

import (
	"fmt"
	"strings"
	"time"

	"eduhub-records/internal/core/domain"
)

// AttendanceInput is one attendance punch, a nil Time means now
type AttendanceInput struct {
	Type string     `json:"type"`
	Time *time.Time `json:"time"`
}

func (a *AttendanceInput) parse() (domain.AttendanceType, time.Time, error) {
	kind, err := domain.ParseAttendanceType(a.Type)
	if err != nil {
		return "", time.Time{}, err
	}
	at := time.Now()
	if a.Time != nil {
		at = *a.Time
	}
	return kind, at.UTC(), nil
}

// EvaluationInput is one evaluation entry
type EvaluationInput struct {
	EvaluationType string `json:"evaluation_type"`
	Rating         int    `json:"rating"`
}

func (e *EvaluationInput) validate() error {
	if strings.TrimSpace(e.EvaluationType) == "" {
		return fmt.Errorf("%w: evaluation_type is required", domain.ErrInvalidInput)
	}
	if e.Rating < 1 || e.Rating > 5 {
		return domain.ErrInvalidRating
	}
	return nil
}
