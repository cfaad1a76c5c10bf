package services

import (
	"context"
	"errors"
	"fmt"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/core/domain"

	"github.com/shopspring/decimal"
)

// ErrInvalidGrade is returned when a grade exceeds its final grade
var ErrInvalidGrade = errors.New("grade must be between 0 and final_grade")

// GradeInput is shared by homework and exam entries
type GradeInput struct {
	CourseID    uint            `json:"course_id"`
	TeacherID   uint            `json:"teacher_id"`
	ClassRoomID uint            `json:"class_room_id"`
	FilePDF     string          `json:"file_pdf"`
	Grade       decimal.Decimal `json:"grade"`
	FinalGrade  decimal.Decimal `json:"final_grade"`
	Date        string          `json:"date"`
}

func (g *GradeInput) validate() error {
	if g.CourseID == 0 || g.TeacherID == 0 {
		return fmt.Errorf("%w: course_id and teacher_id are required", domain.ErrInvalidInput)
	}
	if g.Grade.IsNegative() || g.Grade.GreaterThan(g.FinalGrade) {
		return ErrInvalidGrade
	}
	return nil
}

// ExamInput adds the exam schedule to a grade entry
type ExamInput struct {
	GradeInput
	FullTime  int    `json:"full_time"` // minutes
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// FeeInput is one fee payment. A zero PaymentMethodID uses the latest payment preference.
type FeeInput struct {
	Amount          decimal.Decimal `json:"amount"`
	PaymentMethodID uint            `json:"payment_method_id"`
	ReceivedBy      *uint           `json:"received_by"` // employee id
	Notes           string          `json:"notes"`
	Date            string          `json:"date"`
}

// RecordAttendance appends an attendance punch
func (s *StudentService) RecordAttendance(ctx context.Context, id uint, input *AttendanceInput) (*models.StudentAttendance, error) {
	kind, at, err := input.parse()
	if err != nil {
		return nil, err
	}
	if err := s.requireStudent(ctx, id); err != nil {
		return nil, err
	}

	row := &models.StudentAttendance{StudentID: id, Type: string(kind), Time: at}
	if err := s.store.StudentAttendance.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// RecordEvaluation appends an evaluation entry
func (s *StudentService) RecordEvaluation(ctx context.Context, id uint, input *EvaluationInput) (*models.StudentEvaluation, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.requireStudent(ctx, id); err != nil {
		return nil, err
	}

	row := &models.StudentEvaluation{StudentID: id, EvaluationType: input.EvaluationType, Rating: input.Rating}
	if err := s.store.StudentEvaluations.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// RecordHomework appends a graded homework
func (s *StudentService) RecordHomework(ctx context.Context, id uint, input *GradeInput) (*models.Homework, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	date, err := dateOrToday(input.Date)
	if err != nil {
		return nil, err
	}
	if err := s.requireStudent(ctx, id); err != nil {
		return nil, err
	}

	row := &models.Homework{
		StudentID:   id,
		CourseID:    input.CourseID,
		TeacherID:   input.TeacherID,
		ClassRoomID: input.ClassRoomID,
		FilePDF:     input.FilePDF,
		Grade:       input.Grade,
		FinalGrade:  input.FinalGrade,
		Date:        date,
	}
	if err := s.store.Homework.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// RecordExam appends an exam result
func (s *StudentService) RecordExam(ctx context.Context, id uint, input *ExamInput) (*models.Exam, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	date, err := dateOrToday(input.Date)
	if err != nil {
		return nil, err
	}
	if err := s.requireStudent(ctx, id); err != nil {
		return nil, err
	}

	row := &models.Exam{
		StudentID:   id,
		CourseID:    input.CourseID,
		TeacherID:   input.TeacherID,
		ClassRoomID: input.ClassRoomID,
		Grade:       input.Grade,
		FinalGrade:  input.FinalGrade,
		FullTime:    input.FullTime,
		StartTime:   input.StartTime,
		EndTime:     input.EndTime,
		FilePDF:     input.FilePDF,
		Date:        date,
	}
	if err := s.store.Exams.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// EnrollCourse adds a course enrollment to an existing student
func (s *StudentService) EnrollCourse(ctx context.Context, id uint, input *StudentCourseInput) (*models.StudentCourse, error) {
	joined, err := dateOrToday(input.JoinDate)
	if err != nil {
		return nil, err
	}
	if err := s.requireStudent(ctx, id); err != nil {
		return nil, err
	}

	slot, err := s.store.TeacherCourses.GetByID(ctx, input.TeacherCourseID)
	if err != nil {
		return nil, err
	}
	if slot == nil {
		return nil, ErrTeacherCourseNotFound
	}

	row := &models.StudentCourse{StudentID: id, TeacherCourseID: slot.ID, JoinDate: joined}
	if err := s.store.StudentCourses.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// PayFees records a fee payment as a revenue row
func (s *StudentService) PayFees(ctx context.Context, id uint, input *FeeInput) (*models.Revenue, error) {
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	date, err := dateOrToday(input.Date)
	if err != nil {
		return nil, err
	}
	if err := s.requireStudent(ctx, id); err != nil {
		return nil, err
	}

	methodID := input.PaymentMethodID
	if methodID == 0 {
		prefs, err := s.store.PaymentPreferences.For(domain.SourceStudent).ListByOwner(ctx, id)
		if err != nil {
			return nil, err
		}
		if len(prefs) == 0 {
			return nil, ErrNoPaymentPreference
		}
		methodID = prefs[len(prefs)-1].PaymentMethodID
	}

	row := &models.Revenue{
		IncomeType:      models.IncomeTypeFees,
		Amount:          input.Amount,
		SourceID:        id,
		SourceType:      string(domain.SourceStudent),
		EmpID:           input.ReceivedBy,
		TransactionDate: date,
		PaymentMethodID: methodID,
		Notes:           input.Notes,
	}
	if err := s.store.Revenues.Create(ctx, row); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "fees paid", "student_id", id, "amount", input.Amount.String())
	return row, nil
}
