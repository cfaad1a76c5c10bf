package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/adapters/persistence/repositories"
	"eduhub-records/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Student service errors
var (
	ErrStudentNotFound       = errors.New("student not found")
	ErrTeacherCourseNotFound = errors.New("teacher course not found")
)

// StudentService orchestrates the student aggregate across its tables
type StudentService struct {
	store  *repositories.Store
	events EventPublisher
	log    *slog.Logger
}

// NewStudentService creates a new student service
func NewStudentService(store *repositories.Store, events EventPublisher, log *slog.Logger) *StudentService {
	if events == nil {
		events = NopPublisher{}
	}
	return &StudentService{
		store:  store,
		events: events,
		log:    log.With("service", "student"),
	}
}

// StudentDetailsInput is the student_details payload
type StudentDetailsInput struct {
	Address       string          `json:"address"`
	NationalityID uint            `json:"nationality_id"`
	GovernorateID uint            `json:"governorate_id"`
	Email         string          `json:"email"`
	PhoneNumber   string          `json:"phone_number"`
	Fees          decimal.Decimal `json:"fees"`
}

// StudentCourseInput enrolls a student into an existing teacher course slot
type StudentCourseInput struct {
	TeacherCourseID uint   `json:"teacher_course_id"`
	JoinDate        string `json:"join_date"` // YYYY-MM-DD, defaults to today
}

// CreateStudentInput bundles every payload of a new student
type CreateStudentInput struct {
	Core    PersonInput         `json:"core"`
	Details StudentDetailsInput `json:"details"`
	Course  *StudentCourseInput `json:"course,omitempty"`
	PaymentInput
}

// StudentDetailsPatch updates student_details columns
type StudentDetailsPatch struct {
	Address       *string          `json:"address"`
	NationalityID *uint            `json:"nationality_id"`
	GovernorateID *uint            `json:"governorate_id"`
	Email         *string          `json:"email"`
	PhoneNumber   *string          `json:"phone_number"`
	Fees          *decimal.Decimal `json:"fees"`
}

func (p *StudentDetailsPatch) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p == nil {
		return fields
	}
	setString(fields, "address", p.Address)
	setUint(fields, "nationality_id", p.NationalityID)
	setUint(fields, "governorate_id", p.GovernorateID)
	setString(fields, "email", p.Email)
	setString(fields, "phone_number", p.PhoneNumber)
	setDecimal(fields, "fees", p.Fees)
	return fields
}

// StudentCoursePatch moves an enrollment to another slot or changes its join date
type StudentCoursePatch struct {
	ID              uint    `json:"id"` // zero targets every enrollment of the student
	TeacherCourseID *uint   `json:"teacher_course_id"`
	JoinDate        *string `json:"join_date"`
}

func (p *StudentCoursePatch) fields() (map[string]interface{}, error) {
	fields := map[string]interface{}{}
	if p == nil {
		return fields, nil
	}
	setUint(fields, "teacher_course_id", p.TeacherCourseID)
	if p.JoinDate != nil {
		joined, err := parseDate(*p.JoinDate)
		if err != nil {
			return nil, err
		}
		fields["join_date"] = joined
	}
	return fields, nil
}

// UpdateStudentInput holds the gated update payloads
type UpdateStudentInput struct {
	IsInfoMaster  bool `json:"is_info_master"`
	IsDetails     bool `json:"is_details"`
	IsCourse      bool `json:"is_course"`
	IsPayment     bool `json:"is_payment"`
	IsInfoPayment bool `json:"is_info_payment"`

	Core    *PersonPatch         `json:"core,omitempty"`
	Details *StudentDetailsPatch `json:"details,omitempty"`
	Course  *StudentCoursePatch  `json:"course,omitempty"`
	PaymentPatches
}

// StudentView is the denormalized snapshot of a student
type StudentView struct {
	models.Student
	Details *models.StudentDetails  `json:"details,omitempty"`
	Courses []*models.StudentCourse `json:"courses,omitempty"`
	PaymentView
	Attendance []*models.StudentAttendance `json:"attendance,omitempty"`
	Evaluation []*models.StudentEvaluation `json:"evaluation,omitempty"`
	Homework   []*models.Homework          `json:"homework,omitempty"`
	Exams      []*models.Exam              `json:"exams,omitempty"`
	Fees       []*models.Revenue           `json:"fees,omitempty"`
}

// StudentSummary is the list projection of a student
type StudentSummary struct {
	ID          uint   `json:"id"`
	FullName    string `json:"full_name"`
	NationalID  string `json:"national_id"`
	Gender      string `json:"gender"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Governorate string `json:"governorate,omitempty"`
}

// Create provisions a new student across its tables in one transaction
func (s *StudentService) Create(ctx context.Context, input *CreateStudentInput) (out *Outcome, err error) {
	start := time.Now()
	defer func() { logOutcome(ctx, s.log, "student.create", start, out, err) }()

	birthday, gender, err := input.Core.parse()
	if err != nil {
		return nil, err
	}
	var joined time.Time
	if input.Course != nil {
		if joined, err = dateOrToday(input.Course.JoinDate); err != nil {
			return nil, err
		}
	}

	out = &Outcome{}
	instrument := domain.ResolveInstrument(input.PaymentType)
	out.Record(stepPaymentInstrument, instrument != domain.InstrumentUnknown)
	if !out.OK() {
		return out, nil
	}

	out, err = atomically(ctx, s.store, out, "student.create", func(tx *repositories.Store) error {
		student := &models.Student{
			FullName:   input.Core.FullName,
			NationalID: input.Core.NationalID,
			Birthday:   birthday,
			Gender:     string(gender),
			IDPhoto:    input.Core.IDPhoto,
			Photo:      input.Core.Photo,
		}
		if err := out.write(stepCore, tx.Students.Create(ctx, student)); err != nil {
			return fmt.Errorf("create student: %w", err)
		}
		out.ID = student.ID

		details := &models.StudentDetails{
			StudentID:     student.ID,
			Address:       input.Details.Address,
			NationalityID: input.Details.NationalityID,
			GovernorateID: input.Details.GovernorateID,
			Email:         input.Details.Email,
			PhoneNumber:   input.Details.PhoneNumber,
			Fees:          input.Details.Fees,
		}
		if err := out.write(stepDetails, tx.StudentDetails.Create(ctx, details)); err != nil {
			return fmt.Errorf("create student details: %w", err)
		}

		if input.Course != nil {
			if err := enroll(ctx, tx, out, student.ID, input.Course.TeacherCourseID, joined); err != nil {
				return err
			}
		}

		return createPayment(ctx, tx, out, domain.SourceStudent, student.ID, instrument, &input.PaymentInput)
	})
	if err == nil && out.OK() {
		s.events.Publish(ctx, newEvent(EventStudentCreated, out.ID))
	}
	return out, err
}

// enroll inserts a student course row when the teacher slot exists
func enroll(ctx context.Context, tx *repositories.Store, out *Outcome, studentID, slotID uint, joined time.Time) error {
	slot, err := tx.TeacherCourses.GetByID(ctx, slotID)
	if err != nil {
		return err
	}
	if slot == nil {
		out.Record(stepCourse, false)
		return nil
	}
	row := &models.StudentCourse{StudentID: studentID, TeacherCourseID: slot.ID, JoinDate: joined}
	if err := out.write(stepCourse, tx.StudentCourses.Create(ctx, row)); err != nil {
		return fmt.Errorf("create student course: %w", err)
	}
	return nil
}

// Update applies every gated patch of a student in one transaction
func (s *StudentService) Update(ctx context.Context, id uint, input *UpdateStudentInput) (out *Outcome, err error) {
	start := time.Now()
	defer func() { logOutcome(ctx, s.log, "student.update", start, out, err) }()

	if err := s.requireStudent(ctx, id); err != nil {
		return nil, err
	}

	out = &Outcome{ID: id}
	out, err = atomically(ctx, s.store, out, "student.update", func(tx *repositories.Store) error {
		if input.IsInfoMaster {
			fields, err := input.Core.fields()
			if err != nil {
				return err
			}
			if len(fields) > 0 {
				if err := out.write(stepCore, tx.Students.UpdateByID(ctx, id, fields)); err != nil {
					return err
				}
			}
		}

		if input.IsDetails {
			if fields := input.Details.fields(); len(fields) > 0 {
				if err := out.write(stepDetails, tx.StudentDetails.UpdateByOwner(ctx, id, fields)); err != nil {
					return err
				}
			}
		}

		if input.IsCourse {
			fields, err := input.Course.fields()
			if err != nil {
				return err
			}
			if len(fields) > 0 {
				if err := updateOwned(ctx, tx.StudentCourses, out, stepCourse, input.Course.ID, id, fields); err != nil {
					return err
				}
			}
		}

		return updatePayment(ctx, tx, out, domain.SourceStudent, id,
			input.IsPayment, input.IsInfoPayment, &input.PaymentPatches)
	})
	if err == nil && out.OK() {
		s.events.Publish(ctx, newEvent(EventStudentUpdated, id))
	}
	return out, err
}

// Delete removes a student and every dependent row. Fee revenues stay in the ledger.
func (s *StudentService) Delete(ctx context.Context, id uint) (out *Outcome, err error) {
	start := time.Now()
	defer func() { logOutcome(ctx, s.log, "student.delete", start, out, err) }()

	out = &Outcome{ID: id}
	out, err = atomically(ctx, s.store, out, "student.delete", func(tx *repositories.Store) error {
		dependents := []struct {
			name string
			run  func(context.Context, uint) error
		}{
			{stepDetails, tx.StudentDetails.DeleteByOwner},
			{stepCourse, tx.StudentCourses.DeleteByOwner},
			{"attendance", tx.StudentAttendance.DeleteByOwner},
			{"evaluation", tx.StudentEvaluations.DeleteByOwner},
			{"homework", tx.Homework.DeleteByOwner},
			{"exams", tx.Exams.DeleteByOwner},
		}
		for _, d := range dependents {
			if err := out.write(d.name, d.run(ctx, id)); err != nil {
				return err
			}
		}
		if err := deletePayment(ctx, tx, out, domain.SourceStudent, id); err != nil {
			return err
		}
		return out.write(stepCore, tx.Students.DeleteByID(ctx, id))
	})
	if err == nil && out.OK() {
		s.events.Publish(ctx, newEvent(EventStudentDeleted, id))
	}
	return out, err
}

// Get assembles the student view, absent dependents are skipped
func (s *StudentService) Get(ctx context.Context, id uint) (*StudentView, error) {
	student, err := s.store.Students.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if student == nil {
		return nil, ErrStudentNotFound
	}

	view := &StudentView{Student: *student}
	if view.Details, err = s.store.StudentDetails.GetByOwner(ctx, id); err != nil {
		return nil, err
	}
	if view.Courses, err = s.store.StudentCourses.ListByOwner(ctx, id); err != nil {
		return nil, err
	}
	if view.PaymentView, err = loadPayment(ctx, s.store, domain.SourceStudent, id); err != nil {
		return nil, err
	}
	if view.Attendance, err = s.store.StudentAttendance.ListByOwner(ctx, id); err != nil {
		return nil, err
	}
	if view.Evaluation, err = s.store.StudentEvaluations.ListByOwner(ctx, id); err != nil {
		return nil, err
	}
	if view.Homework, err = s.store.Homework.ListByOwner(ctx, id); err != nil {
		return nil, err
	}
	if view.Exams, err = s.store.Exams.ListByOwner(ctx, id); err != nil {
		return nil, err
	}
	if view.Fees, err = s.store.Revenues.For(domain.SourceStudent).ListByOwner(ctx, id); err != nil {
		return nil, err
	}
	return view, nil
}

// List lists student summaries with their lookup names resolved
func (s *StudentService) List(ctx context.Context, offset, limit int) ([]*StudentSummary, int64, error) {
	students, total, err := s.store.Students.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]*StudentSummary, len(students))
	for i, st := range students {
		summary := &StudentSummary{
			ID:         st.ID,
			FullName:   st.FullName,
			NationalID: st.NationalID,
			Gender:     st.Gender,
		}
		details, err := s.store.StudentDetails.GetByOwner(ctx, st.ID)
		if err != nil {
			return nil, 0, err
		}
		if details != nil {
			summary.Email = details.Email
			summary.PhoneNumber = details.PhoneNumber
			if summary.Nationality, err = s.store.Master.CountryName(ctx, details.NationalityID); err != nil {
				return nil, 0, err
			}
			if summary.Governorate, err = s.store.Master.GovernorateName(ctx, details.GovernorateID); err != nil {
				return nil, 0, err
			}
		}
		summaries[i] = summary
	}
	return summaries, total, nil
}

func (s *StudentService) requireStudent(ctx context.Context, id uint) error {
	student, err := s.store.Students.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if student == nil {
		return ErrStudentNotFound
	}
	return nil
}
