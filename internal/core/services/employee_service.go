package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/adapters/persistence/repositories"
	"eduhub-records/internal/core/domain"
	"eduhub-records/internal/pkg/password"

	"github.com/shopspring/decimal"
)

// Employee service errors
var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrNoPaymentPreference = errors.New("no payment preference on record")
)

// EmployeeService orchestrates the employee aggregate across its tables
type EmployeeService struct {
	store        *repositories.Store
	events       EventPublisher
	log          *slog.Logger
	passwordCost int
}

// NewEmployeeService creates a new employee service
func NewEmployeeService(store *repositories.Store, events EventPublisher, log *slog.Logger) *EmployeeService {
	if events == nil {
		events = NopPublisher{}
	}
	return &EmployeeService{
		store:        store,
		events:       events,
		log:          log.With("service", "employee"),
		passwordCost: password.DefaultCost,
	}
}

// SetPasswordCost overrides the bcrypt cost used for credentials
func (s *EmployeeService) SetPasswordCost(cost int) {
	s.passwordCost = cost
}

// ============================================================
// Inputs
// ============================================================

// EmployeeDetailsInput is the employee_details payload
type EmployeeDetailsInput struct {
	Address       string          `json:"address"`
	NationalityID uint            `json:"nationality_id"`
	GovernorateID uint            `json:"governorate_id"`
	Email         string          `json:"email"`
	PhoneNumber   string          `json:"phone_number"`
	Qualification string          `json:"qualification"`
	Documents     string          `json:"documents"`
	Salary        decimal.Decimal `json:"salary"`
}

// CredentialsInput is the login of an access role
type CredentialsInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *CredentialsInput) empty() bool {
	return c == nil || (strings.TrimSpace(c.Username) == "" && c.Password == "")
}

// TeacherCourseInput is the weekly slot assigned to a teacher
type TeacherCourseInput struct {
	CourseID    uint            `json:"course_id"`
	ClassRoomID uint            `json:"class_room_id"`
	DayOfWeek   string          `json:"day_of_week"`
	StartTime   string          `json:"start_time"`
	EndTime     string          `json:"end_time"`
	Fees        decimal.Decimal `json:"fees"`
}

// CreateEmployeeInput bundles every payload of a new employee
type CreateEmployeeInput struct {
	RoleName string               `json:"role_name"`
	RoleID   uint                 `json:"role_id"` // zero resolves RoleName from the roles table
	Core     PersonInput          `json:"core"`
	Details  EmployeeDetailsInput `json:"details"`
	PaymentInput
	Credentials *CredentialsInput   `json:"credentials,omitempty"`
	Course      *TeacherCourseInput `json:"course,omitempty"`
}

// EmployeeDetailsPatch updates employee_details columns
type EmployeeDetailsPatch struct {
	Address       *string          `json:"address"`
	NationalityID *uint            `json:"nationality_id"`
	GovernorateID *uint            `json:"governorate_id"`
	Email         *string          `json:"email"`
	PhoneNumber   *string          `json:"phone_number"`
	Qualification *string          `json:"qualification"`
	Documents     *string          `json:"documents"`
	Salary        *decimal.Decimal `json:"salary"`
}

func (p *EmployeeDetailsPatch) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p == nil {
		return fields
	}
	setString(fields, "address", p.Address)
	setUint(fields, "nationality_id", p.NationalityID)
	setUint(fields, "governorate_id", p.GovernorateID)
	setString(fields, "email", p.Email)
	setString(fields, "phone_number", p.PhoneNumber)
	setString(fields, "qualification", p.Qualification)
	setString(fields, "documents", p.Documents)
	setDecimal(fields, "salary", p.Salary)
	return fields
}

// RolePatch reassigns the employee role
type RolePatch struct {
	RoleID *uint `json:"role_id"`
}

// PermissionPatch updates the capability set of the employee's current role
type PermissionPatch struct {
	Add       *bool `json:"add"`
	Edit      *bool `json:"edit"`
	Delete    *bool `json:"delete"`
	View      *bool `json:"view"`
	Print     *bool `json:"print"`
	Customize *bool `json:"customize"`
}

func (p *PermissionPatch) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p == nil {
		return fields
	}
	setBool(fields, "addition", p.Add)
	setBool(fields, "edition", p.Edit)
	setBool(fields, "deletion", p.Delete)
	setBool(fields, "view", p.View)
	setBool(fields, "print", p.Print)
	setBool(fields, "customize", p.Customize)
	return fields
}

// CredentialsPatch updates the login, the password is hashed before storing
type CredentialsPatch struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
}

// TeacherCoursePatch updates a teacher slot, a zero ID targets every slot of the teacher
type TeacherCoursePatch struct {
	ID          uint             `json:"id"`
	CourseID    *uint            `json:"course_id"`
	ClassRoomID *uint            `json:"class_room_id"`
	DayOfWeek   *string          `json:"day_of_week"`
	StartTime   *string          `json:"start_time"`
	EndTime     *string          `json:"end_time"`
	Fees        *decimal.Decimal `json:"fees"`
}

func (p *TeacherCoursePatch) fields() map[string]interface{} {
	fields := map[string]interface{}{}
	if p == nil {
		return fields
	}
	setUint(fields, "course_id", p.CourseID)
	setUint(fields, "class_room_id", p.ClassRoomID)
	setString(fields, "day_of_week", p.DayOfWeek)
	setString(fields, "start_time", p.StartTime)
	setString(fields, "end_time", p.EndTime)
	setDecimal(fields, "fees", p.Fees)
	return fields
}

// UpdateEmployeeInput holds the gated update payloads. A gate runs only when its payload is non-empty.
type UpdateEmployeeInput struct {
	IsInfoMaster  bool `json:"is_info_master"`
	IsDetails     bool `json:"is_details"`
	IsRole        bool `json:"is_role"`
	IsPayment     bool `json:"is_payment"`
	IsInfoPayment bool `json:"is_info_payment"`
	IsPermission  bool `json:"is_permission"`
	IsUsers       bool `json:"is_users"`
	IsTeacher     bool `json:"is_teacher"`

	Core    *PersonPatch          `json:"core,omitempty"`
	Details *EmployeeDetailsPatch `json:"details,omitempty"`
	Role    *RolePatch            `json:"role,omitempty"`
	PaymentPatches
	Permission  *PermissionPatch    `json:"permission,omitempty"`
	Credentials *CredentialsPatch   `json:"credentials,omitempty"`
	Course      *TeacherCoursePatch `json:"course,omitempty"`
}

// DeleteEmployeeInput selects the deletion fan-out
type DeleteEmployeeInput struct {
	IsTeacher bool `json:"is_teacher" query:"teacher"`
	IsManager bool `json:"is_manager" query:"manager"`
}

// ============================================================
// Views
// ============================================================

// EmployeeView is the denormalized snapshot of an employee
type EmployeeView struct {
	models.Employee
	Details  *models.EmployeeDetails `json:"details,omitempty"`
	RoleID   uint                    `json:"role_id,omitempty"`
	RoleName string                  `json:"role_name,omitempty"`
	PaymentView
	Permissions *domain.PermissionSet        `json:"permissions,omitempty"`
	Username    string                       `json:"username,omitempty"`
	Courses     []*models.TeacherCourse      `json:"courses,omitempty"`
	Salaries    []*models.Salary             `json:"salaries,omitempty"`
	Evaluation  []*models.EmployeeEvaluation `json:"evaluation,omitempty"`
	Attendance  []*models.EmployeeAttendance `json:"attendance,omitempty"`
}

// EmployeeSummary is the list projection of an employee
type EmployeeSummary struct {
	ID          uint   `json:"id"`
	FullName    string `json:"full_name"`
	NationalID  string `json:"national_id"`
	Gender      string `json:"gender"`
	Email       string `json:"email,omitempty"`
	PhoneNumber string `json:"phone_number,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Governorate string `json:"governorate,omitempty"`
	Role        string `json:"role,omitempty"`
}

// ============================================================
// Create
// ============================================================

// Create provisions a new employee across its tables in one transaction.
// A false outcome means a policy or lookup step failed and nothing was kept.
func (s *EmployeeService) Create(ctx context.Context, input *CreateEmployeeInput) (out *Outcome, err error) {
	start := time.Now()
	defer func() { logOutcome(ctx, s.log, "employee.create", start, out, err) }()

	birthday, gender, err := input.Core.parse()
	if err != nil {
		return nil, err
	}

	kind := domain.ParseRoleKind(input.RoleName)
	if kind.HasSystemAccess() && !input.Credentials.empty() {
		if err := password.Validate(input.Credentials.Password); err != nil {
			return nil, err
		}
	}

	out = &Outcome{}
	out.Record(stepRolePolicy, kind != domain.RoleUnknown)
	instrument := domain.ResolveInstrument(input.PaymentType)
	out.Record(stepPaymentInstrument, instrument != domain.InstrumentUnknown)
	if !out.OK() {
		return out, nil
	}

	out, err = atomically(ctx, s.store, out, "employee.create", func(tx *repositories.Store) error {
		emp := &models.Employee{
			FullName:   input.Core.FullName,
			NationalID: input.Core.NationalID,
			Birthday:   birthday,
			Gender:     string(gender),
			IDPhoto:    input.Core.IDPhoto,
			Photo:      input.Core.Photo,
		}
		if err := out.write(stepCore, tx.Employees.Create(ctx, emp)); err != nil {
			return fmt.Errorf("create employee: %w", err)
		}
		out.ID = emp.ID

		details := &models.EmployeeDetails{
			EmpID:         emp.ID,
			Address:       input.Details.Address,
			NationalityID: input.Details.NationalityID,
			GovernorateID: input.Details.GovernorateID,
			Email:         input.Details.Email,
			PhoneNumber:   input.Details.PhoneNumber,
			Qualification: input.Details.Qualification,
			Documents:     input.Details.Documents,
			Salary:        input.Details.Salary,
		}
		if err := out.write(stepDetails, tx.EmployeeDetails.Create(ctx, details)); err != nil {
			return fmt.Errorf("create employee details: %w", err)
		}

		roleID, err := resolveRoleID(ctx, tx, input.RoleID, kind)
		if err != nil {
			return err
		}
		if roleID == 0 {
			out.Record(stepRole, false)
			return nil
		}
		role := &models.EmployeeRole{EmpID: emp.ID, RoleID: roleID}
		if err := out.write(stepRole, tx.EmployeeRoles.Create(ctx, role)); err != nil {
			return fmt.Errorf("create employee role: %w", err)
		}

		switch {
		case kind.HasSystemAccess():
			if err := s.grantAccess(ctx, tx, out, emp.ID, roleID, kind, input.Credentials); err != nil {
				return err
			}
		case kind.RequiresCourse():
			if input.Course == nil {
				out.Record(stepCourse, false)
				return nil
			}
			slot := &models.TeacherCourse{
				TeacherID:   emp.ID,
				CourseID:    input.Course.CourseID,
				ClassRoomID: input.Course.ClassRoomID,
				DayOfWeek:   input.Course.DayOfWeek,
				StartTime:   input.Course.StartTime,
				EndTime:     input.Course.EndTime,
				Fees:        input.Course.Fees,
			}
			if err := out.write(stepCourse, tx.TeacherCourses.Create(ctx, slot)); err != nil {
				return fmt.Errorf("create teacher course: %w", err)
			}
		}

		return createPayment(ctx, tx, out, domain.SourceEmployee, emp.ID, instrument, &input.PaymentInput)
	})
	if err == nil && out.OK() {
		s.events.Publish(ctx, newEvent(EventEmployeeCreated, out.ID))
	}
	return out, err
}

// grantAccess stores the role permission preset and the login, skipped without credentials
func (s *EmployeeService) grantAccess(
	ctx context.Context,
	tx *repositories.Store,
	out *Outcome,
	empID, roleID uint,
	kind domain.RoleKind,
	creds *CredentialsInput,
) error {
	if creds.empty() {
		return nil
	}
	set, _ := kind.Permissions()
	if err := out.write(stepPermissions, tx.Permissions.Upsert(ctx, models.NewPermission(roleID, set))); err != nil {
		return fmt.Errorf("upsert permissions: %w", err)
	}

	hashed, err := password.HashWithCost(creds.Password, s.passwordCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{EmpID: empID, Username: creds.Username, Password: hashed}
	if err := out.write(stepCredentials, tx.Users.Create(ctx, user)); err != nil {
		return fmt.Errorf("create credentials: %w", err)
	}
	return nil
}

func resolveRoleID(ctx context.Context, tx *repositories.Store, roleID uint, kind domain.RoleKind) (uint, error) {
	if roleID != 0 {
		return roleID, nil
	}
	role, err := tx.Master.RoleByName(ctx, kind.String())
	if err != nil || role == nil {
		return 0, err
	}
	return role.ID, nil
}

// ============================================================
// Update
// ============================================================

// Update applies every gated patch of an employee in one transaction
func (s *EmployeeService) Update(ctx context.Context, id uint, input *UpdateEmployeeInput) (out *Outcome, err error) {
	start := time.Now()
	defer func() { logOutcome(ctx, s.log, "employee.update", start, out, err) }()

	emp, err := s.store.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}

	out = &Outcome{ID: id}
	out, err = atomically(ctx, s.store, out, "employee.update", func(tx *repositories.Store) error {
		if input.IsInfoMaster {
			fields, err := input.Core.fields()
			if err != nil {
				return err
			}
			if len(fields) > 0 {
				if err := out.write(stepCore, tx.Employees.UpdateByID(ctx, id, fields)); err != nil {
					return err
				}
			}
		}

		if input.IsDetails {
			if fields := input.Details.fields(); len(fields) > 0 {
				if err := out.write(stepDetails, tx.EmployeeDetails.UpdateByOwner(ctx, id, fields)); err != nil {
					return err
				}
			}
		}

		if input.IsRole && input.Role != nil && input.Role.RoleID != nil {
			fields := map[string]interface{}{"role_id": *input.Role.RoleID}
			if err := out.write(stepRole, tx.EmployeeRoles.UpdateByOwner(ctx, id, fields)); err != nil {
				return err
			}
		}

		if err := updatePayment(ctx, tx, out, domain.SourceEmployee, id,
			input.IsPayment, input.IsInfoPayment, &input.PaymentPatches); err != nil {
			return err
		}

		if input.IsPermission {
			if fields := input.Permission.fields(); len(fields) > 0 {
				role, err := tx.EmployeeRoles.GetByOwner(ctx, id)
				if err != nil {
					return err
				}
				if role == nil {
					out.Record(stepPermissions, false)
				} else if err := out.write(stepPermissions, tx.Permissions.UpdateByOwner(ctx, role.RoleID, fields)); err != nil {
					return err
				}
			}
		}

		if input.IsUsers && input.Credentials != nil {
			fields := map[string]interface{}{}
			setString(fields, "username", input.Credentials.Username)
			if input.Credentials.Password != nil {
				if err := password.Validate(*input.Credentials.Password); err != nil {
					return err
				}
				hashed, err := password.HashWithCost(*input.Credentials.Password, s.passwordCost)
				if err != nil {
					return fmt.Errorf("hash password: %w", err)
				}
				fields["password"] = hashed
			}
			if len(fields) > 0 {
				if err := out.write(stepCredentials, tx.Users.UpdateByOwner(ctx, id, fields)); err != nil {
					return err
				}
			}
		}

		if input.IsTeacher {
			if fields := input.Course.fields(); len(fields) > 0 {
				if err := updateOwned(ctx, tx.TeacherCourses, out, stepCourse, input.Course.ID, id, fields); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err == nil && out.OK() {
		s.events.Publish(ctx, newEvent(EventEmployeeUpdated, id))
	}
	return out, err
}

// ============================================================
// Delete
// ============================================================

// Delete removes an employee using the teacher fan-out, the manager fan-out, or both.
// With neither gate set nothing is touched and the outcome is false.
func (s *EmployeeService) Delete(ctx context.Context, id uint, input DeleteEmployeeInput) (out *Outcome, err error) {
	start := time.Now()
	defer func() { logOutcome(ctx, s.log, "employee.delete", start, out, err) }()

	out = &Outcome{ID: id}
	if !input.IsTeacher && !input.IsManager {
		out.Record(stepDeleteGate, false)
		return out, nil
	}

	out, err = atomically(ctx, s.store, out, "employee.delete", func(tx *repositories.Store) error {
		if input.IsTeacher {
			slots, err := tx.TeacherCourses.ListByOwner(ctx, id)
			if err != nil {
				return err
			}
			slotIDs := make([]uint, len(slots))
			for i, slot := range slots {
				slotIDs[i] = slot.ID
			}
			if err := out.write("student_courses", tx.StudentCourses.DeleteIn(ctx, "teacher_course_id", slotIDs)); err != nil {
				return err
			}
			if err := out.write("teacher_courses", tx.TeacherCourses.DeleteByOwner(ctx, id)); err != nil {
				return err
			}
		}
		if input.IsManager {
			if err := out.write(stepCredentials, tx.Users.DeleteByOwner(ctx, id)); err != nil {
				return err
			}
		}

		dependents := []struct {
			name string
			run  func(context.Context, uint) error
		}{
			{stepDetails, tx.EmployeeDetails.DeleteByOwner},
			{stepRole, tx.EmployeeRoles.DeleteByOwner},
			{"attendance", tx.EmployeeAttendance.DeleteByOwner},
			{"evaluation", tx.EmployeeEvaluations.DeleteByOwner},
			{"salaries", tx.Salaries.DeleteByOwner},
		}
		for _, d := range dependents {
			if err := out.write(d.name, d.run(ctx, id)); err != nil {
				return err
			}
		}
		if err := deletePayment(ctx, tx, out, domain.SourceEmployee, id); err != nil {
			return err
		}
		return out.write(stepCore, tx.Employees.DeleteByID(ctx, id))
	})
	if err == nil && out.OK() {
		s.events.Publish(ctx, newEvent(EventEmployeeDeleted, id))
	}
	return out, err
}

// ============================================================
// Read
// ============================================================

// Get assembles the employee view, absent dependents are skipped
func (s *EmployeeService) Get(ctx context.Context, id uint) (*EmployeeView, error) {
	emp, err := s.store.Employees.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, ErrEmployeeNotFound
	}

	view := &EmployeeView{Employee: *emp}

	if view.Details, err = s.store.EmployeeDetails.GetByOwner(ctx, id); err != nil {
		return nil, err
	}

	role, err := s.store.EmployeeRoles.GetByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if role != nil {
		view.RoleID = role.RoleID
		if view.RoleName, err = s.store.Master.RoleName(ctx, role.RoleID); err != nil {
			return nil, err
		}
		perm, err := s.store.Permissions.GetByOwner(ctx, role.RoleID)
		if err != nil {
			return nil, err
		}
		if perm != nil {
			set := perm.Set()
			view.Permissions = &set
		}
	}

	if view.PaymentView, err = loadPayment(ctx, s.store, domain.SourceEmployee, id); err != nil {
		return nil, err
	}

	user, err := s.store.Users.GetByOwner(ctx, id)
	if err != nil {
		return nil, err
	}
	if user != nil {
		view.Username = user.Username
	}

	if view.Courses, err = s.store.TeacherCourses.ListByOwner(ctx, id); err != nil {
		return nil, err
	}
	if view.Salaries, err = s.store.Salaries.ListByOwner(ctx, id); err != nil {
		return nil, err
	}
	if view.Evaluation, err = s.store.EmployeeEvaluations.ListByOwner(ctx, id); err != nil {
		return nil, err
	}
	if view.Attendance, err = s.store.EmployeeAttendance.ListByOwner(ctx, id); err != nil {
		return nil, err
	}
	return view, nil
}

// List lists employee summaries with their lookup names resolved
func (s *EmployeeService) List(ctx context.Context, offset, limit int) ([]*EmployeeSummary, int64, error) {
	employees, total, err := s.store.Employees.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]*EmployeeSummary, len(employees))
	for i, emp := range employees {
		summary := &EmployeeSummary{
			ID:         emp.ID,
			FullName:   emp.FullName,
			NationalID: emp.NationalID,
			Gender:     emp.Gender,
		}

		details, err := s.store.EmployeeDetails.GetByOwner(ctx, emp.ID)
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

		role, err := s.store.EmployeeRoles.GetByOwner(ctx, emp.ID)
		if err != nil {
			return nil, 0, err
		}
		if role != nil {
			if summary.Role, err = s.store.Master.RoleName(ctx, role.RoleID); err != nil {
				return nil, 0, err
			}
		}
		summaries[i] = summary
	}
	return summaries, total, nil
}
