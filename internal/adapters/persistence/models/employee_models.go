package models

import (
	"time"

	"eduhub-records/internal/core/domain"

	"github.com/shopspring/decimal"
)

// Employee represents employees table (core identity)
type Employee struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FullName   string    `gorm:"size:150;not null" json:"full_name"`
	NationalID string    `gorm:"uniqueIndex;size:20;not null" json:"national_id"`
	Birthday   time.Time `gorm:"type:date;not null" json:"birthday"`
	Gender     string    `gorm:"size:6;not null;check:gender IN ('male','female')" json:"gender"`
	IDPhoto    string    `gorm:"size:255" json:"id_photo"`
	Photo      string    `gorm:"size:255" json:"photo"`
}

func (Employee) TableName() string {
	return "employees"
}

// EmployeeDetails represents employee_details table (one-to-one with employees)
type EmployeeDetails struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	EmpID         uint            `gorm:"uniqueIndex;not null" json:"emp_id"`
	Address       string          `gorm:"size:255" json:"address"`
	NationalityID uint            `gorm:"index" json:"nationality_id"`
	GovernorateID uint            `gorm:"index" json:"governorate_id"`
	Email         string          `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PhoneNumber   string          `gorm:"uniqueIndex;size:20;not null" json:"phone_number"`
	Qualification string          `gorm:"size:150" json:"qualification"`
	Documents     string          `gorm:"size:255" json:"documents"`
	Salary        decimal.Decimal `gorm:"type:decimal(12,2)" json:"salary"`
}

func (EmployeeDetails) TableName() string {
	return "employee_details"
}

// EmployeeRole represents employee_roles table, one active role per employee
type EmployeeRole struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EmpID     uint      `gorm:"uniqueIndex;not null" json:"emp_id"`
	RoleID    uint      `gorm:"index;not null" json:"role_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (EmployeeRole) TableName() string {
	return "employee_roles"
}

// Permission represents permissions table, one capability set per role
type Permission struct {
	ID        uint `gorm:"primaryKey" json:"id"`
	RoleID    uint `gorm:"uniqueIndex;not null" json:"role_id"`
	Addition  bool `gorm:"not null" json:"addition"`
	Edition   bool `gorm:"not null" json:"edition"`
	Deletion  bool `gorm:"not null" json:"deletion"`
	View      bool `gorm:"not null" json:"view"`
	Print     bool `gorm:"not null" json:"print"`
	Customize bool `gorm:"not null" json:"customize"`
}

func (Permission) TableName() string {
	return "permissions"
}

// NewPermission builds the permissions row of a role from a capability set
func NewPermission(roleID uint, set domain.PermissionSet) *Permission {
	return &Permission{
		RoleID:    roleID,
		Addition:  set.Add,
		Edition:   set.Edit,
		Deletion:  set.Delete,
		View:      set.View,
		Print:     set.Print,
		Customize: set.Customize,
	}
}

// Set returns the capability set stored in the row
func (p *Permission) Set() domain.PermissionSet {
	return domain.PermissionSet{
		Add:       p.Addition,
		Edit:      p.Edition,
		Delete:    p.Deletion,
		View:      p.View,
		Print:     p.Print,
		Customize: p.Customize,
	}
}

// User represents users table (login credentials of an employee)
type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	EmpID    uint   `gorm:"uniqueIndex;not null" json:"emp_id"`
	Username string `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// TeacherCourse represents teacher_courses table, a weekly recurring slot
type TeacherCourse struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	TeacherID   uint            `gorm:"index;not null" json:"teacher_id"`
	CourseID    uint            `gorm:"index;not null" json:"course_id"`
	ClassRoomID uint            `gorm:"index;not null" json:"class_room_id"`
	DayOfWeek   string          `gorm:"size:10;not null" json:"day_of_week"`
	StartTime   string          `gorm:"size:5;not null" json:"start_time"`
	EndTime     string          `gorm:"size:5;not null" json:"end_time"`
	Fees        decimal.Decimal `gorm:"type:decimal(12,2)" json:"fees"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (TeacherCourse) TableName() string {
	return "teacher_courses"
}

// EmployeeAttendance represents attendance_employee table
type EmployeeAttendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	EmpID     uint      `gorm:"index;not null" json:"emp_id"`
	Type      string    `gorm:"size:3;not null" json:"type"`
	Time      time.Time `gorm:"index;not null" json:"time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (EmployeeAttendance) TableName() string {
	return "attendance_employee"
}

// EmployeeEvaluation represents evaluation_employee table
type EmployeeEvaluation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	EmpID          uint      `gorm:"index;not null" json:"emp_id"`
	EvaluationType string    `gorm:"size:50;not null" json:"evaluation_type"`
	Rating         int       `gorm:"not null" json:"rating"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (EmployeeEvaluation) TableName() string {
	return "evaluation_employee"
}

// Salary represents salaries table
type Salary struct {
	ID                  uint            `gorm:"primaryKey" json:"id"`
	EmpID               uint            `gorm:"index;not null" json:"emp_id"`
	PaymentPreferenceID uint            `gorm:"not null" json:"payment_preference_id"`
	Salary              decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"salary"`
	Amount              decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Discounts           decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"discounts"`
	Date                time.Time       `gorm:"not null" json:"date"`
}

func (Salary) TableName() string {
	return "salaries"
}

// UserOperation represents user_operation table, the audit trail of committed writes.
// EmpID is the operator, nil when the caller did not identify itself.
type UserOperation struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	EmpID         *uint     `gorm:"index" json:"emp_id,omitempty"`
	OperationType string    `gorm:"size:50;not null" json:"operation_type"`
	Details       string    `gorm:"type:text" json:"details"`
	Date          time.Time `gorm:"not null" json:"date"`
}

func (UserOperation) TableName() string {
	return "user_operation"
}
