package repositories

import (
	"context"

	"eduhub-records/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Store groups every table adapter built on one database handle.
// A Store built on a transaction handle scopes all of its adapters to that transaction.
type Store struct {
	db *gorm.DB

	Master *MasterRepository

	// Employees
	Employees           *Table[models.Employee]
	EmployeeDetails     *Table[models.EmployeeDetails]
	EmployeeRoles       *Table[models.EmployeeRole]
	Permissions         *PermissionRepository
	Users               *Table[models.User]
	TeacherCourses      *Table[models.TeacherCourse]
	EmployeeAttendance  *Table[models.EmployeeAttendance]
	EmployeeEvaluations *Table[models.EmployeeEvaluation]
	Salaries            *Table[models.Salary]
	UserOperations      *Table[models.UserOperation]

	// Students
	Students           *Table[models.Student]
	StudentDetails     *Table[models.StudentDetails]
	StudentCourses     *Table[models.StudentCourse]
	StudentAttendance  *Table[models.StudentAttendance]
	StudentEvaluations *Table[models.StudentEvaluation]
	Homework           *Table[models.Homework]
	Exams              *Table[models.Exam]

	// Finance, scope with For(source)
	PaymentPreferences *Table[models.PaymentPreference]
	EWallets           *Table[models.EWallet]
	BankAccounts       *Table[models.BankAccount]
	BankChecks         *Table[models.BankCheck]
	Revenues           *Table[models.Revenue]

	Expenses  *Table[models.Expense]
	Analytics *AnalyticsRepository
}

// NewStore creates a store on the given handle
func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:     db,
		Master: NewMasterRepository(db),

		Employees:           NewTable[models.Employee](db, "id"),
		EmployeeDetails:     NewTable[models.EmployeeDetails](db, "emp_id"),
		EmployeeRoles:       NewTable[models.EmployeeRole](db, "emp_id"),
		Permissions:         NewPermissionRepository(db),
		Users:               NewTable[models.User](db, "emp_id"),
		TeacherCourses:      NewTable[models.TeacherCourse](db, "teacher_id"),
		EmployeeAttendance:  NewTable[models.EmployeeAttendance](db, "emp_id"),
		EmployeeEvaluations: NewTable[models.EmployeeEvaluation](db, "emp_id"),
		Salaries:            NewTable[models.Salary](db, "emp_id"),
		UserOperations:      NewTable[models.UserOperation](db, "emp_id"),

		Students:           NewTable[models.Student](db, "id"),
		StudentDetails:     NewTable[models.StudentDetails](db, "student_id"),
		StudentCourses:     NewTable[models.StudentCourse](db, "student_id"),
		StudentAttendance:  NewTable[models.StudentAttendance](db, "student_id"),
		StudentEvaluations: NewTable[models.StudentEvaluation](db, "student_id"),
		Homework:           NewTable[models.Homework](db, "student_id"),
		Exams:              NewTable[models.Exam](db, "student_id"),

		PaymentPreferences: NewTable[models.PaymentPreference](db, "source_id"),
		EWallets:           NewTable[models.EWallet](db, "source_id"),
		BankAccounts:       NewTable[models.BankAccount](db, "source_id"),
		BankChecks:         NewTable[models.BankCheck](db, "source_id"),
		Revenues:           NewTable[models.Revenue](db, "source_id"),

		Expenses:  NewTable[models.Expense](db, "emp_id"),
		Analytics: NewAnalyticsRepository(db),
	}
}

// DB returns the underlying handle
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Transaction runs fn against a store bound to a single transaction.
// Returning an error from fn rolls every write back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}
