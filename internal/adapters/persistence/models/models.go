package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Lookup Tables (seeded vocabularies)
// ============================================================

// Country represents countries table, also used as nationality
type Country struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	CountryName string `gorm:"uniqueIndex;size:100;not null" json:"country_name"`
}

func (Country) TableName() string {
	return "countries"
}

// Governorate represents governorates table
type Governorate struct {
	ID              uint   `gorm:"primaryKey" json:"id"`
	CountryID       uint   `gorm:"index;not null" json:"country_id"`
	GovernorateName string `gorm:"size:100;not null" json:"governorate_name"`
}

func (Governorate) TableName() string {
	return "governorates"
}

// Role represents roles table
type Role struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	RoleName string `gorm:"uniqueIndex;size:50;not null" json:"role_name"`
}

func (Role) TableName() string {
	return "roles"
}

// PaymentMethod represents payment_methods table
type PaymentMethod struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	MethodName string `gorm:"uniqueIndex;size:50;not null" json:"method_name"`
}

func (PaymentMethod) TableName() string {
	return "payment_methods"
}

// Course represents courses table
type Course struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	CourseName string    `gorm:"size:100;not null" json:"course_name"`
	CourseCode string    `gorm:"uniqueIndex;size:20;not null" json:"course_code"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Course) TableName() string {
	return "courses"
}

// ClassRoom represents class_rooms table
type ClassRoom struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ClassroomName string `gorm:"size:100;not null" json:"classroom_name"`
	ClassroomCode string `gorm:"uniqueIndex;size:20;not null" json:"classroom_code"`
	Counter       int    `gorm:"default:0" json:"counter"`
}

func (ClassRoom) TableName() string {
	return "class_rooms"
}

// AutoMigrate runs auto migration for all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		// Lookups
		&Country{},
		&Governorate{},
		&Role{},
		&PaymentMethod{},
		&Course{},
		&ClassRoom{},

		// Employees
		&Employee{},
		&EmployeeDetails{},
		&EmployeeRole{},
		&Permission{},
		&User{},
		&TeacherCourse{},
		&EmployeeAttendance{},
		&EmployeeEvaluation{},
		&Salary{},
		&UserOperation{},

		// Students
		&Student{},
		&StudentDetails{},
		&StudentCourse{},
		&StudentAttendance{},
		&StudentEvaluation{},
		&Homework{},
		&Exam{},

		// Finance
		&PaymentPreference{},
		&EWallet{},
		&BankAccount{},
		&BankCheck{},
		&Revenue{},
		&Expense{},

		// Analytics
		&AttendanceAnalytics{},
	)
}
