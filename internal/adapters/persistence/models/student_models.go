package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Student represents students table (core identity)
type Student struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	FullName   string    `gorm:"size:150;not null" json:"full_name"`
	NationalID string    `gorm:"uniqueIndex;size:20;not null" json:"national_id"`
	Birthday   time.Time `gorm:"type:date;not null" json:"birthday"`
	Gender     string    `gorm:"size:6;not null;check:gender IN ('male','female')" json:"gender"`
	IDPhoto    string    `gorm:"size:255" json:"id_photo"`
	Photo      string    `gorm:"size:255" json:"photo"`
}

func (Student) TableName() string {
	return "students"
}

// StudentDetails represents student_details table
type StudentDetails struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	StudentID     uint            `gorm:"uniqueIndex;not null" json:"student_id"`
	Address       string          `gorm:"size:255" json:"address"`
	NationalityID uint            `gorm:"index" json:"nationality_id"`
	GovernorateID uint            `gorm:"index" json:"governorate_id"`
	Email         string          `gorm:"uniqueIndex;size:100;not null" json:"email"`
	PhoneNumber   string          `gorm:"uniqueIndex;size:20;not null" json:"phone_number"`
	Fees          decimal.Decimal `gorm:"type:decimal(12,2)" json:"fees"`
}

func (StudentDetails) TableName() string {
	return "student_details"
}

// StudentCourse represents student_courses table, enrollment into a teacher course slot
type StudentCourse struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	StudentID       uint      `gorm:"uniqueIndex:idx_student_courses_slot;not null" json:"student_id"`
	TeacherCourseID uint      `gorm:"uniqueIndex:idx_student_courses_slot;not null" json:"teacher_course_id"`
	JoinDate        time.Time `gorm:"type:date;not null" json:"join_date"`
}

func (StudentCourse) TableName() string {
	return "student_courses"
}

// StudentAttendance represents attendance_student table
type StudentAttendance struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID uint      `gorm:"index;not null" json:"student_id"`
	Type      string    `gorm:"size:3;not null" json:"type"`
	Time      time.Time `gorm:"index;not null" json:"time"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (StudentAttendance) TableName() string {
	return "attendance_student"
}

// StudentEvaluation represents evaluation_student table
type StudentEvaluation struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	StudentID      uint      `gorm:"index;not null" json:"student_id"`
	EvaluationType string    `gorm:"size:50;not null" json:"evaluation_type"`
	Rating         int       `gorm:"not null" json:"rating"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (StudentEvaluation) TableName() string {
	return "evaluation_student"
}

// Homework represents homework table, one graded submission per row
type Homework struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	StudentID   uint            `gorm:"index;not null" json:"student_id"`
	CourseID    uint            `gorm:"index;not null" json:"course_id"`
	TeacherID   uint            `gorm:"index;not null" json:"teacher_id"`
	ClassRoomID uint            `gorm:"not null" json:"class_room_id"`
	FilePDF     string          `gorm:"column:file_pdf;size:255" json:"file_pdf"`
	Grade       decimal.Decimal `gorm:"type:decimal(5,2)" json:"grade"`
	FinalGrade  decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"final_grade"`
	Date        time.Time       `gorm:"type:date;not null" json:"date"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Homework) TableName() string {
	return "homework"
}

// Exam represents exams table, one exam result per row
type Exam struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	StudentID   uint            `gorm:"index;not null" json:"student_id"`
	CourseID    uint            `gorm:"index;not null" json:"course_id"`
	TeacherID   uint            `gorm:"index;not null" json:"teacher_id"`
	ClassRoomID uint            `gorm:"not null" json:"class_room_id"`
	Grade       decimal.Decimal `gorm:"type:decimal(5,2)" json:"grade"`
	FinalGrade  decimal.Decimal `gorm:"type:decimal(5,2);not null" json:"final_grade"`
	FullTime    int             `gorm:"not null" json:"full_time"`
	StartTime   string          `gorm:"size:5;not null" json:"start_time"`
	EndTime     string          `gorm:"size:5;not null" json:"end_time"`
	FilePDF     string          `gorm:"column:file_pdf;size:255" json:"file_pdf"`
	Date        time.Time       `gorm:"type:date;not null" json:"date"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
}

func (Exam) TableName() string {
	return "exams"
}
