package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func studentInput(nationalID, email, phone string) *CreateStudentInput {
	return &CreateStudentInput{
		Core: PersonInput{
			FullName:   "Student " + nationalID,
			NationalID: nationalID,
			Birthday:   "2010-09-01",
			Gender:     "female",
		},
		Details: StudentDetailsInput{
			Address:       "3 Nile Corniche",
			NationalityID: 1,
			GovernorateID: 2,
			Email:         email,
			PhoneNumber:   phone,
			Fees:          decimal.NewFromInt(1200),
		},
		PaymentInput: PaymentInput{PaymentType: "Cash"},
	}
}

func (f *fixture) teacherSlot(t *testing.T) *models.TeacherCourse {
	t.Helper()
	slot := &models.TeacherCourse{
		TeacherID:   1,
		CourseID:    1,
		ClassRoomID: 1,
		DayOfWeek:   "Tuesday",
		StartTime:   "14:00",
		EndTime:     "15:30",
		Fees:        decimal.NewFromInt(200),
	}
	require.NoError(t, f.store.TeacherCourses.Create(context.Background(), slot))
	return slot
}

func (f *fixture) student(t *testing.T) uint {
	t.Helper()
	out, err := f.students.Create(context.Background(), studentInput("31000000000001", "s1@eduhub.test", "0110000001"))
	require.NoError(t, err)
	require.True(t, out.OK(), out.Failed())
	return out.ID
}

func TestStudentCreate_WithCourse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	slot := f.teacherSlot(t)

	input := studentInput("31000000000001", "s1@eduhub.test", "0110000001")
	input.Course = &StudentCourseInput{TeacherCourseID: slot.ID, JoinDate: "2024-09-15"}

	out, err := f.students.Create(ctx, input)
	require.NoError(t, err)
	require.True(t, out.OK(), out.Failed())
	require.NotZero(t, out.ID)

	view, err := f.students.Get(ctx, out.ID)
	require.NoError(t, err)
	require.Equal(t, "Student 31000000000001", view.FullName)
	require.Equal(t, "female", view.Gender)
	require.Equal(t, "s1@eduhub.test", view.Details.Email)
	require.True(t, decimal.NewFromInt(1200).Equal(view.Details.Fees))
	require.Len(t, view.Courses, 1)
	require.Equal(t, slot.ID, view.Courses[0].TeacherCourseID)
	require.True(t, time.Date(2024, 9, 15, 0, 0, 0, 0, time.UTC).Equal(view.Courses[0].JoinDate))

	cash, err := f.store.Master.PaymentMethodByName(ctx, "Cash")
	require.NoError(t, err)
	require.Equal(t, cash.ID, view.PaymentMethodID)
	require.Nil(t, view.EWallet)

	require.Equal(t, []string{EventStudentCreated}, f.events.types())
}

func TestStudentCreate_MissingSlotRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	input := studentInput("31000000000001", "s1@eduhub.test", "0110000001")
	input.Course = &StudentCourseInput{TeacherCourseID: 42}

	out, err := f.students.Create(ctx, input)
	require.NoError(t, err)
	require.False(t, out.OK())
	require.Equal(t, []string{"course"}, out.Failed())

	require.Zero(t, f.count(t, &models.Student{}))
	require.Zero(t, f.count(t, &models.StudentDetails{}))
	require.Empty(t, f.events.types())
}

func TestStudentCreate_BankCheck(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	input := studentInput("31000000000001", "s1@eduhub.test", "0110000001")
	input.PaymentType = "Bank Check"
	input.Check = &BankCheckInput{BankName: "Banque Misr", HolderName: "Parent", CheckNumber: "000123"}

	out, err := f.students.Create(ctx, input)
	require.NoError(t, err)
	require.True(t, out.OK())

	view, err := f.students.Get(ctx, out.ID)
	require.NoError(t, err)
	require.NotNil(t, view.BankCheck)
	require.Equal(t, "000123", view.BankCheck.CheckNumber)
	require.Nil(t, view.BankAccount)
}

func TestStudentCreate_UnknownPaymentIsRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	input := studentInput("31000000000001", "s1@eduhub.test", "0110000001")
	input.PaymentType = ""

	out, err := f.students.Create(ctx, input)
	require.NoError(t, err)
	require.False(t, out.OK())
	require.Zero(t, f.count(t, &models.Student{}))
}

func TestStudentCreate_DuplicateEmailIsError(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.student(t)

	out, err := f.students.Create(ctx, studentInput("31000000000002", "s1@eduhub.test", "0110000002"))
	require.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
	require.Nil(t, out)
	require.Equal(t, int64(1), f.count(t, &models.Student{}))
}

func TestStudentGetAndList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.student(t)

	_, err := f.students.Get(ctx, 999)
	require.ErrorIs(t, err, ErrStudentNotFound)

	summaries, total, err := f.students.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Len(t, summaries, 1)
	require.Equal(t, "Egypt", summaries[0].Nationality)
	require.Equal(t, "Giza", summaries[0].Governorate)
}

func TestStudentUpdate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	slot := f.teacherSlot(t)
	other := f.teacherSlot(t)

	input := studentInput("31000000000001", "s1@eduhub.test", "0110000001")
	input.Course = &StudentCourseInput{TeacherCourseID: slot.ID, JoinDate: "2024-09-15"}
	out, err := f.students.Create(ctx, input)
	require.NoError(t, err)
	id := out.ID

	out, err = f.students.Update(ctx, id, &UpdateStudentInput{
		IsInfoMaster: true,
		Core:         &PersonPatch{Birthday: ptr("2011-01-02")},
		IsDetails:    true,
		Details:      &StudentDetailsPatch{Fees: ptr(decimal.NewFromInt(900))},
		IsCourse:     true,
		Course:       &StudentCoursePatch{TeacherCourseID: &other.ID},
	})
	require.NoError(t, err)
	require.True(t, out.OK(), out.Failed())

	view, err := f.students.Get(ctx, id)
	require.NoError(t, err)
	require.True(t, time.Date(2011, 1, 2, 0, 0, 0, 0, time.UTC).Equal(view.Birthday))
	require.True(t, decimal.NewFromInt(900).Equal(view.Details.Fees))
	require.Equal(t, other.ID, view.Courses[0].TeacherCourseID)

	out, err = f.students.Update(ctx, id, &UpdateStudentInput{})
	require.NoError(t, err)
	require.False(t, out.OK())

	_, err = f.students.Update(ctx, id, &UpdateStudentInput{IsInfoMaster: true, Core: &PersonPatch{Birthday: ptr("tomorrow")}})
	require.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = f.students.Update(ctx, 999, &UpdateStudentInput{IsDetails: true})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentUpdate_EnrollmentOfAnotherStudentIsRejected(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	slot := f.teacherSlot(t)

	first := studentInput("31000000000001", "s1@eduhub.test", "0110000001")
	first.Course = &StudentCourseInput{TeacherCourseID: slot.ID, JoinDate: "2024-09-15"}
	out, err := f.students.Create(ctx, first)
	require.NoError(t, err)
	a := out.ID

	second := studentInput("31000000000002", "s2@eduhub.test", "0110000002")
	second.Course = &StudentCourseInput{TeacherCourseID: slot.ID, JoinDate: "2024-09-16"}
	out, err = f.students.Create(ctx, second)
	require.NoError(t, err)
	b := out.ID

	enrolled, err := f.store.StudentCourses.ListByOwner(ctx, b)
	require.NoError(t, err)
	require.Len(t, enrolled, 1)

	out, err = f.students.Update(ctx, a, &UpdateStudentInput{
		IsCourse: true,
		Course:   &StudentCoursePatch{ID: enrolled[0].ID, JoinDate: ptr("2000-01-01")},
	})
	require.NoError(t, err)
	require.False(t, out.OK())
	require.Equal(t, []string{stepCourse}, out.Failed())

	got, err := f.store.StudentCourses.GetByID(ctx, enrolled[0].ID)
	require.NoError(t, err)
	require.True(t, time.Date(2024, 9, 16, 0, 0, 0, 0, time.UTC).Equal(got.JoinDate))

	own, err := f.store.StudentCourses.ListByOwner(ctx, a)
	require.NoError(t, err)
	out, err = f.students.Update(ctx, a, &UpdateStudentInput{
		IsCourse: true,
		Course:   &StudentCoursePatch{ID: own[0].ID, JoinDate: ptr("2024-10-01")},
	})
	require.NoError(t, err)
	require.True(t, out.OK(), out.Failed())
}

func TestStudentDelete_KeepsRevenues(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	slot := f.teacherSlot(t)
	id := f.student(t)

	_, err := f.students.EnrollCourse(ctx, id, &StudentCourseInput{TeacherCourseID: slot.ID})
	require.NoError(t, err)
	_, err = f.students.PayFees(ctx, id, &FeeInput{Amount: decimal.NewFromInt(300)})
	require.NoError(t, err)
	_, err = f.students.RecordAttendance(ctx, id, &AttendanceInput{Type: "in"})
	require.NoError(t, err)

	out, err := f.students.Delete(ctx, id)
	require.NoError(t, err)
	require.True(t, out.OK(), out.Failed())

	_, err = f.students.Get(ctx, id)
	require.ErrorIs(t, err, ErrStudentNotFound)
	for _, m := range []interface{}{
		&models.StudentDetails{}, &models.StudentCourse{}, &models.StudentAttendance{}, &models.PaymentPreference{},
	} {
		require.Zero(t, f.count(t, m))
	}

	revenues, err := f.store.Revenues.For(domain.SourceStudent).ListByOwner(ctx, id)
	require.NoError(t, err)
	require.Len(t, revenues, 1)

	require.Equal(t, []string{EventStudentCreated, EventStudentDeleted}, f.events.types())
}

func TestStudentPayFees(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.student(t)

	receivedBy := uint(1)
	rev, err := f.students.PayFees(ctx, id, &FeeInput{
		Amount:     decimal.RequireFromString("450.50"),
		ReceivedBy: &receivedBy,
		Notes:      "first term",
		Date:       "2024-10-01",
	})
	require.NoError(t, err)
	require.Equal(t, models.IncomeTypeFees, rev.IncomeType)
	require.Equal(t, string(domain.SourceStudent), rev.SourceType)

	cash, err := f.store.Master.PaymentMethodByName(ctx, "Cash")
	require.NoError(t, err)
	require.Equal(t, cash.ID, rev.PaymentMethodID)

	view, err := f.students.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, view.Fees, 1)
	require.True(t, decimal.RequireFromString("450.50").Equal(view.Fees[0].Amount))

	_, err = f.students.PayFees(ctx, id, &FeeInput{Amount: decimal.Zero})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = f.students.PayFees(ctx, 999, &FeeInput{Amount: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestStudentEnrollCourse(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	slot := f.teacherSlot(t)
	id := f.student(t)

	row, err := f.students.EnrollCourse(ctx, id, &StudentCourseInput{TeacherCourseID: slot.ID, JoinDate: "2024-09-15"})
	require.NoError(t, err)
	require.NotZero(t, row.ID)

	_, err = f.students.EnrollCourse(ctx, id, &StudentCourseInput{TeacherCourseID: slot.ID})
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	_, err = f.students.EnrollCourse(ctx, id, &StudentCourseInput{TeacherCourseID: 999})
	require.ErrorIs(t, err, ErrTeacherCourseNotFound)
}

func TestStudentGrades(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	id := f.student(t)

	grade := GradeInput{
		CourseID:   1,
		TeacherID:  1,
		Grade:      decimal.NewFromInt(18),
		FinalGrade: decimal.NewFromInt(20),
		Date:       "2024-10-10",
	}
	hw, err := f.students.RecordHomework(ctx, id, &grade)
	require.NoError(t, err)
	require.NotZero(t, hw.ID)

	exam, err := f.students.RecordExam(ctx, id, &ExamInput{GradeInput: grade, FullTime: 90, StartTime: "09:00", EndTime: "10:30"})
	require.NoError(t, err)
	require.Equal(t, 90, exam.FullTime)

	tooHigh := grade
	tooHigh.Grade = decimal.NewFromInt(21)
	_, err = f.students.RecordHomework(ctx, id, &tooHigh)
	require.ErrorIs(t, err, ErrInvalidGrade)

	negative := grade
	negative.Grade = decimal.NewFromInt(-1)
	_, err = f.students.RecordExam(ctx, id, &ExamInput{GradeInput: negative})
	require.ErrorIs(t, err, ErrInvalidGrade)

	missing := grade
	missing.TeacherID = 0
	_, err = f.students.RecordHomework(ctx, id, &missing)
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	view, err := f.students.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, view.Homework, 1)
	require.Len(t, view.Exams, 1)
}
