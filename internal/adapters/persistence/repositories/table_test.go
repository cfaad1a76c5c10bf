package repositories

import (
	"context"
	"errors"
	"testing"
	"time"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/core/domain"
	"eduhub-records/internal/pkg/testdb"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEmployee(name, nationalID string) *models.Employee {
	return &models.Employee{
		FullName:   name,
		NationalID: nationalID,
		Birthday:   time.Date(1990, 1, 2, 0, 0, 0, 0, time.UTC),
		Gender:     "male",
	}
}

func TestTable_CreateGeneratesIDs(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Open(t))

	a := newEmployee("Ahmed Ali", "29001010000001")
	b := newEmployee("Mona Adel", "29001010000002")
	require.NoError(t, store.Employees.Create(ctx, a))
	require.NoError(t, store.Employees.Create(ctx, b))
	require.NotZero(t, a.ID)
	require.Greater(t, b.ID, a.ID)

	got, err := store.Employees.GetByID(ctx, a.ID)
	require.NoError(t, err)
	require.Equal(t, "Ahmed Ali", got.FullName)
	require.True(t, got.Birthday.Equal(a.Birthday))
}

func TestTable_GetMissingIsNil(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Open(t))

	got, err := store.Employees.GetByID(ctx, 404)
	require.NoError(t, err)
	require.Nil(t, got)

	details, err := store.EmployeeDetails.GetByOwner(ctx, 404)
	require.NoError(t, err)
	require.Nil(t, details)
}

func TestTable_DuplicateIsTranslated(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Open(t))

	require.NoError(t, store.Employees.Create(ctx, newEmployee("Ahmed Ali", "29001010000001")))
	err := store.Employees.Create(ctx, newEmployee("Other", "29001010000001"))
	require.True(t, errors.Is(err, gorm.ErrDuplicatedKey), "got %v", err)
}

func TestTable_OwnerScopedWrites(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Open(t))

	for _, id := range []uint{1, 1, 2} {
		require.NoError(t, store.EmployeeEvaluations.Create(ctx, &models.EmployeeEvaluation{
			EmpID: id, EvaluationType: "monthly", Rating: 3,
		}))
	}

	require.NoError(t, store.EmployeeEvaluations.UpdateByOwner(ctx, 1, map[string]interface{}{"rating": 5}))
	rows, err := store.EmployeeEvaluations.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		require.Equal(t, 5, r.Rating)
	}

	require.NoError(t, store.EmployeeEvaluations.DeleteByOwner(ctx, 1))
	rows, err = store.EmployeeEvaluations.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Empty(t, rows)

	rows, err = store.EmployeeEvaluations.ListByOwner(ctx, 2)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, 3, rows[0].Rating)
}

func TestTable_ByIDForOwnerIgnoresOtherOwners(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Open(t))

	mine := &models.EmployeeEvaluation{EmpID: 1, EvaluationType: "monthly", Rating: 3}
	theirs := &models.EmployeeEvaluation{EmpID: 2, EvaluationType: "monthly", Rating: 3}
	require.NoError(t, store.EmployeeEvaluations.Create(ctx, mine))
	require.NoError(t, store.EmployeeEvaluations.Create(ctx, theirs))

	got, err := store.EmployeeEvaluations.GetByIDForOwner(ctx, theirs.ID, 1)
	require.NoError(t, err)
	require.Nil(t, got)

	got, err = store.EmployeeEvaluations.GetByIDForOwner(ctx, mine.ID, 1)
	require.NoError(t, err)
	require.Equal(t, mine.ID, got.ID)

	require.NoError(t, store.EmployeeEvaluations.UpdateByIDForOwner(ctx, theirs.ID, 1, map[string]interface{}{"rating": 1}))
	other, err := store.EmployeeEvaluations.GetByID(ctx, theirs.ID)
	require.NoError(t, err)
	require.Equal(t, 3, other.Rating)
}

func TestTable_DeleteIn(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Open(t))

	joined := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	for _, slot := range []uint{1, 2, 3} {
		require.NoError(t, store.StudentCourses.Create(ctx, &models.StudentCourse{
			StudentID: 1, TeacherCourseID: slot, JoinDate: joined,
		}))
	}

	require.NoError(t, store.StudentCourses.DeleteIn(ctx, "teacher_course_id", nil))
	require.NoError(t, store.StudentCourses.DeleteIn(ctx, "teacher_course_id", []uint{1, 3}))

	rows, err := store.StudentCourses.ListByOwner(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, uint(2), rows[0].TeacherCourseID)
}

func TestTable_ForScopesSourceType(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Open(t))

	require.NoError(t, store.PaymentPreferences.Create(ctx, &models.PaymentPreference{
		SourceID: 1, SourceType: string(domain.SourceEmployee), PaymentMethodID: 1,
	}))
	require.NoError(t, store.PaymentPreferences.Create(ctx, &models.PaymentPreference{
		SourceID: 1, SourceType: string(domain.SourceStudent), PaymentMethodID: 2,
	}))

	emp, err := store.PaymentPreferences.For(domain.SourceEmployee).GetByOwner(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, uint(1), emp.PaymentMethodID)

	require.NoError(t, store.PaymentPreferences.For(domain.SourceEmployee).DeleteByOwner(ctx, 1))

	emp, err = store.PaymentPreferences.For(domain.SourceEmployee).GetByOwner(ctx, 1)
	require.NoError(t, err)
	require.Nil(t, emp)

	stu, err := store.PaymentPreferences.For(domain.SourceStudent).GetByOwner(ctx, 1)
	require.NoError(t, err)
	require.Equal(t, uint(2), stu.PaymentMethodID)
}

func TestTable_ListPaginates(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Open(t))

	for i, nid := range []string{"1", "2", "3", "4", "5"} {
		require.NoError(t, store.Students.Create(ctx, &models.Student{
			FullName:   "Student " + nid,
			NationalID: nid,
			Birthday:   time.Date(2010, 1, i+1, 0, 0, 0, 0, time.UTC),
			Gender:     "female",
		}))
	}

	rows, total, err := store.Students.List(ctx, 2, 2)
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, rows, 2)
	require.Equal(t, "Student 3", rows[0].FullName)
	require.Equal(t, "Student 4", rows[1].FullName)
}

func TestTable_ListBetween(t *testing.T) {
	ctx := context.Background()
	store := NewStore(testdb.Open(t))

	day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	for _, at := range []time.Time{day.Add(-time.Hour), day.Add(8 * time.Hour), day.Add(24 * time.Hour)} {
		require.NoError(t, store.EmployeeAttendance.Create(ctx, &models.EmployeeAttendance{EmpID: 1, Type: "in", Time: at}))
	}

	rows, err := store.EmployeeAttendance.ListBetween(ctx, "time", day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.True(t, rows[0].Time.Equal(day.Add(8*time.Hour)))
}
