package services

import (
	"context"
	"testing"
	"time"

	"eduhub-records/internal/core/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAttendanceInput(t *testing.T) {
	at := time.Date(2024, 3, 1, 8, 0, 0, 0, time.FixedZone("EET", 2*60*60))
	kind, parsed, err := (&AttendanceInput{Type: "OUT", Time: &at}).parse()
	require.NoError(t, err)
	require.Equal(t, domain.AttendanceOut, kind)
	require.Equal(t, time.UTC, parsed.Location())
	require.True(t, at.Equal(parsed))

	_, _, err = (&AttendanceInput{Type: "lunch"}).parse()
	require.ErrorIs(t, err, domain.ErrInvalidAttendanceType)
}

func TestEvaluationInput(t *testing.T) {
	require.NoError(t, (&EvaluationInput{EvaluationType: "weekly", Rating: 5}).validate())
	require.ErrorIs(t, (&EvaluationInput{Rating: 3}).validate(), domain.ErrInvalidInput)
	require.ErrorIs(t, (&EvaluationInput{EvaluationType: "weekly", Rating: 0}).validate(), domain.ErrInvalidRating)
	require.ErrorIs(t, (&EvaluationInput{EvaluationType: "weekly", Rating: 6}).validate(), domain.ErrInvalidRating)
}

func TestEmployeeRecords(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.employees.Create(ctx, employeeInput("Manager", "29000000000001", "a@eduhub.test", "0100000001"))
	require.NoError(t, err)
	id := out.ID

	at := time.Date(2024, 3, 1, 7, 55, 0, 0, time.UTC)
	punch, err := f.employees.RecordAttendance(ctx, id, &AttendanceInput{Type: "in", Time: &at})
	require.NoError(t, err)
	require.Equal(t, "in", punch.Type)

	_, err = f.employees.RecordAttendance(ctx, 999, &AttendanceInput{Type: "in"})
	require.ErrorIs(t, err, ErrEmployeeNotFound)

	eval, err := f.employees.RecordEvaluation(ctx, id, &EvaluationInput{EvaluationType: "quarterly", Rating: 3})
	require.NoError(t, err)
	require.Equal(t, 3, eval.Rating)

	view, err := f.employees.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, view.Attendance, 1)
	require.Len(t, view.Evaluation, 1)
}

func TestEmployeePaySalary(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.employees.Create(ctx, employeeInput("Manager", "29000000000001", "a@eduhub.test", "0100000001"))
	require.NoError(t, err)
	id := out.ID

	// salary falls back to the employee details
	paid, err := f.employees.PaySalary(ctx, id, &SalaryInput{Discounts: decimal.NewFromInt(250), Date: "2024-03-31"})
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(5000).Equal(paid.Salary))
	require.True(t, decimal.NewFromInt(4750).Equal(paid.Amount))
	require.NotZero(t, paid.PaymentPreferenceID)

	paid, err = f.employees.PaySalary(ctx, id, &SalaryInput{Salary: decimal.NewFromInt(6000)})
	require.NoError(t, err)
	require.True(t, decimal.NewFromInt(6000).Equal(paid.Amount))

	_, err = f.employees.PaySalary(ctx, id, &SalaryInput{Discounts: decimal.NewFromInt(9000)})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = f.employees.PaySalary(ctx, id, &SalaryInput{PaymentPreferenceID: 999})
	require.ErrorIs(t, err, ErrNoPaymentPreference)

	_, err = f.employees.PaySalary(ctx, id, &SalaryInput{Date: "31-03-2024"})
	require.ErrorIs(t, err, domain.ErrInvalidDate)

	view, err := f.employees.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, view.Salaries, 2)
}

func TestEmployeePaySalary_NoPreference(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.employees.Create(ctx, employeeInput("Manager", "29000000000001", "a@eduhub.test", "0100000001"))
	require.NoError(t, err)

	require.NoError(t, f.store.PaymentPreferences.For(domain.SourceEmployee).DeleteByOwner(ctx, out.ID))

	_, err = f.employees.PaySalary(ctx, out.ID, &SalaryInput{})
	require.ErrorIs(t, err, ErrNoPaymentPreference)
}

func TestEmployeeRecordExpense(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.employees.Create(ctx, employeeInput("Manager", "29000000000001", "a@eduhub.test", "0100000001"))
	require.NoError(t, err)
	id := out.ID

	cash, err := f.store.Master.PaymentMethodByName(ctx, "Cash")
	require.NoError(t, err)
	check, err := f.store.Master.PaymentMethodByName(ctx, "Bank Check")
	require.NoError(t, err)

	// method falls back to the employee's payment preference
	row, err := f.employees.RecordExpense(ctx, id, &ExpenseInput{
		ExpenseType: "supplies", Amount: decimal.NewFromInt(350), Receiver: "Nile Stationery", Date: "2024-04-02",
	})
	require.NoError(t, err)
	require.Equal(t, cash.ID, row.PaymentMethodID)
	require.Equal(t, id, row.EmpID)
	require.True(t, time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC).Equal(row.ExpenseDate))

	_, err = f.employees.RecordExpense(ctx, id, &ExpenseInput{
		ExpenseType: "rent", Amount: decimal.NewFromInt(9000), PaymentMethodID: check.ID,
	})
	require.NoError(t, err)

	_, err = f.employees.RecordExpense(ctx, id, &ExpenseInput{ExpenseType: "rent", Amount: decimal.NewFromInt(1), PaymentMethodID: 999})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.employees.RecordExpense(ctx, id, &ExpenseInput{Amount: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = f.employees.RecordExpense(ctx, id, &ExpenseInput{ExpenseType: "rent"})
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
	_, err = f.employees.RecordExpense(ctx, 999, &ExpenseInput{ExpenseType: "rent", Amount: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, ErrEmployeeNotFound)

	other, err := f.employees.Create(ctx, employeeInput("Supervisor", "29000000000002", "b@eduhub.test", "0100000002"))
	require.NoError(t, err)
	_, err = f.employees.RecordExpense(ctx, other.ID, &ExpenseInput{ExpenseType: "transport", Amount: decimal.NewFromInt(40)})
	require.NoError(t, err)

	rows, total, err := f.employees.ListExpenses(ctx, id, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, "supplies", rows[0].ExpenseType)

	_, total, err = f.employees.ListExpenses(ctx, 0, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(3), total)

	_, _, err = f.employees.ListExpenses(ctx, 999, 0, 10)
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestEmployeeListOperations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	out, err := f.employees.Create(WithOperator(ctx, 7), employeeInput("Manager", "29000000000001", "a@eduhub.test", "0100000001"))
	require.NoError(t, err)
	id := out.ID

	_, err = f.employees.Update(ctx, id, &UpdateEmployeeInput{
		IsDetails: true,
		Details:   &EmployeeDetailsPatch{Address: ptr("9 Tahrir Square")},
	})
	require.NoError(t, err)

	// rejected writes leave no trail
	out, err = f.employees.Update(WithOperator(ctx, 7), id, &UpdateEmployeeInput{})
	require.NoError(t, err)
	require.False(t, out.OK())

	ops, total, err := f.employees.ListOperations(ctx, 0, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(2), total)
	require.Equal(t, "employee.create", ops[0].OperationType)
	require.Equal(t, "employee.update", ops[1].OperationType)
	require.Nil(t, ops[1].EmpID)

	ops, total, err = f.employees.ListOperations(ctx, 7, 0, 10)
	require.NoError(t, err)
	require.Equal(t, int64(1), total)
	require.Contains(t, ops[0].Details, "steps=role_policy,payment_instrument,core,details,role")
}
