package services

import (
	"context"
	"fmt"
	"strings"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/core/domain"

	"github.com/shopspring/decimal"
)

// SalaryInput is one salary payment. A zero Salary uses the salary in the employee details,
// a zero PaymentPreferenceID uses the latest preference of the employee.
type SalaryInput struct {
	PaymentPreferenceID uint            `json:"payment_preference_id"`
	Salary              decimal.Decimal `json:"salary"`
	Discounts           decimal.Decimal `json:"discounts"`
	Date                string          `json:"date"`
}

// ExpenseInput is one payout made by an employee. A zero PaymentMethodID uses the
// method of the employee's latest payment preference.
type ExpenseInput struct {
	ExpenseType     string          `json:"expense_type"`
	Amount          decimal.Decimal `json:"amount"`
	Receiver        string          `json:"receiver"`
	PaymentMethodID uint            `json:"payment_method_id"`
	Notes           string          `json:"notes"`
	Date            string          `json:"date"`
}

func (s *EmployeeService) requireEmployee(ctx context.Context, id uint) error {
	emp, err := s.store.Employees.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if emp == nil {
		return ErrEmployeeNotFound
	}
	return nil
}

// RecordAttendance appends an attendance punch
func (s *EmployeeService) RecordAttendance(ctx context.Context, id uint, input *AttendanceInput) (*models.EmployeeAttendance, error) {
	kind, at, err := input.parse()
	if err != nil {
		return nil, err
	}
	if err := s.requireEmployee(ctx, id); err != nil {
		return nil, err
	}

	row := &models.EmployeeAttendance{EmpID: id, Type: string(kind), Time: at}
	if err := s.store.EmployeeAttendance.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// RecordEvaluation appends an evaluation entry
func (s *EmployeeService) RecordEvaluation(ctx context.Context, id uint, input *EvaluationInput) (*models.EmployeeEvaluation, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}
	if err := s.requireEmployee(ctx, id); err != nil {
		return nil, err
	}

	row := &models.EmployeeEvaluation{EmpID: id, EvaluationType: input.EvaluationType, Rating: input.Rating}
	if err := s.store.EmployeeEvaluations.Create(ctx, row); err != nil {
		return nil, err
	}
	return row, nil
}

// PaySalary appends a salary payment, the net amount is salary minus discounts
func (s *EmployeeService) PaySalary(ctx context.Context, id uint, input *SalaryInput) (*models.Salary, error) {
	date, err := dateOrToday(input.Date)
	if err != nil {
		return nil, err
	}
	if err := s.requireEmployee(ctx, id); err != nil {
		return nil, err
	}

	salary := input.Salary
	if salary.IsZero() {
		details, err := s.store.EmployeeDetails.GetByOwner(ctx, id)
		if err != nil {
			return nil, err
		}
		if details != nil {
			salary = details.Salary
		}
	}
	amount := salary.Sub(input.Discounts)
	if input.Discounts.IsNegative() || amount.IsNegative() {
		return nil, domain.ErrInvalidAmount
	}

	prefID, err := s.paymentPreferenceID(ctx, id, input.PaymentPreferenceID)
	if err != nil {
		return nil, err
	}

	row := &models.Salary{
		EmpID:               id,
		PaymentPreferenceID: prefID,
		Salary:              salary,
		Amount:              amount,
		Discounts:           input.Discounts,
		Date:                date,
	}
	if err := s.store.Salaries.Create(ctx, row); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "salary paid", "emp_id", id, "amount", amount.String())
	return row, nil
}

// paymentPreferenceID checks that a preference belongs to the employee, or picks the latest one
func (s *EmployeeService) paymentPreferenceID(ctx context.Context, empID, prefID uint) (uint, error) {
	prefs := s.store.PaymentPreferences.For(domain.SourceEmployee)
	if prefID != 0 {
		pref, err := prefs.GetByID(ctx, prefID)
		if err != nil {
			return 0, err
		}
		if pref == nil || pref.SourceID != empID {
			return 0, ErrNoPaymentPreference
		}
		return pref.ID, nil
	}

	all, err := prefs.ListByOwner(ctx, empID)
	if err != nil {
		return 0, err
	}
	if len(all) == 0 {
		return 0, ErrNoPaymentPreference
	}
	return all[len(all)-1].ID, nil
}

// RecordExpense appends an expense paid out by the employee
func (s *EmployeeService) RecordExpense(ctx context.Context, id uint, input *ExpenseInput) (*models.Expense, error) {
	if strings.TrimSpace(input.ExpenseType) == "" {
		return nil, fmt.Errorf("%w: expense_type is required", domain.ErrInvalidInput)
	}
	if !input.Amount.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	date, err := dateOrToday(input.Date)
	if err != nil {
		return nil, err
	}
	if err := s.requireEmployee(ctx, id); err != nil {
		return nil, err
	}

	methodID := input.PaymentMethodID
	if methodID == 0 {
		prefID, err := s.paymentPreferenceID(ctx, id, 0)
		if err != nil {
			return nil, err
		}
		pref, err := s.store.PaymentPreferences.GetByID(ctx, prefID)
		if err != nil {
			return nil, err
		}
		methodID = pref.PaymentMethodID
	} else {
		method, err := s.store.Master.PaymentMethods.GetByID(ctx, methodID)
		if err != nil {
			return nil, err
		}
		if method == nil {
			return nil, fmt.Errorf("%w: unknown payment_method_id %d", domain.ErrInvalidInput, methodID)
		}
	}

	row := &models.Expense{
		ExpenseType:     input.ExpenseType,
		Amount:          input.Amount,
		Receiver:        input.Receiver,
		EmpID:           id,
		ExpenseDate:     date,
		PaymentMethodID: methodID,
		Notes:           input.Notes,
	}
	if err := s.store.Expenses.Create(ctx, row); err != nil {
		return nil, err
	}
	s.log.InfoContext(ctx, "expense recorded", "emp_id", id, "type", input.ExpenseType, "amount", input.Amount.String())
	return row, nil
}

// ListExpenses pages the expenses of one employee, or of everyone when id is zero
func (s *EmployeeService) ListExpenses(ctx context.Context, id uint, offset, limit int) ([]*models.Expense, int64, error) {
	if id == 0 {
		return s.store.Expenses.List(ctx, offset, limit)
	}
	if err := s.requireEmployee(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.store.Expenses.ListByOwnerPaged(ctx, id, offset, limit)
}

// ListOperations pages the audit trail of one operator, or of everyone when id is zero.
// Operators are not required to still exist.
func (s *EmployeeService) ListOperations(ctx context.Context, id uint, offset, limit int) ([]*models.UserOperation, int64, error) {
	if id == 0 {
		return s.store.UserOperations.List(ctx, offset, limit)
	}
	return s.store.UserOperations.ListByOwnerPaged(ctx, id, offset, limit)
}
