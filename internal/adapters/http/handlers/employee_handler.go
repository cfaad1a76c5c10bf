package handlers

import (
	"strconv"

	"eduhub-records/internal/core/services"
	"eduhub-records/internal/pkg/pagination"
	"eduhub-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// EmployeeHandler handles employee endpoints
type EmployeeHandler struct {
	employeeService *services.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(employeeService *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{employeeService: employeeService}
}

// CreateEmployee handles creating an employee with all of its records
// @Summary Create employee
// @Description Create core, details, role, access or course, and payment records in one transaction
// @Tags Employees
// @Accept json
// @Produce json
// @Param body body services.CreateEmployeeInput true "Employee data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) CreateEmployee(c *fiber.Ctx) error {
	var input services.CreateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	out, err := h.employeeService.Create(c.UserContext(), &input)
	if err != nil {
		return writeError(c, err, "Failed to create employee")
	}
	return writeOutcome(c, out, fiber.StatusCreated, "Employee created successfully")
}

// ListEmployees handles listing employees
// @Summary List employees
// @Tags Employees
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /employees [get]
func (h *EmployeeHandler) ListEmployees(c *fiber.Ctx) error {
	params, err := pagination.GetParams(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	employees, total, err := h.employeeService.List(c.UserContext(), params.Offset, params.Limit)
	if err != nil {
		return writeError(c, err, "Failed to list employees")
	}
	return response.Success(c, "Employees retrieved successfully", pagination.NewPage(employees, params, total))
}

// GetEmployee handles getting an employee snapshot
// @Summary Get employee
// @Tags Employees
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [get]
func (h *EmployeeHandler) GetEmployee(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	view, err := h.employeeService.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Failed to get employee")
	}
	return response.Success(c, "Employee retrieved successfully", fiber.Map{"employee": view})
}

// UpdateEmployee handles gated employee updates
// @Summary Update employee
// @Description Each is_* gate enables its patch
// @Tags Employees
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param body body services.UpdateEmployeeInput true "Gates and patches"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /employees/{id} [put]
func (h *EmployeeHandler) UpdateEmployee(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var input services.UpdateEmployeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	out, err := h.employeeService.Update(c.UserContext(), id, &input)
	if err != nil {
		return writeError(c, err, "Failed to update employee")
	}
	return writeOutcome(c, out, fiber.StatusOK, "Employee updated successfully")
}

// DeleteEmployee handles deleting an employee
// @Summary Delete employee
// @Description At least one of teacher or manager must be set
// @Tags Employees
// @Produce json
// @Param id path int true "Employee ID"
// @Param teacher query bool false "Remove teacher course slots"
// @Param manager query bool false "Remove credentials"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) DeleteEmployee(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var input services.DeleteEmployeeInput
	if err := c.QueryParser(&input); err != nil {
		return response.BadRequest(c, "Invalid query parameters")
	}

	out, err := h.employeeService.Delete(c.UserContext(), id, input)
	if err != nil {
		return writeError(c, err, "Failed to delete employee")
	}
	return writeOutcome(c, out, fiber.StatusOK, "Employee deleted successfully")
}

// RecordAttendance handles an attendance punch
// @Summary Record employee attendance
// @Tags Employees
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param body body services.AttendanceInput true "Punch"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id}/attendance [post]
func (h *EmployeeHandler) RecordAttendance(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var input services.AttendanceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	row, err := h.employeeService.RecordAttendance(c.UserContext(), id, &input)
	if err != nil {
		return writeError(c, err, "Failed to record attendance")
	}
	return response.Created(c, "Attendance recorded successfully", row)
}

// RecordEvaluation handles an evaluation entry
// @Summary Record employee evaluation
// @Tags Employees
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param body body services.EvaluationInput true "Evaluation"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id}/evaluations [post]
func (h *EmployeeHandler) RecordEvaluation(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var input services.EvaluationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	row, err := h.employeeService.RecordEvaluation(c.UserContext(), id, &input)
	if err != nil {
		return writeError(c, err, "Failed to record evaluation")
	}
	return response.Created(c, "Evaluation recorded successfully", row)
}

// PaySalary handles a salary payment
// @Summary Pay employee salary
// @Tags Employees
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param body body services.SalaryInput true "Salary payment"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /employees/{id}/salaries [post]
func (h *EmployeeHandler) PaySalary(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var input services.SalaryInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	row, err := h.employeeService.PaySalary(c.UserContext(), id, &input)
	if err != nil {
		return writeError(c, err, "Failed to pay salary")
	}
	return response.Created(c, "Salary paid successfully", row)
}

// RecordExpense handles an expense paid out by an employee
// @Summary Record employee expense
// @Tags Finance
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param body body services.ExpenseInput true "Expense"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /employees/{id}/expenses [post]
func (h *EmployeeHandler) RecordExpense(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}

	var input services.ExpenseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	row, err := h.employeeService.RecordExpense(c.UserContext(), id, &input)
	if err != nil {
		return writeError(c, err, "Failed to record expense")
	}
	return response.Created(c, "Expense recorded successfully", row)
}

// ListEmployeeExpenses handles listing the expenses of one employee
// @Summary List employee expenses
// @Tags Finance
// @Produce json
// @Param id path int true "Employee ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id}/expenses [get]
func (h *EmployeeHandler) ListEmployeeExpenses(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid employee ID")
	}
	return h.listExpenses(c, id)
}

// ListExpenses handles listing every expense
// @Summary List expenses
// @Tags Finance
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /expenses [get]
func (h *EmployeeHandler) ListExpenses(c *fiber.Ctx) error {
	return h.listExpenses(c, 0)
}

func (h *EmployeeHandler) listExpenses(c *fiber.Ctx, id uint) error {
	params, err := pagination.GetParams(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	rows, total, err := h.employeeService.ListExpenses(c.UserContext(), id, params.Offset, params.Limit)
	if err != nil {
		return writeError(c, err, "Failed to list expenses")
	}
	return response.Success(c, "Expenses retrieved successfully", pagination.NewPage(rows, params, total))
}

// ListOperations handles listing the audit trail, optionally of one operator
// @Summary List user operations
// @Tags Audit
// @Produce json
// @Param emp_id query int false "Operator employee ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /operations [get]
func (h *EmployeeHandler) ListOperations(c *fiber.Ctx) error {
	params, err := pagination.GetParams(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	var empID uint
	if raw := c.Query("emp_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return response.BadRequest(c, "Invalid emp_id")
		}
		empID = uint(id)
	}

	rows, total, err := h.employeeService.ListOperations(c.UserContext(), empID, params.Offset, params.Limit)
	if err != nil {
		return writeError(c, err, "Failed to list operations")
	}
	return response.Success(c, "Operations retrieved successfully", pagination.NewPage(rows, params, total))
}
