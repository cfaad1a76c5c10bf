package handlers

import (
	"eduhub-records/internal/core/services"
	"eduhub-records/internal/pkg/pagination"
	"eduhub-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// StudentHandler handles student endpoints
type StudentHandler struct {
	studentService *services.StudentService
}

// NewStudentHandler creates a new student handler
func NewStudentHandler(studentService *services.StudentService) *StudentHandler {
	return &StudentHandler{studentService: studentService}
}

// CreateStudent handles creating a student with all of its records
// @Summary Create student
// @Tags Students
// @Accept json
// @Produce json
// @Param body body services.CreateStudentInput true "Student data"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /students [post]
func (h *StudentHandler) CreateStudent(c *fiber.Ctx) error {
	var input services.CreateStudentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	out, err := h.studentService.Create(c.UserContext(), &input)
	if err != nil {
		return writeError(c, err, "Failed to create student")
	}
	return writeOutcome(c, out, fiber.StatusCreated, "Student created successfully")
}

// ListStudents handles listing students
// @Summary List students
// @Tags Students
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} response.Response
// @Router /students [get]
func (h *StudentHandler) ListStudents(c *fiber.Ctx) error {
	params, err := pagination.GetParams(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	students, total, err := h.studentService.List(c.UserContext(), params.Offset, params.Limit)
	if err != nil {
		return writeError(c, err, "Failed to list students")
	}
	return response.Success(c, "Students retrieved successfully", pagination.NewPage(students, params, total))
}

// GetStudent handles getting a student snapshot
// @Summary Get student
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /students/{id} [get]
func (h *StudentHandler) GetStudent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	view, err := h.studentService.Get(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Failed to get student")
	}
	return response.Success(c, "Student retrieved successfully", fiber.Map{"student": view})
}

// UpdateStudent handles gated student updates
// @Summary Update student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param body body services.UpdateStudentInput true "Gates and patches"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /students/{id} [put]
func (h *StudentHandler) UpdateStudent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	var input services.UpdateStudentInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	out, err := h.studentService.Update(c.UserContext(), id, &input)
	if err != nil {
		return writeError(c, err, "Failed to update student")
	}
	return writeOutcome(c, out, fiber.StatusOK, "Student updated successfully")
}

// DeleteStudent handles deleting a student, fee revenues are kept
// @Summary Delete student
// @Tags Students
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /students/{id} [delete]
func (h *StudentHandler) DeleteStudent(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	out, err := h.studentService.Delete(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Failed to delete student")
	}
	return writeOutcome(c, out, fiber.StatusOK, "Student deleted successfully")
}

// RecordAttendance handles an attendance punch
// @Summary Record student attendance
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param body body services.AttendanceInput true "Punch"
// @Success 201 {object} response.Response
// @Router /students/{id}/attendance [post]
func (h *StudentHandler) RecordAttendance(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	var input services.AttendanceInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	row, err := h.studentService.RecordAttendance(c.UserContext(), id, &input)
	if err != nil {
		return writeError(c, err, "Failed to record attendance")
	}
	return response.Created(c, "Attendance recorded successfully", row)
}

// RecordEvaluation handles an evaluation entry
// @Summary Record student evaluation
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param body body services.EvaluationInput true "Evaluation"
// @Success 201 {object} response.Response
// @Router /students/{id}/evaluations [post]
func (h *StudentHandler) RecordEvaluation(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	var input services.EvaluationInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	row, err := h.studentService.RecordEvaluation(c.UserContext(), id, &input)
	if err != nil {
		return writeError(c, err, "Failed to record evaluation")
	}
	return response.Created(c, "Evaluation recorded successfully", row)
}

// RecordHomework handles a graded homework
// @Summary Record homework
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param body body services.GradeInput true "Homework"
// @Success 201 {object} response.Response
// @Router /students/{id}/homework [post]
func (h *StudentHandler) RecordHomework(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	var input services.GradeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	row, err := h.studentService.RecordHomework(c.UserContext(), id, &input)
	if err != nil {
		return writeError(c, err, "Failed to record homework")
	}
	return response.Created(c, "Homework recorded successfully", row)
}

// RecordExam handles an exam result
// @Summary Record exam
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param body body services.ExamInput true "Exam"
// @Success 201 {object} response.Response
// @Router /students/{id}/exams [post]
func (h *StudentHandler) RecordExam(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	var input services.ExamInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	row, err := h.studentService.RecordExam(c.UserContext(), id, &input)
	if err != nil {
		return writeError(c, err, "Failed to record exam")
	}
	return response.Created(c, "Exam recorded successfully", row)
}

// PayFees handles a fee payment
// @Summary Pay student fees
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param body body services.FeeInput true "Fee payment"
// @Success 201 {object} response.Response
// @Failure 422 {object} response.Response
// @Router /students/{id}/fees [post]
func (h *StudentHandler) PayFees(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	var input services.FeeInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	row, err := h.studentService.PayFees(c.UserContext(), id, &input)
	if err != nil {
		return writeError(c, err, "Failed to pay fees")
	}
	return response.Created(c, "Fees paid successfully", row)
}

// EnrollCourse handles enrolling a student into a teacher slot
// @Summary Enroll student
// @Tags Students
// @Accept json
// @Produce json
// @Param id path int true "Student ID"
// @Param body body services.StudentCourseInput true "Enrollment"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /students/{id}/courses [post]
func (h *StudentHandler) EnrollCourse(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid student ID")
	}

	var input services.StudentCourseInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	row, err := h.studentService.EnrollCourse(c.UserContext(), id, &input)
	if err != nil {
		return writeError(c, err, "Failed to enroll student")
	}
	return response.Created(c, "Student enrolled successfully", row)
}
