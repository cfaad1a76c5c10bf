package handlers

import (
	"errors"
	"strconv"

	"eduhub-records/internal/core/domain"
	"eduhub-records/internal/core/services"
	"eduhub-records/internal/pkg/password"
	"eduhub-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// parseID reads the :id path parameter
func parseID(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidInput
	}
	return uint(id), nil
}

// writeError maps service and store errors to HTTP responses
func writeError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, services.ErrEmployeeNotFound),
		errors.Is(err, services.ErrStudentNotFound),
		errors.Is(err, services.ErrTeacherCourseNotFound),
		errors.Is(err, domain.ErrNotFound):
		return response.NotFound(c, err.Error())
	case errors.Is(err, gorm.ErrDuplicatedKey), errors.Is(err, domain.ErrDuplicateEntry):
		return response.Conflict(c, "Duplicate entry")
	case errors.Is(err, services.ErrNoPaymentPreference):
		return response.UnprocessableEntity(c, err.Error(), nil)
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrInvalidGender),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrInvalidAttendanceType),
		errors.Is(err, domain.ErrInvalidRating),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, services.ErrInvalidGrade),
		errors.Is(err, password.ErrTooShort):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}

// writeOutcome sends 422 with the step list when any step failed
func writeOutcome(c *fiber.Ctx, out *services.Outcome, status int, message string) error {
	if !out.OK() {
		return response.UnprocessableEntity(c, "Operation rejected", out)
	}
	if status == fiber.StatusCreated {
		return response.Created(c, message, out)
	}
	return response.Success(c, message, out)
}
