package handlers

import (
	"strconv"

	"eduhub-records/internal/adapters/persistence/models"
	"eduhub-records/internal/adapters/persistence/repositories"
	"eduhub-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MasterHandler serves the seeded lookup vocabularies
type MasterHandler struct {
	master *repositories.MasterRepository
}

// NewMasterHandler creates a new master handler
func NewMasterHandler(master *repositories.MasterRepository) *MasterHandler {
	return &MasterHandler{master: master}
}

// ListCountries lists all countries
// @Summary List countries
// @Description Countries, also used as nationalities
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Response
// @Router /lookups/countries [get]
func (h *MasterHandler) ListCountries(c *fiber.Ctx) error {
	countries, err := h.master.Countries.All(c.UserContext())
	if err != nil {
		return response.InternalServerError(c, "Failed to list countries")
	}
	return response.Success(c, "Countries retrieved successfully", fiber.Map{"countries": countries})
}

// ListGovernorates lists governorates, optionally of one country
// @Summary List governorates
// @Tags Lookups
// @Produce json
// @Param country_id query int false "Country ID"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /lookups/governorates [get]
func (h *MasterHandler) ListGovernorates(c *fiber.Ctx) error {
	var (
		governorates []*models.Governorate
		err          error
	)
	if raw := c.Query("country_id"); raw != "" {
		countryID, parseErr := strconv.ParseUint(raw, 10, 32)
		if parseErr != nil {
			return response.BadRequest(c, "Invalid country ID")
		}
		governorates, err = h.master.Governorates.ListByOwner(c.UserContext(), uint(countryID))
	} else {
		governorates, err = h.master.Governorates.All(c.UserContext())
	}
	if err != nil {
		return response.InternalServerError(c, "Failed to list governorates")
	}
	return response.Success(c, "Governorates retrieved successfully", fiber.Map{"governorates": governorates})
}

// ListRoles lists all roles
// @Summary List roles
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Response
// @Router /lookups/roles [get]
func (h *MasterHandler) ListRoles(c *fiber.Ctx) error {
	roles, err := h.master.Roles.All(c.UserContext())
	if err != nil {
		return response.InternalServerError(c, "Failed to list roles")
	}
	return response.Success(c, "Roles retrieved successfully", fiber.Map{"roles": roles})
}

// ListPaymentMethods lists all payment methods
// @Summary List payment methods
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Response
// @Router /lookups/payment-methods [get]
func (h *MasterHandler) ListPaymentMethods(c *fiber.Ctx) error {
	methods, err := h.master.PaymentMethods.All(c.UserContext())
	if err != nil {
		return response.InternalServerError(c, "Failed to list payment methods")
	}
	return response.Success(c, "Payment methods retrieved successfully", fiber.Map{"payment_methods": methods})
}

// ListCourses lists all courses
// @Summary List courses
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Response
// @Router /lookups/courses [get]
func (h *MasterHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.master.Courses.All(c.UserContext())
	if err != nil {
		return response.InternalServerError(c, "Failed to list courses")
	}
	return response.Success(c, "Courses retrieved successfully", fiber.Map{"courses": courses})
}

// ListClassRooms lists all class rooms
// @Summary List class rooms
// @Tags Lookups
// @Produce json
// @Success 200 {object} response.Response
// @Router /lookups/class-rooms [get]
func (h *MasterHandler) ListClassRooms(c *fiber.Ctx) error {
	rooms, err := h.master.ClassRooms.All(c.UserContext())
	if err != nil {
		return response.InternalServerError(c, "Failed to list class rooms")
	}
	return response.Success(c, "Class rooms retrieved successfully", fiber.Map{"class_rooms": rooms})
}
