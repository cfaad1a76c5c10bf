package handlers

import (
	"time"

	"eduhub-records/internal/core/domain"
	"eduhub-records/internal/core/services"
	"eduhub-records/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AnalyticsHandler handles attendance analytics endpoints
type AnalyticsHandler struct {
	analyticsService *services.AnalyticsService
	windowDays       int
}

// NewAnalyticsHandler creates a new analytics handler
func NewAnalyticsHandler(analyticsService *services.AnalyticsService, windowDays int) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService, windowDays: windowDays}
}

// GenerateAttendanceRequest is an optional explicit window, dates are YYYY-MM-DD
type GenerateAttendanceRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// GenerateAttendance runs the attendance aggregation now
// @Summary Generate attendance analytics
// @Description Without a body the trailing configured window is used
// @Tags Analytics
// @Accept json
// @Produce json
// @Param body body GenerateAttendanceRequest false "Window"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /analytics/attendance [post]
func (h *AnalyticsHandler) GenerateAttendance(c *fiber.Ctx) error {
	var req GenerateAttendanceRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	from, to := services.AttendanceWindow(time.Now(), h.windowDays)
	if req.From != "" || req.To != "" {
		var err error
		if from, err = time.Parse("2006-01-02", req.From); err != nil {
			return response.BadRequest(c, domain.ErrInvalidDate.Error())
		}
		if to, err = time.Parse("2006-01-02", req.To); err != nil {
			return response.BadRequest(c, domain.ErrInvalidDate.Error())
		}
	}

	rows, err := h.analyticsService.GenerateAttendance(c.UserContext(), from, to)
	if err != nil {
		return writeError(c, err, "Failed to generate analytics")
	}
	return response.Success(c, "Attendance analytics generated successfully", fiber.Map{
		"rows": rows,
		"from": from.Format("2006-01-02"),
		"to":   to.Format("2006-01-02"),
	})
}

// ListAttendance lists stored metrics of one person variant
// @Summary List attendance analytics
// @Tags Analytics
// @Produce json
// @Param source_type query string true "employee or student"
// @Success 200 {object} response.Response
// @Failure 400 {object} response.Response
// @Router /analytics/attendance [get]
func (h *AnalyticsHandler) ListAttendance(c *fiber.Ctx) error {
	rows, err := h.analyticsService.List(c.UserContext(), domain.SourceType(c.Query("source_type")))
	if err != nil {
		return writeError(c, err, "Failed to list analytics")
	}
	return response.Success(c, "Attendance analytics retrieved successfully", fiber.Map{"analytics": rows})
}
