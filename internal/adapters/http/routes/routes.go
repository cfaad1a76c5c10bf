package routes

import (
	"eduhub-records/internal/adapters/http/handlers"
	"eduhub-records/internal/adapters/http/middleware"
	"eduhub-records/internal/adapters/persistence/repositories"
	"eduhub-records/internal/config"
	"eduhub-records/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
)

// Services are the orchestrators exposed over HTTP
type Services struct {
	Employees *services.EmployeeService
	Students  *services.StudentService
	Analytics *services.AnalyticsService
}

// Setup configures all routes for the application
func Setup(app *fiber.App, store *repositories.Store, svc Services, cfg *config.Config) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, config.HealthCheck)
	masterHandler := handlers.NewMasterHandler(store.Master)
	employeeHandler := handlers.NewEmployeeHandler(svc.Employees)
	studentHandler := handlers.NewStudentHandler(svc.Students)
	analyticsHandler := handlers.NewAnalyticsHandler(svc.Analytics, cfg.Analytics.WindowDays)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API v1 group
	apiV1 := app.Group("/api/v1")
	apiV1.Get("/", healthHandler.APIInfo)

	setupLookupRoutes(apiV1.Group("/lookups", middleware.LookupCache()), masterHandler)
	setupEmployeeRoutes(apiV1.Group("/employees"), employeeHandler)
	setupStudentRoutes(apiV1.Group("/students"), studentHandler)
	setupAnalyticsRoutes(apiV1.Group("/analytics"), analyticsHandler)
	setupLedgerRoutes(apiV1, employeeHandler)
}

// setupLookupRoutes configures the read-only vocabularies
func setupLookupRoutes(router fiber.Router, handler *handlers.MasterHandler) {
	router.Get("/countries", handler.ListCountries)
	router.Get("/governorates", handler.ListGovernorates)
	router.Get("/roles", handler.ListRoles)
	router.Get("/payment-methods", handler.ListPaymentMethods)
	router.Get("/courses", handler.ListCourses)
	router.Get("/class-rooms", handler.ListClassRooms)
}

// setupEmployeeRoutes configures employee routes
func setupEmployeeRoutes(router fiber.Router, handler *handlers.EmployeeHandler) {
	router.Post("/", handler.CreateEmployee)
	router.Get("/", handler.ListEmployees)
	router.Get("/:id", handler.GetEmployee)
	router.Put("/:id", handler.UpdateEmployee)
	router.Delete("/:id", handler.DeleteEmployee)

	router.Post("/:id/attendance", handler.RecordAttendance)
	router.Post("/:id/evaluations", handler.RecordEvaluation)
	router.Post("/:id/salaries", handler.PaySalary)
	router.Post("/:id/expenses", handler.RecordExpense)
	router.Get("/:id/expenses", handler.ListEmployeeExpenses)
}

// setupStudentRoutes configures student routes
func setupStudentRoutes(router fiber.Router, handler *handlers.StudentHandler) {
	router.Post("/", handler.CreateStudent)
	router.Get("/", handler.ListStudents)
	router.Get("/:id", handler.GetStudent)
	router.Put("/:id", handler.UpdateStudent)
	router.Delete("/:id", handler.DeleteStudent)

	router.Post("/:id/attendance", handler.RecordAttendance)
	router.Post("/:id/evaluations", handler.RecordEvaluation)
	router.Post("/:id/homework", handler.RecordHomework)
	router.Post("/:id/exams", handler.RecordExam)
	router.Post("/:id/fees", handler.PayFees)
	router.Post("/:id/courses", handler.EnrollCourse)
}

// setupAnalyticsRoutes configures attendance analytics routes
func setupAnalyticsRoutes(router fiber.Router, handler *handlers.AnalyticsHandler) {
	router.Post("/attendance", handler.GenerateAttendance)
	router.Get("/attendance", handler.ListAttendance)
}

// setupLedgerRoutes configures the institute-wide expense and audit listings
func setupLedgerRoutes(router fiber.Router, handler *handlers.EmployeeHandler) {
	router.Get("/expenses", handler.ListExpenses)
	router.Get("/operations", handler.ListOperations)
}
