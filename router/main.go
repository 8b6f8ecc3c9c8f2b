package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sahilchouksey/online-lms/database"
	"github.com/sahilchouksey/online-lms/handlers"
	assignment_handlers "github.com/sahilchouksey/online-lms/handlers/assignment"
	auth_handlers "github.com/sahilchouksey/online-lms/handlers/auth"
	category_handlers "github.com/sahilchouksey/online-lms/handlers/category"
	course_handlers "github.com/sahilchouksey/online-lms/handlers/course"
	"github.com/sahilchouksey/online-lms/handlers/docs"
	enrollment_handlers "github.com/sahilchouksey/online-lms/handlers/enrollment"
	material_handlers "github.com/sahilchouksey/online-lms/handlers/material"
	user_handlers "github.com/sahilchouksey/online-lms/handlers/user"
	"github.com/sahilchouksey/online-lms/model"
	"github.com/sahilchouksey/online-lms/services"
	"github.com/sahilchouksey/online-lms/utils"
	"github.com/sahilchouksey/online-lms/utils/auth"
	"github.com/sahilchouksey/online-lms/utils/logger"
	"github.com/sahilchouksey/online-lms/utils/middleware"
)

// Dependencies is everything the routes need, built once at startup
type Dependencies struct {
	Store      database.Storage
	Services   *services.Services
	JWTManager *auth.JWTManager
	Revoker    auth.Revoker

	// nil disables login brute-force protection
	BruteForce *middleware.BruteForceProtection

	Security middleware.SecurityConfig

	// StaticDir is served under /files when the local storage backend is active
	StaticDir string

	Log *logger.Logger
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	authMiddleware := middleware.NewAuthMiddleware(deps.JWTManager, deps.Revoker, log)

	authHandler := auth_handlers.NewAuthHandler(deps.Services.Users, deps.JWTManager, deps.Revoker, deps.BruteForce, log)
	courseHandler := course_handlers.NewCourseHandler(deps.Services.Courses)
	materialHandler := material_handlers.NewMaterialHandler(deps.Services.Materials)
	assignmentHandler := assignment_handlers.NewAssignmentHandler(deps.Services.Assignments)
	enrollmentHandler := enrollment_handlers.NewEnrollmentHandler(deps.Services.Enrollments)
	categoryHandler := category_handlers.NewCategoryHandler(deps.Services.Categories)
	profileHandler := user_handlers.NewProfileHandler(deps.Services.Users)

	// Apply security middleware
	middleware.SetupSecurity(app, deps.Security)

	// Health check endpoint (public)
	app.Get("/ping", utils.MakeHTTPHandleFunc(handlers.HandleCheckHealth, deps.Store))

	if deps.StaticDir != "" {
		app.Static("/files", deps.StaticDir)
	}

	api := app.Group("/api")

	// API docs (public)
	api.Get("/docs", docs.UI)
	api.Get("/docs/openapi.json", docs.Spec)

	// Auth routes
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if deps.BruteForce != nil {
		authGroup.Post("/login", deps.BruteForce.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)

	// Categories
	api.Get("/categories", categoryHandler.ListCategories)

	admin := api.Group("/admin", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleAdmin))
	admin.Post("/categories", categoryHandler.CreateCategory)

	// ==================== Mentor ====================

	mentor := api.Group("/mentor", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleMentor))

	courses := mentor.Group("/courses")
	courses.Post("/", courseHandler.CreateCourse)
	courses.Get("/my", courseHandler.ListMyCourses)
	courses.Put("/:courseId", courseHandler.UpdateCourse)
	courses.Delete("/:courseId", courseHandler.DeleteCourse)
	courses.Post("/:courseId/sections", courseHandler.CreateSection)
	courses.Get("/:courseId/sections", courseHandler.ListSections)
	courses.Post("/:courseId/assignments", assignmentHandler.Create)

	mentor.Post("/sections/:sectionId/topics", courseHandler.CreateTopic)
	mentor.Post("/materials/upload", materialHandler.UploadMaterial)

	// ==================== Student ====================

	student := api.Group("/student", authMiddleware.Required(), authMiddleware.RequireRole(model.RoleStudent))

	studentCourses := student.Group("/courses")
	studentCourses.Get("/", enrollmentHandler.ListCourses)
	studentCourses.Post("/:courseId/enroll", enrollmentHandler.Enroll)
	studentCourses.Get("/:courseId/materials", enrollmentHandler.ListMaterials)

	assignments := student.Group("/assignments")
	assignments.Get("/my-submissions", assignmentHandler.MySubmissions)
	assignments.Get("/course/:courseId", assignmentHandler.ListForCourse)
	assignments.Post("/:assignmentId/submit", assignmentHandler.Submit)

	// ==================== Profiles ====================

	users := api.Group("/users", authMiddleware.Required())
	users.Get("/:id", profileHandler.GetProfile)
	users.Put("/:id", profileHandler.UpdateProfile)
}
