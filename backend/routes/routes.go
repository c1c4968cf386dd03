package routes

import (
	"project/backend/config"
	"project/backend/controllers"
	"project/backend/middleware"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Courses routes
	coursesController := controllers.NewCoursesController(db, cfg)
	courses := app.Group("/api/courses", authMiddleware)
	courses.Get("/", coursesController.GetUserCourses)
	courses.Get("/available", coursesController.GetAvailableCourses)
	courses.Post("/", coursesController.CreateCourse)
	courses.Get("/:id", coursesController.GetCourseDetails)
	courses.Post("/:id/enroll", coursesController.EnrollCourse)
	courses.Post("/:id/lessons/:lessonId/complete", coursesController.CompleteLesson)
	courses.Post("/:id/quizzes/:quizId/submit", coursesController.SubmitQuiz)

	// Analytics routes
	analyticsController := controllers.NewAnalyticsController(db, cfg)
	analytics := app.Group("/api/analytics", authMiddleware)
	analytics.Get("/", analyticsController.GetDashboard)
	analytics.Get("/overview", analyticsController.GetOverview)
	analytics.Get("/progress", analyticsController.GetCourseProgress)
	analytics.Get("/activity", analyticsController.GetDailyActivity)
	analytics.Get("/achievements", analyticsController.GetAchievements)
	analytics.Get("/learning-stats", analyticsController.GetLearningStats)
}
