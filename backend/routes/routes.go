package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/zanecat/Employability/backend/config"
	"github.com/zanecat/Employability/backend/controllers"
	"github.com/zanecat/Employability/backend/middleware"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Auth routes
	authController := controllers.NewAuthController(db, cfg)
	app.Post("/api/auth/register", authController.Register)
	app.Post("/api/auth/login", authController.Login)

	// Middleware
	authMiddleware := middleware.AuthMiddleware(cfg)
	adminMiddleware := middleware.AdminMiddleware(db, cfg)
	basicMiddleware := middleware.BasicMiddleware(db, cfg)

	// User routes
	userController := controllers.NewUserController(db, cfg)
	app.Get("/api/user/profile", authMiddleware, userController.GetProfile)
	app.Put("/api/user/profile", authMiddleware, userController.UpdateProfile)

	// Self assessment routes
	selfAssessmentController := controllers.NewSelfAssessmentController(db, cfg)
	app.Get("/api/selfassessments/start", authMiddleware, basicMiddleware, selfAssessmentController.Start)
	app.Get("/api/selfassessments/:id/report", authMiddleware, basicMiddleware, selfAssessmentController.SurveyReport)

	// Core skill routes
	coreSkillController := controllers.NewCoreSkillController(db, cfg)
	app.Get("/api/selfassessments/:id/coreskills", authMiddleware, coreSkillController.Index)
	coreSkills := app.Group("/api/coreskills", authMiddleware)
	coreSkills.Get("/:id", coreSkillController.Details)
	coreSkills.Get("/:id/fillout", basicMiddleware, coreSkillController.FillOutPage)
	coreSkills.Post("/:id/fillout", basicMiddleware, coreSkillController.SaveFillOut)

	// Feedback routes
	feedbackController := controllers.NewFeedbackController(db, cfg)
	app.Post("/api/feedbacks", authMiddleware, basicMiddleware, feedbackController.Create)
	app.Get("/api/admin/feedbacks", authMiddleware, adminMiddleware, feedbackController.Index)

	// Admin routes for self assessments
	adminSelfAssessments := app.Group("/api/admin/selfassessments", authMiddleware, adminMiddleware)
	adminSelfAssessments.Get("/report", selfAssessmentController.SummaryReport)
	adminSelfAssessments.Get("/", selfAssessmentController.Index)
	adminSelfAssessments.Post("/", selfAssessmentController.Create)
	adminSelfAssessments.Get("/:id", selfAssessmentController.Details)
	adminSelfAssessments.Put("/:id", selfAssessmentController.Edit)
	adminSelfAssessments.Post("/:id/coreskills", coreSkillController.Create)

	// Admin routes for schema elements
	elementController := controllers.NewElementController(db, cfg)
	adminCoreSkills := app.Group("/api/admin/coreskills", authMiddleware, adminMiddleware)
	adminCoreSkills.Post("/:id/elements/detailed", elementController.CreateDetailed)
	adminCoreSkills.Post("/:id/elements/text", elementController.CreateText)
	adminCoreSkills.Post("/:id/elements/simplified", elementController.CreateSimplified)
	adminCoreSkills.Delete("/:id/elements/detailed/:elementId", elementController.DeleteDetailed)
	adminCoreSkills.Delete("/:id/elements/text/:elementId", elementController.DeleteText)
	adminCoreSkills.Delete("/:id/elements/simplified/:elementId", elementController.DeleteSimplified)

	adminElements := app.Group("/api/admin/elements", authMiddleware, adminMiddleware)
	adminElements.Put("/detailed/:id", elementController.EditDetailed)
	adminElements.Put("/text/:id", elementController.EditText)
	adminElements.Put("/simplified/:id", elementController.EditSimplified)
}
