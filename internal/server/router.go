package server

import (
  "strings"

  "github.com/gin-contrib/cors"
  "github.com/gin-gonic/gin"

  "github.com/traitscan/backend/internal/handlers"
  "github.com/traitscan/backend/internal/middleware"
  "github.com/traitscan/backend/internal/types"
)

type RouterConfig struct {
  AllowedOrigins     string
  AuthMiddleware     *middleware.AuthMiddleware
  AuthHandler        *handlers.AuthHandler
  ProfileHandler     *handlers.ProfileHandler
  QuizHandler        *handlers.QuizHandler
  AssessmentHandler  *handlers.AssessmentHandler
  EmployeeHandler    *handlers.EmployeeHandler
  CompanyHandler     *handlers.CompanyHandler
  ApplicationHandler *handlers.ApplicationHandler
  InvitationHandler  *handlers.InvitationHandler
  BillingHandler     *handlers.BillingHandler
  AdminHandler       *handlers.AdminHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
  router := gin.Default()

  origins := []string{"http://localhost:3000", "http://localhost:5173"}
  if cfg.AllowedOrigins != "" {
    origins = strings.Split(cfg.AllowedOrigins, ",")
  }
  router.Use(cors.New(cors.Config{
    AllowOrigins:     origins,
    AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
    AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With", "Stripe-Signature"},
    AllowCredentials: true,
  }))

  router.GET("/healthcheck", handlers.HealthCheck)

  api := router.Group("/api")

  // public: auth bootstrap, tokenized respondent and invite flows, and the
  // payment provider callback
  api.POST("/register", cfg.AuthHandler.Register)
  api.POST("/login", cfg.AuthHandler.Login)
  api.POST("/refresh", cfg.AuthHandler.Refresh)
  api.GET("/assessment/:token", cfg.ApplicationHandler.Open)
  api.POST("/assessment/:token/quiz/:quizId", cfg.ApplicationHandler.SubmitQuiz)
  api.GET("/invite/:token", cfg.InvitationHandler.Get)
  api.POST("/billing/webhook", cfg.BillingHandler.Webhook)

  protected := api.Group("/")
  protected.Use(cfg.AuthMiddleware.RequireAuth())
  protected.POST("/logout", cfg.AuthHandler.Logout)
  protected.GET("/me", cfg.ProfileHandler.GetMe)
  protected.PATCH("/me", cfg.ProfileHandler.UpdateMe)
  protected.POST("/invite/:token/accept", cfg.InvitationHandler.Accept)
  protected.GET("/applications", cfg.ApplicationHandler.List)
  protected.GET("/applications/:id/report", cfg.ApplicationHandler.Report)

  inviters := protected.Group("/")
  inviters.Use(cfg.AuthMiddleware.RequireRole(types.RoleSuperadmin, types.RolePsychologist))
  inviters.POST("/invitations", cfg.InvitationHandler.Create)
  inviters.GET("/invitations", cfg.InvitationHandler.ListMine)

  psychologist := protected.Group("/")
  psychologist.Use(cfg.AuthMiddleware.RequireRole(types.RolePsychologist))
  psychologist.POST("/quizzes", cfg.QuizHandler.Create)
  psychologist.GET("/quizzes", cfg.QuizHandler.List)
  psychologist.GET("/quizzes/:id", cfg.QuizHandler.Get)
  psychologist.PATCH("/quizzes/:id", cfg.QuizHandler.Update)
  psychologist.POST("/quizzes/:id/archive", cfg.QuizHandler.Archive)
  psychologist.POST("/quizzes/:id/duplicate", cfg.QuizHandler.Duplicate)
  psychologist.POST("/quizzes/:id/questions", cfg.QuizHandler.AddQuestion)
  psychologist.PATCH("/questions/:questionId", cfg.QuizHandler.UpdateQuestion)
  psychologist.DELETE("/questions/:questionId", cfg.QuizHandler.DeleteQuestion)
  psychologist.POST("/assessments", cfg.AssessmentHandler.Create)
  psychologist.GET("/assessments", cfg.AssessmentHandler.List)
  psychologist.GET("/assessments/:id", cfg.AssessmentHandler.Get)
  psychologist.PATCH("/assessments/:id", cfg.AssessmentHandler.Update)
  psychologist.POST("/assessments/:id/archive", cfg.AssessmentHandler.Archive)
  psychologist.POST("/assessments/:id/quizzes", cfg.AssessmentHandler.AddQuiz)
  psychologist.DELETE("/assessments/:id/quizzes/:quizId", cfg.AssessmentHandler.RemoveQuiz)
  psychologist.POST("/companies", cfg.CompanyHandler.Create)
  psychologist.GET("/companies", cfg.CompanyHandler.List)
  psychologist.GET("/companies/:id", cfg.CompanyHandler.Get)
  psychologist.PATCH("/companies/:id", cfg.CompanyHandler.Update)
  psychologist.POST("/applications", cfg.ApplicationHandler.Create)

  company := protected.Group("/")
  company.Use(cfg.AuthMiddleware.RequireRole(types.RoleCompany))
  company.POST("/employees", cfg.EmployeeHandler.Create)
  company.GET("/employees", cfg.EmployeeHandler.List)
  company.PATCH("/employees/:id", cfg.EmployeeHandler.Update)
  company.DELETE("/employees/:id", cfg.EmployeeHandler.Delete)
  company.POST("/billing/checkout", cfg.BillingHandler.Checkout)

  admin := protected.Group("/admin")
  admin.Use(cfg.AuthMiddleware.RequireRole(types.RoleSuperadmin))
  admin.GET("/overview", cfg.AdminHandler.Overview)
  admin.GET("/billing", cfg.AdminHandler.BillingSummary)
  admin.GET("/psychologists", cfg.AdminHandler.ListPsychologists)
  admin.POST("/psychologists/:id/active", cfg.AdminHandler.SetPsychologistActive)
  admin.GET("/companies", cfg.AdminHandler.ListCompanies)
  admin.POST("/companies/:id/active", cfg.AdminHandler.SetCompanyActive)
  admin.GET("/invitations", cfg.AdminHandler.ListInvitations)
  admin.POST("/profiles/:id/role", cfg.AdminHandler.SetProfileRole)

  return router
}
