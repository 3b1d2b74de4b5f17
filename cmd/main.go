package main

import (
  "fmt"
  "os"
  "time"

  "github.com/joho/godotenv"

  "github.com/traitscan/backend/internal/db"
  "github.com/traitscan/backend/internal/handlers"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/middleware"
  "github.com/traitscan/backend/internal/repos"
  "github.com/traitscan/backend/internal/server"
  "github.com/traitscan/backend/internal/services"
  "github.com/traitscan/backend/internal/utils"
)

func main() {
  _ = godotenv.Load()

  // Logger
  logMode := os.Getenv("LOG_MODE")
  if logMode == "" {
    logMode = "development"
  }
  log, err := logger.New(logMode)
  if err != nil {
    fmt.Printf("Failed to init logger: %v\n", err)
    os.Exit(1)
  }
  defer log.Sync()

  // Env
  log.Info("Loading environment variables from main...")
  jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
  accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
  refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)
  stripeAPIKey := utils.GetEnv("STRIPE_API_KEY", "", log)
  stripeWebhookSecret := utils.GetEnv("STRIPE_WEBHOOK_SECRET", "", log)
  stripePriceID := utils.GetEnv("STRIPE_PRICE_ID", "", log)
  if stripePriceID == "" {
    log.Error("STRIPE_PRICE_ID is required")
    os.Exit(1)
  }
  appBaseURL := utils.GetEnv("APP_BASE_URL", "https://trait-scan.vercel.app", log)
  stripeSuccessURL := utils.GetEnv("STRIPE_SUCCESS_URL", appBaseURL+"/company/subscription?status=success", log)
  stripeCancelURL := utils.GetEnv("STRIPE_CANCEL_URL", appBaseURL+"/company/subscription?status=cancel", log)
  allowedOrigins := utils.GetEnv("CORS_ALLOWED_ORIGINS", "", log)

  // Postgres
  postgresService, err := db.NewPostgresService(log)
  if err != nil {
    log.Error("Postgres init failed", "error", err)
    os.Exit(1)
  }
  if err = postgresService.AutoMigrateAll(); err != nil {
    log.Error("Postgres auto migration failed", "error", err)
    os.Exit(1)
  }
  thePG := postgresService.DB()

  // Redis (optional, only the admin overview cache uses it)
  redisClient, err := db.NewRedisClient(log)
  if err != nil {
    log.Warn("Redis init failed, overview cache disabled", "error", err)
    redisClient = nil
  }

  // Repos
  log.Info("Setting up Repos from main...")
  profileRepo := repos.NewProfileRepo(thePG, log)
  userTokenRepo := repos.NewUserTokenRepo(thePG, log)
  psychologistRepo := repos.NewPsychologistRepo(thePG, log)
  companyRepo := repos.NewCompanyRepo(thePG, log)
  employeeRepo := repos.NewEmployeeRepo(thePG, log)
  quizRepo := repos.NewQuizRepo(thePG, log)
  questionRepo := repos.NewQuestionRepo(thePG, log)
  alternativeRepo := repos.NewAlternativeRepo(thePG, log)
  assessmentRepo := repos.NewAssessmentRepo(thePG, log)
  applicationRepo := repos.NewApplicationRepo(thePG, log)
  responseRepo := repos.NewResponseRepo(thePG, log)
  invitationRepo := repos.NewInvitationRepo(thePG, log)
  webhookEventRepo := repos.NewWebhookEventRepo(thePG, log)

  // Services
  log.Info("Setting up Services from main...")
  authService := services.NewAuthService(thePG, log, profileRepo, userTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
  profileService := services.NewProfileService(log, profileRepo)
  quizService := services.NewQuizService(thePG, log, quizRepo, questionRepo, alternativeRepo)
  assessmentService := services.NewAssessmentService(log, assessmentRepo, quizRepo)
  employeeService := services.NewEmployeeService(log, employeeRepo)
  companyService := services.NewCompanyService(log, companyRepo)
  applicationService := services.NewApplicationService(thePG, log, applicationRepo, assessmentRepo, responseRepo)
  scoringService := services.NewScoringService(log, applicationRepo, assessmentRepo, responseRepo)
  invitationService := services.NewInvitationService(thePG, log, invitationRepo, profileRepo, psychologistRepo, companyRepo)
  stripeClient := services.NewStripeClient(stripeAPIKey, stripeWebhookSecret)
  billingService := services.NewBillingService(log, companyRepo, webhookEventRepo, stripeClient, services.CheckoutConfig{
    PriceID:    stripePriceID,
    SuccessURL: stripeSuccessURL,
    CancelURL:  stripeCancelURL,
  })
  adminService := services.NewAdminService(log, redisClient, psychologistRepo, companyRepo, employeeRepo, applicationRepo, invitationRepo)

  // Handlers
  log.Info("Setting up handlers from main...")
  authHandler := handlers.NewAuthHandler(authService)
  profileHandler := handlers.NewProfileHandler(profileService)
  quizHandler := handlers.NewQuizHandler(quizService)
  assessmentHandler := handlers.NewAssessmentHandler(assessmentService)
  employeeHandler := handlers.NewEmployeeHandler(employeeService, companyService)
  companyHandler := handlers.NewCompanyHandler(companyService)
  applicationHandler := handlers.NewApplicationHandler(applicationService, scoringService, companyService)
  invitationHandler := handlers.NewInvitationHandler(invitationService)
  billingHandler := handlers.NewBillingHandler(log, billingService, companyService)
  adminHandler := handlers.NewAdminHandler(adminService, profileService)

  // Middleware
  log.Info("Setting up middleware from main...")
  authMiddleware := middleware.NewAuthMiddleware(log, authService)

  // Router
  log.Info("Setting up router from main...")
  router := server.NewRouter(server.RouterConfig{
    AllowedOrigins:     allowedOrigins,
    AuthMiddleware:     authMiddleware,
    AuthHandler:        authHandler,
    ProfileHandler:     profileHandler,
    QuizHandler:        quizHandler,
    AssessmentHandler:  assessmentHandler,
    EmployeeHandler:    employeeHandler,
    CompanyHandler:     companyHandler,
    ApplicationHandler: applicationHandler,
    InvitationHandler:  invitationHandler,
    BillingHandler:     billingHandler,
    AdminHandler:       adminHandler,
  })

  port := utils.GetEnv("PORT", "8080", log)
  log.Info("Server listening", "port", port)
  if err := router.Run(":" + port); err != nil {
    log.Error("Server failed", "error", err)
  }
}
