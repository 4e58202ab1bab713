package app

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/garvthakre/kf12/internal/config"
	"github.com/garvthakre/kf12/internal/handlers"
	"github.com/garvthakre/kf12/internal/middleware"
	"github.com/garvthakre/kf12/internal/pdf"
	"github.com/garvthakre/kf12/internal/repositories"
	"github.com/garvthakre/kf12/internal/routes"
	"github.com/garvthakre/kf12/internal/services"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/garvthakre/kf12/docs"
)

func Run() {
	cfg := config.LoadConfig()
	secret := []byte(cfg.Auth.JWTSecret)

	// === DB ===
	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	tenantRepo := repositories.NewTenantRepository(db)
	userRepo := repositories.NewUserRepository(db)
	contactRepo := repositories.NewContactRepository(db)
	companyRepo := repositories.NewCompanyRepository(db)
	leadRepo := repositories.NewLeadRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	opportunityRepo := repositories.NewOpportunityRepository(db)
	pipelineRepo := repositories.NewPipelineRepository(db)
	taskRepo := repositories.NewTaskRepository(db)
	interactionRepo := repositories.NewInteractionRepository(db)
	activityRepo := repositories.NewActivityRepository(db)

	// === Services ===
	authService := services.NewAuthService()
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
	)
	telegramService := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)

	userService := services.NewUserService(userRepo, authService)
	contactService := services.NewContactService(db, contactRepo)
	companyService := services.NewCompanyService(companyRepo)
	leadService := services.NewLeadService(db, leadRepo, tagRepo, userRepo)
	opportunityService := services.NewOpportunityService(opportunityRepo, pipelineRepo)
	pipelineService := services.NewPipelineService(pipelineRepo)
	taskService := services.NewTaskService(db, taskRepo, userRepo, emailService)
	interactionService := services.NewInteractionService(db, interactionRepo)
	webhookService := services.NewWebhookService(
		db, tenantRepo, contactService, leadRepo, activityRepo,
		emailService, cfg.Email.NotifyEmail, telegramService,
	)

	pdfGen := pdf.NewReportGenerator(cfg.Reports.FontPath)
	reportService := services.NewReportService(tenantRepo, leadRepo, opportunityRepo, pdfGen)

	// === Handlers ===
	authHandler := handlers.NewAuthHandler(userRepo, authService, secret)
	userHandler := handlers.NewUserHandler(userService)
	contactHandler := handlers.NewContactHandler(contactService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	leadHandler := handlers.NewLeadHandler(leadService)
	opportunityHandler := handlers.NewOpportunityHandler(opportunityService)
	pipelineHandler := handlers.NewPipelineHandler(pipelineService)
	taskHandler := handlers.NewTaskHandler(taskService)
	interactionHandler := handlers.NewInteractionHandler(interactionService)
	activityHandler := handlers.NewActivityHandler(activityRepo)
	webhookHandler := handlers.NewWebhookHandler(webhookService)
	reportHandler := handlers.NewReportHandler(reportService)

	// === Gin ===
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(corsMiddleware())

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Роуты (JWT/RBAC — внутри SetupRoutes)
	routes.SetupRoutes(
		router,
		secret,
		userRepo,
		authHandler,
		userHandler,
		contactHandler,
		companyHandler,
		leadHandler,
		opportunityHandler,
		pipelineHandler,
		taskHandler,
		interactionHandler,
		activityHandler,
		webhookHandler,
		reportHandler,
	)

	// === Run ===
	listenAddr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Сервер запущен на %s", listenAddr)
	if err := router.Run(listenAddr); err != nil {
		log.Fatal("Ошибка запуска сервера: ", err)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
