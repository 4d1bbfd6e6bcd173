package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/tsmfield/os-backend/internal/handlers/dto"
	httphandlers "github.com/tsmfield/os-backend/internal/handlers/http"
	"github.com/tsmfield/os-backend/internal/handlers/middleware"
	"github.com/tsmfield/os-backend/internal/infrastructure/auth"
	"github.com/tsmfield/os-backend/internal/infrastructure/config"
	"github.com/tsmfield/os-backend/internal/infrastructure/export"
	"github.com/tsmfield/os-backend/internal/infrastructure/i18n"
	"github.com/tsmfield/os-backend/internal/infrastructure/logging"
	"github.com/tsmfield/os-backend/internal/infrastructure/persistence/postgres"
	"github.com/tsmfield/os-backend/internal/infrastructure/vision"
	"github.com/tsmfield/os-backend/internal/services"
)

// @title Service Order API
// @description API de gestão de ordens de serviço de campo
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// .env é opcional; em produção as variáveis vêm do ambiente
	_ = godotenv.Load()

	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting service order backend",
		"env", cfg.Env,
		"version", "dev",
	)

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}

	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := i18n.NewService("./internal/infrastructure/i18n/locales", "en")
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	// Inicializar repositories e capacidades injetadas
	userRepo := postgres.NewUserRepository(db)
	orderRepo := postgres.NewOrderRepository(db)
	uow := postgres.NewUnitOfWork(db)
	hasher := auth.NewBcryptHasher()
	tokens := auth.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpirationHours)
	visionClient := vision.NewClient(cfg.Vision, logger)
	exporter := export.NewExcelExporter()

	// Seed do administrador inicial
	if err := postgres.SeedAdmin(context.Background(), userRepo, hasher, cfg.Seed, logger); err != nil {
		logger.Error("failed to seed admin user", "error", err)
		log.Fatal(err)
	}

	// Inicializar services
	authService := services.NewAuthService(userRepo, uow, hasher, tokens, logger)
	userService := services.NewUserService(userRepo, logger)
	orderService := services.NewOrderService(orderRepo, exporter, logger, cfg.Policy.RestrictOrderMutation)
	ocrService := services.NewOCRService(visionClient, logger)

	// Inicializar handlers
	authHandler := httphandlers.NewAuthHandler(authService)
	userHandler := httphandlers.NewUserHandler(userService)
	orderHandler := httphandlers.NewOrderHandler(orderService)
	ocrHandler := httphandlers.NewOCRHandler(ocrService)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := dto.RegisterCustomValidators(); err != nil {
		logger.Error("failed to register validators", "error", err)
		log.Fatal(err)
	}

	router := gin.Default()

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.Server.BaseURL)
		c.Next()
	})

	// Middleware i18n
	i18nMiddleware := middleware.NewI18nMiddleware(i18nService)
	router.Use(i18nMiddleware.DetectLanguage())

	// Middleware CORS
	corsConfig := cors.DefaultConfig()
	if cfg.CORS.AllowedOrigins == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(cfg.CORS.AllowedOrigins, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes
	authMiddleware := middleware.NewAuthMiddleware(authService)

	api := router.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": dto.T(c, "message.api_banner")})
		})

		// Auth
		api.POST("/auth/login", authHandler.Login)

		authenticated := api.Group("", authMiddleware.RequireAuth())
		{
			// Registro é autenticado: apenas admins criam usuários
			authenticated.POST("/auth/register", authHandler.Register)
			authenticated.GET("/auth/me", authHandler.Me)

			// Users (admin)
			authenticated.GET("/users", userHandler.ListUsers)
			authenticated.DELETE("/users/:id", userHandler.DeleteUser)

			// Service orders
			orders := authenticated.Group("/service-orders")
			{
				orders.POST("", orderHandler.CreateOrder)
				orders.GET("", orderHandler.ListOrders)
				orders.GET("/stats", orderHandler.Stats)
				orders.GET("/export", orderHandler.ExportOrders)
				orders.GET("/:id", orderHandler.GetOrder)
				orders.PUT("/:id", orderHandler.UpdateOrder)
				orders.DELETE("/:id", orderHandler.DeleteOrder)
			}

			// OCR
			authenticated.POST("/ocr", ocrHandler.ProcessImage)
		}
	}

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
