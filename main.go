package main

import (
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	swag "github.com/gofiber/swagger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	_ "sandra-backend/docs" // registers the swagger spec

	"sandra-backend/config"
	"sandra-backend/controller"
	"sandra-backend/dto"
	"sandra-backend/middleware"
	"sandra-backend/repository"
	"sandra-backend/seeder"
	"sandra-backend/service"
	"sandra-backend/util"
)

// @title           Sandra Backend API
// @version         1.0
// @description     Config, mail and Sandra helper endpoints.

// @contact.name    API Support
// @contact.email   support@sandra.app

// @host            localhost:4000
// @BasePath        /api/v1
func main() {
	envErr := godotenv.Load()

	cfg := config.Load()
	logger := config.InitLogger(cfg.LogLevel)
	defer logger.Sync()

	if envErr != nil {
		logger.Warn("failed to load .env file, using system environment variables", zap.Error(envErr))
	}

	db, err := util.InitDB(cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}

	seeder.SeedConfigs(db, logger)

	configRepo := repository.NewConfigRepository(db)
	util.StartDailyPurge(configRepo, cfg.ConfigPurgeAfter, logger)

	configService := service.NewConfigService(configRepo, cfg.ConfigCacheTTL, logger)
	mailService := service.NewMailService(newMailProvider(cfg, logger), configService, cfg.Mail.TemplateDir, cfg.BaseURL, logger)
	sandraService := service.NewSandraHelperService(cfg.Sandra.KeyPath, cfg.Sandra.KeyPassphrase)

	app := fiber.New()
	setupRoutes(app, cfg, logger, configService, mailService, sandraService)

	logger.Info("listening", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}

func newMailProvider(cfg *config.Config, logger *zap.Logger) service.MailProvider {
	if cfg.Mail.Driver == "smtp" {
		logger.Info("mail driver: smtp", zap.String("host", cfg.SMTP.Host))
		return service.NewSMTPProvider(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass)
	}
	if cfg.Mail.APIKey == "" {
		logger.Warn("MAIL_API_KEY is empty, mail delivery will be rejected by the provider")
	}
	return service.NewMandrillProvider(cfg.Mail.APIKey, cfg.Mail.APIURL, cfg.Mail.Timeout)
}

func setupRoutes(app *fiber.App, cfg *config.Config, logger *zap.Logger, configService *service.ConfigService, mailService *service.MailService, sandraService *service.SandraHelperService) {
	app.Use(middleware.RequestLogger(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	app.Get("/swagger/*", swag.HandlerDefault)

	// Without a public key no bearer token can be verified and every request is anonymous.
	publicKey, err := util.ParseRSAPublicKey(cfg.Auth.PublicKeyPEM)
	if err != nil {
		logger.Warn("RSA_PUBLIC_KEY not usable, bearer tokens will be ignored", zap.Error(err))
	}

	profileController := controller.NewProfileController()
	configController := controller.NewConfigController(configService, logger)
	mailController := controller.NewMailController(mailService, logger)
	sandraController := controller.NewSandraController(sandraService, logger)

	api := app.Group("/api/v1",
		middleware.AttachUser(publicKey),
		middleware.AttachFeatures(configService, logger),
	)

	api.Get("/me", profileController.Me)
	api.Get("/features", profileController.Features)

	configs := api.Group("/configs", middleware.RequireUser("admin"))
	configs.Get("/", configController.List)
	configs.Get("/:id", configController.Get)
	configs.Put("/", middleware.ValidateBody[dto.SetConfigRequest](), configController.Set)
	configs.Delete("/:id", configController.Delete)

	api.Post("/mail/template",
		middleware.RequireUser(),
		middleware.RateLimiter(cfg.Mail.RateLimit, time.Minute),
		middleware.ValidateBody[dto.TemplateMail](),
		mailController.SendTemplate,
	)

	api.Post("/sandra/token", middleware.RequireUser(), sandraController.Token)
}
