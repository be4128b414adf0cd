package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/leiritrix/crm-api/internal/application/analytics"
	"github.com/leiritrix/crm-api/internal/application/auth"
	"github.com/leiritrix/crm-api/internal/application/reports"
	"github.com/leiritrix/crm-api/internal/application/usecase"
	"github.com/leiritrix/crm-api/internal/infrastructure/mongodb"
	infrapdf "github.com/leiritrix/crm-api/internal/infrastructure/pdf"
	httpRouter "github.com/leiritrix/crm-api/internal/interfaces/http"
	"github.com/leiritrix/crm-api/pkg/config"
	"github.com/leiritrix/crm-api/pkg/logger"
)

const appVersion = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	client, db, err := mongodb.Connect(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a MongoDB")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("desconectar MongoDB")
		}
	}()

	userRepo := mongodb.NewUserRepository(db)
	saleRepo := mongodb.NewSaleRepository(db)
	analyticsRepo := mongodb.NewAnalyticsRepository(db)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:   cfg.JWT.Secret,
		ExpHours: cfg.JWT.ExpirationHours,
		Issuer:   cfg.JWT.Issuer,
	}, auth.BootstrapAdmin{
		Email:    cfg.Admin.Email,
		Password: cfg.Admin.Password,
		Name:     cfg.Admin.Name,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	saleUC := usecase.NewSaleUseCase(saleRepo)
	dashboardUC := analytics.NewDashboardUseCase(analyticsRepo)
	reportUC := reports.NewReportUseCase(saleRepo, infrapdf.NewMarotoReportGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CRM Leiritrix API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		UserUC:      userUC,
		SaleUC:      saleUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		UserRepo:    userRepo,
		JWTSecret:   cfg.JWT.Secret,
		AppName:     cfg.App.Name,
		AppVersion:  appVersion,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
