package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/itdept/dutyreport/config"
	"github.com/itdept/dutyreport/database"
	_ "github.com/itdept/dutyreport/docs" // Swagger docs - auto-generated
	"github.com/itdept/dutyreport/internal/auth"
	"github.com/itdept/dutyreport/internal/controller"
	"github.com/itdept/dutyreport/internal/logger"
	"github.com/itdept/dutyreport/internal/model"
	"github.com/itdept/dutyreport/internal/repository"
	"github.com/itdept/dutyreport/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Duty Manager Report API
// @version 1.0
// @description Daily checklist/reporting backend: persists submissions, renders them to PDF and emails them to the admin distribution list.
// @host localhost:3000
// @BasePath /
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			NewUserStore,
		),

		fx.Provide(
			repository.NewResponseRepository,
		),

		fx.Provide(
			service.NewReportRenderer,
			service.NewPDFGenerator,
			service.NewMailer,
			service.NewSubmissionService,
		),

		fx.Provide(
			controller.NewResponseController,
			controller.NewAuthController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

func NewUserStore(cfg *config.Config) (*auth.Store, error) {
	return auth.NewStore(cfg.Auth.UsersFile)
}

// RegisterRoutesAndStartServer wires the HTTP surface and manages the server
// lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	responseCtrl *controller.ResponseController,
	authCtrl *controller.AuthController,
) error {
	if err := os.MkdirAll(cfg.Report.PDFDir, 0o755); err != nil {
		return err
	}

	router.POST("/save-response", responseCtrl.SaveResponse)
	router.POST("/login", authCtrl.Login)

	// Generated reports are served read-only, addressable by the exact
	// fileName returned from /save-response.
	router.Static("/pdfs", cfg.Report.PDFDir)
	if cfg.Report.LogoPath != "" {
		router.StaticFile("/logo.png", cfg.Report.LogoPath)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Duty Manager Report server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})

	return nil
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Response{},
		&model.ResponseField{},
		&model.ResponseAction{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
