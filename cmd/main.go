package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/tdnghia98/Caracal/config"
	"github.com/tdnghia98/Caracal/database"
	_ "github.com/tdnghia98/Caracal/docs" // Swagger docs
	"github.com/tdnghia98/Caracal/internal/auth"
	adminctrl "github.com/tdnghia98/Caracal/internal/controller/admin"
	userctrl "github.com/tdnghia98/Caracal/internal/controller/user"
	"github.com/tdnghia98/Caracal/internal/logger"
	"github.com/tdnghia98/Caracal/internal/repository"
	"github.com/tdnghia98/Caracal/internal/service"
)

// @title School Administration API
// @version 1.0
// @description API for managing tests, students, attempts and teacher provisioning.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			auth.NewHTTPService,
		),

		// Repositories
		fx.Provide(
			repository.NewTestRepository,
			repository.NewQuestionRepository,
			repository.NewStudentRepository,
			repository.NewAttemptRepository,
			repository.NewAttemptAnswerRepository,
			repository.NewUserProfileRepository,
		),

		// Services
		fx.Provide(
			service.NewGradeService,
			service.NewTestService,
			service.NewQuestionService,
			service.NewStudentService,
			service.NewAttemptService,
			service.NewAuthorizationGuard,
			service.NewProvisioningService,
		),

		// Controllers
		fx.Provide(
			adminctrl.NewAdminController,
			adminctrl.NewProvisioningController,
			userctrl.NewAttemptController,
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

	// Wrong method on a known path must answer 405, not 404.
	r.HandleMethodNotAllowed = true

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
		AllowOrigins:              []string{"*"},
		AllowMethods:              []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:              []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:             []string{"Content-Length"},
		AllowCredentials:          true,
		MaxAge:                    12 * time.Hour,
		OptionsResponseStatusCode: http.StatusOK,
	}))
	// Preflight is answered unconditionally, matched route or not.
	r.OPTIONS("/*any", func(c *gin.Context) { c.Status(http.StatusOK) })

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminCtrl *adminctrl.AdminController,
	provisioningCtrl *adminctrl.ProvisioningController,
	attemptCtrl *userctrl.AttemptController,
) {
	apiV1 := router.Group("/api/v1")
	{
		adminGroup := apiV1.Group("/admin")
		{
			adminGroup.POST("/teachers", provisioningCtrl.ProvisionTeacher)
			adminGroup.GET("/teachers/orphans", provisioningCtrl.ListOrphanIdentities)
			adminGroup.PUT("/teachers/:id/profile", provisioningCtrl.RepairProfile)

			adminGroup.POST("/tests", adminCtrl.CreateTest)
			adminGroup.PUT("/tests/:id", adminCtrl.UpdateTest)
			adminGroup.DELETE("/tests/:id", adminCtrl.DeleteTest)
			adminGroup.GET("/tests/:id/questions", adminCtrl.ListQuestions)
			adminGroup.POST("/questions", adminCtrl.CreateQuestion)
			adminGroup.GET("/questions/:id", adminCtrl.GetQuestion)
			adminGroup.PUT("/questions/:id", adminCtrl.UpdateQuestion)
			adminGroup.DELETE("/questions/:id", adminCtrl.DeleteQuestion)
			adminGroup.POST("/students", adminCtrl.CreateStudent)
			adminGroup.GET("/students", adminCtrl.ListStudents)
			adminGroup.GET("/students/:id", adminCtrl.GetStudent)
		}

		apiV1.GET("/tests", attemptCtrl.GetAllTests)
		apiV1.GET("/tests/:id", attemptCtrl.GetTest)
		apiV1.POST("/tests/:id/attempts", attemptCtrl.SubmitTest)
		apiV1.GET("/tests/:id/attempts", attemptCtrl.GetTestAttempts)
		apiV1.GET("/attempts/:id", attemptCtrl.GetAttempt)
		apiV1.PUT("/attempts/:id/answers", attemptCtrl.ReplaceAnswers)
		apiV1.PATCH("/attempts/:id/answers", attemptCtrl.UpsertAnswers)
		apiV1.GET("/students/:id/attempts", attemptCtrl.GetStudentAttempts)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Str("port", cfg.Server.Port).Msg("Starting HTTP server")
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("HTTP server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) {
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("Database migration failed")
	}
	log.Info().Msg("Database migration complete")
}
