package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Procyon/config"
	"github.com/lshigami/Procyon/database"
	_ "github.com/lshigami/Procyon/docs" // Swagger docs - auto-generated
	adminctrl "github.com/lshigami/Procyon/internal/controller/admin"
	authctrl "github.com/lshigami/Procyon/internal/controller/auth"
	publicctrl "github.com/lshigami/Procyon/internal/controller/public"
	studentctrl "github.com/lshigami/Procyon/internal/controller/student"
	"github.com/lshigami/Procyon/internal/logger"
	"github.com/lshigami/Procyon/internal/middleware"
	"github.com/lshigami/Procyon/internal/model"
	"github.com/lshigami/Procyon/internal/repository"
	"github.com/lshigami/Procyon/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @title Exam Portal API
// @version 1.0
// @description Web-based assessment portal: admins author timed multiple-choice exams, students take them inside an availability window, scoring applies negative marking.
// @contact.name API Support
// @contact.email support@example.com
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase, // Provides *gorm.DB
			NewGinEngine,         // Provides *gin.Engine
		),

		// Repositories Layer
		fx.Provide(
			repository.NewAdminRepository,
			repository.NewStudentRepository,
			repository.NewExamRepository,
			repository.NewResultRepository,
			repository.NewViolationRepository,
			repository.NewResultViewRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAuthService,
			service.NewExamService,
			service.NewStudentService,
			service.NewStudentExamService,
			service.NewSubmissionService,
			service.NewViolationService,
			service.NewImportService,
			service.NewMailerService,
			service.NewNotificationService,
			service.NewStatsService,
		),

		// API Controllers Layer
		fx.Provide(
			authctrl.NewAuthController,
			adminctrl.NewExamController,
			adminctrl.NewStudentController,
			studentctrl.NewExamController,
			publicctrl.NewStatsController,
		),

		// Invokers - Functions that are executed by Fx
		fx.Invoke(AutoMigrateDB),
		fx.Invoke(SeedAdmin),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Route Gin's request log through zerolog.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *authctrl.AuthController,
	adminExamCtrl *adminctrl.ExamController,
	adminStudentCtrl *adminctrl.StudentController,
	studentExamCtrl *studentctrl.ExamController,
	statsCtrl *publicctrl.StatsController,
) {
	api := router.Group("/api/v1")

	authn := middleware.Authenticate(cfg.JWT.Secret)
	adminOnly := middleware.RequireRole(middleware.RoleAdmin)
	studentOnly := middleware.RequireRole(middleware.RoleStudent)

	// Unauthenticated routes
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login/admin", authCtrl.LoginAdmin)
		authGroup.POST("/login/student", authCtrl.LoginStudent)
	}

	publicGroup := api.Group("/public")
	{
		publicGroup.GET("/recent-exams", statsCtrl.RecentExams)
		publicGroup.GET("/top-performers", statsCtrl.TopPerformers)
		publicGroup.GET("/stats", statsCtrl.PlatformStats)
	}

	// Admin routes
	adminGroup := api.Group("/admin", authn, adminOnly)
	{
		adminGroup.POST("/students", adminStudentCtrl.CreateStudent)
		adminGroup.GET("/students", adminStudentCtrl.ListStudents)
		adminGroup.PATCH("/students/:id/toggle-block", adminStudentCtrl.ToggleBlock)
		adminGroup.POST("/import-students", adminStudentCtrl.ImportStudents)
		adminGroup.POST("/send-exam-link", adminStudentCtrl.SendExamLink)
		adminGroup.GET("/exams/:id/results", adminExamCtrl.ListResults)
	}

	// Exam routes: authoring is admin-only, attempt operations student-only.
	examGroup := api.Group("/exam", authn)
	{
		examGroup.POST("", adminOnly, adminExamCtrl.CreateExam)
		examGroup.GET("", adminOnly, adminExamCtrl.ListExams)
		examGroup.GET("/:id", adminOnly, adminExamCtrl.GetExam)
		examGroup.PUT("/:id", adminOnly, adminExamCtrl.UpdateExam)
		examGroup.DELETE("/:id/delete", adminOnly, adminExamCtrl.DeleteExam)
		examGroup.PATCH("/:id/toggle", adminOnly, adminExamCtrl.ToggleActive)

		examGroup.POST("/:id/check-access", studentOnly, studentExamCtrl.CheckAccess)
		examGroup.POST("/:id/start", studentOnly, studentExamCtrl.StartExam)
		examGroup.POST("/:id/submit", studentOnly, studentExamCtrl.SubmitExam)
		examGroup.POST("/:id/violation", studentOnly, studentExamCtrl.ReportViolation)
		examGroup.GET("/:id/result", studentOnly, studentExamCtrl.GetResult)
	}

	// Student routes
	studentGroup := api.Group("/student", authn, studentOnly)
	{
		studentGroup.GET("/exams", studentExamCtrl.ListExams)
		studentGroup.POST("/check-exam", studentExamCtrl.CheckExam)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Exam portal server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
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
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Admin{},
		&model.Student{},
		&model.Exam{},
		&model.Question{},
		&model.Result{},
		&model.ViolationEvent{},
		&model.ResultView{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}

// SeedAdmin creates the bootstrap admin account when the table is empty.
func SeedAdmin(adminRepo repository.AdminRepository, cfg *config.Config) error {
	count, err := adminRepo.Count()
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.Admin.Email == "" || cfg.Admin.Password == "" {
		log.Warn().Msg("No admin accounts exist and no bootstrap admin configured")
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Admin.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := model.Admin{
		Name:     cfg.Admin.Name,
		Email:    cfg.Admin.Email,
		Password: string(hash),
	}
	if err := adminRepo.Create(&admin); err != nil {
		return err
	}
	log.Info().Str("email", admin.Email).Msg("Bootstrap admin account created")
	return nil
}
