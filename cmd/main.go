package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/htdang/familylegacy/config"
	"github.com/htdang/familylegacy/database"
	_ "github.com/htdang/familylegacy/docs" // Swagger docs - auto-generated
	"github.com/htdang/familylegacy/internal/autosave"
	adminctrl "github.com/htdang/familylegacy/internal/controller/admin"
	userctrl "github.com/htdang/familylegacy/internal/controller/user"
	"github.com/htdang/familylegacy/internal/dto"
	"github.com/htdang/familylegacy/internal/logger"
	"github.com/htdang/familylegacy/internal/model"
	"github.com/htdang/familylegacy/internal/repository"
	"github.com/htdang/familylegacy/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// draftQuietInterval is how long a question's draft buffer must be quiet
// before its text is committed through the save pipeline.
const draftQuietInterval = 2 * time.Second

// @title Family Legacy API
// @version 1.0
// @description Multi-tenant questionnaire API: participants answer reflection questions grouped into sections; answers auto-save, progress is recomputed on every save, and admins are notified on section completion and profile changes.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
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
			repository.NewUserRepository,
			repository.NewSectionRepository,
			repository.NewQuestionRepository,
			repository.NewResponseRepository,
			repository.NewProgressRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewMailer,
			service.NewNotificationService,
			service.NewProgressService,
			service.NewResponseService,
			service.NewSectionService,
			service.NewUserService,
			service.NewAdminSectionService,
			service.NewAdminOverviewService,
		),

		// Debounced auto-save buffer, committing through the response service
		fx.Provide(NewDraftManager),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminController,
			userctrl.NewParticipantController,
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
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Tag every request with an id so log lines can be correlated.
	r.Use(func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Writer.Header().Set("X-Request-ID", requestID)
		c.Next()
	})

	// Request logging through zerolog instead of Gin's default logger.
	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		event := log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage)
		if requestID, ok := param.Keys["request_id"].(string); ok {
			event = event.Str("request_id", requestID)
		}
		event.Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// NewDraftManager wires the debounced answer buffer to the save pipeline and
// ties its teardown to the application lifecycle so no commit can fire after
// shutdown.
func NewDraftManager(lc fx.Lifecycle, responseService service.ResponseService) *autosave.Manager {
	manager := autosave.NewManager(draftQuietInterval, func(userID, sectionID, questionID uint, answer string) error {
		_, err := responseService.SaveAnswer(dto.SaveResponseRequest{
			UserID:     userID,
			SectionID:  sectionID,
			QuestionID: questionID,
			Answer:     answer,
		})
		return err
	})

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			manager.Close()
			return nil
		},
	})
	return manager
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminCtrl *adminctrl.AdminController,
	participantCtrl *userctrl.ParticipantController,
) {
	// Admin Routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		adminAPIGroup.GET("/overview", adminCtrl.GetOverview)
		adminAPIGroup.GET("/participants", adminCtrl.GetParticipants)
		adminAPIGroup.GET("/participants/:user_id", adminCtrl.GetParticipantDetail)
		adminAPIGroup.GET("/users", adminCtrl.ListUsers)
		adminAPIGroup.POST("/users", adminCtrl.CreateUser)
		adminAPIGroup.DELETE("/users", adminCtrl.DeleteUsers)
		adminAPIGroup.POST("/sections", adminCtrl.CreateSection)
		adminAPIGroup.DELETE("/responses", adminCtrl.DeleteResponse)
	}

	// User Routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		userAPIGroup.GET("/sections", participantCtrl.GetSections)
		userAPIGroup.GET("/sections/:section_id", participantCtrl.GetSection)
		userAPIGroup.GET("/sections/:section_id/questions", participantCtrl.GetSectionQuestions)
		userAPIGroup.GET("/sections/:section_id/responses", participantCtrl.GetSectionResponses)
		userAPIGroup.GET("/sections/:section_id/progress", participantCtrl.GetSectionProgress)

		userAPIGroup.POST("/responses", participantCtrl.SaveResponse)
		userAPIGroup.POST("/responses/draft", participantCtrl.PushDraft)
		userAPIGroup.GET("/responses/draft/status", participantCtrl.DraftStatus)

		userAPIGroup.GET("/users/:user_id/progress", participantCtrl.GetUserProgress)
		userAPIGroup.GET("/users/:user_id/profile", participantCtrl.GetProfile)
		userAPIGroup.PUT("/users/:user_id/profile", participantCtrl.UpdateProfile)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Family Legacy API server starting on port %s", cfg.Server.Port)
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
		&model.User{},
		&model.Section{},
		&model.Question{},
		&model.Response{},
		&model.Progress{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
