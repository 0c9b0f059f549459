package config

import (
	"context"
	"fmt"
	"nutrilog-backend/internal/api/handlers"
	"nutrilog-backend/internal/api/routes"
	"nutrilog-backend/internal/logging"
	"nutrilog-backend/internal/metrics"
	"nutrilog-backend/internal/middleware"
	"nutrilog-backend/internal/utils"
	"nutrilog-backend/internal/utils/mailing"
	"nutrilog-backend/internal/utils/storage"
	"nutrilog-backend/pkg/daylog"
	"nutrilog-backend/pkg/draft"
	"nutrilog-backend/pkg/food"
	"nutrilog-backend/pkg/goal"
	"nutrilog-backend/pkg/jwt"
	"nutrilog-backend/pkg/lineitem"
	"nutrilog-backend/pkg/lookup"
	"nutrilog-backend/pkg/note"
	"nutrilog-backend/pkg/recipe"
	"nutrilog-backend/pkg/weight"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// App is the HTTP server plus the day log sessions it drives.
type App struct {
	Fiber    *fiber.App
	Registry *daylog.Registry
	logFile  *os.File
}

// Shutdown stops accepting requests and waits for pending day log writes.
func (a *App) Shutdown(ctx context.Context) error {
	err := a.Fiber.ShutdownWithContext(ctx)
	a.Registry.Wait()
	if a.logFile != nil {
		a.logFile.Close()
	}
	return err
}

func NewLogger() (*logging.Logger, error) {
	return logging.NewLogger(logging.Config{
		Level:  utils.GetConfig("LOG_LEVEL"),
		Format: utils.GetConfig("LOG_FORMAT"),
	})
}

// NewApp wires repositories, services and handlers. Session eviction runs
// until ctx is done.
func NewApp(ctx context.Context, db *gorm.DB, log *logging.Logger) (*App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate
	m := metrics.NewMetrics()

	// setting up logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, fmt.Errorf("error creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}
	app.Use(recover.New())
	app.Use(middlewares.RequestIDMiddleware())
	app.Use(logger.New(logger.Config{
		Format:     "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	lookupClient := lookup.NewUSDAClient(lookup.Config{
		BaseURL:       utils.GetConfig("USDA_BASE_URL"),
		APIKey:        utils.GetConfig("USDA_API_KEY"),
		RatePerSecond: utils.GetConfigFloat("USDA_RATE_PER_SECOND", 5),
	}, log, m)

	var mailer mailing.Mailer
	if mailConfig := mailing.LoadMailConfig(); mailConfig.Enabled() {
		mailer = mailing.NewMailer(mailConfig)
	} else {
		log.Info(ctx, "smtp not configured, note notifications disabled")
	}

	draftStore, err := newDraftStore(ctx, db)
	if err != nil {
		file.Close()
		return nil, err
	}

	// Repository
	dayLogRepository := daylog.NewDayLogRepository(db)
	foodRepository := food.NewFoodRepository(db)
	recipeRepository := recipe.NewRecipeRepository(db)
	goalRepository := goal.NewGoalRepository(db)
	weightRepository := weight.NewWeightRepository(db)
	noteRepository := note.NewNoteRepository(db)

	// Service
	jwtService := jwt.NewJWTService(utils.GetConfig("JWT_SECRET"), utils.GetConfig("JWT_ISSUER"))
	foodService := food.NewFoodService(foodRepository, lookupClient)
	recipeService := recipe.NewRecipeService(recipeRepository, foodService)

	resolver := daylog.NewResolver(dayLogRepository, log, m)
	idleMinutes := utils.GetConfigInt("SESSION_IDLE_MINUTES", 30)
	if idleMinutes <= 0 {
		idleMinutes = 30
	}
	idleTTL := time.Duration(idleMinutes) * time.Minute
	registry := daylog.NewRegistry(dayLogRepository, resolver, log, m, idleTTL)
	go registry.Run(ctx, idleTTL/2)
	dayLogService := daylog.NewDayLogService(
		dayLogRepository,
		resolver,
		registry,
		lineitem.NewResolver(foodService, recipeService),
	)

	goalService := goal.NewGoalService(goalRepository, dayLogService)
	weightService := weight.NewWeightService(weightRepository)
	noteService := note.NewNoteService(noteRepository, mailer, log)
	draftService := draft.NewDraftService(draftStore)

	// Handler
	dayLogHandler := handlers.NewDayLogHandler(dayLogService, validator)
	foodHandler := handlers.NewFoodHandler(foodService, validator)
	recipeHandler := handlers.NewRecipeHandler(recipeService, validator)
	goalHandler := handlers.NewGoalHandler(goalService, validator)
	weightHandler := handlers.NewWeightHandler(weightService, validator)
	noteHandler := handlers.NewNoteHandler(noteService, validator)
	draftHandler := handlers.NewDraftHandler(draftService, validator)

	// routes
	routesConfig := routes.Config{
		App:           app,
		DayLogHandler: dayLogHandler,
		FoodHandler:   foodHandler,
		RecipeHandler: recipeHandler,
		GoalHandler:   goalHandler,
		WeightHandler: weightHandler,
		NoteHandler:   noteHandler,
		DraftHandler:  draftHandler,
		Middleware:    middlewares,
		JWTService:    jwtService,
	}
	routesConfig.Setup()

	return &App{Fiber: app, Registry: registry, logFile: file}, nil
}

func newDraftStore(ctx context.Context, db *gorm.DB) (draft.Store, error) {
	switch backend := utils.GetConfig("DRAFT_BACKEND"); backend {
	case "", "postgres":
		return draft.NewGormStore(db), nil
	case "s3":
		s3, err := storage.NewAwsS3(ctx)
		if err != nil {
			return nil, err
		}
		return draft.NewS3Store(s3), nil
	default:
		return nil, fmt.Errorf("unknown DRAFT_BACKEND %q", backend)
	}
}

// NewWeekMigrator builds the legacy week migration used by the CLI.
func NewWeekMigrator(db *gorm.DB, log *logging.Logger) *daylog.WeekMigrator {
	repo := daylog.NewDayLogRepository(db)
	return daylog.NewWeekMigrator(repo, daylog.NewResolver(repo, log, metrics.NewMetrics()), log)
}
