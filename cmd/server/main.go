package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/FEgor04/moretech-hack/internal/apperror"
	"github.com/FEgor04/moretech-hack/internal/config"
	"github.com/FEgor04/moretech-hack/internal/domain/fiber/handler"
	"github.com/FEgor04/moretech-hack/internal/middleware"
	"github.com/FEgor04/moretech-hack/internal/model"
	"github.com/FEgor04/moretech-hack/internal/repository"
	"github.com/FEgor04/moretech-hack/internal/service"
	"github.com/FEgor04/moretech-hack/internal/session"
	"github.com/FEgor04/moretech-hack/internal/usecase"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	ctx := context.Background()
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError

			var e *fiber.Error
			switch {
			case errors.As(err, &e):
				code = e.Code
			case apperror.IsNotFound(err):
				code = fiber.StatusNotFound
			case apperror.IsConflict(err):
				code = fiber.StatusConflict
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: config.LoadAppConfig().Env != "production",
	}))

	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return config.LoadAppConfig().Env == "production"
		},
	}))
	app.Use(healthcheck.New())

	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))

	app.Use(middleware.RateLimiter(100, 1*time.Minute))

	db := ConnectDB()

	candidateRepo := repository.NewCandidateRepository(db)
	vacancyRepo := repository.NewVacancyRepository(db)
	interviewRepo := repository.NewInterviewRepository(db)
	embeddingRepo := repository.NewEmbeddingRepository(db)
	noteRepo := repository.NewNoteRepository(db)

	gigachat := service.NewGigaChatService()
	gemini, err := service.NewGeminiService(ctx)
	if err != nil {
		log.Fatal(err)
	}
	skills := service.NewSkillsService(gigachat)

	embeddingUC := usecase.NewEmbeddingUsecase(embeddingRepo, gemini)
	candidateUC := usecase.NewCandidateUsecase(candidateRepo, embeddingUC, gigachat)
	vacancyUC := usecase.NewVacancyUsecase(vacancyRepo, noteRepo, embeddingUC, gigachat)
	interviewUC := usecase.NewInterviewUsecase(interviewRepo, candidateRepo, vacancyRepo, gigachat)
	compatibilityUC := usecase.NewCompatibilityUsecase(candidateRepo, vacancyRepo, embeddingRepo, embeddingUC, skills)

	sessions := session.NewStore(appConfig.RecordingsDir)

	handler.NewCandidateHandler(candidateUC).RegisterRoutes(app)
	handler.NewVacancyHandler(vacancyUC).RegisterRoutes(app)
	handler.NewInterviewHandler(interviewUC).RegisterRoutes(app)
	handler.NewCompatibilityHandler(compatibilityUC).RegisterRoutes(app)
	handler.NewRecordingHandler(interviewUC, sessions, nil).RegisterRoutes(app)

	log.Println("Server running on ", appConfig.Port)
	if err := app.Listen(appConfig.Port); err != nil {
		log.Fatal(err)
	}
}

func ConnectDB() *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
		dbConfig.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Could not connect to database: %v", err)
	}
	pgDB, err := db.DB()
	if err != nil {
		log.Fatalf("Could not get database instance: %v", err)
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	// uuid_generate_v4 and the vector column type need these extensions.
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		log.Fatal("failed to create uuid-ossp extension: ", err)
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS vector`).Error; err != nil {
		log.Fatal("failed to create vector extension: ", err)
	}

	err = db.AutoMigrate(
		&model.Candidate{},
		&model.Vacancy{},
		&model.Note{},
		&model.Interview{},
		&model.InterviewMessage{},
		&model.CandidateEmbedding{},
		&model.VacancyEmbedding{},
	)
	if err != nil {
		log.Fatal("migration failed: ", err)
	}
	return db
}
