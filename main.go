package main

import (
	"flag"
	"log/slog"
	"os"

	"opentrivia/config"
	"opentrivia/handlers"
	"opentrivia/middleware"
	"opentrivia/models"
	"opentrivia/routes"
	"opentrivia/services"
	"opentrivia/store"

	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
)

func main() {
	seedPath := flag.String("seed", "", "path to a JSON seed file to load before serving")
	flag.Parse()

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, nil)))

	cfg := config.Load()

	db, err := config.InitDB(cfg)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	err = db.AutoMigrate(
		&models.Category{},
		&models.Question{},
		&models.SessionToken{},
	)
	if err != nil {
		slog.Error("failed to migrate database", "error", err)
		os.Exit(1)
	}

	redisClient := config.InitRedis(cfg)

	st := store.NewGormStore(db)
	sessionService := services.NewSessionService(st, redisClient)
	questionService := services.NewQuestionService(st, sessionService)

	if *seedPath != "" {
		report, err := services.NewSeedService(st).SeedFromFile(*seedPath)
		if err != nil {
			slog.Error("seeding failed", "error", err)
			os.Exit(1)
		}
		slog.Info("catalog seeded",
			"categories", report.CategoriesUpserted,
			"created", report.QuestionsCreated,
			"skipped", report.QuestionsSkipped,
		)
	}

	sessionHandler := handlers.NewSessionHandler(sessionService)
	questionHandler := handlers.NewQuestionHandler(questionService)

	router := gin.Default()
	router.Use(middleware.CORS())
	routes.SetupRoutes(router, sessionHandler, questionHandler)

	slog.Info("server starting", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
