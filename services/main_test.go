package services

import (
	"fmt"
	"testing"
	"time"

	"opentrivia/models"
	"opentrivia/store"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) (*store.GormStore, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// a second connection to :memory: would be a different database
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Category{}, &models.Question{}, &models.SessionToken{})
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return store.NewGormStore(db), db
}

// insertQuestion creates a catalog row aged by age so created-at ordering is
// deterministic in tests.
func insertQuestion(t *testing.T, db *gorm.DB, category, qType, difficulty, text string, age time.Duration) models.Question {
	t.Helper()

	q := models.Question{
		ID:               uuid.NewString(),
		CategoryName:     category,
		Type:             qType,
		Difficulty:       difficulty,
		Question:         text,
		CorrectAnswer:    "correct",
		IncorrectAnswers: []string{"wrong 1", "wrong 2", "wrong 3"},
		CreatedAt:        time.Now().Add(-age),
	}
	if err := db.Create(&q).Error; err != nil {
		t.Fatalf("failed to insert question: %v", err)
	}
	return q
}

func insertQuestions(t *testing.T, db *gorm.DB, category string, n int) []models.Question {
	t.Helper()

	questions := make([]models.Question, n)
	for i := 0; i < n; i++ {
		text := fmt.Sprintf("%s question #%d", category, i)
		questions[i] = insertQuestion(t, db, category, models.TypeMultiple, models.DifficultyEasy, text, time.Duration(i)*time.Minute)
	}
	return questions
}
