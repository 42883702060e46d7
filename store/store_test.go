package store

import (
	"testing"

	"opentrivia/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestStore(t *testing.T) (*GormStore, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(&models.Category{}, &models.Question{}, &models.SessionToken{})
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return NewGormStore(db), db
}

func TestUpsertCategoryIdempotent(t *testing.T) {
	st, db := newTestStore(t)

	first, err := st.UpsertCategory(&models.Category{Name: "Arrays", Slug: "arrays", ExtID: 31})
	if err != nil {
		t.Fatalf("first upsert failed: %v", err)
	}
	if first.ID == "" {
		t.Fatal("created category has no ID")
	}

	// second upsert with the same name must find the row, not insert again
	second, err := st.UpsertCategory(&models.Category{Name: "Arrays", Slug: "arrays", ExtID: 31})
	if err != nil {
		t.Fatalf("second upsert failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second upsert returned ID %q, want existing %q", second.ID, first.ID)
	}

	var count int64
	db.Model(&models.Category{}).Where("name = ?", "Arrays").Count(&count)
	if count != 1 {
		t.Errorf("got %d rows for the category, want 1", count)
	}
}
