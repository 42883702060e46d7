package store

import (
	"errors"
	"strings"
	"time"

	"opentrivia/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuestionFilter is a conjunction of optional predicates. Zero-value fields
// are omitted from the query.
type QuestionFilter struct {
	Category   string // case-insensitive substring match on category_name
	Difficulty string
	Type       string
	ExcludeIDs []string
}

// Store is the storage collaborator consumed by the services. Not-found is
// reported as gorm.ErrRecordNotFound; callers decide whether that is an error.
type Store interface {
	FindQuestions(filter QuestionFilter, limit int) ([]models.Question, error)
	FindSessionByToken(token string) (*models.SessionToken, error)
	CreateSessionToken(token string, servedIDs []string, expiresAt time.Time) (*models.SessionToken, error)
	AppendServedIDs(token string, ids []string) (*models.SessionToken, error)
	UpsertCategory(cat *models.Category) (*models.Category, error)
	CreateQuestionIfAbsent(q *models.Question) (bool, error)
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) FindQuestions(filter QuestionFilter, limit int) ([]models.Question, error) {
	q := s.db.Model(&models.Question{})

	if filter.Category != "" {
		q = q.Where("lower(category_name) LIKE ?", "%"+strings.ToLower(filter.Category)+"%")
	}
	if filter.Difficulty != "" {
		q = q.Where("difficulty = ?", filter.Difficulty)
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if len(filter.ExcludeIDs) > 0 {
		q = q.Where("id NOT IN ?", filter.ExcludeIDs)
	}

	var questions []models.Question
	err := q.Order("created_at DESC").Limit(limit).Find(&questions).Error
	return questions, err
}

// FindSessionByToken treats expired records as not-found; rows past their
// expiry may still exist physically but never contribute an exclusion set.
func (s *GormStore) FindSessionByToken(token string) (*models.SessionToken, error) {
	var session models.SessionToken
	err := s.db.Where("token = ? AND expires_at > ?", token, time.Now()).First(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// CreateSessionToken upserts so that the loser of a concurrent create still
// succeeds; the served sets differ only by interleaving, which is tolerated.
func (s *GormStore) CreateSessionToken(token string, servedIDs []string, expiresAt time.Time) (*models.SessionToken, error) {
	if servedIDs == nil {
		servedIDs = []string{}
	}
	session := models.SessionToken{
		Token:     token,
		ServedIDs: servedIDs,
		ExpiresAt: expiresAt,
	}
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "token"}},
		UpdateAll: true,
	}).Create(&session).Error
	if err != nil {
		return nil, err
	}
	return &session, nil
}

// AppendServedIDs is a read-merge-save, not a transaction. Concurrent appends
// on the same token may interleave or duplicate IDs; exclusion is by set
// membership so that is harmless.
func (s *GormStore) AppendServedIDs(token string, ids []string) (*models.SessionToken, error) {
	var session models.SessionToken
	if err := s.db.Where("token = ?", token).First(&session).Error; err != nil {
		return nil, err
	}
	session.ServedIDs = append(session.ServedIDs, ids...)
	if err := s.db.Save(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// UpsertCategory is keyed by name; an existing row is returned untouched and
// a fresh ID is only generated on the create branch.
func (s *GormStore) UpsertCategory(cat *models.Category) (*models.Category, error) {
	var existing models.Category
	err := s.db.Where("name = ?", cat.Name).First(&existing).Error
	if err == nil {
		*cat = existing
		return cat, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if cat.ID == "" {
		cat.ID = uuid.NewString()
	}
	if err := s.db.Create(cat).Error; err != nil {
		return nil, err
	}
	return cat, nil
}

// CreateQuestionIfAbsent is keyed by exact question text. Returns false when a
// question with identical text already exists.
func (s *GormStore) CreateQuestionIfAbsent(q *models.Question) (bool, error) {
	var count int64
	if err := s.db.Model(&models.Question{}).Where("question = ?", q.Question).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	if err := s.db.Create(q).Error; err != nil {
		return false, err
	}
	return true, nil
}
