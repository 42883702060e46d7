package services

import (
	"encoding/json"
	"fmt"
	"os"

	"opentrivia/models"
	"opentrivia/store"
)

// SeedFile is the JSON shape of a catalog seed file.
type SeedFile struct {
	Categories []SeedCategory `json:"categories"`
	Questions  []SeedQuestion `json:"questions"`
}

type SeedCategory struct {
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	ExtID int    `json:"ext_id"`
}

type SeedQuestion struct {
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Category         string   `json:"category"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type SeedReport struct {
	CategoriesUpserted int
	QuestionsCreated   int
	QuestionsSkipped   int
}

type SeedService struct {
	store store.Store
}

func NewSeedService(st store.Store) *SeedService {
	return &SeedService{store: st}
}

func (s *SeedService) SeedFromFile(path string) (*SeedReport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var file SeedFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse seed file: %w", err)
	}

	return s.Seed(&file)
}

// Seed is idempotent: categories are upserted by name and questions are
// created only when no row with identical text exists. Questions referencing
// a category absent from the file are skipped, mirroring write-time
// validation of the free-text category label.
func (s *SeedService) Seed(file *SeedFile) (*SeedReport, error) {
	report := &SeedReport{}

	known := make(map[string]bool, len(file.Categories))
	for _, c := range file.Categories {
		cat := models.Category{
			Name:  c.Name,
			Slug:  c.Slug,
			ExtID: c.ExtID,
		}
		if _, err := s.store.UpsertCategory(&cat); err != nil {
			return nil, fmt.Errorf("failed to upsert category %q: %w", c.Name, err)
		}
		known[c.Name] = true
		report.CategoriesUpserted++
	}

	for _, q := range file.Questions {
		if !known[q.Category] {
			report.QuestionsSkipped++
			continue
		}

		question := models.Question{
			CategoryName:     q.Category,
			Type:             q.Type,
			Difficulty:       q.Difficulty,
			Question:         q.Question,
			CorrectAnswer:    q.CorrectAnswer,
			IncorrectAnswers: q.IncorrectAnswers,
		}
		created, err := s.store.CreateQuestionIfAbsent(&question)
		if err != nil {
			return nil, fmt.Errorf("failed to create question %q: %w", q.Question, err)
		}
		if created {
			report.QuestionsCreated++
		} else {
			report.QuestionsSkipped++
		}
	}

	return report, nil
}
