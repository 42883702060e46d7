package services

import (
	"errors"
	"log/slog"
	"strconv"

	"opentrivia/models"
	"opentrivia/store"
)

const (
	defaultAmount = 10
	minAmount     = 1
	maxAmount     = 50
)

// QuestionRequest carries the raw query parameters of a questions request.
// Every field is optional; unrecognized values are normalized away rather
// than rejected.
type QuestionRequest struct {
	Amount     string
	Category   string
	Difficulty string
	Type       string
	Token      string
}

type QuestionService struct {
	store    store.Store
	sessions *SessionService
}

func NewQuestionService(st store.Store, sessions *SessionService) *QuestionService {
	return &QuestionService{
		store:    st,
		sessions: sessions,
	}
}

// ParseAmount normalizes the requested batch size: absent or non-numeric
// falls back to the default, everything else is clamped to [1, 50]. Atoi
// saturates on out-of-range numbers, so those still clamp instead of
// falling back.
func ParseAmount(raw string) int {
	if raw == "" {
		return defaultAmount
	}
	n, err := strconv.Atoi(raw)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return defaultAmount
	}
	if n < minAmount {
		return minAmount
	}
	if n > maxAmount {
		return maxAmount
	}
	return n
}

// GetQuestions selects a bounded batch of matching questions, newest first,
// excluding anything already served to the request's session token. When a
// token was given and results were produced, the served history is updated;
// a failure there is logged but never withholds the already-computed results.
func (s *QuestionService) GetQuestions(req *QuestionRequest) (*models.TriviaResponse, error) {
	amount := ParseAmount(req.Amount)

	filter := store.QuestionFilter{Category: req.Category}
	if models.IsValidDifficulty(req.Difficulty) {
		filter.Difficulty = req.Difficulty
	}
	if models.IsValidType(req.Type) {
		filter.Type = req.Type
	}

	if req.Token != "" {
		served, err := s.sessions.GetExclusionSet(req.Token)
		if err != nil {
			return nil, err
		}
		filter.ExcludeIDs = served
	}

	questions, err := s.store.FindQuestions(filter, amount)
	if err != nil {
		return nil, err
	}

	results := make([]models.TriviaQuestion, 0, len(questions))
	for _, q := range questions {
		incorrect := []string(q.IncorrectAnswers)
		if q.Type == models.TypeBoolean || incorrect == nil {
			incorrect = []string{}
		}
		results = append(results, models.TriviaQuestion{
			Category:         q.CategoryName,
			Type:             q.Type,
			Difficulty:       q.Difficulty,
			Question:         q.Question,
			CorrectAnswer:    q.CorrectAnswer,
			IncorrectAnswers: incorrect,
		})
	}

	if req.Token != "" && len(questions) > 0 {
		ids := make([]string, len(questions))
		for i, q := range questions {
			ids[i] = q.ID
		}
		if err := s.sessions.AppendServed(req.Token, ids); err != nil {
			slog.Error("failed to record served questions", "token", req.Token, "error", err)
		}
	}

	code := models.ResponseCodeNoResults
	if len(results) > 0 {
		code = models.ResponseCodeSuccess
	}
	return &models.TriviaResponse{ResponseCode: code, Results: results}, nil
}
