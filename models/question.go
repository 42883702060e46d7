package models

import (
	"time"

	"gorm.io/datatypes"
)

// Question types. Boolean questions are True/False; their incorrect answers
// are never exposed on the wire.
const (
	TypeMultiple = "multiple"
	TypeBoolean  = "boolean"
)

const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Question is an immutable catalog entry. CategoryName is a denormalized copy
// of the category's name; no foreign key is enforced.
type Question struct {
	ID               string                      `json:"id" gorm:"primaryKey"`
	CategoryName     string                      `json:"category_name" gorm:"not null;index"`
	Type             string                      `json:"type" gorm:"size:10;not null"`
	Difficulty       string                      `json:"difficulty" gorm:"size:10;not null"`
	Question         string                      `json:"question" gorm:"not null;uniqueIndex"`
	CorrectAnswer    string                      `json:"correct_answer" gorm:"not null"`
	IncorrectAnswers datatypes.JSONSlice[string] `json:"incorrect_answers" gorm:"column:incorrect_answers"`
	CreatedAt        time.Time                   `json:"created_at"`
}

func IsValidDifficulty(d string) bool {
	return d == DifficultyEasy || d == DifficultyMedium || d == DifficultyHard
}

func IsValidType(t string) bool {
	return t == TypeMultiple || t == TypeBoolean
}
