package models

// Response codes embedded in the questions response body.
const (
	ResponseCodeSuccess      = 0
	ResponseCodeNoResults    = 1
	ResponseCodeInvalidParam = 2
)

// TriviaQuestion is the wire shape of a served question. IncorrectAnswers is
// always empty for boolean questions.
type TriviaQuestion struct {
	Category         string   `json:"category"`
	Type             string   `json:"type"`
	Difficulty       string   `json:"difficulty"`
	Question         string   `json:"question"`
	CorrectAnswer    string   `json:"correct_answer"`
	IncorrectAnswers []string `json:"incorrect_answers"`
}

type TriviaResponse struct {
	ResponseCode int              `json:"response_code"`
	Results      []TriviaQuestion `json:"results"`
}
