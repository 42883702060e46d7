package handlers

import (
	"log/slog"
	"net/http"

	"opentrivia/models"
	"opentrivia/services"

	"github.com/gin-gonic/gin"
)

type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
	}
}

// GetQuestions serves a filtered batch of questions. Filter values are
// permissive by design, so the only failure surfaced here is an unexpected
// internal one.
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	req := &services.QuestionRequest{
		Amount:     c.Query("amount"),
		Category:   c.Query("category"),
		Difficulty: c.Query("difficulty"),
		Type:       c.Query("type"),
		Token:      c.Query("token"),
	}

	resp, err := h.questionService.GetQuestions(req)
	if err != nil {
		slog.Error("questions request failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{
			"response_code": models.ResponseCodeInvalidParam,
			"error":         "Invalid request",
		})
		return
	}

	c.JSON(http.StatusOK, resp)
}
