package routes

import (
	"net/http"

	"opentrivia/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	sessionHandler *handlers.SessionHandler,
	questionHandler *handlers.QuestionHandler,
) {
	router.POST("/session", sessionHandler.CreateSession)
	router.GET("/questions", questionHandler.GetQuestions)

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
