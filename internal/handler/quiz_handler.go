package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yourusername/quizarena-api/internal/handler/dto"
	apperrors "github.com/yourusername/quizarena-api/internal/pkg/errors"
	"github.com/yourusername/quizarena-api/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с викторинами
type QuizHandler struct {
	authoringService *service.AuthoringService
	attemptService   *service.AttemptService
}

// NewQuizHandler создает новый обработчик викторин
func NewQuizHandler(
	authoringService *service.AuthoringService,
	attemptService *service.AttemptService,
) *QuizHandler {
	return &QuizHandler{
		authoringService: authoringService,
		attemptService:   attemptService,
	}
}

// QuestionSubmissionRequest представляет один вопрос в запросе на создание викторины
type QuestionSubmissionRequest struct {
	Text          string   `json:"text" binding:"required"`
	Options       []string `json:"options" binding:"required"`
	CorrectAnswer string   `json:"correct_answer" binding:"required"`
	Category      string   `json:"category"`
	Difficulty    string   `json:"difficulty"`
}

// CreateQuizRequest представляет запрос на создание викторины
type CreateQuizRequest struct {
	Title       string                      `json:"title" binding:"required,max=100"`
	CreatorName string                      `json:"creator_name" binding:"required,max=50"`
	Category    string                      `json:"category" binding:"omitempty,max=100"`
	Difficulty  string                      `json:"difficulty" binding:"omitempty,max=20"`
	Questions   []QuestionSubmissionRequest `json:"questions" binding:"required,dive"`
}

// CreateQuiz обрабатывает запрос на создание викторины
func (h *QuizHandler) CreateQuiz(c *gin.Context) {
	var req CreateQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	submissions := make([]service.QuestionSubmission, 0, len(req.Questions))
	for _, q := range req.Questions {
		submissions = append(submissions, service.QuestionSubmission{
			Text:          q.Text,
			Options:       q.Options,
			CorrectAnswer: q.CorrectAnswer,
			Category:      q.Category,
			Difficulty:    q.Difficulty,
		})
	}

	quiz, err := h.authoringService.CreateQuiz(req.Title, req.CreatorName, req.Category, req.Difficulty, submissions)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuizResponse(quiz, true))
}

// GetQuiz возвращает викторину вместе с вопросами
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(string) // Получаем из контекста

	quiz, err := h.authoringService.GetQuiz(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, true))
}

// ListQuizzes возвращает список викторин.
// Параметр creator ограничивает список викторинами одного создателя.
func (h *QuizHandler) ListQuizzes(c *gin.Context) {
	creator := c.Query("creator")

	if creator != "" {
		list, listErr := h.authoringService.ListQuizzesByCreator(creator)
		if listErr != nil {
			h.handleQuizError(c, listErr)
			return
		}
		c.JSON(http.StatusOK, gin.H{"quizzes": dto.NewQuizListResponse(list)})
		return
	}

	list, err := h.authoringService.ListQuizzes()
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quizzes": dto.NewQuizListResponse(list)})
}

// GetRankings возвращает таблицу результатов викторины
func (h *QuizHandler) GetRankings(c *gin.Context) {
	quizID := c.MustGet("quizID").(string)

	entries, err := h.attemptService.GetQuizRankings(quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"quiz_id": quizID, "rankings": entries})
}

// handleQuizError преобразует ошибки сервисов в HTTP-ответы
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
