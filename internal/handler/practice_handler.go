package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/yourusername/quizarena-api/internal/pkg/errors"
	"github.com/yourusername/quizarena-api/internal/service"
)

// PracticeHandler обрабатывает генерацию тренировочных викторин
type PracticeHandler struct {
	practiceService *service.PracticeService
}

// NewPracticeHandler создает новый обработчик тренировочных викторин
func NewPracticeHandler(practiceService *service.PracticeService) *PracticeHandler {
	return &PracticeHandler{practiceService: practiceService}
}

// GeneratePracticeRequest представляет запрос на генерацию тренировочной викторины
type GeneratePracticeRequest struct {
	Count int `json:"count" binding:"required"`
}

// GeneratePractice создает тренировочную викторину из неправильных ответов игрока
func (h *PracticeHandler) GeneratePractice(c *gin.Context) {
	playerName := c.MustGet("playerName").(string)

	var req GeneratePracticeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.practiceService.Generate(playerName, req.Count)
	if err != nil {
		h.handlePracticeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, result)
}

// handlePracticeError преобразует ошибки генератора в HTTP-ответы
func (h *PracticeHandler) handlePracticeError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrInsufficientData) {
		// Сообщение содержит точное количество доступных вопросов
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrCreationFailure) {
		log.Printf("ERROR: Practice quiz creation failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrDataCorrupted) {
		log.Printf("ERROR: Data corruption detected in PracticeHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored data is inconsistent"})
	} else {
		log.Printf("ERROR: Internal server error in PracticeHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
