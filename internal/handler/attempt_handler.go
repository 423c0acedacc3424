package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	apperrors "github.com/yourusername/quizarena-api/internal/pkg/errors"
	"github.com/yourusername/quizarena-api/internal/service"
)

// AttemptHandler обрабатывает запросы жизненного цикла попыток:
// завершение викторины, просмотр истории, редактирование ответов
type AttemptHandler struct {
	attemptService *service.AttemptService
}

// NewAttemptHandler создает новый обработчик попыток
func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

// CompleteQuizRequest представляет запрос на завершение викторины
type CompleteQuizRequest struct {
	PlayerName string   `json:"player_name" binding:"required,max=50"`
	Answers    []string `json:"answers" binding:"required"`
}

// CompleteQuiz обрабатывает завершение викторины игроком
func (h *AttemptHandler) CompleteQuiz(c *gin.Context) {
	quizID := c.MustGet("quizID").(string)

	var req CompleteQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.attemptService.CompleteQuiz(req.PlayerName, quizID, req.Answers)
	if err != nil {
		h.handleAttemptError(c, err)
		return
	}

	c.JSON(http.StatusCreated, summary)
}

// ListPastAttempts возвращает историю попыток игрока
func (h *AttemptHandler) ListPastAttempts(c *gin.Context) {
	playerName := c.MustGet("playerName").(string)

	items, err := h.attemptService.ListPastAttempts(playerName)
	if err != nil {
		h.handleAttemptError(c, err)
		return
	}

	if len(items) == 0 {
		// Пустая история — сообщение, а не ошибка
		c.JSON(http.StatusOK, gin.H{"attempts": []service.AttemptListItem{}, "message": "no past quizzes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"attempts": items})
}

// OpenAttempt возвращает попытку в развёрнутом виде для просмотра/редактирования
func (h *AttemptHandler) OpenAttempt(c *gin.Context) {
	attemptID := c.MustGet("attemptID").(string)

	review, err := h.attemptService.OpenAttempt(attemptID)
	if err != nil {
		h.handleAttemptError(c, err)
		return
	}

	c.JSON(http.StatusOK, review)
}

// SaveEditsRequest представляет запрос на сохранение отредактированных ответов
type SaveEditsRequest struct {
	SelectedOptions []int `json:"selected_options" binding:"required"`
}

// SaveEdits заменяет выбранные варианты попытки и пересчитывает счёт
func (h *AttemptHandler) SaveEdits(c *gin.Context) {
	attemptID := c.MustGet("attemptID").(string)

	var req SaveEditsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.attemptService.SaveEditedAnswers(attemptID, req.SelectedOptions)
	if err != nil {
		h.handleAttemptError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// LockAttempt переводит попытку в заблокированное состояние
func (h *AttemptHandler) LockAttempt(c *gin.Context) {
	attemptID := c.MustGet("attemptID").(string)

	if err := h.attemptService.LockAttempt(attemptID); err != nil {
		h.handleAttemptError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attempt_id": attemptID, "editable": false})
}

// ExportAttempts выгружает историю попыток игрока в CSV или XLSX
func (h *AttemptHandler) ExportAttempts(c *gin.Context) {
	playerName := c.MustGet("playerName").(string)

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unsupported export format: %s", format)})
		return
	}

	items, err := h.attemptService.ListPastAttempts(playerName)
	if err != nil {
		h.handleAttemptError(c, err)
		return
	}

	filename := fmt.Sprintf("attempts_%s_%s", playerName, time.Now().Format("2006-01-02"))

	if format == "xlsx" {
		h.exportXLSX(c, items, filename)
	} else {
		h.exportCSV(c, items, filename)
	}
}

// exportCSV экспортирует историю попыток в CSV с правильным экранированием спецсимволов
func (h *AttemptHandler) exportCSV(c *gin.Context, items []service.AttemptListItem, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	writer.Write([]string{"Викторина", "Очки", "Всего вопросов", "Завершена", "Редактируемая"})

	for _, item := range items {
		editable := "Нет"
		if item.Editable {
			editable = "Да"
		}
		writer.Write([]string{
			sanitizeForExcel(item.QuizTitle),
			strconv.Itoa(item.Score),
			strconv.Itoa(item.TotalQuestions),
			item.CompletedAt.Format(time.RFC3339),
			editable,
		})
	}
}

// exportXLSX экспортирует историю попыток в Excel с использованием StreamWriter
func (h *AttemptHandler) exportXLSX(c *gin.Context, items []service.AttemptListItem, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Попытки"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[AttemptHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	headers := []interface{}{"Викторина", "Очки", "Всего вопросов", "Завершена", "Редактируемая"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[AttemptHandler] Ошибка записи заголовков: %v", err)
	}

	for i, item := range items {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		editable := "Нет"
		if item.Editable {
			editable = "Да"
		}

		row := []interface{}{
			sanitizeForExcel(item.QuizTitle),
			item.Score,
			item.TotalQuestions,
			item.CompletedAt.Format(time.RFC3339),
			editable,
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[AttemptHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[AttemptHandler] Ошибка завершения StreamWriter: %v", err)
	}

	if err := f.Write(c.Writer); err != nil {
		log.Printf("[AttemptHandler] Ошибка записи файла в ответ: %v", err)
	}
}

// sanitizeForExcel экранирует значения, которые Excel может принять за формулу
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleAttemptError преобразует ошибки сервиса попыток в HTTP-ответы.
// Для заблокированной попытки в ответ включается текущий флаг редактируемости,
// чтобы клиент мог согласованно отключить редактирование.
func (h *AttemptHandler) handleAttemptError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrEditingRestricted) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "editable": false})
	} else if errors.Is(err, apperrors.ErrInvalidInput) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrDataCorrupted) {
		log.Printf("ERROR: Data corruption detected in AttemptHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "stored data is inconsistent"})
	} else {
		log.Printf("ERROR: Internal server error in AttemptHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
