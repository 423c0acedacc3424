package service

import (
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quizarena-api/internal/domain/entity"
	"github.com/yourusername/quizarena-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizarena-api/internal/pkg/errors"
)

// AttemptSummary представляет итог завершения или редактирования попытки
type AttemptSummary struct {
	AttemptID      string    `json:"attempt_id"`
	QuizID         string    `json:"quiz_id"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Editable       bool      `json:"editable"`
	CompletedAt    time.Time `json:"completed_at"`
}

// AttemptListItem представляет строку списка прошлых попыток игрока
type AttemptListItem struct {
	AttemptID      string    `json:"attempt_id"`
	QuizID         string    `json:"quiz_id"`
	QuizTitle      string    `json:"quiz_title"`
	Score          int       `json:"score"`
	TotalQuestions int       `json:"total_questions"`
	Editable       bool      `json:"editable"`
	CompletedAt    time.Time `json:"completed_at"`
}

// ReviewRow представляет один вопрос попытки при просмотре/редактировании
type ReviewRow struct {
	QuestionText   string   `json:"question_text"`
	Options        []string `json:"options"`
	CorrectOption  int      `json:"correct_option"`
	SelectedOption int      `json:"selected_option"`
}

// AttemptReview представляет открытую для просмотра попытку
type AttemptReview struct {
	AttemptID string      `json:"attempt_id"`
	QuizID    string      `json:"quiz_id"`
	QuizTitle string      `json:"quiz_title"`
	Score     int         `json:"score"`
	Editable  bool        `json:"editable"`
	Rows      []ReviewRow `json:"rows"`
}

// RankingEntry представляет строку таблицы результатов викторины
type RankingEntry struct {
	Position    int       `json:"position"`
	PlayerName  string    `json:"player_name"`
	Score       int       `json:"score"`
	CompletedAt time.Time `json:"completed_at"`
}

// AttemptService управляет жизненным циклом попыток: завершение викторины,
// просмотр истории, открытие и редактирование сохранённых ответов
type AttemptService struct {
	attemptRepo repository.AttemptRepository
	resolver    *quizResolver
}

// NewAttemptService создает новый сервис попыток
func NewAttemptService(
	attemptRepo repository.AttemptRepository,
	quizRepo repository.QuizRepository,
	cacheRepo repository.CacheRepository,
	cacheTTL time.Duration,
) *AttemptService {
	return &AttemptService{
		attemptRepo: attemptRepo,
		resolver:    newQuizResolver(quizRepo, cacheRepo, cacheTTL),
	}
}

// CompleteQuiz подсчитывает результат по текстовым ответам, создает попытку
// в редактируемом состоянии и сохраняет её
func (s *AttemptService) CompleteQuiz(playerName, quizID string, answers []string) (*AttemptSummary, error) {
	if strings.TrimSpace(playerName) == "" {
		return nil, fmt.Errorf("%w: player name must not be blank", apperrors.ErrInvalidInput)
	}

	quiz, err := s.resolver.Resolve(quizID)
	if err != nil {
		return nil, err
	}

	score := ScoreByText(quiz.Questions, answers)

	// Выбранные варианты для последующего редактирования выводятся из текстов
	// ответов: индекс первого совпадающего варианта, -1 если ответа не было
	selected := make(entity.IntArray, len(quiz.Questions))
	for i, question := range quiz.Questions {
		selected[i] = entity.UnansweredOption
		if i >= len(answers) {
			continue
		}
		for j, option := range question.Options {
			if option == answers[i] {
				selected[i] = j
				break
			}
		}
	}

	attempt := &entity.QuizAttempt{
		ID:              uuid.NewString(),
		PlayerName:      playerName,
		QuizID:          quiz.ID,
		TotalQuestions:  len(quiz.Questions),
		UserAnswers:     entity.StringArray(answers),
		SelectedOptions: selected,
		Score:           score,
		Editable:        true,
		CompletedAt:     time.Now(),
	}

	if err := s.attemptRepo.Save(attempt); err != nil {
		return nil, fmt.Errorf("failed to save attempt: %w", err)
	}

	return &AttemptSummary{
		AttemptID:      attempt.ID,
		QuizID:         attempt.QuizID,
		Score:          attempt.Score,
		TotalQuestions: attempt.TotalQuestions,
		Editable:       attempt.Editable,
		CompletedAt:    attempt.CompletedAt,
	}, nil
}

// ListPastAttempts возвращает сводки всех попыток игрока.
// Пустой список не является ошибкой: решение о сообщении
// "нет прошлых викторин" принимает вызывающая сторона.
func (s *AttemptService) ListPastAttempts(playerName string) ([]AttemptListItem, error) {
	attempts, err := s.attemptRepo.GetByPlayer(playerName)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts for player %s: %w", playerName, err)
	}

	items := make([]AttemptListItem, 0, len(attempts))
	for _, attempt := range attempts {
		quiz, err := s.resolveAttemptQuiz(&attempt)
		if err != nil {
			return nil, err
		}

		items = append(items, AttemptListItem{
			AttemptID:      attempt.ID,
			QuizID:         attempt.QuizID,
			QuizTitle:      quiz.Label(),
			Score:          attempt.Score,
			TotalQuestions: attempt.TotalQuestions,
			Editable:       attempt.Editable,
			CompletedAt:    attempt.CompletedAt,
		})
	}

	return items, nil
}

// OpenAttempt возвращает попытку в развёрнутом виде: по строке на вопрос
// с вариантами, индексом правильного ответа и текущим выбором игрока
func (s *AttemptService) OpenAttempt(attemptID string) (*AttemptReview, error) {
	attempt, err := s.attemptRepo.GetByID(attemptID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.resolveAttemptQuiz(attempt)
	if err != nil {
		return nil, err
	}

	rows := make([]ReviewRow, 0, len(quiz.Questions))
	for i, question := range quiz.Questions {
		selected := entity.UnansweredOption
		if i < len(attempt.SelectedOptions) {
			selected = attempt.SelectedOptions[i]
		}
		rows = append(rows, ReviewRow{
			QuestionText:   question.Text,
			Options:        question.Options,
			CorrectOption:  question.CorrectOptionIndex(),
			SelectedOption: selected,
		})
	}

	return &AttemptReview{
		AttemptID: attempt.ID,
		QuizID:    quiz.ID,
		QuizTitle: quiz.Label(),
		Score:     attempt.Score,
		Editable:  attempt.Editable,
		Rows:      rows,
	}, nil
}

// SaveEditedAnswers заменяет выбранные варианты попытки и пересчитывает счёт.
// Попытка остаётся редактируемой: сохранение не блокирует её.
func (s *AttemptService) SaveEditedAnswers(attemptID string, selectedOptions []int) (*AttemptSummary, error) {
	attempt, err := s.attemptRepo.GetByID(attemptID)
	if err != nil {
		return nil, err
	}

	if !attempt.Editable {
		return nil, apperrors.ErrEditingRestricted
	}

	quiz, err := s.resolveAttemptQuiz(attempt)
	if err != nil {
		return nil, err
	}

	// Во время редактирования список выбранных вариантов совпадает по длине
	// со списком вопросов; слоты без ответа передаются как -1
	if len(selectedOptions) != len(quiz.Questions) {
		return nil, fmt.Errorf("%w: expected %d selected options, got %d",
			apperrors.ErrInvalidInput, len(quiz.Questions), len(selectedOptions))
	}
	for i, selected := range selectedOptions {
		if !quiz.Questions[i].IsValidOption(selected) {
			return nil, fmt.Errorf("%w: option %d is out of range for question %d",
				apperrors.ErrInvalidInput, selected, i+1)
		}
	}

	score := ScoreByOption(quiz.Questions, selectedOptions)

	if err := s.attemptRepo.UpdateAnswers(attemptID, entity.IntArray(selectedOptions), score); err != nil {
		return nil, err
	}

	return &AttemptSummary{
		AttemptID:      attempt.ID,
		QuizID:         attempt.QuizID,
		Score:          score,
		TotalQuestions: attempt.TotalQuestions,
		Editable:       true,
		CompletedAt:    attempt.CompletedAt,
	}, nil
}

// LockAttempt переводит попытку в заблокированное состояние (внешняя политика).
// Повторная блокировка уже заблокированной попытки не является ошибкой.
func (s *AttemptService) LockAttempt(attemptID string) error {
	return s.attemptRepo.SetEditable(attemptID, false)
}

// GetQuizRankings возвращает таблицу результатов викторины: сортировка по
// убыванию счёта, при равенстве — по времени завершения
func (s *AttemptService) GetQuizRankings(quizID string) ([]RankingEntry, error) {
	if _, err := s.resolver.Resolve(quizID); err != nil {
		return nil, err
	}

	attempts, err := s.attemptRepo.GetByQuiz(quizID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts for quiz %s: %w", quizID, err)
	}

	sort.SliceStable(attempts, func(i, j int) bool {
		if attempts[i].Score != attempts[j].Score {
			return attempts[i].Score > attempts[j].Score
		}
		return attempts[i].CompletedAt.Before(attempts[j].CompletedAt)
	})

	entries := make([]RankingEntry, 0, len(attempts))
	for i, attempt := range attempts {
		entries = append(entries, RankingEntry{
			Position:    i + 1,
			PlayerName:  attempt.PlayerName,
			Score:       attempt.Score,
			CompletedAt: attempt.CompletedAt,
		})
	}

	return entries, nil
}

// resolveAttemptQuiz разрешает викторину, на которую ссылается попытка.
// Отсутствие викторины для существующей попытки означает повреждение данных
// хранилища, а не ошибку пользовательского ввода.
func (s *AttemptService) resolveAttemptQuiz(attempt *entity.QuizAttempt) (*entity.Quiz, error) {
	quiz, err := s.resolver.Resolve(attempt.QuizID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[AttemptService] Попытка %s ссылается на несуществующую викторину %s",
				attempt.ID, attempt.QuizID)
			return nil, fmt.Errorf("%w: attempt %s references missing quiz %s",
				apperrors.ErrDataCorrupted, attempt.ID, attempt.QuizID)
		}
		return nil, err
	}
	return quiz, nil
}
