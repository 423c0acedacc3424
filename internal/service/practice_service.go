package service

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"strings"
	"time"

	"github.com/yourusername/quizarena-api/internal/domain/entity"
	"github.com/yourusername/quizarena-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizarena-api/internal/pkg/errors"
)

// PracticeResult представляет итог генерации тренировочной викторины
type PracticeResult struct {
	QuizID        string   `json:"quiz_id"`
	QuestionCount int      `json:"question_count"`
	QuestionTexts []string `json:"question_texts"`
}

// PracticeService генерирует тренировочные викторины из вопросов,
// на которые игрок ответил неправильно
type PracticeService struct {
	attemptRepo repository.AttemptRepository
	factory     repository.PracticeQuizFactory
	resolver    *quizResolver
	rng         *rand.Rand
}

// NewPracticeService создает новый сервис тренировочных викторин
func NewPracticeService(
	attemptRepo repository.AttemptRepository,
	quizRepo repository.QuizRepository,
	cacheRepo repository.CacheRepository,
	factory repository.PracticeQuizFactory,
	cacheTTL time.Duration,
) *PracticeService {
	return &PracticeService{
		attemptRepo: attemptRepo,
		factory:     factory,
		resolver:    newQuizResolver(quizRepo, cacheRepo, cacheTTL),
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetRand подменяет источник случайности (для детерминированных тестов)
func (s *PracticeService) SetRand(rng *rand.Rand) {
	s.rng = rng
}

// Generate собирает неправильные ответы игрока по всем попыткам, дедуплицирует
// их по содержанию вопроса, случайно выбирает requestedCount штук и создает
// из них новую тренировочную викторину.
// Превышение requestedCount над количеством доступных вопросов — жёсткий отказ
// с точным количеством в сообщении, а не молчаливое усечение.
func (s *PracticeService) Generate(playerName string, requestedCount int) (*PracticeResult, error) {
	if strings.TrimSpace(playerName) == "" {
		return nil, fmt.Errorf("%w: player name must not be blank", apperrors.ErrInvalidInput)
	}
	if requestedCount <= 0 {
		return nil, fmt.Errorf("%w: requested count must be positive, got %d", apperrors.ErrInvalidInput, requestedCount)
	}

	distinct, err := s.collectDistinctWrongQuestions(playerName)
	if err != nil {
		return nil, err
	}

	available := len(distinct)
	if available == 0 {
		return nil, fmt.Errorf("%w: no wrong questions found for player %s", apperrors.ErrInsufficientData, playerName)
	}
	if requestedCount > available {
		return nil, fmt.Errorf("%w: only %d wrong questions available; request at most %d",
			apperrors.ErrInsufficientData, available, available)
	}

	// Равномерная перемешка и выбор первых requestedCount записей
	s.rng.Shuffle(len(distinct), func(i, j int) {
		distinct[i], distinct[j] = distinct[j], distinct[i]
	})
	selection := distinct[:requestedCount]

	quizID, err := s.factory.CreateQuizFromWrongQuestions(playerName, selection)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrCreationFailure, err)
	}
	if quizID == "" {
		return nil, fmt.Errorf("%w: factory returned empty quiz id", apperrors.ErrCreationFailure)
	}

	texts := make([]string, 0, len(selection))
	for _, record := range selection {
		texts = append(texts, record.QuestionText)
	}

	log.Printf("[PracticeService] Создана тренировочная викторина %s для игрока %s (%d вопросов из %d доступных)",
		quizID, playerName, len(selection), available)

	return &PracticeResult{
		QuizID:        quizID,
		QuestionCount: len(selection),
		QuestionTexts: texts,
	}, nil
}

// collectDistinctWrongQuestions сканирует попытки игрока и возвращает
// дедуплицированные записи о неправильных ответах
func (s *PracticeService) collectDistinctWrongQuestions(playerName string) ([]entity.WrongQuestionRecord, error) {
	attempts, err := s.attemptRepo.GetByPlayer(playerName)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts for player %s: %w", playerName, err)
	}

	seen := make(map[string]struct{})
	var distinct []entity.WrongQuestionRecord

	for _, attempt := range attempts {
		quiz, err := s.resolver.Resolve(attempt.QuizID)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				log.Printf("[PracticeService] Попытка %s ссылается на несуществующую викторину %s",
					attempt.ID, attempt.QuizID)
				return nil, fmt.Errorf("%w: attempt %s references missing quiz %s",
					apperrors.ErrDataCorrupted, attempt.ID, attempt.QuizID)
			}
			return nil, err
		}

		for i, question := range quiz.Questions {
			if isAnsweredCorrectly(&attempt, &question, i) {
				continue
			}

			record := entity.WrongQuestionRecord{
				QuizID:        quiz.ID,
				QuizLabel:     quiz.Label(),
				QuestionText:  question.Text,
				Options:       question.Options,
				CorrectAnswer: question.CorrectAnswer,
				Category:      question.Category,
				Difficulty:    question.Difficulty,
			}

			key := record.Key()
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			distinct = append(distinct, record)
		}
	}

	return distinct, nil
}

// isAnsweredCorrectly проверяет ответ на вопрос в позиции i.
// Если в попытке сохранены выбранные варианты, сравнение идёт по индексу,
// иначе по тексту первичного ответа. Отсутствие ответа считается
// неправильным ответом.
func isAnsweredCorrectly(attempt *entity.QuizAttempt, question *entity.Question, i int) bool {
	if len(attempt.SelectedOptions) > 0 {
		if i >= len(attempt.SelectedOptions) {
			return false
		}
		return question.IsCorrectOption(attempt.SelectedOptions[i])
	}
	if i >= len(attempt.UserAnswers) {
		return false
	}
	return question.IsCorrectText(attempt.UserAnswers[i])
}
