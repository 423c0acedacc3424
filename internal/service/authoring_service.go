package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/quizarena-api/internal/domain/entity"
	"github.com/yourusername/quizarena-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizarena-api/internal/pkg/errors"
)

// QuestionSubmission представляет один вопрос в запросе на создание викторины.
// Категория и сложность опциональны: пустые значения наследуются от викторины.
type QuestionSubmission struct {
	Text          string
	Options       []string
	CorrectAnswer string
	Category      string
	Difficulty    string
}

// AuthoringService собирает и валидирует новые викторины
type AuthoringService struct {
	quizRepo repository.QuizRepository
}

// NewAuthoringService создает новый сервис создания викторин
func NewAuthoringService(quizRepo repository.QuizRepository) *AuthoringService {
	return &AuthoringService{quizRepo: quizRepo}
}

// CreateQuiz валидирует заявку, собирает викторину и сохраняет её.
// Валидация выполняется строго по порядку с остановкой на первом нарушении;
// при ошибке валидации ничего не сохраняется.
func (s *AuthoringService) CreateQuiz(title, creatorName, category, difficulty string, submissions []QuestionSubmission) (*entity.Quiz, error) {
	quiz, err := assembleQuiz(title, creatorName, category, difficulty, submissions)
	if err != nil {
		return nil, err
	}

	if err := s.quizRepo.Create(quiz); err != nil {
		return nil, fmt.Errorf("failed to persist quiz: %w", err)
	}

	return quiz, nil
}

// GetQuiz возвращает викторину вместе с вопросами
func (s *AuthoringService) GetQuiz(quizID string) (*entity.Quiz, error) {
	return s.quizRepo.GetWithQuestions(quizID)
}

// ListQuizzes возвращает все викторины без вопросов
func (s *AuthoringService) ListQuizzes() ([]entity.Quiz, error) {
	return s.quizRepo.GetAll()
}

// ListQuizzesByCreator возвращает викторины, созданные указанным игроком
func (s *AuthoringService) ListQuizzesByCreator(creatorName string) ([]entity.Quiz, error) {
	return s.quizRepo.GetByCreator(creatorName)
}

// assembleQuiz выполняет валидацию и сборку викторины без побочных эффектов
func assembleQuiz(title, creatorName, category, difficulty string, submissions []QuestionSubmission) (*entity.Quiz, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: quiz title must not be empty", apperrors.ErrValidation)
	}

	creatorName = strings.TrimSpace(creatorName)
	if creatorName == "" {
		return nil, fmt.Errorf("%w: creator name must not be empty", apperrors.ErrValidation)
	}

	if len(submissions) == 0 {
		return nil, fmt.Errorf("%w: quiz must contain at least one question", apperrors.ErrValidation)
	}

	quizID := uuid.NewString()
	questions := make([]entity.Question, 0, len(submissions))

	for i, sub := range submissions {
		if strings.TrimSpace(sub.Text) == "" {
			return nil, fmt.Errorf("%w: question %d has empty text", apperrors.ErrValidation, i+1)
		}
		if len(sub.Options) < 2 {
			return nil, fmt.Errorf("%w: question %d must have at least 2 options", apperrors.ErrValidation, i+1)
		}
		if sub.CorrectAnswer == "" {
			return nil, fmt.Errorf("%w: question %d has empty correct answer", apperrors.ErrValidation, i+1)
		}
		if !containsOption(sub.Options, sub.CorrectAnswer) {
			return nil, fmt.Errorf("%w: question %d correct answer is not among its options", apperrors.ErrValidation, i+1)
		}

		// Наследование категории и сложности от викторины
		questionCategory := sub.Category
		if questionCategory == "" {
			questionCategory = category
		}
		questionDifficulty := sub.Difficulty
		if questionDifficulty == "" {
			questionDifficulty = difficulty
		}

		questions = append(questions, entity.Question{
			ID:            uuid.NewString(),
			QuizID:        quizID,
			Text:          sub.Text,
			Options:       entity.StringArray(sub.Options),
			CorrectAnswer: sub.CorrectAnswer,
			Category:      questionCategory,
			Difficulty:    questionDifficulty,
			Position:      i,
		})
	}

	return &entity.Quiz{
		ID:            quizID,
		Title:         title,
		Category:      category,
		Difficulty:    difficulty,
		CreatorName:   creatorName,
		QuestionCount: len(questions),
		Questions:     questions,
		CreatedAt:     time.Now(),
	}, nil
}

func containsOption(options []string, answer string) bool {
	for _, option := range options {
		if option == answer {
			return true
		}
	}
	return false
}
