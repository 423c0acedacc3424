package postgres

import (
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/quizarena-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizarena-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository и repository.PracticeQuizFactory
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий викторин
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// Create сохраняет викторину вместе с вопросами в одной транзакции
func (r *QuizRepo) Create(quiz *entity.Quiz) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(quiz).Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("quiz %s already exists: %w", quiz.ID, err)
		}
		return fmt.Errorf("failed to create quiz: %w", err)
	}
	return nil
}

// GetByID возвращает викторину по ID без вопросов
func (r *QuizRepo) GetByID(id string) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetWithQuestions возвращает викторину вместе с вопросами в авторском порядке
func (r *QuizRepo) GetWithQuestions(id string) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("questions.position")
	}).First(&quiz, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetAll возвращает все викторины без вопросов
func (r *QuizRepo) GetAll() ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Order("created_at").Find(&quizzes).Error
	return quizzes, err
}

// GetByCreator возвращает викторины, созданные указанным игроком
func (r *QuizRepo) GetByCreator(creatorName string) ([]entity.Quiz, error) {
	var quizzes []entity.Quiz
	err := r.db.Where("creator_name = ?", creatorName).
		Order("created_at").
		Find(&quizzes).Error
	return quizzes, err
}

// Update обновляет информацию о викторине
func (r *QuizRepo) Update(quiz *entity.Quiz) error {
	return r.db.Save(quiz).Error
}

// CreateQuizFromWrongQuestions создает тренировочную викторину из записей
// о неправильных ответах и возвращает идентификатор новой викторины
func (r *QuizRepo) CreateQuizFromWrongQuestions(playerName string, records []entity.WrongQuestionRecord) (string, error) {
	quizID := uuid.NewString()

	questions := make([]entity.Question, 0, len(records))
	for i, record := range records {
		questions = append(questions, entity.Question{
			ID:            uuid.NewString(),
			QuizID:        quizID,
			Text:          record.QuestionText,
			Options:       record.Options,
			CorrectAnswer: record.CorrectAnswer,
			Category:      record.Category,
			Difficulty:    record.Difficulty,
			Position:      i,
		})
	}

	quiz := &entity.Quiz{
		ID:            quizID,
		Title:         fmt.Sprintf("Practice: %s", playerName),
		CreatorName:   playerName,
		IsPractice:    true,
		QuestionCount: len(questions),
		Questions:     questions,
	}

	if err := r.Create(quiz); err != nil {
		log.Printf("[QuizRepo] Ошибка создания тренировочной викторины для игрока %s: %v", playerName, err)
		return "", err
	}

	return quizID, nil
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
