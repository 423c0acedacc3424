package repository

import (
	"github.com/yourusername/quizarena-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с викторинами
type QuizRepository interface {
	// Create сохраняет викторину вместе с её вопросами в одной транзакции
	Create(quiz *entity.Quiz) error
	GetByID(id string) (*entity.Quiz, error)
	// GetWithQuestions возвращает викторину вместе с вопросами в авторском порядке
	GetWithQuestions(id string) (*entity.Quiz, error)
	GetAll() ([]entity.Quiz, error)
	GetByCreator(creatorName string) ([]entity.Quiz, error)
	Update(quiz *entity.Quiz) error
}

// PracticeQuizFactory создает тренировочную викторину из записей о неправильных ответах.
// Возвращает идентификатор новой викторины; пустой идентификатор означает сбой создания.
type PracticeQuizFactory interface {
	CreateQuizFromWrongQuestions(playerName string, records []entity.WrongQuestionRecord) (string, error)
}
