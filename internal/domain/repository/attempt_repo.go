package repository

import (
	"github.com/yourusername/quizarena-api/internal/domain/entity"
)

// AttemptRepository определяет методы для работы с попытками прохождения викторин
type AttemptRepository interface {
	Save(attempt *entity.QuizAttempt) error
	GetByID(id string) (*entity.QuizAttempt, error)
	// GetByPlayer возвращает все попытки игрока в порядке, который задаёт хранилище
	GetByPlayer(playerName string) ([]entity.QuizAttempt, error)
	// GetByQuiz возвращает все попытки для викторины (для таблицы результатов)
	GetByQuiz(quizID string) ([]entity.QuizAttempt, error)
	Update(attempt *entity.QuizAttempt) error
	// UpdateAnswers атомарно заменяет выбранные варианты и пересчитанный счёт.
	// Строка блокируется на время транзакции; повторная проверка editable выполняется
	// под блокировкой. Возвращает apperrors.ErrNotFound или apperrors.ErrEditingRestricted.
	UpdateAnswers(attemptID string, selectedOptions entity.IntArray, score int) error
	// SetEditable переводит флаг редактируемости попытки (внешняя политика блокировки)
	SetEditable(attemptID string, editable bool) error
}
