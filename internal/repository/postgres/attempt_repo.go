package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/quizarena-api/internal/domain/entity"
	apperrors "github.com/yourusername/quizarena-api/internal/pkg/errors"
)

// AttemptRepo реализует repository.AttemptRepository
type AttemptRepo struct {
	db *gorm.DB
}

// NewAttemptRepo создает новый репозиторий попыток
func NewAttemptRepo(db *gorm.DB) *AttemptRepo {
	return &AttemptRepo{db: db}
}

// Save сохраняет новую попытку
func (r *AttemptRepo) Save(attempt *entity.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

// GetByID возвращает попытку по ID
func (r *AttemptRepo) GetByID(id string) (*entity.QuizAttempt, error) {
	var attempt entity.QuizAttempt
	err := r.db.First(&attempt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &attempt, nil
}

// GetByPlayer возвращает все попытки игрока в порядке завершения
func (r *AttemptRepo) GetByPlayer(playerName string) ([]entity.QuizAttempt, error) {
	var attempts []entity.QuizAttempt
	err := r.db.Where("player_name = ?", playerName).
		Order("completed_at").
		Find(&attempts).Error
	return attempts, err
}

// GetByQuiz возвращает все попытки для викторины
func (r *AttemptRepo) GetByQuiz(quizID string) ([]entity.QuizAttempt, error) {
	var attempts []entity.QuizAttempt
	err := r.db.Where("quiz_id = ?", quizID).
		Order("completed_at").
		Find(&attempts).Error
	return attempts, err
}

// Update обновляет попытку целиком
func (r *AttemptRepo) Update(attempt *entity.QuizAttempt) error {
	return r.db.Save(attempt).Error
}

// UpdateAnswers атомарно заменяет выбранные варианты и счёт попытки.
// Строка блокируется через SELECT ... FOR UPDATE; флаг editable перепроверяется
// под блокировкой, чтобы конкурирующая блокировка попытки не была перезаписана.
func (r *AttemptRepo) UpdateAnswers(attemptID string, selectedOptions entity.IntArray, score int) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var attempt entity.QuizAttempt
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&attempt, "id = ?", attemptID).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if !attempt.Editable {
			return apperrors.ErrEditingRestricted
		}

		return tx.Model(&attempt).Updates(map[string]interface{}{
			"selected_options": selectedOptions,
			"score":            score,
		}).Error
	})
}

// SetEditable переводит флаг редактируемости попытки
func (r *AttemptRepo) SetEditable(attemptID string, editable bool) error {
	result := r.db.Model(&entity.QuizAttempt{}).
		Where("id = ?", attemptID).
		Update("editable", editable)
	if result.Error != nil {
		return fmt.Errorf("set editable for attempt %s failed: %w", attemptID, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
