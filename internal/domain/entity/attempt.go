package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// IntArray - пользовательский тип для хранения выбранных вариантов в JSONB
type IntArray []int

// Scan реализует интерфейс sql.Scanner для IntArray
func (o *IntArray) Scan(value interface{}) error {
	if value == nil {
		*o = IntArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	if len(bytes) == 0 {
		*o = IntArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для IntArray
func (o IntArray) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(o)
}

// UnansweredOption - значение выбранного варианта "без ответа"
const UnansweredOption = -1

// QuizAttempt представляет одно прохождение викторины игроком.
// Создаётся при завершении викторины с Editable=true; изменяется только
// при редактировании ответов (SelectedOptions и Score).
type QuizAttempt struct {
	ID              string      `gorm:"primaryKey;size:36" json:"id"`
	PlayerName      string      `gorm:"size:50;not null;index" json:"player_name"`
	QuizID          string      `gorm:"size:36;not null;index" json:"quiz_id"`
	TotalQuestions  int         `gorm:"not null;default:0" json:"total_questions"`
	UserAnswers     StringArray `gorm:"type:jsonb;not null" json:"user_answers"`
	SelectedOptions IntArray    `gorm:"type:jsonb;not null" json:"selected_options"`
	Score           int         `gorm:"not null;default:0" json:"score"`
	Editable        bool        `gorm:"not null;default:true" json:"editable"`
	CompletedAt     time.Time   `gorm:"not null" json:"completed_at"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

// IsEditable проверяет, открыта ли попытка для редактирования
func (a *QuizAttempt) IsEditable() bool {
	return a.Editable
}

// Lock переводит попытку в заблокированное состояние
func (a *QuizAttempt) Lock() {
	a.Editable = false
}
