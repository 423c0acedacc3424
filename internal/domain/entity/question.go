package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// StringArray - пользовательский тип для работы с JSONB
type StringArray []string

// Scan реализует интерфейс sql.Scanner для StringArray
// Используется GORM для чтения JSONB данных из базы
func (o *StringArray) Scan(value interface{}) error {
	// Обработка NULL значений из базы данных
	if value == nil {
		*o = StringArray{}
		return nil
	}

	bytes, ok := value.([]byte)
	if !ok {
		return errors.New("failed to unmarshal JSONB value: expected []byte")
	}

	// Обработка пустого массива байтов
	if len(bytes) == 0 {
		*o = StringArray{}
		return nil
	}

	return json.Unmarshal(bytes, o)
}

// Value реализует интерфейс driver.Valuer для StringArray
// Используется GORM для записи StringArray в JSONB в базе
func (o StringArray) Value() (driver.Value, error) {
	if o == nil || len(o) == 0 {
		return []byte("[]"), nil // Возвращаем пустой JSON массив вместо null
	}
	return json.Marshal(o)
}

// Question представляет вопрос викторины. После создания вопрос не изменяется.
type Question struct {
	ID            string      `gorm:"primaryKey;size:36" json:"id"`
	QuizID        string      `gorm:"size:36;not null;index" json:"quiz_id"`
	Text          string      `gorm:"size:500;not null" json:"text"`
	Options       StringArray `gorm:"type:jsonb;not null" json:"options"`
	CorrectAnswer string      `gorm:"size:255;not null" json:"correct_answer"` // От клиента скрывается на уровне DTO
	Category      string      `gorm:"size:100;not null;default:''" json:"category"`
	Difficulty    string      `gorm:"size:20;not null;default:''" json:"difficulty"`
	Position      int         `gorm:"not null;default:0" json:"position"`
	CreatedAt     time.Time   `json:"created_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// CorrectOptionIndex возвращает индекс правильного ответа в списке вариантов.
// Возвращает -1, если правильный ответ не найден среди вариантов (повреждённые данные).
func (q *Question) CorrectOptionIndex() int {
	for i, option := range q.Options {
		if option == q.CorrectAnswer {
			return i
		}
	}
	return -1
}

// IsCorrectText проверяет, совпадает ли текстовый ответ с правильным
func (q *Question) IsCorrectText(answer string) bool {
	return answer == q.CorrectAnswer
}

// IsCorrectOption проверяет, является ли выбранный вариант правильным.
// Для повреждённого вопроса (правильный ответ не найден среди вариантов)
// ни один выбор не считается правильным, включая -1.
func (q *Question) IsCorrectOption(selectedOption int) bool {
	correct := q.CorrectOptionIndex()
	return correct >= 0 && selectedOption == correct
}

// OptionsCount возвращает количество вариантов ответа
func (q *Question) OptionsCount() int {
	return len(q.Options)
}

// IsValidOption проверяет, является ли выбранный вариант допустимым.
// -1 считается допустимым значением "без ответа".
func (q *Question) IsValidOption(selectedOption int) bool {
	return selectedOption >= -1 && selectedOption < len(q.Options)
}
