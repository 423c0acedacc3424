package entity

import (
	"time"
)

// Quiz представляет викторину: авторскую или тренировочную,
// собранную из неправильных ответов игрока
type Quiz struct {
	ID            string     `gorm:"primaryKey;size:36" json:"id"`
	Title         string     `gorm:"size:100;not null" json:"title"`
	Category      string     `gorm:"size:100;not null;default:''" json:"category"`
	Difficulty    string     `gorm:"size:20;not null;default:''" json:"difficulty"`
	CreatorName   string     `gorm:"size:50;not null;index" json:"creator_name"`
	IsPractice    bool       `gorm:"not null;default:false" json:"is_practice"`
	QuestionCount int        `gorm:"not null;default:0" json:"question_count"`
	Questions     []Question `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}

// HasQuestions проверяет, загружены ли вопросы викторины
func (q *Quiz) HasQuestions() bool {
	return len(q.Questions) > 0
}

// Label возвращает отображаемое название викторины для списков и отчётов
func (q *Quiz) Label() string {
	if q.Title != "" {
		return q.Title
	}
	return q.ID
}
