package dto

import (
	"time"

	"github.com/yourusername/quizarena-api/internal/domain/entity"
)

// QuestionResponse представляет вопрос в формате для ответа клиенту.
// Правильный ответ не раскрывается.
type QuestionResponse struct {
	ID         string   `json:"id"`
	QuizID     string   `json:"quiz_id"`
	Text       string   `json:"text"`
	Options    []string `json:"options"`
	Category   string   `json:"category,omitempty"`
	Difficulty string   `json:"difficulty,omitempty"`
	Position   int      `json:"position"`
}

// QuizResponse представляет викторину в формате для ответа клиенту
type QuizResponse struct {
	ID            string             `json:"id"`
	Title         string             `json:"title"`
	Category      string             `json:"category,omitempty"`
	Difficulty    string             `json:"difficulty,omitempty"`
	CreatorName   string             `json:"creator_name"`
	IsPractice    bool               `json:"is_practice"`
	QuestionCount int                `json:"question_count"`
	Questions     []QuestionResponse `json:"questions,omitempty"`
	CreatedAt     time.Time          `json:"created_at"`
}

// NewQuestionResponse создает DTO для вопроса
func NewQuestionResponse(question *entity.Question) QuestionResponse {
	return QuestionResponse{
		ID:         question.ID,
		QuizID:     question.QuizID,
		Text:       question.Text,
		Options:    question.Options,
		Category:   question.Category,
		Difficulty: question.Difficulty,
		Position:   question.Position,
	}
}

// NewQuizResponse создает DTO для викторины.
// includeQuestions управляет вложением списка вопросов.
func NewQuizResponse(quiz *entity.Quiz, includeQuestions bool) QuizResponse {
	resp := QuizResponse{
		ID:            quiz.ID,
		Title:         quiz.Title,
		Category:      quiz.Category,
		Difficulty:    quiz.Difficulty,
		CreatorName:   quiz.CreatorName,
		IsPractice:    quiz.IsPractice,
		QuestionCount: quiz.QuestionCount,
		CreatedAt:     quiz.CreatedAt,
	}

	if includeQuestions {
		resp.Questions = make([]QuestionResponse, 0, len(quiz.Questions))
		for i := range quiz.Questions {
			resp.Questions = append(resp.Questions, NewQuestionResponse(&quiz.Questions[i]))
		}
	}

	return resp
}

// NewQuizListResponse создает список DTO викторин без вопросов
func NewQuizListResponse(quizzes []entity.Quiz) []QuizResponse {
	responses := make([]QuizResponse, 0, len(quizzes))
	for i := range quizzes {
		responses = append(responses, NewQuizResponse(&quizzes[i], false))
	}
	return responses
}
