package entity

import "strings"

// WrongQuestionRecord представляет вопрос, на который игрок ответил неправильно.
// Производная структура: собирается по попыткам игрока и не хранится отдельно.
type WrongQuestionRecord struct {
	QuizID        string      `json:"quiz_id"`
	QuizLabel     string      `json:"quiz_label"`
	QuestionText  string      `json:"question_text"`
	Options       StringArray `json:"options"`
	CorrectAnswer string      `json:"correct_answer"`
	Category      string      `json:"category"`
	Difficulty    string      `json:"difficulty"`
}

// Key возвращает составной ключ дедупликации: текст вопроса, правильный ответ
// и упорядоченный список вариантов через разделитель "|". Записи с одинаковым
// ключом считаются одним и тем же вопросом независимо от источника.
func (w *WrongQuestionRecord) Key() string {
	parts := make([]string, 0, len(w.Options)+2)
	parts = append(parts, w.QuestionText, w.CorrectAnswer)
	parts = append(parts, w.Options...)
	return strings.Join(parts, "|")
}
