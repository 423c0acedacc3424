package service

import (
	"github.com/yourusername/quizarena-api/internal/domain/entity"
)

// Подсчёт очков выполняется в двух режимах: по тексту ответа при первичном
// завершении викторины и по индексу варианта при редактировании попытки.
// Оба режима используют общий цикл сравнения: позиции за пределами более
// короткого списка игнорируются без ошибки.

// ScoreByText возвращает количество позиций, в которых текст ответа
// совпадает с правильным ответом вопроса
func ScoreByText(questions []entity.Question, answers []string) int {
	return countCorrect(questions, len(answers), func(i int, q *entity.Question) bool {
		return q.IsCorrectText(answers[i])
	})
}

// ScoreByOption возвращает количество позиций, в которых выбранный вариант
// совпадает с индексом правильного ответа вопроса
func ScoreByOption(questions []entity.Question, selectedOptions []int) int {
	return countCorrect(questions, len(selectedOptions), func(i int, q *entity.Question) bool {
		return q.IsCorrectOption(selectedOptions[i])
	})
}

// countCorrect сравнивает первые min(len(questions), answersLen) позиций
func countCorrect(questions []entity.Question, answersLen int, isCorrect func(i int, q *entity.Question) bool) int {
	limit := len(questions)
	if answersLen < limit {
		limit = answersLen
	}

	score := 0
	for i := 0; i < limit; i++ {
		if isCorrect(i, &questions[i]) {
			score++
		}
	}
	return score
}
