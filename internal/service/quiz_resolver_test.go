package service

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	apperrors "github.com/yourusername/quizarena-api/internal/pkg/errors"
)

// jsonCacheStub имитирует CacheRepo: значения проходят полный цикл
// JSON-сериализации, как в Redis
type jsonCacheStub struct {
	store  map[string][]byte
	getErr error
	setErr error
}

func newJSONCacheStub() *jsonCacheStub {
	return &jsonCacheStub{store: make(map[string][]byte)}
}

func (s *jsonCacheStub) Set(key string, value interface{}, expiration time.Duration) error {
	return s.setErr
}

func (s *jsonCacheStub) Get(key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	data, ok := s.store[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return string(data), nil
}

func (s *jsonCacheStub) Delete(key string) error {
	delete(s.store, key)
	return nil
}

func (s *jsonCacheStub) SetJSON(key string, value interface{}, expiration time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.store[key] = data
	return nil
}

func (s *jsonCacheStub) GetJSON(key string, dest interface{}) error {
	if s.getErr != nil {
		return s.getErr
	}
	data, ok := s.store[key]
	if !ok {
		return apperrors.ErrNotFound
	}
	return json.Unmarshal(data, dest)
}

func (s *jsonCacheStub) Exists(key string) (bool, error) {
	_, ok := s.store[key]
	return ok, nil
}

func TestQuizResolver_CacheMissPopulatesCache(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetWithQuestions", "quiz-1").Return(testQuiz(), nil).Once()

	cache := newJSONCacheStub()
	resolver := newQuizResolver(mockQuizRepo, cache, time.Minute)

	// Act
	quiz, err := resolver.Resolve("quiz-1")

	// Assert
	require.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Contains(t, cache.store, "quiz:quiz-1", "Промах кеша должен заполнить кеш")
	mockQuizRepo.AssertExpectations(t)
}

func TestQuizResolver_CacheHitPreservesCorrectAnswers(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetWithQuestions", "quiz-1").Return(testQuiz(), nil).Once()

	cache := newJSONCacheStub()
	resolver := newQuizResolver(mockQuizRepo, cache, time.Minute)

	// Первый Resolve читает из БД и заполняет кеш
	_, err := resolver.Resolve("quiz-1")
	require.NoError(t, err)

	// Act: второй Resolve обслуживается из кеша
	cached, err := resolver.Resolve("quiz-1")

	// Assert
	require.NoError(t, err)
	require.Len(t, cached.Questions, 3)
	for i, question := range cached.Questions {
		assert.NotEmpty(t, question.CorrectAnswer,
			"Правильный ответ вопроса %d должен пережить JSON-цикл кеша", i+1)
		assert.GreaterOrEqual(t, question.CorrectOptionIndex(), 0,
			"Правильный ответ вопроса %d должен оставаться среди вариантов", i+1)
	}
	assert.Equal(t, 3, ScoreByText(cached.Questions, []string{"A", "B", "C"}),
		"Подсчёт очков по закешированной викторине должен совпадать с БД")

	// Репозиторий вызван ровно один раз: второй запрос не дошёл до БД
	mockQuizRepo.AssertNumberOfCalls(t, "GetWithQuestions", 1)
}

func TestQuizResolver_CacheErrorDegradesToDB(t *testing.T) {
	// Arrange
	mockQuizRepo := new(MockQuizRepository)
	mockQuizRepo.On("GetWithQuestions", "quiz-1").Return(testQuiz(), nil)

	cache := newJSONCacheStub()
	cache.getErr = errors.New("redis: connection refused")
	cache.setErr = errors.New("redis: connection refused")
	resolver := newQuizResolver(mockQuizRepo, cache, time.Minute)

	// Act
	quiz, err := resolver.Resolve("quiz-1")

	// Assert: сбой кеша не фатален, чтение идёт из БД
	require.NoError(t, err)
	require.NotNil(t, quiz)
	assert.Equal(t, "quiz-1", quiz.ID)
	mockQuizRepo.AssertExpectations(t)
}

func TestAttemptService_CompleteQuiz_SameScoreOnCacheHit(t *testing.T) {
	// Arrange
	mockAttemptRepo := new(MockAttemptRepository)
	mockQuizRepo := new(MockQuizRepository)

	mockQuizRepo.On("GetWithQuestions", "quiz-1").Return(testQuiz(), nil).Once()
	mockAttemptRepo.On("Save", mock.AnythingOfType("*entity.QuizAttempt")).Return(nil)

	cache := newJSONCacheStub()
	attemptService := NewAttemptService(mockAttemptRepo, mockQuizRepo, cache, time.Minute)

	// Act: первое завершение идёт через БД, второе — через кеш
	first, err := attemptService.CompleteQuiz("bob", "quiz-1", []string{"A", "X", "C"})
	require.NoError(t, err)
	second, err := attemptService.CompleteQuiz("bob", "quiz-1", []string{"A", "X", "C"})
	require.NoError(t, err)

	// Assert
	assert.Equal(t, 2, first.Score)
	assert.Equal(t, first.Score, second.Score,
		"Счёт при попадании в кеш должен совпадать со счётом при чтении из БД")
	mockQuizRepo.AssertNumberOfCalls(t, "GetWithQuestions", 1)
}
