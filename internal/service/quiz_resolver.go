package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/yourusername/quizarena-api/internal/domain/entity"
	"github.com/yourusername/quizarena-api/internal/domain/repository"
	apperrors "github.com/yourusername/quizarena-api/internal/pkg/errors"
)

// quizCacheKey формирует ключ кеша для викторины
func quizCacheKey(quizID string) string {
	return fmt.Sprintf("quiz:%s", quizID)
}

// quizResolver выполняет поиск викторины по ID через кеш с деградацией до БД.
// Ошибки кеша не фатальны: при любой проблеме с Redis чтение идёт из PostgreSQL.
type quizResolver struct {
	quizRepo  repository.QuizRepository
	cacheRepo repository.CacheRepository
	cacheTTL  time.Duration
}

func newQuizResolver(quizRepo repository.QuizRepository, cacheRepo repository.CacheRepository, cacheTTL time.Duration) *quizResolver {
	return &quizResolver{
		quizRepo:  quizRepo,
		cacheRepo: cacheRepo,
		cacheTTL:  cacheTTL,
	}
}

// Resolve возвращает викторину с вопросами: сначала из кеша, при промахе из БД.
// Возвращает apperrors.ErrNotFound, если викторина не существует.
func (r *quizResolver) Resolve(quizID string) (*entity.Quiz, error) {
	if r.cacheRepo != nil {
		var cached entity.Quiz
		err := r.cacheRepo.GetJSON(quizCacheKey(quizID), &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			log.Printf("[QuizResolver] Ошибка чтения кеша для викторины %s: %v", quizID, err)
		}
	}

	quiz, err := r.quizRepo.GetWithQuestions(quizID)
	if err != nil {
		return nil, err
	}

	if r.cacheRepo != nil {
		if err := r.cacheRepo.SetJSON(quizCacheKey(quizID), quiz, r.cacheTTL); err != nil {
			log.Printf("[QuizResolver] Ошибка записи кеша для викторины %s: %v", quizID, err)
		}
	}

	return quiz, nil
}
