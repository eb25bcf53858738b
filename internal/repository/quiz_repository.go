package repository

import (
	"context"
	"encoding/json"
	"time"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const quizCacheKey = "quizzes:all"

// QuizRepository serves the full quiz collection. The catalog
// assembler filters client-side, so reads always load everything;
// the collection is small and cached in Redis between reads.
type QuizRepository struct {
	DB       *gorm.DB
	Redis    *redis.Client
	CacheTTL time.Duration
}

func NewQuizRepository(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) *QuizRepository {
	return &QuizRepository{DB: db, Redis: rdb, CacheTTL: cacheTTL}
}

func (r *QuizRepository) ListAll(ctx context.Context) ([]model.Quiz, error) {
	if r.Redis != nil {
		if cached, err := r.Redis.Get(ctx, quizCacheKey).Bytes(); err == nil {
			var quizzes []model.Quiz
			if err := json.Unmarshal(cached, &quizzes); err == nil {
				return quizzes, nil
			}
			// 缓存损坏，回源
			r.Redis.Del(ctx, quizCacheKey)
		}
	}

	var quizzes []model.Quiz
	if err := r.DB.WithContext(ctx).Find(&quizzes).Error; err != nil {
		return nil, err
	}

	if r.Redis != nil {
		if data, err := json.Marshal(quizzes); err == nil {
			if err := r.Redis.Set(ctx, quizCacheKey, data, r.CacheTTL).Err(); err != nil {
				logger.Log.Warn("quiz cache write failed", zap.Error(err))
			}
		}
	}

	return quizzes, nil
}

func (r *QuizRepository) Create(ctx context.Context, quiz *model.Quiz) error {
	if err := r.DB.WithContext(ctx).Create(quiz).Error; err != nil {
		return err
	}
	r.InvalidateCache(ctx)
	return nil
}

func (r *QuizRepository) FindByID(ctx context.Context, id string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).First(&quiz, "id = ?", id).Error
	return &quiz, err
}

func (r *QuizRepository) Delete(ctx context.Context, id string) error {
	if err := r.DB.WithContext(ctx).Delete(&model.Quiz{}, "id = ?", id).Error; err != nil {
		return err
	}
	r.InvalidateCache(ctx)
	return nil
}

func (r *QuizRepository) InvalidateCache(ctx context.Context) {
	if r.Redis != nil {
		r.Redis.Del(ctx, quizCacheKey)
	}
}
