package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"survey_tool_backend/internal/model"
	"survey_tool_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type SurveyRepository struct {
	DB       *gorm.DB
	Redis    *redis.Client
	CacheTTL time.Duration
}

func NewSurveyRepository(db *gorm.DB, rdb *redis.Client, cacheTTL time.Duration) *SurveyRepository {
	return &SurveyRepository{DB: db, Redis: rdb, CacheTTL: cacheTTL}
}

func surveyCacheKey(id string) string {
	return fmt.Sprintf("survey:%s", id)
}

// FindByID 加载问卷及其问题和选项，未找到时返回 (nil, nil)。
// 命中 Redis 缓存时跳过数据库；缓存故障只记日志，不影响读取。
func (r *SurveyRepository) FindByID(id string) (*model.Survey, error) {
	if r.cacheEnabled() {
		cached, err := r.Redis.Get(context.Background(), surveyCacheKey(id)).Result()
		if err == nil {
			var s model.Survey
			if err := json.Unmarshal([]byte(cached), &s); err == nil {
				return &s, nil
			}
		} else if err != redis.Nil {
			logger.Log.Warn("survey cache read failed", zap.String("id", id), zap.Error(err))
		}
	}

	var survey model.Survey
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` asc, seq asc")
		}).
		Preload("Questions.Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("seq asc")
		}).
		First(&survey, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	r.cacheSurvey(&survey)
	return &survey, nil
}

func (r *SurveyRepository) List(page, limit int) ([]model.Survey, int64, error) {
	var surveys []model.Survey
	var total int64

	query := r.DB.Model(&model.Survey{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&surveys).Error
	return surveys, total, err
}

func (r *SurveyRepository) Create(survey *model.Survey) error {
	return r.DB.Create(survey).Error
}

// Update 以删除并重建的方式替换问卷内容，问卷 ID 保持不变。
// 旧的问题和选项行被硬删除，新行带调用方生成好的 ID。
func (r *SurveyRepository) Update(survey *model.Survey) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var questionIDs []string
		if err := tx.Model(&model.Question{}).
			Where("survey_id = ?", survey.ID).
			Pluck("id", &questionIDs).Error; err != nil {
			return err
		}

		if len(questionIDs) > 0 {
			if err := tx.Unscoped().
				Where("question_id IN ?", questionIDs).
				Delete(&model.AnswerOption{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Unscoped().
			Where("survey_id = ?", survey.ID).
			Delete(&model.Question{}).Error; err != nil {
			return err
		}

		if err := tx.Model(&model.Survey{}).
			Where("id = ?", survey.ID).
			Updates(map[string]interface{}{
				"title":       survey.Title,
				"description": survey.Description,
			}).Error; err != nil {
			return err
		}

		for i := range survey.Questions {
			if err := tx.Create(&survey.Questions[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.invalidate(survey.ID)
	return nil
}

func (r *SurveyRepository) Delete(id string) (bool, error) {
	result := r.DB.Delete(&model.Survey{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}

	r.invalidate(id)
	return result.RowsAffected > 0, nil
}

func (r *SurveyRepository) cacheEnabled() bool {
	return r.Redis != nil && r.CacheTTL > 0
}

func (r *SurveyRepository) cacheSurvey(survey *model.Survey) {
	if !r.cacheEnabled() {
		return
	}
	data, err := json.Marshal(survey)
	if err != nil {
		return
	}
	if err := r.Redis.Set(context.Background(), surveyCacheKey(survey.ID), data, r.CacheTTL).Err(); err != nil {
		logger.Log.Warn("survey cache write failed", zap.String("id", survey.ID), zap.Error(err))
	}
}

func (r *SurveyRepository) invalidate(id string) {
	if r.Redis == nil {
		return
	}
	if err := r.Redis.Del(context.Background(), surveyCacheKey(id)).Err(); err != nil {
		logger.Log.Warn("survey cache invalidation failed", zap.String("id", id), zap.Error(err))
	}
}
