package repository

import (
	"errors"
	"survey_tool_backend/internal/model"

	"gorm.io/gorm"
)

type ResponseRepository struct {
	DB *gorm.DB
}

func NewResponseRepository(db *gorm.DB) *ResponseRepository {
	return &ResponseRepository{DB: db}
}

// Create 在单个事务里写入回答及其条目
func (r *ResponseRepository) Create(response *model.SurveyResponse) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(response).Error
	})
}

// FindByID 按问卷和回答 ID 查询，未找到时返回 (nil, nil)
func (r *ResponseRepository) FindByID(surveyID, responseID string) (*model.SurveyResponse, error) {
	var response model.SurveyResponse
	err := r.DB.
		Preload("Items").
		First(&response, "id = ? AND survey_id = ?", responseID, surveyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &response, nil
}

func (r *ResponseRepository) ListBySurvey(surveyID string, page, limit int) ([]model.SurveyResponse, int64, error) {
	var responses []model.SurveyResponse
	var total int64

	query := r.DB.Model(&model.SurveyResponse{}).Where("survey_id = ?", surveyID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("submitted_at desc").Offset(offset).Limit(limit).Find(&responses).Error
	return responses, total, err
}
