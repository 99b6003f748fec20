package repository

import (
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type SurveySentRepository struct {
	DB *gorm.DB
}

func NewSurveySentRepository(db *gorm.DB) *SurveySentRepository {
	return &SurveySentRepository{DB: db}
}

// CreateBatch 一次事务内写入全部发送记录；任一收件人已有记录则整体失败。
func (r *SurveySentRepository) CreateBatch(records []model.SurveySent) error {
	if len(records) == 0 {
		return nil
	}
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&records).Error
	})
}

// FindByToken 以匿名访问令牌（即主键）取发送记录
func (r *SurveySentRepository) FindByToken(token string) (*model.SurveySent, error) {
	var s model.SurveySent
	err := r.DB.First(&s, "id = ?", token).Error
	return &s, err
}

func (r *SurveySentRepository) CountBySurvey(surveyID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.SurveySent{}).
		Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}

func (r *SurveySentRepository) ExistsAny(surveyID string, emails []string) (bool, error) {
	if len(emails) == 0 {
		return false, nil
	}
	var count int64
	err := r.DB.Model(&model.SurveySent{}).
		Where("survey_id = ? AND email IN ?", surveyID, emails).
		Count(&count).Error
	return count > 0, err
}
