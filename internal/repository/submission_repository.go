package repository

import (
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository struct {
	DB *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) *SubmissionRepository {
	return &SubmissionRepository{DB: db}
}

func (r *SubmissionRepository) Create(s *model.Submission) error {
	return r.DB.Create(s).Error
}

func (r *SubmissionRepository) FindByID(id string) (*model.Submission, error) {
	var s model.Submission
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

func (r *SubmissionRepository) Exists(surveyID, intervieweeID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).
		Where("survey_id = ? AND interviewee_id = ?", surveyID, intervieweeID).
		Count(&count).Error
	return count > 0, err
}

func (r *SubmissionRepository) CountBySurvey(surveyID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Submission{}).
		Where("survey_id = ?", surveyID).Count(&count).Error
	return count, err
}

func (r *SubmissionRepository) ListBySurvey(surveyID string) ([]model.Submission, error) {
	var subs []model.Submission
	err := r.DB.Where("survey_id = ?", surveyID).
		Order("submitted_at asc").Find(&subs).Error
	return subs, err
}
