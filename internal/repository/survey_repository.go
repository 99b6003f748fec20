package repository

import (
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type SurveyRepository struct {
	DB *gorm.DB
}

func NewSurveyRepository(db *gorm.DB) *SurveyRepository {
	return &SurveyRepository{DB: db}
}

func (r *SurveyRepository) Create(survey *model.Survey) error {
	return r.DB.Create(survey).Error
}

func (r *SurveyRepository) FindByID(id string) (*model.Survey, error) {
	var s model.Survey
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

// FindByIDWithItems 预加载条目、问题（按 order）与选项
func (r *SurveyRepository) FindByIDWithItems(id string) (*model.Survey, error) {
	var s model.Survey
	err := r.DB.
		Preload("Items.Questions", func(db *gorm.DB) *gorm.DB {
			return db.Order("`order` asc")
		}).
		Preload("Items.Options").
		First(&s, "id = ?", id).Error
	return &s, err
}

func (r *SurveyRepository) ListByCreator(creatorID string) ([]model.Survey, error) {
	var surveys []model.Survey
	err := r.DB.Where("creator_id = ?", creatorID).
		Order("created_at desc").Find(&surveys).Error
	return surveys, err
}

func (r *SurveyRepository) Update(survey *model.Survey) error {
	return r.DB.Save(survey).Error
}

func (r *SurveyRepository) Updates(id string, fields map[string]interface{}) error {
	return r.DB.Model(&model.Survey{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 级联删除问卷及其全部从属数据，单事务完成
func (r *SurveyRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		items := tx.Model(&model.Item{}).Select("id").Where("survey_id = ?", id)
		submissions := tx.Model(&model.Submission{}).Select("id").Where("survey_id = ?", id)

		if err := tx.Where("submission_id IN (?)", submissions).Delete(&model.Answer{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.Submission{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id IN (?)", items).Delete(&model.Precondition{}).Error; err != nil {
			return err
		}
		if err := tx.Where("start_item_id IN (?)", items).Delete(&model.Section{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id IN (?)", items).Delete(&model.Option{}).Error; err != nil {
			return err
		}
		if err := tx.Where("item_id IN (?)", items).Delete(&model.Question{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.Item{}).Error; err != nil {
			return err
		}
		if err := tx.Where("survey_id = ?", id).Delete(&model.SurveySent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Survey{}, "id = ?", id).Error
	})
}
