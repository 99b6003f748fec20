package repository

import (
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type SectionRepository struct {
	DB *gorm.DB
}

func NewSectionRepository(db *gorm.DB) *SectionRepository {
	return &SectionRepository{DB: db}
}

func (r *SectionRepository) Create(section *model.Section) error {
	return r.DB.Create(section).Error
}

func (r *SectionRepository) FindByID(id string) (*model.Section, error) {
	var s model.Section
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

// ListBySurvey 问卷下全部分区（起始条目属于该问卷）
func (r *SectionRepository) ListBySurvey(surveyID string) ([]model.Section, error) {
	var sections []model.Section
	err := r.DB.Where("start_item_id IN (?)", surveyItems(r.DB, surveyID)).
		Find(&sections).Error
	return sections, err
}

func (r *SectionRepository) Update(section *model.Section) error {
	return r.DB.Save(section).Error
}

func (r *SectionRepository) Delete(id string) error {
	return r.DB.Delete(&model.Section{}, "id = ?", id).Error
}

// DeleteByItem 删除引用该条目为端点的分区（条目级级联时调用）
func (r *SectionRepository) DeleteByItem(tx *gorm.DB, itemID string) error {
	return tx.Where("start_item_id = ? OR end_item_id = ?", itemID, itemID).
		Delete(&model.Section{}).Error
}
