package repository

import (
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type PreconditionRepository struct {
	DB *gorm.DB
}

func NewPreconditionRepository(db *gorm.DB) *PreconditionRepository {
	return &PreconditionRepository{DB: db}
}

func (r *PreconditionRepository) Create(p *model.Precondition) error {
	return r.DB.Create(p).Error
}

func (r *PreconditionRepository) FindByID(id string) (*model.Precondition, error) {
	var p model.Precondition
	err := r.DB.First(&p, "id = ?", id).Error
	return &p, err
}

// ListBySurvey 源条目属于该问卷的全部跳转边
func (r *PreconditionRepository) ListBySurvey(surveyID string) ([]model.Precondition, error) {
	var ps []model.Precondition
	err := r.DB.Where("item_id IN (?)", surveyItems(r.DB, surveyID)).
		Order("created_at asc").Find(&ps).Error
	return ps, err
}

func (r *PreconditionRepository) ListByItem(itemID string) ([]model.Precondition, error) {
	var ps []model.Precondition
	err := r.DB.Where("item_id = ?", itemID).Order("created_at asc").Find(&ps).Error
	return ps, err
}

// FindMatch 渲染导航时查询匹配边。同一 (item, option) 存在重复边时取最新创建的。
func (r *PreconditionRepository) FindMatch(itemID, optionID string) (*model.Precondition, error) {
	var p model.Precondition
	err := r.DB.Where("item_id = ? AND expected_option_id = ?", itemID, optionID).
		Order("created_at desc").First(&p).Error
	return &p, err
}

func (r *PreconditionRepository) Update(p *model.Precondition) error {
	return r.DB.Save(p).Error
}

func (r *PreconditionRepository) Delete(id string) error {
	return r.DB.Delete(&model.Precondition{}, "id = ?", id).Error
}

// DeleteByItem 删除以该条目为源或目标的跳转边（条目级级联时调用）
func (r *PreconditionRepository) DeleteByItem(tx *gorm.DB, itemID string) error {
	return tx.Where("item_id = ? OR next_item_id = ?", itemID, itemID).
		Delete(&model.Precondition{}).Error
}
