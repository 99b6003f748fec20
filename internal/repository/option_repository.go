package repository

import (
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type OptionRepository struct {
	DB *gorm.DB
}

func NewOptionRepository(db *gorm.DB) *OptionRepository {
	return &OptionRepository{DB: db}
}

func (r *OptionRepository) CreateBatch(tx *gorm.DB, options []model.Option) error {
	if len(options) == 0 {
		return nil
	}
	return tx.Create(&options).Error
}

func (r *OptionRepository) FindByID(id string) (*model.Option, error) {
	var o model.Option
	err := r.DB.First(&o, "id = ?", id).Error
	return &o, err
}

func (r *OptionRepository) BelongsToItem(optionID, itemID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Option{}).
		Where("id = ? AND item_id = ?", optionID, itemID).
		Count(&count).Error
	return count > 0, err
}

func (r *OptionRepository) Update(option *model.Option) error {
	return r.DB.Save(option).Error
}

func (r *OptionRepository) Delete(id string) error {
	return r.DB.Delete(&model.Option{}, "id = ?", id).Error
}
