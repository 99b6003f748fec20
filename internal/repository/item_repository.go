package repository

import (
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type ItemRepository struct {
	DB *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{DB: db}
}

func (r *ItemRepository) Create(tx *gorm.DB, item *model.Item) error {
	return tx.Create(item).Error
}

func (r *ItemRepository) FindByID(id string) (*model.Item, error) {
	var item model.Item
	err := r.DB.First(&item, "id = ?", id).Error
	return &item, err
}

func (r *ItemRepository) FindByIDWithRelations(id string) (*model.Item, error) {
	var item model.Item
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		Preload("Options").
		First(&item, "id = ?", id).Error
	return &item, err
}

// ListBySurveyOrdered 按条目首问题的 order 升序返回问卷条目
func (r *ItemRepository) ListBySurveyOrdered(surveyID string) ([]model.Item, error) {
	var items []model.Item
	err := r.DB.
		Preload("Questions", func(db *gorm.DB) *gorm.DB { return db.Order("`order` asc") }).
		Preload("Options").
		Joins("JOIN questions ON questions.item_id = items.id AND questions.deleted_at IS NULL").
		Where("items.survey_id = ?", surveyID).
		Group("items.id").
		Order("MIN(questions.`order`) asc").
		Find(&items).Error
	return items, err
}

func (r *ItemRepository) BelongsToSurvey(itemID, surveyID string) (bool, error) {
	var count int64
	err := r.DB.Model(&model.Item{}).
		Where("id = ? AND survey_id = ?", itemID, surveyID).
		Count(&count).Error
	return count > 0, err
}

func (r *ItemRepository) Update(item *model.Item) error {
	return r.DB.Save(item).Error
}

func (r *ItemRepository) Delete(tx *gorm.DB, id string) error {
	if err := tx.Where("item_id = ?", id).Delete(&model.Option{}).Error; err != nil {
		return err
	}
	return tx.Delete(&model.Item{}, "id = ?", id).Error
}
