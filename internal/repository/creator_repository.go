package repository

import (
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type CreatorRepository struct {
	DB *gorm.DB
}

func NewCreatorRepository(db *gorm.DB) *CreatorRepository {
	return &CreatorRepository{DB: db}
}

func (r *CreatorRepository) Create(c *model.Creator) error {
	return r.DB.Create(c).Error
}

func (r *CreatorRepository) FindByID(id string) (*model.Creator, error) {
	var c model.Creator
	err := r.DB.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *CreatorRepository) FindByEmail(email string) (*model.Creator, error) {
	var c model.Creator
	err := r.DB.First(&c, "email = ?", email).Error
	return &c, err
}

func (r *CreatorRepository) Update(c *model.Creator) error {
	return r.DB.Save(c).Error
}

func (r *CreatorRepository) Delete(id string) error {
	return r.DB.Delete(&model.Creator{}, "id = ?", id).Error
}

// AddInterviewee 把受访者加入创建者的通讯录
func (r *CreatorRepository) AddInterviewee(creator *model.Creator, interviewee *model.Interviewee) error {
	return r.DB.Model(creator).Association("Interviewees").Append(interviewee)
}

// ListInterviewees 创建者通讯录中的全部受访者
func (r *CreatorRepository) ListInterviewees(creatorID string) ([]model.Interviewee, error) {
	var c model.Creator
	if err := r.DB.Preload("Interviewees").First(&c, "id = ?", creatorID).Error; err != nil {
		return nil, err
	}
	return c.Interviewees, nil
}

// HasIntervieweeEmail 通讯录里是否已有该邮箱（CSV 导入去重用）
func (r *CreatorRepository) HasIntervieweeEmail(creatorID, email string) (bool, error) {
	var count int64
	err := r.DB.Table("creators_interviewees").
		Joins("JOIN interviewees ON interviewees.id = creators_interviewees.interviewee_id").
		Where("creators_interviewees.creator_id = ? AND interviewees.email = ?", creatorID, email).
		Count(&count).Error
	return count > 0, err
}
