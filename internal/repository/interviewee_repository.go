package repository

import (
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type IntervieweeRepository struct {
	DB *gorm.DB
}

func NewIntervieweeRepository(db *gorm.DB) *IntervieweeRepository {
	return &IntervieweeRepository{DB: db}
}

func (r *IntervieweeRepository) Create(i *model.Interviewee) error {
	return r.DB.Create(i).Error
}

func (r *IntervieweeRepository) CreateBatch(list []model.Interviewee) ([]model.Interviewee, error) {
	if len(list) == 0 {
		return list, nil
	}
	err := r.DB.Create(&list).Error
	return list, err
}

func (r *IntervieweeRepository) FindByID(id string) (*model.Interviewee, error) {
	var i model.Interviewee
	err := r.DB.First(&i, "id = ?", id).Error
	return &i, err
}

// FirstOrCreateByEmail 按邮箱取回或创建受访者
func (r *IntervieweeRepository) FirstOrCreateByEmail(email string) (*model.Interviewee, error) {
	var i model.Interviewee
	err := r.DB.Where(model.Interviewee{Email: email}).FirstOrCreate(&i).Error
	return &i, err
}

func (r *IntervieweeRepository) List() ([]model.Interviewee, error) {
	var list []model.Interviewee
	err := r.DB.Order("created_at asc").Find(&list).Error
	return list, err
}

func (r *IntervieweeRepository) Update(i *model.Interviewee) error {
	return r.DB.Save(i).Error
}

func (r *IntervieweeRepository) Delete(id string) error {
	return r.DB.Delete(&model.Interviewee{}, "id = ?", id).Error
}
