package repository

import (
	"database/sql"
	"survey_backend/internal/model"

	"gorm.io/gorm"
)

type AnswerRepository struct {
	DB *gorm.DB
}

func NewAnswerRepository(db *gorm.DB) *AnswerRepository {
	return &AnswerRepository{DB: db}
}

func (r *AnswerRepository) Create(a *model.Answer) error {
	return r.DB.Create(a).Error
}

func (r *AnswerRepository) FindByID(id string) (*model.Answer, error) {
	var a model.Answer
	err := r.DB.First(&a, "id = ?", id).Error
	return &a, err
}

func (r *AnswerRepository) Update(a *model.Answer) error {
	return r.DB.Save(a).Error
}

func (r *AnswerRepository) CountByQuestion(questionID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Answer{}).
		Where("question_id = ?", questionID).Count(&count).Error
	return count, err
}

func (r *AnswerRepository) CountBySurvey(surveyID string) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Answer{}).
		Where("submission_id IN (?)",
			r.DB.Model(&model.Submission{}).Select("id").Where("survey_id = ?", surveyID)).
		Count(&count).Error
	return count, err
}

// ListByQuestion 导出用：按提交时间稳定排序
func (r *AnswerRepository) ListByQuestion(questionID string) ([]model.Answer, error) {
	var answers []model.Answer
	err := r.DB.Where("question_id = ?", questionID).
		Order("created_at asc").Find(&answers).Error
	return answers, err
}

// MeanNumeric 数值型问题的平均值，无回答时返回 nil
func (r *AnswerRepository) MeanNumeric(questionID string) (*float64, error) {
	var mean sql.NullFloat64
	err := r.DB.Model(&model.Answer{}).
		Where("question_id = ?", questionID).
		Select("AVG(content_numeric)").Scan(&mean).Error
	if err != nil || !mean.Valid {
		return nil, err
	}
	return &mean.Float64, nil
}

// TextAnswers 文本型问题的全部非空回答
func (r *AnswerRepository) TextAnswers(questionID string) ([]string, error) {
	var texts []string
	err := r.DB.Model(&model.Answer{}).
		Where("question_id = ? AND content_character IS NOT NULL", questionID).
		Pluck("content_character", &texts).Error
	return texts, err
}

type ValueCount struct {
	Value string `json:"value"`
	Count int64  `json:"count"`
}

// OptionCounts 选项型问题各选项的选择次数，按选项ID升序
func (r *AnswerRepository) OptionCounts(questionID string) ([]ValueCount, error) {
	var counts []ValueCount
	err := r.DB.Model(&model.Answer{}).
		Where("question_id = ? AND option_id IS NOT NULL", questionID).
		Select("option_id AS value, COUNT(*) AS count").
		Group("option_id").Order("option_id asc").
		Scan(&counts).Error
	return counts, err
}

// NumericCounts 数值型问题各取值的出现次数，按取值升序
func (r *AnswerRepository) NumericCounts(questionID string) ([]ValueCount, error) {
	var counts []ValueCount
	err := r.DB.Model(&model.Answer{}).
		Where("question_id = ? AND content_numeric IS NOT NULL", questionID).
		Select("content_numeric AS value, COUNT(*) AS count").
		Group("content_numeric").Order("content_numeric asc").
		Scan(&counts).Error
	return counts, err
}

// CountsBySubmission 问卷下每次提交的答案条数
func (r *AnswerRepository) CountsBySubmission(surveyID string) (map[string]int64, error) {
	var rows []struct {
		SubmissionID string `gorm:"column:submission_id"`
		Count        int64  `gorm:"column:count"`
	}
	err := r.DB.Model(&model.Answer{}).
		Where("submission_id IN (?)",
			r.DB.Model(&model.Submission{}).Select("id").Where("survey_id = ?", surveyID)).
		Select("submission_id, COUNT(*) AS count").
		Group("submission_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.SubmissionID] = row.Count
	}
	return counts, nil
}

// QuestionIDsAnswered 问卷下被回答过的问题ID集合
func (r *AnswerRepository) QuestionIDsAnswered(surveyID string) ([]string, error) {
	var ids []string
	err := r.DB.Model(&model.Answer{}).
		Where("submission_id IN (?)",
			r.DB.Model(&model.Submission{}).Select("id").Where("survey_id = ?", surveyID)).
		Distinct().Pluck("question_id", &ids).Error
	return ids, err
}
