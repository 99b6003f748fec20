package service

import (
	"survey_backend/internal/model"
	"survey_backend/internal/repository"
	"survey_backend/internal/util"
)

// QuestionService 问题编辑入口：改文案、移动位置、删除并重排。
// 问卷内 order 的稠密性由 QuestionRepository 在单事务内维护。
type QuestionService struct {
	Questions *repository.QuestionRepository
}

func NewQuestionService(questions *repository.QuestionRepository) *QuestionService {
	return &QuestionService{Questions: questions}
}

type QuestionUpdateRequest struct {
	Value *string `json:"value"`
	Order *int    `json:"order"`
}

func (s *QuestionService) Update(questionID string, req QuestionUpdateRequest) (*model.Question, error) {
	question, err := s.Questions.FindByID(questionID)
	if err != nil {
		return nil, err
	}

	if req.Order != nil {
		if *req.Order < 1 {
			return nil, util.ErrOrderOutOfRange
		}
		surveyID, err := s.Questions.SurveyIDOf(question)
		if err != nil {
			return nil, err
		}
		if err := s.Questions.Reorder(surveyID, question, *req.Order); err != nil {
			return nil, err
		}
	}

	if req.Value != nil {
		if err := s.Questions.UpdateValue(question, *req.Value); err != nil {
			return nil, err
		}
	}

	return question, nil
}

func (s *QuestionService) Delete(questionID string) error {
	question, err := s.Questions.FindByID(questionID)
	if err != nil {
		return err
	}
	surveyID, err := s.Questions.SurveyIDOf(question)
	if err != nil {
		return err
	}
	return s.Questions.DeleteAndCompact(surveyID, question)
}
