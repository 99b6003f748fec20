package service

import (
	"strings"

	"survey_backend/internal/model"
	"survey_backend/internal/repository"
	"survey_backend/internal/util"
)

// AnswerService 答案准入校验：按条目的答案类型族只接受对应的内容字段，
// 其余字段一律置空后落库。数值 0 是合法答案，判空只看指针。
type AnswerService struct {
	Answers     *repository.AnswerRepository
	Questions   *repository.QuestionRepository
	Items       *repository.ItemRepository
	Submissions *repository.SubmissionRepository
	Surveys     *repository.SurveyRepository
}

func NewAnswerService(
	answers *repository.AnswerRepository,
	questions *repository.QuestionRepository,
	items *repository.ItemRepository,
	submissions *repository.SubmissionRepository,
	surveys *repository.SurveyRepository,
) *AnswerService {
	return &AnswerService{
		Answers:     answers,
		Questions:   questions,
		Items:       items,
		Submissions: submissions,
		Surveys:     surveys,
	}
}

type AnswerRequest struct {
	SubmissionID     string  `json:"submission_id" binding:"required"`
	OptionID         *string `json:"option_id"`
	ContentNumeric   *int    `json:"content_numeric"`
	ContentCharacter *string `json:"content_character"`
}

// admit 按答案族校验并裁剪内容字段
func admit(family model.AnswerFamily, req *AnswerRequest) error {
	switch family {
	case model.FamilyOption:
		if req.OptionID == nil || *req.OptionID == "" {
			return util.ErrOptionRequired
		}
		req.ContentNumeric = nil
		req.ContentCharacter = nil
	case model.FamilyText:
		if req.ContentCharacter == nil || strings.TrimSpace(*req.ContentCharacter) == "" {
			return util.ErrContentRequired
		}
		req.OptionID = nil
		req.ContentNumeric = nil
	case model.FamilyNumeric:
		if req.ContentNumeric == nil {
			return util.ErrContentRequired
		}
		req.OptionID = nil
		req.ContentCharacter = nil
	}
	return nil
}

// gate 提交的问卷必须未暂停，且问题必须属于该提交的问卷
func (s *AnswerService) gate(questionID, submissionID string) (model.AnswerFamily, error) {
	question, err := s.Questions.FindByID(questionID)
	if err != nil {
		return 0, err
	}
	item, err := s.Items.FindByID(question.ItemID)
	if err != nil {
		return 0, err
	}
	submission, err := s.Submissions.FindByID(submissionID)
	if err != nil {
		return 0, err
	}
	if item.SurveyID != submission.SurveyID {
		return 0, util.ErrQuestionNotInSurvey
	}
	survey, err := s.Surveys.FindByID(submission.SurveyID)
	if err != nil {
		return 0, err
	}
	if survey.Paused {
		return 0, util.ErrSurveyPaused
	}
	return item.Type.Family(), nil
}

func (s *AnswerService) Create(questionID string, req AnswerRequest) (*model.Answer, error) {
	family, err := s.gate(questionID, req.SubmissionID)
	if err != nil {
		return nil, err
	}
	if err := admit(family, &req); err != nil {
		return nil, err
	}
	answer := &model.Answer{
		QuestionID:       questionID,
		SubmissionID:     req.SubmissionID,
		OptionID:         req.OptionID,
		ContentNumeric:   req.ContentNumeric,
		ContentCharacter: req.ContentCharacter,
	}
	if err := s.Answers.Create(answer); err != nil {
		return nil, err
	}
	return answer, nil
}

func (s *AnswerService) Update(answerID string, req AnswerRequest) (*model.Answer, error) {
	answer, err := s.Answers.FindByID(answerID)
	if err != nil {
		return nil, err
	}
	if req.SubmissionID == "" {
		req.SubmissionID = answer.SubmissionID
	}
	family, err := s.gate(answer.QuestionID, req.SubmissionID)
	if err != nil {
		return nil, err
	}
	if err := admit(family, &req); err != nil {
		return nil, err
	}
	answer.SubmissionID = req.SubmissionID
	answer.OptionID = req.OptionID
	answer.ContentNumeric = req.ContentNumeric
	answer.ContentCharacter = req.ContentCharacter
	if err := s.Answers.Update(answer); err != nil {
		return nil, err
	}
	return answer, nil
}
