package service

import (
	"time"

	"survey_backend/internal/model"
	"survey_backend/internal/repository"
	"survey_backend/internal/util"
)

// SubmissionService 一次填答一条提交记录；具名受访者每份问卷只能提交一次
type SubmissionService struct {
	Submissions *repository.SubmissionRepository
	Surveys     *repository.SurveyRepository
	Sent        *repository.SurveySentRepository
	Answers     *repository.AnswerRepository
}

func NewSubmissionService(
	submissions *repository.SubmissionRepository,
	surveys *repository.SurveyRepository,
	sent *repository.SurveySentRepository,
	answers *repository.AnswerRepository,
) *SubmissionService {
	return &SubmissionService{Submissions: submissions, Surveys: surveys, Sent: sent, Answers: answers}
}

type SubmissionCreateRequest struct {
	IntervieweeID *string `json:"interviewee_id"`
}

func (s *SubmissionService) Create(surveyID string, req SubmissionCreateRequest) (*model.Submission, error) {
	survey, err := s.Surveys.FindByID(surveyID)
	if err != nil {
		return nil, err
	}
	if survey.Paused {
		return nil, util.ErrSurveyPaused
	}
	if req.IntervieweeID != nil && *req.IntervieweeID != "" {
		exists, err := s.Submissions.Exists(surveyID, *req.IntervieweeID)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, util.ErrAlreadySubmitted
		}
	} else {
		req.IntervieweeID = nil
	}

	submission := &model.Submission{
		SurveyID:      surveyID,
		IntervieweeID: req.IntervieweeID,
		SubmittedAt:   time.Now(),
	}
	if err := s.Submissions.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

// CreateAnonymous 通过发送令牌提交，不关联受访者身份
func (s *SubmissionService) CreateAnonymous(token string) (*model.Submission, error) {
	record, err := s.Sent.FindByToken(token)
	if err != nil {
		return nil, err
	}
	return s.Create(record.SurveyID, SubmissionCreateRequest{})
}

type SubmissionView struct {
	model.Submission
	AnswersCount int64 `json:"answersCount"`
}

// ListBySurvey 提交记录附各自的答案条数
func (s *SubmissionService) ListBySurvey(surveyID string) ([]SubmissionView, error) {
	submissions, err := s.Submissions.ListBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	counts, err := s.Answers.CountsBySubmission(surveyID)
	if err != nil {
		return nil, err
	}
	views := make([]SubmissionView, len(submissions))
	for i, submission := range submissions {
		views[i] = SubmissionView{Submission: submission, AnswersCount: counts[submission.ID]}
	}
	return views, nil
}
