package service

import (
	"time"

	"survey_backend/internal/model"
	"survey_backend/internal/repository"
	"survey_backend/internal/util"
)

type SurveyService struct {
	Surveys     *repository.SurveyRepository
	Items       *ItemService
	Sections    *SectionService
	Sent        *repository.SurveySentRepository
	Submissions *repository.SubmissionRepository
}

func NewSurveyService(
	surveys *repository.SurveyRepository,
	items *ItemService,
	sections *SectionService,
	sent *repository.SurveySentRepository,
	submissions *repository.SubmissionRepository,
) *SurveyService {
	return &SurveyService{
		Surveys:     surveys,
		Items:       items,
		Sections:    sections,
		Sent:        sent,
		Submissions: submissions,
	}
}

type SurveyCreateRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	StartsAt    *time.Time `json:"startsAt"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Paused      bool       `json:"paused"`
	Anonymous   bool       `json:"anonymous"`
	Greeting    string     `json:"greeting"`
	Farewell    string     `json:"farewell"`
}

type SurveyUpdateRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartsAt    *time.Time `json:"startsAt"`
	ExpiresAt   *time.Time `json:"expiresAt"`
	Paused      *bool      `json:"paused"`
	Anonymous   *bool      `json:"anonymous"`
	Greeting    *string    `json:"greeting"`
	Farewell    *string    `json:"farewell"`
}

// SurveyDetail 问卷完整视图：条目按位置排序，外加分区布局
type SurveyDetail struct {
	model.Survey
	OrderedItems []ItemView    `json:"orderedItems"`
	Layout       *SurveyLayout `json:"layout"`
}

// SurveyBrief 列表页摘要：标题加回收进度
type SurveyBrief struct {
	model.Survey
	Sent         int64   `json:"sent"`
	Submitted    int64   `json:"submitted"`
	ResponseRate float64 `json:"responseRate"`
}

func (s *SurveyService) Create(creatorID string, req SurveyCreateRequest) (*model.Survey, error) {
	survey := &model.Survey{
		Title:       req.Title,
		Description: req.Description,
		CreatorID:   creatorID,
		StartsAt:    req.StartsAt,
		ExpiresAt:   req.ExpiresAt,
		Paused:      req.Paused,
		Anonymous:   req.Anonymous,
		Greeting:    req.Greeting,
		Farewell:    req.Farewell,
	}
	if err := s.Surveys.Create(survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// authorize 仅问卷创建者可管理问卷
func (s *SurveyService) authorize(surveyID, creatorID string) (*model.Survey, error) {
	survey, err := s.Surveys.FindByID(surveyID)
	if err != nil {
		return nil, err
	}
	if survey.CreatorID != creatorID {
		return nil, util.ErrPermissionDenied
	}
	return survey, nil
}

func (s *SurveyService) Detail(surveyID string) (*SurveyDetail, error) {
	survey, err := s.Surveys.FindByID(surveyID)
	if err != nil {
		return nil, err
	}
	items, err := s.Items.ListBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	layout, err := s.Sections.ListBySurvey(surveyID, items)
	if err != nil {
		return nil, err
	}
	return &SurveyDetail{Survey: *survey, OrderedItems: items, Layout: layout}, nil
}

// DetailForCreator 管理端详情，带属主校验
func (s *SurveyService) DetailForCreator(surveyID, creatorID string) (*SurveyDetail, error) {
	if _, err := s.authorize(surveyID, creatorID); err != nil {
		return nil, err
	}
	return s.Detail(surveyID)
}

// AnonymousDetail 凭发送令牌取问卷详情（填答端）
func (s *SurveyService) AnonymousDetail(token string) (*SurveyDetail, error) {
	record, err := s.Sent.FindByToken(token)
	if err != nil {
		return nil, err
	}
	return s.Detail(record.SurveyID)
}

func (s *SurveyService) responseRate(surveyID string) (sent, submitted int64, rate float64, err error) {
	sent, err = s.Sent.CountBySurvey(surveyID)
	if err != nil {
		return
	}
	submitted, err = s.Submissions.CountBySurvey(surveyID)
	if err != nil {
		return
	}
	if sent > 0 {
		rate = float64(submitted) / float64(sent) * 100
	}
	return
}

// ListBrief 创建者的问卷列表，附发送数、提交数与回收率（百分比，0 发送时为 0）
func (s *SurveyService) ListBrief(creatorID string) ([]SurveyBrief, error) {
	surveys, err := s.Surveys.ListByCreator(creatorID)
	if err != nil {
		return nil, err
	}
	briefs := make([]SurveyBrief, len(surveys))
	for i, survey := range surveys {
		sent, submitted, rate, err := s.responseRate(survey.ID)
		if err != nil {
			return nil, err
		}
		briefs[i] = SurveyBrief{Survey: survey, Sent: sent, Submitted: submitted, ResponseRate: rate}
	}
	return briefs, nil
}

func (s *SurveyService) Update(surveyID, creatorID string, req SurveyUpdateRequest) (*model.Survey, error) {
	survey, err := s.authorize(surveyID, creatorID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		survey.Title = *req.Title
	}
	if req.Description != nil {
		survey.Description = *req.Description
	}
	if req.StartsAt != nil {
		survey.StartsAt = req.StartsAt
	}
	if req.ExpiresAt != nil {
		survey.ExpiresAt = req.ExpiresAt
	}
	if req.Paused != nil {
		survey.Paused = *req.Paused
	}
	if req.Anonymous != nil {
		survey.Anonymous = *req.Anonymous
	}
	if req.Greeting != nil {
		survey.Greeting = *req.Greeting
	}
	if req.Farewell != nil {
		survey.Farewell = *req.Farewell
	}
	if err := s.Surveys.Update(survey); err != nil {
		return nil, err
	}
	return survey, nil
}

func (s *SurveyService) Delete(surveyID, creatorID string) error {
	if _, err := s.authorize(surveyID, creatorID); err != nil {
		return err
	}
	return s.Surveys.Delete(surveyID)
}
