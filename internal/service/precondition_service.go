package service

import (
	"errors"

	"survey_backend/internal/model"
	"survey_backend/internal/repository"
	"survey_backend/internal/util"

	"gorm.io/gorm"
)

// PreconditionService 条件跳转边：答了源条目的某个选项就跳到目标条目。
// 只做局部校验（选项属于源条目、两端同问卷、目标不指回自己），
// 不做图级分析；环在渲染端自然终止，重复边取最新的一条。
type PreconditionService struct {
	Preconditions *repository.PreconditionRepository
	Items         *repository.ItemRepository
	Options       *repository.OptionRepository
}

func NewPreconditionService(
	preconditions *repository.PreconditionRepository,
	items *repository.ItemRepository,
	options *repository.OptionRepository,
) *PreconditionService {
	return &PreconditionService{Preconditions: preconditions, Items: items, Options: options}
}

type PreconditionCreateRequest struct {
	ItemID           string `json:"item_id" binding:"required"`
	ExpectedOptionID string `json:"expected_option_id" binding:"required"`
	NextItemID       string `json:"next_item_id" binding:"required"`
}

type PreconditionUpdateRequest struct {
	ExpectedOptionID *string `json:"expected_option_id"`
	NextItemID       *string `json:"next_item_id"`
}

func (s *PreconditionService) validate(surveyID, itemID, optionID, nextItemID string) error {
	ok, err := s.Items.BelongsToSurvey(itemID, surveyID)
	if err != nil {
		return err
	}
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if nextItemID == itemID {
		return util.ErrNextItemIsSource
	}
	ok, err = s.Items.BelongsToSurvey(nextItemID, surveyID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrDifferentSurveys
	}
	ok, err = s.Options.BelongsToItem(optionID, itemID)
	if err != nil {
		return err
	}
	if !ok {
		return util.ErrOptionNotOfItem
	}
	return nil
}

func (s *PreconditionService) Create(surveyID string, req PreconditionCreateRequest) (*model.Precondition, error) {
	if err := s.validate(surveyID, req.ItemID, req.ExpectedOptionID, req.NextItemID); err != nil {
		return nil, err
	}
	p := &model.Precondition{
		ItemID:           req.ItemID,
		ExpectedOptionID: req.ExpectedOptionID,
		NextItemID:       req.NextItemID,
	}
	if err := s.Preconditions.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PreconditionService) ListBySurvey(surveyID string) ([]model.Precondition, error) {
	return s.Preconditions.ListBySurvey(surveyID)
}

func (s *PreconditionService) Update(preconditionID string, req PreconditionUpdateRequest) (*model.Precondition, error) {
	p, err := s.Preconditions.FindByID(preconditionID)
	if err != nil {
		return nil, err
	}
	item, err := s.Items.FindByID(p.ItemID)
	if err != nil {
		return nil, err
	}
	optionID := p.ExpectedOptionID
	nextItemID := p.NextItemID
	if req.ExpectedOptionID != nil {
		optionID = *req.ExpectedOptionID
	}
	if req.NextItemID != nil {
		nextItemID = *req.NextItemID
	}
	if err := s.validate(item.SurveyID, p.ItemID, optionID, nextItemID); err != nil {
		return nil, err
	}
	p.ExpectedOptionID = optionID
	p.NextItemID = nextItemID
	if err := s.Preconditions.Update(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PreconditionService) Delete(preconditionID string) error {
	if _, err := s.Preconditions.FindByID(preconditionID); err != nil {
		return err
	}
	return s.Preconditions.Delete(preconditionID)
}

// ResolveNext 给定源条目与所选选项，返回跳转目标条目ID。
// 无匹配边时返回空串，表示按默认顺序继续。
func (s *PreconditionService) ResolveNext(itemID, optionID string) (string, error) {
	p, err := s.Preconditions.FindMatch(itemID, optionID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return p.NextItemID, nil
}
