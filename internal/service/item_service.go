package service

import (
	"errors"
	"survey_backend/internal/model"
	"survey_backend/internal/repository"

	"gorm.io/gorm"
)

type ItemService struct {
	Items         *repository.ItemRepository
	Questions     *repository.QuestionRepository
	Options       *repository.OptionRepository
	Sections      *repository.SectionRepository
	Preconditions *repository.PreconditionRepository
	Surveys       *repository.SurveyRepository
	DB            *gorm.DB
}

func NewItemService(
	items *repository.ItemRepository,
	questions *repository.QuestionRepository,
	options *repository.OptionRepository,
	sections *repository.SectionRepository,
	preconditions *repository.PreconditionRepository,
	surveys *repository.SurveyRepository,
	db *gorm.DB,
) *ItemService {
	return &ItemService{
		Items:         items,
		Questions:     questions,
		Options:       options,
		Sections:      sections,
		Preconditions: preconditions,
		Surveys:       surveys,
		DB:            db,
	}
}

type ItemCreateRequest struct {
	Type      string   `json:"type" binding:"required"`
	Required  bool     `json:"required"`
	Questions []string `json:"questions" binding:"required,min=1"`
	Options   []string `json:"options"`
}

type ItemUpdateRequest struct {
	Type     *string `json:"type"`
	Required *bool   `json:"required"`
}

// Create 在一个事务里创建条目、追加其问题（问卷末尾的连续 order）与选项
func (s *ItemService) Create(surveyID string, req ItemCreateRequest) (*model.Item, error) {
	answerType, err := model.ParseAnswerType(req.Type)
	if err != nil {
		return nil, err
	}
	if _, err := s.Surveys.FindByID(surveyID); err != nil {
		return nil, err
	}

	item := &model.Item{
		SurveyID: surveyID,
		Type:     answerType,
		Required: req.Required,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Items.Create(tx, item); err != nil {
			return err
		}
		if _, err := s.Questions.AppendBatch(tx, surveyID, item.ID, req.Questions); err != nil {
			return err
		}
		options := make([]model.Option, len(req.Options))
		for i, content := range req.Options {
			options[i] = model.Option{ItemID: item.ID, Content: content}
		}
		return s.Options.CreateBatch(tx, options)
	})
	if err != nil {
		return nil, err
	}

	return s.Items.FindByIDWithRelations(item.ID)
}

func (s *ItemService) Update(itemID string, req ItemUpdateRequest) (*model.Item, error) {
	item, err := s.Items.FindByID(itemID)
	if err != nil {
		return nil, err
	}
	if req.Type != nil {
		answerType, err := model.ParseAnswerType(*req.Type)
		if err != nil {
			return nil, err
		}
		item.Type = answerType
	}
	if req.Required != nil {
		item.Required = *req.Required
	}
	if err := s.Items.Update(item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete 级联删除条目：先逐个走问题删除路径压实问卷序列，
// 再清理引用该条目的分区与跳转边，最后删掉条目本身和选项。
func (s *ItemService) Delete(itemID string) error {
	item, err := s.Items.FindByID(itemID)
	if err != nil {
		return err
	}

	for {
		question, err := s.Questions.FirstOfItem(itemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			break
		}
		if err != nil {
			return err
		}
		if err := s.Questions.DeleteAndCompact(item.SurveyID, question); err != nil {
			return err
		}
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := s.Sections.DeleteByItem(tx, itemID); err != nil {
			return err
		}
		if err := s.Preconditions.DeleteByItem(tx, itemID); err != nil {
			return err
		}
		return s.Items.Delete(tx, itemID)
	})
}

// AddOption 给既有条目追加一个选项
func (s *ItemService) AddOption(itemID, content string) (*model.Option, error) {
	if _, err := s.Items.FindByID(itemID); err != nil {
		return nil, err
	}
	option := model.Option{ItemID: itemID, Content: content}
	if err := s.DB.Create(&option).Error; err != nil {
		return nil, err
	}
	return &option, nil
}

func (s *ItemService) UpdateOption(optionID, content string) (*model.Option, error) {
	option, err := s.Options.FindByID(optionID)
	if err != nil {
		return nil, err
	}
	option.Content = content
	if err := s.Options.Update(option); err != nil {
		return nil, err
	}
	return option, nil
}

func (s *ItemService) DeleteOption(optionID string) error {
	if _, err := s.Options.FindByID(optionID); err != nil {
		return err
	}
	return s.Options.Delete(optionID)
}

// ItemView 条目及其跳转边，问卷详情使用
type ItemView struct {
	model.Item
	Preconditions []model.Precondition `json:"preconditions,omitempty"`
}

// ListBySurvey 按条目首问题的 order 升序返回条目（含跳转边）
func (s *ItemService) ListBySurvey(surveyID string) ([]ItemView, error) {
	items, err := s.Items.ListBySurveyOrdered(surveyID)
	if err != nil {
		return nil, err
	}
	views := make([]ItemView, len(items))
	for i, item := range items {
		preconditions, err := s.Preconditions.ListByItem(item.ID)
		if err != nil {
			return nil, err
		}
		views[i] = ItemView{Item: item, Preconditions: preconditions}
	}
	return views, nil
}
