package service

import (
	"errors"
	"sort"

	"survey_backend/internal/model"
	"survey_backend/internal/repository"
	"survey_backend/internal/util"

	"gorm.io/gorm"
)

// SectionService 把问卷的条目序列划分为互不重叠的闭区间分区。
// 分区只存两端条目的ID，区间边界由端点条目首问题的 order 推导，
// 问题移动或删除后分区自动跟随，不需要任何回写。
type SectionService struct {
	Sections  *repository.SectionRepository
	ItemRepo  *repository.ItemRepository
	Questions *repository.QuestionRepository
}

func NewSectionService(
	sections *repository.SectionRepository,
	items *repository.ItemRepository,
	questions *repository.QuestionRepository,
) *SectionService {
	return &SectionService{Sections: sections, ItemRepo: items, Questions: questions}
}

type SectionCreateRequest struct {
	StartItemID string `json:"start_item_id" binding:"required"`
	EndItemID   string `json:"end_item_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type SectionUpdateRequest struct {
	StartItemID *string `json:"start_item_id"`
	EndItemID   *string `json:"end_item_id"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
}

// SectionView 分区及其推导出的 order 闭区间
type SectionView struct {
	model.Section
	StartOrder int `json:"start_order"`
	EndOrder   int `json:"end_order"`
}

// itemStartOrder 端点条目首问题的 order；无问题的条目不能做端点
func (s *SectionService) itemStartOrder(itemID string) (int, error) {
	question, err := s.Questions.FirstOfItem(itemID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, util.ErrItemWithoutQuestions
	}
	if err != nil {
		return 0, err
	}
	return question.Order, nil
}

func (s *SectionService) resolve(section *model.Section) (SectionView, error) {
	start, err := s.itemStartOrder(section.StartItemID)
	if err != nil {
		return SectionView{}, err
	}
	end, err := s.itemStartOrder(section.EndItemID)
	if err != nil {
		return SectionView{}, err
	}
	return SectionView{Section: *section, StartOrder: start, EndOrder: end}, nil
}

func (s *SectionService) Create(surveyID string, req SectionCreateRequest) (*SectionView, error) {
	for _, itemID := range []string{req.StartItemID, req.EndItemID} {
		ok, err := s.ItemRepo.BelongsToSurvey(itemID, surveyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, gorm.ErrRecordNotFound
		}
	}

	start, err := s.itemStartOrder(req.StartItemID)
	if err != nil {
		return nil, err
	}
	end, err := s.itemStartOrder(req.EndItemID)
	if err != nil {
		return nil, err
	}
	if start > end {
		return nil, util.ErrStartAfterEnd
	}

	// 两闭区间 [start,end] 与 [v.Start,v.End] 相交当且仅当 start<=v.End && v.Start<=end
	existing, err := s.resolvedSections(surveyID)
	if err != nil {
		return nil, err
	}
	for _, v := range existing {
		if start <= v.EndOrder && v.StartOrder <= end {
			return nil, util.ErrSectionOverlap
		}
	}

	section := &model.Section{
		StartItemID: req.StartItemID,
		EndItemID:   req.EndItemID,
		Title:       req.Title,
		Description: req.Description,
	}
	if err := s.Sections.Create(section); err != nil {
		return nil, err
	}
	return &SectionView{Section: *section, StartOrder: start, EndOrder: end}, nil
}

func (s *SectionService) resolvedSections(surveyID string) ([]SectionView, error) {
	sections, err := s.Sections.ListBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	views := make([]SectionView, 0, len(sections))
	for i := range sections {
		view, err := s.resolve(&sections[i])
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// SurveyLayout 问卷渲染视图：按位置排好的分区 + 不属于任何分区的条目
type SurveyLayout struct {
	Sections        []SectionView `json:"sections"`
	NonSectionItems []ItemView    `json:"non_section_items"`
}

// ListBySurvey 分区按起始位置升序；同时给出落在所有分区之外的条目
func (s *SectionService) ListBySurvey(surveyID string, items []ItemView) (*SurveyLayout, error) {
	views, err := s.resolvedSections(surveyID)
	if err != nil {
		return nil, err
	}
	sort.Slice(views, func(i, j int) bool { return views[i].StartOrder < views[j].StartOrder })

	var outside []ItemView
	for _, item := range items {
		order, err := s.itemStartOrder(item.ID)
		if err != nil {
			return nil, err
		}
		covered := false
		for _, v := range views {
			if order >= v.StartOrder && order <= v.EndOrder {
				covered = true
				break
			}
		}
		if !covered {
			outside = append(outside, item)
		}
	}
	return &SurveyLayout{Sections: views, NonSectionItems: outside}, nil
}

// Items 分区覆盖的条目，按位置升序
func (s *SectionService) Items(sectionID string) ([]model.Item, error) {
	section, err := s.Sections.FindByID(sectionID)
	if err != nil {
		return nil, err
	}
	view, err := s.resolve(section)
	if err != nil {
		return nil, err
	}
	startItem, err := s.ItemRepo.FindByID(section.StartItemID)
	if err != nil {
		return nil, err
	}
	items, err := s.ItemRepo.ListBySurveyOrdered(startItem.SurveyID)
	if err != nil {
		return nil, err
	}
	var inRange []model.Item
	for _, item := range items {
		order, err := s.itemStartOrder(item.ID)
		if err != nil {
			return nil, err
		}
		if order >= view.StartOrder && order <= view.EndOrder {
			inRange = append(inRange, item)
		}
	}
	return inRange, nil
}

// Update 只允许改标题和描述；端点不可变，移动边界请删除后重建
func (s *SectionService) Update(sectionID string, req SectionUpdateRequest) (*SectionView, error) {
	if req.StartItemID != nil || req.EndItemID != nil {
		return nil, util.ErrNotImplemented
	}
	section, err := s.Sections.FindByID(sectionID)
	if err != nil {
		return nil, err
	}
	if req.Title != nil {
		section.Title = *req.Title
	}
	if req.Description != nil {
		section.Description = *req.Description
	}
	if err := s.Sections.Update(section); err != nil {
		return nil, err
	}
	view, err := s.resolve(section)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (s *SectionService) Delete(sectionID string) error {
	if _, err := s.Sections.FindByID(sectionID); err != nil {
		return err
	}
	return s.Sections.Delete(sectionID)
}
