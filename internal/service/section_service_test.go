package service

import (
	"errors"
	"testing"

	"survey_backend/internal/model"
	"survey_backend/internal/util"
)

// 三个条目各一题，位置 1、2、3
func sectionFixture(t *testing.T, e *env) (*model.Survey, []*model.Item) {
	t.Helper()
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	items := []*model.Item{
		e.addItem(t, survey.ID, "openShort", []string{"q1"}, nil),
		e.addItem(t, survey.ID, "openShort", []string{"q2"}, nil),
		e.addItem(t, survey.ID, "openShort", []string{"q3"}, nil),
	}
	return survey, items
}

func TestCreateSection(t *testing.T) {
	e := newEnv(t)
	survey, items := sectionFixture(t, e)

	section, err := e.sectionSvc.Create(survey.ID, SectionCreateRequest{
		StartItemID: items[0].ID,
		EndItemID:   items[1].ID,
		Title:       "基本信息",
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	if section.StartOrder != 1 || section.EndOrder != 2 {
		t.Fatalf("unexpected bounds: [%d, %d]", section.StartOrder, section.EndOrder)
	}
}

func TestCreateSingleItemSection(t *testing.T) {
	e := newEnv(t)
	survey, items := sectionFixture(t, e)

	// 起止同一条目，区间宽度为1
	section, err := e.sectionSvc.Create(survey.ID, SectionCreateRequest{
		StartItemID: items[2].ID,
		EndItemID:   items[2].ID,
		Title:       "结尾",
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	if section.StartOrder != 3 || section.EndOrder != 3 {
		t.Fatalf("unexpected bounds: [%d, %d]", section.StartOrder, section.EndOrder)
	}
}

func TestCreateSectionRejectsStartAfterEnd(t *testing.T) {
	e := newEnv(t)
	survey, items := sectionFixture(t, e)

	_, err := e.sectionSvc.Create(survey.ID, SectionCreateRequest{
		StartItemID: items[2].ID,
		EndItemID:   items[0].ID,
		Title:       "倒置",
	})
	if !errors.Is(err, util.ErrStartAfterEnd) {
		t.Fatalf("expected ErrStartAfterEnd, got %v", err)
	}
}

func TestCreateSectionRejectsAnchorWithoutQuestions(t *testing.T) {
	e := newEnv(t)
	survey, items := sectionFixture(t, e)

	// 端点条目的唯一问题被删掉，位置无从推导
	if err := e.questionSvc.Delete(items[1].Questions[0].ID); err != nil {
		t.Fatalf("delete question: %v", err)
	}

	_, err := e.sectionSvc.Create(survey.ID, SectionCreateRequest{
		StartItemID: items[1].ID,
		EndItemID:   items[2].ID,
		Title:       "空端点",
	})
	if !errors.Is(err, util.ErrItemWithoutQuestions) {
		t.Fatalf("expected ErrItemWithoutQuestions, got %v", err)
	}

	sections, err := e.sections.ListBySurvey(survey.ID)
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	if len(sections) != 0 {
		t.Fatalf("nothing must be persisted, got %d sections", len(sections))
	}
}

func TestCreateSectionRejectsOverlap(t *testing.T) {
	e := newEnv(t)
	survey, items := sectionFixture(t, e)

	if _, err := e.sectionSvc.Create(survey.ID, SectionCreateRequest{
		StartItemID: items[0].ID,
		EndItemID:   items[1].ID,
		Title:       "第一部分",
	}); err != nil {
		t.Fatalf("create section: %v", err)
	}

	_, err := e.sectionSvc.Create(survey.ID, SectionCreateRequest{
		StartItemID: items[1].ID,
		EndItemID:   items[2].ID,
		Title:       "重叠部分",
	})
	if !errors.Is(err, util.ErrSectionOverlap) {
		t.Fatalf("expected ErrSectionOverlap, got %v", err)
	}

	// 被拒绝的分区不应入库
	sections, err := e.sections.ListBySurvey(survey.ID)
	if err != nil {
		t.Fatalf("list sections: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
}

func TestDisjointSectionsAllowed(t *testing.T) {
	e := newEnv(t)
	survey, items := sectionFixture(t, e)

	for i, title := range []string{"一", "二", "三"} {
		if _, err := e.sectionSvc.Create(survey.ID, SectionCreateRequest{
			StartItemID: items[i].ID,
			EndItemID:   items[i].ID,
			Title:       title,
		}); err != nil {
			t.Fatalf("create section %q: %v", title, err)
		}
	}
}

func TestSectionLayoutSortedWithOutsiders(t *testing.T) {
	e := newEnv(t)
	survey, items := sectionFixture(t, e)

	// 只给后两个条目建分区，倒序创建
	if _, err := e.sectionSvc.Create(survey.ID, SectionCreateRequest{
		StartItemID: items[2].ID, EndItemID: items[2].ID, Title: "后"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := e.sectionSvc.Create(survey.ID, SectionCreateRequest{
		StartItemID: items[1].ID, EndItemID: items[1].ID, Title: "前"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	views, err := e.itemSvc.ListBySurvey(survey.ID)
	if err != nil {
		t.Fatalf("list items: %v", err)
	}
	layout, err := e.sectionSvc.ListBySurvey(survey.ID, views)
	if err != nil {
		t.Fatalf("layout: %v", err)
	}
	if len(layout.Sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(layout.Sections))
	}
	if layout.Sections[0].Title != "前" || layout.Sections[1].Title != "后" {
		t.Fatalf("sections not sorted by start order: %q, %q",
			layout.Sections[0].Title, layout.Sections[1].Title)
	}
	if len(layout.NonSectionItems) != 1 || layout.NonSectionItems[0].ID != items[0].ID {
		t.Fatalf("unexpected non-section items: %+v", layout.NonSectionItems)
	}
}

func TestSectionItems(t *testing.T) {
	e := newEnv(t)
	survey, items := sectionFixture(t, e)

	section, err := e.sectionSvc.Create(survey.ID, SectionCreateRequest{
		StartItemID: items[0].ID,
		EndItemID:   items[1].ID,
		Title:       "前两条",
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	inRange, err := e.sectionSvc.Items(section.ID)
	if err != nil {
		t.Fatalf("section items: %v", err)
	}
	if len(inRange) != 2 || inRange[0].ID != items[0].ID || inRange[1].ID != items[1].ID {
		t.Fatalf("unexpected items in range: %+v", inRange)
	}
}

func TestSectionEndpointsImmutable(t *testing.T) {
	e := newEnv(t)
	survey, items := sectionFixture(t, e)

	section, err := e.sectionSvc.Create(survey.ID, SectionCreateRequest{
		StartItemID: items[0].ID,
		EndItemID:   items[1].ID,
		Title:       "固定",
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}

	_, err = e.sectionSvc.Update(section.ID, SectionUpdateRequest{StartItemID: &items[2].ID})
	if !errors.Is(err, util.ErrNotImplemented) {
		t.Fatalf("expected ErrNotImplemented, got %v", err)
	}

	// 标题描述可以改
	updated, err := e.sectionSvc.Update(section.ID, SectionUpdateRequest{Title: strPtr("新标题")})
	if err != nil {
		t.Fatalf("update title: %v", err)
	}
	if updated.Title != "新标题" {
		t.Fatalf("title not updated: %q", updated.Title)
	}
}

func TestSectionFollowsReorderedQuestions(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	grid := e.addItem(t, survey.ID, "gridSingle", []string{"q1", "q2", "q3"}, []string{"是", "否"})
	tail := e.addItem(t, survey.ID, "openShort", []string{"q4"}, nil)

	section, err := e.sectionSvc.Create(survey.ID, SectionCreateRequest{
		StartItemID: grid.ID,
		EndItemID:   tail.ID,
		Title:       "全部",
	})
	if err != nil {
		t.Fatalf("create section: %v", err)
	}
	if section.StartOrder != 1 || section.EndOrder != 4 {
		t.Fatalf("unexpected bounds: [%d, %d]", section.StartOrder, section.EndOrder)
	}

	// 删除网格第一题后，区间从端点条目的新首题重新推导
	if err := e.questionSvc.Delete(grid.Questions[0].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	views, err := e.sectionSvc.resolvedSections(survey.ID)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if views[0].StartOrder != 1 || views[0].EndOrder != 3 {
		t.Fatalf("bounds not rederived: [%d, %d]", views[0].StartOrder, views[0].EndOrder)
	}
}
