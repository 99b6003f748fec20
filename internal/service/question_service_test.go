package service

import (
	"errors"
	"reflect"
	"testing"

	"survey_backend/internal/util"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }
func boolPtr(v bool) *bool    { return &v }

func TestAppendAssignsSequentialOrders(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)

	e.addItem(t, survey.ID, "gridSingle", []string{"q1", "q2", "q3"}, []string{"是", "否"})
	e.addItem(t, survey.ID, "openShort", []string{"q4"}, nil)

	orders, values := e.surveyOrders(t, survey.ID)
	assertDense(t, orders)
	if !reflect.DeepEqual(values, []string{"q1", "q2", "q3", "q4"}) {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestReorderBackward(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	item := e.addItem(t, survey.ID, "gridSingle",
		[]string{"q1", "q2", "q3", "q4", "q5"}, []string{"是", "否"})

	// 第4题移到第2位，中间的题整体后移一位
	if _, err := e.questionSvc.Update(item.Questions[3].ID, QuestionUpdateRequest{Order: intPtr(2)}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	orders, values := e.surveyOrders(t, survey.ID)
	assertDense(t, orders)
	if !reflect.DeepEqual(values, []string{"q1", "q4", "q2", "q3", "q5"}) {
		t.Fatalf("unexpected values after backward move: %v", values)
	}
}

func TestReorderForward(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	item := e.addItem(t, survey.ID, "gridSingle",
		[]string{"q1", "q2", "q3", "q4", "q5"}, []string{"是", "否"})

	// 第2题移到第4位，中间的题整体前移一位
	if _, err := e.questionSvc.Update(item.Questions[1].ID, QuestionUpdateRequest{Order: intPtr(4)}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	orders, values := e.surveyOrders(t, survey.ID)
	assertDense(t, orders)
	if !reflect.DeepEqual(values, []string{"q1", "q3", "q4", "q2", "q5"}) {
		t.Fatalf("unexpected values after forward move: %v", values)
	}
}

func TestReorderRefreshesStaleSnapshot(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	item := e.addItem(t, survey.ID, "gridSingle",
		[]string{"q1", "q2", "q3", "q4", "q5"}, []string{"是", "否"})

	// 先取快照，随后的移动让快照里的 order 过期
	stale, err := e.questions.FindByID(item.Questions[4].ID)
	if err != nil {
		t.Fatalf("find question: %v", err)
	}
	if _, err := e.questionSvc.Update(stale.ID, QuestionUpdateRequest{Order: intPtr(3)}); err != nil {
		t.Fatalf("intervening move: %v", err)
	}

	// 移位范围必须按锁内重读的当前位置计算，不能信快照
	if err := e.questions.Reorder(survey.ID, stale, 1); err != nil {
		t.Fatalf("reorder from stale snapshot: %v", err)
	}

	orders, values := e.surveyOrders(t, survey.ID)
	assertDense(t, orders)
	if !reflect.DeepEqual(values, []string{"q5", "q1", "q2", "q3", "q4"}) {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestReorderToSamePositionIsNoop(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	item := e.addItem(t, survey.ID, "gridSingle",
		[]string{"q1", "q2", "q3"}, []string{"是", "否"})

	if _, err := e.questionSvc.Update(item.Questions[1].ID, QuestionUpdateRequest{Order: intPtr(2)}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	orders, values := e.surveyOrders(t, survey.ID)
	assertDense(t, orders)
	if !reflect.DeepEqual(values, []string{"q1", "q2", "q3"}) {
		t.Fatalf("unexpected values: %v", values)
	}
}

func TestReorderRejectsNegativeTarget(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	item := e.addItem(t, survey.ID, "gridSingle",
		[]string{"q1", "q2", "q3", "q4", "q5"}, []string{"是", "否"})

	_, err := e.questionSvc.Update(item.Questions[2].ID, QuestionUpdateRequest{Order: intPtr(-1)})
	if !errors.Is(err, util.ErrOrderOutOfRange) {
		t.Fatalf("expected ErrOrderOutOfRange, got %v", err)
	}

	orders, values := e.surveyOrders(t, survey.ID)
	assertDense(t, orders)
	if !reflect.DeepEqual(values, []string{"q1", "q2", "q3", "q4", "q5"}) {
		t.Fatalf("order changed after rejected move: %v", values)
	}
}

func TestReorderRejectsOtherItemRange(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	grid := e.addItem(t, survey.ID, "gridSingle",
		[]string{"q1", "q2", "q3", "q4", "q5"}, []string{"是", "否"})
	e.addItem(t, survey.ID, "openShort", []string{"q6"}, nil)

	// 第6位属于另一个条目的区间
	_, err := e.questionSvc.Update(grid.Questions[2].ID, QuestionUpdateRequest{Order: intPtr(6)})
	if !errors.Is(err, util.ErrOrderOutOfRange) {
		t.Fatalf("expected ErrOrderOutOfRange, got %v", err)
	}

	orders, values := e.surveyOrders(t, survey.ID)
	assertDense(t, orders)
	if !reflect.DeepEqual(values, []string{"q1", "q2", "q3", "q4", "q5", "q6"}) {
		t.Fatalf("order changed after rejected move: %v", values)
	}
}

func TestDeleteCompactsOrders(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	grid := e.addItem(t, survey.ID, "gridSingle",
		[]string{"q1", "q2", "q3", "q4"}, []string{"是", "否"})
	e.addItem(t, survey.ID, "openShort", []string{"q5"}, nil)

	if err := e.questionSvc.Delete(grid.Questions[2].ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	orders, values := e.surveyOrders(t, survey.ID)
	assertDense(t, orders)
	if !reflect.DeepEqual(values, []string{"q1", "q2", "q4", "q5"}) {
		t.Fatalf("unexpected values after delete: %v", values)
	}
}

func TestDeleteItemCompactsSurveySequence(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	e.addItem(t, survey.ID, "openShort", []string{"q1"}, nil)
	middle := e.addItem(t, survey.ID, "gridSingle", []string{"q2", "q3"}, []string{"是", "否"})
	e.addItem(t, survey.ID, "openShort", []string{"q4"}, nil)

	if err := e.itemSvc.Delete(middle.ID); err != nil {
		t.Fatalf("delete item: %v", err)
	}

	orders, values := e.surveyOrders(t, survey.ID)
	assertDense(t, orders)
	if !reflect.DeepEqual(values, []string{"q1", "q4"}) {
		t.Fatalf("unexpected values after item delete: %v", values)
	}
}

func TestUpdateQuestionValue(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	item := e.addItem(t, survey.ID, "openShort", []string{"旧文案"}, nil)

	updated, err := e.questionSvc.Update(item.Questions[0].ID, QuestionUpdateRequest{Value: strPtr("新文案")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Value != "新文案" {
		t.Fatalf("value not updated: %q", updated.Value)
	}

	reloaded, err := e.questions.FindByID(item.Questions[0].ID)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Value != "新文案" {
		t.Fatalf("value not persisted: %q", reloaded.Value)
	}
}
