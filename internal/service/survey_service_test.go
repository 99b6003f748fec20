package service

import (
	"errors"
	"testing"

	"survey_backend/internal/util"

	"gorm.io/gorm"
)

func TestSurveyDetailOrdersItems(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	first := e.addItem(t, survey.ID, "openShort", []string{"q1"}, nil)
	second := e.addItem(t, survey.ID, "gridSingle", []string{"q2", "q3"}, []string{"是", "否"})

	detail, err := e.surveySvc.Detail(survey.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if len(detail.OrderedItems) != 2 {
		t.Fatalf("expected 2 items, got %d", len(detail.OrderedItems))
	}
	if detail.OrderedItems[0].ID != first.ID || detail.OrderedItems[1].ID != second.ID {
		t.Fatalf("items not ordered by position")
	}
}

func TestListBriefCarriesResponseRate(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)

	mail := NewMailService(e.sent, e.surveys, e.interviewees, e.creators, testConfig())
	if _, err := mail.Send(survey.ID, creator.ID, SendRequest{
		Emails: []string{"a@example.com", "b@example.com"},
	}); err != nil {
		t.Fatalf("send: %v", err)
	}
	if _, err := e.submissionSvc.Create(survey.ID, SubmissionCreateRequest{}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	briefs, err := e.surveySvc.ListBrief(creator.ID)
	if err != nil {
		t.Fatalf("list brief: %v", err)
	}
	if len(briefs) != 1 {
		t.Fatalf("expected 1 survey, got %d", len(briefs))
	}
	b := briefs[0]
	if b.Sent != 2 || b.Submitted != 1 || b.ResponseRate != 50.0 {
		t.Fatalf("unexpected brief: sent=%d submitted=%d rate=%v", b.Sent, b.Submitted, b.ResponseRate)
	}
}

func TestSurveyUpdateDeniedForForeignCreator(t *testing.T) {
	e := newEnv(t)
	owner := e.createCreator(t)
	intruder := e.createCreator(t)
	survey := e.createSurvey(t, owner.ID)

	_, err := e.surveySvc.Update(survey.ID, intruder.ID, SurveyUpdateRequest{Title: strPtr("篡改")})
	if !errors.Is(err, util.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestSurveyDeleteCascades(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	item := e.addItem(t, survey.ID, "closedSingle", []string{"q1"}, []string{"A", "B"})

	submission, err := e.submissionSvc.Create(survey.ID, SubmissionCreateRequest{})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := e.answerSvc.Create(item.Questions[0].ID, AnswerRequest{
		SubmissionID: submission.ID,
		OptionID:     &item.Options[0].ID,
	}); err != nil {
		t.Fatalf("answer: %v", err)
	}

	if err := e.surveySvc.Delete(survey.ID, creator.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := e.surveys.FindByID(survey.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("survey survived delete: %v", err)
	}
	if _, err := e.items.FindByID(item.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("item survived delete: %v", err)
	}
	if _, err := e.submissions.FindByID(submission.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("submission survived delete: %v", err)
	}
	count, err := e.answers.CountByQuestion(item.Questions[0].ID)
	if err != nil {
		t.Fatalf("count answers: %v", err)
	}
	if count != 0 {
		t.Fatalf("answers survived delete: %d", count)
	}
}

func TestAnonymousDetailByToken(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	e.addItem(t, survey.ID, "openShort", []string{"q1"}, nil)

	mail := NewMailService(e.sent, e.surveys, e.interviewees, e.creators, testConfig())
	result, err := mail.Send(survey.ID, creator.ID, SendRequest{Emails: []string{"t@example.com"}})
	if err != nil {
		t.Fatalf("send: %v", err)
	}

	detail, err := e.surveySvc.AnonymousDetail(result.Sent[0].ID)
	if err != nil {
		t.Fatalf("anonymous detail: %v", err)
	}
	if detail.ID != survey.ID {
		t.Fatalf("wrong survey: %s", detail.ID)
	}
}
