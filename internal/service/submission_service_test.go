package service

import (
	"errors"
	"testing"

	"survey_backend/internal/model"
	"survey_backend/internal/util"
)

func TestNamedIntervieweeSubmitsOnce(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	e.addItem(t, survey.ID, "openShort", []string{"q1"}, nil)

	interviewee, err := e.interviewees.FirstOrCreateByEmail("dup@example.com")
	if err != nil {
		t.Fatalf("create interviewee: %v", err)
	}

	if _, err := e.submissionSvc.Create(survey.ID, SubmissionCreateRequest{IntervieweeID: &interviewee.ID}); err != nil {
		t.Fatalf("first submission: %v", err)
	}

	_, err = e.submissionSvc.Create(survey.ID, SubmissionCreateRequest{IntervieweeID: &interviewee.ID})
	if !errors.Is(err, util.ErrAlreadySubmitted) {
		t.Fatalf("expected ErrAlreadySubmitted, got %v", err)
	}

	count, err := e.submissions.CountBySurvey(survey.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 submission, got %d", count)
	}
}

func TestAnonymousSubmissionsUnlimited(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)

	for i := 0; i < 3; i++ {
		if _, err := e.submissionSvc.Create(survey.ID, SubmissionCreateRequest{}); err != nil {
			t.Fatalf("submission %d: %v", i, err)
		}
	}

	count, err := e.submissions.CountBySurvey(survey.ID)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 submissions, got %d", count)
	}
}

func TestSubmissionRejectedWhenPaused(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	if err := e.surveys.Updates(survey.ID, map[string]interface{}{"paused": true}); err != nil {
		t.Fatalf("pause: %v", err)
	}

	_, err := e.submissionSvc.Create(survey.ID, SubmissionCreateRequest{})
	if !errors.Is(err, util.ErrSurveyPaused) {
		t.Fatalf("expected ErrSurveyPaused, got %v", err)
	}
}

func TestListBySurveyCountsAnswers(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)
	item := e.addItem(t, survey.ID, "openShort", []string{"q1", "q2"}, nil)

	answered, err := e.submissionSvc.Create(survey.ID, SubmissionCreateRequest{})
	if err != nil {
		t.Fatalf("submission: %v", err)
	}
	empty, err := e.submissionSvc.Create(survey.ID, SubmissionCreateRequest{})
	if err != nil {
		t.Fatalf("submission: %v", err)
	}

	content := "odpowiedź"
	for _, q := range item.Questions {
		if _, err := e.answerSvc.Create(q.ID, AnswerRequest{
			SubmissionID:     answered.ID,
			ContentCharacter: &content,
		}); err != nil {
			t.Fatalf("answer: %v", err)
		}
	}

	views, err := e.submissionSvc.ListBySurvey(survey.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	counts := make(map[string]int64, len(views))
	for _, v := range views {
		counts[v.ID] = v.AnswersCount
	}
	if counts[answered.ID] != 2 || counts[empty.ID] != 0 {
		t.Fatalf("unexpected counts: %v", counts)
	}
}

func TestAnonymousSubmitByToken(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)

	record := model.SurveySent{
		ID:       util.AccessToken(survey.ID, "anon@example.com"),
		SurveyID: survey.ID,
		Email:    "anon@example.com",
	}
	if err := e.sent.CreateBatch([]model.SurveySent{record}); err != nil {
		t.Fatalf("create sent record: %v", err)
	}

	submission, err := e.submissionSvc.CreateAnonymous(record.ID)
	if err != nil {
		t.Fatalf("anonymous submit: %v", err)
	}
	if submission.SurveyID != survey.ID {
		t.Fatalf("wrong survey: %s", submission.SurveyID)
	}
	if submission.IntervieweeID != nil {
		t.Fatalf("anonymous submission must not carry interviewee")
	}
}
