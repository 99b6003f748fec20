package service

import (
	"context"
	"reflect"
	"testing"

	"survey_backend/internal/repository"
)

func TestResponseRate(t *testing.T) {
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

	rate, err := e.resultSvc.Rate(survey.ID)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rate.Sent != 2 || rate.Submitted != 1 || rate.ResponseRate != 50.0 {
		t.Fatalf("unexpected rate: %+v", rate)
	}
}

func TestResponseRateZeroWhenNeverSent(t *testing.T) {
	e := newEnv(t)
	creator := e.createCreator(t)
	survey := e.createSurvey(t, creator.ID)

	rate, err := e.resultSvc.Rate(survey.ID)
	if err != nil {
		t.Fatalf("rate: %v", err)
	}
	if rate.Sent != 0 || rate.Submitted != 0 || rate.ResponseRate != 0 {
		t.Fatalf("unexpected rate: %+v", rate)
	}
}

func TestNumericQuestionMean(t *testing.T) {
	e := newEnv(t)
	f := newAnswerFixture(t, e)

	second, err := e.submissionSvc.Create(f.survey.ID, SubmissionCreateRequest{})
	if err != nil {
		t.Fatalf("submission: %v", err)
	}
	questionID := f.numeric.Questions[0].ID
	for _, pair := range []struct {
		submissionID string
		value        int
	}{
		{f.submission.ID, 4},
		{second.ID, 8},
	} {
		if _, err := e.answerSvc.Create(questionID, AnswerRequest{
			SubmissionID:   pair.submissionID,
			ContentNumeric: intPtr(pair.value),
		}); err != nil {
			t.Fatalf("answer: %v", err)
		}
	}

	result, err := e.resultSvc.QuestionResult(questionID)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if result.AnswersCount != 2 {
		t.Fatalf("expected 2 answers, got %d", result.AnswersCount)
	}
	if result.Mean == nil || *result.Mean != 6.0 {
		t.Fatalf("unexpected mean: %v", result.Mean)
	}
}

func TestOptionDistributionUsesLabels(t *testing.T) {
	e := newEnv(t)
	f := newAnswerFixture(t, e)

	second, err := e.submissionSvc.Create(f.survey.ID, SubmissionCreateRequest{})
	if err != nil {
		t.Fatalf("submission: %v", err)
	}
	questionID := f.option.Questions[0].ID
	red := f.option.Options[0].ID
	for _, pair := range []struct {
		submissionID string
		optionID     string
	}{
		{f.submission.ID, red},
		{second.ID, red},
	} {
		if _, err := e.answerSvc.Create(questionID, AnswerRequest{
			SubmissionID: pair.submissionID,
			OptionID:     &pair.optionID,
		}); err != nil {
			t.Fatalf("answer: %v", err)
		}
	}

	result, err := e.resultSvc.QuestionResult(questionID)
	if err != nil {
		t.Fatalf("result: %v", err)
	}
	if len(result.Distribution) != 1 {
		t.Fatalf("unexpected distribution: %+v", result.Distribution)
	}
	if result.Distribution[0].Value != "红" || result.Distribution[0].Count != 2 {
		t.Fatalf("unexpected bucket: %+v", result.Distribution[0])
	}
}

func TestSurveyResultsAggregates(t *testing.T) {
	e := newEnv(t)
	f := newAnswerFixture(t, e)

	if _, err := e.answerSvc.Create(f.text.Questions[0].ID, AnswerRequest{
		SubmissionID:     f.submission.ID,
		ContentCharacter: strPtr("不错"),
	}); err != nil {
		t.Fatalf("answer: %v", err)
	}

	results, err := e.resultSvc.SurveyResults(context.Background(), f.survey.ID)
	if err != nil {
		t.Fatalf("results: %v", err)
	}
	if results.SubmissionsCount != 1 || results.AnswersCount != 1 {
		t.Fatalf("unexpected totals: %+v", results)
	}
	if len(results.Questions) != 3 {
		t.Fatalf("expected 3 question results, got %d", len(results.Questions))
	}
}

func TestCommonAnswersNormalizesAndRanks(t *testing.T) {
	texts := []string{
		"Night  Mode", "night mode", "NIGHT MODE ",
		"dark theme", "Dark Theme",
		"widgets",
		"   ",
	}
	counts := commonAnswers(texts)
	expected := []repository.ValueCount{
		{Value: "night mode", Count: 3},
		{Value: "dark theme", Count: 2},
		{Value: "widgets", Count: 1},
	}
	if !reflect.DeepEqual(counts, expected) {
		t.Fatalf("unexpected common answers: %+v", counts)
	}
}
