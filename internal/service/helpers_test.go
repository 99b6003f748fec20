package service

import (
	"fmt"
	"os"
	"testing"

	"survey_backend/internal/config"
	"survey_backend/internal/model"
	"survey_backend/internal/repository"
	"survey_backend/pkg/database"
	"survey_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	logger.Log = zap.NewNop()
	os.Exit(m.Run())
}

// testConfig 不配邮件网关，发送走落库但跳过实发
func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Server.DomainName = "https://survey.example.com"
	return cfg
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// env 一套接好全部仓储与服务的测试环境
type env struct {
	db *gorm.DB

	creators     *repository.CreatorRepository
	interviewees *repository.IntervieweeRepository
	surveys      *repository.SurveyRepository
	items        *repository.ItemRepository
	questions    *repository.QuestionRepository
	options      *repository.OptionRepository
	sections     *repository.SectionRepository
	preconds     *repository.PreconditionRepository
	submissions  *repository.SubmissionRepository
	answers      *repository.AnswerRepository
	sent         *repository.SurveySentRepository

	itemSvc       *ItemService
	questionSvc   *QuestionService
	sectionSvc    *SectionService
	precondSvc    *PreconditionService
	surveySvc     *SurveyService
	submissionSvc *SubmissionService
	answerSvc     *AnswerService
	resultSvc     *ResultService
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := newTestDB(t)
	e := &env{
		db:           db,
		creators:     repository.NewCreatorRepository(db),
		interviewees: repository.NewIntervieweeRepository(db),
		surveys:      repository.NewSurveyRepository(db),
		items:        repository.NewItemRepository(db),
		questions:    repository.NewQuestionRepository(db),
		options:      repository.NewOptionRepository(db),
		sections:     repository.NewSectionRepository(db),
		preconds:     repository.NewPreconditionRepository(db),
		submissions:  repository.NewSubmissionRepository(db),
		answers:      repository.NewAnswerRepository(db),
		sent:         repository.NewSurveySentRepository(db),
	}
	e.questionSvc = NewQuestionService(e.questions)
	e.itemSvc = NewItemService(e.items, e.questions, e.options, e.sections, e.preconds, e.surveys, db)
	e.sectionSvc = NewSectionService(e.sections, e.items, e.questions)
	e.precondSvc = NewPreconditionService(e.preconds, e.items, e.options)
	e.surveySvc = NewSurveyService(e.surveys, e.itemSvc, e.sectionSvc, e.sent, e.submissions)
	e.submissionSvc = NewSubmissionService(e.submissions, e.surveys, e.sent, e.answers)
	e.answerSvc = NewAnswerService(e.answers, e.questions, e.items, e.submissions, e.surveys)
	e.resultSvc = NewResultService(e.answers, e.questions, e.items, e.options, e.submissions, e.sent, nil)
	return e
}

func (e *env) createCreator(t *testing.T) *model.Creator {
	t.Helper()
	creator := &model.Creator{Email: fmt.Sprintf("creator-%s@example.com", model.GenerateUUID()), Password: "hashed"}
	if err := e.creators.Create(creator); err != nil {
		t.Fatalf("create creator: %v", err)
	}
	return creator
}

func (e *env) createSurvey(t *testing.T, creatorID string) *model.Survey {
	t.Helper()
	survey := &model.Survey{Title: "客户满意度调查", CreatorID: creatorID}
	if err := e.surveys.Create(survey); err != nil {
		t.Fatalf("create survey: %v", err)
	}
	return survey
}

// addItem 建一个条目并返回它，问题追加到问卷末尾
func (e *env) addItem(t *testing.T, surveyID, answerType string, questions []string, options []string) *model.Item {
	t.Helper()
	item, err := e.itemSvc.Create(surveyID, ItemCreateRequest{
		Type:      answerType,
		Questions: questions,
		Options:   options,
	})
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	return item
}

// surveyOrders 问卷全部问题按 order 排序后的 (order, value) 序列
func (e *env) surveyOrders(t *testing.T, surveyID string) ([]int, []string) {
	t.Helper()
	questions, err := e.questions.ListBySurvey(surveyID)
	if err != nil {
		t.Fatalf("list questions: %v", err)
	}
	orders := make([]int, len(questions))
	values := make([]string, len(questions))
	for i, q := range questions {
		orders[i] = q.Order
		values[i] = q.Value
	}
	return orders, values
}

func assertDense(t *testing.T, orders []int) {
	t.Helper()
	for i, order := range orders {
		if order != i+1 {
			t.Fatalf("orders not dense: got %v", orders)
		}
	}
}
