package service

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"survey_backend/internal/model"
	"survey_backend/internal/repository"
	"survey_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const resultCacheTTL = 60 * time.Second

// ResultService 结果统计。问卷级结果可经 Redis 缓存，
// 缓存未配置或不可用时直接落库查询，只记日志不报错。
type ResultService struct {
	Answers     *repository.AnswerRepository
	Questions   *repository.QuestionRepository
	Items       *repository.ItemRepository
	Options     *repository.OptionRepository
	Submissions *repository.SubmissionRepository
	Sent        *repository.SurveySentRepository
	Redis       *redis.Client
}

func NewResultService(
	answers *repository.AnswerRepository,
	questions *repository.QuestionRepository,
	items *repository.ItemRepository,
	options *repository.OptionRepository,
	submissions *repository.SubmissionRepository,
	sent *repository.SurveySentRepository,
	redisClient *redis.Client,
) *ResultService {
	return &ResultService{
		Answers:     answers,
		Questions:   questions,
		Items:       items,
		Options:     options,
		Submissions: submissions,
		Sent:        sent,
		Redis:       redisClient,
	}
}

// QuestionResult 单个问题的统计视图，按答案族填充对应字段
type QuestionResult struct {
	QuestionID    string                   `json:"questionId"`
	Order         int                      `json:"order"`
	Value         string                   `json:"value"`
	Type          model.AnswerType         `json:"type"`
	AnswersCount  int64                    `json:"answersCount"`
	Mean          *float64                 `json:"mean,omitempty"`
	Distribution  []repository.ValueCount  `json:"distribution,omitempty"`
	CommonAnswers []repository.ValueCount  `json:"commonAnswers,omitempty"`
}

type SurveyResults struct {
	SurveyID         string           `json:"surveyId"`
	SubmissionsCount int64            `json:"submissionsCount"`
	AnswersCount     int64            `json:"answersCount"`
	Questions        []QuestionResult `json:"questions"`
}

type ResponseRate struct {
	Sent         int64   `json:"sent"`
	Submitted    int64   `json:"submitted"`
	ResponseRate float64 `json:"responseRate"`
}

// normalizeText 文本答案归一化：去首尾空白、压缩空白、转小写
func normalizeText(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// commonAnswers 文本答案出现频次前 10，次数相同按字典序
func commonAnswers(texts []string) []repository.ValueCount {
	freq := make(map[string]int64)
	for _, t := range texts {
		normalized := normalizeText(t)
		if normalized == "" {
			continue
		}
		freq[normalized]++
	}
	counts := make([]repository.ValueCount, 0, len(freq))
	for value, count := range freq {
		counts = append(counts, repository.ValueCount{Value: value, Count: count})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Value < counts[j].Value
	})
	if len(counts) > 10 {
		counts = counts[:10]
	}
	return counts
}

// labelOptionCounts 把分布里的选项ID换成选项文案
func (s *ResultService) labelOptionCounts(counts []repository.ValueCount) []repository.ValueCount {
	for i, c := range counts {
		option, err := s.Options.FindByID(c.Value)
		if err != nil {
			continue
		}
		counts[i].Value = option.Content
	}
	return counts
}

// QuestionResult 单个问题的统计
func (s *ResultService) QuestionResult(questionID string) (*QuestionResult, error) {
	question, err := s.Questions.FindByID(questionID)
	if err != nil {
		return nil, err
	}
	item, err := s.Items.FindByID(question.ItemID)
	if err != nil {
		return nil, err
	}
	count, err := s.Answers.CountByQuestion(questionID)
	if err != nil {
		return nil, err
	}

	result := &QuestionResult{
		QuestionID:   questionID,
		Order:        question.Order,
		Value:        question.Value,
		Type:         item.Type,
		AnswersCount: count,
	}

	switch item.Type.Family() {
	case model.FamilyOption:
		counts, err := s.Answers.OptionCounts(questionID)
		if err != nil {
			return nil, err
		}
		result.Distribution = s.labelOptionCounts(counts)
	case model.FamilyNumeric:
		result.Mean, err = s.Answers.MeanNumeric(questionID)
		if err != nil {
			return nil, err
		}
		result.Distribution, err = s.Answers.NumericCounts(questionID)
		if err != nil {
			return nil, err
		}
	case model.FamilyText:
		texts, err := s.Answers.TextAnswers(questionID)
		if err != nil {
			return nil, err
		}
		result.CommonAnswers = commonAnswers(texts)
	}
	return result, nil
}

// SurveyResults 问卷全量统计，命中缓存时直接返回缓存值
func (s *ResultService) SurveyResults(ctx context.Context, surveyID string) (*SurveyResults, error) {
	cacheKey := "survey:results:" + surveyID
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Result(); err == nil {
			var results SurveyResults
			if json.Unmarshal([]byte(cached), &results) == nil {
				return &results, nil
			}
		}
	}

	submissions, err := s.Submissions.CountBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	answers, err := s.Answers.CountBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	questions, err := s.Questions.ListBySurvey(surveyID)
	if err != nil {
		return nil, err
	}

	results := &SurveyResults{
		SurveyID:         surveyID,
		SubmissionsCount: submissions,
		AnswersCount:     answers,
		Questions:        make([]QuestionResult, 0, len(questions)),
	}
	for _, q := range questions {
		qr, err := s.QuestionResult(q.ID)
		if err != nil {
			return nil, err
		}
		results.Questions = append(results.Questions, *qr)
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(results); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, payload, resultCacheTTL).Err(); err != nil {
				logger.Log.Warn("结果缓存写入失败", zap.String("survey_id", surveyID), zap.Error(err))
			}
		}
	}
	return results, nil
}

// Rate 问卷回收率：submitted/sent 百分比，未发送过时为 0
func (s *ResultService) Rate(surveyID string) (*ResponseRate, error) {
	sent, err := s.Sent.CountBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	submitted, err := s.Submissions.CountBySurvey(surveyID)
	if err != nil {
		return nil, err
	}
	rate := &ResponseRate{Sent: sent, Submitted: submitted}
	if sent > 0 {
		rate.ResponseRate = float64(submitted) / float64(sent) * 100
	}
	return rate, nil
}
