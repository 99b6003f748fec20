package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"survey_backend/internal/config"
	"survey_backend/internal/model"
	"survey_backend/internal/repository"
	"survey_backend/internal/util"
	"survey_backend/pkg/logger"
	"survey_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// MailService 问卷投递：先在事务内落发送记录（生成匿名访问令牌），
// 再起 goroutine 调邮件 API 实发。发信失败只记日志和指标，发送记录不回滚。
type MailService struct {
	Sent         *repository.SurveySentRepository
	Surveys      *repository.SurveyRepository
	Interviewees *repository.IntervieweeRepository
	Creators     *repository.CreatorRepository

	mu     sync.RWMutex
	cfg    *config.Config
	client *http.Client
}

func NewMailService(
	sent *repository.SurveySentRepository,
	surveys *repository.SurveyRepository,
	interviewees *repository.IntervieweeRepository,
	creators *repository.CreatorRepository,
	cfg *config.Config,
) *MailService {
	return &MailService{
		Sent:         sent,
		Surveys:      surveys,
		Interviewees: interviewees,
		Creators:     creators,
		cfg:          cfg,
		client:       &http.Client{Timeout: 10 * time.Second},
	}
}

// ApplyConfig 热更新邮件与域名配置
func (s *MailService) ApplyConfig(cfg *config.Config) {
	s.mu.Lock()
	s.cfg = cfg
	s.mu.Unlock()
}

func (s *MailService) config() *config.Config {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

type SendRequest struct {
	Emails []string `json:"emails" binding:"required,min=1"`
}

type SendResult struct {
	Sent []model.SurveySent `json:"sent"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Send 给一批收件人投递问卷。任一收件人此前已收到过该问卷则整体拒绝。
// 非匿名问卷的收件人会进入创建者的受访者通讯录。
func (s *MailService) Send(surveyID, creatorID string, req SendRequest) (*SendResult, error) {
	survey, err := s.Surveys.FindByID(surveyID)
	if err != nil {
		return nil, err
	}
	if survey.CreatorID != creatorID {
		return nil, util.ErrPermissionDenied
	}

	emails := make([]string, 0, len(req.Emails))
	seen := make(map[string]bool)
	for _, email := range req.Emails {
		normalized := normalizeEmail(email)
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		emails = append(emails, normalized)
	}

	exists, err := s.Sent.ExistsAny(surveyID, emails)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrAlreadySent
	}

	now := time.Now()
	records := make([]model.SurveySent, len(emails))
	for i, email := range emails {
		records[i] = model.SurveySent{
			ID:       util.AccessToken(surveyID, email),
			SurveyID: surveyID,
			Email:    email,
			SentAt:   now,
		}
	}
	if err := s.Sent.CreateBatch(records); err != nil {
		return nil, err
	}

	if !survey.Anonymous {
		creator, err := s.Creators.FindByID(creatorID)
		if err != nil {
			return nil, err
		}
		for _, email := range emails {
			interviewee, err := s.Interviewees.FirstOrCreateByEmail(email)
			if err != nil {
				return nil, err
			}
			if err := s.Creators.AddInterviewee(creator, interviewee); err != nil {
				return nil, err
			}
		}
	}

	go s.dispatch(survey, records)

	return &SendResult{Sent: records}, nil
}

// surveyLink 匿名问卷发令牌链接，具名问卷发问卷链接
func (s *MailService) surveyLink(survey *model.Survey, record model.SurveySent) string {
	cfg := s.config()
	if survey.Anonymous {
		return fmt.Sprintf("%s/survey/anonymous/%s", cfg.Server.DomainName, record.ID)
	}
	return fmt.Sprintf("%s/survey/%s", cfg.Server.DomainName, survey.ID)
}

type mailPayload struct {
	Sender struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"sender"`
	To []struct {
		Email string `json:"email"`
	} `json:"to"`
	Subject     string `json:"subject"`
	HTMLContent string `json:"htmlContent"`
}

func (s *MailService) dispatch(survey *model.Survey, records []model.SurveySent) {
	for _, record := range records {
		if err := s.sendOne(survey, record); err != nil {
			monitoring.MailDispatchCounter.WithLabelValues("failure").Inc()
			logger.Log.Error("问卷邮件发送失败",
				zap.String("survey_id", survey.ID),
				zap.String("email", record.Email),
				zap.Error(err))
			continue
		}
		monitoring.MailDispatchCounter.WithLabelValues("success").Inc()
	}
}

func (s *MailService) sendOne(survey *model.Survey, record model.SurveySent) error {
	cfg := s.config()
	if cfg.Mail.APIBase == "" || cfg.Mail.APIKey == "" {
		logger.Log.Warn("邮件服务未配置，跳过实发", zap.String("email", record.Email))
		return nil
	}

	var payload mailPayload
	payload.Sender.Name = cfg.Mail.SenderName
	payload.Sender.Email = cfg.Mail.SenderEmail
	payload.To = []struct {
		Email string `json:"email"`
	}{{Email: record.Email}}
	payload.Subject = fmt.Sprintf("邀请您填写问卷：%s", survey.Title)
	payload.HTMLContent = fmt.Sprintf(
		"<p>%s</p><p><a href=\"%s\">点击填写问卷</a></p>",
		survey.Greeting, s.surveyLink(survey, record))

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, cfg.Mail.APIBase+"/v3/smtp/email", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", cfg.Mail.APIKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("mail api status %d", resp.StatusCode)
	}
	return nil
}
