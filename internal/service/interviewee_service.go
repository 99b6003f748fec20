package service

import (
	"encoding/csv"
	"io"
	"strings"

	"survey_backend/internal/model"
	"survey_backend/internal/repository"
	"survey_backend/internal/util"
)

// IntervieweeService 创建者的受访者通讯录，支持分号分隔的 CSV 导入导出。
// 导入格式：email;first_name;last_name，带表头。
type IntervieweeService struct {
	Interviewees *repository.IntervieweeRepository
	Creators     *repository.CreatorRepository
}

func NewIntervieweeService(
	interviewees *repository.IntervieweeRepository,
	creators *repository.CreatorRepository,
) *IntervieweeService {
	return &IntervieweeService{Interviewees: interviewees, Creators: creators}
}

type ImportResult struct {
	NewlyAdded    []model.Interviewee `json:"newlyAdded"`
	AlreadyExists []model.Interviewee `json:"alreadyExists"`
}

func (s *IntervieweeService) List(creatorID string) ([]model.Interviewee, error) {
	return s.Creators.ListInterviewees(creatorID)
}

type IntervieweeCreateRequest struct {
	Email     string `json:"email" binding:"required,email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type IntervieweeUpdateRequest struct {
	Email     *string `json:"email" binding:"omitempty,email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
}

// Create 新建受访者并加入创建者通讯录，邮箱按通讯录去重
func (s *IntervieweeService) Create(creatorID string, req IntervieweeCreateRequest) (*model.Interviewee, error) {
	creator, err := s.Creators.FindByID(creatorID)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(req.Email)
	exists, err := s.Creators.HasIntervieweeEmail(creatorID, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, util.ErrIntervieweeExists
	}
	interviewee := &model.Interviewee{
		Email:     email,
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
	}
	if err := s.Interviewees.Create(interviewee); err != nil {
		return nil, err
	}
	if err := s.Creators.AddInterviewee(creator, interviewee); err != nil {
		return nil, err
	}
	return interviewee, nil
}

func (s *IntervieweeService) Get(id string) (*model.Interviewee, error) {
	return s.Interviewees.FindByID(id)
}

func (s *IntervieweeService) Update(id string, req IntervieweeUpdateRequest) (*model.Interviewee, error) {
	interviewee, err := s.Interviewees.FindByID(id)
	if err != nil {
		return nil, err
	}
	if req.Email != nil {
		interviewee.Email = normalizeEmail(*req.Email)
	}
	if req.FirstName != nil {
		interviewee.FirstName = strings.TrimSpace(*req.FirstName)
	}
	if req.LastName != nil {
		interviewee.LastName = strings.TrimSpace(*req.LastName)
	}
	if err := s.Interviewees.Update(interviewee); err != nil {
		return nil, err
	}
	return interviewee, nil
}

func (s *IntervieweeService) Delete(id string) error {
	return s.Interviewees.Delete(id)
}

// ImportCSV 解析上传的 CSV，按通讯录已有邮箱去重分组。
// save 为 true 时把新受访者写库并加入通讯录，否则只做预览。
func (s *IntervieweeService) ImportCSV(creatorID string, r io.Reader, save bool) (*ImportResult, error) {
	creator, err := s.Creators.FindByID(creatorID)
	if err != nil {
		return nil, err
	}

	reader := csv.NewReader(r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	result := &ImportResult{
		NewlyAdded:    []model.Interviewee{},
		AlreadyExists: []model.Interviewee{},
	}
	seen := make(map[string]bool)
	header := true
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if header {
			header = false
			if len(record) > 0 && strings.EqualFold(strings.TrimSpace(record[0]), "email") {
				continue
			}
		}
		if len(record) == 0 {
			continue
		}
		email := normalizeEmail(record[0])
		if email == "" || seen[email] {
			continue
		}
		seen[email] = true

		interviewee := model.Interviewee{Email: email}
		if len(record) > 1 {
			interviewee.FirstName = strings.TrimSpace(record[1])
		}
		if len(record) > 2 {
			interviewee.LastName = strings.TrimSpace(record[2])
		}

		exists, err := s.Creators.HasIntervieweeEmail(creatorID, email)
		if err != nil {
			return nil, err
		}
		if exists {
			result.AlreadyExists = append(result.AlreadyExists, interviewee)
			continue
		}
		result.NewlyAdded = append(result.NewlyAdded, interviewee)
	}

	if save && len(result.NewlyAdded) > 0 {
		created, err := s.Interviewees.CreateBatch(result.NewlyAdded)
		if err != nil {
			return nil, err
		}
		for i := range created {
			if err := s.Creators.AddInterviewee(creator, &created[i]); err != nil {
				return nil, err
			}
		}
		result.NewlyAdded = created
	}
	return result, nil
}

// ExportCSV 把通讯录写成与导入同格式的 CSV
func (s *IntervieweeService) ExportCSV(creatorID string, w io.Writer) error {
	interviewees, err := s.Creators.ListInterviewees(creatorID)
	if err != nil {
		return err
	}
	writer := csv.NewWriter(w)
	writer.Comma = ';'
	if err := writer.Write([]string{"email", "first_name", "last_name"}); err != nil {
		return err
	}
	for _, i := range interviewees {
		if err := writer.Write([]string{i.Email, i.FirstName, i.LastName}); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
