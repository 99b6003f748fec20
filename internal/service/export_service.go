package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"survey_backend/internal/model"
	"survey_backend/internal/repository"
	"survey_backend/pkg/logger"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportService 结果导出为 XLSX。配置了归档后端时顺带留档一份。
type ExportService struct {
	Surveys   *repository.SurveyRepository
	Questions *repository.QuestionRepository
	Answers   *repository.AnswerRepository
	Options   *repository.OptionRepository
	Results   *ResultService
	Storage   StorageProvider
}

func NewExportService(
	surveys *repository.SurveyRepository,
	questions *repository.QuestionRepository,
	answers *repository.AnswerRepository,
	options *repository.OptionRepository,
	results *ResultService,
	storage StorageProvider,
) *ExportService {
	return &ExportService{
		Surveys:   surveys,
		Questions: questions,
		Answers:   answers,
		Options:   options,
		Results:   results,
		Storage:   storage,
	}
}

// displayValue 答案的人类可读形式：选项文案 / 数值 / 文本
func (s *ExportService) displayValue(a model.Answer) string {
	if a.OptionID != nil {
		option, err := s.Options.FindByID(*a.OptionID)
		if err != nil {
			return *a.OptionID
		}
		return option.Content
	}
	if a.ContentNumeric != nil {
		return strconv.Itoa(*a.ContentNumeric)
	}
	if a.ContentCharacter != nil {
		return *a.ContentCharacter
	}
	return ""
}

// SurveyResultsXLSX 问卷结果表格：列为问题（按 order），行为提交
func (s *ExportService) SurveyResultsXLSX(ctx context.Context, surveyID string) (*excelize.File, string, error) {
	survey, err := s.Surveys.FindByID(surveyID)
	if err != nil {
		return nil, "", err
	}
	questions, err := s.Questions.ListBySurvey(surveyID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	const sheet = "Results"
	f.SetSheetName("Sheet1", sheet)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", err
	}

	// 行号按提交ID分配，保证同一提交的各列对齐
	rowOf := make(map[string]int)
	nextRow := 2
	for col, q := range questions {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(sheet, cell, q.Value)
		f.SetCellStyle(sheet, cell, cell, bold)

		answers, err := s.Answers.ListByQuestion(q.ID)
		if err != nil {
			return nil, "", err
		}
		for _, a := range answers {
			row, ok := rowOf[a.SubmissionID]
			if !ok {
				row = nextRow
				rowOf[a.SubmissionID] = row
				nextRow++
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, row)
			f.SetCellValue(sheet, cell, s.displayValue(a))
		}
	}

	filename := fmt.Sprintf("survey_%s_%s.xlsx", survey.ID, time.Now().Format("20060102150405"))
	s.archive(ctx, f, filename)
	return f, filename, nil
}

// QuestionChartXLSX 单个问题的分布表 + 饼图与柱状图
func (s *ExportService) QuestionChartXLSX(ctx context.Context, questionID string) (*excelize.File, string, error) {
	result, err := s.Results.QuestionResult(questionID)
	if err != nil {
		return nil, "", err
	}

	distribution := result.Distribution
	if len(distribution) == 0 {
		distribution = result.CommonAnswers
	}

	f := excelize.NewFile()
	const sheet = "Distribution"
	f.SetSheetName("Sheet1", sheet)

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, "", err
	}
	f.SetCellValue(sheet, "A1", result.Value)
	f.SetCellStyle(sheet, "A1", "A1", bold)
	f.SetCellValue(sheet, "A2", "answer")
	f.SetCellValue(sheet, "B2", "count")

	for i, vc := range distribution {
		row := i + 3
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), vc.Value)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), vc.Count)
	}

	if len(distribution) > 0 {
		lastRow := len(distribution) + 2
		series := []excelize.ChartSeries{{
			Name:       fmt.Sprintf("%s!$A$1", sheet),
			Categories: fmt.Sprintf("%s!$A$3:$A$%d", sheet, lastRow),
			Values:     fmt.Sprintf("%s!$B$3:$B$%d", sheet, lastRow),
		}}
		if err := f.AddChart(sheet, "D2", &excelize.Chart{
			Type:   excelize.Pie,
			Series: series,
			Title:  []excelize.RichTextRun{{Text: result.Value}},
		}); err != nil {
			return nil, "", err
		}
		if err := f.AddChart(sheet, "D18", &excelize.Chart{
			Type:   excelize.Col,
			Series: series,
			Title:  []excelize.RichTextRun{{Text: result.Value}},
		}); err != nil {
			return nil, "", err
		}
	}

	filename := fmt.Sprintf("question_%s_%s.xlsx", questionID, time.Now().Format("20060102150405"))
	s.archive(ctx, f, filename)
	return f, filename, nil
}

// archive 归档尽力而为，失败只记日志
func (s *ExportService) archive(ctx context.Context, f *excelize.File, filename string) {
	if s.Storage == nil {
		return
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		logger.Log.Warn("导出归档序列化失败", zap.String("filename", filename), zap.Error(err))
		return
	}
	if _, err := s.Storage.Save(ctx, filename, buf, int64(buf.Len()), xlsxContentType); err != nil {
		logger.Log.Warn("导出归档失败", zap.String("filename", filename), zap.Error(err))
	}
}
