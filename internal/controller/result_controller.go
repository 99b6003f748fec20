package controller

import (
	"net/http"

	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResultController struct {
	ResultService *service.ResultService
	ExportService *service.ExportService
}

func NewResultController(resultService *service.ResultService, exportService *service.ExportService) *ResultController {
	return &ResultController{ResultService: resultService, ExportService: exportService}
}

// SurveyResults 问卷统计
// @Summary 问卷全量统计
// @Description 逐问题统计：选项分布 / 均值与取值分布 / 高频文本答案
// @Tags 结果
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response{data=service.SurveyResults}
// @Router /api/surveys/{id}/results [get]
// @Security ApiKeyAuth
func (ctrl *ResultController) SurveyResults(c *gin.Context) {
	results, err := ctrl.ResultService.SurveyResults(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, results)
}

// QuestionResult 单题统计
// @Summary 单个问题统计
// @Tags 结果
// @Produce json
// @Param id path string true "问题ID"
// @Success 200 {object} util.Response{data=service.QuestionResult}
// @Router /api/questions/{id}/results [get]
// @Security ApiKeyAuth
func (ctrl *ResultController) QuestionResult(c *gin.Context) {
	result, err := ctrl.ResultService.QuestionResult(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, result)
}

// Rate 回收率
// @Summary 问卷回收率
// @Description submitted/sent 百分比，从未发送过时为 0
// @Tags 结果
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response{data=service.ResponseRate}
// @Router /api/surveys/{id}/results/rate [get]
// @Security ApiKeyAuth
func (ctrl *ResultController) Rate(c *gin.Context) {
	rate, err := ctrl.ResultService.Rate(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, rate)
}

func writeXLSX(c *gin.Context, f *excelize.File, filename string) {
	c.Header("Content-Disposition", "attachment; filename=\""+filename+"\"")
	c.Header("Content-Type", xlsxContentType)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		util.LogInternalError(c, err)
	}
}

// ExportSurvey 导出问卷结果
// @Summary 导出问卷结果为 XLSX
// @Tags 结果
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "问卷ID"
// @Success 200 {file} binary
// @Router /api/surveys/{id}/results/export [get]
// @Security ApiKeyAuth
func (ctrl *ResultController) ExportSurvey(c *gin.Context) {
	f, filename, err := ctrl.ExportService.SurveyResultsXLSX(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	defer f.Close()
	writeXLSX(c, f, filename)
}

// ExportQuestion 导出单题分布图表
// @Summary 导出单题分布为带图表的 XLSX
// @Tags 结果
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param id path string true "问题ID"
// @Success 200 {file} binary
// @Router /api/questions/{id}/results/export [get]
// @Security ApiKeyAuth
func (ctrl *ResultController) ExportQuestion(c *gin.Context) {
	f, filename, err := ctrl.ExportService.QuestionChartXLSX(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	defer f.Close()
	writeXLSX(c, f, filename)
}
