package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
	AnswerService     *service.AnswerService
}

func NewSubmissionController(
	submissionService *service.SubmissionService,
	answerService *service.AnswerService,
) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService, AnswerService: answerService}
}

// Create 发起提交
// @Summary 发起一次填答
// @Description 具名受访者每份问卷只能提交一次，重复提交返回 409
// @Tags 填答
// @Accept json
// @Produce json
// @Param id path string true "问卷ID"
// @Param body body service.SubmissionCreateRequest true "受访者（可空）"
// @Success 201 {object} util.Response{data=model.Submission}
// @Failure 409 {object} util.Response
// @Router /api/surveys/{id}/submissions [post]
func (ctrl *SubmissionController) Create(c *gin.Context) {
	var req service.SubmissionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	submission, err := ctrl.SubmissionService.Create(c.Param("id"), req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, submission)
}

// CreateAnonymous 凭令牌发起提交
// @Summary 匿名发起填答
// @Tags 匿名填答
// @Produce json
// @Param token path string true "发送令牌"
// @Success 201 {object} util.Response{data=model.Submission}
// @Failure 404 {object} util.Response
// @Router /api/anonymous/{token}/submit [post]
func (ctrl *SubmissionController) CreateAnonymous(c *gin.Context) {
	submission, err := ctrl.SubmissionService.CreateAnonymous(c.Param("token"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, submission)
}

// List 问卷的提交记录
// @Summary 提交记录列表
// @Description 附每次提交的答案条数
// @Tags 填答
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response{data=[]service.SubmissionView}
// @Router /api/surveys/{id}/submissions [get]
// @Security ApiKeyAuth
func (ctrl *SubmissionController) List(c *gin.Context) {
	submissions, err := ctrl.SubmissionService.ListBySurvey(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, submissions)
}

// CreateAnswer 提交答案
// @Summary 回答一个问题
// @Description 按题目类型只接受对应的内容字段，其余字段忽略；问卷暂停时拒绝
// @Tags 填答
// @Accept json
// @Produce json
// @Param id path string true "问题ID"
// @Param body body service.AnswerRequest true "答案"
// @Success 201 {object} util.Response{data=model.Answer}
// @Failure 400 {object} util.Response
// @Router /api/questions/{id}/answers [post]
func (ctrl *SubmissionController) CreateAnswer(c *gin.Context) {
	var req service.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	answer, err := ctrl.AnswerService.Create(c.Param("id"), req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, answer)
}

// UpdateAnswer 修改答案
// @Summary 修改答案
// @Tags 填答
// @Accept json
// @Produce json
// @Param id path string true "答案ID"
// @Param body body service.AnswerRequest true "答案"
// @Success 200 {object} util.Response{data=model.Answer}
// @Router /api/answers/{id} [patch]
func (ctrl *SubmissionController) UpdateAnswer(c *gin.Context) {
	var req service.AnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	answer, err := ctrl.AnswerService.Update(c.Param("id"), req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, answer)
}
