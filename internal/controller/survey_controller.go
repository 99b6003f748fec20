package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SurveyController struct {
	SurveyService *service.SurveyService
	MailService   *service.MailService
}

func NewSurveyController(surveyService *service.SurveyService, mailService *service.MailService) *SurveyController {
	return &SurveyController{SurveyService: surveyService, MailService: mailService}
}

// Create 创建问卷
// @Summary 创建问卷
// @Tags 问卷
// @Accept json
// @Produce json
// @Param body body service.SurveyCreateRequest true "问卷"
// @Success 201 {object} util.Response{data=model.Survey}
// @Router /api/surveys [post]
// @Security ApiKeyAuth
func (ctrl *SurveyController) Create(c *gin.Context) {
	claims := util.GetCreatorFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.SurveyCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	survey, err := ctrl.SurveyService.Create(claims.CreatorID, req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, survey)
}

// List 问卷列表（带回收率）
// @Summary 我的问卷列表
// @Description 当前创建者的问卷，附发送数、提交数和回收率
// @Tags 问卷
// @Produce json
// @Success 200 {object} util.Response{data=[]service.SurveyBrief}
// @Router /api/surveys [get]
// @Security ApiKeyAuth
func (ctrl *SurveyController) List(c *gin.Context) {
	claims := util.GetCreatorFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	briefs, err := ctrl.SurveyService.ListBrief(claims.CreatorID)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, briefs)
}

// Get 问卷详情
// @Summary 问卷详情
// @Description 条目按位置排序，附分区布局
// @Tags 问卷
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response{data=service.SurveyDetail}
// @Failure 404 {object} util.Response
// @Router /api/surveys/{id} [get]
// @Security ApiKeyAuth
func (ctrl *SurveyController) Get(c *gin.Context) {
	claims := util.GetCreatorFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	detail, err := ctrl.SurveyService.DetailForCreator(c.Param("id"), claims.CreatorID)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, detail)
}

// Update 更新问卷
// @Summary 更新问卷
// @Tags 问卷
// @Accept json
// @Produce json
// @Param id path string true "问卷ID"
// @Param body body service.SurveyUpdateRequest true "变更字段"
// @Success 200 {object} util.Response{data=model.Survey}
// @Router /api/surveys/{id} [patch]
// @Security ApiKeyAuth
func (ctrl *SurveyController) Update(c *gin.Context) {
	claims := util.GetCreatorFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.SurveyUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	survey, err := ctrl.SurveyService.Update(c.Param("id"), claims.CreatorID, req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, survey)
}

// Delete 删除问卷
// @Summary 删除问卷
// @Description 级联删除条目、问题、选项、分区、跳转边、提交与答案
// @Tags 问卷
// @Param id path string true "问卷ID"
// @Success 204
// @Router /api/surveys/{id} [delete]
// @Security ApiKeyAuth
func (ctrl *SurveyController) Delete(c *gin.Context) {
	claims := util.GetCreatorFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	if err := ctrl.SurveyService.Delete(c.Param("id"), claims.CreatorID); err != nil {
		util.HandleError(c, err)
		return
	}
	util.NoContent(c)
}

// Send 投递问卷
// @Summary 给一批邮箱投递问卷
// @Description 先落发送记录再异步发信；任一收件人重复投递则整体拒绝
// @Tags 问卷
// @Accept json
// @Produce json
// @Param id path string true "问卷ID"
// @Param body body service.SendRequest true "收件人"
// @Success 201 {object} util.Response{data=service.SendResult}
// @Failure 409 {object} util.Response
// @Router /api/surveys/{id}/send [post]
// @Security ApiKeyAuth
func (ctrl *SurveyController) Send(c *gin.Context) {
	claims := util.GetCreatorFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.SendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	result, err := ctrl.MailService.Send(c.Param("id"), claims.CreatorID, req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, result)
}

// AnonymousSections 凭令牌取分区布局（填答端，无需登录）
// @Summary 匿名访问分区布局
// @Tags 匿名填答
// @Produce json
// @Param token path string true "发送令牌"
// @Success 200 {object} util.Response{data=service.SurveyLayout}
// @Failure 404 {object} util.Response
// @Router /api/anonymous/{token}/sections [get]
func (ctrl *SurveyController) AnonymousSections(c *gin.Context) {
	detail, err := ctrl.SurveyService.AnonymousDetail(c.Param("token"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, detail.Layout)
}

// AnonymousGet 凭令牌取问卷（填答端，无需登录）
// @Summary 匿名访问问卷
// @Tags 匿名填答
// @Produce json
// @Param token path string true "发送令牌"
// @Success 200 {object} util.Response{data=service.SurveyDetail}
// @Failure 404 {object} util.Response
// @Router /api/anonymous/{token}/survey [get]
func (ctrl *SurveyController) AnonymousGet(c *gin.Context) {
	detail, err := ctrl.SurveyService.AnonymousDetail(c.Param("token"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, detail)
}
