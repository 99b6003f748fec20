package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PreconditionController struct {
	PreconditionService *service.PreconditionService
}

func NewPreconditionController(preconditionService *service.PreconditionService) *PreconditionController {
	return &PreconditionController{PreconditionService: preconditionService}
}

// Create 新建跳转边
// @Summary 新建条件跳转
// @Description 选项必须属于源条目，目标条目须同问卷且不等于源条目
// @Tags 跳转
// @Accept json
// @Produce json
// @Param id path string true "问卷ID"
// @Param body body service.PreconditionCreateRequest true "跳转边"
// @Success 201 {object} util.Response{data=model.Precondition}
// @Failure 400 {object} util.Response
// @Router /api/surveys/{id}/preconditions [post]
// @Security ApiKeyAuth
func (ctrl *PreconditionController) Create(c *gin.Context) {
	var req service.PreconditionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	p, err := ctrl.PreconditionService.Create(c.Param("id"), req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, p)
}

// List 问卷的全部跳转边
// @Summary 跳转边列表
// @Tags 跳转
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response{data=[]model.Precondition}
// @Router /api/surveys/{id}/preconditions [get]
// @Security ApiKeyAuth
func (ctrl *PreconditionController) List(c *gin.Context) {
	ps, err := ctrl.PreconditionService.ListBySurvey(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, ps)
}

// Update 更新跳转边
// @Summary 更新跳转边
// @Tags 跳转
// @Accept json
// @Produce json
// @Param id path string true "跳转边ID"
// @Param body body service.PreconditionUpdateRequest true "变更字段"
// @Success 200 {object} util.Response{data=model.Precondition}
// @Router /api/preconditions/{id} [patch]
// @Security ApiKeyAuth
func (ctrl *PreconditionController) Update(c *gin.Context) {
	var req service.PreconditionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	p, err := ctrl.PreconditionService.Update(c.Param("id"), req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, p)
}

// Delete 删除跳转边
// @Summary 删除跳转边
// @Tags 跳转
// @Param id path string true "跳转边ID"
// @Success 204
// @Router /api/preconditions/{id} [delete]
// @Security ApiKeyAuth
func (ctrl *PreconditionController) Delete(c *gin.Context) {
	if err := ctrl.PreconditionService.Delete(c.Param("id")); err != nil {
		util.HandleError(c, err)
		return
	}
	util.NoContent(c)
}

// Next 导航解析
// @Summary 按所选选项解析下一条目
// @Description 无匹配跳转边时 next_item_id 为空串，按默认顺序继续
// @Tags 跳转
// @Produce json
// @Param id path string true "源条目ID"
// @Param option_id query string true "所选选项ID"
// @Success 200 {object} util.Response
// @Router /api/items/{id}/next [get]
func (ctrl *PreconditionController) Next(c *gin.Context) {
	optionID := c.Query("option_id")
	if optionID == "" {
		util.BadRequest(c, "option_id is required")
		return
	}
	nextItemID, err := ctrl.PreconditionService.ResolveNext(c.Param("id"), optionID)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, gin.H{"next_item_id": nextItemID})
}
