package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SectionController struct {
	SectionService *service.SectionService
	ItemService    *service.ItemService
}

func NewSectionController(sectionService *service.SectionService, itemService *service.ItemService) *SectionController {
	return &SectionController{SectionService: sectionService, ItemService: itemService}
}

// Create 新建分区
// @Summary 新建分区
// @Description 以两个条目为端点的闭区间，不得与已有分区重叠
// @Tags 分区
// @Accept json
// @Produce json
// @Param id path string true "问卷ID"
// @Param body body service.SectionCreateRequest true "分区"
// @Success 201 {object} util.Response{data=service.SectionView}
// @Failure 400 {object} util.Response
// @Router /api/surveys/{id}/sections [post]
// @Security ApiKeyAuth
func (ctrl *SectionController) Create(c *gin.Context) {
	var req service.SectionCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	section, err := ctrl.SectionService.Create(c.Param("id"), req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, section)
}

// List 问卷分区布局
// @Summary 分区布局
// @Description 分区按起始位置升序，附不属于任何分区的条目
// @Tags 分区
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response{data=service.SurveyLayout}
// @Router /api/surveys/{id}/sections [get]
// @Security ApiKeyAuth
func (ctrl *SectionController) List(c *gin.Context) {
	items, err := ctrl.ItemService.ListBySurvey(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	layout, err := ctrl.SectionService.ListBySurvey(c.Param("id"), items)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, layout)
}

// Items 分区覆盖的条目
// @Summary 分区内条目
// @Tags 分区
// @Produce json
// @Param id path string true "分区ID"
// @Success 200 {object} util.Response{data=[]model.Item}
// @Router /api/sections/{id}/items [get]
// @Security ApiKeyAuth
func (ctrl *SectionController) Items(c *gin.Context) {
	items, err := ctrl.SectionService.Items(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, items)
}

// Update 更新分区
// @Summary 更新分区标题或描述
// @Description 端点条目不可变更，尝试变更返回 501
// @Tags 分区
// @Accept json
// @Produce json
// @Param id path string true "分区ID"
// @Param body body service.SectionUpdateRequest true "变更字段"
// @Success 200 {object} util.Response{data=service.SectionView}
// @Failure 501 {object} util.Response
// @Router /api/sections/{id} [patch]
// @Security ApiKeyAuth
func (ctrl *SectionController) Update(c *gin.Context) {
	var req service.SectionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	section, err := ctrl.SectionService.Update(c.Param("id"), req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, section)
}

// Delete 删除分区
// @Summary 删除分区
// @Tags 分区
// @Param id path string true "分区ID"
// @Success 204
// @Router /api/sections/{id} [delete]
// @Security ApiKeyAuth
func (ctrl *SectionController) Delete(c *gin.Context) {
	if err := ctrl.SectionService.Delete(c.Param("id")); err != nil {
		util.HandleError(c, err)
		return
	}
	util.NoContent(c)
}
