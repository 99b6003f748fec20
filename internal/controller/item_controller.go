package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ItemController struct {
	ItemService *service.ItemService
}

func NewItemController(itemService *service.ItemService) *ItemController {
	return &ItemController{ItemService: itemService}
}

type optionRequest struct {
	Content string `json:"content" binding:"required"`
}

// Create 新建条目
// @Summary 新建条目
// @Description 条目的问题追加到问卷末尾，获得连续的 order
// @Tags 条目
// @Accept json
// @Produce json
// @Param id path string true "问卷ID"
// @Param body body service.ItemCreateRequest true "条目"
// @Success 201 {object} util.Response{data=model.Item}
// @Failure 400 {object} util.Response
// @Router /api/surveys/{id}/items [post]
// @Security ApiKeyAuth
func (ctrl *ItemController) Create(c *gin.Context) {
	var req service.ItemCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	item, err := ctrl.ItemService.Create(c.Param("id"), req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, item)
}

// List 问卷的条目列表
// @Summary 条目列表
// @Description 按条目首问题的位置升序
// @Tags 条目
// @Produce json
// @Param id path string true "问卷ID"
// @Success 200 {object} util.Response{data=[]service.ItemView}
// @Router /api/surveys/{id}/items [get]
// @Security ApiKeyAuth
func (ctrl *ItemController) List(c *gin.Context) {
	items, err := ctrl.ItemService.ListBySurvey(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, items)
}

// Update 更新条目
// @Summary 更新条目类型或必答标记
// @Tags 条目
// @Accept json
// @Produce json
// @Param id path string true "条目ID"
// @Param body body service.ItemUpdateRequest true "变更字段"
// @Success 200 {object} util.Response{data=model.Item}
// @Router /api/items/{id} [patch]
// @Security ApiKeyAuth
func (ctrl *ItemController) Update(c *gin.Context) {
	var req service.ItemUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	item, err := ctrl.ItemService.Update(c.Param("id"), req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, item)
}

// Delete 删除条目
// @Summary 删除条目
// @Description 逐问题压实问卷序列，并清理引用它的分区与跳转边
// @Tags 条目
// @Param id path string true "条目ID"
// @Success 204
// @Router /api/items/{id} [delete]
// @Security ApiKeyAuth
func (ctrl *ItemController) Delete(c *gin.Context) {
	if err := ctrl.ItemService.Delete(c.Param("id")); err != nil {
		util.HandleError(c, err)
		return
	}
	util.NoContent(c)
}

// AddOption 给条目追加选项
// @Summary 追加选项
// @Tags 条目
// @Accept json
// @Produce json
// @Param id path string true "条目ID"
// @Param body body optionRequest true "选项内容"
// @Success 201 {object} util.Response{data=model.Option}
// @Router /api/items/{id}/options [post]
// @Security ApiKeyAuth
func (ctrl *ItemController) AddOption(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	option, err := ctrl.ItemService.AddOption(c.Param("id"), req.Content)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, option)
}

// UpdateOption 修改选项文案
// @Summary 修改选项
// @Tags 条目
// @Accept json
// @Produce json
// @Param id path string true "选项ID"
// @Param body body optionRequest true "选项内容"
// @Success 200 {object} util.Response{data=model.Option}
// @Router /api/options/{id} [patch]
// @Security ApiKeyAuth
func (ctrl *ItemController) UpdateOption(c *gin.Context) {
	var req optionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	option, err := ctrl.ItemService.UpdateOption(c.Param("id"), req.Content)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, option)
}

// DeleteOption 删除选项
// @Summary 删除选项
// @Tags 条目
// @Param id path string true "选项ID"
// @Success 204
// @Router /api/options/{id} [delete]
// @Security ApiKeyAuth
func (ctrl *ItemController) DeleteOption(c *gin.Context) {
	if err := ctrl.ItemService.DeleteOption(c.Param("id")); err != nil {
		util.HandleError(c, err)
		return
	}
	util.NoContent(c)
}
