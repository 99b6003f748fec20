package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuestionController struct {
	QuestionService *service.QuestionService
}

func NewQuestionController(questionService *service.QuestionService) *QuestionController {
	return &QuestionController{QuestionService: questionService}
}

// Update 更新问题
// @Summary 修改问题文案或移动位置
// @Description order 的目标必须落在问题所属条目的区间内，越界则拒绝且顺序不变
// @Tags 问题
// @Accept json
// @Produce json
// @Param id path string true "问题ID"
// @Param body body service.QuestionUpdateRequest true "变更字段"
// @Success 200 {object} util.Response{data=model.Question}
// @Failure 400 {object} util.Response
// @Router /api/questions/{id} [patch]
// @Security ApiKeyAuth
func (ctrl *QuestionController) Update(c *gin.Context) {
	var req service.QuestionUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	question, err := ctrl.QuestionService.Update(c.Param("id"), req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, question)
}

// Delete 删除问题
// @Summary 删除问题
// @Description 其后的问题顺序整体前移，保持 1..N 连续
// @Tags 问题
// @Param id path string true "问题ID"
// @Success 204
// @Router /api/questions/{id} [delete]
// @Security ApiKeyAuth
func (ctrl *QuestionController) Delete(c *gin.Context) {
	if err := ctrl.QuestionService.Delete(c.Param("id")); err != nil {
		util.HandleError(c, err)
		return
	}
	util.NoContent(c)
}
