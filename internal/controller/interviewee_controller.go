package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type IntervieweeController struct {
	IntervieweeService *service.IntervieweeService
	MailService        *service.MailService
}

func NewIntervieweeController(
	intervieweeService *service.IntervieweeService,
	mailService *service.MailService,
) *IntervieweeController {
	return &IntervieweeController{IntervieweeService: intervieweeService, MailService: mailService}
}

// List 通讯录
// @Summary 受访者通讯录
// @Tags 受访者
// @Produce json
// @Success 200 {object} util.Response{data=[]model.Interviewee}
// @Router /api/interviewees [get]
// @Security ApiKeyAuth
func (ctrl *IntervieweeController) List(c *gin.Context) {
	claims := util.GetCreatorFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	list, err := ctrl.IntervieweeService.List(claims.CreatorID)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, list)
}

// Create 手工添加受访者
// @Summary 添加受访者
// @Description 按邮箱在通讯录内去重，重复返回 409
// @Tags 受访者
// @Accept json
// @Produce json
// @Param body body service.IntervieweeCreateRequest true "受访者"
// @Success 201 {object} util.Response{data=model.Interviewee}
// @Failure 409 {object} util.Response
// @Router /api/interviewees [post]
// @Security ApiKeyAuth
func (ctrl *IntervieweeController) Create(c *gin.Context) {
	claims := util.GetCreatorFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	var req service.IntervieweeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	interviewee, err := ctrl.IntervieweeService.Create(claims.CreatorID, req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, interviewee)
}

// Get 受访者详情
// @Summary 受访者详情
// @Tags 受访者
// @Produce json
// @Param id path string true "受访者ID"
// @Success 200 {object} util.Response{data=model.Interviewee}
// @Failure 404 {object} util.Response
// @Router /api/interviewees/{id} [get]
// @Security ApiKeyAuth
func (ctrl *IntervieweeController) Get(c *gin.Context) {
	interviewee, err := ctrl.IntervieweeService.Get(c.Param("id"))
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, interviewee)
}

// Update 更新受访者
// @Summary 更新受访者
// @Tags 受访者
// @Accept json
// @Produce json
// @Param id path string true "受访者ID"
// @Param body body service.IntervieweeUpdateRequest true "变更字段"
// @Success 200 {object} util.Response{data=model.Interviewee}
// @Router /api/interviewees/{id} [patch]
// @Security ApiKeyAuth
func (ctrl *IntervieweeController) Update(c *gin.Context) {
	var req service.IntervieweeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	interviewee, err := ctrl.IntervieweeService.Update(c.Param("id"), req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, interviewee)
}

// Delete 删除受访者
// @Summary 删除受访者
// @Tags 受访者
// @Param id path string true "受访者ID"
// @Success 204
// @Router /api/interviewees/{id} [delete]
// @Security ApiKeyAuth
func (ctrl *IntervieweeController) Delete(c *gin.Context) {
	if err := ctrl.IntervieweeService.Delete(c.Param("id")); err != nil {
		util.HandleError(c, err)
		return
	}
	util.NoContent(c)
}

// Upload 导入 CSV
// @Summary 上传受访者 CSV
// @Description 分号分隔：email;first_name;last_name。save=true 时入库，
// send 指定问卷ID时顺带给新导入的邮箱投递问卷
// @Tags 受访者
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV 文件"
// @Param save query bool false "是否入库（默认仅预览）"
// @Param send query string false "顺带投递的问卷ID"
// @Success 200 {object} util.Response{data=service.ImportResult}
// @Failure 400 {object} util.Response
// @Router /api/interviewees/upload [post]
// @Security ApiKeyAuth
func (ctrl *IntervieweeController) Upload(c *gin.Context) {
	claims := util.GetCreatorFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	defer file.Close()

	save := c.Query("save") == "true"
	result, err := ctrl.IntervieweeService.ImportCSV(claims.CreatorID, file, save)
	if err != nil {
		util.HandleError(c, err)
		return
	}

	if surveyID := c.Query("send"); surveyID != "" {
		emails := make([]string, 0, len(result.NewlyAdded))
		for _, i := range result.NewlyAdded {
			emails = append(emails, i.Email)
		}
		if len(emails) > 0 {
			if _, err := ctrl.MailService.Send(surveyID, claims.CreatorID, service.SendRequest{Emails: emails}); err != nil {
				util.HandleError(c, err)
				return
			}
		}
	}
	util.Success(c, result)
}

// Download 导出 CSV
// @Summary 下载受访者 CSV
// @Tags 受访者
// @Produce text/csv
// @Success 200 {file} binary
// @Router /api/interviewees/download [get]
// @Security ApiKeyAuth
func (ctrl *IntervieweeController) Download(c *gin.Context) {
	claims := util.GetCreatorFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\"interviewees.csv\"")
	c.Header("Content-Type", "text/csv")
	if err := ctrl.IntervieweeService.ExportCSV(claims.CreatorID, c.Writer); err != nil {
		util.LogInternalError(c, err)
	}
}
