package controller

import (
	"survey_backend/internal/service"
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// Register 注册创建者账号
// @Summary 注册
// @Description 用邮箱和密码注册问卷创建者账号，返回 JWT
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.RegisterRequest true "注册信息"
// @Success 201 {object} util.Response{data=service.AuthResponse}
// @Failure 400 {object} util.Response
// @Router /api/auth/register [post]
func (ctrl *AuthController) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	resp, err := ctrl.AuthService.Register(req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Created(c, resp)
}

// selfOnly 仅允许操作自己的账号
func selfOnly(c *gin.Context) (string, bool) {
	claims := util.GetCreatorFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return "", false
	}
	id := c.Param("id")
	if id != claims.CreatorID {
		util.Forbidden(c)
		return "", false
	}
	return id, true
}

// Profile 创建者资料
// @Summary 查看创建者资料
// @Tags 认证
// @Produce json
// @Param id path string true "创建者ID"
// @Success 200 {object} util.Response{data=model.Creator}
// @Failure 403 {object} util.Response
// @Router /api/creators/{id} [get]
// @Security ApiKeyAuth
func (ctrl *AuthController) Profile(c *gin.Context) {
	id, ok := selfOnly(c)
	if !ok {
		return
	}
	creator, err := ctrl.AuthService.Profile(id)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, creator)
}

// UpdateProfile 更新创建者资料
// @Summary 更新创建者资料
// @Tags 认证
// @Accept json
// @Produce json
// @Param id path string true "创建者ID"
// @Param body body service.CreatorUpdateRequest true "变更字段"
// @Success 200 {object} util.Response{data=model.Creator}
// @Failure 403 {object} util.Response
// @Router /api/creators/{id} [patch]
// @Security ApiKeyAuth
func (ctrl *AuthController) UpdateProfile(c *gin.Context) {
	id, ok := selfOnly(c)
	if !ok {
		return
	}
	var req service.CreatorUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	creator, err := ctrl.AuthService.UpdateProfile(id, req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, creator)
}

// DeleteAccount 注销账号
// @Summary 注销创建者账号
// @Description 连同其全部问卷与从属数据一起删除
// @Tags 认证
// @Param id path string true "创建者ID"
// @Success 204
// @Failure 403 {object} util.Response
// @Router /api/creators/{id} [delete]
// @Security ApiKeyAuth
func (ctrl *AuthController) DeleteAccount(c *gin.Context) {
	id, ok := selfOnly(c)
	if !ok {
		return
	}
	if err := ctrl.AuthService.DeleteAccount(id); err != nil {
		util.HandleError(c, err)
		return
	}
	util.NoContent(c)
}

// Login 登录
// @Summary 登录
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body service.LoginRequest true "登录信息"
// @Success 200 {object} util.Response{data=service.AuthResponse}
// @Failure 400 {object} util.Response
// @Router /api/auth/login [post]
func (ctrl *AuthController) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}
	resp, err := ctrl.AuthService.Login(req)
	if err != nil {
		util.HandleError(c, err)
		return
	}
	util.Success(c, resp)
}
