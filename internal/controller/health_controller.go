package controller

import (
	"survey_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HealthController struct {
	DB *gorm.DB
}

func NewHealthController(db *gorm.DB) *HealthController {
	return &HealthController{DB: db}
}

// Check 健康检查
// @Summary 健康检查
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (ctrl *HealthController) Check(c *gin.Context) {
	sqlDB, err := ctrl.DB.DB()
	if err != nil {
		util.InternalServerError(c)
		return
	}
	if err := sqlDB.Ping(); err != nil {
		util.InternalServerError(c)
		return
	}
	util.Success(c, gin.H{"status": "ok"})
}
