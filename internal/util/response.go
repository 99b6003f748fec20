package util

import (
	"errors"
	"net/http"
	"survey_backend/internal/model"
	"survey_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// PageResponse 分页响应结构
type PageResponse struct {
	List  interface{} `json:"list"`
	Total int64       `json:"total"`
	Page  int         `json:"page"`
	Limit int         `json:"limit"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context) {
	Error(c, http.StatusForbidden, "Forbidden")
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context) {
	Error(c, http.StatusNotFound, "Resource not found")
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// HandleError 将服务层的类型化错误映射为HTTP状态码。
// 校验类 → 400，资源不存在 → 404，重复提交/发送 → 409，未设计的变更 → 501，其余 → 500。
func HandleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrOrderOutOfRange),
		errors.Is(err, ErrItemWithoutQuestions),
		errors.Is(err, ErrStartAfterEnd),
		errors.Is(err, ErrSectionOverlap),
		errors.Is(err, ErrOptionNotOfItem),
		errors.Is(err, ErrDifferentSurveys),
		errors.Is(err, ErrNextItemIsSource),
		errors.Is(err, ErrOptionRequired),
		errors.Is(err, ErrContentRequired),
		errors.Is(err, ErrQuestionNotInSurvey),
		errors.Is(err, ErrSurveyPaused),
		errors.Is(err, ErrEmailRegistered),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, model.ErrUnknownAnswerType):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrAlreadySubmitted),
		errors.Is(err, ErrAlreadySent),
		errors.Is(err, ErrIntervieweeExists):
		Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, ErrNotImplemented):
		Error(c, http.StatusNotImplemented, err.Error())
	case errors.Is(err, ErrPermissionDenied):
		Forbidden(c)
	case errors.Is(err, gorm.ErrRecordNotFound),
		errors.Is(err, ErrCreatorNotFound):
		NotFound(c)
	default:
		LogInternalError(c, err)
	}
}
