package controller

import (
	"encoding/json"
	"errors"

	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// QuizController is the authoring surface for quiz documents. The
// payload is stored verbatim, matching what the authoring tool
// exports; the catalog reads it back tolerantly.
type QuizController struct {
	QuizService *service.QuizAdminService
}

func NewQuizController(quizService *service.QuizAdminService) *QuizController {
	return &QuizController{QuizService: quizService}
}

// CreateQuizRequest 创建测验文档请求
type CreateQuizRequest struct {
	Metadata  json.RawMessage `json:"metadata" binding:"required"`
	Questions json.RawMessage `json:"questions" binding:"required"`
}

// Create godoc
// @Summary 创建测验文档
// @Description 存储一份测验文档（元数据与题目按原样保存）
// @Tags 测验管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateQuizRequest true "测验内容"
// @Success 201 {object} util.Response{data=model.Quiz} "创建成功"
// @Failure 400 {object} util.Response "JSON 无效"
// @Router /api/quizzes [post]
func (c *QuizController) Create(ctx *gin.Context) {
	var req CreateQuizRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	quiz, err := c.QuizService.Create(ctx.Request.Context(), req.Metadata, req.Questions)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, quiz)
}

// Get godoc
// @Summary 查询测验文档
// @Description 返回原始的测验文档
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   quizId path string true "测验ID"
// @Success 200 {object} util.Response{data=model.Quiz} "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{quizId} [get]
func (c *QuizController) Get(ctx *gin.Context) {
	quiz, err := c.QuizService.Get(ctx.Request.Context(), ctx.Param("quizId"))
	if err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, "测验不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, quiz)
}

// Delete godoc
// @Summary 删除测验文档
// @Description 删除测验文档并使目录缓存失效
// @Tags 测验管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   quizId path string true "测验ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "测验不存在"
// @Router /api/quizzes/{quizId} [delete]
func (c *QuizController) Delete(ctx *gin.Context) {
	if err := c.QuizService.Delete(ctx.Request.Context(), ctx.Param("quizId")); err != nil {
		if errors.Is(err, util.ErrQuizNotFound) {
			util.NotFound(ctx, "测验不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}
