package controller

import (
	"errors"

	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type QuizSessionController struct {
	SessionService *service.QuizSessionService
	AccountService *service.StudentAccountService
}

func NewQuizSessionController(sessionService *service.QuizSessionService, accountService *service.StudentAccountService) *QuizSessionController {
	return &QuizSessionController{
		SessionService: sessionService,
		AccountService: accountService,
	}
}

// ownedSession loads the session and checks it belongs to the student
// in the URL.
func (c *QuizSessionController) ownedSession(ctx *gin.Context, studentID string) *service.QuizSession {
	session, err := c.SessionService.Get(ctx.Param("sessionId"))
	if err != nil {
		util.NotFound(ctx, "测验会话不存在")
		return nil
	}
	if session.StudentID != studentID {
		util.Forbidden(ctx)
		return nil
	}
	return session
}

// StartSessionRequest 开始测验请求
type StartSessionRequest struct {
	Subject string `json:"subject" binding:"required"`
	Chapter string `json:"chapter" binding:"required"`
}

// Start godoc
// @Summary 开始章节测验
// @Description 将章节的全部测验题合并为一个会话并返回第一题
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Param   body body StartSessionRequest true "科目与章节"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/students/{studentId}/quiz-sessions [post]
func (c *QuizSessionController) Start(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}

	var req StartSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.SessionService.Start(ctx.Request.Context(), student, req.Subject, student.ClassName, req.Chapter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	payload := gin.H{
		"sessionId": session.ID,
		"state":     session.State(),
		"total":     session.Total(),
	}
	if view, ok := session.CurrentQuestion(); ok {
		payload["question"] = view
	}
	util.Created(ctx, payload)
}

// Current godoc
// @Summary 查询会话状态
// @Description 返回会话当前状态和当前题目
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Param   sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "会话不存在"
// @Router /api/students/{studentId}/quiz-sessions/{sessionId} [get]
func (c *QuizSessionController) Current(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}
	session := c.ownedSession(ctx, student.ID)
	if session == nil {
		return
	}

	payload := gin.H{
		"sessionId": session.ID,
		"state":     session.State(),
		"score":     session.Score(),
		"total":     session.Total(),
	}
	if view, ok := session.CurrentQuestion(); ok {
		payload["question"] = view
	}
	util.Success(ctx, payload)
}

// AnswerRequest 提交答案请求
type AnswerRequest struct {
	Selected string `json:"selected" binding:"required"`
}

// Answer godoc
// @Summary 提交当前题目的答案
// @Description 判定正误并返回正确选项与解析
// @Tags 测验
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Param   sessionId path string true "会话ID"
// @Param   body body AnswerRequest true "所选选项"
// @Success 200 {object} util.Response{data=service.AnswerResult} "成功"
// @Failure 400 {object} util.Response "未选择答案"
// @Failure 409 {object} util.Response "会话状态不允许作答"
// @Router /api/students/{studentId}/quiz-sessions/{sessionId}/answer [post]
func (c *QuizSessionController) Answer(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}
	if c.ownedSession(ctx, student.ID) == nil {
		return
	}

	var req AnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.SessionService.SubmitAnswer(ctx.Param("sessionId"), req.Selected)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoAnswerSelected):
			util.BadRequest(ctx, "请先选择一个选项")
		case errors.Is(err, util.ErrSessionComplete), errors.Is(err, util.ErrNoCheckpoint):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx, "测验会话不存在")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// Advance godoc
// @Summary 进入下一题
// @Description 前进到下一题；概念切换时暂停，最后一题后完成并生成报告
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Param   sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=service.AdvanceResult} "成功"
// @Failure 409 {object} util.Response "当前题目尚未作答"
// @Router /api/students/{studentId}/quiz-sessions/{sessionId}/advance [post]
func (c *QuizSessionController) Advance(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}
	if c.ownedSession(ctx, student.ID) == nil {
		return
	}

	result, err := c.SessionService.Advance(ctx.Request.Context(), ctx.Param("sessionId"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNotAnswered), errors.Is(err, util.ErrSessionComplete), errors.Is(err, util.ErrNoCheckpoint):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx, "测验会话不存在")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, result)
}

// Continue godoc
// @Summary 确认概念切换并继续
// @Description 结束概念停顿，返回下一题
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Param   sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=service.QuestionView} "成功"
// @Failure 409 {object} util.Response "当前没有概念停顿"
// @Router /api/students/{studentId}/quiz-sessions/{sessionId}/continue [post]
func (c *QuizSessionController) Continue(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}
	if c.ownedSession(ctx, student.ID) == nil {
		return
	}

	view, err := c.SessionService.ContinueCheckpoint(ctx.Param("sessionId"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrNoCheckpoint):
			util.Conflict(ctx, err.Error())
		case errors.Is(err, util.ErrSessionNotFound):
			util.NotFound(ctx, "测验会话不存在")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, view)
}

// Abandon godoc
// @Summary 放弃测验会话
// @Description 丢弃会话，不生成报告
// @Tags 测验
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Param   sessionId path string true "会话ID"
// @Success 200 {object} util.Response "成功"
// @Router /api/students/{studentId}/quiz-sessions/{sessionId} [delete]
func (c *QuizSessionController) Abandon(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}
	if c.ownedSession(ctx, student.ID) == nil {
		return
	}

	c.SessionService.Abandon(ctx.Param("sessionId"))
	util.Success(ctx, gin.H{"abandoned": true})
}
