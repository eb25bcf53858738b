package controller

import (
	"errors"

	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService  *service.ReportService
	AccountService *service.StudentAccountService
}

func NewReportController(reportService *service.ReportService, accountService *service.StudentAccountService) *ReportController {
	return &ReportController{
		ReportService:  reportService,
		AccountService: accountService,
	}
}

// List godoc
// @Summary 查询学生的测验报告
// @Description 按最近更新排序列出该学生的全部章节报告
// @Tags 报告
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Success 200 {object} util.Response{data=[]model.Report} "成功"
// @Router /api/students/{studentId}/reports [get]
func (c *ReportController) List(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}

	reports, err := c.ReportService.ListForStudent(ctx.Request.Context(), student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, reports)
}

// GetChapter godoc
// @Summary 查询章节报告
// @Description 返回该学生在某章节的最新报告
// @Tags 报告
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Param   chapter query string true "章节"
// @Success 200 {object} util.Response{data=model.Report} "成功"
// @Failure 404 {object} util.Response "报告不存在"
// @Router /api/students/{studentId}/reports/chapter [get]
func (c *ReportController) GetChapter(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}

	chapter := ctx.Query("chapter")
	if chapter == "" {
		util.BadRequest(ctx, "chapter is required")
		return
	}

	report, err := c.ReportService.GetChapterReport(ctx.Request.Context(), student, chapter)
	if err != nil {
		if errors.Is(err, util.ErrReportNotFound) {
			util.NotFound(ctx, "该章节暂无报告")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, report)
}
