package controller

import (
	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

// CatalogController serves the subject/chapter/concept hierarchy
// derived from the quiz collection, always scoped to an explicit
// student account so the class filter is unambiguous.
type CatalogController struct {
	CatalogService *service.CatalogService
	AccountService *service.StudentAccountService
}

func NewCatalogController(catalogService *service.CatalogService, accountService *service.StudentAccountService) *CatalogController {
	return &CatalogController{
		CatalogService: catalogService,
		AccountService: accountService,
	}
}

// Subjects godoc
// @Summary 查询科目列表
// @Description 列出该学生班级可见的全部科目
// @Tags 目录
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Success 200 {object} util.Response{data=[]string} "成功"
// @Failure 404 {object} util.Response "学生账户不存在"
// @Router /api/students/{studentId}/catalog/subjects [get]
func (c *CatalogController) Subjects(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}

	subjects, err := c.CatalogService.SubjectsForClass(ctx.Request.Context(), student.ClassName)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, subjects)
}

// Chapters godoc
// @Summary 查询章节列表
// @Description 列出某科目下该学生班级的全部章节
// @Tags 目录
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Param   subject query string true "科目"
// @Success 200 {object} util.Response{data=[]string} "成功"
// @Failure 400 {object} util.Response "缺少科目参数"
// @Router /api/students/{studentId}/catalog/chapters [get]
func (c *CatalogController) Chapters(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}

	subject := ctx.Query("subject")
	if subject == "" {
		util.BadRequest(ctx, "subject is required")
		return
	}

	chapters, err := c.CatalogService.ChaptersForSubject(ctx.Request.Context(), subject, util.NormalizeClass(student.ClassName))
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, chapters)
}

// Concepts godoc
// @Summary 查询概念列表
// @Description 按首次出现顺序列出某章节的概念
// @Tags 目录
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Param   subject query string true "科目"
// @Param   chapter query string true "章节"
// @Success 200 {object} util.Response{data=[]string} "成功"
// @Failure 400 {object} util.Response "缺少参数"
// @Router /api/students/{studentId}/catalog/concepts [get]
func (c *CatalogController) Concepts(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}

	subject := ctx.Query("subject")
	chapter := ctx.Query("chapter")
	if subject == "" || chapter == "" {
		util.BadRequest(ctx, "subject and chapter are required")
		return
	}

	concepts, err := c.CatalogService.ConceptsForChapter(ctx.Request.Context(), subject, util.NormalizeClass(student.ClassName), chapter)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, concepts)
}
