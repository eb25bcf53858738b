package controller

import (
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type StudentAccountController struct {
	AccountService *service.StudentAccountService
}

func NewStudentAccountController(accountService *service.StudentAccountService) *StudentAccountController {
	return &StudentAccountController{AccountService: accountService}
}

// resolveStudent loads the student account named in the URL and
// verifies it belongs to the authenticated user. Every student-scoped
// route goes through here; there is no server-side "current student".
func resolveStudent(ctx *gin.Context, accounts *service.StudentAccountService) *model.StudentAccount {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil
	}

	account, err := accounts.Resolve(claims.UserID, ctx.Param("studentId"))
	if err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound):
			util.NotFound(ctx, "学生账户不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return nil
	}
	return account
}

// ListClasses godoc
// @Summary 查询学校班级
// @Description 列出指定学校的全部班级
// @Tags 学生账户
// @Produce  json
// @Param   schoolId path string true "学校ID"
// @Success 200 {object} util.Response{data=[]model.SchoolClass} "成功"
// @Failure 404 {object} util.Response "学校不存在"
// @Router /api/schools/{schoolId}/classes [get]
func (c *StudentAccountController) ListClasses(ctx *gin.Context) {
	classes, err := c.AccountService.ListClasses(ctx.Param("schoolId"))
	if err != nil {
		if errors.Is(err, util.ErrSchoolNotFound) {
			util.NotFound(ctx, "学校不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, classes)
}

// Link godoc
// @Summary 关联学生账户
// @Description 按学校、班级和学号将学生关联到当前用户
// @Tags 学生账户
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.LinkAccountReq true "关联信息"
// @Success 201 {object} util.Response{data=model.StudentAccount} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 404 {object} util.Response "学校/班级/学号不存在"
// @Failure 409 {object} util.Response "该学生已关联"
// @Router /api/students [post]
func (c *StudentAccountController) Link(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.LinkAccountReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	account, err := c.AccountService.Link(claims.UserID, req)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrSchoolNotFound):
			util.NotFound(ctx, "学校不存在")
		case errors.Is(err, util.ErrClassNotFound):
			util.NotFound(ctx, "班级不存在")
		case errors.Is(err, util.ErrRollNotFound):
			util.NotFound(ctx, "该班级中没有此学号")
		case errors.Is(err, util.ErrAccountExists):
			util.Conflict(ctx, "该学生已关联到当前账号")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	util.Created(ctx, account)
}

// List godoc
// @Summary 列出已关联的学生
// @Description 列出当前用户名下的全部学生账户
// @Tags 学生账户
// @Produce  json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response{data=[]model.StudentAccount} "成功"
// @Router /api/students [get]
func (c *StudentAccountController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	accounts, err := c.AccountService.ListForUser(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, accounts)
}

// Unlink godoc
// @Summary 解除学生关联
// @Description 从当前用户移除一个学生账户
// @Tags 学生账户
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Success 200 {object} util.Response "成功"
// @Failure 403 {object} util.Response "无权限"
// @Failure 404 {object} util.Response "学生账户不存在"
// @Router /api/students/{studentId} [delete]
func (c *StudentAccountController) Unlink(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	if err := c.AccountService.Unlink(claims.UserID, ctx.Param("studentId")); err != nil {
		switch {
		case errors.Is(err, util.ErrStudentNotFound):
			util.NotFound(ctx, "学生账户不存在")
		case errors.Is(err, util.ErrPermissionDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"removed": true})
}
