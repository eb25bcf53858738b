package controller

import (
	"errors"

	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentAdminController struct {
	AdminService *service.AssignmentAdminService
}

func NewAssignmentAdminController(adminService *service.AssignmentAdminService) *AssignmentAdminController {
	return &AssignmentAdminController{AdminService: adminService}
}

// Create godoc
// @Summary 创建作业
// @Description 创建作业草稿，可同时发布
// @Tags 作业管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body service.AssignmentDraftReq true "作业内容"
// @Success 201 {object} util.Response{data=model.Assignment} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/assignments [post]
func (c *AssignmentAdminController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.AssignmentDraftReq
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	assignment, err := c.AdminService.Create(claims.UserID, req)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, assignment)
}

// Publish godoc
// @Summary 发布作业
// @Description 将草稿作业设为已发布
// @Tags 作业管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   assignmentId path string true "作业ID"
// @Success 200 {object} util.Response{data=model.Assignment} "成功"
// @Failure 404 {object} util.Response "作业不存在"
// @Router /api/assignments/{assignmentId}/publish [post]
func (c *AssignmentAdminController) Publish(ctx *gin.Context) {
	assignment, err := c.AdminService.Publish(ctx.Param("assignmentId"))
	if err != nil {
		if errors.Is(err, util.ErrAssignmentNotFound) {
			util.NotFound(ctx, "作业不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, assignment)
}

// Delete godoc
// @Summary 删除作业
// @Description 删除作业
// @Tags 作业管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   assignmentId path string true "作业ID"
// @Success 200 {object} util.Response "成功"
// @Failure 404 {object} util.Response "作业不存在"
// @Router /api/assignments/{assignmentId} [delete]
func (c *AssignmentAdminController) Delete(ctx *gin.Context) {
	if err := c.AdminService.Delete(ctx.Param("assignmentId")); err != nil {
		if errors.Is(err, util.ErrAssignmentNotFound) {
			util.NotFound(ctx, "作业不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"deleted": true})
}

// ListSubmissions godoc
// @Summary 查询作业的全部提交
// @Description 列出某作业收到的全部提交
// @Tags 作业管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   assignmentId path string true "作业ID"
// @Success 200 {object} util.Response{data=[]model.Submission} "成功"
// @Failure 404 {object} util.Response "作业不存在"
// @Router /api/assignments/{assignmentId}/submissions [get]
func (c *AssignmentAdminController) ListSubmissions(ctx *gin.Context) {
	submissions, err := c.AdminService.ListSubmissions(ctx.Param("assignmentId"))
	if err != nil {
		if errors.Is(err, util.ErrAssignmentNotFound) {
			util.NotFound(ctx, "作业不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, submissions)
}
