package controller

import (
	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnnouncementController struct {
	AnnouncementService *service.AnnouncementService
	AccountService      *service.StudentAccountService
}

func NewAnnouncementController(announcementService *service.AnnouncementService, accountService *service.StudentAccountService) *AnnouncementController {
	return &AnnouncementController{
		AnnouncementService: announcementService,
		AccountService:      accountService,
	}
}

// PublishRequest 发布公告请求
type PublishRequest struct {
	SchoolID string `json:"schoolId" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Audience string `json:"audience"`
}

// Publish godoc
// @Summary 发布公告
// @Description 教师或管理员向学校发布公告
// @Tags 公告
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body PublishRequest true "公告内容"
// @Success 201 {object} util.Response{data=model.Announcement} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/announcements [post]
func (c *AnnouncementController) Publish(ctx *gin.Context) {
	var req PublishRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	announcement := &model.Announcement{
		SchoolID: req.SchoolID,
		Title:    req.Title,
		Body:     req.Body,
		Audience: req.Audience,
	}
	if err := c.AnnouncementService.Publish(announcement); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Created(ctx, announcement)
}

// List godoc
// @Summary 查询学校公告
// @Description 列出该学生所在学校的最新公告
// @Tags 公告
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Success 200 {object} util.Response{data=[]model.Announcement} "成功"
// @Router /api/students/{studentId}/announcements [get]
func (c *AnnouncementController) List(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}

	announcements, err := c.AnnouncementService.ListForStudent(student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, announcements)
}
