package controller

import (
	"errors"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SchoolAdminController struct {
	AdminService *service.SchoolAdminService
}

func NewSchoolAdminController(adminService *service.SchoolAdminService) *SchoolAdminController {
	return &SchoolAdminController{AdminService: adminService}
}

// CreateSchoolRequest 创建学校请求
type CreateSchoolRequest struct {
	ID   string `json:"id" binding:"required"`
	Name string `json:"name" binding:"required"`
	City string `json:"city"`
}

// CreateSchool godoc
// @Summary 创建学校
// @Description 以给定的学校编码创建学校
// @Tags 学校管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   body body CreateSchoolRequest true "学校信息"
// @Success 201 {object} util.Response{data=model.School} "创建成功"
// @Failure 409 {object} util.Response "学校编码已存在"
// @Router /api/admin/schools [post]
func (c *SchoolAdminController) CreateSchool(ctx *gin.Context) {
	var req CreateSchoolRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	school := &model.School{ID: req.ID, Name: req.Name, City: req.City}
	if err := c.AdminService.CreateSchool(school); err != nil {
		if errors.Is(err, util.ErrSchoolExists) {
			util.Conflict(ctx, "学校编码已存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, school)
}

// CreateClassRequest 创建班级请求
type CreateClassRequest struct {
	Name string `json:"name" binding:"required"`
}

// CreateClass godoc
// @Summary 创建班级
// @Description 在学校下创建班级
// @Tags 学校管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   schoolId path string true "学校ID"
// @Param   body body CreateClassRequest true "班级信息"
// @Success 201 {object} util.Response{data=model.SchoolClass} "创建成功"
// @Failure 404 {object} util.Response "学校不存在"
// @Router /api/admin/schools/{schoolId}/classes [post]
func (c *SchoolAdminController) CreateClass(ctx *gin.Context) {
	var req CreateClassRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	class, err := c.AdminService.CreateClass(ctx.Param("schoolId"), req.Name)
	if err != nil {
		if errors.Is(err, util.ErrSchoolNotFound) {
			util.NotFound(ctx, "学校不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, class)
}

// RosterEntryRequest 登记学号请求
type RosterEntryRequest struct {
	RollNumber string `json:"rollNumber" binding:"required"`
	Name       string `json:"name" binding:"required"`
}

// AddRosterEntry godoc
// @Summary 登记学生学号
// @Description 在班级花名册中登记一个学号，供家长关联
// @Tags 学校管理
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   classId path string true "班级ID"
// @Param   body body RosterEntryRequest true "学号与姓名"
// @Success 201 {object} util.Response{data=model.ClassStudent} "创建成功"
// @Failure 404 {object} util.Response "班级不存在"
// @Failure 409 {object} util.Response "学号已登记"
// @Router /api/admin/classes/{classId}/students [post]
func (c *SchoolAdminController) AddRosterEntry(ctx *gin.Context) {
	var req RosterEntryRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	entry, err := c.AdminService.AddRosterEntry(ctx.Param("classId"), req.RollNumber, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrClassNotFound):
			util.NotFound(ctx, "班级不存在")
		case errors.Is(err, util.ErrRollTaken):
			util.Conflict(ctx, "该学号已登记")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, entry)
}

// ListRoster godoc
// @Summary 查询班级花名册
// @Description 按学号排序列出班级的全部学生
// @Tags 学校管理
// @Produce  json
// @Security ApiKeyAuth
// @Param   classId path string true "班级ID"
// @Success 200 {object} util.Response{data=[]model.ClassStudent} "成功"
// @Failure 404 {object} util.Response "班级不存在"
// @Router /api/admin/classes/{classId}/students [get]
func (c *SchoolAdminController) ListRoster(ctx *gin.Context) {
	entries, err := c.AdminService.ListRoster(ctx.Param("classId"))
	if err != nil {
		if errors.Is(err, util.ErrClassNotFound) {
			util.NotFound(ctx, "班级不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, entries)
}
