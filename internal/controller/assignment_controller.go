package controller

import (
	"errors"
	"path/filepath"

	"schoolhub_backend/internal/model"
	"schoolhub_backend/internal/service"
	"schoolhub_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AssignmentController struct {
	AssignmentService *service.AssignmentService
	AccountService    *service.StudentAccountService
	StorageService    *service.StorageService
}

func NewAssignmentController(assignmentService *service.AssignmentService, accountService *service.StudentAccountService, storageService *service.StorageService) *AssignmentController {
	return &AssignmentController{
		AssignmentService: assignmentService,
		AccountService:    accountService,
		StorageService:    storageService,
	}
}

// studentAssignmentView strips answer keys before an assignment goes
// to a student.
func studentAssignmentView(assignment *model.Assignment) gin.H {
	questions := make([]gin.H, 0, len(assignment.Questions))
	for _, q := range assignment.Questions {
		questions = append(questions, gin.H{
			"qNo":      q.QNo,
			"type":     q.Type,
			"question": q.Question,
			"options":  q.Options,
			"marks":    q.Marks,
		})
	}
	return gin.H{
		"id":        assignment.ID,
		"title":     assignment.Title,
		"subject":   assignment.Subject,
		"dueDate":   assignment.DueDate,
		"questions": questions,
	}
}

// List godoc
// @Summary 查询学生的作业
// @Description 列出指向该学生班级的已发布作业
// @Tags 作业
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Success 200 {object} util.Response{data=[]object} "成功"
// @Router /api/students/{studentId}/assignments [get]
func (c *AssignmentController) List(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}

	assignments, err := c.AssignmentService.ListForStudent(student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	views := make([]gin.H, 0, len(assignments))
	for i := range assignments {
		views = append(views, studentAssignmentView(&assignments[i]))
	}
	util.Success(ctx, views)
}

// Get godoc
// @Summary 查询单个作业
// @Description 返回作业题目（不含答案）
// @Tags 作业
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Param   assignmentId path string true "作业ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "作业不存在"
// @Router /api/students/{studentId}/assignments/{assignmentId} [get]
func (c *AssignmentController) Get(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}

	assignment, err := c.AssignmentService.Get(ctx.Param("assignmentId"))
	if err != nil {
		if errors.Is(err, util.ErrAssignmentNotFound) {
			util.NotFound(ctx, "作业不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, studentAssignmentView(assignment))
}

// SubmitRequest 作业提交请求：题号 -> 答案
type SubmitRequest struct {
	Answers map[string]interface{} `json:"answers" binding:"required"`
}

// Submit godoc
// @Summary 提交作业
// @Description 自动评分并保存提交；每个学生每份作业只能提交一次
// @Tags 作业
// @Accept  json
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Param   assignmentId path string true "作业ID"
// @Param   body body SubmitRequest true "答案"
// @Success 201 {object} util.Response{data=model.Submission} "创建成功"
// @Failure 404 {object} util.Response "作业不存在"
// @Failure 409 {object} util.Response "已提交过"
// @Router /api/students/{studentId}/assignments/{assignmentId}/submissions [post]
func (c *AssignmentController) Submit(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	submission, err := c.AssignmentService.Submit(ctx.Param("assignmentId"), student, req.Answers)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrAssignmentNotFound):
			util.NotFound(ctx, "作业不存在")
		case errors.Is(err, util.ErrAlreadySubmitted):
			util.Conflict(ctx, "该作业已提交，不能重复提交")
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Created(ctx, submission)
}

// UploadAnswerFile godoc
// @Summary 上传文件答案
// @Description 上传一个文件作为文件型题目的答案，返回文件名和访问地址
// @Tags 作业
// @Accept  multipart/form-data
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Param   file formData file true "答案文件"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "缺少文件"
// @Router /api/students/{studentId}/answer-files [post]
func (c *AssignmentController) UploadAnswerFile(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}

	header, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "file is required")
		return
	}

	src, err := header.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer src.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	// 以学生ID为目录，避免文件名冲突
	filename := student.ID + "/" + model.GenerateUUID() + filepath.Ext(header.Filename)
	fileURL, err := c.StorageService.Upload(ctx.Request.Context(), filename, src, header.Size, contentType)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{
		"name": header.Filename,
		"url":  fileURL,
	})
}

// ListSubmissions godoc
// @Summary 查询学生的提交记录
// @Description 列出该学生的全部作业提交
// @Tags 作业
// @Produce  json
// @Security ApiKeyAuth
// @Param   studentId path string true "学生账户ID"
// @Success 200 {object} util.Response{data=[]model.Submission} "成功"
// @Router /api/students/{studentId}/submissions [get]
func (c *AssignmentController) ListSubmissions(ctx *gin.Context) {
	student := resolveStudent(ctx, c.AccountService)
	if student == nil {
		return
	}

	submissions, err := c.AssignmentService.ListSubmissions(student)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, submissions)
}
