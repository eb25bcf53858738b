package app

import (
	"schoolhub_backend/docs"
	"schoolhub_backend/internal/config"
	"schoolhub_backend/internal/middleware"
	"schoolhub_backend/internal/model"
	"schoolhub_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerParentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

// registerParentRoutes 家长端：学生账户关联与学生视角的全部读写
func (a *App) registerParentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)

	rg.GET("/schools/:schoolId/classes", c.studentAccount.ListClasses)
	rg.POST("/students", c.studentAccount.Link)
	rg.GET("/students", c.studentAccount.List)
	rg.DELETE("/students/:studentId", c.studentAccount.Unlink)

	student := rg.Group("/students/:studentId")
	{
		// 目录
		student.GET("/catalog/subjects", c.catalog.Subjects)
		student.GET("/catalog/chapters", c.catalog.Chapters)
		student.GET("/catalog/concepts", c.catalog.Concepts)

		// 测验会话
		student.POST("/quiz-sessions", c.quizSession.Start)
		student.GET("/quiz-sessions/:sessionId", c.quizSession.Current)
		student.POST("/quiz-sessions/:sessionId/answer", c.quizSession.Answer)
		student.POST("/quiz-sessions/:sessionId/advance", c.quizSession.Advance)
		student.POST("/quiz-sessions/:sessionId/continue", c.quizSession.Continue)
		student.DELETE("/quiz-sessions/:sessionId", c.quizSession.Abandon)

		// 报告
		student.GET("/reports", c.report.List)
		student.GET("/reports/chapter", c.report.GetChapter)

		// 作业
		student.GET("/assignments", c.assignment.List)
		student.GET("/assignments/:assignmentId", c.assignment.Get)
		student.POST("/assignments/:assignmentId/submissions", c.assignment.Submit)
		student.POST("/answer-files", c.assignment.UploadAnswerFile)
		student.GET("/submissions", c.assignment.ListSubmissions)

		// 公告
		student.GET("/announcements", c.announcement.List)
	}
}

// registerTeacherRoutes 教师端：测验文档与作业的创作
func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/quizzes", c.quiz.Create)
		teacher.GET("/quizzes/:quizId", c.quiz.Get)
		teacher.DELETE("/quizzes/:quizId", c.quiz.Delete)

		teacher.POST("/assignments", c.assignmentAdmin.Create)
		teacher.POST("/assignments/:assignmentId/publish", c.assignmentAdmin.Publish)
		teacher.DELETE("/assignments/:assignmentId", c.assignmentAdmin.Delete)
		teacher.GET("/assignments/:assignmentId/submissions", c.assignmentAdmin.ListSubmissions)

		teacher.POST("/announcements", c.announcement.Publish)
	}
}

// registerAdminRoutes 管理端：学校、班级与花名册维护
func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/schools", c.schoolAdmin.CreateSchool)
		admin.POST("/schools/:schoolId/classes", c.schoolAdmin.CreateClass)
		admin.POST("/classes/:classId/students", c.schoolAdmin.AddRosterEntry)
		admin.GET("/classes/:classId/students", c.schoolAdmin.ListRoster)
	}
}
