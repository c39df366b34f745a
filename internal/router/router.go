package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/youthadmin/internal/handler"
	"github.com/youthadmin/internal/logger"
)

// Options configures the engine returned by SetupRouter.
type Options struct {
	UploadDir      string
	UploadURLPath  string
	AllowedOrigins []string
}

// SetupRouter 는 Gin 엔진과 전체 라우트를 구성합니다.
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	// 프론트엔드 개발 서버에서의 호출 허용
	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// 업로드된 사진
	r.Static(opts.UploadURLPath, opts.UploadDir)

	r.GET("/", handler.Root)

	apiGroup := r.Group("/api")
	{
		members := apiGroup.Group("/members")
		members.GET("", api.ListMembers)
		members.POST("", api.CreateMember)
		members.GET("/by-attendance-status/:status", api.ListMembersByStatus)
		members.GET("/:id", api.GetMember)
		members.PUT("/:id", api.UpdateMember)
		members.DELETE("/:id", api.DeleteMember)
		members.GET("/:id/profile-photo", api.GetMemberProfilePhoto)

		dashboard := apiGroup.Group("/dashboard")
		dashboard.GET("/stats", api.GetDashboardStats)
		dashboard.GET("/department-stats", api.GetDepartmentStats)
		dashboard.GET("/group-stats", api.GetGroupStats)
		dashboard.GET("/filtered-stats", api.GetFilteredStats)
		dashboard.GET("/attendance-status-stats", api.GetAttendanceStatusStats)
		dashboard.GET("/active-attendance-rate", api.GetActiveAttendanceRate)
		dashboard.GET("/group-attendance", api.GetGroupAttendance)
		dashboard.GET("/recent-activities", api.GetRecentActivities)
		dashboard.GET("/monthly-trends", api.GetMonthlyTrends)

		visitations := apiGroup.Group("/visitation")
		visitations.GET("", api.ListVisitations)
		visitations.POST("", api.CreateVisitation)
		visitations.GET("/stats", api.GetVisitationStats)
		visitations.POST("/upload-photo", api.UploadVisitationPhoto)
		visitations.GET("/:id", api.GetVisitation)
		visitations.PUT("/:id", api.UpdateVisitation)
		visitations.DELETE("/:id", api.DeleteVisitation)

		apiGroup.GET("/attendance", api.GetAttendance)
		apiGroup.GET("/forum", handler.GetForum)
		apiGroup.GET("/meetings", handler.GetMeetings)
	}

	return r
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", status,
			"latency", time.Since(start).String(),
		}
		if status >= http.StatusInternalServerError {
			logger.Error("request failed", attrs...)
			return
		}
		logger.Info("request", attrs...)
	}
}
