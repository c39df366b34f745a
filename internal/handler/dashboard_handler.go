package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/youthadmin/internal/service"
)

const dashboardErrorMessage = "통계를 계산하지 못했습니다."

// GetDashboardStats 전체 대시보드 통계
func (a *API) GetDashboardStats(c *gin.Context) {
	stats, err := a.dashboard.Stats()
	if err != nil {
		respondError(c, http.StatusInternalServerError, dashboardErrorMessage)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetDepartmentStats 국별 통계
func (a *API) GetDepartmentStats(c *gin.Context) {
	stats, err := a.dashboard.DepartmentStats()
	if err != nil {
		respondError(c, http.StatusInternalServerError, dashboardErrorMessage)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetGroupStats 그룹별 통계
func (a *API) GetGroupStats(c *gin.Context) {
	stats, err := a.dashboard.GroupStats()
	if err != nil {
		respondError(c, http.StatusInternalServerError, dashboardErrorMessage)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetFilteredStats picks the global, department or group snapshot from the
// department and group query parameters.
func (a *API) GetFilteredStats(c *gin.Context) {
	department := c.DefaultQuery("department", service.AllFilter)
	group := c.DefaultQuery("group", service.AllFilter)

	stats, err := a.dashboard.FilteredStats(department, group)
	if err != nil {
		respondError(c, http.StatusInternalServerError, dashboardErrorMessage)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetAttendanceStatusStats 출석 상태별 분포
func (a *API) GetAttendanceStatusStats(c *gin.Context) {
	stats, err := a.dashboard.StatusDistribution()
	if err != nil {
		respondError(c, http.StatusInternalServerError, dashboardErrorMessage)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetActiveAttendanceRate 활성인원 출석률
func (a *API) GetActiveAttendanceRate(c *gin.Context) {
	rate, err := a.dashboard.ActiveAttendanceRate()
	if err != nil {
		respondError(c, http.StatusInternalServerError, dashboardErrorMessage)
		return
	}
	c.JSON(http.StatusOK, rate)
}

// GetGroupAttendance 그룹별 출석률
func (a *API) GetGroupAttendance(c *gin.Context) {
	rows, err := a.dashboard.GroupAttendance()
	if err != nil {
		respondError(c, http.StatusInternalServerError, dashboardErrorMessage)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GetMonthlyTrends 국별 월별 추이
func (a *API) GetMonthlyTrends(c *gin.Context) {
	trends, err := a.dashboard.MonthlyTrends()
	if err != nil {
		respondError(c, http.StatusInternalServerError, dashboardErrorMessage)
		return
	}
	c.JSON(http.StatusOK, trends)
}

// GetRecentActivities 최근 활동. limit 쿼리로 개수를 조정할 수 있습니다.
func (a *API) GetRecentActivities(c *gin.Context) {
	limit, ok := parseIntQuery(c, "limit")
	if !ok {
		return
	}

	activities, err := a.visitStats.RecentActivities(limit)
	if err != nil {
		respondError(c, http.StatusInternalServerError, dashboardErrorMessage)
		return
	}
	c.JSON(http.StatusOK, activities)
}
