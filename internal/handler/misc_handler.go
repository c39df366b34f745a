package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Root reports that the server is up.
func Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "청년회 어드민 API 서버가 실행 중입니다."})
}

// GetForum 포럼 관리 (데이터 없음)
func GetForum(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "포럼 관리 API", "data": []any{}})
}

// GetMeetings 지역모임 관리 (데이터 없음)
func GetMeetings(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "지역모임 관리 API", "data": []any{}})
}
