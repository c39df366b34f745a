package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/youthadmin/internal/db"
	"github.com/youthadmin/internal/service"
)

const memberNotFoundMessage = "구성원을 찾을 수 없습니다."

// memberRequest is the writable member payload. Any id in the body is ignored.
type memberRequest struct {
	Department string              `json:"소속국" binding:"required"`
	Group      string              `json:"소속그룹" binding:"required"`
	Position   db.Position         `json:"소속순"`
	Name       string              `json:"이름" binding:"required"`
	Role       string              `json:"직분"`
	Status     db.AttendanceStatus `json:"출석상태" binding:"attendance_status"`

	SundayYouthAttended db.AttendanceFlag `json:"주일청년예배출석여부" binding:"attendance_flag"`
	SundayYouthDate     string            `json:"주일청년예배출석일자" binding:"omitempty,isodate"`
	WednesdayAttended   db.AttendanceFlag `json:"수요예배출석여부" binding:"attendance_flag"`
	WednesdayDate       string            `json:"수요예배출석일자" binding:"omitempty,isodate"`
	FridayAttended      db.AttendanceFlag `json:"금요예배출석여부" binding:"attendance_flag"`
	FridayDate          string            `json:"금요예배출석일자" binding:"omitempty,isodate"`
	MainAttended        db.AttendanceFlag `json:"대예배출석여부" binding:"attendance_flag"`
	MainDate            string            `json:"대예배출석일자" binding:"omitempty,isodate"`
}

func (r memberRequest) input() service.MemberInput {
	return service.MemberInput{
		Department:          r.Department,
		Group:               r.Group,
		Position:            int(r.Position),
		Name:                r.Name,
		Role:                r.Role,
		Status:              r.Status,
		SundayYouthAttended: r.SundayYouthAttended,
		SundayYouthDate:     r.SundayYouthDate,
		WednesdayAttended:   r.WednesdayAttended,
		WednesdayDate:       r.WednesdayDate,
		FridayAttended:      r.FridayAttended,
		FridayDate:          r.FridayDate,
		MainAttended:        r.MainAttended,
		MainDate:            r.MainDate,
	}
}

func respondMemberError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrMemberNotFound):
		respondError(c, http.StatusNotFound, memberNotFoundMessage)
	case errors.Is(err, service.ErrInvalidInput):
		respondValidation(c, []fieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}})
	default:
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

// ListMembers 모든 구성원 목록
func (a *API) ListMembers(c *gin.Context) {
	members, err := a.members.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "구성원 목록을 불러오지 못했습니다.")
		return
	}
	c.JSON(http.StatusOK, members)
}

// GetMember 구성원 단건 조회
func (a *API) GetMember(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	member, err := a.members.Get(id)
	if err != nil {
		respondMemberError(c, err, "구성원 정보를 불러오지 못했습니다.")
		return
	}
	c.JSON(http.StatusOK, member)
}

// CreateMember 구성원 추가
func (a *API) CreateMember(c *gin.Context) {
	var req memberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := a.members.Create(req.input())
	if err != nil {
		respondMemberError(c, err, "구성원을 추가하지 못했습니다.")
		return
	}
	c.JSON(http.StatusOK, member)
}

// UpdateMember 구성원 전체 수정
func (a *API) UpdateMember(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	var req memberRequest
	if !bindJSON(c, &req) {
		return
	}

	member, err := a.members.Update(id, req.input())
	if err != nil {
		respondMemberError(c, err, "구성원 정보를 수정하지 못했습니다.")
		return
	}
	c.JSON(http.StatusOK, member)
}

// DeleteMember 구성원 삭제
func (a *API) DeleteMember(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	member, err := a.members.Delete(id)
	if err != nil {
		respondMemberError(c, err, "구성원을 삭제하지 못했습니다.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s 구성원이 삭제되었습니다.", member.Name)})
}

// GetMemberProfilePhoto returns where the member's profile photo is served from.
func (a *API) GetMemberProfilePhoto(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	if _, err := a.members.Get(id); err != nil {
		respondMemberError(c, err, "구성원 정보를 불러오지 못했습니다.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"member_id":         id,
		"profile_photo_url": fmt.Sprintf("%s/members/%d/profile.jpg", a.uploadURL, id),
		"message":           "프로필 사진 정보",
	})
}

// ListMembersByStatus 출석 상태별 구성원 목록
func (a *API) ListMembersByStatus(c *gin.Context) {
	status := db.AttendanceStatus(c.Param("status"))

	members, err := a.members.ListByStatus(status)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "구성원 목록을 불러오지 못했습니다.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  status,
		"count":   len(members),
		"members": members,
	})
}

// GetAttendance 출결 관리 데이터
func (a *API) GetAttendance(c *gin.Context) {
	members, err := a.members.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "출결 데이터를 불러오지 못했습니다.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "출결 관리 API", "data": members})
}
