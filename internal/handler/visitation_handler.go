package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/youthadmin/internal/db"
	"github.com/youthadmin/internal/service"
)

const visitationNotFoundMessage = "심방 기록을 찾을 수 없습니다."

// visitationRequest is the writable visitation payload. id and 작성일시 are
// assigned by the server and ignored when present.
type visitationRequest struct {
	SubjectName       string      `json:"대상자_이름" binding:"required"`
	SubjectDepartment string      `json:"대상자_국"`
	SubjectGroup      string      `json:"대상자_그룹"`
	SubjectPosition   db.Position `json:"대상자_순"`
	SubjectBirthYear  int         `json:"대상자_생일연도"`

	VisitDate string         `json:"심방날짜" binding:"required,isodate"`
	Method    db.VisitMethod `json:"심방방법" binding:"visit_method"`

	VisitorName       string      `json:"진행자_이름" binding:"required"`
	VisitorRole       string      `json:"진행자_직분"`
	VisitorDepartment string      `json:"진행자_국"`
	VisitorGroup      string      `json:"진행자_그룹"`
	VisitorPosition   db.Position `json:"진행자_순"`
	VisitorBirthYear  int         `json:"진행자_생일연도"`

	Content string  `json:"심방내용"`
	Photo   *string `json:"대상자_사진"`
}

func (r visitationRequest) input() service.VisitationInput {
	return service.VisitationInput{
		SubjectName:       r.SubjectName,
		SubjectDepartment: r.SubjectDepartment,
		SubjectGroup:      r.SubjectGroup,
		SubjectPosition:   int(r.SubjectPosition),
		SubjectBirthYear:  r.SubjectBirthYear,
		VisitDate:         r.VisitDate,
		Method:            r.Method,
		VisitorName:       r.VisitorName,
		VisitorRole:       r.VisitorRole,
		VisitorDepartment: r.VisitorDepartment,
		VisitorGroup:      r.VisitorGroup,
		VisitorPosition:   int(r.VisitorPosition),
		VisitorBirthYear:  r.VisitorBirthYear,
		Content:           r.Content,
		Photo:             r.Photo,
	}
}

func respondVisitationError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrVisitationNotFound):
		respondError(c, http.StatusNotFound, visitationNotFoundMessage)
	case errors.Is(err, service.ErrInvalidInput):
		respondValidation(c, []fieldError{{Loc: []string{"body"}, Msg: err.Error(), Type: "value_error"}})
	default:
		respondError(c, http.StatusInternalServerError, fallback)
	}
}

// ListVisitations 심방 목록. 응답은 message/data 로 감쌉니다.
func (a *API) ListVisitations(c *gin.Context) {
	visitations, err := a.visitations.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "심방 목록을 불러오지 못했습니다.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "심방 관리 API", "data": visitations})
}

// GetVisitation 심방 단건 조회
func (a *API) GetVisitation(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	visitation, err := a.visitations.Get(id)
	if err != nil {
		respondVisitationError(c, err, "심방 기록을 불러오지 못했습니다.")
		return
	}
	c.JSON(http.StatusOK, visitation)
}

// CreateVisitation 심방 기록 추가
func (a *API) CreateVisitation(c *gin.Context) {
	var req visitationRequest
	if !bindJSON(c, &req) {
		return
	}

	visitation, err := a.visitations.Create(req.input())
	if err != nil {
		respondVisitationError(c, err, "심방 기록을 추가하지 못했습니다.")
		return
	}
	c.JSON(http.StatusOK, visitation)
}

// UpdateVisitation 심방 기록 수정
func (a *API) UpdateVisitation(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	var req visitationRequest
	if !bindJSON(c, &req) {
		return
	}

	visitation, err := a.visitations.Update(id, req.input())
	if err != nil {
		respondVisitationError(c, err, "심방 기록을 수정하지 못했습니다.")
		return
	}
	c.JSON(http.StatusOK, visitation)
}

// DeleteVisitation 심방 기록 삭제
func (a *API) DeleteVisitation(c *gin.Context) {
	id, ok := parseIntParam(c, "id")
	if !ok {
		return
	}

	visitation, err := a.visitations.Delete(id)
	if err != nil {
		respondVisitationError(c, err, "심방 기록을 삭제하지 못했습니다.")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("%s 심방 기록이 삭제되었습니다.", visitation.SubjectName)})
}

// GetVisitationStats 심방 통계
func (a *API) GetVisitationStats(c *gin.Context) {
	stats, err := a.visitStats.Stats()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "심방 통계를 계산하지 못했습니다.")
		return
	}
	c.JSON(http.StatusOK, stats)
}
