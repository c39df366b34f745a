package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/youthadmin/internal/db"
	"github.com/youthadmin/internal/store"
)

var fixedNow = time.Date(2024, 1, 25, 10, 15, 0, 0, time.UTC)

func setupTestAPI(t *testing.T) (*API, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	s := store.NewMemoryStore(func() time.Time { return fixedNow })
	if err := s.SeedMembers(db.SeedMembers()); err != nil {
		t.Fatalf("failed to seed members: %v", err)
	}
	if err := s.SeedVisitations(db.SeedVisitations()); err != nil {
		t.Fatalf("failed to seed visitations: %v", err)
	}

	uploadDir := t.TempDir()
	return NewAPI(s, uploadDir, "/uploads", func() time.Time { return fixedNow }), uploadDir
}

func newJSONContext(method, target string, payload any) (*gin.Context, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if payload != nil {
		_ = json.NewEncoder(&body).Encode(payload)
	}
	req := httptest.NewRequest(method, target, &body)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func validMemberPayload() map[string]any {
	return map[string]any{
		"id":         999,
		"소속국":        "1국",
		"소속그룹":       "1그룹",
		"소속순":        4,
		"이름":         "신입생",
		"직분":         "순원",
		"출석상태":       "정기 출석자",
		"주일청년예배출석여부": "출석",
		"주일청년예배출석일자": "2024-01-21",
		"수요예배출석여부":   "결석",
		"수요예배출석일자":   "2024-01-17",
		"금요예배출석여부":   "결석",
		"금요예배출석일자":   "2024-01-19",
		"대예배출석여부":    "출석",
		"대예배출석일자":    "2024-01-21",
	}
}

func validVisitationPayload() map[string]any {
	return map[string]any{
		"대상자_이름":   "문가영",
		"대상자_국":    "2국",
		"대상자_그룹":   "2그룹",
		"대상자_순":    "3",
		"대상자_생일연도": 1998,
		"심방날짜":     "2024-01-24",
		"심방방법":     "만남",
		"진행자_이름":   "박준호",
		"진행자_직분":   "그룹장",
		"진행자_국":    "2국",
		"진행자_그룹":   "2그룹",
		"진행자_순":    1,
		"진행자_생일연도": 1994,
		"심방내용":     "카페에서 만났습니다.",
		"작성일시":     "1999-01-01 00:00",
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func TestCreateMemberAssignsNextIDIgnoringPayload(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodPost, "/api/members", validMemberPayload())
	api.CreateMember(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var member db.Member
	decode(t, w, &member)
	if member.ID != 16 {
		t.Fatalf("expected id=16, got %d", member.ID)
	}
	if member.Position != 4 {
		t.Fatalf("expected position 4, got %d", member.Position)
	}
}

func TestCreateMemberValidationIs422(t *testing.T) {
	api, _ := setupTestAPI(t)

	payload := validMemberPayload()
	payload["출석상태"] = "휴학생"
	payload["금요예배출석일자"] = "19-01-2024"

	c, w := newJSONContext(http.MethodPost, "/api/members", payload)
	api.CreateMember(c)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", w.Code)
	}
	var body struct {
		Detail []fieldError `json:"detail"`
	}
	decode(t, w, &body)
	if len(body.Detail) != 2 {
		t.Fatalf("expected 2 field errors, got %+v", body.Detail)
	}
	fields := map[string]bool{}
	for _, fe := range body.Detail {
		fields[fe.Loc[len(fe.Loc)-1]] = true
	}
	if !fields["출석상태"] || !fields["금요예배출석일자"] {
		t.Fatalf("unexpected field errors %+v", body.Detail)
	}
}

func TestUpdateMemberUnknownIDIs404(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodPut, "/api/members/404", validMemberPayload())
	c.Params = gin.Params{gin.Param{Key: "id", Value: "404"}}
	api.UpdateMember(c)

	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["detail"] != memberNotFoundMessage {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestUpdateMemberKeepsPathID(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodPut, "/api/members/5", validMemberPayload())
	c.Params = gin.Params{gin.Param{Key: "id", Value: "5"}}
	api.UpdateMember(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var member db.Member
	decode(t, w, &member)
	if member.ID != 5 || member.Name != "신입생" {
		t.Fatalf("unexpected member %+v", member)
	}
}

func TestDeleteMemberMessageAndRepeat(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodDelete, "/api/members/1", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "1"}}
	api.DeleteMember(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body map[string]string
	decode(t, w, &body)
	if body["message"] != "김민수 구성원이 삭제되었습니다." {
		t.Fatalf("unexpected message %q", body["message"])
	}

	c, w = newJSONContext(http.MethodDelete, "/api/members/1", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "1"}}
	api.DeleteMember(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected repeated delete to be 404, got %d", w.Code)
	}
}

func TestGetMemberNonNumericIDIs422(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodGet, "/api/members/abc", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "abc"}}
	api.GetMember(c)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", w.Code)
	}
}

func TestListMembersByStatus(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodGet, "/api/members/by-attendance-status/x", nil)
	c.Params = gin.Params{gin.Param{Key: "status", Value: string(db.StatusRemovalCandidate)}}
	api.ListMembersByStatus(c)

	var body struct {
		Status  string      `json:"status"`
		Count   int         `json:"count"`
		Members []db.Member `json:"members"`
	}
	decode(t, w, &body)
	if body.Count != 1 || len(body.Members) != 1 || body.Members[0].Name != "서지호" {
		t.Fatalf("unexpected response %+v", body)
	}
}

func TestGetMemberProfilePhoto(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodGet, "/api/members/3/profile-photo", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "3"}}
	api.GetMemberProfilePhoto(c)

	var body map[string]any
	decode(t, w, &body)
	if body["profile_photo_url"] != "/uploads/members/3/profile.jpg" {
		t.Fatalf("unexpected url %v", body["profile_photo_url"])
	}

	c, w = newJSONContext(http.MethodGet, "/api/members/99/profile-photo", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "99"}}
	api.GetMemberProfilePhoto(c)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404, got %d", w.Code)
	}
}

func TestCreateVisitationStampsServerFields(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodPost, "/api/visitation", validVisitationPayload())
	api.CreateVisitation(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var visitation db.Visitation
	decode(t, w, &visitation)
	if visitation.ID != 6 {
		t.Fatalf("expected id=6, got %d", visitation.ID)
	}
	if visitation.AuthoredAt != "2024-01-25 10:15" {
		t.Fatalf("expected server authored timestamp, got %q", visitation.AuthoredAt)
	}
	if visitation.SubjectPosition != 3 {
		t.Fatalf("expected string position to decode as 3, got %d", visitation.SubjectPosition)
	}
}

func TestCreateVisitationUnknownMethodIs422(t *testing.T) {
	api, _ := setupTestAPI(t)

	payload := validVisitationPayload()
	payload["심방방법"] = "편지"
	c, w := newJSONContext(http.MethodPost, "/api/visitation", payload)
	api.CreateVisitation(c)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected status 422, got %d", w.Code)
	}
}

func TestDeleteVisitationMessage(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodDelete, "/api/visitation/2", nil)
	c.Params = gin.Params{gin.Param{Key: "id", Value: "2"}}
	api.DeleteVisitation(c)

	var body map[string]string
	decode(t, w, &body)
	if body["message"] != "박준호 심방 기록이 삭제되었습니다." {
		t.Fatalf("unexpected message %q", body["message"])
	}
}

func TestGetVisitationStats(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodGet, "/api/visitation/stats", nil)
	api.GetVisitationStats(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}
	var body struct {
		Total  int            `json:"total_visitations"`
		Recent int            `json:"recent_visitations"`
		Month  int            `json:"this_month_visitations"`
		Method map[string]int `json:"method_stats"`
	}
	decode(t, w, &body)
	if body.Total != 5 || body.Recent != 5 || body.Month != 5 {
		t.Fatalf("unexpected stats %+v", body)
	}
}

func TestGetFilteredStatsDefaultsToGlobal(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodGet, "/api/dashboard/filtered-stats", nil)
	api.GetFilteredStats(c)

	var body map[string]any
	decode(t, w, &body)
	if _, ok := body["monthlyTrend"]; !ok {
		t.Fatalf("expected global snapshot, got %v", body)
	}
	if body["totalMembers"] != float64(15) {
		t.Fatalf("expected 15 members, got %v", body["totalMembers"])
	}
}

func TestGetActiveAttendanceRate(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodGet, "/api/dashboard/active-attendance-rate", nil)
	api.GetActiveAttendanceRate(c)

	var body map[string]float64
	decode(t, w, &body)
	// 15 members, 1 removal candidate, 12 present on Sunday
	if body["active_members"] != 14 || body["this_week_attendees"] != 12 || body["active_attendance_rate"] != 85.7 {
		t.Fatalf("unexpected rate %v", body)
	}
}

func newUploadContext(t *testing.T, filename string, content []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/visitation/upload-photo", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	return c, w
}

func TestUploadVisitationPhoto(t *testing.T) {
	api, uploadDir := setupTestAPI(t)

	c, w := newUploadContext(t, "a.png", []byte("fake-png"))
	api.UploadVisitationPhoto(c)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	var body map[string]string
	decode(t, w, &body)
	if filepath.Ext(body["filename"]) != ".png" {
		t.Fatalf("unexpected filename %q", body["filename"])
	}
	if _, err := os.Stat(filepath.Join(uploadDir, body["filename"])); err != nil {
		t.Fatalf("expected uploaded file on disk: %v", err)
	}
}

func TestUploadVisitationPhotoRejectsExtension(t *testing.T) {
	api, uploadDir := setupTestAPI(t)

	c, w := newUploadContext(t, "a.txt", []byte("text"))
	api.UploadVisitationPhoto(c)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", w.Code)
	}
	entries, err := os.ReadDir(uploadDir)
	if err != nil {
		t.Fatalf("read upload dir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected no files written, found %d", len(entries))
	}
}

func TestGetRecentActivitiesLimit(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodGet, "/api/dashboard/recent-activities?limit="+strconv.Itoa(2), nil)
	api.GetRecentActivities(c)

	var rows []map[string]any
	decode(t, w, &rows)
	if len(rows) != 2 {
		t.Fatalf("expected 2 activities, got %d", len(rows))
	}
	if rows[0]["date"] != "2024-01-20" {
		t.Fatalf("expected newest visit first, got %v", rows[0])
	}
}

func TestGetRecentActivitiesRejectsNonIntegerLimit(t *testing.T) {
	api, _ := setupTestAPI(t)

	c, w := newJSONContext(http.MethodGet, "/api/dashboard/recent-activities?limit=abc", nil)
	api.GetRecentActivities(c)

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", w.Code)
	}
	var body struct {
		Detail []fieldError `json:"detail"`
	}
	decode(t, w, &body)
	if len(body.Detail) != 1 || body.Detail[0].Type != "int_parsing" || body.Detail[0].Loc[1] != "limit" {
		t.Fatalf("unexpected validation body %+v", body)
	}
}

func TestRegisterValidatorsInstallsEveryTag(t *testing.T) {
	registerValidators()

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		t.Fatal("expected gin to use go-playground validator")
	}

	tests := []struct {
		tag   string
		value string
		valid bool
	}{
		{tag: "attendance_status", value: string(db.StatusRegular), valid: true},
		{tag: "attendance_status", value: "출석", valid: false},
		{tag: "attendance_flag", value: string(db.Present), valid: true},
		{tag: "visit_method", value: string(db.MethodPhone), valid: true},
		{tag: "visit_method", value: "편지", valid: false},
		{tag: "isodate", value: "2024-01-21", valid: true},
		{tag: "isodate", value: "2024/01/21", valid: false},
	}
	for _, tt := range tests {
		err := v.Var(tt.value, tt.tag)
		if (err == nil) != tt.valid {
			t.Fatalf("%s(%q): expected valid=%v, got err=%v", tt.tag, tt.value, tt.valid, err)
		}
	}
	if len(customValidations) != 4 {
		t.Fatalf("expected 4 custom validations, got %d", len(customValidations))
	}
}
