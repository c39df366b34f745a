package db

import "time"

const (
	// DateLayout is the ISO date format used by visit and attendance dates.
	DateLayout = "2006-01-02"
	// AuthoredAtLayout is the format of Visitation.AuthoredAt.
	AuthoredAtLayout = "2006-01-02 15:04"
)

// VisitMethod 는 심방 방법입니다.
type VisitMethod string

const (
	MethodInPerson VisitMethod = "만남"
	MethodPhone    VisitMethod = "통화"
	MethodChat     VisitMethod = "카카오톡"
)

func (m VisitMethod) Valid() bool {
	switch m {
	case MethodInPerson, MethodPhone, MethodChat:
		return true
	}
	return false
}

// Visitation 은 진행자와 대상자 사이의 심방 기록입니다.
// ID 와 AuthoredAt 은 저장소만 기록합니다.
type Visitation struct {
	ID int `json:"id" gorm:"primaryKey;autoIncrement:false"`

	SubjectName       string   `json:"대상자_이름"`
	SubjectDepartment string   `json:"대상자_국" gorm:"index"`
	SubjectGroup      string   `json:"대상자_그룹"`
	SubjectPosition   Position `json:"대상자_순"`
	SubjectBirthYear  int      `json:"대상자_생일연도"`

	VisitDate string      `json:"심방날짜"`
	Method    VisitMethod `json:"심방방법"`

	VisitorName       string   `json:"진행자_이름"`
	VisitorRole       string   `json:"진행자_직분"`
	VisitorDepartment string   `json:"진행자_국"`
	VisitorGroup      string   `json:"진행자_그룹"`
	VisitorPosition   Position `json:"진행자_순"`
	VisitorBirthYear  int      `json:"진행자_생일연도"`

	Content    string  `json:"심방내용" gorm:"type:text"`
	Photo      *string `json:"대상자_사진"`
	AuthoredAt string  `json:"작성일시"`
}

// Restamp pins the protected fields after a payload has been applied.
func (v *Visitation) Restamp(id int, at time.Time) {
	v.ID = id
	v.AuthoredAt = at.Format(AuthoredAtLayout)
}
