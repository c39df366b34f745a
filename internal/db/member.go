package db

// AttendanceStatus 는 구성원의 최근 예배 출석 패턴 분류입니다.
type AttendanceStatus string

const (
	StatusRegular          AttendanceStatus = "정기 출석자"
	StatusWatch            AttendanceStatus = "관심 출석자"
	StatusShortTermAbsent  AttendanceStatus = "단기 결석자"
	StatusLongTermAbsent   AttendanceStatus = "장기 결석자"
	StatusRemovalCandidate AttendanceStatus = "제적 대상자"
)

// AttendanceStatuses returns the closed status set in display order.
func AttendanceStatuses() []AttendanceStatus {
	return []AttendanceStatus{
		StatusRegular,
		StatusWatch,
		StatusShortTermAbsent,
		StatusLongTermAbsent,
		StatusRemovalCandidate,
	}
}

// Valid reports whether s is one of the five known buckets.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case StatusRegular, StatusWatch, StatusShortTermAbsent, StatusLongTermAbsent, StatusRemovalCandidate:
		return true
	}
	return false
}

// AttendanceFlag 는 예배별 출석 여부 값입니다.
type AttendanceFlag string

const (
	Present AttendanceFlag = "출석"
	Absent  AttendanceFlag = "결석"
)

func (f AttendanceFlag) Valid() bool {
	return f == Present || f == Absent
}

// Service identifies one of the four recurring services.
type Service int

const (
	ServiceSundayYouth Service = iota
	ServiceWednesday
	ServiceFriday
	ServiceMain
)

// Services lists every recurring service.
func Services() []Service {
	return []Service{ServiceSundayYouth, ServiceWednesday, ServiceFriday, ServiceMain}
}

func (s Service) String() string {
	switch s {
	case ServiceSundayYouth:
		return "주일청년예배"
	case ServiceWednesday:
		return "수요예배"
	case ServiceFriday:
		return "금요예배"
	case ServiceMain:
		return "대예배"
	default:
		return "unknown"
	}
}

// Member 는 청년회 구성원 한 명을 나타냅니다.
// JSON 필드명은 기존 프론트엔드와 호환되도록 한글 키를 유지합니다.
type Member struct {
	ID         int              `json:"id" gorm:"primaryKey;autoIncrement:false"`
	Department string           `json:"소속국" gorm:"index"`
	Group      string           `json:"소속그룹" gorm:"index"`
	Position   Position         `json:"소속순"`
	Name       string           `json:"이름"`
	Role       string           `json:"직분"`
	Status     AttendanceStatus `json:"출석상태" gorm:"index"`

	SundayYouthAttended AttendanceFlag `json:"주일청년예배출석여부"`
	SundayYouthDate     string         `json:"주일청년예배출석일자"`
	WednesdayAttended   AttendanceFlag `json:"수요예배출석여부"`
	WednesdayDate       string         `json:"수요예배출석일자"`
	FridayAttended      AttendanceFlag `json:"금요예배출석여부"`
	FridayDate          string         `json:"금요예배출석일자"`
	MainAttended        AttendanceFlag `json:"대예배출석여부"`
	MainDate            string         `json:"대예배출석일자"`
}

// Attendance returns the flag and date recorded for the given service.
func (m Member) Attendance(s Service) (AttendanceFlag, string) {
	switch s {
	case ServiceSundayYouth:
		return m.SundayYouthAttended, m.SundayYouthDate
	case ServiceWednesday:
		return m.WednesdayAttended, m.WednesdayDate
	case ServiceFriday:
		return m.FridayAttended, m.FridayDate
	case ServiceMain:
		return m.MainAttended, m.MainDate
	default:
		return "", ""
	}
}

// Attended reports whether the member is marked present for the service.
func (m Member) Attended(s Service) bool {
	flag, _ := m.Attendance(s)
	return flag == Present
}

// GroupKey 는 "{국}-{그룹}" 형태의 복합 키를 돌려줍니다.
func (m Member) GroupKey() string {
	return GroupKey(m.Department, m.Group)
}

func GroupKey(department, group string) string {
	return department + "-" + group
}

// Restamp pins the identifier after an update payload has been applied.
func (m *Member) Restamp(id int) {
	m.ID = id
}
