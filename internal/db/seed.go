package db

// 서버 기동 시 저장소에 채워 넣는 기본 데이터입니다.

type seedMember struct {
	department, group string
	position          int
	name, role        string
	status            AttendanceStatus
	sunday, wed, fri  AttendanceFlag
	main              AttendanceFlag
}

func (s seedMember) member(id int) Member {
	return Member{
		ID:                  id,
		Department:          s.department,
		Group:               s.group,
		Position:            Position(s.position),
		Name:                s.name,
		Role:                s.role,
		Status:              s.status,
		SundayYouthAttended: s.sunday,
		SundayYouthDate:     "2024-01-21",
		WednesdayAttended:   s.wed,
		WednesdayDate:       "2024-01-17",
		FridayAttended:      s.fri,
		FridayDate:          "2024-01-19",
		MainAttended:        s.main,
		MainDate:            "2024-01-21",
	}
}

var seedMembers = []seedMember{
	{"1국", "1그룹", 1, "김민수", "그룹장", StatusRegular, Present, Present, Present, Present},
	{"1국", "1그룹", 2, "이지은", "부그룹장", StatusRegular, Present, Present, Present, Present},
	{"1국", "1그룹", 3, "오세훈", "순원", StatusWatch, Present, Absent, Present, Absent},
	{"2국", "2그룹", 1, "박준호", "그룹장", StatusWatch, Present, Present, Present, Absent},
	{"2국", "2그룹", 2, "최수진", "부그룹장", StatusRegular, Present, Present, Present, Present},
	{"2국", "2그룹", 3, "문가영", "순원", StatusShortTermAbsent, Absent, Absent, Present, Absent},
	{"3국", "3그룹", 1, "정현우", "그룹장", StatusRegular, Present, Present, Present, Present},
	{"3국", "3그룹", 2, "한소영", "부그룹장", StatusRegular, Present, Present, Present, Present},
	{"3국", "3그룹", 3, "서지호", "순원", StatusRemovalCandidate, Absent, Absent, Absent, Absent},
	{"4국", "4그룹", 1, "강동현", "그룹장", StatusRegular, Present, Present, Present, Present},
	{"4국", "4그룹", 2, "윤미라", "부그룹장", StatusRegular, Present, Present, Present, Present},
	{"4국", "4그룹", 3, "배수아", "순원", StatusRegular, Present, Present, Absent, Present},
	{"5국", "5그룹", 1, "송태민", "그룹장", StatusRegular, Present, Present, Present, Present},
	{"5국", "5그룹", 2, "임하나", "부그룹장", StatusRegular, Present, Absent, Present, Present},
	{"5국", "5그룹", 3, "노은비", "순원", StatusLongTermAbsent, Absent, Absent, Absent, Absent},
}

// SeedMembers returns the built-in member roster with ids 1..N.
func SeedMembers() []Member {
	members := make([]Member, 0, len(seedMembers))
	for i, s := range seedMembers {
		members = append(members, s.member(i+1))
	}
	return members
}

// SeedVisitations returns the built-in visitation log with ids 1..N.
func SeedVisitations() []Visitation {
	return []Visitation{
		{
			ID:                1,
			SubjectName:       "김민수",
			SubjectDepartment: "1국",
			SubjectGroup:      "1그룹",
			SubjectPosition:   1,
			SubjectBirthYear:  1995,
			VisitDate:         "2024-01-20",
			Method:            MethodInPerson,
			VisitorName:       "이지은",
			VisitorRole:       "부그룹장",
			VisitorDepartment: "1국",
			VisitorGroup:      "1그룹",
			VisitorPosition:   2,
			VisitorBirthYear:  1996,
			Content:           "최근 직장에서 스트레스가 많다고 하셨습니다. 함께 기도하고 격려했습니다. 다음 주일 예배 참석을 약속하셨습니다.",
			AuthoredAt:        "2024-01-20 15:30",
		},
		{
			ID:                2,
			SubjectName:       "박준호",
			SubjectDepartment: "2국",
			SubjectGroup:      "2그룹",
			SubjectPosition:   1,
			SubjectBirthYear:  1994,
			VisitDate:         "2024-01-19",
			Method:            MethodPhone,
			VisitorName:       "정현우",
			VisitorRole:       "그룹장",
			VisitorDepartment: "3국",
			VisitorGroup:      "3그룹",
			VisitorPosition:   1,
			VisitorBirthYear:  1993,
			Content:           "가족 문제로 고민이 많다고 하셨습니다. 함께 기도하고 말씀을 나누었습니다.",
			AuthoredAt:        "2024-01-19 20:15",
		},
		{
			ID:                3,
			SubjectName:       "최수진",
			SubjectDepartment: "2국",
			SubjectGroup:      "2그룹",
			SubjectPosition:   2,
			SubjectBirthYear:  1997,
			VisitDate:         "2024-01-18",
			Method:            MethodChat,
			VisitorName:       "한소영",
			VisitorRole:       "부그룹장",
			VisitorDepartment: "3국",
			VisitorGroup:      "3그룹",
			VisitorPosition:   2,
			VisitorBirthYear:  1996,
			Content:           "새해 계획을 나누고 기도제목을 받았습니다.",
			AuthoredAt:        "2024-01-18 21:40",
		},
		{
			ID:                4,
			SubjectName:       "서지호",
			SubjectDepartment: "3국",
			SubjectGroup:      "3그룹",
			SubjectPosition:   3,
			SubjectBirthYear:  1998,
			VisitDate:         "2024-01-16",
			Method:            MethodInPerson,
			VisitorName:       "정현우",
			VisitorRole:       "그룹장",
			VisitorDepartment: "3국",
			VisitorGroup:      "3그룹",
			VisitorPosition:   1,
			VisitorBirthYear:  1993,
			Content:           "오랫동안 예배에 나오지 못한 이유를 들었습니다. 다음 달 다시 연락하기로 했습니다.",
			AuthoredAt:        "2024-01-16 16:30",
		},
		{
			ID:                5,
			SubjectName:       "노은비",
			SubjectDepartment: "5국",
			SubjectGroup:      "5그룹",
			SubjectPosition:   3,
			SubjectBirthYear:  1999,
			VisitDate:         "2024-01-14",
			Method:            MethodPhone,
			VisitorName:       "송태민",
			VisitorRole:       "그룹장",
			VisitorDepartment: "5국",
			VisitorGroup:      "5그룹",
			VisitorPosition:   1,
			VisitorBirthYear:  1992,
			Content:           "이사 후 교회가 멀어졌다고 하셨습니다. 온라인 예배 안내를 드렸습니다.",
			AuthoredAt:        "2024-01-14 15:45",
		},
	}
}
