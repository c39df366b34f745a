package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"strings"
	"time"

	"github.com/youthadmin/internal/config"
	"github.com/youthadmin/internal/db"
	"github.com/youthadmin/internal/store"
)

// 테스트 데이터 생성기
//
// -out 을 지정하면 JSON 으로 출력하고, 지정하지 않으면 설정된 sqlite
// 데이터베이스에 바로 넣습니다.
func main() {
	memberCount := flag.Int("members", 60, "number of members to generate")
	visitCount := flag.Int("visits", 30, "number of visitations to generate")
	seed := flag.Uint64("seed", 1, "random seed")
	week := flag.String("week", "2024-01-21", "Sunday the attendance dates are based on")
	out := flag.String("out", "", "write JSON to this file ('-' for stdout) instead of the database")
	configPath := flag.String("config", "", "optional YAML config file")
	flag.Parse()

	sunday, err := time.Parse(db.DateLayout, *week)
	if err != nil {
		log.Fatalf("invalid -week: %v", err)
	}

	r := rand.New(rand.NewPCG(*seed, *seed))
	members := generateMembers(r, *memberCount, sunday)
	visitations := generateVisitations(r, members, *visitCount, sunday)

	if *out != "" {
		if err := writeJSON(*out, members, visitations); err != nil {
			log.Fatalf("failed to write JSON: %v", err)
		}
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if strings.Contains(cfg.DatabasePath, ":memory:") {
		log.Fatal("DATABASE_PATH 가 메모리 데이터베이스입니다. 파일 경로를 지정하거나 -out 을 사용하세요")
	}
	gdb, err := db.Open(cfg.DatabasePath, false)
	if err != nil {
		log.Fatalf("데이터베이스 초기화 실패: %v", err)
	}

	st := store.NewGormStore(gdb, time.Now)
	existing, err := st.ListMembers()
	if err != nil {
		log.Fatalf("failed to list members: %v", err)
	}
	if len(existing) > 0 {
		fmt.Println("구성원이 이미 있어 생성을 건너뜁니다")
		return
	}

	if err := st.SeedMembers(members); err != nil {
		log.Fatalf("failed to insert members: %v", err)
	}
	if err := st.SeedVisitations(visitations); err != nil {
		log.Fatalf("failed to insert visitations: %v", err)
	}
	fmt.Printf("테스트 데이터 생성 완료: 구성원 %d명, 심방 %d건\n", len(members), len(visitations))
}

var (
	familyNames = []string{"김", "이", "박", "최", "정", "강", "조", "윤", "장", "임", "한", "오", "서", "신", "문"}
	givenNames  = []string{"민수", "지은", "준호", "수진", "현우", "소영", "지호", "동현", "미라", "태민", "하나", "은비", "가영", "세훈", "수아"}
	departments = []string{"1국", "2국", "3국", "4국", "5국"}
	visitNotes  = []string{
		"근황을 나누고 함께 기도했습니다.",
		"직장 고민을 듣고 격려했습니다.",
		"다음 주일 예배 참석을 약속했습니다.",
		"가족 건강을 위해 기도제목을 받았습니다.",
		"새 학기 계획을 나눴습니다.",
	}
)

// statusWeights skews the roster towards regular attenders.
var statusWeights = []struct {
	status db.AttendanceStatus
	weight int
}{
	{db.StatusRegular, 50},
	{db.StatusWatch, 20},
	{db.StatusShortTermAbsent, 12},
	{db.StatusLongTermAbsent, 10},
	{db.StatusRemovalCandidate, 8},
}

// presenceOdds is the chance, in percent, of being present at a service for each status.
var presenceOdds = map[db.AttendanceStatus]int{
	db.StatusRegular:          95,
	db.StatusWatch:            65,
	db.StatusShortTermAbsent:  20,
	db.StatusLongTermAbsent:   5,
	db.StatusRemovalCandidate: 0,
}

func pickStatus(r *rand.Rand) db.AttendanceStatus {
	total := 0
	for _, w := range statusWeights {
		total += w.weight
	}
	n := r.IntN(total)
	for _, w := range statusWeights {
		if n < w.weight {
			return w.status
		}
		n -= w.weight
	}
	return db.StatusRegular
}

func attendance(r *rand.Rand, status db.AttendanceStatus) db.AttendanceFlag {
	if r.IntN(100) < presenceOdds[status] {
		return db.Present
	}
	return db.Absent
}

func generateMembers(r *rand.Rand, n int, sunday time.Time) []db.Member {
	wednesday := sunday.AddDate(0, 0, -4).Format(db.DateLayout)
	friday := sunday.AddDate(0, 0, -2).Format(db.DateLayout)
	sundayDate := sunday.Format(db.DateLayout)

	members := make([]db.Member, 0, n)
	positions := make(map[string]int)
	for i := 0; i < n; i++ {
		department := departments[r.IntN(len(departments))]
		group := fmt.Sprintf("%d그룹", r.IntN(3)+1)
		key := db.GroupKey(department, group)
		positions[key]++

		role := "순원"
		switch positions[key] {
		case 1:
			role = "그룹장"
		case 2:
			role = "부그룹장"
		}

		status := pickStatus(r)
		members = append(members, db.Member{
			ID:                  i + 1,
			Department:          department,
			Group:               group,
			Position:            db.Position(positions[key]),
			Name:                familyNames[r.IntN(len(familyNames))] + givenNames[r.IntN(len(givenNames))],
			Role:                role,
			Status:              status,
			SundayYouthAttended: attendance(r, status),
			SundayYouthDate:     sundayDate,
			WednesdayAttended:   attendance(r, status),
			WednesdayDate:       wednesday,
			FridayAttended:      attendance(r, status),
			FridayDate:          friday,
			MainAttended:        attendance(r, status),
			MainDate:            sundayDate,
		})
	}
	return members
}

func generateVisitations(r *rand.Rand, members []db.Member, n int, sunday time.Time) []db.Visitation {
	if len(members) == 0 {
		return []db.Visitation{}
	}
	methods := []db.VisitMethod{db.MethodInPerson, db.MethodPhone, db.MethodChat}

	visitations := make([]db.Visitation, 0, n)
	for i := 0; i < n; i++ {
		subject := members[r.IntN(len(members))]
		visitor := members[r.IntN(len(members))]
		day := sunday.AddDate(0, 0, -r.IntN(45))
		authored := day.Add(time.Duration(9+r.IntN(13))*time.Hour + time.Duration(r.IntN(60))*time.Minute)

		visitations = append(visitations, db.Visitation{
			ID:                i + 1,
			SubjectName:       subject.Name,
			SubjectDepartment: subject.Department,
			SubjectGroup:      subject.Group,
			SubjectPosition:   subject.Position,
			SubjectBirthYear:  1990 + r.IntN(12),
			VisitDate:         day.Format(db.DateLayout),
			Method:            methods[r.IntN(len(methods))],
			VisitorName:       visitor.Name,
			VisitorRole:       visitor.Role,
			VisitorDepartment: visitor.Department,
			VisitorGroup:      visitor.Group,
			VisitorPosition:   visitor.Position,
			VisitorBirthYear:  1988 + r.IntN(12),
			Content:           visitNotes[r.IntN(len(visitNotes))],
			AuthoredAt:        authored.Format(db.AuthoredAtLayout),
		})
	}
	return visitations
}

type dataset struct {
	Members     []db.Member     `json:"members"`
	Visitations []db.Visitation `json:"visitations"`
}

func writeJSON(path string, members []db.Member, visitations []db.Visitation) error {
	out := os.Stdout
	if path != "-" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(dataset{Members: members, Visitations: visitations})
}
