package service

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/youthadmin/internal/db"
	"github.com/youthadmin/internal/logger"
	"github.com/youthadmin/internal/store"
)

// RecentWindowDays is the inclusive trailing window for "recent" visitations.
const RecentWindowDays = 30

const defaultRecentActivityLimit = 10

// ErrInvalidVisitDate is returned when a stored visit date cannot be parsed.
var ErrInvalidVisitDate = errors.New("invalid stored visit date")

// VisitationStatsService aggregates visitation counts.
type VisitationStatsService struct {
	store store.VisitationStore
	now   func() time.Time
}

// VisitationStats 심방 통계 응답
type VisitationStats struct {
	TotalVisitations     int                    `json:"total_visitations"`
	MethodStats          map[db.VisitMethod]int `json:"method_stats"`
	DepartmentStats      map[string]int         `json:"department_stats"`
	RecentVisitations    int                    `json:"recent_visitations"`
	ThisMonthVisitations int                    `json:"this_month_visitations"`
}

// RecentActivity is one row of the dashboard activity feed.
type RecentActivity struct {
	ID     int    `json:"id"`
	Type   string `json:"type"`
	Member string `json:"member"`
	Group  string `json:"group"`
	Date   string `json:"date"`
	Time   string `json:"time"`
}

// NewVisitationStatsService creates the aggregator. now defaults to time.Now.
func NewVisitationStatsService(s store.VisitationStore, now func() time.Time) *VisitationStatsService {
	if now == nil {
		now = time.Now
	}
	return &VisitationStatsService{store: s, now: now}
}

// Stats 는 방법별/국별/최근 30일 심방 수를 계산합니다.
// 저장된 날짜 하나라도 해석할 수 없으면 전체 요청을 실패시킵니다.
func (s *VisitationStatsService) Stats() (VisitationStats, error) {
	visitations, err := s.store.ListVisitations()
	if err != nil {
		return VisitationStats{}, fmt.Errorf("list visitations: %w", err)
	}

	stats, err := SummarizeVisitations(visitations, s.now())
	if err != nil {
		logger.Error("visitation stats failed", "err", err)
		return VisitationStats{}, err
	}
	return stats, nil
}

// SummarizeVisitations is the pure form of Stats.
func SummarizeVisitations(visitations []db.Visitation, now time.Time) (VisitationStats, error) {
	stats := VisitationStats{
		TotalVisitations: len(visitations),
		MethodStats:      make(map[db.VisitMethod]int),
		DepartmentStats:  make(map[string]int),
	}

	for _, v := range visitations {
		stats.MethodStats[v.Method]++
		stats.DepartmentStats[v.SubjectDepartment]++

		recent, err := IsRecent(v.VisitDate, now)
		if err != nil {
			return VisitationStats{}, fmt.Errorf("visitation %d: %w", v.ID, err)
		}
		if recent {
			stats.RecentVisitations++
		}
	}
	stats.ThisMonthVisitations = stats.RecentVisitations
	return stats, nil
}

// IsRecent reports whether whole days elapsed since visitDate are at most
// RecentWindowDays. Both sides are compared as wall-clock times in now's
// location, so a daylight saving shift never moves a date across the
// boundary. Partial days are floored and future dates count as recent.
func IsRecent(visitDate string, now time.Time) (bool, error) {
	day, err := time.ParseInLocation(db.DateLayout, strings.TrimSpace(visitDate), time.UTC)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidVisitDate, visitDate)
	}
	wall := wallClock(now)
	elapsedDays := int(math.Floor(wall.Sub(day).Hours() / 24))
	return elapsedDays <= RecentWindowDays, nil
}

// wallClock moves t's local reading into UTC unchanged.
func wallClock(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// RecentActivities 는 최신 심방 기록을 대시보드 활동 목록 형태로 돌려줍니다.
func (s *VisitationStatsService) RecentActivities(limit int) ([]RecentActivity, error) {
	if limit <= 0 {
		limit = defaultRecentActivityLimit
	}

	visitations, err := s.store.ListVisitations()
	if err != nil {
		return nil, fmt.Errorf("list visitations: %w", err)
	}

	sort.SliceStable(visitations, func(i, j int) bool {
		if visitations[i].VisitDate != visitations[j].VisitDate {
			return visitations[i].VisitDate > visitations[j].VisitDate
		}
		return visitations[i].AuthoredAt > visitations[j].AuthoredAt
	})
	if len(visitations) > limit {
		visitations = visitations[:limit]
	}

	activities := make([]RecentActivity, 0, len(visitations))
	for _, v := range visitations {
		activities = append(activities, RecentActivity{
			ID:     v.ID,
			Type:   "심방",
			Member: v.SubjectName,
			Group:  db.GroupKey(v.SubjectDepartment, v.SubjectGroup),
			Date:   v.VisitDate,
			Time:   authoredClock(v.AuthoredAt),
		})
	}
	return activities, nil
}

func authoredClock(authoredAt string) string {
	if at, err := time.Parse(db.AuthoredAtLayout, strings.TrimSpace(authoredAt)); err == nil {
		return at.Format("15:04")
	}
	return ""
}
