package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/youthadmin/internal/db"
	"github.com/youthadmin/internal/store"
)

// AllFilter is the filter value meaning "no restriction".
const AllFilter = "전체"

const monthlyTrendMonths = 6

// DashboardService 는 구성원 목록으로부터 출석 통계를 계산합니다.
// 모든 값은 요청마다 현재 목록을 다시 읽어 계산합니다.
type DashboardService struct {
	members store.MemberStore
}

// WeeklyAttendance counts members marked present per weekday service.
type WeeklyAttendance struct {
	Sunday    int `json:"sunday"`
	Wednesday int `json:"wednesday"`
	Friday    int `json:"friday"`
}

// MonthlyPoint is one month of the attendance trend.
type MonthlyPoint struct {
	Month      string `json:"month"`
	Attendance int    `json:"attendance"`
}

// GroupStats 그룹 단위 통계
type GroupStats struct {
	TotalMembers       int              `json:"totalMembers"`
	ActiveMembers      int              `json:"activeMembers"`
	AttendanceRate     float64          `json:"attendanceRate"`
	ThisWeekAttendance WeeklyAttendance `json:"thisWeekAttendance"`
}

// DepartmentStats 국 단위 통계
type DepartmentStats struct {
	TotalMembers       int              `json:"totalMembers"`
	ActiveMembers      int              `json:"activeMembers"`
	AttendanceRate     float64          `json:"attendanceRate"`
	Groups             int              `json:"groups"`
	ThisWeekAttendance WeeklyAttendance `json:"thisWeekAttendance"`
}

// DashboardStats 전체 통계
type DashboardStats struct {
	TotalMembers       int              `json:"totalMembers"`
	ActiveMembers      int              `json:"activeMembers"`
	AttendanceRate     float64          `json:"attendanceRate"`
	Groups             int              `json:"groups"`
	ThisWeekAttendance WeeklyAttendance `json:"thisWeekAttendance"`
	MonthlyTrend       []MonthlyPoint   `json:"monthlyTrend"`
}

// StatusBucket is one entry of the attendance status distribution.
type StatusBucket struct {
	Count       int     `json:"count"`
	Percentage  float64 `json:"percentage"`
	Color       string  `json:"color"`
	Description string  `json:"description"`
}

// ActiveAttendance describes the Sunday attendance rate among non-removal members.
type ActiveAttendance struct {
	ActiveAttendanceRate float64 `json:"active_attendance_rate"`
	ThisWeekAttendees    int     `json:"this_week_attendees"`
	ActiveMembers        int     `json:"active_members"`
	TotalMembers         int     `json:"total_members"`
	ExpelledMembers      int     `json:"expelled_members"`
}

// GroupAttendance is one row of the per-group attendance table.
type GroupAttendance struct {
	Group      string  `json:"group"`
	Attendance float64 `json:"attendance"`
	Members    int     `json:"members"`
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(members store.MemberStore) *DashboardService {
	return &DashboardService{members: members}
}

func (s *DashboardService) load() ([]db.Member, error) {
	members, err := s.members.ListMembers()
	if err != nil {
		return nil, fmt.Errorf("load members: %w", err)
	}
	return members, nil
}

// Stats returns the global snapshot.
func (s *DashboardService) Stats() (DashboardStats, error) {
	members, err := s.load()
	if err != nil {
		return DashboardStats{}, err
	}
	return summarizeDashboard(members), nil
}

// DepartmentStats returns snapshots keyed by department code.
func (s *DashboardService) DepartmentStats() (map[string]DepartmentStats, error) {
	members, err := s.load()
	if err != nil {
		return nil, err
	}
	return summarizeDepartments(members), nil
}

// GroupStats returns snapshots keyed by "{department}-{group}".
func (s *DashboardService) GroupStats() (map[string]GroupStats, error) {
	members, err := s.load()
	if err != nil {
		return nil, err
	}
	return summarizeGroups(members), nil
}

// FilteredStats 는 국/그룹 필터에 맞는 통계를 돌려줍니다.
// 알 수 없는 국이나 그룹이면 오류 대신 전체 통계로 대체합니다.
func (s *DashboardService) FilteredStats(department, group string) (any, error) {
	members, err := s.load()
	if err != nil {
		return nil, err
	}
	return selectFilteredStats(members, department, group), nil
}

func selectFilteredStats(members []db.Member, department, group string) any {
	department = normalizeFilter(department)
	group = normalizeFilter(group)

	if department == AllFilter {
		return summarizeDashboard(members)
	}
	if group == AllFilter {
		if stats, ok := summarizeDepartments(members)[department]; ok {
			return stats
		}
		return summarizeDashboard(members)
	}
	if stats, ok := summarizeGroups(members)[db.GroupKey(department, group)]; ok {
		return stats
	}
	return summarizeDashboard(members)
}

func normalizeFilter(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return AllFilter
	}
	return value
}

// StatusDistribution counts members per status bucket.
func (s *DashboardService) StatusDistribution() (map[db.AttendanceStatus]StatusBucket, error) {
	members, err := s.load()
	if err != nil {
		return nil, err
	}
	return SummarizeStatuses(members), nil
}

// ActiveAttendanceRate computes the Sunday rate among active members.
func (s *DashboardService) ActiveAttendanceRate() (ActiveAttendance, error) {
	members, err := s.load()
	if err != nil {
		return ActiveAttendance{}, err
	}
	return ComputeActiveAttendance(members), nil
}

// GroupAttendance lists every group with its attendance rate, ordered by key.
func (s *DashboardService) GroupAttendance() ([]GroupAttendance, error) {
	members, err := s.load()
	if err != nil {
		return nil, err
	}

	groups := summarizeGroups(members)
	keys := make([]string, 0, len(groups))
	for key := range groups {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	rows := make([]GroupAttendance, 0, len(keys))
	for _, key := range keys {
		stats := groups[key]
		rows = append(rows, GroupAttendance{Group: key, Attendance: stats.AttendanceRate, Members: stats.TotalMembers})
	}
	return rows, nil
}

// MonthlyTrends returns the monthly trend of every department.
func (s *DashboardService) MonthlyTrends() (map[string][]MonthlyPoint, error) {
	members, err := s.load()
	if err != nil {
		return nil, err
	}

	byDepartment := make(map[string][]db.Member)
	for _, m := range members {
		byDepartment[m.Department] = append(byDepartment[m.Department], m)
	}

	trends := make(map[string][]MonthlyPoint, len(byDepartment))
	for department, scoped := range byDepartment {
		trends[department] = monthlyTrend(scoped, monthlyTrendMonths)
	}
	return trends, nil
}

var statusPresentation = map[db.AttendanceStatus]struct {
	color       string
	description string
}{
	db.StatusRegular:          {"#4CAF50", "매주 주일 예배 참석"},
	db.StatusWatch:            {"#8BC34A", "1주, 2주 정도 가끔씩 예배 불참석"},
	db.StatusShortTermAbsent:  {"#FF9800", "4주동안 예배 불참석"},
	db.StatusLongTermAbsent:   {"#F44336", "12주 이상 예배 불참석"},
	db.StatusRemovalCandidate: {"#9E9E9E", "올해 한번도 예배 불참석"},
}

// SummarizeStatuses 는 다섯 가지 출석 상태별 인원과 비율을 계산합니다.
// 알 수 없는 상태 값은 어느 버킷에도 더해지지 않으며 오류로 취급하지 않습니다.
func SummarizeStatuses(members []db.Member) map[db.AttendanceStatus]StatusBucket {
	counts := make(map[db.AttendanceStatus]int, len(statusPresentation))
	for _, m := range members {
		if m.Status.Valid() {
			counts[m.Status]++
		}
	}

	total := len(members)
	buckets := make(map[db.AttendanceStatus]StatusBucket, len(statusPresentation))
	for _, status := range db.AttendanceStatuses() {
		presentation := statusPresentation[status]
		buckets[status] = StatusBucket{
			Count:       counts[status],
			Percentage:  percentage(counts[status], total),
			Color:       presentation.color,
			Description: presentation.description,
		}
	}
	return buckets
}

// ComputeActiveAttendance 활성인원 = 전체 - 제적 대상자, 출석률 = 주일청년예배 출석자 / 활성인원.
func ComputeActiveAttendance(members []db.Member) ActiveAttendance {
	result := ActiveAttendance{TotalMembers: len(members)}
	for _, m := range members {
		if m.Status == db.StatusRemovalCandidate {
			result.ExpelledMembers++
		}
		if m.Attended(db.ServiceSundayYouth) {
			result.ThisWeekAttendees++
		}
	}
	result.ActiveMembers = result.TotalMembers - result.ExpelledMembers
	result.ActiveAttendanceRate = percentage(result.ThisWeekAttendees, result.ActiveMembers)
	return result
}

type scopeSummary struct {
	total    int
	active   ActiveAttendance
	groups   map[string]struct{}
	thisWeek WeeklyAttendance
}

func summarize(members []db.Member) scopeSummary {
	summary := scopeSummary{
		total:  len(members),
		active: ComputeActiveAttendance(members),
		groups: make(map[string]struct{}),
	}
	for _, m := range members {
		summary.groups[m.GroupKey()] = struct{}{}
		if m.Attended(db.ServiceSundayYouth) {
			summary.thisWeek.Sunday++
		}
		if m.Attended(db.ServiceWednesday) {
			summary.thisWeek.Wednesday++
		}
		if m.Attended(db.ServiceFriday) {
			summary.thisWeek.Friday++
		}
	}
	return summary
}

func summarizeDashboard(members []db.Member) DashboardStats {
	summary := summarize(members)
	return DashboardStats{
		TotalMembers:       summary.total,
		ActiveMembers:      summary.active.ActiveMembers,
		AttendanceRate:     summary.active.ActiveAttendanceRate,
		Groups:             len(summary.groups),
		ThisWeekAttendance: summary.thisWeek,
		MonthlyTrend:       monthlyTrend(members, monthlyTrendMonths),
	}
}

func summarizeDepartments(members []db.Member) map[string]DepartmentStats {
	byDepartment := make(map[string][]db.Member)
	for _, m := range members {
		byDepartment[m.Department] = append(byDepartment[m.Department], m)
	}

	result := make(map[string]DepartmentStats, len(byDepartment))
	for department, scoped := range byDepartment {
		summary := summarize(scoped)
		result[department] = DepartmentStats{
			TotalMembers:       summary.total,
			ActiveMembers:      summary.active.ActiveMembers,
			AttendanceRate:     summary.active.ActiveAttendanceRate,
			Groups:             len(summary.groups),
			ThisWeekAttendance: summary.thisWeek,
		}
	}
	return result
}

func summarizeGroups(members []db.Member) map[string]GroupStats {
	byGroup := make(map[string][]db.Member)
	for _, m := range members {
		byGroup[m.GroupKey()] = append(byGroup[m.GroupKey()], m)
	}

	result := make(map[string]GroupStats, len(byGroup))
	for key, scoped := range byGroup {
		summary := summarize(scoped)
		result[key] = GroupStats{
			TotalMembers:       summary.total,
			ActiveMembers:      summary.active.ActiveMembers,
			AttendanceRate:     summary.active.ActiveAttendanceRate,
			ThisWeekAttendance: summary.thisWeek,
		}
	}
	return result
}

// monthlyTrend counts present attendances across the four services per
// calendar month and keeps the latest limit months that have any data.
// Dates that do not parse are skipped; they carry no month to attribute.
func monthlyTrend(members []db.Member, limit int) []MonthlyPoint {
	counts := make(map[string]int)
	for _, m := range members {
		for _, svc := range db.Services() {
			flag, date := m.Attendance(svc)
			if flag != db.Present {
				continue
			}
			day, err := time.Parse(db.DateLayout, strings.TrimSpace(date))
			if err != nil {
				continue
			}
			counts[day.Format("2006-01")]++
		}
	}

	months := make([]string, 0, len(counts))
	for month := range counts {
		months = append(months, month)
	}
	sort.Strings(months)
	if limit > 0 && len(months) > limit {
		months = months[len(months)-limit:]
	}

	points := make([]MonthlyPoint, 0, len(months))
	for _, month := range months {
		points = append(points, MonthlyPoint{Month: monthLabel(month), Attendance: counts[month]})
	}
	return points
}

func monthLabel(yearMonth string) string {
	parts := strings.SplitN(yearMonth, "-", 2)
	if len(parts) != 2 {
		return yearMonth
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return yearMonth
	}
	return fmt.Sprintf("%d월", n)
}
