package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/youthadmin/internal/db"
	"github.com/youthadmin/internal/store"
	"pgregory.net/rapid"
)

func member(id int, department, group string, status db.AttendanceStatus, sunday db.AttendanceFlag) db.Member {
	return db.Member{
		ID:                  id,
		Department:          department,
		Group:               group,
		Name:                "member",
		Status:              status,
		SundayYouthAttended: sunday,
		SundayYouthDate:     "2024-01-21",
		WednesdayAttended:   db.Absent,
		WednesdayDate:       "2024-01-17",
		FridayAttended:      db.Absent,
		FridayDate:          "2024-01-19",
		MainAttended:        db.Absent,
		MainDate:            "2024-01-21",
	}
}

func newDashboard(t *testing.T, members ...db.Member) *DashboardService {
	t.Helper()
	s := store.NewMemoryStore(nil)
	require.NoError(t, s.SeedMembers(members))
	return NewDashboardService(s)
}

func TestComputeActiveAttendanceExcludesRemovalCandidates(t *testing.T) {
	members := []db.Member{
		member(1, "1국", "1그룹", db.StatusRegular, db.Present),
		member(2, "1국", "1그룹", db.StatusRegular, db.Absent),
		member(3, "1국", "1그룹", db.StatusRemovalCandidate, db.Present),
	}

	got := ComputeActiveAttendance(members)
	require.Equal(t, ActiveAttendance{
		ActiveAttendanceRate: 100.0,
		ThisWeekAttendees:    2,
		ActiveMembers:        2,
		TotalMembers:         3,
		ExpelledMembers:      1,
	}, got)
}

func TestComputeActiveAttendanceNoActiveMembers(t *testing.T) {
	members := []db.Member{
		member(1, "1국", "1그룹", db.StatusRemovalCandidate, db.Present),
		member(2, "1국", "1그룹", db.StatusRemovalCandidate, db.Absent),
	}

	got := ComputeActiveAttendance(members)
	require.Equal(t, 0, got.ActiveMembers)
	require.Equal(t, 0.0, got.ActiveAttendanceRate)
	require.False(t, math.IsNaN(got.ActiveAttendanceRate))

	empty := ComputeActiveAttendance(nil)
	require.Equal(t, 0.0, empty.ActiveAttendanceRate)
}

func TestSummarizeStatusesRounding(t *testing.T) {
	members := []db.Member{
		member(1, "1국", "1그룹", db.StatusRegular, db.Present),
		member(2, "1국", "1그룹", db.StatusRegular, db.Present),
		member(3, "1국", "1그룹", db.StatusWatch, db.Present),
	}

	buckets := SummarizeStatuses(members)
	require.Len(t, buckets, 5)
	require.Equal(t, 2, buckets[db.StatusRegular].Count)
	require.Equal(t, 66.7, buckets[db.StatusRegular].Percentage)
	require.Equal(t, 33.3, buckets[db.StatusWatch].Percentage)
	require.Equal(t, 0.0, buckets[db.StatusRemovalCandidate].Percentage)
	require.Equal(t, "#4CAF50", buckets[db.StatusRegular].Color)
}

func TestSummarizeStatusesUnknownStatusIsNotCounted(t *testing.T) {
	members := []db.Member{
		member(1, "1국", "1그룹", db.StatusRegular, db.Present),
		member(2, "1국", "1그룹", db.AttendanceStatus("휴학"), db.Present),
	}

	buckets := SummarizeStatuses(members)
	require.Equal(t, 1, buckets[db.StatusRegular].Count)
	require.Equal(t, 50.0, buckets[db.StatusRegular].Percentage)
	_, exists := buckets[db.AttendanceStatus("휴학")]
	require.False(t, exists)
}

func TestSummarizeStatusesEmpty(t *testing.T) {
	buckets := SummarizeStatuses(nil)
	require.Len(t, buckets, 5)
	for status, bucket := range buckets {
		require.Zerof(t, bucket.Count, "status %s", status)
		require.Zerof(t, bucket.Percentage, "status %s", status)
	}
}

func TestSummarizeStatusesIsExhaustive(t *testing.T) {
	statuses := db.AttendanceStatuses()

	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 200).Draw(t, "members")
		members := make([]db.Member, n)
		for i := range members {
			status := rapid.SampledFrom(statuses).Draw(t, "status")
			members[i] = member(i+1, "1국", "1그룹", status, db.Present)
		}

		buckets := SummarizeStatuses(members)
		count := 0
		sum := 0.0
		for _, bucket := range buckets {
			count += bucket.Count
			sum += bucket.Percentage
		}

		if count != n {
			t.Fatalf("bucket counts sum to %d, want %d", count, n)
		}
		if n == 0 {
			if sum != 0 {
				t.Fatalf("expected zero percentages for empty roster, got %v", sum)
			}
			return
		}
		// each bucket is off by at most 0.05 after rounding
		if math.Abs(sum-100) > 0.05*float64(len(statuses))+1e-9 {
			t.Fatalf("percentages sum to %v", sum)
		}
	})
}

func TestFilteredStatsSelection(t *testing.T) {
	svc := newDashboard(t,
		member(1, "1국", "1그룹", db.StatusRegular, db.Present),
		member(2, "1국", "2그룹", db.StatusRegular, db.Absent),
		member(3, "2국", "1그룹", db.StatusWatch, db.Present),
	)

	global, err := svc.FilteredStats(AllFilter, AllFilter)
	require.NoError(t, err)
	dashboard, ok := global.(DashboardStats)
	require.True(t, ok, "expected DashboardStats, got %T", global)
	require.Equal(t, 3, dashboard.TotalMembers)
	require.Equal(t, 3, dashboard.Groups)

	dept, err := svc.FilteredStats("1국", AllFilter)
	require.NoError(t, err)
	deptStats, ok := dept.(DepartmentStats)
	require.True(t, ok, "expected DepartmentStats, got %T", dept)
	require.Equal(t, 2, deptStats.TotalMembers)
	require.Equal(t, 2, deptStats.Groups)
	require.Equal(t, 50.0, deptStats.AttendanceRate)

	group, err := svc.FilteredStats("1국", "2그룹")
	require.NoError(t, err)
	groupStats, ok := group.(GroupStats)
	require.True(t, ok, "expected GroupStats, got %T", group)
	require.Equal(t, 1, groupStats.TotalMembers)
	require.Equal(t, 0.0, groupStats.AttendanceRate)

	group, err = svc.FilteredStats("", "")
	require.NoError(t, err)
	require.IsType(t, DashboardStats{}, group)
}

func TestFilteredStatsFallsBackToGlobal(t *testing.T) {
	svc := newDashboard(t,
		member(1, "1국", "1그룹", db.StatusRegular, db.Present),
	)

	unknownDept, err := svc.FilteredStats("9국", AllFilter)
	require.NoError(t, err)
	require.IsType(t, DashboardStats{}, unknownDept)

	unknownGroup, err := svc.FilteredStats("1국", "9그룹")
	require.NoError(t, err)
	require.IsType(t, DashboardStats{}, unknownGroup)
}

func TestDashboardStatsWeeklyAndTrend(t *testing.T) {
	a := member(1, "1국", "1그룹", db.StatusRegular, db.Present)
	a.WednesdayAttended = db.Present
	a.FridayAttended = db.Present
	a.MainAttended = db.Present
	b := member(2, "1국", "1그룹", db.StatusRegular, db.Present)
	b.SundayYouthDate = "2023-12-31"
	b.MainDate = "not-a-date"
	b.MainAttended = db.Present

	svc := newDashboard(t, a, b)
	stats, err := svc.Stats()
	require.NoError(t, err)

	require.Equal(t, WeeklyAttendance{Sunday: 2, Wednesday: 1, Friday: 1}, stats.ThisWeekAttendance)
	require.Equal(t, []MonthlyPoint{
		{Month: "12월", Attendance: 1},
		{Month: "1월", Attendance: 4},
	}, stats.MonthlyTrend)
}

func TestMonthlyTrendKeepsLatestMonths(t *testing.T) {
	var members []db.Member
	for month := 1; month <= 8; month++ {
		m := member(month, "1국", "1그룹", db.StatusRegular, db.Present)
		m.SundayYouthDate = "2024-0" + string(rune('0'+month)) + "-07"
		members = append(members, m)
	}

	points := monthlyTrend(members, 6)
	require.Len(t, points, 6)
	require.Equal(t, "3월", points[0].Month)
	require.Equal(t, "8월", points[5].Month)
}

func TestGroupAttendanceSortedByKey(t *testing.T) {
	svc := newDashboard(t,
		member(1, "2국", "2그룹", db.StatusRegular, db.Present),
		member(2, "1국", "1그룹", db.StatusRegular, db.Present),
		member(3, "1국", "1그룹", db.StatusRegular, db.Absent),
	)

	rows, err := svc.GroupAttendance()
	require.NoError(t, err)
	require.Equal(t, []GroupAttendance{
		{Group: "1국-1그룹", Attendance: 50.0, Members: 2},
		{Group: "2국-2그룹", Attendance: 100.0, Members: 1},
	}, rows)

	trends, err := svc.MonthlyTrends()
	require.NoError(t, err)
	require.Len(t, trends, 2)
	require.Equal(t, []MonthlyPoint{{Month: "1월", Attendance: 1}}, trends["1국"])
}

func TestPercentageRoundsHalfAwayFromZero(t *testing.T) {
	tests := []struct {
		part, whole int
		want        float64
	}{
		{part: 14, whole: 15, want: 93.3},
		{part: 7, whole: 8, want: 87.5},
		{part: 1, whole: 16, want: 6.3},
		{part: 2, whole: 3, want: 66.7},
		{part: 3, whole: 0, want: 0},
	}

	for _, tt := range tests {
		require.Equalf(t, tt.want, percentage(tt.part, tt.whole), "%d/%d", tt.part, tt.whole)
	}
}
