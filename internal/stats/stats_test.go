package stats

import (
	"strconv"
	"testing"
	"time"

	"github.com/sadopc/maya/internal/store"
)

var testSettings = store.Settings{
	DailyGoalMl:         2000,
	WeeklyGoalMl:        14000,
	ReminderIntervalMin: 120,
}

// entryAt builds an entry at the given time, in order of calls.
func entryAt(at time.Time, amountMl int) store.WaterEntry {
	ms := at.UnixMilli()
	return store.WaterEntry{
		ID:          strconv.FormatInt(ms, 10),
		AmountMl:    amountMl,
		TimestampMs: ms,
	}
}

func testNow() time.Time {
	// A Wednesday afternoon, fixed so bucket boundaries are stable.
	return time.Date(2025, 6, 18, 15, 30, 0, 0, time.Local)
}

// ============================================================
// DailyTotal
// ============================================================

func TestDailyTotal(t *testing.T) {
	now := testNow()
	entries := []store.WaterEntry{
		entryAt(now.Add(-2*time.Hour), 200),
		entryAt(now.Add(-1*time.Hour), 300),
		entryAt(now.AddDate(0, 0, -1), 500), // yesterday
	}

	if got := DailyTotal(entries, now); got != 500 {
		t.Fatalf("expected 500 for today, got %d", got)
	}
	if got := DailyTotal(entries, now.AddDate(0, 0, -1)); got != 500 {
		t.Fatalf("expected 500 for yesterday, got %d", got)
	}
	if got := DailyTotal(entries, now.AddDate(0, 0, -2)); got != 0 {
		t.Fatalf("expected 0 for an empty day, got %d", got)
	}
}

func TestDailyTotalOrderIndependent(t *testing.T) {
	now := testNow()
	a := entryAt(now.Add(-3*time.Hour), 150)
	b := entryAt(now.Add(-2*time.Hour), 250)
	c := entryAt(now.Add(-1*time.Hour), 350)

	want := DailyTotal([]store.WaterEntry{a, b, c}, now)
	if got := DailyTotal([]store.WaterEntry{c, a, b}, now); got != want {
		t.Fatalf("daily total depends on order: %d != %d", got, want)
	}
	if want != 750 {
		t.Fatalf("expected 750, got %d", want)
	}
}

func TestDailyTotalDayBoundary(t *testing.T) {
	now := testNow()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	entries := []store.WaterEntry{
		entryAt(midnight, 100),                       // first instant of today
		entryAt(midnight.Add(-time.Millisecond), 50), // last instant of yesterday
	}

	if got := DailyTotal(entries, now); got != 100 {
		t.Fatalf("midnight entry belongs to today: got %d", got)
	}
	if got := DailyTotal(entries, now.AddDate(0, 0, -1)); got != 50 {
		t.Fatalf("pre-midnight entry belongs to yesterday: got %d", got)
	}
}

// ============================================================
// DailyProgress
// ============================================================

func TestDailyProgressScenario(t *testing.T) {
	now := testNow()
	entries := []store.WaterEntry{
		entryAt(now.Add(-4*time.Hour), 200),
		entryAt(now.Add(-2*time.Hour), 300),
	}

	p := DailyProgress(entries, testSettings, now)
	if p.TotalTodayMl != 500 {
		t.Fatalf("expected total 500, got %d", p.TotalTodayMl)
	}
	if p.PercentOfGoal != 25 {
		t.Fatalf("expected 25%%, got %d", p.PercentOfGoal)
	}
	if p.RemainingMl != 1500 {
		t.Fatalf("expected 1500 remaining, got %d", p.RemainingMl)
	}
}

func TestDailyProgressCapsAtHundred(t *testing.T) {
	now := testNow()
	entries := []store.WaterEntry{entryAt(now.Add(-time.Hour), 9000)}

	p := DailyProgress(entries, testSettings, now)
	if p.PercentOfGoal != 100 {
		t.Fatalf("percent must cap at 100, got %d", p.PercentOfGoal)
	}
	if p.RemainingMl != 0 {
		t.Fatalf("remaining must floor at 0, got %d", p.RemainingMl)
	}
}

func TestDailyProgressMonotonic(t *testing.T) {
	now := testNow()
	var entries []store.WaterEntry
	prev := -1
	for i := 0; i < 30; i++ {
		entries = append(entries, entryAt(now.Add(-time.Duration(i)*time.Minute), 150))
		p := DailyProgress(entries, testSettings, now)
		if p.PercentOfGoal < prev {
			t.Fatalf("percent decreased from %d to %d as intake grew", prev, p.PercentOfGoal)
		}
		prev = p.PercentOfGoal
	}
}

func TestDailyProgressZeroGoal(t *testing.T) {
	now := testNow()
	entries := []store.WaterEntry{entryAt(now.Add(-time.Hour), 500)}

	p := DailyProgress(entries, store.Settings{}, now)
	if p.PercentOfGoal != 0 {
		t.Fatalf("zero goal must report 0%%, got %d", p.PercentOfGoal)
	}
}

func TestDailyProgressEmpty(t *testing.T) {
	p := DailyProgress(nil, testSettings, testNow())
	if p.TotalTodayMl != 0 || p.PercentOfGoal != 0 || p.RemainingMl != 2000 {
		t.Fatalf("unexpected progress for empty entries: %+v", p)
	}
}

// ============================================================
// Series
// ============================================================

func TestSeriesDailySevenBuckets(t *testing.T) {
	now := testNow()
	var entries []store.WaterEntry
	// One entry on each of the last 10 days, so some fall outside the
	// 7-day window.
	for i := 0; i < 10; i++ {
		entries = append(entries, entryAt(now.AddDate(0, 0, -i), 200))
	}

	buckets := Series(entries, testSettings, now, Daily, 7)
	if len(buckets) != 7 {
		t.Fatalf("expected exactly 7 buckets, got %d", len(buckets))
	}

	sum := 0
	for i, b := range buckets {
		if b.ConsumedMl < 0 {
			t.Fatalf("bucket %d negative: %+v", i, b)
		}
		if b.GoalMl != testSettings.DailyGoalMl {
			t.Fatalf("daily bucket goal should be %d, got %d", testSettings.DailyGoalMl, b.GoalMl)
		}
		sum += b.ConsumedMl
	}

	// Cross-check against independently computed daily totals.
	independent := 0
	for i := 0; i < 7; i++ {
		independent += DailyTotal(entries, now.AddDate(0, 0, -i))
	}
	if sum != independent {
		t.Fatalf("bucket sum %d != independent daily sum %d", sum, independent)
	}
}

func TestSeriesDailyMostRecentLast(t *testing.T) {
	now := testNow()
	entries := []store.WaterEntry{entryAt(now.Add(-time.Hour), 400)}

	buckets := Series(entries, testSettings, now, Daily, 7)
	if buckets[6].ConsumedMl != 400 {
		t.Fatalf("today's intake should land in the last bucket: %+v", buckets)
	}
	for i := 0; i < 6; i++ {
		if buckets[i].ConsumedMl != 0 {
			t.Fatalf("empty day should report 0, bucket %d = %+v", i, buckets[i])
		}
	}
}

func TestSeriesWeekly(t *testing.T) {
	now := testNow()
	entries := []store.WaterEntry{
		entryAt(now.Add(-time.Hour), 300),        // this window
		entryAt(now.AddDate(0, 0, -6), 200),      // still this window
		entryAt(now.AddDate(0, 0, -7), 500),      // previous window
		entryAt(now.AddDate(0, 0, -13), 100),     // previous window
		entryAt(now.AddDate(0, 0, -14), 250),     // two windows back
		entryAt(now.AddDate(0, 0, -7*4-1), 9999), // outside all four windows
	}

	buckets := Series(entries, testSettings, now, Weekly, 4)
	if len(buckets) != 4 {
		t.Fatalf("expected 4 buckets, got %d", len(buckets))
	}
	if buckets[3].ConsumedMl != 500 {
		t.Fatalf("current window should hold 500, got %d", buckets[3].ConsumedMl)
	}
	if buckets[2].ConsumedMl != 600 {
		t.Fatalf("previous window should hold 600, got %d", buckets[2].ConsumedMl)
	}
	if buckets[1].ConsumedMl != 250 {
		t.Fatalf("third window should hold 250, got %d", buckets[1].ConsumedMl)
	}
	for _, b := range buckets {
		if b.GoalMl != testSettings.WeeklyGoalMl {
			t.Fatalf("weekly bucket goal should be %d, got %d", testSettings.WeeklyGoalMl, b.GoalMl)
		}
	}
}

func TestSeriesWeeklyDisjoint(t *testing.T) {
	now := testNow()
	// One entry per day across the full span; each must land in exactly
	// one window, so the bucket sum equals the span total.
	var entries []store.WaterEntry
	for i := 0; i < 28; i++ {
		entries = append(entries, entryAt(now.AddDate(0, 0, -i), 100))
	}

	buckets := Series(entries, testSettings, now, Weekly, 4)
	sum := 0
	for _, b := range buckets {
		sum += b.ConsumedMl
	}
	if sum != 2800 {
		t.Fatalf("windows must partition the span: sum %d, want 2800", sum)
	}
}

func TestSeriesMonthly(t *testing.T) {
	now := time.Date(2025, 6, 18, 12, 0, 0, 0, time.Local)
	entries := []store.WaterEntry{
		entryAt(time.Date(2025, 6, 1, 9, 0, 0, 0, time.Local), 400),
		entryAt(time.Date(2025, 6, 17, 9, 0, 0, 0, time.Local), 600),
		entryAt(time.Date(2025, 5, 31, 23, 0, 0, 0, time.Local), 350),
		entryAt(time.Date(2025, 2, 10, 9, 0, 0, 0, time.Local), 150),
	}

	buckets := Series(entries, testSettings, now, Monthly, 6)
	if len(buckets) != 6 {
		t.Fatalf("expected 6 buckets, got %d", len(buckets))
	}

	// Jan..Jun 2025.
	if buckets[5].Label != "Jun" || buckets[5].ConsumedMl != 1000 {
		t.Fatalf("June bucket wrong: %+v", buckets[5])
	}
	if buckets[4].Label != "May" || buckets[4].ConsumedMl != 350 {
		t.Fatalf("May bucket wrong: %+v", buckets[4])
	}
	if buckets[1].Label != "Feb" || buckets[1].ConsumedMl != 150 {
		t.Fatalf("February bucket wrong: %+v", buckets[1])
	}

	// Goal scales with month length: June has 30 days, February 2025 has 28.
	if buckets[5].GoalMl != 2000*30 {
		t.Fatalf("June goal should be %d, got %d", 2000*30, buckets[5].GoalMl)
	}
	if buckets[1].GoalMl != 2000*28 {
		t.Fatalf("February goal should be %d, got %d", 2000*28, buckets[1].GoalMl)
	}
}

func TestSeriesEmptyEntries(t *testing.T) {
	buckets := Series(nil, testSettings, testNow(), Daily, 7)
	if len(buckets) != 7 {
		t.Fatalf("expected 7 buckets for empty entries, got %d", len(buckets))
	}
	for _, b := range buckets {
		if b.ConsumedMl != 0 {
			t.Fatalf("empty bucket should report 0: %+v", b)
		}
	}
}

func TestSeriesZeroCount(t *testing.T) {
	if buckets := Series(nil, testSettings, testNow(), Daily, 0); buckets != nil {
		t.Fatalf("expected nil for count 0, got %v", buckets)
	}
}

// ============================================================
// Rolling
// ============================================================

func TestRollingEmpty(t *testing.T) {
	got := Rolling(nil, testSettings, testNow(), 30)
	if got != (Summary{}) {
		t.Fatalf("empty entries must yield all zeros, got %+v", got)
	}
}

func TestRolling(t *testing.T) {
	now := testNow()
	var entries []store.WaterEntry
	// Goal met on 3 of the last 30 days, 1000ml on a fourth day.
	for i := 1; i <= 3; i++ {
		entries = append(entries, entryAt(now.AddDate(0, 0, -i), 2000))
	}
	entries = append(entries, entryAt(now.AddDate(0, 0, -4), 1000))
	// Outside the window entirely.
	entries = append(entries, entryAt(now.AddDate(0, 0, -31), 5000))

	got := Rolling(entries, testSettings, now, 30)
	if got.TotalMl != 7000 {
		t.Fatalf("expected total 7000, got %d", got.TotalMl)
	}
	if got.AvgMlPerDay != 233 { // round(7000/30)
		t.Fatalf("expected avg 233, got %d", got.AvgMlPerDay)
	}
	if got.DaysMetGoal != 3 {
		t.Fatalf("expected 3 days met, got %d", got.DaysMetGoal)
	}
	if got.SuccessRatePercent != 10 { // round(3/30*100)
		t.Fatalf("expected 10%%, got %d", got.SuccessRatePercent)
	}
}

func TestRollingCountsEmptyDays(t *testing.T) {
	now := testNow()
	// Every single day meets the goal; success rate must be 100, which
	// only holds if empty days are not silently dropped from the window.
	var entries []store.WaterEntry
	for i := 0; i < 30; i++ {
		entries = append(entries, entryAt(now.AddDate(0, 0, -i), 2500))
	}
	got := Rolling(entries, testSettings, now, 30)
	if got.SuccessRatePercent != 100 {
		t.Fatalf("expected 100%%, got %d", got.SuccessRatePercent)
	}

	// Drop half the days: rate halves because missing days still count.
	got = Rolling(entries[:15], testSettings, now, 30)
	if got.DaysMetGoal != 15 || got.SuccessRatePercent != 50 {
		t.Fatalf("expected 15 days / 50%%, got %+v", got)
	}
}

func TestRollingZeroWindow(t *testing.T) {
	if got := Rolling(nil, testSettings, testNow(), 0); got != (Summary{}) {
		t.Fatalf("zero window must yield zeros, got %+v", got)
	}
}

// ============================================================
// Recent
// ============================================================

func TestRecent(t *testing.T) {
	now := testNow()
	entries := []store.WaterEntry{
		entryAt(now.Add(-3*time.Hour), 100),
		entryAt(now.Add(-1*time.Hour), 300),
		entryAt(now.Add(-2*time.Hour), 200),
	}

	got := Recent(entries, 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].AmountMl != 300 || got[1].AmountMl != 200 || got[2].AmountMl != 100 {
		t.Fatalf("expected newest first, got %+v", got)
	}
}

func TestRecentLimit(t *testing.T) {
	now := testNow()
	var entries []store.WaterEntry
	for i := 0; i < 20; i++ {
		entries = append(entries, entryAt(now.Add(-time.Duration(i)*time.Minute), 100))
	}
	if got := Recent(entries, 10); len(got) != 10 {
		t.Fatalf("expected 10 entries, got %d", len(got))
	}
}

func TestRecentTieBreak(t *testing.T) {
	at := testNow()
	first := entryAt(at, 100)
	second := entryAt(at, 200)
	second.ID = first.ID + "-b" // same timestamp, appended later

	got := Recent([]store.WaterEntry{first, second}, 2)
	if got[0].AmountMl != 200 {
		t.Fatalf("later-appended entry should come first on ties, got %+v", got)
	}
}

func TestRecentDoesNotMutateInput(t *testing.T) {
	now := testNow()
	entries := []store.WaterEntry{
		entryAt(now.Add(-1*time.Hour), 100),
		entryAt(now.Add(-2*time.Hour), 200),
	}
	Recent(entries, 2)
	if entries[0].AmountMl != 100 {
		t.Fatal("Recent must not reorder its input")
	}
}

// ============================================================
// Hourly
// ============================================================

func TestHourly(t *testing.T) {
	now := time.Date(2025, 6, 18, 10, 45, 0, 0, time.Local)
	entries := []store.WaterEntry{
		entryAt(time.Date(2025, 6, 18, 8, 15, 0, 0, time.Local), 200),
		entryAt(time.Date(2025, 6, 18, 8, 50, 0, 0, time.Local), 300),
		entryAt(time.Date(2025, 6, 18, 10, 5, 0, 0, time.Local), 150),
		entryAt(time.Date(2025, 6, 17, 9, 0, 0, 0, time.Local), 999), // yesterday
	}

	points := Hourly(entries, now)
	if len(points) != 11 { // hours 0..10
		t.Fatalf("expected 11 points, got %d", len(points))
	}
	if points[8].AmountMl != 500 {
		t.Fatalf("expected 500 at 8h, got %d", points[8].AmountMl)
	}
	if points[10].AmountMl != 150 {
		t.Fatalf("expected 150 at 10h, got %d", points[10].AmountMl)
	}
	if points[9].AmountMl != 0 {
		t.Fatalf("expected 0 at 9h, got %d", points[9].AmountMl)
	}
}
