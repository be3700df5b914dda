// Package stats computes derived hydration views. Every function is a
// pure function of its inputs; callers pass the reference time
// explicitly so results are deterministic.
package stats

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/sadopc/maya/internal/store"
)

// Granularity selects the bucket size for Series.
type Granularity int

const (
	Daily Granularity = iota
	Weekly
	Monthly
)

func (g Granularity) String() string {
	switch g {
	case Weekly:
		return "Weekly"
	case Monthly:
		return "Monthly"
	default:
		return "Daily"
	}
}

// Progress summarizes today's intake against the daily goal.
type Progress struct {
	TotalTodayMl  int
	PercentOfGoal int // capped at 100
	RemainingMl   int // floored at 0
}

// Bucket is one column of a history chart.
type Bucket struct {
	Label      string
	ConsumedMl int
	GoalMl     int
}

// Summary aggregates a trailing window of whole days. Days with no
// entries count toward the window and against the success rate.
type Summary struct {
	TotalMl            int
	AvgMlPerDay        int
	DaysMetGoal        int
	SuccessRatePercent int
}

// HourPoint is today's intake for a single hour.
type HourPoint struct {
	Hour     int
	AmountMl int
}

// DailyTotal sums the amounts of entries whose local calendar day
// equals day's. Returns 0 when nothing matches.
func DailyTotal(entries []store.WaterEntry, day time.Time) int {
	y, m, d := day.Date()
	total := 0
	for _, e := range entries {
		ey, em, ed := e.Time().In(day.Location()).Date()
		if ey == y && em == m && ed == d {
			total += e.AmountMl
		}
	}
	return total
}

// DailyProgress reports today's total against the daily goal. A
// non-positive goal yields 0% rather than a division blowup; the
// settings store's validation normally prevents that case.
func DailyProgress(entries []store.WaterEntry, settings store.Settings, now time.Time) Progress {
	total := DailyTotal(entries, now)

	pct := 0
	if settings.DailyGoalMl > 0 {
		pct = total * 100 / settings.DailyGoalMl
		if pct > 100 {
			pct = 100
		}
	}

	remaining := settings.DailyGoalMl - total
	if remaining < 0 {
		remaining = 0
	}

	return Progress{TotalTodayMl: total, PercentOfGoal: pct, RemainingMl: remaining}
}

// Series produces count buckets ending at the bucket containing now,
// oldest first. Daily buckets follow calendar days with the daily goal;
// weekly buckets are non-overlapping 7-day windows whose most recent
// window ends today, with the weekly goal; monthly buckets follow
// calendar months with the daily goal scaled by the month's length.
func Series(entries []store.WaterEntry, settings store.Settings, now time.Time, g Granularity, count int) []Bucket {
	if count <= 0 {
		return nil
	}

	buckets := make([]Bucket, 0, count)
	today := startOfDay(now)

	switch g {
	case Weekly:
		for i := count - 1; i >= 0; i-- {
			end := today.AddDate(0, 0, -7*i+1) // exclusive
			start := end.AddDate(0, 0, -7)
			buckets = append(buckets, Bucket{
				Label:      fmt.Sprintf("Week %d", count-i),
				ConsumedMl: totalBetween(entries, start, end),
				GoalMl:     settings.WeeklyGoalMl,
			})
		}

	case Monthly:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		for i := count - 1; i >= 0; i-- {
			start := first.AddDate(0, -i, 0)
			end := start.AddDate(0, 1, 0)
			buckets = append(buckets, Bucket{
				Label:      start.Format("Jan"),
				ConsumedMl: totalBetween(entries, start, end),
				GoalMl:     settings.DailyGoalMl * daysInMonth(start),
			})
		}

	default: // Daily
		for i := count - 1; i >= 0; i-- {
			day := today.AddDate(0, 0, -i)
			buckets = append(buckets, Bucket{
				Label:      day.Format("Mon 02"),
				ConsumedMl: DailyTotal(entries, day),
				GoalMl:     settings.DailyGoalMl,
			})
		}
	}

	return buckets
}

// Rolling summarizes the trailing windowDays calendar days ending today.
func Rolling(entries []store.WaterEntry, settings store.Settings, now time.Time, windowDays int) Summary {
	if windowDays <= 0 {
		return Summary{}
	}

	today := startOfDay(now)
	total := 0
	met := 0
	for i := 0; i < windowDays; i++ {
		dayTotal := DailyTotal(entries, today.AddDate(0, 0, -i))
		total += dayTotal
		if settings.DailyGoalMl > 0 && dayTotal >= settings.DailyGoalMl {
			met++
		}
	}

	return Summary{
		TotalMl:            total,
		AvgMlPerDay:        int(math.Round(float64(total) / float64(windowDays))),
		DaysMetGoal:        met,
		SuccessRatePercent: int(math.Round(float64(met) / float64(windowDays) * 100)),
	}
}

// Recent returns up to limit entries sorted newest first. Entries with
// equal timestamps order by reverse insertion (later-appended first).
func Recent(entries []store.WaterEntry, limit int) []store.WaterEntry {
	out := make([]store.WaterEntry, len(entries))
	for i, e := range entries {
		out[len(entries)-1-i] = e
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimestampMs > out[j].TimestampMs
	})
	if limit >= 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

// Hourly bins today's entries by hour, from midnight through the hour
// containing now.
func Hourly(entries []store.WaterEntry, now time.Time) []HourPoint {
	points := make([]HourPoint, now.Hour()+1)
	for i := range points {
		points[i].Hour = i
	}

	y, m, d := now.Date()
	for _, e := range entries {
		t := e.Time().In(now.Location())
		ey, em, ed := t.Date()
		if ey != y || em != m || ed != d {
			continue
		}
		if h := t.Hour(); h < len(points) {
			points[h].AmountMl += e.AmountMl
		}
	}
	return points
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func totalBetween(entries []store.WaterEntry, start, end time.Time) int {
	total := 0
	for _, e := range entries {
		t := e.Time()
		if !t.Before(start) && t.Before(end) {
			total += e.AmountMl
		}
	}
	return total
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
