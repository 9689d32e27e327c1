package publish

import (
	"fmt"
	"log/slog"
	"time"
)

// Gate enforces the daily publishing budget and, when configured, an
// active-hours window. Budget state is rebuilt fresh on restart; the
// persisted dedup identities are the cross-restart guard.
type Gate struct {
	maxPerDay  int
	activeFrom *dayTime
	activeTo   *dayTime

	date  time.Time // local calendar day the count belongs to
	count int
}

type dayTime struct {
	hour, minute int
}

// NewGate builds a gate. from and to are "HH:MM" local times; both
// empty means publishing is allowed at any hour.
func NewGate(maxPerDay int, from, to string) (*Gate, error) {
	g := &Gate{maxPerDay: maxPerDay}

	if (from == "") != (to == "") {
		return nil, fmt.Errorf("active hours require both start and end")
	}
	if from != "" {
		start, err := parseDayTime(from)
		if err != nil {
			return nil, fmt.Errorf("invalid active window start: %w", err)
		}
		end, err := parseDayTime(to)
		if err != nil {
			return nil, fmt.Errorf("invalid active window end: %w", err)
		}
		g.activeFrom = &start
		g.activeTo = &end
	}

	return g, nil
}

func parseDayTime(s string) (dayTime, error) {
	var d dayTime
	if _, err := fmt.Sscanf(s, "%d:%d", &d.hour, &d.minute); err != nil {
		return d, fmt.Errorf("expected HH:MM, got %q", s)
	}
	if d.hour < 0 || d.hour > 23 || d.minute < 0 || d.minute > 59 {
		return d, fmt.Errorf("out of range: %q", s)
	}
	return d, nil
}

// InWindow reports whether now falls inside the active hours. Outside
// the window publishing is a no-op and the candidate is not consumed.
func (g *Gate) InWindow(now time.Time) bool {
	if g.activeFrom == nil {
		return true
	}
	minutes := now.Hour()*60 + now.Minute()
	start := g.activeFrom.hour*60 + g.activeFrom.minute
	end := g.activeTo.hour*60 + g.activeTo.minute
	return minutes >= start && minutes <= end
}

// Allow reports whether a publish may proceed right now. The daily
// count resets exactly once when the local calendar date advances.
func (g *Gate) Allow(now time.Time) bool {
	g.rollover(now)

	if !g.InWindow(now) {
		return false
	}
	if g.count >= g.maxPerDay {
		slog.Warn("Daily publish limit reached", "count", g.count, "max", g.maxPerDay)
		return false
	}
	return true
}

// RecordPost counts a confirmed publish against today's budget.
func (g *Gate) RecordPost(now time.Time) {
	g.rollover(now)
	g.count++
	slog.Info("Publish recorded", "today", g.count, "max", g.maxPerDay)
}

// Remaining returns the number of publishes left in today's budget.
func (g *Gate) Remaining(now time.Time) int {
	g.rollover(now)
	left := g.maxPerDay - g.count
	if left < 0 {
		return 0
	}
	return left
}

func (g *Gate) rollover(now time.Time) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if !today.Equal(g.date) {
		if !g.date.IsZero() {
			slog.Info("Daily counter reset", "previous_count", g.count)
		}
		g.date = today
		g.count = 0
	}
}
