package publish

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 8, 31, hour, minute, 0, 0, time.UTC)
}

func TestGate_DailyBudget(t *testing.T) {
	gate, err := NewGate(2, "", "")
	if err != nil {
		t.Fatalf("Failed to create gate: %v", err)
	}

	now := at(10, 0)
	if !gate.Allow(now) {
		t.Errorf("Expected fresh gate to allow")
	}
	gate.RecordPost(now)
	gate.RecordPost(now)

	if gate.Allow(now) {
		t.Errorf("Expected gate to close at daily limit")
	}
	if gate.Remaining(now) != 0 {
		t.Errorf("Expected no budget remaining, got %d", gate.Remaining(now))
	}
}

func TestGate_ResetsOnDateChange(t *testing.T) {
	gate, err := NewGate(1, "", "")
	if err != nil {
		t.Fatalf("Failed to create gate: %v", err)
	}

	today := at(23, 50)
	gate.RecordPost(today)
	if gate.Allow(today) {
		t.Errorf("Expected gate closed after hitting limit")
	}

	tomorrow := today.Add(20 * time.Minute)
	if !gate.Allow(tomorrow) {
		t.Errorf("Expected gate to reopen after date change")
	}
	if gate.Remaining(tomorrow) != 1 {
		t.Errorf("Expected full budget after reset, got %d", gate.Remaining(tomorrow))
	}
}

func TestGate_ActiveWindow(t *testing.T) {
	gate, err := NewGate(15, "12:00", "19:30")
	if err != nil {
		t.Fatalf("Failed to create gate: %v", err)
	}

	cases := []struct {
		now  time.Time
		want bool
	}{
		{at(11, 59), false},
		{at(12, 0), true},
		{at(15, 30), true},
		{at(19, 30), true},
		{at(19, 31), false},
		{at(23, 0), false},
	}

	for _, c := range cases {
		if got := gate.InWindow(c.now); got != c.want {
			t.Errorf("InWindow(%s): expected %v, got %v", c.now.Format("15:04"), c.want, got)
		}
	}
}

func TestGate_OutsideWindowDoesNotConsumeBudget(t *testing.T) {
	gate, err := NewGate(1, "12:00", "19:30")
	if err != nil {
		t.Fatalf("Failed to create gate: %v", err)
	}

	if gate.Allow(at(9, 0)) {
		t.Errorf("Expected gate to deny outside the window")
	}
	if gate.Remaining(at(9, 0)) != 1 {
		t.Errorf("Expected denied attempt to leave budget untouched")
	}
	if !gate.Allow(at(13, 0)) {
		t.Errorf("Expected gate to allow inside the window")
	}
}

func TestGate_InvalidWindow(t *testing.T) {
	if _, err := NewGate(1, "12:00", ""); err == nil {
		t.Errorf("Expected error for missing window end")
	}
	if _, err := NewGate(1, "25:00", "26:00"); err == nil {
		t.Errorf("Expected error for out-of-range hour")
	}
}
