package availability

import (
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestGenerateTwoDayHorizon(t *testing.T) {
	now := time.Date(2025, 12, 4, 8, 0, 0, 0, time.UTC)
	gen := &Generator{Now: fixedClock(now)}

	slots := gen.Generate("1", "p1", DefaultOptions())

	if len(slots) != 8 {
		t.Fatalf("expected 8 slots (4 today, 4 tomorrow), got %d", len(slots))
	}
	for i, s := range slots {
		if !s.Start.After(now) {
			t.Fatalf("slot %d starts at %v, not strictly after now %v", i, s.Start, now)
		}
		if got := s.End.Sub(s.Start); got != time.Hour {
			t.Fatalf("slot %d duration = %v, want 1h", i, got)
		}
		if s.ServiceID != "1" || s.ProviderID != "p1" {
			t.Fatalf("slot %d carries wrong identifiers: %+v", i, s)
		}
	}
	for i := 1; i < len(slots); i++ {
		if !slots[i].Start.After(slots[i-1].Start) {
			t.Fatalf("slots not ordered by start: %v then %v", slots[i-1].Start, slots[i].Start)
		}
	}
}

func TestGenerateDropsPastMarksToday(t *testing.T) {
	// At 14:30 the 10:00 and 12:00 marks are gone for today.
	now := time.Date(2025, 12, 4, 14, 30, 0, 0, time.UTC)
	gen := &Generator{Now: fixedClock(now)}

	slots := gen.Generate("2", "p1", DefaultOptions())

	if len(slots) != 6 {
		t.Fatalf("expected 6 slots (2 today, 4 tomorrow), got %d", len(slots))
	}
	if slots[0].Start.Hour() != 15 {
		t.Fatalf("first slot should be 15:00 today, got %v", slots[0].Start)
	}
}

func TestGenerateExactHourMarkIsNotFuture(t *testing.T) {
	// A slot starting exactly at "now" is not strictly in the future.
	now := time.Date(2025, 12, 4, 10, 0, 0, 0, time.UTC)
	gen := &Generator{Now: fixedClock(now)}

	slots := gen.Generate("1", "p2", DefaultOptions())

	for _, s := range slots {
		if s.Start.Equal(now) {
			t.Fatalf("slot at exactly now should have been dropped")
		}
	}
	if len(slots) != 7 {
		t.Fatalf("expected 7 slots, got %d", len(slots))
	}
}

func TestGenerateIsDeterministicAndFresh(t *testing.T) {
	now := time.Date(2025, 12, 4, 8, 0, 0, 0, time.UTC)
	gen := &Generator{Now: fixedClock(now)}

	first := gen.Generate("1", "p1", DefaultOptions())
	second := gen.Generate("1", "p1", DefaultOptions())

	if len(first) != len(second) {
		t.Fatalf("repeated generation differs in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if !first[i].Start.Equal(second[i].Start) || !first[i].End.Equal(second[i].End) {
			t.Fatalf("repeated generation differs at %d", i)
		}
	}
	// Mutating one result must not leak into the next.
	first[0].ServiceID = "mutated"
	third := gen.Generate("1", "p1", DefaultOptions())
	if third[0].ServiceID != "1" {
		t.Fatalf("generator returned shared backing storage")
	}
}
