package availability

import (
	"time"

	"reservo/models"
)

// Options controls the shape of the generated slot sequence.
type Options struct {
	HorizonDays         int   // consecutive calendar days starting today
	HourMarks           []int // slot start hours within each day
	SlotDurationMinutes int
}

// DefaultOptions mirrors the widget's stock offering: the next 2 days at
// 10:00, 12:00, 15:00 and 17:00 local, one hour each.
func DefaultOptions() Options {
	return Options{
		HorizonDays:         2,
		HourMarks:           []int{10, 12, 15, 17},
		SlotDurationMinutes: 60,
	}
}

// Generator produces candidate appointment windows. Now is injectable so
// tests can pin the clock; the zero value uses the wall clock.
type Generator struct {
	Now func() time.Time
}

func (g *Generator) now() time.Time {
	if g.Now != nil {
		return g.Now()
	}
	return time.Now()
}

// Generate materializes the slot sequence for a service/provider pair over
// the configured horizon. For the current day, slots whose start is not
// strictly in the future are dropped; later days emit every hour mark. The
// result is a fresh slice, ordered by day then hour.
func (g *Generator) Generate(serviceID, providerID string, opts Options) []models.TimeSlot {
	now := g.now()
	duration := time.Duration(opts.SlotDurationMinutes) * time.Minute

	var slots []models.TimeSlot
	for day := 0; day < opts.HorizonDays; day++ {
		date := now.AddDate(0, 0, day)
		for _, hour := range opts.HourMarks {
			start := time.Date(date.Year(), date.Month(), date.Day(), hour, 0, 0, 0, now.Location())
			if day == 0 && !start.After(now) {
				continue
			}
			slots = append(slots, models.TimeSlot{
				Start:      start,
				End:        start.Add(duration),
				ServiceID:  serviceID,
				ProviderID: providerID,
			})
		}
	}
	return slots
}
