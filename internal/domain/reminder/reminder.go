// Package reminder derives the maintenance reminder schedule for a car
// from its current mileage and service history. Derivation is a pure
// read-time computation: nothing in this package is ever persisted.
package reminder

import (
	"sort"

	"github.com/garagelog/garagelog-api/internal/domain"
)

// Item is a single derived reminder: a service record classified against
// the car's current mileage.
type Item struct {
	// Record is the service record the reminder was derived from.
	Record domain.ServiceRecord

	// Remaining is the distance left until the service is due.
	// It is positive for upcoming items and zero for overdue items.
	Remaining int64

	// OverdueBy is the distance by which the service is past due.
	// It is zero for upcoming items. A record whose threshold equals
	// the current mileage is overdue with OverdueBy zero.
	OverdueBy int64

	// Progress is a display-urgency hint in [0, 1]: 0 means the due
	// point is at or beyond the lookback window, 1 means due now or
	// past due. It is deterministic but not correctness-critical.
	Progress float64
}

// Schedule is the full derived reminder state for one car.
type Schedule struct {
	// Upcoming holds reminders not yet due, sorted ascending by
	// remaining distance (soonest-due first).
	Upcoming []Item

	// Overdue holds reminders at or past their threshold, sorted
	// descending by overdue distance (most-overdue first).
	Overdue []Item
}

// Classify partitions a car's service records into upcoming and overdue
// reminders against the given current mileage. Records that carry no
// reminder threshold or whose reminder has been dismissed are excluded.
// Ties within a bucket keep the records' original order.
func Classify(currentMileage int64, records []domain.ServiceRecord, params *Params) Schedule {
	if params == nil {
		params = NewDefaultParams()
	}

	var schedule Schedule

	for _, record := range records {
		if record.IsReminderDismissed || record.NextServiceMileage == nil {
			continue
		}

		threshold := *record.NextServiceMileage
		if threshold > currentMileage {
			remaining := threshold - currentMileage
			schedule.Upcoming = append(schedule.Upcoming, Item{
				Record:    record,
				Remaining: remaining,
				Progress:  progress(remaining, params.Window),
			})
		} else {
			schedule.Overdue = append(schedule.Overdue, Item{
				Record:    record,
				OverdueBy: currentMileage - threshold,
				Progress:  1,
			})
		}
	}

	// The most urgent item in each bucket surfaces first regardless of
	// insertion order; stable sorts preserve insertion order on ties.
	sort.SliceStable(schedule.Upcoming, func(i, j int) bool {
		return schedule.Upcoming[i].Remaining < schedule.Upcoming[j].Remaining
	})
	sort.SliceStable(schedule.Overdue, func(i, j int) bool {
		return schedule.Overdue[i].OverdueBy > schedule.Overdue[j].OverdueBy
	})

	return schedule
}

// DueBetween returns the records whose reminder threshold lies in the
// half-open interval (oldMileage, newMileage]. It is the derived query a
// caller runs after a mileage update to detect newly due services and
// trigger a one-time notification; nothing is flagged or stored.
// Dismissed records never become newly due.
func DueBetween(oldMileage, newMileage int64, records []domain.ServiceRecord) []domain.ServiceRecord {
	var due []domain.ServiceRecord

	for _, record := range records {
		if record.IsReminderDismissed || record.NextServiceMileage == nil {
			continue
		}

		threshold := *record.NextServiceMileage
		if threshold > oldMileage && threshold <= newMileage {
			due = append(due, record)
		}
	}

	return due
}

// progress computes the clamped urgency ratio 1 - remaining/window.
func progress(remaining, window int64) float64 {
	if window <= 0 {
		window = DefaultWindow
	}

	ratio := 1 - float64(remaining)/float64(window)
	if ratio < 0 {
		return 0
	}
	if ratio > 1 {
		return 1
	}
	return ratio
}
