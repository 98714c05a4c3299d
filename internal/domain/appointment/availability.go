package appointment

import (
	"time"

	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
)

// SlotStep is the candidate grid, independent of service duration.
const SlotStep = 30 * time.Minute

// Overlaps is the half-open interval test: touching ends do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// GenerateSlots lists bookable start times (HH:MM) on date for a service of
// durationMinutes. date is interpreted in its own location. An empty list
// means closed or fully booked and is not an error.
func GenerateSlots(
	date time.Time,
	durationMinutes int,
	busy []models.Appointment,
	sched Schedule,
	now time.Time,
) ([]string, error) {

	if durationMinutes < 1 {
		return nil, httperr.ErrInvalidField("duration", "invalid_duration")
	}
	if err := sched.Validate(); err != nil {
		return nil, err
	}

	slots := []string{}

	if !sched.WorksOn(date.Weekday()) {
		return slots, nil
	}

	shopOpen := sched.Open.On(date)
	shopClose := sched.Close.On(date)

	var lunchStart, lunchEnd time.Time
	hasLunch := sched.HasLunch()
	if hasLunch {
		lunchStart = sched.LunchStart.On(date)
		lunchEnd = sched.LunchEnd.On(date)
	}

	duration := time.Duration(durationMinutes) * time.Minute

	for c := shopOpen; c.Before(shopClose); c = c.Add(SlotStep) {
		end := c.Add(duration)

		// fecha antes de terminar
		if end.After(shopClose) {
			continue
		}

		// horário já passou
		if c.Before(now) {
			continue
		}

		// almoço
		if hasLunch && Overlaps(c, end, lunchStart, lunchEnd) {
			continue
		}

		if collides(c, end, busy) {
			continue
		}

		slots = append(slots, c.Format("15:04"))
	}

	return slots, nil
}

func collides(start, end time.Time, busy []models.Appointment) bool {
	for _, ap := range busy {
		if !Status(ap.Status).Blocks() {
			continue
		}
		if Overlaps(start, end, ap.StartAt, ap.EndAt) {
			return true
		}
	}
	return false
}

// FirstConflict returns the first blocking appointment overlapping
// [start, end), or nil.
func FirstConflict(start, end time.Time, ledger []models.Appointment) *models.Appointment {
	for i := range ledger {
		ap := &ledger[i]
		if Status(ap.Status).Blocks() && Overlaps(start, end, ap.StartAt, ap.EndAt) {
			return ap
		}
	}
	return nil
}
