package appointment

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/page-scheduler/internal/httperr"
	"github.com/BruksfildServices01/page-scheduler/internal/models"
)

// TimeOfDay is a local wall-clock time, minute resolution.
type TimeOfDay struct {
	Hour   int
	Minute int
}

func ParseTimeOfDay(raw string) (TimeOfDay, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(raw))
	if err != nil {
		return TimeOfDay{}, httperr.ErrValidation("invalid_time_of_day")
	}
	return TimeOfDay{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func MustTimeOfDay(raw string) TimeOfDay {
	t, err := ParseTimeOfDay(raw)
	if err != nil {
		panic(fmt.Sprintf("appointment: bad time of day %q", raw))
	}
	return t
}

func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// On anchors t to the calendar day of date, in date's location.
func (t TimeOfDay) On(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour, t.Minute, 0, 0, date.Location())
}

func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.Minutes() < o.Minutes()
}

// ===============================
// Schedule
// ===============================

type Schedule struct {
	Open  TimeOfDay
	Close TimeOfDay

	LunchStart *TimeOfDay
	LunchEnd   *TimeOfDay

	// Weekday indices, 0 = Sunday. Empty means every day.
	WorkingDays []int
}

var (
	defaultOpen  = TimeOfDay{Hour: 9}
	defaultClose = TimeOfDay{Hour: 19}
)

// DefaultSchedule is 09:00-19:00, no lunch, every day.
func DefaultSchedule() Schedule {
	return Schedule{Open: defaultOpen, Close: defaultClose}
}

func (s Schedule) HasLunch() bool {
	return s.LunchStart != nil && s.LunchEnd != nil
}

func (s Schedule) WorksOn(day time.Weekday) bool {
	if len(s.WorkingDays) == 0 {
		return true
	}
	for _, d := range s.WorkingDays {
		if d == int(day) {
			return true
		}
	}
	return false
}

func (s Schedule) Validate() error {
	if !s.Open.Before(s.Close) {
		return httperr.ErrInvalidField("close_time", "open_not_before_close")
	}

	if (s.LunchStart == nil) != (s.LunchEnd == nil) {
		return httperr.ErrInvalidField("lunch", "incomplete_lunch")
	}

	if s.HasLunch() {
		ls, le := *s.LunchStart, *s.LunchEnd
		if ls.Before(s.Open) || !ls.Before(le) || s.Close.Before(le) {
			return httperr.ErrInvalidField("lunch", "lunch_outside_hours")
		}
	}

	for _, d := range s.WorkingDays {
		if d < 0 || d > 6 {
			return httperr.ErrInvalidField("working_days", "invalid_weekday")
		}
	}

	return nil
}

// Fits reports, as a ValidationError, why [start, end) cannot be booked
// under s. Ledger conflicts are not checked here.
func (s Schedule) Fits(start, end time.Time) error {
	if !end.After(start) {
		return httperr.ErrValidation("invalid_duration")
	}
	if !s.WorksOn(start.Weekday()) {
		return httperr.ErrValidation("closed_day")
	}

	shopOpen, shopClose := s.Open.On(start), s.Close.On(start)
	if start.Before(shopOpen) || end.After(shopClose) {
		return httperr.ErrValidation("outside_working_hours")
	}

	if s.HasLunch() && Overlaps(start, end, s.LunchStart.On(start), s.LunchEnd.On(start)) {
		return httperr.ErrValidation("lunch_break")
	}

	return nil
}

// ===============================
// Parsing from stored columns
// ===============================

// NewSchedule builds a validated Schedule from its textual form. Empty
// open/close fall back to the default day.
func NewSchedule(openTime, closeTime, lunchStart, lunchEnd, workingDays string) (Schedule, error) {
	s := DefaultSchedule()

	var err error
	if strings.TrimSpace(openTime) != "" {
		if s.Open, err = ParseTimeOfDay(openTime); err != nil {
			return Schedule{}, httperr.ErrInvalidField("open_time", "invalid_time_of_day")
		}
	}
	if strings.TrimSpace(closeTime) != "" {
		if s.Close, err = ParseTimeOfDay(closeTime); err != nil {
			return Schedule{}, httperr.ErrInvalidField("close_time", "invalid_time_of_day")
		}
	}

	// a lone lunch bound is ignored
	if strings.TrimSpace(lunchStart) != "" && strings.TrimSpace(lunchEnd) != "" {
		ls, err := ParseTimeOfDay(lunchStart)
		if err != nil {
			return Schedule{}, httperr.ErrInvalidField("lunch_start", "invalid_time_of_day")
		}
		le, err := ParseTimeOfDay(lunchEnd)
		if err != nil {
			return Schedule{}, httperr.ErrInvalidField("lunch_end", "invalid_time_of_day")
		}
		s.LunchStart, s.LunchEnd = &ls, &le
	}

	if s.WorkingDays, err = ParseWorkingDays(workingDays); err != nil {
		return Schedule{}, err
	}

	if err := s.Validate(); err != nil {
		return Schedule{}, err
	}
	return s, nil
}

func ScheduleFromPage(p *models.Page) (Schedule, error) {
	if p == nil {
		return DefaultSchedule(), nil
	}
	return NewSchedule(p.OpenTime, p.CloseTime, p.LunchStart, p.LunchEnd, p.WorkingDays)
}

// ParseWorkingDays reads "1,2,3" style lists. Duplicates collapse.
func ParseWorkingDays(raw string) ([]int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	seen := make(map[int]bool)
	var days []int
	for _, part := range strings.Split(raw, ",") {
		d, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || d < 0 || d > 6 {
			return nil, httperr.ErrInvalidField("working_days", "invalid_weekday")
		}
		if !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	sort.Ints(days)
	return days, nil
}

func FormatWorkingDays(days []int) string {
	parts := make([]string, 0, len(days))
	for _, d := range days {
		parts = append(parts, strconv.Itoa(d))
	}
	return strings.Join(parts, ",")
}
