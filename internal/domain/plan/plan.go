package plan

import (
	"strings"
	"time"
)

// Plan is a feature tier.
type Plan string

const (
	Free Plan = "free"
	Pro  Plan = "pro"
)

// Normalize maps a stored value to a known tier. Anything unrecognised
// reads as free.
func Normalize(raw string) Plan {
	switch p := Plan(strings.ToLower(strings.TrimSpace(raw))); p {
	case Free, Pro:
		return p
	}
	return Free
}

// Effective derives the tier in force at now. A pro plan whose trial
// deadline has passed reads as free. It never writes anything back.
func Effective(stored Plan, trialDeadline *time.Time, now time.Time) Plan {
	if stored == Pro && trialDeadline != nil && now.After(*trialDeadline) {
		return Free
	}
	return stored
}

// TrialActive is true while a pro trial has a deadline that has not passed.
func TrialActive(stored Plan, trialDeadline *time.Time, now time.Time) bool {
	return stored == Pro && trialDeadline != nil && !now.After(*trialDeadline)
}
