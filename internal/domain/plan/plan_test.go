package plan_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/page-scheduler/internal/domain/plan"
)

func TestEffective(t *testing.T) {
	deadline := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	before := deadline.Add(-time.Minute)
	after := deadline.Add(time.Minute)

	cases := []struct {
		name     string
		stored   plan.Plan
		deadline *time.Time
		now      time.Time
		expected plan.Plan
	}{
		{"pro without deadline", plan.Pro, nil, after, plan.Pro},
		{"pro trial running", plan.Pro, &deadline, before, plan.Pro},
		{"pro at deadline", plan.Pro, &deadline, deadline, plan.Pro},
		{"pro trial lapsed", plan.Pro, &deadline, after, plan.Free},
		{"free with deadline", plan.Free, &deadline, after, plan.Free},
		{"free without deadline", plan.Free, nil, before, plan.Free},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, plan.Effective(tc.stored, tc.deadline, tc.now))
		})
	}
}

func TestEffective_PureAndIdempotent(t *testing.T) {
	deadline := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	now := deadline.Add(time.Hour)
	snapshot := deadline

	first := plan.Effective(plan.Pro, &deadline, now)
	second := plan.Effective(plan.Pro, &deadline, now)

	assert.Equal(t, first, second)
	assert.Equal(t, snapshot, deadline)
}

func TestTrialActive(t *testing.T) {
	deadline := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	assert.True(t, plan.TrialActive(plan.Pro, &deadline, deadline))
	assert.False(t, plan.TrialActive(plan.Pro, &deadline, deadline.Add(time.Second)))
	assert.False(t, plan.TrialActive(plan.Pro, nil, deadline))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, plan.Pro, plan.Normalize(" PRO "))
	assert.Equal(t, plan.Free, plan.Normalize("free"))
	assert.Equal(t, plan.Free, plan.Normalize("enterprise"))
	assert.Equal(t, plan.Free, plan.Normalize(""))
}

func TestFeaturesFor(t *testing.T) {
	pro := plan.FeaturesFor(plan.Pro, 3)
	assert.True(t, pro.ShowAddress)
	assert.True(t, pro.ShowPixKey)
	assert.True(t, pro.Coupons)
	assert.True(t, pro.CustomTheme)
	assert.Zero(t, pro.MaxServices)

	free := plan.FeaturesFor(plan.Free, 3)
	assert.Equal(t, plan.Features{MaxServices: 3}, free)

	assert.Equal(t, plan.DefaultFreeCatalogLimit, plan.FeaturesFor(plan.Free, 0).MaxServices)
}
