package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"cleanbook/internal/domains/report/model"
)

func TestGroupUnit(t *testing.T) {
	assert.Equal(t, model.GroupByDay, model.GroupUnit(""))
	assert.Equal(t, model.GroupByDay, model.GroupUnit("year"))
	assert.Equal(t, model.GroupByWeek, model.GroupUnit(model.GroupByWeek))
	assert.Equal(t, model.GroupByMonth, model.GroupUnit(model.GroupByMonth))
}

func TestBucketLabel(t *testing.T) {
	bucket := time.Date(2026, 9, 14, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-09-14", model.BucketLabel(model.GroupByDay, bucket))
	assert.Equal(t, "2026-09-14", model.BucketLabel(model.GroupByWeek, bucket))
	assert.Equal(t, "2026-09", model.BucketLabel(model.GroupByMonth, bucket))
	assert.Equal(t, "2026-09-14", model.BucketLabel("quarter", bucket))
}

func TestPeriodDays(t *testing.T) {
	tests := map[string]int{
		model.Period7d:  7,
		model.Period30d: 30,
		model.Period90d: 90,
		"":              7,
		"1y":            7,
	}

	for period, want := range tests {
		assert.Equal(t, want, model.PeriodDays(period), period)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 0.0, model.Percent(3, 0))
	assert.Equal(t, 66.7, model.Percent(2, 3))
	assert.Equal(t, 100.0, model.Percent(5, 5))
	assert.Equal(t, 12.5, model.Percent(1, 8))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 4.3, model.Round(4.25))
	assert.Equal(t, 4.2, model.Round(4.2444))
	assert.Equal(t, 0.0, model.Round(0))
}
