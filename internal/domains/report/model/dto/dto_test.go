package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanbook/config"
	"cleanbook/internal/domains/report/model"
	"cleanbook/internal/domains/report/model/dto"
)

func TestRevenueQueryRange(t *testing.T) {
	now := time.Date(2026, 10, 17, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		query    dto.RevenueQuery
		wantFrom time.Time
		wantTo   time.Time
		wantErr  error
	}{
		{
			name:     "defaults to the last 30 days",
			wantFrom: time.Date(2026, 9, 17, 0, 0, 0, 0, time.UTC),
			wantTo:   now,
		},
		{
			name:     "explicit end date covers the whole day",
			query:    dto.RevenueQuery{StartDate: "2026-09-01", EndDate: "2026-09-30"},
			wantFrom: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			name:     "single day",
			query:    dto.RevenueQuery{StartDate: "2026-09-01", EndDate: "2026-09-01"},
			wantFrom: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
			wantTo:   time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
		},
		{
			name:    "start after end",
			query:   dto.RevenueQuery{StartDate: "2026-09-10", EndDate: "2026-09-01"},
			wantErr: dto.ErrInvalidRange,
		},
		{
			name:    "malformed date",
			query:   dto.RevenueQuery{StartDate: "09/01/2026"},
			wantErr: dto.ErrInvalidDate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			from, to, err := tt.query.Range(now)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)
			assert.True(t, tt.wantFrom.Equal(from), "from = %s", from)
			assert.True(t, tt.wantTo.Equal(to), "to = %s", to)
		})
	}
}

func TestNewPeriod(t *testing.T) {
	period := dto.NewPeriod(time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, dto.PeriodResponse{From: "2026-09-01", To: "2026-09-30"}, period)
}

func TestScheduleQueryRange(t *testing.T) {
	from, to, err := (&dto.ScheduleQuery{StartDate: "2026-10-01", EndDate: "2026-10-07"}).Range()
	require.NoError(t, err)
	assert.Equal(t, 6*24*time.Hour, to.Sub(from))

	_, _, err = (&dto.ScheduleQuery{StartDate: "2026-10-07", EndDate: "2026-10-01"}).Range()
	assert.ErrorIs(t, err, dto.ErrInvalidRange)
}

func TestRevenueStatsFromModels(t *testing.T) {
	var res dto.RevenueStatsResponse

	res.FromModels(model.GroupByMonth,
		[]model.RevenueBucket{
			{Bucket: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC), Count: 4, Revenue: 1200000},
			{Bucket: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), Count: 2, Revenue: 160000},
		},
		[]model.ServiceRevenue{{ServiceID: "svc-1", Name: "입주청소", Count: 6, Revenue: 1360000}},
	)

	assert.Equal(t, model.GroupByMonth, res.GroupBy)
	assert.Equal(t, "2026-08", res.RevenueData[0].Label)
	assert.Equal(t, int64(1360000), res.TotalRevenue)
	assert.Equal(t, 6, res.TotalBookings)
	require.Len(t, res.RevenueByService, 1)
}

func TestDashboardStatusCounts(t *testing.T) {
	var res dto.DashboardResponse

	res.FromStatusCounts([]model.StatusCount{{Status: "pending", Count: 3}, {Status: "completed", Count: 7}})

	assert.Equal(t, map[string]int{
		"pending":     3,
		"confirmed":   0,
		"in_progress": 0,
		"completed":   7,
		"cancelled":   0,
	}, res.BookingsByStatus)
}

func TestUserStatsVerificationRate(t *testing.T) {
	var res dto.UserStatsResponse

	res.FromModels(model.UserSummary{Total: 3, Active: 3, Verified: 2}, nil, nil)

	assert.Equal(t, 66.7, res.Summary.VerificationRate)
	assert.Empty(t, res.UserGrowth)
	assert.Empty(t, res.TopUsers)
}

func TestSettingsFromConfig(t *testing.T) {
	cfg := &config.Config{}
	cfg.App.Name = "청소공작소"
	cfg.Business.OpenHour = 9
	cfg.Business.CloseHour = 18
	cfg.Business.WorkDays = []int{1, 2, 3, 4, 5, 6}
	cfg.Business.MinimumCharge = 50000
	cfg.Business.CancellationFee = 10000
	cfg.Business.CancelWindowHours = 24
	cfg.External.SMTP.Enable = true

	var res dto.SettingsResponse
	res.FromConfig(cfg)

	assert.Equal(t, "09:00", res.Operation.StartTime)
	assert.Equal(t, "18:00", res.Operation.EndTime)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, res.Operation.WorkDays)
	assert.Equal(t, int64(50000), res.Pricing.MinimumCharge)
	assert.Equal(t, int64(10000), res.Pricing.CancellationFee)
	assert.Equal(t, 24, res.Policy.CancelWindowHours)
	assert.True(t, res.Notification.EmailEnabled)
	assert.False(t, res.Notification.KafkaEnabled)
}

func TestUpdateCleanerNormalize(t *testing.T) {
	active := false
	req := dto.UpdateCleanerRequest{Name: "  김청소 ", Phone: "01012345678", Active: &active}

	assert.False(t, req.IsEmpty())

	req.Normalize()

	assert.Equal(t, "김청소", req.Name)
	assert.Equal(t, "010-1234-5678", req.Phone)
	assert.True(t, (&dto.UpdateCleanerRequest{}).IsEmpty())
}
