package model

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	GroupByDay   = "day"
	GroupByWeek  = "week"
	GroupByMonth = "month"

	Period7d  = "7d"
	Period30d = "30d"
	Period90d = "90d"

	DefaultRevenueDays = 30
	TopServicesLimit   = 5
	RecentBookingLimit = 5
	TopSpendersLimit   = 10
	SignupWindowDays   = 30
)

var bucketLayouts = map[string]string{
	GroupByDay:   "2006-01-02",
	GroupByWeek:  "2006-01-02",
	GroupByMonth: "2006-01",
}

var periodDays = map[string]int{
	Period7d:  7,
	Period30d: 30,
	Period90d: 90,
}

// GroupUnit returns the date_trunc unit for groupBy, falling back to day for unknown values.
func GroupUnit(groupBy string) string {
	if _, ok := bucketLayouts[groupBy]; ok {
		return groupBy
	}

	return GroupByDay
}

// BucketLabel formats a truncated bucket start. Week buckets are labelled by their Monday.
func BucketLabel(groupBy string, bucket time.Time) string {
	return bucket.Format(bucketLayouts[GroupUnit(groupBy)])
}

// PeriodDays returns the look-back window of a booking stats period, 7 days when unknown.
func PeriodDays(period string) int {
	if days, ok := periodDays[period]; ok {
		return days
	}

	return periodDays[Period7d]
}

// Percent returns part/total as a percentage rounded to one decimal.
func Percent(part, total int) float64 {
	if total <= 0 {
		return 0
	}

	return decimal.NewFromInt(int64(part)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(total))).
		Round(1).
		InexactFloat64()
}

func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}

type Summary struct {
	Bookings  int   `db:"bookings"`
	Completed int   `db:"completed"`
	NewUsers  int   `db:"new_users"`
	Revenue   int64 `db:"revenue"`
}

type StatusCount struct {
	Status string `db:"status"`
	Count  int    `db:"count"`
}

type ServiceRevenue struct {
	ServiceID string `db:"service_id"`
	Name      string `db:"name"`
	Count     int    `db:"count"`
	Revenue   int64  `db:"revenue"`
}

type RecentBooking struct {
	ID            string    `db:"id"`
	BookingNumber string    `db:"booking_number"`
	CustomerName  string    `db:"customer_name"`
	ServiceName   string    `db:"service_name"`
	ServiceDate   time.Time `db:"service_date"`
	Status        string    `db:"status"`
	CreatedAt     time.Time `db:"created_at"`
}

type RevenueBucket struct {
	Bucket  time.Time `db:"bucket"`
	Count   int       `db:"count"`
	Revenue int64     `db:"revenue"`
}

type DailyBookings struct {
	Day       time.Time `db:"day"`
	Total     int       `db:"total"`
	Completed int       `db:"completed"`
	Cancelled int       `db:"cancelled"`
}

// SlotCount counts bookings per hour of day (0-23) or day of week (0 is Sunday).
type SlotCount struct {
	Slot  int `db:"slot"`
	Count int `db:"count"`
}

type UserSummary struct {
	Total    int `db:"total"`
	Active   int `db:"active"`
	Verified int `db:"verified"`
}

type DailyCount struct {
	Day   time.Time `db:"day"`
	Count int       `db:"count"`
}

type TopSpender struct {
	UserID       string `db:"user_id"`
	Name         string `db:"name"`
	Email        string `db:"email"`
	BookingCount int    `db:"booking_count"`
	TotalSpent   int64  `db:"total_spent"`
}

type ServiceStat struct {
	ServiceID         string  `db:"service_id"`
	Name              string  `db:"name"`
	Category          string  `db:"category"`
	IsActive          bool    `db:"is_active"`
	Popularity        int     `db:"popularity"`
	TotalBookings     int     `db:"total_bookings"`
	CompletedBookings int     `db:"completed_bookings"`
	TotalRevenue      int64   `db:"total_revenue"`
	AverageRating     float64 `db:"average_rating"`
	ReviewCount       int     `db:"review_count"`
}

type CleanerStat struct {
	ID            string  `db:"id"`
	Name          string  `db:"name"`
	Email         string  `db:"email"`
	Phone         string  `db:"phone"`
	Active        bool    `db:"active"`
	TotalJobs     int     `db:"total_jobs"`
	CompletedJobs int     `db:"completed_jobs"`
	AverageRating float64 `db:"average_rating"`
	TotalReviews  int     `db:"total_reviews"`
}

type ScheduleEntry struct {
	BookingID     string    `db:"booking_id"`
	BookingNumber string    `db:"booking_number"`
	Status        string    `db:"status"`
	ServiceName   string    `db:"service_name"`
	Duration      int       `db:"duration"`
	ServiceDate   time.Time `db:"service_date"`
	ServiceTime   string    `db:"service_time"`
	StartAt       time.Time `db:"start_at"`
	EndAt         time.Time `db:"end_at"`
	CustomerName  string    `db:"customer_name"`
	CustomerPhone string    `db:"customer_phone"`
	AddressStreet string    `db:"address_street"`
	AddressDetail string    `db:"address_detail"`
}
