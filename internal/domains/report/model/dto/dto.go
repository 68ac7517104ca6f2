package dto

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cleanbook/config"
	bookingModel "cleanbook/internal/domains/booking/model"
	"cleanbook/internal/domains/report/model"
	userModel "cleanbook/internal/domains/user/model"
	"cleanbook/shared/constant"
	gModel "cleanbook/shared/model"
	"cleanbook/shared/timezone"
	"cleanbook/shared/validator"
)

var (
	ErrInvalidRange = errors.New("start_date must not be after end_date")
	ErrInvalidDate  = errors.New("dates must use the YYYY-MM-DD format")
)

type PeriodResponse struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// NewPeriod renders a half-open range as inclusive calendar dates.
func NewPeriod(from, to time.Time) PeriodResponse {
	return PeriodResponse{
		From: timezone.Format(from, constant.DayFormat),
		To:   timezone.Format(to.Add(-time.Nanosecond), constant.DayFormat),
	}
}

type SummaryResponse struct {
	Bookings  int   `json:"bookings"`
	Completed int   `json:"completed,omitempty"`
	NewUsers  int   `json:"new_users"`
	Revenue   int64 `json:"revenue"`
}

func (s *SummaryResponse) FromModel(m model.Summary) {
	s.Bookings = m.Bookings
	s.Completed = m.Completed
	s.NewUsers = m.NewUsers
	s.Revenue = m.Revenue
}

type ServiceRevenueResponse struct {
	ServiceID string `json:"service_id"`
	Name      string `json:"name"`
	Count     int    `json:"count"`
	Revenue   int64  `json:"revenue"`
}

func FromServiceRevenues(models []model.ServiceRevenue) []ServiceRevenueResponse {
	res := make([]ServiceRevenueResponse, len(models))
	for i, m := range models {
		res[i] = ServiceRevenueResponse{ServiceID: m.ServiceID, Name: m.Name, Count: m.Count, Revenue: m.Revenue}
	}

	return res
}

type RecentBookingResponse struct {
	ID            string `json:"id"`
	BookingNumber string `json:"booking_number"`
	CustomerName  string `json:"customer_name"`
	ServiceName   string `json:"service_name"`
	ServiceDate   string `json:"service_date"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

type DashboardResponse struct {
	Today            SummaryResponse          `json:"today"`
	Monthly          SummaryResponse          `json:"monthly"`
	BookingsByStatus map[string]int           `json:"bookings_by_status"`
	PopularServices  []ServiceRevenueResponse `json:"popular_services"`
	RecentBookings   []RecentBookingResponse  `json:"recent_bookings"`
	AverageRating    float64                  `json:"average_rating"`
}

func (d *DashboardResponse) FromStatusCounts(counts []model.StatusCount) {
	d.BookingsByStatus = map[string]int{
		bookingModel.StatusPending:    0,
		bookingModel.StatusConfirmed:  0,
		bookingModel.StatusInProgress: 0,
		bookingModel.StatusCompleted:  0,
		bookingModel.StatusCancelled:  0,
	}

	for _, c := range counts {
		d.BookingsByStatus[c.Status] = c.Count
	}
}

func (d *DashboardResponse) FromRecentBookings(models []model.RecentBooking) {
	d.RecentBookings = make([]RecentBookingResponse, len(models))

	for i, m := range models {
		d.RecentBookings[i] = RecentBookingResponse{
			ID:            m.ID,
			BookingNumber: m.BookingNumber,
			CustomerName:  m.CustomerName,
			ServiceName:   m.ServiceName,
			ServiceDate:   m.ServiceDate.Format(constant.DayFormat),
			Status:        m.Status,
			CreatedAt:     timezone.Format(m.CreatedAt, constant.DateFormat),
		}
	}
}

type RevenueQuery struct {
	StartDate string `json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"omitempty,datetime=2006-01-02"`
	GroupBy   string `json:"group_by"   validate:"omitempty,oneof=day week month"`
}

// Range resolves the query into a half-open range. The default covers the last 30 days up to now;
// an explicit end date includes that whole day.
func (q *RevenueQuery) Range(now time.Time) (from, to time.Time, err error) {
	from = timezone.StartOfDay(now).AddDate(0, 0, -model.DefaultRevenueDays)
	to = now

	if q.StartDate != constant.Empty {
		if from, err = timezone.Parse(constant.DayFormat, q.StartDate); err != nil {
			return from, to, ErrInvalidDate
		}
	}

	if q.EndDate != constant.Empty {
		end, err := timezone.Parse(constant.DayFormat, q.EndDate)
		if err != nil {
			return from, to, ErrInvalidDate
		}

		to = end.AddDate(0, 0, 1)
	}

	if !from.Before(to) {
		return from, to, ErrInvalidRange
	}

	return from, to, nil
}

type RevenueBucketResponse struct {
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Revenue int64  `json:"revenue"`
}

type RevenueStatsResponse struct {
	Period           PeriodResponse           `json:"period"`
	GroupBy          string                   `json:"group_by"`
	RevenueData      []RevenueBucketResponse  `json:"revenue_data"`
	RevenueByService []ServiceRevenueResponse `json:"revenue_by_service"`
	TotalRevenue     int64                    `json:"total_revenue"`
	TotalBookings    int                      `json:"total_bookings"`
}

func (r *RevenueStatsResponse) FromModels(groupBy string, buckets []model.RevenueBucket, services []model.ServiceRevenue) {
	r.GroupBy = model.GroupUnit(groupBy)
	r.RevenueData = make([]RevenueBucketResponse, len(buckets))

	for i, b := range buckets {
		r.RevenueData[i] = RevenueBucketResponse{Label: model.BucketLabel(groupBy, b.Bucket), Count: b.Count, Revenue: b.Revenue}
		r.TotalRevenue += b.Revenue
		r.TotalBookings += b.Count
	}

	r.RevenueByService = FromServiceRevenues(services)
}

type ExportFile struct {
	FileName    string
	ContentType string
	Data        []byte
}

type DailyBookingsResponse struct {
	Date      string `json:"date"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Cancelled int    `json:"cancelled"`
}

type SlotCountResponse struct {
	Slot  int `json:"slot"`
	Count int `json:"count"`
}

func FromSlotCounts(models []model.SlotCount) []SlotCountResponse {
	res := make([]SlotCountResponse, len(models))
	for i, m := range models {
		res[i] = SlotCountResponse{Slot: m.Slot, Count: m.Count}
	}

	return res
}

type BookingStatsResponse struct {
	Period              PeriodResponse          `json:"period"`
	DailyBookings       []DailyBookingsResponse `json:"daily_bookings"`
	BookingsByHour      []SlotCountResponse     `json:"bookings_by_hour"`
	BookingsByDayOfWeek []SlotCountResponse     `json:"bookings_by_day_of_week"`
}

func (b *BookingStatsResponse) FromDailyBookings(models []model.DailyBookings) {
	b.DailyBookings = make([]DailyBookingsResponse, len(models))

	for i, m := range models {
		b.DailyBookings[i] = DailyBookingsResponse{
			Date:      m.Day.Format(constant.DayFormat),
			Total:     m.Total,
			Completed: m.Completed,
			Cancelled: m.Cancelled,
		}
	}
}

type UserSummaryResponse struct {
	Total            int     `json:"total"`
	Active           int     `json:"active"`
	Verified         int     `json:"verified"`
	VerificationRate float64 `json:"verification_rate"`
}

type DailyCountResponse struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

type TopSpenderResponse struct {
	UserID       string `json:"user_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	BookingCount int    `json:"booking_count"`
	TotalSpent   int64  `json:"total_spent"`
}

type UserStatsResponse struct {
	Summary    UserSummaryResponse  `json:"summary"`
	UserGrowth []DailyCountResponse `json:"user_growth"`
	TopUsers   []TopSpenderResponse `json:"top_users"`
}

func (u *UserStatsResponse) FromModels(summary model.UserSummary, growth []model.DailyCount, top []model.TopSpender) {
	u.Summary = UserSummaryResponse{
		Total:            summary.Total,
		Active:           summary.Active,
		Verified:         summary.Verified,
		VerificationRate: model.Percent(summary.Verified, summary.Total),
	}

	u.UserGrowth = make([]DailyCountResponse, len(growth))
	for i, g := range growth {
		u.UserGrowth[i] = DailyCountResponse{Date: g.Day.Format(constant.DayFormat), Count: g.Count}
	}

	u.TopUsers = make([]TopSpenderResponse, len(top))
	for i, t := range top {
		u.TopUsers[i] = TopSpenderResponse{
			UserID:       t.UserID,
			Name:         t.Name,
			Email:        t.Email,
			BookingCount: t.BookingCount,
			TotalSpent:   t.TotalSpent,
		}
	}
}

type ServiceStatResponse struct {
	ServiceID         string  `json:"service_id"`
	Name              string  `json:"name"`
	Category          string  `json:"category"`
	IsActive          bool    `json:"is_active"`
	Popularity        int     `json:"popularity"`
	TotalBookings     int     `json:"total_bookings"`
	CompletedBookings int     `json:"completed_bookings"`
	TotalRevenue      int64   `json:"total_revenue"`
	AverageRating     float64 `json:"average_rating"`
	ReviewCount       int     `json:"review_count"`
}

type ServiceStatsResponse struct {
	Services []ServiceStatResponse `json:"services"`
}

func (s *ServiceStatsResponse) FromModels(models []model.ServiceStat) {
	s.Services = make([]ServiceStatResponse, len(models))

	for i, m := range models {
		s.Services[i] = ServiceStatResponse{
			ServiceID:         m.ServiceID,
			Name:              m.Name,
			Category:          m.Category,
			IsActive:          m.IsActive,
			Popularity:        m.Popularity,
			TotalBookings:     m.TotalBookings,
			CompletedBookings: m.CompletedBookings,
			TotalRevenue:      m.TotalRevenue,
			AverageRating:     model.Round(m.AverageRating),
			ReviewCount:       m.ReviewCount,
		}
	}
}

type CleanerResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Active        bool    `json:"active"`
	TotalJobs     int     `json:"total_jobs"`
	CompletedJobs int     `json:"completed_jobs"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
}

type CleanersResponse struct {
	Cleaners []CleanerResponse `json:"cleaners"`
}

func (c *CleanersResponse) FromModels(models []model.CleanerStat) {
	c.Cleaners = make([]CleanerResponse, len(models))

	for i, m := range models {
		c.Cleaners[i] = CleanerResponse{
			ID:            m.ID,
			Name:          m.Name,
			Email:         m.Email,
			Phone:         m.Phone,
			Active:        m.Active,
			TotalJobs:     m.TotalJobs,
			CompletedJobs: m.CompletedJobs,
			AverageRating: model.Round(m.AverageRating),
			TotalReviews:  m.TotalReviews,
		}
	}
}

type CreateCleanerRequest struct {
	Name     string `json:"name"     validate:"required,min=2,max=50"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,password"`
	Phone    string `json:"phone"    validate:"required,phone"`
}

// ToUserModel builds a verified, active cleaner account created by an admin.
func (c *CreateCleanerRequest) ToUserModel(hashedPassword, referralCode, createdBy string) userModel.User {
	now := timezone.Now()

	return userModel.User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(c.Name),
		Email:        strings.ToLower(strings.TrimSpace(c.Email)),
		Password:     hashedPassword,
		Phone:        validator.NormalizePhone(c.Phone),
		Role:         constant.RoleCleaner,
		IsVerified:   true,
		ReferralCode: referralCode,
		Active:       true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  createdBy,
			ModifiedBy: createdBy,
		},
	}
}

type UpdateCleanerRequest struct {
	Name   string `db:"name"   json:"name"   validate:"omitempty,min=2,max=50"`
	Phone  string `db:"phone"  json:"phone"  validate:"omitempty,phone"`
	Active *bool  `db:"active" json:"active"`
}

func (u *UpdateCleanerRequest) IsEmpty() bool {
	return u.Name == constant.Empty && u.Phone == constant.Empty && u.Active == nil
}

// Normalize trims the name and rewrites the phone into its canonical form.
func (u *UpdateCleanerRequest) Normalize() {
	u.Name = strings.TrimSpace(u.Name)

	if u.Phone != constant.Empty {
		u.Phone = validator.NormalizePhone(u.Phone)
	}
}

type ScheduleQuery struct {
	StartDate string `json:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"end_date"   validate:"required,datetime=2006-01-02"`
}

// Range returns both dates, inclusive.
func (q *ScheduleQuery) Range() (from, to time.Time, err error) {
	if from, err = timezone.Parse(constant.DayFormat, q.StartDate); err != nil {
		return from, to, ErrInvalidDate
	}

	if to, err = timezone.Parse(constant.DayFormat, q.EndDate); err != nil {
		return from, to, ErrInvalidDate
	}

	if from.After(to) {
		return from, to, ErrInvalidRange
	}

	return from, to, nil
}

type ScheduleEntryResponse struct {
	BookingID     string `json:"booking_id"`
	BookingNumber string `json:"booking_number"`
	Status        string `json:"status"`
	ServiceName   string `json:"service_name"`
	Duration      int    `json:"duration"`
	ServiceDate   string `json:"service_date"`
	ServiceTime   string `json:"service_time"`
	StartAt       string `json:"start_at"`
	EndAt         string `json:"end_at"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	Address       string `json:"address"`
}

type ScheduleResponse struct {
	CleanerID string                  `json:"cleaner_id"`
	Period    PeriodResponse          `json:"period"`
	Schedule  []ScheduleEntryResponse `json:"schedule"`
}

func (s *ScheduleResponse) FromModels(models []model.ScheduleEntry) {
	s.Schedule = make([]ScheduleEntryResponse, len(models))

	for i, m := range models {
		s.Schedule[i] = ScheduleEntryResponse{
			BookingID:     m.BookingID,
			BookingNumber: m.BookingNumber,
			Status:        m.Status,
			ServiceName:   m.ServiceName,
			Duration:      m.Duration,
			ServiceDate:   m.ServiceDate.Format(constant.DayFormat),
			ServiceTime:   m.ServiceTime,
			StartAt:       timezone.Format(m.StartAt, constant.DateFormat),
			EndAt:         timezone.Format(m.EndAt, constant.DateFormat),
			CustomerName:  m.CustomerName,
			CustomerPhone: m.CustomerPhone,
			Address:       strings.TrimSpace(m.AddressStreet + " " + m.AddressDetail),
		}
	}
}

type OperationSettings struct {
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	WorkDays  []int  `json:"work_days"`
}

type PricingSettings struct {
	MinimumCharge   int64 `json:"minimum_charge"`
	CancellationFee int64 `json:"cancellation_fee"`
}

type PolicySettings struct {
	CancelWindowHours int   `json:"cancel_window_hours"`
	ReviewEditDays    int   `json:"review_edit_days"`
	ReferralBonus     int64 `json:"referral_bonus"`
	DefaultDuration   int   `json:"default_duration"`
}

type NotificationSettings struct {
	EmailEnabled bool `json:"email_enabled"`
	KafkaEnabled bool `json:"kafka_enabled"`
}

type SettingsResponse struct {
	Name         string               `json:"name"`
	Timezone     string               `json:"timezone"`
	Operation    OperationSettings    `json:"operation"`
	Pricing      PricingSettings      `json:"pricing"`
	Policy       PolicySettings       `json:"policy"`
	Notification NotificationSettings `json:"notification"`
}

func (s *SettingsResponse) FromConfig(cfg *config.Config) {
	business := cfg.Business

	s.Name = cfg.App.Name
	s.Timezone = timezone.GetLocation().String()
	s.Operation = OperationSettings{
		StartTime: hour(business.OpenHour),
		EndTime:   hour(business.CloseHour),
		WorkDays:  business.WorkDays,
	}
	s.Pricing = PricingSettings{
		MinimumCharge:   business.MinimumCharge,
		CancellationFee: business.CancellationFee,
	}
	s.Policy = PolicySettings{
		CancelWindowHours: business.CancelWindowHours,
		ReviewEditDays:    business.ReviewEditDays,
		ReferralBonus:     business.ReferralBonus,
		DefaultDuration:   business.DefaultDuration,
	}
	s.Notification = NotificationSettings{
		EmailEnabled: cfg.External.SMTP.Enable,
		KafkaEnabled: cfg.Kafka.Enable,
	}
}

func hour(h int) string {
	return time.Date(0, 1, 1, h, 0, 0, 0, time.UTC).Format("15:04")
}
