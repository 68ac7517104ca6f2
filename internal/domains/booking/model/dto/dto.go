package dto

import (
	"time"

	"github.com/google/uuid"

	"cleanbook/internal/domains/booking/model"
	catalogModel "cleanbook/internal/domains/catalog/model"
	"cleanbook/shared"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	gModel "cleanbook/shared/model"
	"cleanbook/shared/timezone"
)

const DefaultCancelReason = "customer request"

type AddressRequest struct {
	Street  string `json:"street"   validate:"required,max=255"`
	Detail  string `json:"detail"   validate:"omitempty,max=255"`
	ZipCode string `json:"zip_code" validate:"omitempty,max=10"`
}

type CreateBookingRequest struct {
	ServiceID       string         `json:"service_id"       validate:"required,uuid"`
	ServiceDate     string         `json:"service_date"     validate:"required,notpast"`
	ServiceTime     string         `json:"service_time"     validate:"required,hhmm"`
	Address         AddressRequest `json:"address"          validate:"required"`
	Size            float64        `json:"size"             validate:"omitempty,min=0"`
	Options         []string       `json:"options"          validate:"omitempty,dive,required"`
	SpecialRequests string         `json:"special_requests" validate:"omitempty,max=500"`
	PaymentMethod   string         `json:"payment_method"   validate:"required,oneof=card bank_transfer cash kakao_pay toss_pay"`
}

type CreateGuestBookingRequest struct {
	CreateBookingRequest
	GuestName  string `json:"guest_name"  validate:"required,min=2,max=50"`
	GuestPhone string `json:"guest_phone" validate:"required,phone"`
	GuestEmail string `json:"guest_email" validate:"required,email"`
}

// ToModel builds a pending booking with its price breakdown recalculated.
func (c *CreateBookingRequest) ToModel(actor string, userID *string, service catalogModel.Service, schedule model.Interval, options []model.SelectedOption) model.Booking {
	now := timezone.Now()

	booking := model.Booking{
		ID:              uuid.NewString(),
		UserID:          userID,
		ServiceID:       service.ID,
		ServiceName:     service.Name,
		Status:          model.StatusPending,
		ServiceDate:     timezone.StartOfDay(schedule.Start),
		ServiceTime:     c.ServiceTime,
		StartAt:         schedule.Start,
		EndAt:           schedule.End,
		Duration:        int(schedule.End.Sub(schedule.Start) / time.Minute),
		AddressStreet:   c.Address.Street,
		AddressDetail:   c.Address.Detail,
		AddressZipCode:  c.Address.ZipCode,
		Size:            c.Size,
		Options:         options,
		SpecialRequests: c.SpecialRequests,
		PaymentMethod:   c.PaymentMethod,
		PaymentStatus:   model.PaymentPending,
		Notes:           model.Notes{},
		Pricing: model.Pricing{
			BasePrice: model.BasePrice(service.BasePrice, service.PriceUnit, c.Size),
		},
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  actor,
			ModifiedBy: actor,
		},
	}

	booking.Pricing.Recalculate(options)

	return booking
}

type UpdateBookingRequest struct {
	ServiceDate     string          `json:"service_date"     validate:"omitempty,notpast"`
	ServiceTime     string          `json:"service_time"     validate:"omitempty,hhmm"`
	Address         *AddressRequest `json:"address"          validate:"omitempty"`
	Size            *float64        `json:"size"             validate:"omitempty,min=0"`
	Options         []string        `json:"options"          validate:"omitempty,dive,required"`
	SpecialRequests *string         `json:"special_requests" validate:"omitempty,max=500"`
}

func (u *UpdateBookingRequest) IsEmpty() bool {
	return u.ServiceDate == "" && u.ServiceTime == "" && u.Address == nil && u.Size == nil &&
		u.Options == nil && u.SpecialRequests == nil
}

func (u *UpdateBookingRequest) ChangesSchedule() bool {
	return u.ServiceDate != "" || u.ServiceTime != ""
}

func (u *UpdateBookingRequest) ChangesPricing() bool {
	return u.Options != nil || u.Size != nil
}

type CancelBookingRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=500"`
}

func (c *CancelBookingRequest) ReasonOrDefault() string {
	if c.Reason == constant.Empty {
		return DefaultCancelReason
	}

	return c.Reason
}

type UpdateStatusRequest struct {
	Status    string `json:"status"     validate:"required,oneof=pending confirmed in_progress completed cancelled"`
	Note      string `json:"note"       validate:"omitempty,max=500"`
	CleanerID string `json:"cleaner_id" validate:"omitempty,uuid"`
}

type GuestResponse struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

type AddressResponse struct {
	Street  string `json:"street"`
	Detail  string `json:"detail"`
	ZipCode string `json:"zip_code"`
}

type PaymentResponse struct {
	Method        string  `json:"method"`
	Status        string  `json:"status"`
	TransactionID string  `json:"transaction_id,omitempty"`
	PaidAt        *string `json:"paid_at,omitempty"`
}

type BookingResponse struct {
	ID              string                 `json:"id"`
	BookingNumber   string                 `json:"booking_number"`
	UserID          *string                `json:"user_id,omitempty"`
	Guest           *GuestResponse         `json:"guest,omitempty"`
	ServiceID       string                 `json:"service_id"`
	ServiceName     string                 `json:"service_name"`
	CleanerID       *string                `json:"cleaner_id,omitempty"`
	Status          string                 `json:"status"`
	ServiceDate     string                 `json:"service_date"`
	ServiceTime     string                 `json:"service_time"`
	StartAt         string                 `json:"start_at"`
	EndAt           string                 `json:"end_at"`
	Duration        int                    `json:"duration"`
	Address         AddressResponse        `json:"address"`
	Size            float64                `json:"size"`
	Options         []model.SelectedOption `json:"options"`
	SpecialRequests string                 `json:"special_requests,omitempty"`
	Pricing         model.Pricing          `json:"pricing"`
	Payment         PaymentResponse        `json:"payment"`
	ReviewID        *string                `json:"review_id,omitempty"`
	CancelledAt     *string                `json:"cancelled_at,omitempty"`
	CancelReason    string                 `json:"cancel_reason,omitempty"`
	CompletedAt     *string                `json:"completed_at,omitempty"`
	Notes           []model.Note           `json:"notes"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.BookingNumber = m.BookingNumber
	r.UserID = m.UserID
	r.ServiceID = m.ServiceID
	r.ServiceName = m.ServiceName
	r.CleanerID = m.CleanerID
	r.Status = m.Status
	r.ServiceDate = timezone.Format(m.ServiceDate, constant.DayFormat)
	r.ServiceTime = m.ServiceTime
	r.StartAt = timezone.Format(m.StartAt, constant.DateFormat)
	r.EndAt = timezone.Format(m.EndAt, constant.DateFormat)
	r.Duration = m.Duration
	r.Address = AddressResponse{Street: m.AddressStreet, Detail: m.AddressDetail, ZipCode: m.AddressZipCode}
	r.Size = m.Size
	r.Options = m.Options
	r.SpecialRequests = m.SpecialRequests
	r.Pricing = m.Pricing
	r.Payment = PaymentResponse{
		Method:        m.PaymentMethod,
		Status:        m.PaymentStatus,
		TransactionID: m.PaymentTransactionID,
		PaidAt:        formatOptional(m.PaidAt),
	}
	r.ReviewID = m.ReviewID
	r.CancelledAt = formatOptional(m.CancelledAt)
	r.CancelReason = m.CancelReason
	r.CompletedAt = formatOptional(m.CompletedAt)
	r.Notes = m.Notes
	r.Metadata.FromModel(m.Metadata)

	if m.UserID == nil {
		r.Guest = &GuestResponse{Name: m.GuestName, Phone: m.GuestPhone, Email: m.GuestEmail}
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingListFilter is the admin list filter. From and To bound the service date, inclusive.
type BookingListFilter struct {
	Status    string `validate:"omitempty,oneof=pending confirmed in_progress completed cancelled"`
	UserID    string `validate:"omitempty,uuid"`
	CleanerID string `validate:"omitempty,uuid"`
	From      string `validate:"omitempty,datetime=2006-01-02"`
	To        string `validate:"omitempty,datetime=2006-01-02"`
}

func (f *BookingListFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd, Filters: []any{}}

	eq := []struct {
		field string
		value string
	}{
		{model.FieldStatus, f.Status},
		{model.FieldUserID, f.UserID},
		{model.FieldCleanerID, f.CleanerID},
	}

	for _, e := range eq {
		if e.value == constant.Empty {
			continue
		}

		group.Filters = append(group.Filters, gDto.Filter{
			Field:    e.field,
			Value:    e.value,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if f.From != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  "service_date_from",
			Field:    model.FieldServiceDate,
			Value:    f.From,
			Operator: gDto.FilterOperatorGreaterEq,
			Table:    model.TableName,
		})
	}

	if f.To != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  "service_date_to",
			Field:    model.FieldServiceDate,
			Value:    f.To,
			Operator: gDto.FilterOperatorLessEq,
			Table:    model.TableName,
		})
	}

	return group
}

type AvailableSlotsResponse struct {
	Date      string       `json:"date"`
	ServiceID string       `json:"service_id,omitempty"`
	Duration  int          `json:"duration"`
	Slots     []model.Slot `json:"slots"`
}

type CheckAvailabilityRequest struct {
	Date      string `json:"date"       validate:"required,datetime=2006-01-02"`
	Time      string `json:"time"       validate:"required,hhmm"`
	ServiceID string `json:"service_id" validate:"required,uuid"`
}

type CheckAvailabilityResponse struct {
	Date      string `json:"date"`
	Time      string `json:"time"`
	Duration  int    `json:"duration"`
	Available bool   `json:"available"`
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}
