package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"cleanbook/internal/domains/booking/model"
	"cleanbook/internal/domains/booking/model/dto"
	gDto "cleanbook/shared/dto"
)

func TestBookingListFilter_ToFilterGroup(t *testing.T) {
	tests := []struct {
		name   string
		filter dto.BookingListFilter
		want   []any
	}{
		{
			name:   "no filters",
			filter: dto.BookingListFilter{},
			want:   []any{},
		},
		{
			name:   "status only",
			filter: dto.BookingListFilter{Status: model.StatusPending},
			want: []any{
				gDto.Filter{Field: model.FieldStatus, Value: model.StatusPending, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			},
		},
		{
			name:   "service date range",
			filter: dto.BookingListFilter{From: "2026-10-01", To: "2026-10-31"},
			want: []any{
				gDto.Filter{
					ArgName:  "service_date_from",
					Field:    model.FieldServiceDate,
					Value:    "2026-10-01",
					Operator: gDto.FilterOperatorGreaterEq,
					Table:    model.TableName,
				},
				gDto.Filter{
					ArgName:  "service_date_to",
					Field:    model.FieldServiceDate,
					Value:    "2026-10-31",
					Operator: gDto.FilterOperatorLessEq,
					Table:    model.TableName,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := tt.filter.ToFilterGroup()

			assert.Equal(t, gDto.FilterGroupOperatorAnd, group.Operator)
			assert.Equal(t, tt.want, group.Filters)
		})
	}
}

func TestCancelBookingRequest_ReasonOrDefault(t *testing.T) {
	assert.Equal(t, dto.DefaultCancelReason, (&dto.CancelBookingRequest{}).ReasonOrDefault())
	assert.Equal(t, "이사 일정 변경", (&dto.CancelBookingRequest{Reason: "이사 일정 변경"}).ReasonOrDefault())
}
