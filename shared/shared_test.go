package shared_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bookingModel "cleanbook/internal/domains/booking/model"
	reviewModel "cleanbook/internal/domains/review/model"
	reviewDto "cleanbook/internal/domains/review/model/dto"
	"cleanbook/shared"
	"cleanbook/shared/constant"
	"cleanbook/shared/dto"
)

func TestConvertStringToBool(t *testing.T) {
	active := true
	inactive := false

	tests := []struct {
		name     string
		query    string
		expected *bool
	}{
		{name: "is_active omitted lists every service", query: "", expected: nil},
		{name: "active services", query: "true", expected: &active},
		{name: "inactive services", query: "false", expected: &inactive},
		{name: "numeric flag", query: "1", expected: &active},
		{name: "unparsable flag is ignored", query: "yes", expected: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.ConvertStringToBool(tt.query))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	rating, err := shared.ConvertStringToInt("4")
	require.NoError(t, err)
	assert.Equal(t, 4, rating)

	_, err = shared.ConvertStringToInt("four")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"four"`)
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		name     string
		total    int
		limit    int
		expected int
	}{
		{name: "no bookings yet", total: 0, limit: 10, expected: 1},
		{name: "limit missing", total: 42, limit: 0, expected: 1},
		{name: "full pages", total: 40, limit: 10, expected: 4},
		{name: "partial last page", total: 41, limit: 10, expected: 5},
		{name: "fewer reviews than a page", total: 3, limit: 20, expected: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	tests := []struct {
		name     string
		req      reviewDto.UpdateReviewRequest
		expected map[string]any
	}{
		{
			name:     "rating only",
			req:      reviewDto.UpdateReviewRequest{Rating: 3},
			expected: map[string]any{reviewModel.FieldRating: 3},
		},
		{
			name: "sub ratings and content",
			req: reviewDto.UpdateReviewRequest{
				Cleanliness:     5,
				Professionalism: 4,
				Content:         "다음에도 같은 분께 맡기고 싶어요.",
			},
			expected: map[string]any{
				reviewModel.FieldCleanliness:     5,
				reviewModel.FieldProfessionalism: 4,
				reviewModel.FieldContent:         "다음에도 같은 분께 맡기고 싶어요.",
			},
		},
		{
			name:     "images are written separately",
			req:      reviewDto.UpdateReviewRequest{Images: []reviewDto.ImageRequest{{URL: "https://cdn.example.com/reviews/a.png"}}},
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := shared.TransformFields(tt.req, "customer-1")

			assert.Equal(t, "customer-1", fields[constant.FieldModifiedBy])
			assert.IsType(t, time.Time{}, fields[constant.FieldModifiedAt])

			delete(fields, constant.FieldModifiedBy)
			delete(fields, constant.FieldModifiedAt)

			assert.Equal(t, tt.expected, fields)
		})
	}
}

func TestTransformFieldsKeepsZeroPointees(t *testing.T) {
	type cleanerAssignment struct {
		CleanerID *string `db:"cleaner_id"`
		Discount  *int64  `db:"discount"`
		Notes     *string `db:"notes"`
	}

	cleaner := "cleaner-1"
	var discount int64

	fields := shared.TransformFields(cleanerAssignment{CleanerID: &cleaner, Discount: &discount}, "admin-1")

	assert.Equal(t, &cleaner, fields["cleaner_id"])
	assert.Equal(t, &discount, fields["discount"])
	assert.NotContains(t, fields, "notes")
}

func TestFilterByID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		fieldID string
		table   string
		clause  string
	}{
		{
			name:    "booking by id",
			id:      "5f0c8a7e-3d11-4b8b-9a55-0e6f1c2d3b44",
			fieldID: bookingModel.FieldID,
			table:   bookingModel.TableName,
			clause:  "bookings.id = :id",
		},
		{
			name:    "booking by number",
			id:      "CL2610170001",
			fieldID: bookingModel.FieldBookingNumber,
			table:   bookingModel.TableName,
			clause:  "bookings.booking_number = :booking_number",
		},
		{
			name:    "review by booking",
			id:      "5f0c8a7e-3d11-4b8b-9a55-0e6f1c2d3b44",
			fieldID: reviewModel.FieldBookingID,
			table:   reviewModel.TableName,
			clause:  "reviews.booking_id = :booking_id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := shared.FilterByID(tt.id, tt.fieldID, tt.table)

			require.Len(t, filter.Filters, 1)
			assert.Equal(t, dto.Filter{
				Field:    tt.fieldID,
				Value:    tt.id,
				Operator: dto.FilterOperatorEq,
				Table:    tt.table,
			}, filter.Filters[0])

			where, args := filter.GetWhereClause()
			assert.Contains(t, where, tt.clause)
			assert.Equal(t, tt.id, args[tt.fieldID])
		})
	}
}
