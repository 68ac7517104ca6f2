package permissions_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cleanbook/permissions"
	"cleanbook/shared/constant"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.NotEmpty(t, data.Endpoints)
	assert.NotEmpty(t, data.Operations)
}

func TestFindPermissions(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	guest := data.FindPermissions("/v1/bookings/guest", http.MethodPost)
	assert.True(t, guest.Skip)

	status := data.FindPermissions("/v1/bookings/{id}/status", http.MethodPatch)
	assert.ElementsMatch(t, []string{constant.RoleAdmin, constant.RoleCleaner}, status.Roles)

	reviews := data.FindPermissions("/v1/reviews", http.MethodGet)
	assert.True(t, reviews.Optional)

	webhook := data.FindPermissions("/v1/payments/webhook/toss", http.MethodPost)
	assert.True(t, webhook.Skip)

	unknown := data.FindPermissions("/v1/unknown", http.MethodGet)
	assert.Equal(t, permissions.Permission{}, unknown)
}

func TestAllows(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	tests := []struct {
		name     string
		op       string
		role     string
		isOwner  bool
		expected bool
	}{
		{name: "owner cancels own booking", op: permissions.OpBookingCancel, role: constant.RoleCustomer, isOwner: true, expected: true},
		{name: "customer cancels foreign booking", op: permissions.OpBookingCancel, role: constant.RoleCustomer, expected: false},
		{name: "admin cancels any booking", op: permissions.OpBookingCancel, role: constant.RoleAdmin, expected: true},
		{name: "cleaner changes status", op: permissions.OpBookingStatus, role: constant.RoleCleaner, expected: true},
		{name: "customer cannot change status even as owner", op: permissions.OpBookingStatus, role: constant.RoleCustomer, isOwner: true, expected: false},
		{name: "admin cannot request payment for others", op: permissions.OpPaymentRequest, role: constant.RoleAdmin, expected: false},
		{name: "owner requests payment", op: permissions.OpPaymentRequest, role: constant.RoleCustomer, isOwner: true, expected: true},
		{name: "admin reads hidden review", op: permissions.OpReviewReadHidden, role: constant.RoleAdmin, expected: true},
		{name: "guest reads hidden review", op: permissions.OpReviewReadHidden, role: "", expected: false},
		{name: "unknown operation", op: "booking.delete", role: constant.RoleAdmin, expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, data.Allows(tt.op, tt.role, tt.isOwner))
		})
	}
}

func TestAllowsNilData(t *testing.T) {
	var data *permissions.PermissionData

	assert.False(t, data.Allows(permissions.OpBookingRead, constant.RoleAdmin, true))
}
