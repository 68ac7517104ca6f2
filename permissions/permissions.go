package permissions

import (
	_ "embed"
	"encoding/json"
	"slices"

	"github.com/rs/zerolog/log"

	"cleanbook/shared/constant"
)

//go:embed permissions.json
var permissionsData []byte

const (
	OpBookingRead   = "booking.read"
	OpBookingUpdate = "booking.update"
	OpBookingCancel = "booking.cancel"
	OpBookingStatus = "booking.status"
	OpBookingAssign = "booking.assign"

	OpPaymentRequest = "payment.request"
	OpPaymentCancel  = "payment.cancel"
	OpPaymentRead    = "payment.read"

	OpReviewCreate     = "review.create"
	OpReviewUpdate     = "review.update"
	OpReviewDelete     = "review.delete"
	OpReviewReadHidden = "review.read_hidden"

	OpAddressManage = "address.manage"
)

// Permission is the policy of one (method, route pattern) pair.
type Permission struct {
	Roles    []string `json:"roles"`
	Path     string   `json:"path"`
	Method   string   `json:"method"`
	Skip     bool     `json:"skip"`
	Optional bool     `json:"optional"`
}

type PermissionData struct {
	Endpoints  []Permission        `json:"endpoints"`
	Operations map[string][]string `json:"operations"`
	Skip       bool                `json:"skip"`
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	idx := slices.IndexFunc(r.Endpoints, func(rp Permission) bool {
		return rp.Path == path && rp.Method == method
	})

	if idx == -1 {
		return Permission{}
	}

	return r.Endpoints[idx]
}

// Allows reports whether role may perform op. The pseudo role "owner" grants
// access when the caller owns the resource. Unknown operations are denied.
func (r *PermissionData) Allows(op, role string, isOwner bool) bool {
	if r == nil {
		return false
	}

	roles, ok := r.Operations[op]
	if !ok {
		return false
	}

	if role != "" && slices.Contains(roles, role) {
		return true
	}

	return isOwner && slices.Contains(roles, constant.RoleOwner)
}

func Get() *PermissionData {
	var permissions PermissionData

	err := json.Unmarshal(permissionsData, &permissions)
	if err != nil {
		log.Err(err).Msg("Failed to decode embedded permissions")

		return nil
	}

	log.Info().
		Int("endpoints", len(permissions.Endpoints)).
		Int("operations", len(permissions.Operations)).
		Msg("Successfully loaded embedded permissions")

	return &permissions
}
