package dto

import (
	"github.com/google/uuid"

	"cleanbook/internal/domains/user/model"
	"cleanbook/shared"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	gModel "cleanbook/shared/model"
	"cleanbook/shared/timezone"
	"cleanbook/shared/validator"
)

type UserResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Role          string  `json:"role"`
	IsVerified    bool    `json:"is_verified"`
	Points        int64   `json:"points"`
	ReferralCode  string  `json:"referral_code"`
	LastLoginAt   *string `json:"last_login_at,omitempty"`
	Active        bool    `json:"active"`
	AverageRating float64 `json:"average_rating,omitempty"`
	TotalReviews  int     `json:"total_reviews,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(m model.User) {
	r.ID = m.ID
	r.Name = m.Name
	r.Email = m.Email
	r.Phone = m.Phone
	r.Role = m.Role
	r.IsVerified = m.IsVerified
	r.Points = m.Points
	r.ReferralCode = m.ReferralCode
	r.Active = m.Active
	r.AverageRating = m.AverageRating
	r.TotalReviews = m.TotalReviews
	r.Metadata.FromModel(m.Metadata)

	if m.LastLoginAt != nil {
		lastLogin := timezone.Format(*m.LastLoginAt, constant.DateFormat)
		r.LastLoginAt = &lastLogin
	}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}

type UpdateProfileRequest struct {
	Name  string `json:"name"  db:"name"  validate:"omitempty,min=2,max=50"`
	Phone string `json:"phone" db:"phone" validate:"omitempty,phone"`
}

// Normalize rewrites the phone number to 010-XXXX-XXXX.
func (u *UpdateProfileRequest) Normalize() {
	if u.Phone != constant.Empty {
		u.Phone = validator.NormalizePhone(u.Phone)
	}
}

// UpdateUserRequest is the admin update of a user account.
type UpdateUserRequest struct {
	Role       string `json:"role"        db:"role"        validate:"omitempty,oneof=customer cleaner admin"`
	Active     *bool  `json:"active"      db:"active"`
	IsVerified *bool  `json:"is_verified" db:"is_verified"`
}

type UserListFilter struct {
	Role   string
	Active *bool
	Search string
}

// ToFilterGroup renders the admin list filter. Search matches name or email.
func (f *UserListFilter) ToFilterGroup() gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if f.Role != constant.Empty {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldRole,
			Value:    f.Role,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if f.Active != nil {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldActive,
			Value:    *f.Active,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	if f.Search != constant.Empty {
		group.Filters = append(group.Filters, gDto.FilterGroup{
			Operator: gDto.FilterGroupOperatorOr,
			Filters: []any{
				gDto.Filter{Field: model.FieldName, Value: f.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
				gDto.Filter{Field: model.FieldEmail, Value: f.Search, Operator: gDto.FilterOperatorLike, Table: model.TableName},
			},
		})
	}

	return group
}

type AddressRequest struct {
	Label     string `json:"label"      validate:"omitempty,max=50"`
	Street    string `json:"street"     validate:"required,max=255"`
	Detail    string `json:"detail"     validate:"omitempty,max=255"`
	ZipCode   string `json:"zip_code"   validate:"omitempty,max=10"`
	IsDefault bool   `json:"is_default"`
}

func (a *AddressRequest) ToModel(userID string, isDefault bool) model.Address {
	now := timezone.Now()

	return model.Address{
		ID:        uuid.NewString(),
		UserID:    userID,
		Label:     a.Label,
		Street:    a.Street,
		Detail:    a.Detail,
		ZipCode:   a.ZipCode,
		IsDefault: isDefault,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  userID,
			ModifiedBy: userID,
		},
	}
}

type UpdateAddressRequest struct {
	Label     string `json:"label"      db:"label"      validate:"omitempty,max=50"`
	Street    string `json:"street"     db:"street"     validate:"omitempty,max=255"`
	Detail    string `json:"detail"     db:"detail"     validate:"omitempty,max=255"`
	ZipCode   string `json:"zip_code"   db:"zip_code"   validate:"omitempty,max=10"`
	IsDefault bool   `json:"is_default" db:"is_default"`
}

type AddressResponse struct {
	ID        string `json:"id"`
	Label     string `json:"label"`
	Street    string `json:"street"`
	Detail    string `json:"detail"`
	ZipCode   string `json:"zip_code"`
	IsDefault bool   `json:"is_default"`
}

func (r *AddressResponse) FromModel(m model.Address) {
	r.ID = m.ID
	r.Label = m.Label
	r.Street = m.Street
	r.Detail = m.Detail
	r.ZipCode = m.ZipCode
	r.IsDefault = m.IsDefault
}

func AddressesFromModels(models []model.Address) []AddressResponse {
	res := make([]AddressResponse, len(models))
	for i, mod := range models {
		res[i].FromModel(mod)
	}

	return res
}

func NewFavorite(userID, cleanerID string) model.FavoriteCleaner {
	return model.FavoriteCleaner{
		ID:        uuid.NewString(),
		UserID:    userID,
		CleanerID: cleanerID,
		CreatedAt: timezone.Now(),
	}
}

type FavoriteResponse struct {
	CleanerID     string  `json:"cleaner_id"`
	Name          string  `json:"name"`
	Phone         string  `json:"phone"`
	AverageRating float64 `json:"average_rating"`
	TotalReviews  int     `json:"total_reviews"`
	AddedAt       string  `json:"added_at"`
}

func FavoritesFromModels(models []model.FavoriteCleaner) []FavoriteResponse {
	res := make([]FavoriteResponse, len(models))
	for i, mod := range models {
		res[i] = FavoriteResponse{
			CleanerID:     mod.CleanerID,
			Name:          mod.CleanerName,
			Phone:         mod.CleanerPhone,
			AverageRating: mod.AverageRating,
			TotalReviews:  mod.TotalReviews,
			AddedAt:       timezone.Format(mod.CreatedAt, constant.DateFormat),
		}
	}

	return res
}

type PointsResponse struct {
	Points int64 `json:"points"`
}

type ReferralResponse struct {
	ReferralCode  string `json:"referral_code"`
	ReferredCount int    `json:"referred_count"`
	EarnedPoints  int64  `json:"earned_points"`
}
