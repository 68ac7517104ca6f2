package dto

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"cleanbook/infras/jwt"
	userModel "cleanbook/internal/domains/user/model"
	userDto "cleanbook/internal/domains/user/model/dto"
	"cleanbook/shared/constant"
	gModel "cleanbook/shared/model"
	"cleanbook/shared/timezone"
	"cleanbook/shared/validator"
)

type RegisterRequest struct {
	Name         string `json:"name"          validate:"required,min=2,max=50"`
	Email        string `json:"email"         validate:"required,email"`
	Password     string `json:"password"      validate:"required,min=8,password"`
	Phone        string `json:"phone"         validate:"required,phone"`
	ReferralCode string `json:"referral_code" validate:"omitempty,len=8"`
}

// ToUserModel builds an unverified customer. The email is lowercased and the phone normalised.
func (r *RegisterRequest) ToUserModel(hashedPassword, verificationDigest, referralCode string, referredBy *string) userModel.User {
	now := timezone.Now()

	return userModel.User{
		ID:                uuid.NewString(),
		Name:              strings.TrimSpace(r.Name),
		Email:             NormalizeEmail(r.Email),
		Password:          hashedPassword,
		Phone:             validator.NormalizePhone(r.Phone),
		Role:              constant.RoleCustomer,
		VerificationToken: &verificationDigest,
		ReferralCode:      referralCode,
		ReferredBy:        referredBy,
		Active:            true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  constant.ContextGuest,
			ModifiedBy: constant.ContextGuest,
		},
	}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login_at" json:"last_login_at" validate:"required"`
}

type LoginResponse struct {
	AccessToken  string               `json:"access_token"`
	RefreshToken string               `json:"refresh_token"`
	ExpiresIn    int64                `json:"expires_in"`
	User         userDto.UserResponse `json:"user"`
}

func (l *LoginResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	l.AccessToken = tokenPair.AccessToken
	l.RefreshToken = tokenPair.RefreshToken
	l.ExpiresIn = tokenPair.ExpiresIn
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

type RefreshTokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (r *RefreshTokenResponse) FromTokenPair(tokenPair *jwt.TokenPair) {
	r.AccessToken = tokenPair.AccessToken
	r.RefreshToken = tokenPair.RefreshToken
	r.ExpiresIn = tokenPair.ExpiresIn
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=8,password"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,password"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
