package model

import (
	"time"

	"cleanbook/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID                   = "id"
	FieldName                 = "name"
	FieldEmail                = "email"
	FieldPassword             = "password"
	FieldPhone                = "phone"
	FieldRole                 = "role"
	FieldIsVerified           = "is_verified"
	FieldVerificationToken    = "verification_token"
	FieldPasswordResetToken   = "password_reset_token"
	FieldPasswordResetExpires = "password_reset_expires"
	FieldPoints               = "points"
	FieldReferralCode         = "referral_code"
	FieldReferredBy           = "referred_by"
	FieldLastLoginAt          = "last_login_at"
	FieldActive               = "active"
	FieldAverageRating        = "average_rating"
	FieldTotalReviews         = "total_reviews"

	ConstraintEmail        = "users_email_key"
	ConstraintReferralCode = "users_referral_code_key"
)

type User struct {
	ID                   string     `db:"id"`
	Name                 string     `db:"name"`
	Email                string     `db:"email"`
	Password             string     `db:"password"`
	Phone                string     `db:"phone"`
	Role                 string     `db:"role"`
	IsVerified           bool       `db:"is_verified"`
	VerificationToken    *string    `db:"verification_token"`
	PasswordResetToken   *string    `db:"password_reset_token"`
	PasswordResetExpires *time.Time `db:"password_reset_expires"`
	Points               int64      `db:"points"`
	ReferralCode         string     `db:"referral_code"`
	ReferredBy           *string    `db:"referred_by"`
	LastLoginAt          *time.Time `db:"last_login_at"`
	Active               bool       `db:"active"`
	AverageRating        float64    `db:"average_rating"`
	TotalReviews         int        `db:"total_reviews"`
	model.Metadata
}

const (
	AddressTableName  = "user_addresses"
	AddressEntityName = "address"

	FieldAddressUserID    = "user_id"
	FieldAddressIsDefault = "is_default"
)

type Address struct {
	ID        string `db:"id"`
	UserID    string `db:"user_id"`
	Label     string `db:"label"`
	Street    string `db:"street"`
	Detail    string `db:"detail"`
	ZipCode   string `db:"zip_code"`
	IsDefault bool   `db:"is_default"`
	model.Metadata
}

const (
	FavoriteTableName  = "favorite_cleaners"
	FavoriteEntityName = "favorite_cleaner"

	FieldFavoriteUserID    = "user_id"
	FieldFavoriteCleanerID = "cleaner_id"

	ConstraintFavorite = "favorite_cleaners_user_id_cleaner_id_key"
)

type FavoriteCleaner struct {
	ID            string    `db:"id"`
	UserID        string    `db:"user_id"`
	CleanerID     string    `db:"cleaner_id"`
	CleanerName   string    `db:"cleaner_name"   table:"users" column:"name"`
	CleanerPhone  string    `db:"cleaner_phone"  table:"users" column:"phone"`
	AverageRating float64   `db:"average_rating" table:"users" column:"average_rating"`
	TotalReviews  int       `db:"total_reviews"  table:"users" column:"total_reviews"`
	CreatedAt     time.Time `db:"created_at"`
}

func (FavoriteCleaner) GetJoinQuery() string {
	return "JOIN users ON users.id = favorite_cleaners.cleaner_id"
}
