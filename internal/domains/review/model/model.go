package model

import (
	"time"

	"cleanbook/shared/model"
)

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID              = "id"
	FieldBookingID       = "booking_id"
	FieldUserID          = "user_id"
	FieldServiceID       = "service_id"
	FieldCleanerID       = "cleaner_id"
	FieldRating          = "rating"
	FieldCleanliness     = "cleanliness"
	FieldPunctuality     = "punctuality"
	FieldProfessionalism = "professionalism"
	FieldContent         = "content"
	FieldImages          = "images"
	FieldIsVerified      = "is_verified"
	FieldHelpfulCount    = "helpful_count"
	FieldIsHidden        = "is_hidden"
	FieldResponse        = "response"
	FieldRespondedAt     = "responded_at"
	FieldRespondedBy     = "responded_by"

	ConstraintBooking = "reviews_booking_id_key"

	// ImageDirectory is the object storage prefix for review photos.
	ImageDirectory = "reviews"
)

const (
	VoteTableName  = "review_helpful_votes"
	VoteEntityName = "review_helpful_vote"

	FieldVoteReviewID = "review_id"
	FieldVoteUserID   = "user_id"
)

// EditWindowDays is used when no edit window is configured.
const EditWindowDays = 7

type Review struct {
	ID              string                `db:"id"`
	BookingID       string                `db:"booking_id"`
	UserID          string                `db:"user_id"`
	UserName        string                `db:"user_name"    table:"users"    column:"name"`
	ServiceID       string                `db:"service_id"`
	ServiceName     string                `db:"service_name" table:"services" column:"name"`
	CleanerID       *string               `db:"cleaner_id"`
	Rating          int                   `db:"rating"`
	Cleanliness     int                   `db:"cleanliness"`
	Punctuality     int                   `db:"punctuality"`
	Professionalism int                   `db:"professionalism"`
	Content         string                `db:"content"`
	Images          model.JSONList[Image] `db:"images"`
	IsVerified      bool                  `db:"is_verified"`
	HelpfulCount    int                   `db:"helpful_count"`
	IsHidden        bool                  `db:"is_hidden"`
	Response        string                `db:"response"`
	RespondedAt     *time.Time            `db:"responded_at"`
	RespondedBy     *string               `db:"responded_by"`
	model.Metadata
}

func (Review) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = reviews.user_id LEFT JOIN services ON services.id = reviews.service_id"
}

// EditableUntil is the last instant the author may still change the review.
func (r *Review) EditableUntil(days int) time.Time {
	if days <= 0 {
		days = EditWindowDays
	}

	return r.CreatedAt.AddDate(0, 0, days)
}

type Image struct {
	URL     string `json:"url"`
	Caption string `json:"caption,omitempty"`
}

// ImageURLs lists the stored object URLs of the review photos.
func (r *Review) ImageURLs() []string {
	urls := make([]string, len(r.Images))
	for i, image := range r.Images {
		urls[i] = image.URL
	}

	return urls
}

type HelpfulVote struct {
	ReviewID  string    `db:"review_id"`
	UserID    string    `db:"user_id"`
	CreatedAt time.Time `db:"created_at"`
}
