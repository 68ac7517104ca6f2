package dto

import (
	"mime/multipart"
	"time"

	"github.com/google/uuid"

	bookingModel "cleanbook/internal/domains/booking/model"
	"cleanbook/internal/domains/review/model"
	"cleanbook/shared"
	"cleanbook/shared/constant"
	gDto "cleanbook/shared/dto"
	gModel "cleanbook/shared/model"
	"cleanbook/shared/timezone"
)

type ImageRequest struct {
	URL     string `json:"url"     validate:"required,url|datauri"`
	Caption string `json:"caption" validate:"omitempty,max=100"`
}

type CreateReviewRequest struct {
	BookingID       string         `json:"booking_id"      validate:"required,uuid"`
	Rating          int            `json:"rating"          validate:"required,min=1,max=5"`
	Cleanliness     int            `json:"cleanliness"     validate:"omitempty,min=1,max=5"`
	Punctuality     int            `json:"punctuality"     validate:"omitempty,min=1,max=5"`
	Professionalism int            `json:"professionalism" validate:"omitempty,min=1,max=5"`
	Content         string         `json:"content"         validate:"required,min=10,max=500"`
	Images          []ImageRequest `json:"images"          validate:"omitempty,max=5,dive"`
}

// ToModel builds the review. A booking paid through the gateway marks the review as verified.
func (c *CreateReviewRequest) ToModel(user string, booking bookingModel.Booking, images []model.Image) model.Review {
	now := timezone.Now()

	return model.Review{
		ID:              uuid.NewString(),
		BookingID:       booking.ID,
		UserID:          user,
		ServiceID:       booking.ServiceID,
		CleanerID:       booking.CleanerID,
		Rating:          c.Rating,
		Cleanliness:     c.Cleanliness,
		Punctuality:     c.Punctuality,
		Professionalism: c.Professionalism,
		Content:         c.Content,
		Images:          images,
		IsVerified:      booking.PaymentStatus == bookingModel.PaymentCompleted,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateReviewRequest struct {
	Rating          int            `db:"rating"          json:"rating"          validate:"omitempty,min=1,max=5"`
	Cleanliness     int            `db:"cleanliness"     json:"cleanliness"     validate:"omitempty,min=1,max=5"`
	Punctuality     int            `db:"punctuality"     json:"punctuality"     validate:"omitempty,min=1,max=5"`
	Professionalism int            `db:"professionalism" json:"professionalism" validate:"omitempty,min=1,max=5"`
	Content         string         `db:"content"         json:"content"         validate:"omitempty,min=10,max=500"`
	Images          []ImageRequest `db:"-"               json:"images"          validate:"omitempty,max=5,dive"`
}

func (u *UpdateReviewRequest) IsEmpty() bool {
	return u.Rating == 0 && u.Cleanliness == 0 && u.Punctuality == 0 && u.Professionalism == 0 &&
		u.Content == constant.Empty && u.Images == nil
}

type AdminResponseRequest struct {
	Content string `json:"content" validate:"required,min=2,max=1000"`
}

type ResponseReply struct {
	Content     string  `json:"content"`
	RespondedAt *string `json:"responded_at,omitempty"`
	RespondedBy *string `json:"responded_by,omitempty"`
}

type ReviewResponse struct {
	ID              string         `json:"id"`
	BookingID       string         `json:"booking_id"`
	UserID          string         `json:"user_id"`
	UserName        string         `json:"user_name"`
	ServiceID       string         `json:"service_id"`
	ServiceName     string         `json:"service_name"`
	CleanerID       *string        `json:"cleaner_id,omitempty"`
	Rating          int            `json:"rating"`
	Cleanliness     int            `json:"cleanliness,omitempty"`
	Punctuality     int            `json:"punctuality,omitempty"`
	Professionalism int            `json:"professionalism,omitempty"`
	Content         string         `json:"content"`
	Images          []model.Image  `json:"images"`
	IsVerified      bool           `json:"is_verified"`
	HelpfulCount    int            `json:"helpful_count"`
	IsHidden        bool           `json:"is_hidden"`
	Response        *ResponseReply `json:"response,omitempty"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(m model.Review) {
	r.ID = m.ID
	r.BookingID = m.BookingID
	r.UserID = m.UserID
	r.UserName = m.UserName
	r.ServiceID = m.ServiceID
	r.ServiceName = m.ServiceName
	r.CleanerID = m.CleanerID
	r.Rating = m.Rating
	r.Cleanliness = m.Cleanliness
	r.Punctuality = m.Punctuality
	r.Professionalism = m.Professionalism
	r.Content = m.Content
	r.Images = m.Images
	r.IsVerified = m.IsVerified
	r.HelpfulCount = m.HelpfulCount
	r.IsHidden = m.IsHidden
	r.Metadata.FromModel(m.Metadata)

	if r.Images == nil {
		r.Images = []model.Image{}
	}

	if m.Response != constant.Empty {
		r.Response = &ResponseReply{Content: m.Response, RespondedAt: formatOptional(m.RespondedAt), RespondedBy: m.RespondedBy}
	}
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}

type ServiceReviewsResponse struct {
	GetReviewsResponse
	Stats model.Stats `json:"stats"`
}

type HelpfulResponse struct {
	ReviewID     string `json:"review_id"`
	HelpfulCount int    `json:"helpful_count"`
}

type UploadImageRequest struct {
	Image     *multipart.FileHeader `json:"image" swaggerignore:"true" validate:"required,mimetypes=image/png image/jpg image/jpeg,maxfilesize=5"`
	ImageFile multipart.File        `json:"-"`
}

type UploadImageResponse struct {
	URL      string `json:"url"`
	FileName string `json:"file_name"`
}

func (r *UploadImageResponse) FromModel(url, fileName string) {
	r.URL = url
	r.FileName = fileName
}

func formatOptional(t *time.Time) *string {
	if t == nil {
		return nil
	}

	formatted := timezone.Format(*t, constant.DateFormat)

	return &formatted
}
