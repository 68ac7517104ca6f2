package dto

import (
	"github.com/google/uuid"

	"cleanbook/internal/domains/catalog/model"
	"cleanbook/internal/domains/catalog/seed"
	"cleanbook/shared"
	gDto "cleanbook/shared/dto"
	gModel "cleanbook/shared/model"
	"cleanbook/shared/timezone"
)

const defaultDuration = 120

type OptionRequest struct {
	Name        string `json:"name"        validate:"required,max=100"`
	Price       int64  `json:"price"       validate:"min=0"`
	Description string `json:"description" validate:"omitempty,max=255"`
}

type CreateServiceRequest struct {
	Name        string          `json:"name"        validate:"required,max=100"`
	Category    string          `json:"category"    validate:"required,oneof=home office special add-on"`
	Description string          `json:"description" validate:"required"`
	BasePrice   int64           `json:"base_price"  validate:"min=0"`
	PriceUnit   string          `json:"price_unit"  validate:"omitempty,oneof=per_sqm per_item per_hour fixed"`
	Duration    int             `json:"duration"    validate:"omitempty,min=1"`
	Options     []OptionRequest `json:"options"     validate:"omitempty,dive"`
	Features    []string        `json:"features"    validate:"omitempty,dive,max=100"`
	ImageURL    string          `json:"image_url"   validate:"omitempty,url"`
	IsActive    *bool           `json:"is_active"`
	MinSize     *float64        `json:"min_size"    validate:"omitempty,min=0"`
	MaxSize     *float64        `json:"max_size"    validate:"omitempty,min=0"`
}

func (c *CreateServiceRequest) ToModel(user string) model.Service {
	active := true
	if c.IsActive != nil {
		active = *c.IsActive
	}

	priceUnit := c.PriceUnit
	if priceUnit == "" {
		priceUnit = "fixed"
	}

	duration := c.Duration
	if duration == 0 {
		duration = defaultDuration
	}

	options := make(model.Options, len(c.Options))
	for i, opt := range c.Options {
		options[i] = model.Option(opt)
	}

	now := timezone.Now()

	return model.Service{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Category:    c.Category,
		Description: c.Description,
		BasePrice:   c.BasePrice,
		PriceUnit:   priceUnit,
		Duration:    duration,
		Options:     options,
		Features:    c.Features,
		ImageURL:    c.ImageURL,
		IsActive:    active,
		MinSize:     c.MinSize,
		MaxSize:     c.MaxSize,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// UpdateServiceRequest only carries the fields present in the request body.
type UpdateServiceRequest struct {
	Name        string         `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Category    string         `db:"category"    json:"category"    validate:"omitempty,oneof=home office special add-on"`
	Description string         `db:"description" json:"description" validate:"omitempty"`
	BasePrice   *int64         `db:"base_price"  json:"base_price"  validate:"omitempty,min=0"`
	PriceUnit   string         `db:"price_unit"  json:"price_unit"  validate:"omitempty,oneof=per_sqm per_item per_hour fixed"`
	Duration    *int           `db:"duration"    json:"duration"    validate:"omitempty,min=1"`
	Options     model.Options  `db:"options"     json:"options"     validate:"omitempty,dive"`
	Features    model.Features `db:"features"    json:"features"    validate:"omitempty,dive,max=100"`
	ImageURL    string         `db:"image_url"   json:"image_url"   validate:"omitempty,url"`
	IsActive    *bool          `db:"is_active"   json:"is_active"`
	MinSize     *float64       `db:"min_size"    json:"min_size"    validate:"omitempty,min=0"`
	MaxSize     *float64       `db:"max_size"    json:"max_size"    validate:"omitempty,min=0"`
}

type ServiceResponse struct {
	ID          string         `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	BasePrice   int64          `json:"base_price"`
	PriceUnit   string         `json:"price_unit"`
	Duration    int            `json:"duration"`
	Options     []model.Option `json:"options"`
	Features    []string       `json:"features"`
	ImageURL    string         `json:"image_url"`
	IsActive    bool           `json:"is_active"`
	MinSize     *float64       `json:"min_size,omitempty"`
	MaxSize     *float64       `json:"max_size,omitempty"`
	Popularity  int            `json:"popularity"`
	gDto.Metadata
}

func (r *ServiceResponse) FromModel(m model.Service) {
	r.ID = m.ID
	r.Name = m.Name
	r.Category = m.Category
	r.Description = m.Description
	r.BasePrice = m.BasePrice
	r.PriceUnit = m.PriceUnit
	r.Duration = m.Duration
	r.Options = m.Options
	r.Features = m.Features
	r.ImageURL = m.ImageURL
	r.IsActive = m.IsActive
	r.MinSize = m.MinSize
	r.MaxSize = m.MaxSize
	r.Popularity = m.Popularity
	r.Metadata.FromModel(m.Metadata)
}

type GetServicesResponse struct {
	Services  []ServiceResponse `json:"services"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetServicesResponse) FromModels(models []model.Service, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Services = make([]ServiceResponse, len(models))
	for i, mod := range models {
		r.Services[i].FromModel(mod)
	}
}

type CategoryResponse struct {
	Category string            `json:"category"`
	Services []ServiceResponse `json:"services"`
}

type ServiceListFilter struct {
	Category string `validate:"omitempty,oneof=home office special add-on"`
	IsActive *bool
}

// ToFilterGroup lists active services unless the caller asks otherwise.
func (f *ServiceListFilter) ToFilterGroup() gDto.FilterGroup {
	active := true
	if f.IsActive != nil {
		active = *f.IsActive
	}

	group := shared.FilterEq(model.TableName, model.FieldIsActive, active)

	if f.Category != "" {
		group.Filters = append(group.Filters, gDto.Filter{
			Field:    model.FieldCategory,
			Value:    f.Category,
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		})
	}

	return group
}

// FromSeed converts an embedded seed entry into an active service row.
func FromSeed(s seed.Service, user string) model.Service {
	now := timezone.Now()

	return model.Service{
		ID:          uuid.NewString(),
		Name:        s.Name,
		Category:    s.Category,
		Description: s.Description,
		BasePrice:   s.BasePrice,
		PriceUnit:   s.PriceUnit,
		Duration:    s.Duration,
		Options:     s.Options,
		Features:    s.Features,
		IsActive:    true,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}
