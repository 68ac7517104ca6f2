package model

import (
	"slices"

	"cleanbook/shared/model"
)

const (
	TableName  = "services"
	EntityName = "service"

	FieldID          = "id"
	FieldName        = "name"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldBasePrice   = "base_price"
	FieldPriceUnit   = "price_unit"
	FieldDuration    = "duration"
	FieldOptions     = "options"
	FieldFeatures    = "features"
	FieldImageURL    = "image_url"
	FieldIsActive    = "is_active"
	FieldPopularity  = "popularity"

	ConstraintName = "services_name_key"
)

const (
	CategoryHome    = "home"
	CategoryOffice  = "office"
	CategorySpecial = "special"
	CategoryAddOn   = "add-on"
)

var Categories = []string{CategoryHome, CategoryOffice, CategorySpecial, CategoryAddOn}

type Option struct {
	Name        string `json:"name"        yaml:"name"`
	Price       int64  `json:"price"       yaml:"price"`
	Description string `json:"description" yaml:"description"`
}

type Options = model.JSONList[Option]

type Features = model.JSONList[string]

type Service struct {
	ID          string   `db:"id"`
	Name        string   `db:"name"`
	Category    string   `db:"category"`
	Description string   `db:"description"`
	BasePrice   int64    `db:"base_price"`
	PriceUnit   string   `db:"price_unit"`
	Duration    int      `db:"duration"`
	Options     Options  `db:"options"`
	Features    Features `db:"features"`
	ImageURL    string   `db:"image_url"`
	IsActive    bool     `db:"is_active"`
	MinSize     *float64 `db:"min_size"`
	MaxSize     *float64 `db:"max_size"`
	Popularity  int      `db:"popularity"`
	model.Metadata
}

// FindOption looks an option up by its exact name.
func (s *Service) FindOption(name string) (Option, bool) {
	idx := slices.IndexFunc(s.Options, func(opt Option) bool {
		return opt.Name == name
	})
	if idx < 0 {
		return Option{}, false
	}

	return s.Options[idx], true
}

func IsCategory(category string) bool {
	return slices.Contains(Categories, category)
}
