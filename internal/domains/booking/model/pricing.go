package model

import "github.com/shopspring/decimal"

const (
	PriceUnitPerSqm  = "per_sqm"
	PriceUnitPerItem = "per_item"
	PriceUnitPerHour = "per_hour"
	PriceUnitFixed   = "fixed"
)

// Pricing holds the price breakdown of a booking in KRW.
type Pricing struct {
	BasePrice    int64 `db:"base_price"    json:"base_price"`
	OptionsPrice int64 `db:"options_price" json:"options_price"`
	Discount     int64 `db:"discount"      json:"discount"`
	TotalPrice   int64 `db:"total_price"   json:"total_price"`
}

// Recalculate derives OptionsPrice and TotalPrice so that
// TotalPrice == BasePrice + sum(options) - Discount. The discount is capped at the gross amount.
func (p *Pricing) Recalculate(options []SelectedOption) {
	var sum int64
	for _, option := range options {
		sum += option.Price
	}

	p.OptionsPrice = sum
	p.Discount = min(max(p.Discount, 0), p.BasePrice+p.OptionsPrice)
	p.TotalPrice = p.BasePrice + p.OptionsPrice - p.Discount
}

// BasePrice scales the unit price by the floor area for area priced services. Other units are flat.
func BasePrice(unitPrice int64, unit string, size float64) int64 {
	if unit != PriceUnitPerSqm || size <= 0 {
		return unitPrice
	}

	return decimal.NewFromInt(unitPrice).Mul(decimal.NewFromFloat(size)).Round(0).IntPart()
}
