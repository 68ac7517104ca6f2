package model

import "github.com/shopspring/decimal"

// RatingRow is one aggregate row read from the reviews table.
type RatingRow struct {
	Total           int     `db:"total"`
	Average         float64 `db:"average"`
	Cleanliness     float64 `db:"cleanliness"`
	Punctuality     float64 `db:"punctuality"`
	Professionalism float64 `db:"professionalism"`
}

type StarCount struct {
	Rating int `db:"rating"`
	Count  int `db:"count"`
}

type Stats struct {
	Total           int         `json:"total"`
	Average         float64     `json:"average"`
	Cleanliness     float64     `json:"cleanliness"`
	Punctuality     float64     `json:"punctuality"`
	Professionalism float64     `json:"professionalism"`
	Distribution    map[int]int `json:"distribution"`
}

// NewStats rounds the averages to one decimal and fills every star from 1 to 5.
func NewStats(row RatingRow, stars []StarCount) Stats {
	stats := Stats{
		Total:           row.Total,
		Average:         Round(row.Average),
		Cleanliness:     Round(row.Cleanliness),
		Punctuality:     Round(row.Punctuality),
		Professionalism: Round(row.Professionalism),
		Distribution:    map[int]int{1: 0, 2: 0, 3: 0, 4: 0, 5: 0},
	}

	for _, star := range stars {
		if _, ok := stats.Distribution[star.Rating]; ok {
			stats.Distribution[star.Rating] = star.Count
		}
	}

	return stats
}

func Round(v float64) float64 {
	return decimal.NewFromFloat(v).Round(1).InexactFloat64()
}
