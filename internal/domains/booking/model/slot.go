package model

import (
	"fmt"
	"time"

	"cleanbook/shared/constant"
)

const DefaultDuration = 120

type Interval struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half open intervals intersect.
func (i Interval) Overlaps(other Interval) bool {
	return i.Start.Before(other.End) && other.Start.Before(i.End)
}

type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

// ComputeSlots returns one slot per hour in [openHour, closeHour). A slot is free when it ends
// by closing time and does not intersect any of the booked intervals.
func ComputeSlots(day time.Time, openHour, closeHour, duration int, booked []Interval) []Slot {
	if duration <= 0 {
		duration = DefaultDuration
	}

	closing := atHour(day, closeHour)
	slots := make([]Slot, 0, max(closeHour-openHour, 0))

	for hour := openHour; hour < closeHour; hour++ {
		start := atHour(day, hour)
		candidate := Interval{Start: start, End: start.Add(time.Duration(duration) * time.Minute)}

		slots = append(slots, Slot{
			Time:      fmt.Sprintf("%02d:00", hour),
			Available: IsFree(candidate, closing, booked),
		})
	}

	return slots
}

// IsFree reports whether candidate fits before closing and intersects none of booked.
func IsFree(candidate Interval, closing time.Time, booked []Interval) bool {
	if candidate.End.After(closing) {
		return false
	}

	for _, interval := range booked {
		if candidate.Overlaps(interval) {
			return false
		}
	}

	return true
}

// ScheduleInterval builds the [start, start+duration) interval of a date and HH:MM time in loc.
func ScheduleInterval(date, clock string, duration int, loc *time.Location) (Interval, error) {
	start, err := time.ParseInLocation(constant.DayHourFormat, date+" "+clock, loc)
	if err != nil {
		return Interval{}, fmt.Errorf("invalid service date or time: %w", err)
	}

	if duration <= 0 {
		duration = DefaultDuration
	}

	return Interval{Start: start, End: start.Add(time.Duration(duration) * time.Minute)}, nil
}

func atHour(day time.Time, hour int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, day.Location())
}
