package models

import (
	"fmt"
	"strconv"
	"strings"
)

type TideType string

const (
	TideTypeHigh TideType = "HIGH"
	TideTypeLow  TideType = "LOW"
)

// TidePoint represents a high or low tide on a given day
type TidePoint struct {
	Time       string  `json:"time"`   // HH:MM
	Height     float64 `json:"height"` // meters
	IsHighTide bool    `json:"isHighTide"`
}

func (tp TidePoint) Type() TideType {
	if tp.IsHighTide {
		return TideTypeHigh
	}
	return TideTypeLow
}

// ClockValue returns the time as an HHMM integer, e.g. "09:05" -> 905.
// Comparing these integers orders zero-padded clock times correctly.
func (tp TidePoint) ClockValue() int {
	v, err := strconv.Atoi(strings.Replace(tp.Time, ":", "", 1))
	if err != nil {
		return -1
	}
	return v
}

// Validate checks if a TidePoint's fields are valid
func (tp *TidePoint) Validate() error {
	if len(tp.Time) != 5 || tp.Time[2] != ':' {
		return fmt.Errorf("invalid time format: %s", tp.Time)
	}

	hour, err := strconv.Atoi(tp.Time[:2])
	if err != nil || hour < 0 || hour > 23 {
		return fmt.Errorf("invalid hour: %s", tp.Time)
	}

	minute, err := strconv.Atoi(tp.Time[3:])
	if err != nil || minute < 0 || minute > 59 {
		return fmt.Errorf("invalid minute: %s", tp.Time)
	}

	if tp.Height < 0 {
		return fmt.Errorf("invalid height: %f", tp.Height)
	}

	return nil
}
