package api

import (
	"strconv"
	"strings"
	"time"

	"github.com/bbernstein/lunartide/internal/models"
)

const DateLayout = "2006-01-02"

// ParseCoordinates reads lat and lon. ok is false when both are absent.
func ParseCoordinates(params map[string]string) (lat, lon float64, ok bool, err error) {
	latStr, hasLat := params["lat"]
	lonStr, hasLon := params["lon"]

	if !hasLat && !hasLon {
		return 0, 0, false, nil
	}
	if !hasLat {
		return 0, 0, false, NewInvalidParameterError("lat", "required when lon is given", nil)
	}
	if !hasLon {
		return 0, 0, false, NewInvalidParameterError("lon", "required when lat is given", nil)
	}

	lat, err = strconv.ParseFloat(latStr, 64)
	if err != nil {
		return 0, 0, false, NewInvalidParameterError("lat", "not a number", err)
	}

	lon, err = strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return 0, 0, false, NewInvalidParameterError("lon", "not a number", err)
	}

	if err := models.ValidateCoordinates(lat, lon); err != nil {
		return 0, 0, false, &InvalidCoordinatesError{Err: err}
	}

	return lat, lon, true, nil
}

// ParseDate parses a YYYY-MM-DD calendar date as UTC midnight
func ParseDate(value string) (time.Time, error) {
	date, err := time.Parse(DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, NewInvalidParameterError("date", "expected YYYY-MM-DD", err)
	}
	return date, nil
}

// ParseMonth parses a year and a 1-12 month number
func ParseMonth(yearStr, monthStr string) (int, time.Month, error) {
	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil || year < 1 || year > 9999 {
		return 0, 0, NewInvalidParameterError("year", "expected a year between 1 and 9999", err)
	}

	month, err := strconv.Atoi(strings.TrimSpace(monthStr))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, NewInvalidParameterError("month", "expected a month between 1 and 12", err)
	}

	return year, time.Month(month), nil
}

// ParseYearMonth parses the YYYY-MM form
func ParseYearMonth(value string) (int, time.Month, error) {
	yearStr, monthStr, found := strings.Cut(strings.TrimSpace(value), "-")
	if !found {
		return 0, 0, NewInvalidParameterError("month", "expected YYYY-MM", nil)
	}
	return ParseMonth(yearStr, monthStr)
}
