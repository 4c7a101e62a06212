package models

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrInvalidLatitude  = errors.New("invalid latitude")
	ErrInvalidLongitude = errors.New("invalid longitude")
)

// Location is a user-selected reference point for tide predictions
type Location struct {
	Name      string  `json:"name" dynamodbav:"name"`
	Latitude  float64 `json:"latitude" dynamodbav:"latitude"`
	Longitude float64 `json:"longitude" dynamodbav:"longitude"`
}

// Preferences holds the persisted location selection
type Preferences struct {
	CurrentLocation *Location  `json:"currentLocation" dynamodbav:"currentLocation"`
	SavedLocations  []Location `json:"savedLocations" dynamodbav:"savedLocations"`
}

// Validate checks if a Location's fields are valid
func (l *Location) Validate() error {
	if l.Name == "" {
		return fmt.Errorf("location name is required")
	}
	if err := ValidateCoordinates(l.Latitude, l.Longitude); err != nil {
		return err
	}
	return nil
}

// ValidateCoordinates rejects out-of-range or non-finite coordinates
func ValidateCoordinates(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return fmt.Errorf("%w: %f", ErrInvalidLatitude, lat)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return fmt.Errorf("%w: %f", ErrInvalidLongitude, lon)
	}
	return nil
}
