package location

import (
	"context"
	"errors"

	"github.com/bbernstein/lunartide/internal/models"
)

// ErrLocationNotFound is returned when removing a saved location that does not exist
var ErrLocationNotFound = errors.New("location not found")

// Store persists the location preferences of a single profile
type Store interface {
	// Load returns the stored preferences, or empty preferences when none were saved
	Load(ctx context.Context) (*models.Preferences, error)
	Save(ctx context.Context, prefs *models.Preferences) error
}

// DefaultLocation is used until a current location has been chosen
var DefaultLocation = models.Location{Name: "北京", Latitude: 39.9042, Longitude: 116.4074}

var presets = []models.Location{
	DefaultLocation,
	{Name: "上海", Latitude: 31.2304, Longitude: 121.4737},
	{Name: "广州", Latitude: 23.1291, Longitude: 113.2644},
	{Name: "青岛", Latitude: 36.0671, Longitude: 120.3826},
}

// Presets returns the built-in coastal cities offered for quick selection
func Presets() []models.Location {
	return append([]models.Location(nil), presets...)
}

func emptyPreferences() *models.Preferences {
	return &models.Preferences{SavedLocations: []models.Location{}}
}

// normalize makes a loaded record safe to mutate and serialize
func normalize(prefs *models.Preferences) *models.Preferences {
	if prefs == nil {
		return emptyPreferences()
	}
	if prefs.SavedLocations == nil {
		prefs.SavedLocations = []models.Location{}
	}
	return prefs
}

func clonePreferences(prefs *models.Preferences) *models.Preferences {
	out := &models.Preferences{
		SavedLocations: append([]models.Location{}, prefs.SavedLocations...),
	}
	if prefs.CurrentLocation != nil {
		current := *prefs.CurrentLocation
		out.CurrentLocation = &current
	}
	return out
}
