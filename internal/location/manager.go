package location

import (
	"context"
	"fmt"
	"sync"

	"github.com/bbernstein/lunartide/internal/models"
	"github.com/rs/zerolog/log"
)

// Manager applies preference changes on top of a Store
type Manager struct {
	store Store
	mu    sync.Mutex
}

func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// Preferences returns the full stored preference record
func (m *Manager) Preferences(ctx context.Context) (*models.Preferences, error) {
	prefs, err := m.store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading preferences: %w", err)
	}
	return normalize(prefs), nil
}

// Current returns the selected location, falling back to DefaultLocation
func (m *Manager) Current(ctx context.Context) (models.Location, error) {
	prefs, err := m.Preferences(ctx)
	if err != nil {
		return models.Location{}, err
	}
	if prefs.CurrentLocation == nil {
		return DefaultLocation, nil
	}
	return *prefs.CurrentLocation, nil
}

func (m *Manager) SetCurrent(ctx context.Context, loc models.Location) error {
	if err := loc.Validate(); err != nil {
		return fmt.Errorf("invalid location: %w", err)
	}

	return m.update(ctx, func(prefs *models.Preferences) error {
		prefs.CurrentLocation = &loc
		return nil
	})
}

func (m *Manager) Saved(ctx context.Context) ([]models.Location, error) {
	prefs, err := m.Preferences(ctx)
	if err != nil {
		return nil, err
	}
	return prefs.SavedLocations, nil
}

// AddSaved stores loc at the end of the saved list, replacing any entry with the same name
func (m *Manager) AddSaved(ctx context.Context, loc models.Location) error {
	if err := loc.Validate(); err != nil {
		return fmt.Errorf("invalid location: %w", err)
	}

	return m.update(ctx, func(prefs *models.Preferences) error {
		prefs.SavedLocations = append(withoutName(prefs.SavedLocations, loc.Name), loc)
		return nil
	})
}

func (m *Manager) RemoveSaved(ctx context.Context, name string) error {
	return m.update(ctx, func(prefs *models.Preferences) error {
		remaining := withoutName(prefs.SavedLocations, name)
		if len(remaining) == len(prefs.SavedLocations) {
			return fmt.Errorf("%w: %s", ErrLocationNotFound, name)
		}
		prefs.SavedLocations = remaining
		return nil
	})
}

func (m *Manager) update(ctx context.Context, mutate func(*models.Preferences) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	prefs, err := m.Preferences(ctx)
	if err != nil {
		return err
	}
	prefs = clonePreferences(prefs)

	if err := mutate(prefs); err != nil {
		return err
	}

	if err := m.store.Save(ctx, prefs); err != nil {
		return fmt.Errorf("saving preferences: %w", err)
	}

	log.Debug().
		Int("saved_count", len(prefs.SavedLocations)).
		Bool("has_current", prefs.CurrentLocation != nil).
		Msg("Saved location preferences")
	return nil
}

func withoutName(locations []models.Location, name string) []models.Location {
	out := make([]models.Location, 0, len(locations))
	for _, l := range locations {
		if l.Name != name {
			out = append(out, l)
		}
	}
	return out
}
