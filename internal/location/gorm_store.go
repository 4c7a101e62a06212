package location

import (
	"context"
	"fmt"

	"github.com/bbernstein/lunartide/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// LocationRow is one stored location. A profile has at most one current row
// and any number of saved rows ordered by Position.
type LocationRow struct {
	gorm.Model
	Profile   string `gorm:"index;not null"`
	Name      string `gorm:"not null"`
	Latitude  float64
	Longitude float64
	Current   bool
	Position  int
}

// GormStore persists preferences in a relational database
type GormStore struct {
	db      *gorm.DB
	profile string
}

// OpenPostgres connects to dsn and migrates the location table
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

func NewGormStore(db *gorm.DB, profile string) (*GormStore, error) {
	if err := db.AutoMigrate(&LocationRow{}); err != nil {
		return nil, fmt.Errorf("migrating location table: %w", err)
	}
	return &GormStore{db: db, profile: profile}, nil
}

func (s *GormStore) Load(ctx context.Context) (*models.Preferences, error) {
	var rows []LocationRow
	err := s.db.WithContext(ctx).
		Where("profile = ?", s.profile).
		Order("position").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("querying locations: %w", err)
	}

	prefs := emptyPreferences()
	for _, row := range rows {
		loc := models.Location{Name: row.Name, Latitude: row.Latitude, Longitude: row.Longitude}
		if row.Current {
			prefs.CurrentLocation = &loc
			continue
		}
		prefs.SavedLocations = append(prefs.SavedLocations, loc)
	}
	return prefs, nil
}

// Save replaces the profile's rows in a single transaction
func (s *GormStore) Save(ctx context.Context, prefs *models.Preferences) error {
	prefs = normalize(prefs)

	rows := make([]LocationRow, 0, len(prefs.SavedLocations)+1)
	if prefs.CurrentLocation != nil {
		rows = append(rows, newLocationRow(s.profile, *prefs.CurrentLocation, true, -1))
	}
	for i, loc := range prefs.SavedLocations {
		rows = append(rows, newLocationRow(s.profile, loc, false, i))
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("profile = ?", s.profile).Delete(&LocationRow{}).Error; err != nil {
			return fmt.Errorf("clearing locations: %w", err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("inserting locations: %w", err)
		}
		return nil
	})
}

func newLocationRow(profile string, loc models.Location, current bool, position int) LocationRow {
	return LocationRow{
		Profile:   profile,
		Name:      loc.Name,
		Latitude:  loc.Latitude,
		Longitude: loc.Longitude,
		Current:   current,
		Position:  position,
	}
}
