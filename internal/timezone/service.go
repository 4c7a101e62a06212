package timezone

import (
	"fmt"
	"sync"
	"time"
	_ "time/tzdata"

	"github.com/ringsaturn/tzf"
	"github.com/rs/zerolog/log"
)

// Finder maps coordinates to an IANA zone name. tzf.F satisfies it.
type Finder interface {
	GetTimezoneName(lng, lat float64) string
}

// Service resolves the local calendar date at a pair of coordinates
type Service struct {
	finder Finder
	mu     sync.RWMutex
	zones  map[string]*time.Location
}

var (
	instance *Service
	once     sync.Once
	initErr  error
)

// NewService returns the shared tzf-backed service. The finder holds the zone
// polygons in memory, so it is built once per process.
func NewService() (*Service, error) {
	once.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			initErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		instance = NewServiceWithFinder(finder)
	})
	if initErr != nil {
		return nil, initErr
	}
	return instance, nil
}

func NewServiceWithFinder(finder Finder) *Service {
	return &Service{
		finder: finder,
		zones:  make(map[string]*time.Location),
	}
}

// Location returns the time zone at the coordinates, or UTC when none is known
func (s *Service) Location(latitude, longitude float64) *time.Location {
	name := s.finder.GetTimezoneName(longitude, latitude)
	if name == "" {
		return time.UTC
	}

	s.mu.RLock()
	loc, ok := s.zones[name]
	s.mu.RUnlock()
	if ok {
		return loc
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Warn().Err(err).Str("zone", name).Msg("Unknown timezone, using UTC")
		loc = time.UTC
	}

	s.mu.Lock()
	s.zones[name] = loc
	s.mu.Unlock()
	return loc
}

// Today returns midnight of the local calendar date at the coordinates at instant now
func (s *Service) Today(latitude, longitude float64, now time.Time) time.Time {
	local := now.In(s.Location(latitude, longitude))
	year, month, day := local.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, local.Location())
}
