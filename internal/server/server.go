package server

import (
	"net/http"
	"strings"
	"time"

	"github.com/bbernstein/lunartide/internal/almanac"
	"github.com/bbernstein/lunartide/internal/cache"
	"github.com/bbernstein/lunartide/internal/location"
	"github.com/bbernstein/lunartide/internal/metrics"
	"github.com/gorilla/mux"
)

// TodayResolver returns midnight of the local date at a pair of coordinates
type TodayResolver interface {
	Today(latitude, longitude float64, now time.Time) time.Time
}

type utcToday struct{}

func (utcToday) Today(_, _ float64, now time.Time) time.Time {
	year, month, day := now.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Server exposes the almanac and location preferences over HTTP
type Server struct {
	almanac       *almanac.Service
	locations     *location.Manager
	timezones     TodayResolver
	responseCache *cache.ResponseCache
	metrics       *metrics.Metrics
	prefix        string
	now           func() time.Time
	router        *mux.Router
}

type Option func(*Server)

// WithPrefix mounts every route under prefix
func WithPrefix(prefix string) Option {
	return func(s *Server) {
		s.prefix = strings.TrimRight(prefix, "/")
	}
}

func WithResponseCache(c *cache.ResponseCache) Option {
	return func(s *Server) {
		s.responseCache = c
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Server) {
		s.metrics = m
	}
}

// WithTimezones sets how "today" is resolved when a request has no date
func WithTimezones(tz TodayResolver) Option {
	return func(s *Server) {
		s.timezones = tz
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

func New(alm *almanac.Service, locations *location.Manager, opts ...Option) *Server {
	s := &Server{
		almanac:   alm,
		locations: locations,
		timezones: utcToday{},
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.metrics == nil {
		s.metrics = metrics.New()
	}
	s.metrics.RegisterCacheStats("almanac", alm.CacheStats,
		"phase_hits", "phase_misses", "phase_entries", "tide_hits", "tide_misses", "tide_entries")

	s.router = s.routes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter().StrictSlash(true)
	r.NotFoundHandler = http.HandlerFunc(notFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)

	root := r
	if s.prefix != "" {
		root = r.PathPrefix(s.prefix).Subrouter()
	}
	root.Use(requestID, accessLog, s.metrics.LatencyHandler)

	root.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	root.Handle("/metrics", s.metrics.Handler()).Methods(http.MethodGet)

	v1 := root.PathPrefix("/api/v1").Subrouter()
	v1.HandleFunc("/moon", s.handleMoon).Methods(http.MethodGet)
	v1.Handle("/moon/month", s.cached(http.HandlerFunc(s.handleMoonMonth), "year", "month")).Methods(http.MethodGet)
	v1.HandleFunc("/moon/riseset", s.handleRiseSet).Methods(http.MethodGet)
	v1.HandleFunc("/tides", s.handleTides).Methods(http.MethodGet)
	v1.Handle("/tides/month", s.cached(http.HandlerFunc(s.handleMonthTides), "year", "month", "lat", "lon")).Methods(http.MethodGet)
	v1.Handle("/calendar", s.cached(http.HandlerFunc(s.handleCalendar), "year", "month", "lat", "lon")).Methods(http.MethodGet)
	v1.HandleFunc("/day", s.handleDay).Methods(http.MethodGet)

	v1.HandleFunc("/locations", s.handleListLocations).Methods(http.MethodGet)
	v1.HandleFunc("/locations/current", s.handleSetCurrent).Methods(http.MethodPut)
	v1.HandleFunc("/locations/saved", s.handleAddSaved).Methods(http.MethodPost)
	v1.HandleFunc("/locations/saved/{name}", s.handleRemoveSaved).Methods(http.MethodDelete)

	return r
}
