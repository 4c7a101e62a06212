package server

import (
	"context"
	"fmt"

	"github.com/bbernstein/lunartide/internal/almanac"
	"github.com/bbernstein/lunartide/internal/cache"
	"github.com/bbernstein/lunartide/internal/config"
	"github.com/bbernstein/lunartide/internal/location"
	"github.com/bbernstein/lunartide/internal/timezone"
	"github.com/rs/zerolog/log"
)

// Build wires a server from configuration: the preference store backend,
// the almanac caches, the response cache and the timezone lookup
func Build(ctx context.Context, cfg *config.Config, cacheCfg *config.CacheConfig, opts ...Option) (*Server, error) {
	store, err := location.NewStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initializing location store: %w", err)
	}

	alm, err := almanac.NewService(cacheCfg)
	if err != nil {
		return nil, fmt.Errorf("initializing almanac: %w", err)
	}

	var base []Option
	if cacheCfg != nil && cacheCfg.EnableResponseCache {
		responseCache, err := cache.NewResponseCache(cacheCfg)
		if err != nil {
			return nil, fmt.Errorf("initializing response cache: %w", err)
		}
		base = append(base, WithResponseCache(responseCache))
	}

	tz, err := timezone.NewService()
	if err != nil {
		log.Warn().Err(err).Msg("Timezone lookup unavailable, resolving today in UTC")
	} else {
		base = append(base, WithTimezones(tz))
	}

	log.Info().
		Str("store", cfg.StoreBackend).
		Str("profile", cfg.Profile).
		Bool("response_cache", cacheCfg != nil && cacheCfg.EnableResponseCache).
		Msg("Server components initialized")

	return New(alm, location.NewManager(store), append(base, opts...)...), nil
}

func (s *Server) Almanac() *almanac.Service {
	return s.almanac
}

func (s *Server) Locations() *location.Manager {
	return s.locations
}
