package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bbernstein/lunartide/internal/config"
	"github.com/bbernstein/lunartide/internal/scheduler"
	"github.com/bbernstein/lunartide/internal/server"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Env struct {
	Port         string `default:"8080"`
	Prefix       string `default:"/"`
	WarmSchedule string `default:"5 0 * * *" split_words:"true"`
	WarmOnStart  bool   `default:"true" split_words:"true"`
}

func main() {
	var env Env
	if err := envconfig.Process("", &env); err != nil {
		log.Fatal().Err(err).Msg("Failed to read environment")
	}

	cfg := config.LoadFromEnv()
	cfg.InitializeLogging()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv, err := server.Build(ctx, cfg, config.GetCacheConfig(), server.WithPrefix(env.Prefix))
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize server")
	}

	warmer := scheduler.NewWarmer(srv.Almanac(), srv.Locations())
	if env.WarmOnStart {
		go warmer.Run(ctx)
	}
	if err := warmer.Start(ctx, env.WarmSchedule); err != nil {
		log.Fatal().Err(err).Msg("Failed to schedule cache warmer")
	}
	defer warmer.Stop()

	httpServer := &http.Server{
		Handler:      srv,
		Addr:         "0.0.0.0:" + env.Port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("Failed to shut down cleanly")
		}
	}()

	log.Info().Str("addr", httpServer.Addr).Str("prefix", env.Prefix).Msg("Listening and serving")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("Server failed")
	}
}
