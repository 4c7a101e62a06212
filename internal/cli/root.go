// Package cli implements the lunartide terminal commands
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/bbernstein/lunartide/internal/almanac"
	"github.com/bbernstein/lunartide/internal/config"
	"github.com/bbernstein/lunartide/internal/location"
	"github.com/bbernstein/lunartide/internal/models"
	"github.com/bbernstein/lunartide/internal/timezone"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// TodayResolver returns midnight of the local date at a pair of coordinates
type TodayResolver interface {
	Today(latitude, longitude float64, now time.Time) time.Time
}

// App carries the configuration and services shared by every command
type App struct {
	v       *viper.Viper
	cfgFile string
	asJSON  bool

	store     location.Store
	timezones TodayResolver
	almanac   *almanac.Service
	now       func() time.Time

	manager *location.Manager
}

type Option func(*App)

// WithStore bypasses the configured store backend
func WithStore(store location.Store) Option {
	return func(a *App) {
		a.store = store
	}
}

func WithTimezones(tz TodayResolver) Option {
	return func(a *App) {
		a.timezones = tz
	}
}

func WithAlmanac(alm *almanac.Service) Option {
	return func(a *App) {
		a.almanac = alm
	}
}

func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// NewRootCommand builds the command tree
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &App{v: viper.New(), now: time.Now}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:   "lunartide",
		Short: "Moon phases and tide tables in the terminal",
		Long: `lunartide shows the moon phase, moonrise and moonset, an estimated
tide table and a monthly calendar for a saved or ad-hoc location.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.initConfig(); err != nil {
				return err
			}
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (default is $HOME/.lunartide.yaml)")
	flags.BoolVar(&a.asJSON, "json", false, "print JSON instead of formatted output")
	flags.String("store", "", "location store backend (memory, file, dynamodb, s3, postgres)")
	flags.String("profile", "", "profile the location preferences are stored under")
	_ = a.v.BindPFlag("store.backend", flags.Lookup("store"))
	_ = a.v.BindPFlag("profile", flags.Lookup("profile"))

	root.AddCommand(
		a.newMoonCommand(),
		a.newTidesCommand(),
		a.newCalendarCommand(),
		a.newDayCommand(),
		a.newLocationsCommand(),
	)
	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// initConfig reads in the config file and LUNARTIDE_* environment variables
func (a *App) initConfig() error {
	v := a.v
	if a.cfgFile != "" {
		v.SetConfigFile(a.cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigType("yaml")
		v.SetConfigName(".lunartide")
	}

	v.SetDefault("log.level", "warn")
	v.SetDefault("env", "local")
	v.SetDefault("store.backend", config.StoreFile)
	v.SetDefault("profile", "default")

	v.SetEnvPrefix("LUNARTIDE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}
	return nil
}

// storeConfig maps the viper settings onto the shared configuration
func (a *App) storeConfig() *config.Config {
	v := a.v
	opts := []config.Option{
		config.WithEnvironment(v.GetString("env")),
		config.WithLogLevel(v.GetString("log.level")),
		config.WithStoreBackend(v.GetString("store.backend")),
		config.WithProfile(v.GetString("profile")),
	}
	if path := v.GetString("store.file"); path != "" {
		opts = append(opts, config.WithStoreFilePath(path))
	}
	if table := v.GetString("dynamodb.table"); table != "" {
		opts = append(opts, config.WithDynamoTable(table))
	}
	if bucket := v.GetString("s3.bucket"); bucket != "" {
		opts = append(opts, config.WithS3Bucket(bucket))
	}
	if dsn := v.GetString("database.dsn"); dsn != "" {
		opts = append(opts, config.WithDatabaseDSN(dsn))
	}
	return config.New(opts...)
}

func (a *App) setup(cmd *cobra.Command) error {
	cfg := a.storeConfig()
	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr()})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if a.store == nil {
		store, err := location.NewStore(ctx, cfg)
		if err != nil {
			return err
		}
		a.store = store
	}
	a.manager = location.NewManager(a.store)

	if a.almanac == nil {
		alm, err := almanac.NewService(nil)
		if err != nil {
			return err
		}
		a.almanac = alm
	}

	if a.timezones == nil {
		tz, err := timezone.NewService()
		if err != nil {
			log.Warn().Err(err).Msg("Timezone lookup unavailable, using UTC dates")
			a.timezones = utcToday{}
		} else {
			a.timezones = tz
		}
	}

	log.Debug().Str("store", cfg.StoreBackend).Str("profile", cfg.Profile).Msg("CLI configured")
	return nil
}

type utcToday struct{}

func (utcToday) Today(_, _ float64, now time.Time) time.Time {
	year, month, day := now.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (a *App) today(loc models.Location) time.Time {
	return a.timezones.Today(loc.Latitude, loc.Longitude, a.now())
}
