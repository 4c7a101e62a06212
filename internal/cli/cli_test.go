package cli

import (
	"bytes"
	"encoding/json"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bbernstein/lunartide/internal/almanac"
	"github.com/bbernstein/lunartide/internal/api"
	"github.com/bbernstein/lunartide/internal/config"
	"github.com/bbernstein/lunartide/internal/location"
	"github.com/bbernstein/lunartide/internal/lunar"
	"github.com/bbernstein/lunartide/internal/models"
	"github.com/bbernstein/lunartide/internal/tide"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2024, time.March, 9, 20, 30, 0, 0, time.UTC)

type fixedToday struct{}

func (fixedToday) Today(_, _ float64, now time.Time) time.Time {
	year, month, day := now.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func testOptions(t *testing.T, store location.Store) []Option {
	t.Helper()

	alm, err := almanac.NewService(config.DefaultCacheConfig(),
		almanac.WithCalculator(lunar.NewCalculator(lunar.WithRandomSource(rand.New(rand.NewPCG(1, 2))))))
	require.NoError(t, err)

	return []Option{
		WithStore(store),
		WithAlmanac(alm),
		WithTimezones(fixedToday{}),
		WithClock(func() time.Time { return fixedNow }),
	}
}

// run executes the command tree with HOME pointed at an empty directory
func run(t *testing.T, store location.Store, args ...string) (string, error) {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	var out, errOut bytes.Buffer
	cmd := NewRootCommand(testOptions(t, store)...)
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func runJSON[T any](t *testing.T, store location.Store, args ...string) T {
	t.Helper()

	out, err := run(t, store, append(args, "--json")...)
	require.NoError(t, err)

	var resp T
	require.NoError(t, json.Unmarshal([]byte(out), &resp), out)
	return resp
}

func TestMoonCommand(t *testing.T) {
	out, err := run(t, location.NewMemoryStore(), "moon", "2000-01-20")
	require.NoError(t, err)

	assert.Contains(t, out, "Full Moon")
	assert.Contains(t, out, "满月")
	assert.Contains(t, out, "2000-01-20")
	assert.Contains(t, out, location.DefaultLocation.Name)
	assert.Contains(t, out, "Moonrise")
}

func TestMoonCommand_JSONDefaultsToToday(t *testing.T) {
	resp := runJSON[api.DayResponse](t, location.NewMemoryStore(), "moon")

	assert.Equal(t, "day", resp.ResponseType)
	assert.Equal(t, "2024-03-09", resp.Date)
	assert.Equal(t, lunar.CalculateMoonPhase(fixedNow), resp.MoonPhase)
}

func TestTidesCommand(t *testing.T) {
	resp := runJSON[api.TidesResponse](t, location.NewMemoryStore(),
		"tides", "2024-07-04", "--lat", "36.0671", "--lon", "120.3826", "--name", "Qingdao")

	loc := models.Location{Name: "Qingdao", Latitude: 36.0671, Longitude: 120.3826}
	assert.Equal(t, loc, resp.Location)
	assert.Equal(t, tide.PredictTides(time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC), loc), resp.Tides)

	out, err := run(t, location.NewMemoryStore(), "tides", "2024-07-04", "--lat", "36.0671", "--lon", "120.3826")
	require.NoError(t, err)
	assert.Contains(t, out, "36.0671,120.3826")
	assert.Contains(t, out, "High")
	assert.Contains(t, out, "Low")
}

func TestTidesCommand_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"lat without lon", []string{"tides", "--lat", "10"}},
		{"latitude out of range", []string{"tides", "--lat", "91", "--lon", "0"}},
		{"bad date", []string{"tides", "2024-02-30"}},
		{"too many args", []string{"tides", "2024-01-01", "2024-01-02"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, location.NewMemoryStore(), tt.args...)
			assert.Error(t, err)
		})
	}
}

func TestCalendarCommand(t *testing.T) {
	out, err := run(t, location.NewMemoryStore(), "calendar", "2024-06")
	require.NoError(t, err)
	assert.Contains(t, out, "June 2024")
	assert.Contains(t, out, "Su")
	assert.Contains(t, out, "30")

	resp := runJSON[api.CalendarResponse](t, location.NewMemoryStore(), "calendar", "2024-06")
	assert.Len(t, resp.Days, 42)
	require.NotNil(t, resp.Location)
	assert.Equal(t, location.DefaultLocation, *resp.Location)
	assert.Len(t, resp.Days[6].Tides, tide.PointsPerDay)

	resp = runJSON[api.CalendarResponse](t, location.NewMemoryStore(), "calendar", "--no-tides")
	assert.Equal(t, 2024, resp.Year)
	assert.Equal(t, 3, resp.Month)
	assert.Nil(t, resp.Location)
	for _, day := range resp.Days {
		assert.Empty(t, day.Tides)
	}

	_, err = run(t, location.NewMemoryStore(), "calendar", "2024-13")
	assert.Error(t, err)
}

func TestDayCommand(t *testing.T) {
	out, err := run(t, location.NewMemoryStore(), "day", "2024-03-01")
	require.NoError(t, err)

	assert.Contains(t, out, "Surfing")
	assert.Contains(t, out, "Fishing")
	assert.Contains(t, out, "Photography")
	assert.Contains(t, out, "2024-02-29")
	assert.Contains(t, out, "2024-03-02")
}

func TestLocationsCommands(t *testing.T) {
	store := location.NewMemoryStore()

	resp := runJSON[api.LocationsResponse](t, store, "locations", "list")
	assert.Equal(t, location.DefaultLocation, resp.Current)
	assert.Empty(t, resp.Saved)
	assert.Equal(t, location.Presets(), resp.Presets)

	resp = runJSON[api.LocationsResponse](t, store, "locations", "add", "Home", "22.5431", "114.0579")
	require.Len(t, resp.Saved, 1)
	assert.Equal(t, models.Location{Name: "Home", Latitude: 22.5431, Longitude: 114.0579}, resp.Saved[0])

	resp = runJSON[api.LocationsResponse](t, store, "locations", "set", "Home")
	assert.Equal(t, "Home", resp.Current.Name)

	resp = runJSON[api.LocationsResponse](t, store, "locations", "set", "上海")
	assert.Equal(t, "上海", resp.Current.Name)

	resp = runJSON[api.LocationsResponse](t, store, "locations", "set", "Boat", "30", "122.5")
	assert.Equal(t, models.Location{Name: "Boat", Latitude: 30, Longitude: 122.5}, resp.Current)

	// commands without --lat/--lon now follow the current location
	tides := runJSON[api.TidesResponse](t, store, "tides", "2024-07-04")
	assert.Equal(t, "Boat", tides.Location.Name)

	resp = runJSON[api.LocationsResponse](t, store, "loc", "rm", "Home")
	assert.Empty(t, resp.Saved)

	out, err := run(t, store, "locations", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Boat (30.0000, 122.5000)")
	assert.Contains(t, out, "none")
}

func TestLocationsCommands_Errors(t *testing.T) {
	store := location.NewMemoryStore()

	_, err := run(t, store, "locations", "remove", "Atlantis")
	assert.ErrorIs(t, err, location.ErrLocationNotFound)

	_, err = run(t, store, "locations", "set", "Atlantis")
	assert.ErrorIs(t, err, location.ErrLocationNotFound)

	_, err = run(t, store, "locations", "add", "Pole", "91", "0")
	assert.Error(t, err)

	_, err = run(t, store, "locations", "set", "Half", "10")
	assert.Error(t, err)
}

func TestConfig_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lunartide.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
profile: work
store:
  backend: DynamoDB
dynamodb:
  table: tides
log:
  level: debug
`), 0o600))

	a := &App{v: viper.New(), cfgFile: path}
	require.NoError(t, a.initConfig())
	cfg := a.storeConfig()
	assert.Equal(t, "work", cfg.Profile)
	assert.Equal(t, config.StoreDynamoDB, cfg.StoreBackend)
	assert.Equal(t, "tides", cfg.DynamoTable)
	assert.Equal(t, "debug", cfg.LogLevel.String())

	t.Setenv("LUNARTIDE_PROFILE", "beach")
	t.Setenv("LUNARTIDE_S3_BUCKET", "my-bucket")
	a = &App{v: viper.New(), cfgFile: path}
	require.NoError(t, a.initConfig())
	cfg = a.storeConfig()
	assert.Equal(t, "beach", cfg.Profile)
	assert.Equal(t, "my-bucket", cfg.S3Bucket)
}

func TestConfig_Defaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	a := &App{v: viper.New()}
	require.NoError(t, a.initConfig())
	cfg := a.storeConfig()
	assert.Equal(t, config.StoreFile, cfg.StoreBackend)
	assert.Equal(t, "default", cfg.Profile)
	assert.Equal(t, "warn", cfg.LogLevel.String())
}

func TestConfig_MissingExplicitFile(t *testing.T) {
	a := &App{v: viper.New(), cfgFile: filepath.Join(t.TempDir(), "missing.yaml")}
	assert.Error(t, a.initConfig())
}

func TestStoreFlagSelectsBackend(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	var out bytes.Buffer
	cmd := NewRootCommand(WithTimezones(fixedToday{}), WithClock(func() time.Time { return fixedNow }))
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"locations", "list", "--store", "memory", "--json"})
	require.NoError(t, cmd.Execute())

	var resp api.LocationsResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, location.DefaultLocation, resp.Current)
}
