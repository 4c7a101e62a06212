package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/bbernstein/lunartide/internal/api"
	"github.com/bbernstein/lunartide/internal/location"
	"github.com/bbernstein/lunartide/internal/models"
	"github.com/spf13/cobra"
)

type locationFlags struct {
	lat, lon float64
	name     string
}

func addLocationFlags(cmd *cobra.Command, f *locationFlags) {
	cmd.Flags().Float64Var(&f.lat, "lat", 0, "latitude, overrides the current location")
	cmd.Flags().Float64Var(&f.lon, "lon", 0, "longitude, overrides the current location")
	cmd.Flags().StringVar(&f.name, "name", "", "display name for --lat/--lon")
}

// resolveLocation uses --lat/--lon when given, otherwise the current preference
func (a *App) resolveLocation(cmd *cobra.Command, f *locationFlags) (models.Location, error) {
	latSet, lonSet := cmd.Flags().Changed("lat"), cmd.Flags().Changed("lon")
	if !latSet && !lonSet {
		return a.manager.Current(cmd.Context())
	}
	if latSet != lonSet {
		return models.Location{}, fmt.Errorf("--lat and --lon must be given together")
	}
	if err := models.ValidateCoordinates(f.lat, f.lon); err != nil {
		return models.Location{}, &api.InvalidCoordinatesError{Err: err}
	}

	name := f.name
	if name == "" {
		name = fmt.Sprintf("%.4f,%.4f", f.lat, f.lon)
	}
	return models.Location{Name: name, Latitude: f.lat, Longitude: f.lon}, nil
}

// resolveDate parses the optional date argument, defaulting to today at loc
func (a *App) resolveDate(args []string, loc models.Location) (time.Time, error) {
	if len(args) == 0 {
		return a.today(loc), nil
	}
	return api.ParseDate(args[0])
}

func (a *App) print(cmd *cobra.Command, body interface{}, render func() string) error {
	if a.asJSON {
		out, err := json.MarshalIndent(body, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding output: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	}
	_, err := fmt.Fprintln(cmd.OutOrStdout(), render())
	return err
}

func (a *App) newMoonCommand() *cobra.Command {
	var f locationFlags
	cmd := &cobra.Command{
		Use:   "moon [YYYY-MM-DD]",
		Short: "Show the moon phase, rise and set for a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.resolveLocation(cmd, &f)
			if err != nil {
				return err
			}
			date, err := a.resolveDate(args, loc)
			if err != nil {
				return err
			}

			report := a.almanac.Day(date, loc)
			return a.print(cmd, api.NewDayResponse(report), func() string {
				return renderMoon(report)
			})
		},
	}
	addLocationFlags(cmd, &f)
	return cmd
}

func (a *App) newTidesCommand() *cobra.Command {
	var f locationFlags
	cmd := &cobra.Command{
		Use:   "tides [YYYY-MM-DD]",
		Short: "Show the estimated high and low tides for a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.resolveLocation(cmd, &f)
			if err != nil {
				return err
			}
			date, err := a.resolveDate(args, loc)
			if err != nil {
				return err
			}

			dateStr := date.Format(api.DateLayout)
			tides := a.almanac.Tides(date, loc)
			return a.print(cmd, api.NewTidesResponse(dateStr, loc, tides), func() string {
				return renderTides(dateStr, loc, tides)
			})
		},
	}
	addLocationFlags(cmd, &f)
	return cmd
}

func (a *App) newCalendarCommand() *cobra.Command {
	var f locationFlags
	var noTides bool
	cmd := &cobra.Command{
		Use:   "calendar [YYYY-MM]",
		Short: "Show a month of moon phases",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.resolveLocation(cmd, &f)
			if err != nil {
				return err
			}

			var year int
			var month time.Month
			if len(args) == 0 {
				today := a.today(loc)
				year, month = today.Year(), today.Month()
			} else if year, month, err = api.ParseYearMonth(args[0]); err != nil {
				return err
			}

			var at *models.Location
			if !noTides {
				at = &loc
			}
			days := a.almanac.Calendar(year, month, at)
			return a.print(cmd, api.NewCalendarResponse(year, int(month), at, days), func() string {
				return renderCalendar(year, month, days)
			})
		},
	}
	addLocationFlags(cmd, &f)
	cmd.Flags().BoolVar(&noTides, "no-tides", false, "leave tide predictions out of the JSON output")
	return cmd
}

func (a *App) newDayCommand() *cobra.Command {
	var f locationFlags
	cmd := &cobra.Command{
		Use:   "day [YYYY-MM-DD]",
		Short: "Show the full moon and tide report for a day",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.resolveLocation(cmd, &f)
			if err != nil {
				return err
			}
			date, err := a.resolveDate(args, loc)
			if err != nil {
				return err
			}

			report := a.almanac.Day(date, loc)
			return a.print(cmd, api.NewDayResponse(report), func() string {
				return renderDay(report)
			})
		},
	}
	addLocationFlags(cmd, &f)
	return cmd
}

func (a *App) newLocationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "locations",
		Aliases: []string{"loc"},
		Short:   "Manage the current and saved locations",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the current, saved and preset locations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.printLocations(cmd)
		},
	}

	set := &cobra.Command{
		Use:   "set NAME [LAT LON]",
		Short: "Set the current location by saved or preset name, or by coordinates",
		Args:  cobra.RangeArgs(1, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.locationFromArgs(cmd, args)
			if err != nil {
				return err
			}
			if err := a.manager.SetCurrent(cmd.Context(), loc); err != nil {
				return err
			}
			return a.printLocations(cmd)
		},
	}

	add := &cobra.Command{
		Use:   "add NAME LAT LON",
		Short: "Save a location, replacing any with the same name",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := a.locationFromArgs(cmd, args)
			if err != nil {
				return err
			}
			if err := a.manager.AddSaved(cmd.Context(), loc); err != nil {
				return err
			}
			return a.printLocations(cmd)
		},
	}

	remove := &cobra.Command{
		Use:     "remove NAME",
		Aliases: []string{"rm"},
		Short:   "Remove a saved location",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.manager.RemoveSaved(cmd.Context(), args[0]); err != nil {
				return fmt.Errorf("removing %q: %w", args[0], err)
			}
			return a.printLocations(cmd)
		},
	}

	cmd.AddCommand(list, set, add, remove)
	return cmd
}

// locationFromArgs builds a location from NAME LAT LON, or looks NAME up
// among the saved locations and presets
func (a *App) locationFromArgs(cmd *cobra.Command, args []string) (models.Location, error) {
	switch len(args) {
	case 3:
		lat, lon, _, err := api.ParseCoordinates(map[string]string{"lat": args[1], "lon": args[2]})
		if err != nil {
			return models.Location{}, err
		}
		loc := models.Location{Name: args[0], Latitude: lat, Longitude: lon}
		return loc, loc.Validate()
	case 1:
		saved, err := a.manager.Saved(cmd.Context())
		if err != nil {
			return models.Location{}, err
		}
		candidates := append(append([]models.Location(nil), saved...), location.Presets()...)
		for _, loc := range candidates {
			if loc.Name == args[0] {
				return loc, nil
			}
		}
		return models.Location{}, fmt.Errorf("%w: %s", location.ErrLocationNotFound, args[0])
	default:
		return models.Location{}, fmt.Errorf("expected NAME or NAME LAT LON")
	}
}

func (a *App) printLocations(cmd *cobra.Command) error {
	prefs, err := a.manager.Preferences(cmd.Context())
	if err != nil {
		return err
	}
	current := location.DefaultLocation
	if prefs.CurrentLocation != nil {
		current = *prefs.CurrentLocation
	}
	presets := location.Presets()

	return a.print(cmd, api.NewLocationsResponse(current, prefs.SavedLocations, presets), func() string {
		return renderLocations(current, prefs.SavedLocations, presets)
	})
}
