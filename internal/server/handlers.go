package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/bbernstein/lunartide/internal/api"
	"github.com/bbernstein/lunartide/internal/location"
	"github.com/bbernstein/lunartide/internal/models"
	"github.com/gorilla/mux"
)

type healthResponse struct {
	api.APIResponse
	Status string            `json:"status"`
	Cache  map[string]uint64 `json:"cache"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	api.WriteJSON(w, http.StatusOK, &healthResponse{
		APIResponse: api.APIResponse{ResponseType: "health"},
		Status:      "ok",
		Cache:       s.almanac.CacheStats(),
	})
}

func (s *Server) handleMoon(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	loc, err := s.resolveLocation(r, params)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	date, err := s.resolveDate(params, loc)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewMoonPhaseResponse(date.Format(api.DateLayout), s.almanac.Phase(date)))
}

func (s *Server) handleMoonMonth(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	loc, err := s.resolveLocation(r, params)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	year, month, err := s.resolveMonth(params, loc)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewMoonPhasesResponse(year, int(month), s.almanac.MoonPhases(year, month)))
}

func (s *Server) handleRiseSet(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	loc, err := s.resolveLocation(r, params)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	date, err := s.resolveDate(params, loc)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewRiseSetResponse(date.Format(api.DateLayout), loc, s.almanac.RiseSet(date, loc)))
}

func (s *Server) handleTides(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	loc, err := s.resolveLocation(r, params)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	date, err := s.resolveDate(params, loc)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewTidesResponse(date.Format(api.DateLayout), loc, s.almanac.Tides(date, loc)))
}

func (s *Server) handleMonthTides(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	loc, err := s.resolveLocation(r, params)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	year, month, err := s.resolveMonth(params, loc)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewMonthTidesResponse(year, int(month), loc, s.almanac.MonthTides(year, month, loc)))
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	loc, err := s.resolveLocation(r, params)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	year, month, err := s.resolveMonth(params, loc)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewCalendarResponse(year, int(month), &loc, s.almanac.Calendar(year, month, &loc)))
}

func (s *Server) handleDay(w http.ResponseWriter, r *http.Request) {
	params := queryParams(r)
	loc, err := s.resolveLocation(r, params)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	date, err := s.resolveDate(params, loc)
	if err != nil {
		api.WriteError(w, err)
		return
	}

	api.WriteJSON(w, http.StatusOK, api.NewDayResponse(s.almanac.Day(date, loc)))
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	s.writeLocations(w, r, http.StatusOK)
}

func (s *Server) handleSetCurrent(w http.ResponseWriter, r *http.Request) {
	loc, err := decodeLocation(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if err := s.locations.SetCurrent(r.Context(), loc); err != nil {
		api.WriteError(w, err)
		return
	}
	s.writeLocations(w, r, http.StatusOK)
}

func (s *Server) handleAddSaved(w http.ResponseWriter, r *http.Request) {
	loc, err := decodeLocation(r)
	if err != nil {
		api.WriteError(w, err)
		return
	}
	if err := s.locations.AddSaved(r.Context(), loc); err != nil {
		api.WriteError(w, err)
		return
	}
	s.writeLocations(w, r, http.StatusCreated)
}

func (s *Server) handleRemoveSaved(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := s.locations.RemoveSaved(r.Context(), name); err != nil {
		api.WriteError(w, err)
		return
	}
	s.writeLocations(w, r, http.StatusOK)
}

func (s *Server) writeLocations(w http.ResponseWriter, r *http.Request, status int) {
	prefs, err := s.locations.Preferences(r.Context())
	if err != nil {
		api.WriteError(w, err)
		return
	}
	current := location.DefaultLocation
	if prefs.CurrentLocation != nil {
		current = *prefs.CurrentLocation
	}
	api.WriteJSON(w, status, api.NewLocationsResponse(current, prefs.SavedLocations, location.Presets()))
}

// resolveLocation uses explicit lat/lon when given, otherwise the current preference
func (s *Server) resolveLocation(r *http.Request, params map[string]string) (models.Location, error) {
	lat, lon, ok, err := api.ParseCoordinates(params)
	if err != nil {
		return models.Location{}, err
	}
	if !ok {
		return s.locations.Current(r.Context())
	}

	name := params["name"]
	if name == "" {
		name = fmt.Sprintf("%.4f,%.4f", lat, lon)
	}
	return models.Location{Name: name, Latitude: lat, Longitude: lon}, nil
}

// resolveDate parses the date parameter, defaulting to today at loc
func (s *Server) resolveDate(params map[string]string, loc models.Location) (time.Time, error) {
	if value, ok := params["date"]; ok {
		return api.ParseDate(value)
	}
	return s.today(loc), nil
}

// resolveMonth parses year and month, defaulting to the current month at loc
func (s *Server) resolveMonth(params map[string]string, loc models.Location) (int, time.Month, error) {
	yearStr, hasYear := params["year"]
	monthStr, hasMonth := params["month"]
	if !hasYear && !hasMonth {
		today := s.today(loc)
		return today.Year(), today.Month(), nil
	}
	if !hasYear {
		yearStr = fmt.Sprint(s.today(loc).Year())
	}
	if !hasMonth {
		return 0, 0, api.NewInvalidParameterError("month", "required when year is given", nil)
	}
	return api.ParseMonth(yearStr, monthStr)
}

func (s *Server) today(loc models.Location) time.Time {
	return s.timezones.Today(loc.Latitude, loc.Longitude, s.now())
}

func decodeLocation(r *http.Request) (models.Location, error) {
	var loc models.Location
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&loc); err != nil {
		return models.Location{}, api.NewInvalidParameterError("body", "expected a location object", err)
	}
	if err := loc.Validate(); err != nil {
		return models.Location{}, api.NewInvalidParameterError("body", "invalid location", err)
	}
	return loc, nil
}

func queryParams(r *http.Request) map[string]string {
	params := make(map[string]string)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}
