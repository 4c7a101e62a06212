package api

import (
	"encoding/json"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/bbernstein/lunartide/internal/models"
	"github.com/rs/zerolog/log"
)

type APIResponse struct {
	ResponseType string `json:"responseType"`
}

func (r APIResponse) GetResponseType() string {
	return r.ResponseType
}

type MoonPhaseResponse struct {
	APIResponse
	Date      string           `json:"date"`
	MoonPhase models.MoonPhase `json:"moonPhase"`
}

type MoonPhasesResponse struct {
	APIResponse
	Year   int                      `json:"year"`
	Month  int                      `json:"month"`
	Phases map[int]models.MoonPhase `json:"phases"`
}

type RiseSetResponse struct {
	APIResponse
	Date     string          `json:"date"`
	Location models.Location `json:"location"`
	models.RiseSet
}

type TidesResponse struct {
	APIResponse
	Date     string             `json:"date"`
	Location models.Location    `json:"location"`
	Tides    []models.TidePoint `json:"tides"`
}

type MonthTidesResponse struct {
	APIResponse
	Year     int                        `json:"year"`
	Month    int                        `json:"month"`
	Location models.Location            `json:"location"`
	Tides    map[int][]models.TidePoint `json:"tides"`
}

type CalendarResponse struct {
	APIResponse
	Year     int                  `json:"year"`
	Month    int                  `json:"month"`
	Location *models.Location     `json:"location,omitempty"`
	Days     []models.CalendarDay `json:"days"`
}

type DayResponse struct {
	APIResponse
	models.DayReport
}

type LocationsResponse struct {
	APIResponse
	Current models.Location   `json:"current"`
	Saved   []models.Location `json:"saved"`
	Presets []models.Location `json:"presets"`
}

type ErrorResponse struct {
	APIResponse
	Error string `json:"error"`
}

func NewMoonPhaseResponse(date string, phase models.MoonPhase) *MoonPhaseResponse {
	return &MoonPhaseResponse{
		APIResponse: APIResponse{ResponseType: "moonPhase"},
		Date:        date,
		MoonPhase:   phase,
	}
}

func NewMoonPhasesResponse(year, month int, phases map[int]models.MoonPhase) *MoonPhasesResponse {
	return &MoonPhasesResponse{
		APIResponse: APIResponse{ResponseType: "moonPhases"},
		Year:        year,
		Month:       month,
		Phases:      phases,
	}
}

func NewRiseSetResponse(date string, loc models.Location, riseSet models.RiseSet) *RiseSetResponse {
	return &RiseSetResponse{
		APIResponse: APIResponse{ResponseType: "riseSet"},
		Date:        date,
		Location:    loc,
		RiseSet:     riseSet,
	}
}

func NewTidesResponse(date string, loc models.Location, tides []models.TidePoint) *TidesResponse {
	return &TidesResponse{
		APIResponse: APIResponse{ResponseType: "tides"},
		Date:        date,
		Location:    loc,
		Tides:       tides,
	}
}

func NewMonthTidesResponse(year, month int, loc models.Location, tides map[int][]models.TidePoint) *MonthTidesResponse {
	return &MonthTidesResponse{
		APIResponse: APIResponse{ResponseType: "monthTides"},
		Year:        year,
		Month:       month,
		Location:    loc,
		Tides:       tides,
	}
}

func NewCalendarResponse(year, month int, loc *models.Location, days []models.CalendarDay) *CalendarResponse {
	return &CalendarResponse{
		APIResponse: APIResponse{ResponseType: "calendar"},
		Year:        year,
		Month:       month,
		Location:    loc,
		Days:        days,
	}
}

func NewDayResponse(report models.DayReport) *DayResponse {
	return &DayResponse{
		APIResponse: APIResponse{ResponseType: "day"},
		DayReport:   report,
	}
}

func NewLocationsResponse(current models.Location, saved, presets []models.Location) *LocationsResponse {
	return &LocationsResponse{
		APIResponse: APIResponse{ResponseType: "locations"},
		Current:     current,
		Saved:       saved,
		Presets:     presets,
	}
}

func NewErrorResponse(message string) *ErrorResponse {
	return &ErrorResponse{
		APIResponse: APIResponse{ResponseType: "error"},
		Error:       message,
	}
}

// WriteJSON renders body with the given status
func WriteJSON(w http.ResponseWriter, statusCode int, body interface{}) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
		statusCode = http.StatusInternalServerError
		jsonBody, _ = json.Marshal(NewErrorResponse("Internal Server Error"))
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(statusCode)
	if _, err := w.Write(jsonBody); err != nil {
		log.Error().Err(err).Msg("Failed to write response")
	}
}

// WriteError renders err in the error envelope with its mapped status.
// Internal errors are logged and hidden from the client.
func WriteError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error().Err(err).Msg("Request failed")
		message = "Internal Server Error"
	}
	WriteJSON(w, status, NewErrorResponse(message))
}

// Response helpers for API Gateway
func Success(body interface{}) (events.APIGatewayProxyResponse, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return Error("Internal Server Error", http.StatusInternalServerError)
	}

	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(jsonBody),
	}, nil
}

func Error(message string, statusCode int) (events.APIGatewayProxyResponse, error) {
	body, _ := json.Marshal(NewErrorResponse(message))

	return events.APIGatewayProxyResponse{
		StatusCode: statusCode,
		Headers: map[string]string{
			"Content-Type":                "application/json",
			"Access-Control-Allow-Origin": "*",
		},
		Body: string(body),
	}, nil
}
