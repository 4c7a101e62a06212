package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTidePointValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		point   TidePoint
		wantErr string
	}{
		{
			name:  "valid low tide",
			point: TidePoint{Time: "03:07", Height: 0.25},
		},
		{
			name:  "valid high tide at midnight",
			point: TidePoint{Time: "00:00", Height: 2.1, IsHighTide: true},
		},
		{
			name:    "missing zero padding",
			point:   TidePoint{Time: "3:07", Height: 0.25},
			wantErr: "invalid time format",
		},
		{
			name:    "hour out of range",
			point:   TidePoint{Time: "24:00", Height: 0.25},
			wantErr: "invalid hour",
		},
		{
			name:    "minute out of range",
			point:   TidePoint{Time: "12:60", Height: 0.25},
			wantErr: "invalid minute",
		},
		{
			name:    "negative height",
			point:   TidePoint{Time: "12:00", Height: -0.1},
			wantErr: "invalid height",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.point.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestTidePointClockValue(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 905, TidePoint{Time: "09:05"}.ClockValue())
	assert.Equal(t, 930, TidePoint{Time: "09:30"}.ClockValue())
	assert.Equal(t, 1000, TidePoint{Time: "10:00"}.ClockValue())
	assert.Equal(t, 0, TidePoint{Time: "00:00"}.ClockValue())
	assert.Equal(t, -1, TidePoint{Time: "garbage"}.ClockValue())

	assert.Less(t, TidePoint{Time: "09:05"}.ClockValue(), TidePoint{Time: "09:30"}.ClockValue())
	assert.Less(t, TidePoint{Time: "09:30"}.ClockValue(), TidePoint{Time: "10:00"}.ClockValue())
}

func TestTidePointType(t *testing.T) {
	t.Parallel()

	assert.Equal(t, TideTypeHigh, TidePoint{IsHighTide: true}.Type())
	assert.Equal(t, TideTypeLow, TidePoint{}.Type())
}

func TestTidePointJSONFieldNames(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(TidePoint{Time: "05:45", Height: 1.5, IsHighTide: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"time":"05:45","height":1.5,"isHighTide":true}`, string(data))
}
