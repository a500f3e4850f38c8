package weather

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int           { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestDescribeCode(t *testing.T) {
	tests := []struct {
		name string
		code *int
		want string
	}{
		{"clear sky", intPtr(0), "clear"},
		{"overcast", intPtr(3), "overcast"},
		{"light rain", intPtr(61), "light rain"},
		{"heavy snow", intPtr(75), "heavy snow"},
		{"thunderstorm", intPtr(95), "thunderstorm"},
		{"unknown code renders the raw value", intPtr(999), "code 999"},
		{"missing code", nil, "no description"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DescribeCode(tt.code))
		})
	}
}

func TestFormatTemperature(t *testing.T) {
	require.Equal(t, "21.5°C", FormatTemperature(floatPtr(21.5)))
	require.Equal(t, "-3°C", FormatTemperature(floatPtr(-3)))
	require.Equal(t, "N/A", FormatTemperature(nil))
}
