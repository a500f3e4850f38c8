package weather

import (
	"errors"
	"fmt"
)

// ErrNotFound covers every case where no weather data could be produced for a
// city: unknown city, upstream failure, or malformed upstream payload. The
// distinction is deliberately not exposed to callers.
var ErrNotFound = errors.New("weather data not found")

// TemperatureUnavailable is rendered when the provider omits a temperature.
const TemperatureUnavailable = "N/A"

// Report is the fully populated weather result for a city. The same shape is
// returned whether it was served from cache or freshly fetched.
type Report struct {
	City           string `json:"city"`
	MinTemperature string `json:"min_temperature"`
	MaxTemperature string `json:"max_temperature"`
	Description    string `json:"description"`
}

// Open-Meteo WMO weather interpretation codes.
var codeDescriptions = map[int]string{
	0:  "clear",
	1:  "mostly clear",
	2:  "partly cloudy",
	3:  "overcast",
	45: "fog",
	48: "haze",
	51: "drizzle",
	61: "light rain",
	63: "moderate rain",
	65: "heavy rain",
	71: "light snow",
	73: "moderate snow",
	75: "heavy snow",
	95: "thunderstorm",
}

// DescribeCode maps a provider weather code to its description. Unknown codes
// render as "code {n}" rather than failing; a missing code yields a generic
// placeholder.
func DescribeCode(code *int) string {
	if code == nil {
		return "no description"
	}
	if desc, ok := codeDescriptions[*code]; ok {
		return desc
	}
	return fmt.Sprintf("code %d", *code)
}

// FormatTemperature renders a provider temperature, substituting the
// unavailable marker when the field is absent.
func FormatTemperature(value *float64) string {
	if value == nil {
		return TemperatureUnavailable
	}
	return fmt.Sprintf("%g°C", *value)
}
