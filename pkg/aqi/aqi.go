// Package aqi holds the air-quality lookup contract used by the lab
// calibration challenge.
package aqi

import (
	"context"
	"errors"
	"fmt"
)

// Tolerance is how far a player's reading may drift from the live value.
const Tolerance = 3

// ErrUnavailable means no reading could be obtained.
var ErrUnavailable = errors.New("air quality service unavailable")

// Location is a city as the IQAir API names it.
type Location struct {
	City    string
	Region  string
	Country string
}

func (l Location) String() string {
	return fmt.Sprintf("%s, %s, %s", l.City, l.Region, l.Country)
}

// Lookup returns the current US AQI for a location.
type Lookup interface {
	FetchAQI(ctx context.Context, loc Location) (int, error)
}

// Category names a US EPA AQI band.
func Category(aqi int) string {
	switch {
	case aqi < 0:
		return "Unknown"
	case aqi <= 50:
		return "Good"
	case aqi <= 100:
		return "Moderate"
	case aqi <= 150:
		return "Unhealthy for Sensitive Groups"
	case aqi <= 200:
		return "Unhealthy"
	case aqi <= 300:
		return "Very Unhealthy"
	default:
		return "Hazardous"
	}
}

// WithinTolerance reports whether a player's reading is close enough.
func WithinTolerance(actual, entered int) bool {
	diff := actual - entered
	if diff < 0 {
		diff = -diff
	}
	return diff <= Tolerance
}

// Locations are the cities the challenge draws from.
var Locations = []Location{
	{"Berlin", "Berlin", "Germany"},
	{"Munich", "Bavaria", "Germany"},
	{"Hamburg", "Hamburg", "Germany"},
	{"Frankfurt am Main", "Hesse", "Germany"},
	{"Cologne", "North Rhine-Westphalia", "Germany"},
	{"Rotterdam", "South Holland", "Netherlands"},
	{"The Hague", "South Holland", "Netherlands"},
	{"Amsterdam", "North Holland", "Netherlands"},
	{"Maastricht", "Limburg", "Netherlands"},
	{"Utrecht", "Utrecht", "Netherlands"},
	{"Eindhoven", "North Brabant", "Netherlands"},
	{"Groningen", "Groningen", "Netherlands"},
	{"Paris", "Ile-de-France", "France"},
	{"Lyon", "Auvergne-Rhone-Alpes", "France"},
	{"Marseille", "Provence-Alpes-Cote d'Azur", "France"},
	{"London", "England", "United Kingdom"},
	{"Manchester", "England", "United Kingdom"},
	{"Birmingham", "England", "United Kingdom"},
	{"New York", "New York", "USA"},
	{"Los Angeles", "California", "USA"},
	{"San Francisco", "California", "USA"},
	{"Chicago", "Illinois", "USA"},
	{"Houston", "Texas", "USA"},
	{"Seattle", "Washington", "USA"},
	{"Phoenix", "Arizona", "USA"},
	{"Toronto", "Ontario", "Canada"},
	{"Vancouver", "British Columbia", "Canada"},
	{"Montreal", "Quebec", "Canada"},
	{"Delhi", "Delhi", "India"},
	{"Mumbai", "Maharashtra", "India"},
	{"Bengaluru", "Karnataka", "India"},
	{"Kolkata", "West Bengal", "India"},
	{"Beijing", "Beijing", "China"},
	{"Shanghai", "Shanghai", "China"},
	{"Shenzhen", "Guangdong", "China"},
	{"Guangzhou", "Guangdong", "China"},
	{"Tokyo", "Tokyo", "Japan"},
	{"Osaka", "Osaka", "Japan"},
	{"Sydney", "New South Wales", "Australia"},
	{"Melbourne", "Victoria", "Australia"},
	{"Mexico City", "Mexico City", "Mexico"},
	{"Guadalajara", "Jalisco", "Mexico"},
	{"Sao Paulo", "Sao Paulo", "Brazil"},
	{"Rio de Janeiro", "Rio de Janeiro", "Brazil"},
}
