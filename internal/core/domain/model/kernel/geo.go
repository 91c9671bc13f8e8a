package kernel

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

const (
	// GeoLatMin is the minimum valid latitude in degrees.
	GeoLatMin = -90.0
	// GeoLatMax is the maximum valid latitude in degrees.
	GeoLatMax = 90.0
	// GeoLonMin is the minimum valid longitude in degrees.
	GeoLonMin = -180.0
	// GeoLonMax is the maximum valid longitude in degrees.
	GeoLonMax = 180.0
)

// ErrGeoPointIsNotConstructed is returned when attempting to use an improperly initialized GeoPoint.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint constructor")

// GeoPoint represents a geographic coordinate pair in decimal degrees.
// It is an immutable value object; the zero value is invalid and must be
// created through NewGeoPoint.
//
// Example:
//
//	point, err := kernel.NewGeoPoint(12.9716, 77.5946)
//	if err != nil {
//	    // handle validation error
//	}
type GeoPoint struct {
	lat   float64
	lon   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given latitude and longitude.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
func NewGeoPoint(lat float64, lon float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(point.setLat(lat), point.setLon(lon)); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// Validate checks if the GeoPoint was properly constructed via NewGeoPoint.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

// Lat returns the latitude in decimal degrees.
func (p GeoPoint) Lat() float64 {
	return p.lat
}

// Lon returns the longitude in decimal degrees.
func (p GeoPoint) Lon() float64 {
	return p.lon
}

// String returns a human-readable representation of the point.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%.7f,%.7f)", p.lat, p.lon)
}

// IsEqual compares two points for exact coordinate equality.
// Returns an error if either point was not properly constructed.
func (p GeoPoint) IsEqual(other GeoPoint) (bool, error) {
	if err := p.Validate(); err != nil {
		return false, err
	}
	if err := other.Validate(); err != nil {
		return false, err
	}
	return p.lat == other.lat && p.lon == other.lon, nil
}

func (p *GeoPoint) setLat(lat float64) error {
	if lat < GeoLatMin || lat > GeoLatMax {
		return errs.NewValueIsOutOfRangeError("latitude", lat, GeoLatMin, GeoLatMax)
	}
	p.lat = lat
	return nil
}

func (p *GeoPoint) setLon(lon float64) error {
	if lon < GeoLonMin || lon > GeoLonMax {
		return errs.NewValueIsOutOfRangeError("longitude", lon, GeoLonMin, GeoLonMax)
	}
	p.lon = lon
	return nil
}
