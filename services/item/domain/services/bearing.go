package services

import (
	"math"

	"github.com/tidwall/geodesic"

	"github.com/ghuser/geoitems/services/item/domain/models"
)

// Reference point every bearing is measured from (New York City).
const (
	ReferenceLatitude  = 40.7128
	ReferenceLongitude = -74.0060
)

// Azimuth returns the forward azimuth, in degrees clockwise from true north
// and normalized to [0, 360), of the WGS84 geodesic from the reference point
// to (lat, lon).
//
// Points coincident with or antipodal to the reference point are not special
// cased; the azimuth is whatever the inverse solution yields there.
func Azimuth(lat, lon float64) float64 {
	var azi1 float64
	geodesic.WGS84.Inverse(ReferenceLatitude, ReferenceLongitude, lat, lon, nil, &azi1, nil)
	return normalizeAzimuth(azi1)
}

// Bearing maps the azimuth from the reference point to (lat, lon) onto a
// compass quadrant. Any finite input yields one of the four labels.
func Bearing(lat, lon float64) models.Direction {
	return quadrant(Azimuth(lat, lon))
}

func normalizeAzimuth(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	// -1e-15 + 360 rounds to 360.
	if a >= 360 {
		a -= 360
	}
	return a
}

func quadrant(a float64) models.Direction {
	switch {
	case a >= 0 && a < 90:
		return models.DirectionNE
	case a >= 90 && a < 180:
		return models.DirectionSE
	case a >= 180 && a < 270:
		return models.DirectionSW
	default:
		return models.DirectionNW
	}
}
