package geospatial

import (
	"fmt"
	"strings"

	"github.com/tidwall/geodesic"
)

// DistanceFunc returns the distance in meters between two lon/lat points.
type DistanceFunc func(lon1, lat1, lon2, lat2 float64) float64

// Distance models accepted by ParseModel.
const (
	ModelWGS84  = "wgs84"
	ModelSphere = "sphere"
)

// Inverse solves the inverse geodesic problem on the WGS84 ellipsoid and
// returns the distance in meters with the forward azimuth at the first point
// and the back azimuth at the second point, both in degrees.
func Inverse(lon1, lat1, lon2, lat2 float64) (dist, az12, az21 float64) {
	var azi2 float64
	geodesic.WGS84.Inverse(lat1, lon1, lat2, lon2, &dist, &az12, &azi2)
	if azi2 > 0 {
		az21 = azi2 - 180
	} else {
		az21 = azi2 + 180
	}
	return dist, az12, az21
}

// Geodesic is the WGS84 ellipsoidal distance.
func Geodesic(lon1, lat1, lon2, lat2 float64) float64 {
	dist, _, _ := Inverse(lon1, lat1, lon2, lat2)
	return dist
}

// Destination solves the direct problem: the point reached from lon/lat after
// travelling dist meters along azimuth az (degrees from north).
func Destination(lon, lat, az, dist float64) (lon2, lat2 float64) {
	var azi2 float64
	geodesic.WGS84.Direct(lat, lon, az, dist, &lat2, &lon2, &azi2)
	return lon2, lat2
}

// ParseModel maps a configured model name to its distance function.
func ParseModel(name string) (DistanceFunc, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", ModelWGS84:
		return Geodesic, nil
	case ModelSphere:
		return Haversine, nil
	default:
		return nil, fmt.Errorf("unknown distance model %q", name)
	}
}
