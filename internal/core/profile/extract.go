// Package profile turns a geodesic coordinate sequence into a flattened
// distance/elevation profile and lays out the cross-section drawing for it.
package profile

import (
	"fmt"
	"math"

	"github.com/geojsonprofil/profil/internal/core/domain"
	"github.com/geojsonprofil/profil/internal/pkg/geospatial"
)

// Extract accumulates the distance between consecutive coordinates and
// returns one ProfilePoint per input point, in input order. The first point
// sits at x = 0. A nil dist uses the WGS84 geodesic.
//
// Reversing the input does not mirror the x values: each point keeps its
// distance from whichever end comes first.
func Extract(points []domain.InputPoint, dist geospatial.DistanceFunc) ([]domain.ProfilePoint, error) {
	if len(points) == 0 {
		return nil, domain.ErrNoCoordinates
	}
	if dist == nil {
		dist = geospatial.Geodesic
	}

	out := make([]domain.ProfilePoint, 0, len(points))
	out = append(out, domain.ProfilePoint{X: 0.0, Z: points[0].Z})

	prevLon, prevLat := points[0].Lon, points[0].Lat
	distance := 0.0
	for i := 1; i < len(points); i++ {
		p := points[i]
		d := dist(prevLon, prevLat, p.Lon, p.Lat)
		if math.IsNaN(d) || math.IsInf(d, 0) || d < 0 {
			return nil, fmt.Errorf("segment %d: invalid distance %v", i, d)
		}
		distance += d
		out = append(out, domain.ProfilePoint{X: distance, Z: p.Z})
		prevLon, prevLat = p.Lon, p.Lat
	}

	return out, nil
}
