package profile

import (
	"fmt"
	"math"

	"github.com/geojsonprofil/profil/internal/core/domain"
)

// maxAbsElevation bounds elevations so floor/ceil fit comfortably in an int.
const maxAbsElevation = 1e7

// BoundsOf computes the grid range of a non-empty profile.
func BoundsOf(points []domain.ProfilePoint) (domain.BoundingRange, error) {
	if len(points) == 0 {
		return domain.BoundingRange{}, domain.ErrNoCoordinates
	}

	minZ, maxZ := points[0].Z, points[0].Z
	minX, maxX := points[0].X, points[0].X
	for _, p := range points {
		if math.IsNaN(p.Z) || math.IsInf(p.Z, 0) {
			return domain.BoundingRange{}, fmt.Errorf("elevation is not a finite number: %v", p.Z)
		}
		minZ = math.Min(minZ, p.Z)
		maxZ = math.Max(maxZ, p.Z)
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
	}

	if math.Abs(minZ) > maxAbsElevation || math.Abs(maxZ) > maxAbsElevation {
		return domain.BoundingRange{}, fmt.Errorf("elevation out of range: %v..%v", minZ, maxZ)
	}

	return domain.BoundingRange{
		ZMin:   int(math.Floor(minZ)),
		ZMax:   int(math.Ceil(maxZ)),
		XStart: minX,
		XEnd:   maxX,
	}, nil
}
