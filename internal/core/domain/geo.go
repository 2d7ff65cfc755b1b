package domain

// InputPoint is one (longitude, latitude, elevation) triple of the uploaded line (WGS 84).
type InputPoint struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
	Z   float64 `json:"z"`
}

// ProfilePoint is a point of the flattened profile: cumulative along-track
// distance in metres and the elevation passed through unchanged.
type ProfilePoint struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// BoundingRange is the extent of a profile used to lay out the grid.
// ZMin and ZMax are the floor of the lowest and the ceiling of the highest elevation.
type BoundingRange struct {
	ZMin   int     `json:"z_min"`
	ZMax   int     `json:"z_max"`
	XStart float64 `json:"x_start"`
	XEnd   float64 `json:"x_end"`
}

// Levels returns the number of whole-number elevations from ZMin to ZMax inclusive.
func (b BoundingRange) Levels() int {
	return b.ZMax - b.ZMin + 1
}

// Length returns the horizontal extent of the profile.
func (b BoundingRange) Length() float64 {
	return b.XEnd - b.XStart
}
