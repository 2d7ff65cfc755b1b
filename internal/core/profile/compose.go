package profile

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/geojsonprofil/profil/internal/core/domain"
)

// Options controls the annotation layout.
type Options struct {
	// LabelOffset is how far left of the first profile point labels start.
	LabelOffset float64
	// TextHeight is the glyph height of the elevation labels.
	TextHeight float64
	// MaxGridlines caps the number of elevation levels; 0 disables the cap.
	MaxGridlines int
}

// DefaultOptions returns the standard layout.
func DefaultOptions() Options {
	return Options{
		LabelOffset:  2.0,
		TextHeight:   0.25,
		MaxGridlines: 10000,
	}
}

// ErrTooManyGridlines is returned when the elevation range exceeds Options.MaxGridlines.
var ErrTooManyGridlines = errors.New("too many gridlines")

// GridRange returns the bounds of points and enforces the gridline limit of opts.
func GridRange(points []domain.ProfilePoint, opts Options) (domain.BoundingRange, error) {
	bounds, err := BoundsOf(points)
	if err != nil {
		return domain.BoundingRange{}, err
	}
	if levels := bounds.Levels(); opts.MaxGridlines > 0 && levels > opts.MaxGridlines {
		return domain.BoundingRange{}, fmt.Errorf("%w: elevation range %d..%d needs %d, limit is %d",
			ErrTooManyGridlines, bounds.ZMin, bounds.ZMax, levels, opts.MaxGridlines)
	}
	return bounds, nil
}

// Compose builds the drawing for a profile: the polyline through every point,
// a dashed gridline at every whole elevation between the floor of the lowest
// and the ceiling of the highest point, and a label for each gridline.
func Compose(points []domain.ProfilePoint, opts Options) (*domain.Drawing, error) {
	bounds, err := GridRange(points, opts)
	if err != nil {
		return nil, err
	}
	levels := bounds.Levels()

	vertices := make([]domain.Vertex, len(points))
	for i, p := range points {
		vertices[i] = domain.Vertex{X: p.X, Y: p.Z}
	}

	d := &domain.Drawing{
		Bounds:  bounds,
		Profile: domain.Polyline{Layer: domain.LayerProfile, Vertices: vertices},
		Grid:    make([]domain.Line, 0, levels),
		Labels:  make([]domain.Text, 0, levels),
	}

	for z := bounds.ZMin; z <= bounds.ZMax; z++ {
		level := float64(z)
		d.Grid = append(d.Grid, domain.Line{
			Layer:    domain.LayerGrid,
			Linetype: domain.LinetypeDashed,
			Start:    domain.Vertex{X: bounds.XStart, Y: level},
			End:      domain.Vertex{X: bounds.XEnd, Y: level},
		})
		d.Labels = append(d.Labels, domain.Text{
			Layer:  domain.LayerLabels,
			Value:  FormatLevel(z),
			Insert: domain.Vertex{X: bounds.XStart - opts.LabelOffset, Y: level},
			Height: opts.TextHeight,
			Align:  domain.AlignLeft,
		})
	}

	return d, nil
}

// FormatLevel renders an elevation label with two decimals.
func FormatLevel(z int) string {
	return strconv.FormatFloat(float64(z), 'f', 2, 64)
}
