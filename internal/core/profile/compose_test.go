package profile_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geojsonprofil/profil/internal/core/domain"
	"github.com/geojsonprofil/profil/internal/core/profile"
)

func TestBoundsOf(t *testing.T) {
	tests := []struct {
		name   string
		points []domain.ProfilePoint
		want   domain.BoundingRange
	}{
		{
			name:   "fractional elevations",
			points: []domain.ProfilePoint{{X: 0, Z: 199.68}, {X: 2, Z: 198.29}, {X: 4, Z: 199.01}},
			want:   domain.BoundingRange{ZMin: 198, ZMax: 200, XStart: 0, XEnd: 4},
		},
		{
			name:   "whole elevations",
			points: []domain.ProfilePoint{{X: 0, Z: 10}, {X: 995.17, Z: 20}},
			want:   domain.BoundingRange{ZMin: 10, ZMax: 20, XStart: 0, XEnd: 995.17},
		},
		{
			name:   "below sea level",
			points: []domain.ProfilePoint{{X: 0, Z: -2.5}, {X: 1, Z: -0.5}},
			want:   domain.BoundingRange{ZMin: -3, ZMax: 0, XStart: 0, XEnd: 1},
		},
		{
			name:   "single point",
			points: []domain.ProfilePoint{{X: 0, Z: 7}},
			want:   domain.BoundingRange{ZMin: 7, ZMax: 7, XStart: 0, XEnd: 0},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := profile.BoundsOf(tt.points)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			for _, p := range tt.points {
				assert.LessOrEqual(t, float64(got.ZMin), p.Z)
				assert.GreaterOrEqual(t, float64(got.ZMax), p.Z)
			}
		})
	}
}

func TestBoundsOf_Errors(t *testing.T) {
	_, err := profile.BoundsOf(nil)
	assert.ErrorIs(t, err, domain.ErrNoCoordinates)

	_, err = profile.BoundsOf([]domain.ProfilePoint{{Z: math.MaxFloat64}})
	assert.Error(t, err)

	_, err = profile.BoundsOf([]domain.ProfilePoint{{Z: 10}, {X: 1, Z: math.NaN()}})
	assert.Error(t, err)
}

func TestCompose_GridAndLabels(t *testing.T) {
	pts := []domain.ProfilePoint{{X: 0, Z: 10}, {X: 500, Z: 14.2}, {X: 995.17, Z: 20}}

	d, err := profile.Compose(pts, profile.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, domain.LayerProfile, d.Profile.Layer)
	require.Len(t, d.Profile.Vertices, 3)
	assert.Equal(t, domain.Vertex{X: 500, Y: 14.2}, d.Profile.Vertices[1])

	require.Len(t, d.Grid, 11)
	require.Len(t, d.Labels, 11)
	assert.Equal(t, d.Bounds.Levels(), len(d.Grid))

	for i, line := range d.Grid {
		level := float64(10 + i)
		assert.Equal(t, domain.LayerGrid, line.Layer)
		assert.Equal(t, domain.LinetypeDashed, line.Linetype)
		assert.Equal(t, domain.Vertex{X: 0, Y: level}, line.Start)
		assert.Equal(t, domain.Vertex{X: 995.17, Y: level}, line.End)

		label := d.Labels[i]
		assert.Equal(t, domain.LayerLabels, label.Layer)
		assert.Equal(t, domain.Vertex{X: -2, Y: level}, label.Insert)
		assert.Equal(t, 0.25, label.Height)
		assert.Equal(t, domain.AlignLeft, label.Align)
	}
	assert.Equal(t, "10.00", d.Labels[0].Value)
	assert.Equal(t, "20.00", d.Labels[10].Value)
}

func TestCompose_FlatProfile(t *testing.T) {
	pts := []domain.ProfilePoint{{X: 0, Z: 5}, {X: 10, Z: 5}}

	d, err := profile.Compose(pts, profile.DefaultOptions())
	require.NoError(t, err)
	require.Len(t, d.Grid, 1)
	require.Len(t, d.Labels, 1)
	assert.Equal(t, "5.00", d.Labels[0].Value)
}

func TestCompose_SinglePoint(t *testing.T) {
	d, err := profile.Compose([]domain.ProfilePoint{{X: 0, Z: 123}}, profile.DefaultOptions())
	require.NoError(t, err)

	assert.Len(t, d.Profile.Vertices, 1)
	require.Len(t, d.Grid, 1)
	// Zero-length gridline is kept.
	assert.Equal(t, d.Grid[0].Start, d.Grid[0].End)
}

func TestCompose_OffsetFollowsLeftmostPoint(t *testing.T) {
	opts := profile.DefaultOptions()
	opts.LabelOffset = 5
	opts.TextHeight = 1

	d, err := profile.Compose([]domain.ProfilePoint{{X: 3, Z: 1}, {X: 9, Z: 1.5}}, opts)
	require.NoError(t, err)
	for _, l := range d.Labels {
		assert.Equal(t, -2.0, l.Insert.X)
		assert.Equal(t, 1.0, l.Height)
	}
}

func TestCompose_GridlineLimit(t *testing.T) {
	opts := profile.DefaultOptions()
	opts.MaxGridlines = 5

	_, err := profile.Compose([]domain.ProfilePoint{{X: 0, Z: 0}, {X: 1, Z: 10}}, opts)
	assert.ErrorIs(t, err, profile.ErrTooManyGridlines)

	opts.MaxGridlines = 0
	d, err := profile.Compose([]domain.ProfilePoint{{X: 0, Z: 0}, {X: 1, Z: 10}}, opts)
	require.NoError(t, err)
	assert.Len(t, d.Grid, 11)
}

func TestGridRange_MatchesCompose(t *testing.T) {
	opts := profile.DefaultOptions()
	opts.MaxGridlines = 11
	points := []domain.ProfilePoint{{X: 0, Z: 10}, {X: 5, Z: 19.2}}

	bounds, err := profile.GridRange(points, opts)
	require.NoError(t, err)
	d, err := profile.Compose(points, opts)
	require.NoError(t, err)
	assert.Equal(t, d.Bounds, bounds)
	assert.Len(t, d.Grid, bounds.Levels())

	points = append(points, domain.ProfilePoint{X: 6, Z: 20.5})
	_, err = profile.GridRange(points, opts)
	assert.ErrorIs(t, err, profile.ErrTooManyGridlines)
	_, err = profile.Compose(points, opts)
	assert.ErrorIs(t, err, profile.ErrTooManyGridlines)
}

func TestCompose_EntitiesUseDeclaredLayers(t *testing.T) {
	d, err := profile.Compose([]domain.ProfilePoint{{X: 0, Z: 1.2}, {X: 4, Z: 3.7}}, profile.DefaultOptions())
	require.NoError(t, err)

	layers := domain.Layers()
	assert.Contains(t, layers, d.Profile.Layer)
	for _, l := range d.Grid {
		assert.Contains(t, layers, l.Layer)
	}
	for _, txt := range d.Labels {
		assert.Contains(t, layers, txt.Layer)
	}
	assert.Equal(t, []string{domain.LayerProfile, domain.LayerGrid, domain.LayerLabels}, layers)
}

func TestCompose_Empty(t *testing.T) {
	_, err := profile.Compose(nil, profile.DefaultOptions())
	assert.ErrorIs(t, err, domain.ErrNoCoordinates)
}

func TestFormatLevel(t *testing.T) {
	assert.Equal(t, "198.00", profile.FormatLevel(198))
	assert.Equal(t, "-3.00", profile.FormatLevel(-3))
	assert.Equal(t, "0.00", profile.FormatLevel(0))
}
