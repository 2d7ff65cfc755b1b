package geospatial_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geojsonprofil/profil/internal/pkg/geospatial"
)

func TestGeodesic_EquatorDegree(t *testing.T) {
	// One degree of longitude on the equator is a*pi/180.
	got := geospatial.Geodesic(0, 0, 1, 0)
	assert.InDelta(t, 111319.4908, got, 0.01)
}

func TestGeodesic_MeridianNearEquator(t *testing.T) {
	// 0.009 degrees of latitude at the equator on WGS84.
	got := geospatial.Geodesic(0, 0, 0, 0.009)
	assert.InDelta(t, 995.17, got, 0.1)
}

func TestGeodesic_CoincidentPoints(t *testing.T) {
	assert.Equal(t, 0.0, geospatial.Geodesic(20.5083, 50.4524, 20.5083, 50.4524))
}

func TestGeodesic_SymmetricMagnitude(t *testing.T) {
	ab := geospatial.Geodesic(20.508315, 50.452450, 20.508341, 50.452537)
	ba := geospatial.Geodesic(20.508341, 50.452537, 20.508315, 50.452450)
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestInverse_Azimuths(t *testing.T) {
	dist, az12, az21 := geospatial.Inverse(0, 0, 0, 1)
	assert.InDelta(t, 110574.39, dist, 0.1)
	assert.InDelta(t, 0, az12, 1e-9)
	assert.InDelta(t, 180, az21, 1e-9)
}

func TestDestination_RoundTrip(t *testing.T) {
	lon, lat := geospatial.Destination(19.94, 50.06, 0, 1000)
	assert.InDelta(t, 19.94, lon, 1e-9)
	assert.Greater(t, lat, 50.06)
	assert.InDelta(t, 1000, geospatial.Geodesic(19.94, 50.06, lon, lat), 1e-6)
}

func TestHaversine_CloseToGeodesic(t *testing.T) {
	h := geospatial.Haversine(0, 0, 0, 0.009)
	g := geospatial.Geodesic(0, 0, 0, 0.009)
	assert.InDelta(t, 1000.75, h, 0.01)
	// Sphere and ellipsoid disagree by well under one percent.
	assert.Less(t, math.Abs(h-g)/g, 0.01)
}

func TestParseModel(t *testing.T) {
	tests := []struct {
		name    string
		want    float64
		wantErr bool
	}{
		{name: "", want: geospatial.Geodesic(0, 0, 0, 0.009)},
		{name: "wgs84", want: geospatial.Geodesic(0, 0, 0, 0.009)},
		{name: " WGS84 ", want: geospatial.Geodesic(0, 0, 0, 0.009)},
		{name: "sphere", want: geospatial.Haversine(0, 0, 0, 0.009)},
		{name: "flat", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fn, err := geospatial.ParseModel(tt.name)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, fn(0, 0, 0, 0.009), 1e-9)
		})
	}
}
