package geojson_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/geojsonprofil/profil/internal/adapters/geojson"
	"github.com/geojsonprofil/profil/internal/core/domain"
)

const exported = `{"name":"demo.geojson","type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"LineString","coordinates":[[20.508315289026996,50.45245033244687,199.68],[20.508320567942125,50.452467736108744,199.45],[20.508325846861265,50.45248513977032,199.39]]}}]}`

func TestDecode_ExportedProfile(t *testing.T) {
	pts, err := geojson.Decode(strings.NewReader(exported))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 3 {
		t.Fatalf("expected 3 points, got %d", len(pts))
	}
	want := domain.InputPoint{Lon: 20.508315289026996, Lat: 50.45245033244687, Z: 199.68}
	if pts[0] != want {
		t.Errorf("expected %+v, got %+v", want, pts[0])
	}
	if pts[2].Z != 199.39 {
		t.Errorf("expected z 199.39, got %v", pts[2].Z)
	}
}

func TestDecode_OnlyFirstFeature(t *testing.T) {
	doc := `{"features":[
		{"geometry":{"coordinates":[[0,0,10],[0,0.009,20]]}},
		{"geometry":{"coordinates":"ignored"}}
	]}`
	pts, err := geojson.DecodeBytes([]byte(doc))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 2 {
		t.Errorf("expected 2 points, got %d", len(pts))
	}
}

func TestDecode_TrailingWhitespace(t *testing.T) {
	pts, err := geojson.DecodeBytes([]byte("{\"features\":[{\"geometry\":{\"coordinates\":[[0,0,10]]}}]}\r\n\n  "))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(pts) != 1 {
		t.Errorf("expected 1 point, got %d", len(pts))
	}
}

func TestDecode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"not json", `lorem ipsum`, nil},
		{"missing features", `{"type":"FeatureCollection"}`, geojson.ErrNoFeatures},
		{"empty features", `{"features":[]}`, geojson.ErrNoFeatures},
		{"missing geometry", `{"features":[{"type":"Feature"}]}`, geojson.ErrNoGeometry},
		{"null geometry", `{"features":[{"geometry":null}]}`, geojson.ErrNoGeometry},
		{"empty coordinates", `{"features":[{"geometry":{"coordinates":[]}}]}`, domain.ErrNoCoordinates},
		{"missing coordinates", `{"features":[{"geometry":{"type":"LineString"}}]}`, domain.ErrNoCoordinates},
		{"point geometry", `{"features":[{"geometry":{"coordinates":[1,2,3]}}]}`, nil},
		{"two values", `{"features":[{"geometry":{"coordinates":[[1,2]]}}]}`, nil},
		{"four values", `{"features":[{"geometry":{"coordinates":[[1,2,3,4]]}}]}`, nil},
		{"string elevation", `{"features":[{"geometry":{"coordinates":[[1,2,"high"]]}}]}`, nil},
		{"null elevation", `{"features":[{"geometry":{"coordinates":[[1,2,null]]}}]}`, nil},
		{"latitude out of range", `{"features":[{"geometry":{"coordinates":[[1,91,3]]}}]}`, nil},
		{"features not a list", `{"features":{"geometry":{}}}`, nil},
		{"trailing garbage", `{"features":[{"geometry":{"coordinates":[[0,0,10],[0,0.009,20]]}}]} this is not json`, geojson.ErrTrailing},
		{"second document", `{"features":[{"geometry":{"coordinates":[[0,0,10]]}}]}{"features":[]}`, geojson.ErrTrailing},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := geojson.DecodeBytes([]byte(tt.doc))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
