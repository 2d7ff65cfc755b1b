// Package geojson reads elevation-profile lines from GeoJSON documents.
package geojson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/geojsonprofil/profil/internal/core/domain"
)

// featureCollection holds only what the profile needs. Features stay raw so
// that anything after the first one is never interpreted. Triples are decoded
// through pointers so that a JSON null is rejected instead of becoming zero.
type featureCollection struct {
	Features []json.RawMessage `json:"features"`
}

type feature struct {
	Geometry *geometry `json:"geometry"`
}

type geometry struct {
	Type        string       `json:"type"`
	Coordinates [][]*float64 `json:"coordinates"`
}

var (
	ErrNoFeatures = errors.New("geojson: document has no features")
	ErrNoGeometry = errors.New("geojson: first feature has no geometry")
	ErrTrailing   = errors.New("geojson: trailing data after document")
)

// Decode reads a FeatureCollection and returns the (lon, lat, z) triples of
// features[0].geometry.coordinates in document order.
func Decode(r io.Reader) ([]domain.InputPoint, error) {
	var fc featureCollection
	dec := json.NewDecoder(r)
	if err := dec.Decode(&fc); err != nil {
		return nil, fmt.Errorf("geojson: parse: %w", err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, ErrTrailing
	}
	if len(fc.Features) == 0 {
		return nil, ErrNoFeatures
	}
	var first feature
	if err := json.Unmarshal(fc.Features[0], &first); err != nil {
		return nil, fmt.Errorf("geojson: parse first feature: %w", err)
	}
	g := first.Geometry
	if g == nil {
		return nil, ErrNoGeometry
	}
	if len(g.Coordinates) == 0 {
		return nil, fmt.Errorf("geojson: %w", domain.ErrNoCoordinates)
	}

	points := make([]domain.InputPoint, len(g.Coordinates))
	for i, c := range g.Coordinates {
		if len(c) != 3 {
			return nil, fmt.Errorf("geojson: coordinate %d: want [lon, lat, elevation], got %d values", i, len(c))
		}
		for j, v := range c {
			if v == nil {
				return nil, fmt.Errorf("geojson: coordinate %d: value %d is null", i, j)
			}
		}
		lat := *c[1]
		if lat < -90 || lat > 90 {
			return nil, fmt.Errorf("geojson: coordinate %d: latitude %v out of range", i, lat)
		}
		points[i] = domain.InputPoint{Lon: *c[0], Lat: lat, Z: *c[2]}
	}
	return points, nil
}

// DecodeBytes is Decode over an in-memory document.
func DecodeBytes(data []byte) ([]domain.InputPoint, error) {
	return Decode(bytes.NewReader(data))
}

// Decoder adapts Decode to the service's decoder port.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) ([]domain.InputPoint, error) {
	return Decode(r)
}
