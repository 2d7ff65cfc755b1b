package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGeoJSON = `{"type":"FeatureCollection","features":[{"type":"Feature","properties":{},` +
	`"geometry":{"type":"LineString","coordinates":[[21.0,52.0,101.2],[21.001,52.0005,103.8],[21.002,52.001,99.4]]}}]}`

func writeInput(t *testing.T, dir, content string) string {
	t.Helper()
	p := filepath.Join(dir, "profil.geojson")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestRun_WritesDrawing(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, sampleGeoJSON)
	out := filepath.Join(dir, "profil.dxf")

	var stdout bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"--in", in, "--out", out}, &stdout))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(data)), "EOF"))
	assert.Contains(t, stdout.String(), "points=3")
	assert.Contains(t, stdout.String(), "z=99..104")
	assert.Contains(t, stdout.String(), "gridlines=6")
	assertNoTempFiles(t, dir)
}

func TestRun_SphereModel(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, sampleGeoJSON)

	var stdout bytes.Buffer
	err := run(context.Background(), []string{"-i", in, "-o", filepath.Join(dir, "out.dxf"), "-m", "sphere"}, &stdout)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "out.dxf")
}

func TestRun_InvalidInputLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, `{"features":[]}`)
	out := filepath.Join(dir, "profil.dxf")

	err := run(context.Background(), []string{"--in", in, "--out", out}, &bytes.Buffer{})
	require.Error(t, err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "no output expected")
	assertNoTempFiles(t, dir)
}

func TestRun_BadArguments(t *testing.T) {
	dir := t.TempDir()
	in := writeInput(t, dir, sampleGeoJSON)

	tests := []struct {
		name string
		args []string
	}{
		{"missing input flag", nil},
		{"unknown model", []string{"--in", in, "--model", "mercator"}},
		{"missing file", []string{"--in", filepath.Join(dir, "nope.geojson")}},
		{"unknown flag", []string{"--frobnicate"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, run(context.Background(), tt.args, &bytes.Buffer{}))
		})
	}
}

func TestWriteFileAtomic_MissingDirectory(t *testing.T) {
	err := writeFileAtomic(filepath.Join(t.TempDir(), "missing", "profil.dxf"), []byte("0\nEOF\n"))
	assert.Error(t, err)
}

func assertNoTempFiles(t *testing.T, dir string) {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join(dir, ".profil-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
