// internal/gltf/gltf_test.go
package gltf

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func docWithBounds(min, max []float64) *Document {
	return &Document{
		Meshes: []Mesh{
			{Primitives: []Primitive{{Attributes: map[string]int{"POSITION": 0}}}},
		},
		Accessors: []Accessor{{Min: min, Max: max}},
	}
}

func TestBoundsUnionsAllPrimitives(t *testing.T) {
	doc := &Document{
		Meshes: []Mesh{
			{Primitives: []Primitive{
				{Attributes: map[string]int{"POSITION": 0}},
				{Attributes: map[string]int{"POSITION": 1}},
			}},
		},
		Accessors: []Accessor{
			{Min: []float64{-1, 0, 0}, Max: []float64{0, 1, 1}},
			{Min: []float64{0, -2, 0}, Max: []float64{3, 0, 0.5}},
		},
	}

	box, ok := doc.Bounds()
	require.True(t, ok)
	assert.Equal(t, Vec3{-1, -2, 0}, box.Min)
	assert.Equal(t, Vec3{3, 1, 1}, box.Max)
}

func TestBoundsMissing(t *testing.T) {
	doc := &Document{
		Meshes:    []Mesh{{Primitives: []Primitive{{Attributes: map[string]int{"NORMAL": 0}}}}},
		Accessors: []Accessor{{}},
	}

	_, ok := doc.Bounds()
	assert.False(t, ok)
}

func TestComputeAutoFitScalesToTargetWidth(t *testing.T) {
	// A 0.28-wide box must come out at exactly half scale.
	doc := docWithBounds([]float64{-0.14, -0.05, -0.025}, []float64{0.14, 0.05, 0.025})

	fit := doc.ComputeAutoFit()
	assert.InDelta(t, 0.5, fit.Scale, 1e-9)
	assert.InDelta(t, 0, fit.Position.X, 1e-9)
	assert.InDelta(t, 0, fit.Position.Y, 1e-9)
	assert.InDelta(t, FaceOffsetZ, fit.Position.Z, 1e-9)
}

func TestComputeAutoFitRecentersOffOriginModel(t *testing.T) {
	doc := docWithBounds([]float64{0, 0.1, 0}, []float64{0.28, 0.2, 0.05})

	fit := doc.ComputeAutoFit()
	require.InDelta(t, 0.5, fit.Scale, 1e-9)
	// Center (0.14, 0.15, 0.025) scaled and negated on X/Y.
	assert.InDelta(t, -0.07, fit.Position.X, 1e-9)
	assert.InDelta(t, -0.075, fit.Position.Y, 1e-9)
	assert.InDelta(t, FaceOffsetZ, fit.Position.Z, 1e-9)
}

func TestComputeAutoFitWithoutBoundsFallsBack(t *testing.T) {
	doc := &Document{}

	fit := doc.ComputeAutoFit()
	assert.Equal(t, DefaultFit(), fit)
	assert.Equal(t, 1.0, fit.Scale)
	assert.Equal(t, FaceOffsetZ, fit.Position.Z)
}

func TestRewriteImageURIs(t *testing.T) {
	doc := &Document{
		Images: []Image{
			{URI: "frame_basecolor.png"},
			{URI: "maps/frame_normal.png"},
			{URI: "https://cdn.example.com/env.png"},
			{URI: "/already/rooted.png"},
			{},
		},
	}

	changed := doc.RewriteImageURIs("aviator-classic")
	assert.Equal(t, 2, changed)
	assert.Equal(t, "/api/static/textures/aviator-classic/frame_basecolor.png", doc.Images[0].URI)
	assert.Equal(t, "/api/static/textures/aviator-classic/frame_normal.png", doc.Images[1].URI)
	assert.Equal(t, "https://cdn.example.com/env.png", doc.Images[2].URI)
	assert.Equal(t, "/already/rooted.png", doc.Images[3].URI)
}

func TestParsePreservesUnknownFields(t *testing.T) {
	src := []byte(`{
		"asset": {"version": "2.0"},
		"images": [{"uri": "tex.png"}],
		"materials": [{"name": "frame"}]
	}`)

	doc, err := Parse(src)
	require.NoError(t, err)

	doc.RewriteImageURIs("m1")
	out, err := json.Marshal(doc)
	require.NoError(t, err)

	var round map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(out, &round))
	assert.Contains(t, round, "asset")
	assert.Contains(t, round, "materials")
	assert.Contains(t, round, "images")
}

func TestProcessFileRewritesAndFits(t *testing.T) {
	dir := t.TempDir()
	gltfPath := filepath.Join(dir, "scene.gltf")

	src := map[string]interface{}{
		"asset":  map[string]string{"version": "2.0"},
		"meshes": []Mesh{{Primitives: []Primitive{{Attributes: map[string]int{"POSITION": 0}}}}},
		"accessors": []Accessor{
			{Min: []float64{-0.07, -0.02, -0.01}, Max: []float64{0.07, 0.02, 0.01}},
		},
		"images": []Image{{URI: "basecolor.png"}},
	}
	data, err := json.Marshal(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(gltfPath, data, 0o644))

	fit, err := ProcessFile(gltfPath, "round-metal")
	require.NoError(t, err)
	assert.InDelta(t, 1.0, fit.Scale, 1e-9) // 0.14 wide already

	rewritten, err := os.ReadFile(gltfPath)
	require.NoError(t, err)
	doc, err := Parse(rewritten)
	require.NoError(t, err)
	assert.Equal(t, "/api/static/textures/round-metal/basecolor.png", doc.Images[0].URI)
	assert.Contains(t, doc.Extra, "asset")
}

func TestProcessFileMissing(t *testing.T) {
	fit, err := ProcessFile(filepath.Join(t.TempDir(), "absent.gltf"), "m")
	assert.Error(t, err)
	assert.Equal(t, DefaultFit(), fit)
}
