// internal/gltf/gltf.go

// Package gltf reads the subset of the GLTF 2.0 JSON document needed to
// auto-fit an eyewear model for the try-on renderer: accessor bounds for the
// bounding box, and image URIs for texture path rewriting. Binary buffer
// payloads are never touched.
package gltf

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path"
	"strings"
)

type Accessor struct {
	Min []float64 `json:"min,omitempty"`
	Max []float64 `json:"max,omitempty"`
}

type Primitive struct {
	Attributes map[string]int `json:"attributes"`
}

type Mesh struct {
	Primitives []Primitive `json:"primitives"`
}

type Image struct {
	URI string `json:"uri,omitempty"`
}

// Document is a partial GLTF 2.0 document. Unknown fields are preserved
// through Extra so a rewrite round-trips the rest of the file.
type Document struct {
	Meshes    []Mesh                     `json:"meshes,omitempty"`
	Accessors []Accessor                 `json:"accessors,omitempty"`
	Images    []Image                    `json:"images,omitempty"`
	Extra     map[string]json.RawMessage `json:"-"`
}

type Vec3 struct {
	X, Y, Z float64
}

type BoundingBox struct {
	Min, Max Vec3
}

func (b BoundingBox) Size() Vec3 {
	return Vec3{b.Max.X - b.Min.X, b.Max.Y - b.Min.Y, b.Max.Z - b.Min.Z}
}

func (b BoundingBox) Center() Vec3 {
	return Vec3{(b.Min.X + b.Max.X) / 2, (b.Min.Y + b.Max.Y) / 2, (b.Min.Z + b.Max.Z) / 2}
}

// AutoFit is the uniform scale and placement that maps a model's bounding
// box onto the try-on scene.
type AutoFit struct {
	Scale    float64
	Position Vec3
	Rotation Vec3
}

const (
	// TargetWidth is the physical width glasses are normalized to: 14cm in
	// scene units.
	TargetWidth = 0.14
	// FaceOffsetZ is the camera-facing distance of the overlay.
	FaceOffsetZ = 0.4
)

// DefaultFit is returned when the document declares no usable bounds.
func DefaultFit() AutoFit {
	return AutoFit{Scale: 1.0, Position: Vec3{Z: FaceOffsetZ}}
}

func (d *Document) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	type alias Document
	var doc alias
	for _, field := range []struct {
		key string
		dst interface{}
	}{
		{"meshes", &doc.Meshes},
		{"accessors", &doc.Accessors},
		{"images", &doc.Images},
	} {
		if v, ok := raw[field.key]; ok {
			if err := json.Unmarshal(v, field.dst); err != nil {
				return fmt.Errorf("gltf: invalid %s: %w", field.key, err)
			}
		}
	}
	delete(raw, "meshes")
	delete(raw, "accessors")
	delete(raw, "images")
	doc.Extra = raw
	*d = Document(doc)
	return nil
}

func (d Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(d.Extra)+3)
	for k, v := range d.Extra {
		out[k] = v
	}
	if d.Meshes != nil {
		out["meshes"] = d.Meshes
	}
	if d.Accessors != nil {
		out["accessors"] = d.Accessors
	}
	if d.Images != nil {
		out["images"] = d.Images
	}
	return json.Marshal(out)
}

// Parse decodes a GLTF JSON document.
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("gltf: parse: %w", err)
	}
	return &doc, nil
}

// Bounds unions the declared POSITION accessor min/max across all mesh
// primitives. ok is false when no primitive declares bounds.
func (d *Document) Bounds() (BoundingBox, bool) {
	inf := math.Inf(1)
	box := BoundingBox{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
	found := false

	for _, mesh := range d.Meshes {
		for _, prim := range mesh.Primitives {
			idx, ok := prim.Attributes["POSITION"]
			if !ok || idx < 0 || idx >= len(d.Accessors) {
				continue
			}
			acc := d.Accessors[idx]
			if len(acc.Min) >= 3 {
				box.Min.X = min(box.Min.X, acc.Min[0])
				box.Min.Y = min(box.Min.Y, acc.Min[1])
				box.Min.Z = min(box.Min.Z, acc.Min[2])
				found = true
			}
			if len(acc.Max) >= 3 {
				box.Max.X = max(box.Max.X, acc.Max[0])
				box.Max.Y = max(box.Max.Y, acc.Max[1])
				box.Max.Z = max(box.Max.Z, acc.Max[2])
				found = true
			}
		}
	}

	return box, found
}

// ComputeAutoFit derives the uniform scale mapping the longest bounding-box
// dimension to TargetWidth, and recenters the model on X/Y with the fixed
// face offset on Z. Documents without bounds get DefaultFit.
func (d *Document) ComputeAutoFit() AutoFit {
	box, ok := d.Bounds()
	if !ok {
		return DefaultFit()
	}

	size := box.Size()
	longest := max(size.X, max(size.Y, size.Z))
	if longest <= 0 {
		return DefaultFit()
	}

	scale := TargetWidth / longest
	center := box.Center()

	return AutoFit{
		Scale: scale,
		Position: Vec3{
			X: -center.X * scale,
			Y: -center.Y * scale,
			Z: FaceOffsetZ,
		},
	}
}

// RewriteImageURIs points relative texture references at the static texture
// route for the given model name. Absolute URLs and rooted paths are left
// alone. Returns the number of URIs changed.
func (d *Document) RewriteImageURIs(modelName string) int {
	changed := 0
	for i, img := range d.Images {
		uri := img.URI
		if uri == "" || strings.HasPrefix(uri, "http") || strings.HasPrefix(uri, "/") {
			continue
		}
		d.Images[i].URI = fmt.Sprintf("/api/static/textures/%s/%s", modelName, path.Base(uri))
		changed++
	}
	return changed
}

// ProcessFile parses the GLTF at gltfPath, rewrites its texture URIs in
// place, and returns the computed auto-fit. Any failure falls back to
// DefaultFit without modifying the file.
func ProcessFile(gltfPath, modelName string) (AutoFit, error) {
	data, err := os.ReadFile(gltfPath)
	if err != nil {
		return DefaultFit(), err
	}

	doc, err := Parse(data)
	if err != nil {
		return DefaultFit(), err
	}

	if doc.RewriteImageURIs(modelName) > 0 {
		rewritten, err := json.MarshalIndent(doc, "", "  ")
		if err == nil {
			err = os.WriteFile(gltfPath, rewritten, 0o644)
		}
		if err != nil {
			return DefaultFit(), err
		}
	}

	return doc.ComputeAutoFit(), nil
}

