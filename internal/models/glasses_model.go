// internal/models/glasses_model.go
package models

import "encoding/json"

// ModelFiles holds relative paths (under the public asset root) to the
// pieces of a try-on model. Only Frame/FrameGLTF are required in practice;
// everything else is optional.
type ModelFiles struct {
	Frame             string `json:"frame,omitempty" gorm:"column:frame;size:512"`
	FrameGLTF         string `json:"frameGLTF,omitempty" gorm:"column:frame_gltf;size:512"`
	Lenses            string `json:"lenses,omitempty" gorm:"size:512"`
	Occluder          string `json:"occluder,omitempty" gorm:"size:512"`
	EnvMap            string `json:"envMap,omitempty" gorm:"size:512"`
	FrameTexture      string `json:"frameTexture,omitempty" gorm:"size:512"`
	FrameNormalMap    string `json:"frameNormalMap,omitempty" gorm:"size:512"`
	FrameRoughnessMap string `json:"frameRoughnessMap,omitempty" gorm:"size:512"`
	FrameMetalnessMap string `json:"frameMetalnessMap,omitempty" gorm:"size:512"`
	LensTexture       string `json:"lensTexture,omitempty" gorm:"size:512"`
	LensNormalMap     string `json:"lensNormalMap,omitempty" gorm:"size:512"`
}

type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// ModelMetadata positions the model in the try-on scene. Defaults match the
// renderer's assumptions: unit scale, camera-facing z offset of 0.4.
type ModelMetadata struct {
	Scale     float64 `json:"scale" gorm:"default:1.0"`
	PositionX float64 `json:"-" gorm:"column:position_x;default:0"`
	PositionY float64 `json:"-" gorm:"column:position_y;default:0"`
	PositionZ float64 `json:"-" gorm:"column:position_z;default:0.4"`
	RotationX float64 `json:"-" gorm:"column:rotation_x;default:0"`
	RotationY float64 `json:"-" gorm:"column:rotation_y;default:0"`
	RotationZ float64 `json:"-" gorm:"column:rotation_z;default:0"`
}

type GlassesModel struct {
	BaseModel
	Name          string        `json:"name" gorm:"size:255;not null"`
	Slug          string        `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Category      string        `json:"category" gorm:"size:100;default:'Glasses'"`
	Description   string        `json:"description" gorm:"type:text"`
	ModelFiles    ModelFiles    `json:"modelFiles" gorm:"embedded;embeddedPrefix:file_"`
	ModelMetadata ModelMetadata `json:"modelMetadata" gorm:"embedded;embeddedPrefix:meta_"`
	IsActive      bool          `json:"isActive" gorm:"default:true;index"`
}

// metadataJSON mirrors the JSON shape clients expect for metadata:
// nested position/rotation vectors rather than flat columns.
type metadataJSON struct {
	Scale    float64 `json:"scale"`
	Position Vector3 `json:"position"`
	Rotation Vector3 `json:"rotation"`
}

func (m ModelMetadata) MarshalJSON() ([]byte, error) {
	return json.Marshal(metadataJSON{
		Scale:    m.Scale,
		Position: Vector3{X: m.PositionX, Y: m.PositionY, Z: m.PositionZ},
		Rotation: Vector3{X: m.RotationX, Y: m.RotationY, Z: m.RotationZ},
	})
}

func (m *ModelMetadata) UnmarshalJSON(data []byte) error {
	var v metadataJSON
	v.Scale = 1.0
	v.Position.Z = 0.4
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	m.Scale = v.Scale
	m.PositionX, m.PositionY, m.PositionZ = v.Position.X, v.Position.Y, v.Position.Z
	m.RotationX, m.RotationY, m.RotationZ = v.Rotation.X, v.Rotation.Y, v.Rotation.Z
	return nil
}
