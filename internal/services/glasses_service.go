// internal/services/glasses_service.go
package services

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/frameit/frameit-backend/internal/gltf"
	"github.com/frameit/frameit-backend/internal/models"
	"github.com/frameit/frameit-backend/internal/utils"
)

type GlassesService struct {
	db       *gorm.DB
	storage  *StorageService
	products *ProductService
}

type AddGlassesPackageRequest struct {
	Name          string   `json:"name" validate:"required"`
	Brand         string   `json:"brand" validate:"required"`
	Price         float64  `json:"price" validate:"required,gt=0"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" validate:"omitempty,gt=0"`
	Description   string   `json:"description,omitempty"`
	Category      string   `json:"category,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	FrameColor    string   `json:"frameColor,omitempty"`
	LensColor     string   `json:"lensColor,omitempty"`
	Material      string   `json:"material,omitempty"`
	FrameShape    string   `json:"frameShape,omitempty"`
	// ModelName keys the on-disk directories the uploaded assets live in.
	ModelName string `json:"modelName" validate:"required"`
}

type GlassesPackage struct {
	Product      *models.Product      `json:"product"`
	GlassesModel *models.GlassesModel `json:"glassesModel"`
}

func NewGlassesService(db *gorm.DB, storage *StorageService, products *ProductService) *GlassesService {
	return &GlassesService{db: db, storage: storage, products: products}
}

// ClassifyModelFiles routes uploaded model filenames into ModelFiles slots.
// The first .gltf/.glb becomes the frame model; .json files are routed by
// filename convention (frame/lens/occluder); .bin buffers are resolved by
// the GLTF loader itself and carry no slot.
func ClassifyModelFiles(modelName string, filenames []string) models.ModelFiles {
	var mf models.ModelFiles

	for _, filename := range filenames {
		rel := fmt.Sprintf("models/glasses/%s/%s", modelName, filename)
		lower := strings.ToLower(filename)
		ext := filepath.Ext(lower)

		switch ext {
		case ".gltf", ".glb":
			if mf.FrameGLTF == "" {
				mf.FrameGLTF = rel
				// Legacy renderers read Frame
				mf.Frame = rel
			}
		case ".json":
			switch {
			case strings.Contains(lower, "occluder") || lower == "face.json":
				mf.Occluder = rel
			case strings.Contains(lower, "lens") || lower == "lenses.json":
				mf.Lenses = rel
			case strings.Contains(lower, "frame") || mf.Frame == "":
				mf.Frame = rel
			}
		}
	}

	return mf
}

// ClassifyTextureFiles fills texture slots by filename convention. A
// basecolor/diffuse map defaults the frame texture; frame-/lens-prefixed
// names route to their specific maps; with nothing recognized the first
// texture becomes the frame texture.
func ClassifyTextureFiles(modelName string, filenames []string, mf *models.ModelFiles) {
	for _, filename := range filenames {
		rel := fmt.Sprintf("textures/%s/%s", modelName, filename)
		lower := strings.ToLower(filename)

		if strings.Contains(lower, "basecolor") || strings.Contains(lower, "base_color") ||
			strings.Contains(lower, "diffuse") {
			if mf.FrameTexture == "" {
				mf.FrameTexture = rel
			}
		}

		switch {
		case strings.Contains(lower, "frame") && (strings.Contains(lower, "texture") ||
			strings.Contains(lower, "diffuse") || strings.Contains(lower, "basecolor")):
			mf.FrameTexture = rel
		case strings.Contains(lower, "frame") && strings.Contains(lower, "normal"):
			mf.FrameNormalMap = rel
		case strings.Contains(lower, "frame") && strings.Contains(lower, "rough"):
			mf.FrameRoughnessMap = rel
		case strings.Contains(lower, "frame") && strings.Contains(lower, "metal"):
			mf.FrameMetalnessMap = rel
		case strings.Contains(lower, "lens") && (strings.Contains(lower, "texture") ||
			strings.Contains(lower, "diffuse") || strings.Contains(lower, "basecolor")):
			mf.LensTexture = rel
		case strings.Contains(lower, "lens") && strings.Contains(lower, "normal"):
			mf.LensNormalMap = rel
		}
	}

	if mf.FrameTexture == "" && len(filenames) > 0 {
		mf.FrameTexture = fmt.Sprintf("textures/%s/%s", modelName, filenames[0])
	}
}

// AddCompletePackage turns an uploaded glasses package (already written to
// disk by the storage service) into a GlassesModel plus its Product. When a
// GLTF frame model is present its texture URIs are rewritten for static
// serving and the auto-fit metadata is computed from its bounds; processing
// failures fall back to default metadata rather than failing the upload.
func (s *GlassesService) AddCompletePackage(req *AddGlassesPackageRequest, modelFilenames, textureFilenames, productImagePaths []string) (*GlassesPackage, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	if err := validModelName(req.ModelName); err != nil {
		return nil, err
	}

	mf := ClassifyModelFiles(req.ModelName, modelFilenames)
	if mf.Frame == "" && mf.FrameGLTF == "" {
		return nil, errors.New("frame model file (GLTF/GLB or JSON) is required")
	}
	ClassifyTextureFiles(req.ModelName, textureFilenames, &mf)

	metadata := models.ModelMetadata{Scale: 1.0, PositionZ: gltf.FaceOffsetZ}
	if mf.FrameGLTF != "" {
		fit, err := gltf.ProcessFile(s.storage.AbsPath(mf.FrameGLTF), req.ModelName)
		if err != nil {
			logrus.WithError(err).WithField("model", req.ModelName).
				Warn("GLTF processing failed, using default metadata")
		}
		metadata = models.ModelMetadata{
			Scale:     fit.Scale,
			PositionX: fit.Position.X,
			PositionY: fit.Position.Y,
			PositionZ: fit.Position.Z,
			RotationX: fit.Rotation.X,
			RotationY: fit.Rotation.Y,
			RotationZ: fit.Rotation.Z,
		}
	}

	category := req.Category
	if category == "" {
		category = "Glasses"
	}

	glassesModel := &models.GlassesModel{
		Name:          req.ModelName,
		Slug:          utils.Slugify(req.ModelName),
		Category:      category,
		Description:   req.Description,
		ModelFiles:    mf,
		ModelMetadata: metadata,
		IsActive:      true,
	}

	if err := s.db.Create(glassesModel).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, errors.New("glasses model with this name already exists")
		}
		return nil, fmt.Errorf("failed to create glasses model: %w", err)
	}

	product, err := s.products.CreateProduct(&CreateProductRequest{
		Name:           req.Name,
		Brand:          req.Brand,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Description:    req.Description,
		Category:       req.Category,
		Gender:         req.Gender,
		FrameColor:     req.FrameColor,
		LensColor:      req.LensColor,
		Material:       req.Material,
		FrameShape:     req.FrameShape,
		Images:         productImagePaths,
		GlassesModelID: &glassesModel.ID,
	})
	if err != nil {
		return nil, err
	}

	return &GlassesPackage{Product: product, GlassesModel: glassesModel}, nil
}

// ListActive returns the glasses models visible to the try-on view.
func (s *GlassesService) ListActive() ([]models.GlassesModel, error) {
	var glassesModels []models.GlassesModel
	err := s.db.Where("is_active = ?", true).Find(&glassesModels).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch glasses models: %w", err)
	}
	return glassesModels, nil
}
