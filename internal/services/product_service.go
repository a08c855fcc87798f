// internal/services/product_service.go
package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/frameit/frameit-backend/internal/models"
	"github.com/frameit/frameit-backend/internal/utils"
)

type ProductService struct {
	db *gorm.DB
}

type CreateProductRequest struct {
	Name           string     `json:"name" validate:"required"`
	SKU            string     `json:"sku,omitempty"`
	Brand          string     `json:"brand" validate:"required"`
	Price          float64    `json:"price" validate:"required,gt=0"`
	OriginalPrice  *float64   `json:"originalPrice,omitempty" validate:"omitempty,gt=0"`
	Description    string     `json:"description,omitempty"`
	Category       string     `json:"category,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	FrameColor     string     `json:"frameColor,omitempty"`
	LensColor      string     `json:"lensColor,omitempty"`
	Material       string     `json:"material,omitempty"`
	FrameShape     string     `json:"frameShape,omitempty"`
	Images         []string   `json:"images,omitempty"`
	GlassesModelID *uuid.UUID `json:"glassesModelId,omitempty"`
}

type UpdateProductRequest struct {
	Name          string   `json:"name,omitempty"`
	Brand         string   `json:"brand,omitempty"`
	Price         *float64 `json:"price,omitempty" validate:"omitempty,gt=0"`
	OriginalPrice *float64 `json:"originalPrice,omitempty" validate:"omitempty,gt=0"`
	Description   *string  `json:"description,omitempty"`
	Category      string   `json:"category,omitempty"`
	Gender        string   `json:"gender,omitempty"`
	FrameColor    *string  `json:"frameColor,omitempty"`
	LensColor     *string  `json:"lensColor,omitempty"`
	Material      *string  `json:"material,omitempty"`
	FrameShape    *string  `json:"frameShape,omitempty"`
	IsActive      *bool    `json:"isActive,omitempty"`
}

func NewProductService(db *gorm.DB) *ProductService {
	return &ProductService{db: db}
}

// CreateProduct derives the slug from the name once, at creation; renames
// later never recompute it.
func (s *ProductService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	gender := models.Gender(req.Gender)
	if req.Gender == "" {
		gender = models.GenderUnisex
	}
	if !gender.Valid() {
		return nil, fmt.Errorf("invalid gender %q", req.Gender)
	}

	category := req.Category
	if category == "" {
		category = "Sunglasses"
	}

	product := &models.Product{
		Name:           req.Name,
		Slug:           utils.Slugify(req.Name),
		Brand:          req.Brand,
		Price:          req.Price,
		OriginalPrice:  req.OriginalPrice,
		Description:    req.Description,
		Category:       category,
		Gender:         gender,
		FrameColor:     req.FrameColor,
		LensColor:      req.LensColor,
		Material:       req.Material,
		FrameShape:     req.FrameShape,
		Images:         pq.StringArray(req.Images),
		GlassesModelID: req.GlassesModelID,
		IsActive:       true,
	}
	if req.SKU != "" {
		sku := req.SKU
		product.SKU = &sku
	}

	if err := s.db.Create(product).Error; err != nil {
		if isDuplicateKeyError(err) {
			return nil, errors.New("product with this slug or SKU already exists")
		}
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}

// ListActive returns the public catalog: active products only.
func (s *ProductService) ListActive(params utils.PaginationParams) ([]models.Product, int64, error) {
	query := s.db.Model(&models.Product{}).
		Preload("GlassesModel").
		Where("is_active = ?", true)

	if params.Category != "" {
		query = query.Where("category = ?", params.Category)
	}
	if params.Search != "" {
		term := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(brand) LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "name", "price", "brand"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// GetBySlug returns an active product by slug; inactive products are
// invisible to the storefront.
func (s *ProductService) GetBySlug(slug string) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("GlassesModel").
		Where("slug = ? AND is_active = ?", slug, true).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// ListAll is the admin view: every product, inactive included.
func (s *ProductService) ListAll() ([]models.Product, error) {
	var products []models.Product
	err := s.db.Preload("GlassesModel").
		Order("created_at DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch products: %w", err)
	}
	return products, nil
}

func (s *ProductService) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := s.db.Preload("GlassesModel").First(&product, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("product not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// UpdateProduct applies partial field updates. The slug is deliberately not
// recomputed on rename.
func (s *ProductService) UpdateProduct(id uuid.UUID, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Brand != "" {
		updates["brand"] = req.Brand
	}
	if req.Price != nil {
		updates["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		updates["original_price"] = *req.OriginalPrice
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Category != "" {
		updates["category"] = req.Category
	}
	if req.Gender != "" {
		gender := models.Gender(req.Gender)
		if !gender.Valid() {
			return nil, fmt.Errorf("invalid gender %q", req.Gender)
		}
		updates["gender"] = gender
	}
	if req.FrameColor != nil {
		updates["frame_color"] = *req.FrameColor
	}
	if req.LensColor != nil {
		updates["lens_color"] = *req.LensColor
	}
	if req.Material != nil {
		updates["material"] = *req.Material
	}
	if req.FrameShape != nil {
		updates["frame_shape"] = *req.FrameShape
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) > 0 {
		if err := s.db.Model(product).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update product: %w", err)
		}
	}

	return s.GetByID(id)
}

// AddImages appends (or replaces) the stored image path list.
func (s *ProductService) AddImages(id uuid.UUID, paths []string, replace bool) (*models.Product, error) {
	product, err := s.GetByID(id)
	if err != nil {
		return nil, err
	}

	images := paths
	if !replace {
		images = append([]string(product.Images), paths...)
	}

	if err := s.db.Model(product).Update("images", pq.StringArray(images)).Error; err != nil {
		return nil, fmt.Errorf("failed to update product images: %w", err)
	}

	return s.GetByID(id)
}

// SoftDelete marks the product inactive. The row stays in place and remains
// visible through ListAll.
func (s *ProductService) SoftDelete(id uuid.UUID) error {
	product, err := s.GetByID(id)
	if err != nil {
		return err
	}

	if err := s.db.Model(product).Update("is_active", false).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}

// isDuplicateKeyError matches the Postgres unique-violation the driver
// surfaces for slug/SKU collisions.
func isDuplicateKeyError(err error) bool {
	return err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "duplicate key"))
}
