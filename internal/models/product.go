// internal/models/product.go
package models

import (
	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Product struct {
	BaseModel
	Name          string         `json:"name" gorm:"size:255;not null"`
	Slug          string         `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	SKU           *string        `json:"sku,omitempty" gorm:"uniqueIndex;size:100"`
	Brand         string         `json:"brand" gorm:"size:100;not null"`
	Price         float64        `json:"price" gorm:"type:decimal(10,2);not null"`
	OriginalPrice *float64       `json:"originalPrice,omitempty" gorm:"type:decimal(10,2)"`
	Description   string         `json:"description" gorm:"type:text"`
	Category      string         `json:"category" gorm:"size:100;default:'Sunglasses';index"`
	Gender        Gender         `json:"gender" gorm:"type:varchar(20);default:'Unisex'"`
	FrameColor    string         `json:"frameColor" gorm:"size:100"`
	LensColor     string         `json:"lensColor" gorm:"size:100"`
	Material      string         `json:"material" gorm:"size:100"`
	FrameShape    string         `json:"frameShape" gorm:"size:100"`
	Images        pq.StringArray `json:"images" gorm:"type:text[]"`
	GlassesModelID *uuid.UUID    `json:"glassesModelId,omitempty" gorm:"type:uuid;index"`
	IsActive      bool           `json:"isActive" gorm:"default:true;index"`

	// Relationships
	GlassesModel *GlassesModel `json:"glassesModel,omitempty" gorm:"foreignKey:GlassesModelID"`
}
