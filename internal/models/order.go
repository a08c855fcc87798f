// internal/models/order.go
package models

import (
	"github.com/google/uuid"
)

type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID `json:"-" gorm:"type:uuid;not null;index"`
	ProductID uuid.UUID `json:"productId" gorm:"type:uuid;not null;index"`
	Quantity  int       `json:"quantity" gorm:"not null"`
	// Price is the unit price snapshot taken at checkout; later product
	// price changes must not affect existing orders.
	Price float64 `json:"price" gorm:"type:decimal(10,2);not null"`

	Product *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

type ShippingAddress struct {
	FirstName string `json:"firstName" gorm:"size:100;not null" validate:"required"`
	LastName  string `json:"lastName" gorm:"size:100;not null" validate:"required"`
	Email     string `json:"email" gorm:"size:255;not null" validate:"required,email"`
	Phone     string `json:"phone,omitempty" gorm:"size:50"`
	Address   string `json:"address" gorm:"size:255;not null" validate:"required"`
	City      string `json:"city" gorm:"size:100;not null" validate:"required"`
	State     string `json:"state" gorm:"size:100;not null" validate:"required"`
	ZipCode   string `json:"zipCode" gorm:"size:20;not null" validate:"required"`
	Country   string `json:"country" gorm:"size:100;not null" validate:"required"`
}

type Order struct {
	BaseModel
	OrderNumber     string          `json:"orderNumber" gorm:"uniqueIndex;size:64;not null"`
	UserID          uuid.UUID       `json:"userId" gorm:"type:uuid;not null;index"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	Subtotal        float64         `json:"subtotal" gorm:"type:decimal(10,2);not null"`
	Tax             float64         `json:"tax" gorm:"type:decimal(10,2);default:0"`
	Shipping        float64         `json:"shipping" gorm:"type:decimal(10,2);default:0"`
	Total           float64         `json:"total" gorm:"type:decimal(10,2);not null"`
	ShippingAddress ShippingAddress `json:"shippingAddress" gorm:"embedded;embeddedPrefix:ship_"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(20);default:'pending';index"`
	PaymentStatus   PaymentStatus   `json:"paymentStatus" gorm:"type:varchar(20);default:'pending';index"`
	PaymentMethod   PaymentMethod   `json:"paymentMethod" gorm:"type:varchar(20)"`
	PaymentIntentID string          `json:"-" gorm:"size:255"`
	Notes           string          `json:"notes,omitempty" gorm:"type:text"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
