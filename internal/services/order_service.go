// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/frameit/frameit-backend/internal/models"
	"github.com/frameit/frameit-backend/internal/utils"
)

// Checkout pricing rules.
const (
	TaxRate               = 0.08
	ShippingFee           = 9.99
	FreeShippingThreshold = 100.0
)

type OrderService struct {
	db *gorm.DB
}

type OrderItemRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"required"`
	Quantity  int       `json:"quantity" validate:"required,min=1"`
}

type CreateOrderRequest struct {
	Items           []OrderItemRequest     `json:"items" validate:"required,min=1,dive"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress" validate:"required"`
	PaymentMethod   models.PaymentMethod   `json:"paymentMethod,omitempty"`
	Notes           string                 `json:"notes,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status        models.OrderStatus   `json:"status,omitempty"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus,omitempty"`
}

// OrderTotals is the checkout arithmetic, kept separate from persistence so
// it can be computed (and tested) without a database.
type OrderTotals struct {
	Subtotal float64
	Tax      float64
	Shipping float64
	Total    float64
}

// ComputeTotals applies the flat tax and the free-shipping threshold to a
// subtotal.
func ComputeTotals(subtotal float64) OrderTotals {
	tax := subtotal * TaxRate
	shipping := ShippingFee
	if subtotal >= FreeShippingThreshold {
		shipping = 0
	}
	return OrderTotals{
		Subtotal: subtotal,
		Tax:      tax,
		Shipping: shipping,
		Total:    subtotal + tax + shipping,
	}
}

// GenerateOrderNumber keeps the original ORD-<millis>-<suffix> shape but
// draws the suffix from a UUID: the original's random 0-9999 draw could
// collide for orders placed in the same millisecond.
func GenerateOrderNumber() string {
	suffix := strings.ReplaceAll(uuid.New().String(), "-", "")[:8]
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), suffix)
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

var ErrProductNotFound = errors.New("product not found")

// CreateOrder prices every line from the product's current database price
// (never a client-supplied one), computes totals, and persists the order.
// Any unknown product aborts the whole operation before anything is written.
func (s *OrderService) CreateOrder(userID uuid.UUID, req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = models.PaymentMethodCreditCard
	}
	if !paymentMethod.Valid() {
		return nil, fmt.Errorf("invalid payment method %q", paymentMethod)
	}

	var subtotal float64
	items := make([]models.OrderItem, 0, len(req.Items))

	for _, item := range req.Items {
		var product models.Product
		if err := s.db.First(&product, "id = ?", item.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: %s", ErrProductNotFound, item.ProductID)
			}
			return nil, fmt.Errorf("database error: %w", err)
		}

		subtotal += product.Price * float64(item.Quantity)
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
	}

	totals := ComputeTotals(subtotal)

	order := &models.Order{
		OrderNumber:     GenerateOrderNumber(),
		UserID:          userID,
		Items:           items,
		Subtotal:        totals.Subtotal,
		Tax:             totals.Tax,
		Shipping:        totals.Shipping,
		Total:           totals.Total,
		ShippingAddress: req.ShippingAddress,
		Status:          models.OrderStatusPending,
		PaymentStatus:   models.PaymentStatusPending,
		PaymentMethod:   paymentMethod,
		Notes:           req.Notes,
	}

	if err := s.db.Create(order).Error; err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	return s.GetOrder(order.ID)
}

func (s *OrderService) GetOrder(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := s.db.Preload("User").Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("order not found")
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// GetUserOrder fetches an order and enforces ownership: users only ever see
// their own orders, and a foreign order looks identical to a missing one.
func (s *OrderService) GetUserOrder(id, userID uuid.UUID) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, errors.New("order not found")
	}
	return order, nil
}

func (s *OrderService) ListUserOrders(userID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("Items.Product").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

func (s *OrderService) ListAllOrders() ([]models.Order, error) {
	var orders []models.Order
	err := s.db.Preload("User").Preload("Items.Product").
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch orders: %w", err)
	}
	return orders, nil
}

// UpdateStatus sets order status and/or payment status; empty fields are
// left untouched.
func (s *OrderService) UpdateStatus(id uuid.UUID, req *UpdateOrderStatusRequest) (*models.Order, error) {
	order, err := s.GetOrder(id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Status != "" {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("invalid order status %q", req.Status)
		}
		updates["status"] = req.Status
	}
	if req.PaymentStatus != "" {
		if !req.PaymentStatus.Valid() {
			return nil, fmt.Errorf("invalid payment status %q", req.PaymentStatus)
		}
		updates["payment_status"] = req.PaymentStatus
	}

	if len(updates) == 0 {
		return order, nil
	}

	if err := s.db.Model(order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	return s.GetOrder(id)
}
