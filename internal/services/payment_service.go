// internal/services/payment_service.go
package services

import (
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/paymentintent"
	"github.com/stripe/stripe-go/v74/refund"
	"gorm.io/gorm"

	"github.com/frameit/frameit-backend/internal/config"
	"github.com/frameit/frameit-backend/internal/models"
)

type PaymentService struct {
	db     *gorm.DB
	config *config.Config
}

type CreatePaymentIntentRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"client_secret"`
	PaymentID    string `json:"payment_id"`
	Status       string `json:"status"`
}

type ConfirmPaymentRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
}

type RefundRequest struct {
	OrderID uuid.UUID `json:"order_id" validate:"required"`
	Reason  string    `json:"reason,omitempty"`
}

var ErrOrderNotPayable = errors.New("order is not awaiting payment")

// amountInCents converts a dollar total to Stripe's smallest-unit integer.
// Rounding, not truncation: 63.99 is stored as 6398.99... in binary.
func amountInCents(total float64) int64 {
	return int64(math.Round(total * 100))
}

func NewPaymentService(db *gorm.DB, config *config.Config) *PaymentService {
	stripe.Key = config.Payment.StripeSecretKey

	return &PaymentService{
		db:     db,
		config: config,
	}
}

// CreatePaymentIntent opens a Stripe PaymentIntent for one of the user's
// pending orders and records the intent ID on the order.
func (s *PaymentService) CreatePaymentIntent(userID uuid.UUID, req *CreatePaymentIntentRequest) (*PaymentIntentResponse, error) {
	var order models.Order
	if err := s.db.Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if order.PaymentStatus != models.PaymentStatusPending {
		return nil, ErrOrderNotPayable
	}

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountInCents(order.Total)),
		Currency: stripe.String("usd"),
	}
	params.AddMetadata("order_id", order.ID.String())
	params.AddMetadata("order_number", order.OrderNumber)
	params.AddMetadata("user_id", userID.String())

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	updates := map[string]interface{}{"payment_intent_id": pi.ID}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to record payment intent: %w", err)
	}

	return &PaymentIntentResponse{
		ClientSecret: pi.ClientSecret,
		PaymentID:    pi.ID,
		Status:       string(pi.Status),
	}, nil
}

// ConfirmPayment checks the intent status with Stripe and, when the charge
// succeeded, marks the order paid and moves it to processing.
func (s *PaymentService) ConfirmPayment(userID uuid.UUID, req *ConfirmPaymentRequest) (*models.Order, error) {
	var order models.Order
	if err := s.db.Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if order.PaymentIntentID == "" {
		return nil, fmt.Errorf("order has no payment intent")
	}

	pi, err := paymentintent.Get(order.PaymentIntentID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, fmt.Errorf("payment not completed: status %s", pi.Status)
	}

	updates := map[string]interface{}{
		"payment_status": models.PaymentStatusPaid,
		"status":         models.OrderStatusProcessing,
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	order.PaymentStatus = models.PaymentStatusPaid
	order.Status = models.OrderStatusProcessing
	return &order, nil
}

// RefundOrder issues a full Stripe refund for a paid order. Admin only.
func (s *PaymentService) RefundOrder(req *RefundRequest) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, "id = ?", req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	if order.PaymentStatus != models.PaymentStatusPaid {
		return nil, fmt.Errorf("order is not paid")
	}
	if order.PaymentIntentID == "" {
		return nil, fmt.Errorf("order has no payment intent")
	}

	params := &stripe.RefundParams{
		PaymentIntent: stripe.String(order.PaymentIntentID),
	}
	if req.Reason != "" {
		params.Reason = stripe.String(req.Reason)
	}

	if _, err := refund.New(params); err != nil {
		return nil, fmt.Errorf("failed to create refund: %w", err)
	}

	updates := map[string]interface{}{
		"payment_status": models.PaymentStatusRefunded,
		"status":         models.OrderStatusCancelled,
	}
	if err := s.db.Model(&order).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	order.PaymentStatus = models.PaymentStatusRefunded
	order.Status = models.OrderStatusCancelled
	return &order, nil
}

// PublishableKey is exposed so the storefront can initialize Stripe.js.
func (s *PaymentService) PublishableKey() string {
	return s.config.Payment.StripePublishableKey
}
