// internal/handlers/payment.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/frameit/frameit-backend/internal/middleware"
	"github.com/frameit/frameit-backend/internal/services"
	"github.com/frameit/frameit-backend/internal/utils"
)

type PaymentHandler struct {
	paymentService *services.PaymentService
}

func NewPaymentHandler(paymentService *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// GET /api/payments/config
func (h *PaymentHandler) GetConfig(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"publishableKey": h.paymentService.PublishableKey(),
	})
}

// POST /api/payments/create-intent
func (h *PaymentHandler) CreateIntent(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.CreatePaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	if validationErrors := utils.GetValidationErrors(utils.ValidateStruct(&req)); len(validationErrors) > 0 {
		utils.ValidationErrorResponse(c, validationErrors)
		return
	}

	intent, err := h.paymentService.CreatePaymentIntent(user.ID, &req)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotPayable) {
			utils.ConflictResponse(c, err.Error())
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, intent)
}

// POST /api/payments/confirm
func (h *PaymentHandler) ConfirmPayment(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.paymentService.ConfirmPayment(user.ID, &req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, order)
}

// POST /api/admin/payments/refund
func (h *PaymentHandler) RefundOrder(c *gin.Context) {
	var req services.RefundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	order, err := h.paymentService.RefundOrder(&req)
	if err != nil {
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, order)
}
