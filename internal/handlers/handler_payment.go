package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/fittrack/gym_backoffice/internal/core/ports/services"
	"github.com/fittrack/gym_backoffice/internal/dto"
	"github.com/fittrack/gym_backoffice/internal/middleware"
)

// paymentHandler handles HTTP requests for the payment coordinator.
type paymentHandler struct {
	paymentService portssvc.PaymentSvcFacade
}

func newPaymentHandler(ps portssvc.PaymentSvcFacade) *paymentHandler {
	return &paymentHandler{paymentService: ps}
}

// registerPaymentRoutes registers the payment coordinator route.
func registerPaymentRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvcFacade) {
	h := newPaymentHandler(paymentService)
	rg.POST("/payments", h.registerPayment)
}

// registerPayment godoc
// @Summary Register a payment
// @Description Registers a subscription-fee payment, optionally settling cuenta corriente debt in the same action. The response reports whether the ledger settlement was applied; a settlement against a non-active account is skipped, not failed.
// @Tags payments
// @Accept json
// @Produce json
// @Param payment body dto.RegisterPaymentRequest true "Payment details"
// @Success 201 {object} dto.PaymentResponse
// @Failure 400 {object} map[string]string "Invalid amount or payment method"
// @Failure 404 {object} map[string]string "Subscription not found"
// @Security BearerAuth
// @Router /payments [post]
func (h *paymentHandler) registerPayment(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for registerPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	payment, ledgerApplied, err := h.paymentService.RegisterPayment(c.Request.Context(), req)
	if err != nil {
		respondLedgerError(c, err, "Failed to register payment")
		return
	}

	logger.Info("Payment registered", slog.String("payment_id", payment.PaymentID), slog.Bool("ledger_settlement_applied", ledgerApplied))
	c.JSON(http.StatusCreated, dto.ToPaymentResponse(payment, ledgerApplied))
}
