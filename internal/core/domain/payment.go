package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethod is the tender used at the point of sale.
type PaymentMethod string

const (
	MethodCash         PaymentMethod = "EFECTIVO"
	MethodCard         PaymentMethod = "TARJETA"
	MethodBankTransfer PaymentMethod = "TRANSFERENCIA"
	MethodMercadoPago  PaymentMethod = "MERCADOPAGO"
)

// ValidPaymentMethod reports whether m is one of the accepted tender types.
func ValidPaymentMethod(m PaymentMethod) bool {
	switch m {
	case MethodCash, MethodCard, MethodBankTransfer, MethodMercadoPago:
		return true
	}
	return false
}

// Payment is a subscription-fee transaction recorded at the front desk.
// When the payer settles ledger debt in the same action, Amount is the total
// charged (fee + ledger portion) and Notes embeds the breakdown.
type Payment struct {
	PaymentID      string          `json:"paymentID"`
	SubscriptionID string          `json:"subscriptionID"`
	Amount         decimal.Decimal `json:"amount"`
	Method         PaymentMethod   `json:"method"`
	Notes          string          `json:"notes"`
	CreatedAt      time.Time       `json:"createdAt"`
}
