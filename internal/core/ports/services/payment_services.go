package services

import (
	"context"

	"github.com/fittrack/gym_backoffice/internal/core/domain"
	"github.com/fittrack/gym_backoffice/internal/dto"
)

// PaymentSvcFacade is the payment coordinator: it composes a subscription-fee
// payment with an optional simultaneous ledger settlement as one action.
type PaymentSvcFacade interface {
	// RegisterPayment persists the payment and, when requested and the
	// target account is ACTIVO, the linked ledger settlement - all within a
	// single storage transaction. The returned bool reports whether the
	// settlement was applied; a requested settlement against a non-ACTIVO
	// account is skipped, not failed.
	RegisterPayment(ctx context.Context, req dto.RegisterPaymentRequest) (*domain.Payment, bool, error)
}
