package payment

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"homesteadhub/internal/domain"
)

// MethodCard is the registry key for card payments.
const MethodCard = "card"

// Card settles payments against a tokenized card. There is no real gateway
// behind it; a present token settles, a missing or expired one is declined.
// A decline is a business outcome, not an error.
type Card struct{}

// NewCard returns a card strategy.
func NewCard() *Card {
	return &Card{}
}

// ProcessTransaction charges the tokenized card once.
func (p *Card) ProcessTransaction(_ context.Context, amount decimal.Decimal, detail domain.PaymentDetail) (domain.PaymentOutcome, error) {
	if detail.Token == "" {
		return domain.PaymentOutcome{
			Code:    domain.OutcomeFailure,
			Message: "card declined: missing payment token",
		}, nil
	}
	return domain.PaymentOutcome{
		Code:      domain.OutcomeSuccess,
		Reference: "CC-" + uuid.NewString(),
		Message:   fmt.Sprintf("charged $%s to card for %s", amount.StringFixed(2), detail.CustomerName),
	}, nil
}
