package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"homesteadhub/internal/domain"
)

// MethodCashPickup is the registry key for cash-on-pickup orders.
const MethodCashPickup = "cashPickup"

// CashPickup confirms an order to be paid in cash when the customer collects
// it at the market stand. No money moves at placement time, so the outcome is
// PENDING_PICKUP rather than SUCCESS.
type CashPickup struct {
	// now is swappable for tests.
	now func() time.Time
}

// NewCashPickup returns a cash-on-pickup strategy.
func NewCashPickup() *CashPickup {
	return &CashPickup{now: time.Now}
}

// ProcessTransaction records the pickup confirmation.
func (p *CashPickup) ProcessTransaction(_ context.Context, amount decimal.Decimal, detail domain.PaymentDetail) (domain.PaymentOutcome, error) {
	ref := fmt.Sprintf("TS-%d", p.now().UnixMilli())
	return domain.PaymentOutcome{
		Code:      domain.OutcomePendingPickup,
		Reference: ref,
		Message:   fmt.Sprintf("confirmed cash pickup order for $%s, customer %s", amount.StringFixed(2), detail.CustomerName),
	}, nil
}
