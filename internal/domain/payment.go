package domain

// OutcomeCode classifies the result of a single payment attempt.
type OutcomeCode string

const (
	OutcomeSuccess       OutcomeCode = "SUCCESS"
	OutcomeFailure       OutcomeCode = "FAILURE"
	OutcomePendingPickup OutcomeCode = "PENDING_PICKUP"
)

// PaymentOutcome is produced exactly once per placement attempt and never
// mutated. Business failures are outcomes, not errors.
type PaymentOutcome struct {
	Code      OutcomeCode `json:"code"`
	Reference string      `json:"reference"`
	Message   string      `json:"message"`
}

// OrderStatus maps the outcome to the initial status of the order being
// placed: cash-on-pickup confirmations become READY_FOR_PICKUP, settled
// payments become PLACED, everything else (including failures) lands in
// PROCESSING for later reconciliation.
func (o PaymentOutcome) OrderStatus() OrderStatus {
	switch o.Code {
	case OutcomePendingPickup:
		return StatusReadyForPickup
	case OutcomeSuccess:
		return StatusPlaced
	default:
		return StatusProcessing
	}
}

// PaymentDetail carries the customer-supplied input for a payment attempt.
// Method selects the strategy; the remaining fields are method-specific.
type PaymentDetail struct {
	Method       string `json:"method"`
	Token        string `json:"token,omitempty"`
	CustomerName string `json:"customerName,omitempty"`
}
