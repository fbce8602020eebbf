package payments

import "context"

// Session is the provider's view of one checkout attempt. PaymentIntentID
// is the transaction identifier local Payment records are keyed by.
type Session struct {
	ID              string
	URL             string
	PaymentIntentID string
	PaymentStatus   string // "paid", "unpaid", "no_payment_required"
	AmountTotal     int64  // minor units
	Currency        string
	CustomerEmail   string
	Metadata        map[string]string
}

// Paid reports whether the provider settled the session.
func (s *Session) Paid() bool {
	return s.PaymentStatus == "paid"
}

// CheckoutParams carries the fields a hosted checkout session is created from.
type CheckoutParams struct {
	Cost        float64
	ParcelID    uint
	ParcelName  string
	SenderEmail string
}

// Provider is the external checkout service. Implemented by Stripe in
// production and stubbed in tests.
type Provider interface {
	CreateCheckoutSession(ctx context.Context, params CheckoutParams) (*Session, error)
	RetrieveSession(ctx context.Context, sessionID string) (*Session, error)
}
