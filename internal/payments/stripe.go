package payments

import (
	"context"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

// StripeProvider implements Provider against Stripe hosted checkout.
type StripeProvider struct {
	currency string
	siteURL  string
}

func NewStripeProvider(secretKey, currency, siteURL string) *StripeProvider {
	stripe.Key = secretKey
	return &StripeProvider{
		currency: currency,
		siteURL:  siteURL,
	}
}

func (p *StripeProvider) CreateCheckoutSession(ctx context.Context, cp CheckoutParams) (*Session, error) {
	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(p.currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(cp.ParcelName),
					},
					UnitAmount: stripe.Int64(int64(math.Round(cp.Cost * 100))),
				},
				Quantity: stripe.Int64(1),
			},
		},
		CustomerEmail: stripe.String(cp.SenderEmail),
		SuccessURL:    stripe.String(p.siteURL + "/payment-success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:     stripe.String(p.siteURL + "/payment-cancelled"),
	}
	params.Context = ctx

	// The parcel reference travels in session metadata, never in the
	// confirmation call: the client only ever presents a session id.
	params.AddMetadata("parcelId", fmt.Sprintf("%d", cp.ParcelID))
	params.AddMetadata("parcelName", cp.ParcelName)
	params.AddMetadata("senderEmail", cp.SenderEmail)

	s, err := session.New(params)
	if err != nil {
		return nil, err
	}

	return fromStripeSession(s), nil
}

func (p *StripeProvider) RetrieveSession(ctx context.Context, sessionID string) (*Session, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx

	s, err := session.Get(sessionID, params)
	if err != nil {
		return nil, err
	}

	return fromStripeSession(s), nil
}

func fromStripeSession(s *stripe.CheckoutSession) *Session {
	out := &Session{
		ID:            s.ID,
		URL:           s.URL,
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
		CustomerEmail: s.CustomerEmail,
		Metadata:      s.Metadata,
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
	}
	if s.CustomerDetails != nil && s.CustomerDetails.Email != "" {
		out.CustomerEmail = s.CustomerDetails.Email
	}
	return out
}
