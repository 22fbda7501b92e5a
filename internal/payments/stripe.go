package payments

import (
	"context"
	"fmt"
	"strings"

	"learnhub/internal/model"

	log "github.com/sirupsen/logrus"
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"
)

type StripeGateway struct {
	api *client.API
}

func NewStripeGateway(key string) *StripeGateway {
	return &StripeGateway{api: client.New(key, nil)}
}

func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (*model.Payment, error) {
	if !req.Price.HasAmount {
		return nil, ErrUnpriced
	}

	month, year, err := ParseExpiry(req.Card.Expiry)
	if err != nil {
		return nil, err
	}

	pmParams := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(req.Card.Number),
			ExpMonth: stripe.Int64(month),
			ExpYear:  stripe.Int64(year),
			CVC:      stripe.String(req.Card.CVV),
		},
		BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
			Name: stripe.String(req.Card.HolderName),
		},
	}
	pmParams.Context = ctx

	pm, err := g.api.PaymentMethods.New(pmParams)
	if err != nil {
		return nil, fmt.Errorf("creating payment method: %w", err)
	}

	piParams := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(req.Price.Amount),
		Currency:           stripe.String(strings.ToLower(req.Price.Currency)),
		Description:        stripe.String(req.Description),
		PaymentMethod:      stripe.String(pm.ID),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Confirm:            stripe.Bool(true),
	}
	piParams.Context = ctx

	pi, err := g.api.PaymentIntents.New(piParams)
	if err != nil {
		return nil, fmt.Errorf("creating payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		log.WithFields(log.Fields{"payment_intent": pi.ID, "status": pi.Status}).Warn("payment intent not settled")
		return nil, fmt.Errorf("%w: status %s", ErrPaymentDeclined, pi.Status)
	}

	payment := &model.Payment{
		ProviderID: pi.ID,
		Amount:     pi.Amount,
		Currency:   strings.ToUpper(string(pi.Currency)),
		Status:     string(pi.Status),
		LastFour:   req.Card.LastFour(),
	}
	if pm.Card != nil {
		payment.LastFour = pm.Card.Last4
	}

	return payment, nil
}
