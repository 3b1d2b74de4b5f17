package services

import (
  "fmt"

  "github.com/stripe/stripe-go/v76"
  "github.com/stripe/stripe-go/v76/checkout/session"
  "github.com/stripe/stripe-go/v76/subscription"
  "github.com/stripe/stripe-go/v76/webhook"
)

// CheckoutParams carries everything a hosted checkout session needs. The
// company id travels in metadata on both the session and the subscription
// so webhook events can be correlated back to the tenant.
type CheckoutParams struct {
  CompanyID     string
  CustomerEmail string
  PriceID       string
  SuccessURL    string
  CancelURL     string
}

// StripeClient is the slice of the payment provider the billing service
// needs. The real implementation wraps the Stripe SDK; tests swap in a fake.
type StripeClient interface {
  CreateCheckoutSession(params CheckoutParams) (sessionURL string, err error)
  GetSubscription(subscriptionID string) (*stripe.Subscription, error)
  ConstructEvent(payload []byte, signature string) (stripe.Event, error)
}

type stripeClient struct {
  webhookSecret string
}

func NewStripeClient(apiKey, webhookSecret string) StripeClient {
  stripe.Key = apiKey
  return &stripeClient{webhookSecret: webhookSecret}
}

func (c *stripeClient) CreateCheckoutSession(params CheckoutParams) (string, error) {
  result, err := session.New(checkoutSessionParams(params))
  if err != nil {
    return "", fmt.Errorf("Failed to create checkout session: %w", err)
  }
  return result.URL, nil
}

func checkoutSessionParams(params CheckoutParams) *stripe.CheckoutSessionParams {
  sessionParams := &stripe.CheckoutSessionParams{
    Mode:       stripe.String(string(stripe.CheckoutSessionModeSubscription)),
    SuccessURL: stripe.String(params.SuccessURL),
    CancelURL:  stripe.String(params.CancelURL),
    LineItems: []*stripe.CheckoutSessionLineItemParams{
      {
        Price:    stripe.String(params.PriceID),
        Quantity: stripe.Int64(1),
      },
    },
    SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
      Metadata: map[string]string{"company_id": params.CompanyID},
    },
  }
  // Stripe rejects an empty customer_email; omit the field instead
  if params.CustomerEmail != "" {
    sessionParams.CustomerEmail = stripe.String(params.CustomerEmail)
  }
  sessionParams.AddMetadata("company_id", params.CompanyID)
  return sessionParams
}

func (c *stripeClient) GetSubscription(subscriptionID string) (*stripe.Subscription, error) {
  result, err := subscription.Get(subscriptionID, nil)
  if err != nil {
    return nil, fmt.Errorf("Failed to fetch subscription: %w", err)
  }
  return result, nil
}

func (c *stripeClient) ConstructEvent(payload []byte, signature string) (stripe.Event, error) {
  return webhook.ConstructEvent(payload, signature, c.webhookSecret)
}
