package services

import (
  "context"
  "encoding/json"
  "errors"
  "fmt"
  "time"

  "github.com/google/uuid"
  "github.com/stripe/stripe-go/v76"
  "gorm.io/datatypes"
  "gorm.io/gorm"

  "github.com/traitscan/backend/internal/apierr"
  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/repos"
  "github.com/traitscan/backend/internal/types"
)

// SubscriptionUpdate is the normalized form of a provider event: which
// tenant, what the subscription looks like now.
type SubscriptionUpdate struct {
  CompanyID      uuid.UUID
  Status         string
  CustomerID     *string
  SubscriptionID *string
  TrialEndsAt    *time.Time
}

// CheckoutConfig pins the subscription price and the redirect URLs on the
// server. The price is never taken from a request; the URLs are defaults a
// request may override.
type CheckoutConfig struct {
  PriceID    string
  SuccessURL string
  CancelURL  string
}

type BillingService interface {
  // CreateCheckout returns the hosted checkout URL for the company's
  // profile owner to start a subscription. Empty successURL or cancelURL
  // fall back to the configured defaults.
  CreateCheckout(ctx context.Context, companyID uuid.UUID, successURL, cancelURL string) (string, error)
  // HandleWebhook verifies the signature, records the event and applies
  // subscription changes. Events that carry no company_id metadata are
  // acknowledged without effect.
  HandleWebhook(ctx context.Context, payload []byte, signature string) error
  // ApplySubscriptionUpdate overwrites the company's billing columns with
  // the provider's view. Replays are harmless.
  ApplySubscriptionUpdate(ctx context.Context, update SubscriptionUpdate) error
}

type billingService struct {
  log          *logger.Logger
  companyRepo  repos.CompanyRepo
  eventRepo    repos.WebhookEventRepo
  stripeClient StripeClient
  checkout     CheckoutConfig
  now          func() time.Time
}

func NewBillingService(
  log *logger.Logger,
  companyRepo repos.CompanyRepo,
  eventRepo repos.WebhookEventRepo,
  stripeClient StripeClient,
  checkout CheckoutConfig,
) BillingService {
  serviceLog := log.With("service", "BillingService")
  return &billingService{
    log:          serviceLog,
    companyRepo:  companyRepo,
    eventRepo:    eventRepo,
    stripeClient: stripeClient,
    checkout:     checkout,
    now:          time.Now,
  }
}

func (s *billingService) CreateCheckout(ctx context.Context, companyID uuid.UUID, successURL, cancelURL string) (string, error) {
  company, err := s.companyRepo.GetByID(ctx, nil, companyID)
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return "", apierr.NotFound("company")
    }
    return "", fmt.Errorf("Failed to load company: %w", err)
  }
  email := ""
  if company.Email != nil {
    email = *company.Email
  }
  if successURL == "" {
    successURL = s.checkout.SuccessURL
  }
  if cancelURL == "" {
    cancelURL = s.checkout.CancelURL
  }
  url, err := s.stripeClient.CreateCheckoutSession(CheckoutParams{
    CompanyID:     companyID.String(),
    CustomerEmail: email,
    PriceID:       s.checkout.PriceID,
    SuccessURL:    successURL,
    CancelURL:     cancelURL,
  })
  if err != nil {
    return "", apierr.External(err)
  }
  return url, nil
}

func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
  event, err := s.stripeClient.ConstructEvent(payload, signature)
  if err != nil {
    return apierr.Validation(fmt.Errorf("invalid webhook signature"))
  }

  record := &types.WebhookEvent{
    ID:              uuid.New(),
    ProviderEventID: event.ID,
    EventType:       string(event.Type),
    Payload:         datatypes.JSON(payload),
  }
  if err := s.eventRepo.Record(ctx, nil, record); err != nil {
    s.log.Warn("Failed to record webhook event", "event_type", event.Type, "error", err)
  }

  switch event.Type {
  case "checkout.session.completed":
    return s.handleCheckoutCompleted(ctx, event)
  case "customer.subscription.updated", "customer.subscription.deleted":
    return s.handleSubscriptionChanged(ctx, event)
  default:
    s.log.Debug("Ignoring webhook event", "event_type", event.Type)
    return nil
  }
}

func (s *billingService) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
  var checkoutSession stripe.CheckoutSession
  if err := json.Unmarshal(event.Data.Raw, &checkoutSession); err != nil {
    return fmt.Errorf("Failed to decode checkout session: %w", err)
  }
  companyID, ok := companyIDFromMetadata(checkoutSession.Metadata)
  if !ok {
    s.log.Warn("Checkout session without company_id metadata", "event_id", event.ID)
    return nil
  }
  update := SubscriptionUpdate{
    CompanyID: companyID,
    Status:    types.SubscriptionActive,
  }
  if checkoutSession.Customer != nil {
    update.CustomerID = &checkoutSession.Customer.ID
  }
  if checkoutSession.Subscription != nil {
    update.SubscriptionID = &checkoutSession.Subscription.ID
    // the session only embeds a subscription stub; fetch the full object
    // for the authoritative status and trial end
    full, err := s.stripeClient.GetSubscription(checkoutSession.Subscription.ID)
    if err != nil {
      s.log.Warn("Failed to fetch subscription after checkout", "error", err)
    } else {
      applySubscriptionFields(&update, full)
    }
  }
  return s.ApplySubscriptionUpdate(ctx, update)
}

func (s *billingService) handleSubscriptionChanged(ctx context.Context, event stripe.Event) error {
  var sub stripe.Subscription
  if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
    return fmt.Errorf("Failed to decode subscription: %w", err)
  }
  companyID, ok := companyIDFromMetadata(sub.Metadata)
  if !ok {
    s.log.Warn("Subscription event without company_id metadata", "event_id", event.ID)
    return nil
  }
  update := SubscriptionUpdate{CompanyID: companyID}
  applySubscriptionFields(&update, &sub)
  if event.Type == "customer.subscription.deleted" {
    update.Status = types.SubscriptionCancelled
  }
  return s.ApplySubscriptionUpdate(ctx, update)
}

func (s *billingService) ApplySubscriptionUpdate(ctx context.Context, update SubscriptionUpdate) error {
  fields := map[string]interface{}{
    "subscription_status": update.Status,
    "is_active":           update.Status == types.SubscriptionActive || update.Status == types.SubscriptionTrial,
    "updated_at":          s.now(),
  }
  if update.CustomerID != nil {
    fields["stripe_customer_id"] = *update.CustomerID
  }
  if update.SubscriptionID != nil {
    fields["stripe_subscription_id"] = *update.SubscriptionID
  }
  if update.TrialEndsAt != nil {
    fields["trial_ends_at"] = *update.TrialEndsAt
  }
  if err := s.companyRepo.Update(ctx, nil, update.CompanyID, fields); err != nil {
    return fmt.Errorf("Failed to apply subscription update: %w", err)
  }
  s.log.Info("Applied subscription update", "company_id", update.CompanyID, "status", update.Status)
  return nil
}

func applySubscriptionFields(update *SubscriptionUpdate, sub *stripe.Subscription) {
  update.Status = MapProviderStatus(string(sub.Status))
  if sub.Customer != nil {
    update.CustomerID = &sub.Customer.ID
  }
  subscriptionID := sub.ID
  if subscriptionID != "" {
    update.SubscriptionID = &subscriptionID
  }
  if sub.TrialEnd > 0 {
    trialEnd := time.Unix(sub.TrialEnd, 0).UTC()
    update.TrialEndsAt = &trialEnd
  }
}

func companyIDFromMetadata(metadata map[string]string) (uuid.UUID, bool) {
  raw, ok := metadata["company_id"]
  if !ok || raw == "" {
    return uuid.Nil, false
  }
  id, err := uuid.Parse(raw)
  if err != nil {
    return uuid.Nil, false
  }
  return id, true
}

// MapProviderStatus translates a provider subscription status into the
// statuses the rest of the system understands. Unknown statuses land on
// inactive rather than failing the event.
func MapProviderStatus(providerStatus string) string {
  switch providerStatus {
  case "trialing":
    return types.SubscriptionTrial
  case "active":
    return types.SubscriptionActive
  case "past_due", "incomplete", "incomplete_expired":
    return types.SubscriptionPastDue
  case "canceled":
    return types.SubscriptionCancelled
  default:
    return types.SubscriptionInactive
  }
}
