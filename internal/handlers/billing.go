package handlers

import (
  "io"
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/traitscan/backend/internal/logger"
  "github.com/traitscan/backend/internal/requestdata"
  "github.com/traitscan/backend/internal/services"
)

type BillingHandler struct {
  log            *logger.Logger
  billingService services.BillingService
  companyService services.CompanyService
}

func NewBillingHandler(log *logger.Logger, billingService services.BillingService, companyService services.CompanyService) *BillingHandler {
  return &BillingHandler{
    log:            log.With("handler", "BillingHandler"),
    billingService: billingService,
    companyService: companyService,
  }
}

// Checkout starts a subscription for the caller's own company. The price
// is fixed server-side; the request may only override the redirect URLs.
func (bh *BillingHandler) Checkout(c *gin.Context) {
  var req struct {
    SuccessURL string `json:"success_url"`
    CancelURL  string `json:"cancel_url"`
  }
  if !bindJSON(c, &req) {
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  company, err := bh.companyService.GetByProfile(c.Request.Context(), rd.UserID)
  if err != nil {
    respondError(c, err)
    return
  }
  url, err := bh.billingService.CreateCheckout(c.Request.Context(), company.ID, req.SuccessURL, req.CancelURL)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"checkout_url": url})
}

// Webhook receives provider events. The raw body is required for signature
// verification, so this handler must not sit behind any body-parsing
// middleware.
func (bh *BillingHandler) Webhook(c *gin.Context) {
  payload, err := io.ReadAll(c.Request.Body)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
    return
  }
  signature := c.GetHeader("Stripe-Signature")
  if err := bh.billingService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
    bh.log.Warn("Webhook processing failed", "error", err)
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"received": true})
}
