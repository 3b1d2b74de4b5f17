package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/traitscan/backend/internal/requestdata"
  "github.com/traitscan/backend/internal/services"
)

type InvitationHandler struct {
  invitationService services.InvitationService
}

func NewInvitationHandler(invitationService services.InvitationService) *InvitationHandler {
  return &InvitationHandler{invitationService: invitationService}
}

func (ih *InvitationHandler) Create(c *gin.Context) {
  var req struct {
    InviteeName    string  `json:"invitee_name"`
    Email          *string `json:"email"`
    Role           string  `json:"role"`
    CompanyID      *string `json:"company_id"`
    PsychologistID *string `json:"psychologist_id"`
  }
  if !bindJSON(c, &req) {
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  input := services.CreateInvitationInput{
    InviteeName: req.InviteeName,
    Email:       req.Email,
    Role:        req.Role,
    InvitedBy:   rd.UserID,
  }
  if req.CompanyID != nil {
    companyID, err := parseUUIDField(c, *req.CompanyID, "company_id")
    if err != nil {
      return
    }
    input.CompanyID = &companyID
  }
  if req.PsychologistID != nil {
    psychologistID, err := parseUUIDField(c, *req.PsychologistID, "psychologist_id")
    if err != nil {
      return
    }
    input.PsychologistID = &psychologistID
  }
  invitation, err := ih.invitationService.Create(c.Request.Context(), input)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, invitation)
}

// Get serves the public GET /api/invite/:token lookup the signup page uses
// to decide between the form and a reason-specific error state.
func (ih *InvitationHandler) Get(c *gin.Context) {
  invitation, err := ih.invitationService.GetByToken(c.Request.Context(), c.Param("token"))
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{
    "invitee_name": invitation.InviteeName,
    "email":        invitation.Email,
    "role":         invitation.Role,
  })
}

// Accept runs after the invited person registered and logged in.
func (ih *InvitationHandler) Accept(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if rd == nil || rd.UserID == uuid.Nil {
    c.JSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token"})
    return
  }
  result, err := ih.invitationService.Accept(c.Request.Context(), c.Param("token"), rd.UserID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, result)
}

func (ih *InvitationHandler) ListMine(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  invitations, err := ih.invitationService.ListByInviter(c.Request.Context(), rd.UserID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, invitations)
}
