package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/traitscan/backend/internal/services"
)

type AdminHandler struct {
  adminService   services.AdminService
  profileService services.ProfileService
}

func NewAdminHandler(adminService services.AdminService, profileService services.ProfileService) *AdminHandler {
  return &AdminHandler{adminService: adminService, profileService: profileService}
}

func (ah *AdminHandler) Overview(c *gin.Context) {
  overview, err := ah.adminService.GetOverview(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, overview)
}

func (ah *AdminHandler) BillingSummary(c *gin.Context) {
  summary, err := ah.adminService.GetBillingSummary(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, summary)
}

func (ah *AdminHandler) ListPsychologists(c *gin.Context) {
  psychologists, err := ah.adminService.ListPsychologists(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, psychologists)
}

func (ah *AdminHandler) ListCompanies(c *gin.Context) {
  companies, err := ah.adminService.ListCompanies(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, companies)
}

func (ah *AdminHandler) ListInvitations(c *gin.Context) {
  invitations, err := ah.adminService.ListInvitations(c.Request.Context())
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, invitations)
}

func (ah *AdminHandler) SetPsychologistActive(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    Active bool `json:"active"`
  }
  if !bindJSON(c, &req) {
    return
  }
  if err := ah.adminService.SetPsychologistActive(c.Request.Context(), id, req.Active); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ah *AdminHandler) SetProfileRole(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    Role string `json:"role" binding:"required"`
  }
  if !bindJSON(c, &req) {
    return
  }
  if err := ah.profileService.UpdateRole(c.Request.Context(), id, req.Role); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ah *AdminHandler) SetCompanyActive(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    Active bool `json:"active"`
  }
  if !bindJSON(c, &req) {
    return
  }
  if err := ah.adminService.SetCompanyActive(c.Request.Context(), id, req.Active); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}
