package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/traitscan/backend/internal/requestdata"
  "github.com/traitscan/backend/internal/services"
)

type ProfileHandler struct {
  profileService services.ProfileService
}

func NewProfileHandler(profileService services.ProfileService) *ProfileHandler {
  return &ProfileHandler{profileService: profileService}
}

// GetMe answers with the profile plus the role's navigation descriptor so
// the client can route the user after login.
func (ph *ProfileHandler) GetMe(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  profile, err := ph.profileService.GetByID(c.Request.Context(), rd.UserID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{
    "profile":      profile,
    "capabilities": services.CapabilitiesForRole(profile.Role),
  })
}

func (ph *ProfileHandler) UpdateMe(c *gin.Context) {
  var req struct {
    FullName *string `json:"full_name"`
    Language *string `json:"language"`
  }
  if !bindJSON(c, &req) {
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  if err := ph.profileService.Update(c.Request.Context(), rd.UserID, req.FullName, req.Language); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}
