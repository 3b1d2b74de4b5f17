package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/traitscan/backend/internal/requestdata"
  "github.com/traitscan/backend/internal/services"
)

type AuthHandler struct {
  authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
  return &AuthHandler{authService: authService}
}

func (ah *AuthHandler) Register(c *gin.Context) {
  var req struct {
    Email    string `json:"email"`
    FullName string `json:"full_name"`
    Password string `json:"password"`
  }
  if !bindJSON(c, &req) {
    return
  }
  profile, err := ah.authService.Register(c.Request.Context(), req.Email, req.FullName, req.Password)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, profile)
}

func (ah *AuthHandler) Login(c *gin.Context) {
  var req struct {
    Email    string `json:"email"`
    Password string `json:"password"`
  }
  if !bindJSON(c, &req) {
    return
  }
  pair, err := ah.authService.Login(c.Request.Context(), req.Email, req.Password)
  if err != nil {
    respondError(c, err)
    return
  }
  expiresIn := int(ah.authService.GetAccessTTL().Seconds())
  c.JSON(http.StatusOK, gin.H{
    "access_token":  pair.AccessToken,
    "refresh_token": pair.RefreshToken,
    "expires_in":    expiresIn,
  })
}

func (ah *AuthHandler) Refresh(c *gin.Context) {
  var req struct {
    RefreshToken string `json:"refresh_token"`
  }
  if !bindJSON(c, &req) {
    return
  }
  pair, err := ah.authService.Refresh(c.Request.Context(), req.RefreshToken)
  if err != nil {
    respondError(c, err)
    return
  }
  expiresIn := int(ah.authService.GetAccessTTL().Seconds())
  c.JSON(http.StatusOK, gin.H{
    "access_token":  pair.AccessToken,
    "refresh_token": pair.RefreshToken,
    "expires_in":    expiresIn,
  })
}

func (ah *AuthHandler) Logout(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  if err := ah.authService.Logout(c.Request.Context(), rd.UserID); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"message": "logged out successfully"})
}
