package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/traitscan/backend/internal/requestdata"
  "github.com/traitscan/backend/internal/services"
)

type CompanyHandler struct {
  companyService services.CompanyService
}

func NewCompanyHandler(companyService services.CompanyService) *CompanyHandler {
  return &CompanyHandler{companyService: companyService}
}

func (ch *CompanyHandler) Create(c *gin.Context) {
  var req struct {
    Name    string  `json:"name"`
    Email   *string `json:"email"`
    Phone   *string `json:"phone"`
    Address *string `json:"address"`
  }
  if !bindJSON(c, &req) {
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  company, err := ch.companyService.Create(c.Request.Context(), rd.UserID, req.Name, req.Email, req.Phone, req.Address)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, company)
}

func (ch *CompanyHandler) Get(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  company, err := ch.companyService.GetByID(c.Request.Context(), id)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, company)
}

func (ch *CompanyHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  companies, err := ch.companyService.ListByPsychologist(c.Request.Context(), rd.UserID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, companies)
}

func (ch *CompanyHandler) Update(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    Name    *string `json:"name"`
    Email   *string `json:"email"`
    Phone   *string `json:"phone"`
    Address *string `json:"address"`
  }
  if !bindJSON(c, &req) {
    return
  }
  if err := ch.companyService.Update(c.Request.Context(), id, req.Name, req.Email, req.Phone, req.Address); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}
