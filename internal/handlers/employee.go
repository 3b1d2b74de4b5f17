package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/traitscan/backend/internal/requestdata"
  "github.com/traitscan/backend/internal/services"
)

type EmployeeHandler struct {
  employeeService services.EmployeeService
  companyService  services.CompanyService
}

func NewEmployeeHandler(employeeService services.EmployeeService, companyService services.CompanyService) *EmployeeHandler {
  return &EmployeeHandler{employeeService: employeeService, companyService: companyService}
}

// companyForCaller resolves which tenant the logged-in company user manages.
func (eh *EmployeeHandler) companyForCaller(c *gin.Context) (uuid.UUID, bool) {
  rd := requestdata.GetRequestData(c.Request.Context())
  company, err := eh.companyService.GetByProfile(c.Request.Context(), rd.UserID)
  if err != nil {
    respondError(c, err)
    return uuid.Nil, false
  }
  return company.ID, true
}

func (eh *EmployeeHandler) Create(c *gin.Context) {
  var req services.EmployeeInput
  if !bindJSON(c, &req) {
    return
  }
  companyID, ok := eh.companyForCaller(c)
  if !ok {
    return
  }
  employee, err := eh.employeeService.Create(c.Request.Context(), companyID, req)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, employee)
}

func (eh *EmployeeHandler) List(c *gin.Context) {
  companyID, ok := eh.companyForCaller(c)
  if !ok {
    return
  }
  employees, err := eh.employeeService.ListByCompany(c.Request.Context(), companyID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, employees)
}

func (eh *EmployeeHandler) Update(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req services.EmployeeInput
  if !bindJSON(c, &req) {
    return
  }
  if err := eh.employeeService.Update(c.Request.Context(), id, req); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}

func (eh *EmployeeHandler) Delete(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  if err := eh.employeeService.Delete(c.Request.Context(), id); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}
