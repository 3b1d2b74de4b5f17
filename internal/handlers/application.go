package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/google/uuid"

  "github.com/traitscan/backend/internal/requestdata"
  "github.com/traitscan/backend/internal/services"
  "github.com/traitscan/backend/internal/types"
)

type ApplicationHandler struct {
  applicationService services.ApplicationService
  scoringService     services.ScoringService
  companyService     services.CompanyService
}

func NewApplicationHandler(
  applicationService services.ApplicationService,
  scoringService services.ScoringService,
  companyService services.CompanyService,
) *ApplicationHandler {
  return &ApplicationHandler{
    applicationService: applicationService,
    scoringService:     scoringService,
    companyService:     companyService,
  }
}

// Open serves GET /api/assessment/:token for the respondent. No auth: the
// token is the credential.
func (ah *ApplicationHandler) Open(c *gin.Context) {
  opened, err := ah.applicationService.OpenByToken(c.Request.Context(), c.Param("token"))
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, opened)
}

// SubmitQuiz serves POST /api/assessment/:token/quiz/:quizId with one full
// quiz page of answers.
func (ah *ApplicationHandler) SubmitQuiz(c *gin.Context) {
  quizID, ok := parseIDParam(c, "quizId")
  if !ok {
    return
  }
  var req struct {
    // question id -> chosen alternative id
    Answers map[string]string `json:"answers"`
  }
  if !bindJSON(c, &req) {
    return
  }
  answers := make(map[uuid.UUID]uuid.UUID, len(req.Answers))
  for rawQuestion, rawAlternative := range req.Answers {
    questionID, err := uuid.Parse(rawQuestion)
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "invalid question id"})
      return
    }
    alternativeID, err := uuid.Parse(rawAlternative)
    if err != nil {
      c.JSON(http.StatusBadRequest, gin.H{"error": "invalid alternative id"})
      return
    }
    answers[questionID] = alternativeID
  }
  result, err := ah.applicationService.SubmitQuizAnswers(c.Request.Context(), c.Param("token"), quizID, answers)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, result)
}

func (ah *ApplicationHandler) Create(c *gin.Context) {
  var req struct {
    AssessmentID string `json:"assessment_id"`
    EmployeeID   string `json:"employee_id"`
    CompanyID    string `json:"company_id"`
  }
  if !bindJSON(c, &req) {
    return
  }
  assessmentID, err := parseUUIDField(c, req.AssessmentID, "assessment_id")
  if err != nil {
    return
  }
  employeeID, err := parseUUIDField(c, req.EmployeeID, "employee_id")
  if err != nil {
    return
  }
  companyID, err := parseUUIDField(c, req.CompanyID, "company_id")
  if err != nil {
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  application, err := ah.applicationService.Create(c.Request.Context(), assessmentID, employeeID, companyID, rd.UserID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, application)
}

func (ah *ApplicationHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  var (
    applications []*types.AssessmentApplication
    err          error
  )
  switch rd.Role {
  case types.RolePsychologist:
    applications, err = ah.applicationService.ListByPsychologist(c.Request.Context(), rd.UserID)
  case types.RoleCompany:
    company, companyErr := ah.companyService.GetByProfile(c.Request.Context(), rd.UserID)
    if companyErr != nil {
      respondError(c, companyErr)
      return
    }
    applications, err = ah.applicationService.ListByCompany(c.Request.Context(), company.ID)
  default:
    c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
    return
  }
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, applications)
}

// Report serves the scored assessment for a completed application.
func (ah *ApplicationHandler) Report(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  report, err := ah.scoringService.ScoreApplication(c.Request.Context(), id)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, report)
}
