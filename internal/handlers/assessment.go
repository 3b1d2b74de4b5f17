package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/traitscan/backend/internal/requestdata"
  "github.com/traitscan/backend/internal/services"
)

type AssessmentHandler struct {
  assessmentService services.AssessmentService
}

func NewAssessmentHandler(assessmentService services.AssessmentService) *AssessmentHandler {
  return &AssessmentHandler{assessmentService: assessmentService}
}

func (ah *AssessmentHandler) Create(c *gin.Context) {
  var req struct {
    Name        string  `json:"name"`
    Description *string `json:"description"`
  }
  if !bindJSON(c, &req) {
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  assessment, err := ah.assessmentService.Create(c.Request.Context(), rd.UserID, req.Name, req.Description)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, assessment)
}

func (ah *AssessmentHandler) Get(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  result, err := ah.assessmentService.GetWithQuizzes(c.Request.Context(), id)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, result)
}

func (ah *AssessmentHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  includeArchived := c.Query("include_archived") == "true"
  assessments, err := ah.assessmentService.ListByPsychologist(c.Request.Context(), rd.UserID, includeArchived)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, assessments)
}

func (ah *AssessmentHandler) Update(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    Name        *string `json:"name"`
    Description *string `json:"description"`
  }
  if !bindJSON(c, &req) {
    return
  }
  if err := ah.assessmentService.Update(c.Request.Context(), id, req.Name, req.Description); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ah *AssessmentHandler) Archive(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    Archived bool `json:"archived"`
  }
  if !bindJSON(c, &req) {
    return
  }
  if err := ah.assessmentService.Archive(c.Request.Context(), id, req.Archived); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}

func (ah *AssessmentHandler) AddQuiz(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req struct {
    QuizID      string `json:"quiz_id"`
    OrderNumber int    `json:"order_number"`
  }
  if !bindJSON(c, &req) {
    return
  }
  quizID, err := parseUUIDField(c, req.QuizID, "quiz_id")
  if err != nil {
    return
  }
  join, err := ah.assessmentService.AddQuiz(c.Request.Context(), id, quizID, req.OrderNumber)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, join)
}

func (ah *AssessmentHandler) RemoveQuiz(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  quizID, ok := parseIDParam(c, "quizId")
  if !ok {
    return
  }
  if err := ah.assessmentService.RemoveQuiz(c.Request.Context(), id, quizID); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}
