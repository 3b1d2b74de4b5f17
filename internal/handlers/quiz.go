package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"

  "github.com/traitscan/backend/internal/requestdata"
  "github.com/traitscan/backend/internal/services"
)

type QuizHandler struct {
  quizService services.QuizService
}

func NewQuizHandler(quizService services.QuizService) *QuizHandler {
  return &QuizHandler{quizService: quizService}
}

func (qh *QuizHandler) Create(c *gin.Context) {
  var req struct {
    Name        string  `json:"name"`
    Description *string `json:"description"`
  }
  if !bindJSON(c, &req) {
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  quiz, err := qh.quizService.Create(c.Request.Context(), rd.UserID, req.Name, req.Description)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, quiz)
}

func (qh *QuizHandler) Get(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  quiz, err := qh.quizService.GetWithQuestions(c.Request.Context(), id)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, quiz)
}

func (qh *QuizHandler) List(c *gin.Context) {
  rd := requestdata.GetRequestData(c.Request.Context())
  includeArchived := c.Query("include_archived") == "true"
  quizzes, err := qh.quizService.ListByPsychologist(c.Request.Context(), rd.UserID, includeArchived)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, quizzes)
}

func (qh *QuizHandler) Update(c *gin.Context) {
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
  if err := qh.quizService.Update(c.Request.Context(), id, req.Name, req.Description); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}

func (qh *QuizHandler) Archive(c *gin.Context) {
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
  if err := qh.quizService.Archive(c.Request.Context(), id, req.Archived); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}

func (qh *QuizHandler) Duplicate(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  rd := requestdata.GetRequestData(c.Request.Context())
  quiz, err := qh.quizService.Duplicate(c.Request.Context(), id, rd.UserID)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, quiz)
}

func (qh *QuizHandler) AddQuestion(c *gin.Context) {
  id, ok := parseIDParam(c, "id")
  if !ok {
    return
  }
  var req services.QuestionInput
  if !bindJSON(c, &req) {
    return
  }
  question, err := qh.quizService.AddQuestion(c.Request.Context(), id, req)
  if err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusCreated, question)
}

func (qh *QuizHandler) UpdateQuestion(c *gin.Context) {
  questionID, ok := parseIDParam(c, "questionId")
  if !ok {
    return
  }
  var req struct {
    Text        *string `json:"question_text"`
    OrderNumber *int    `json:"order_number"`
  }
  if !bindJSON(c, &req) {
    return
  }
  if err := qh.quizService.UpdateQuestion(c.Request.Context(), questionID, req.Text, req.OrderNumber); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}

func (qh *QuizHandler) DeleteQuestion(c *gin.Context) {
  questionID, ok := parseIDParam(c, "questionId")
  if !ok {
    return
  }
  if err := qh.quizService.DeleteQuestion(c.Request.Context(), questionID); err != nil {
    respondError(c, err)
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true})
}
