package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "github.com/gin-gonic/gin/binding"
  "github.com/google/uuid"

  "github.com/traitscan/backend/internal/apierr"
)

// respondError maps service errors onto the API's error envelope. Reason
// codes from apierr pass through; everything else is a plain 500.
func respondError(c *gin.Context, err error) {
  status := apierr.StatusOf(err)
  body := gin.H{"error": err.Error()}
  if code := apierr.CodeOf(err); code != "" {
    body["reason"] = code
  } else if status == http.StatusInternalServerError {
    body = gin.H{"error": "internal error"}
  }
  c.JSON(status, body)
}

func bindJSON(c *gin.Context, out interface{}) bool {
  if err := c.ShouldBindWith(out, binding.JSON); err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
    return false
  }
  return true
}

func parseIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
  id, err := uuid.Parse(c.Param(name))
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
    return uuid.Nil, false
  }
  return id, true
}

func parseUUIDField(c *gin.Context, raw, name string) (uuid.UUID, error) {
  id, err := uuid.Parse(raw)
  if err != nil {
    c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
    return uuid.Nil, err
  }
  return id, nil
}
