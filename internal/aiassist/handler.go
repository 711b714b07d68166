package aiassist

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

type GenerateRequest struct {
	Prompt string `json:"prompt" binding:"required"`
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrEmptyPrompt):
		return http.StatusBadRequest
	case errors.Is(err, ErrUpstreamFailure):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// ===========================
// ✨ Generate Event
// ===========================
func (h *Handler) GenerateEvent(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	plannerID := c.GetUint("user_id")

	evt, err := h.Service.GenerateEvent(plannerID, req.Prompt)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Event generated successfully",
		"event":   evt,
	})
}

// ===========================
// 📝 Generate Draft
// ===========================
func (h *Handler) GenerateDraft(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	draft, err := h.Service.GenerateDraft(req.Prompt)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}

// ===========================
// 🖼️ Generate Image
// ===========================
func (h *Handler) GenerateImage(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prompt is required"})
		return
	}

	img, err := h.Service.GenerateImage(req.Prompt)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.Data(http.StatusOK, "image/png", img)
}
