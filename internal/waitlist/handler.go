package waitlist

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

// ===========================
// 📝 Join Waitlist
// ===========================
func (h *Handler) Join(c *gin.Context) {
	var req JoinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid email is required"})
		return
	}

	entry, err := h.Service.Join(req.Email)
	if err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to join waitlist"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "You're on the list!",
		"entry":   entry,
	})
}

// ===========================
// 🔢 Waitlist Count
// ===========================
func (h *Handler) Count(c *gin.Context) {
	count, err := h.Service.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count waitlist"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
