package notification

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/krisdikachi/Plancer/middleware"
)

type Handler struct {
	Service Service
}

func NewHandler(s Service) *Handler {
	return &Handler{Service: s}
}

// ===========================
// ✉️ Send Email
// ===========================
func (h *Handler) SendEmail(c *gin.Context) {
	var req SendEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.SendCustomEmail(&req, middleware.GetIPFromContext(c)); err != nil {
		log.Printf("❌ Send email failed: %v\n", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send email"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Email sent successfully"})
}

// ===========================
// 📱 Send Push
// ===========================
func (h *Handler) SendPush(c *gin.Context) {
	var req SendPushRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.SendPushNotification(req.UserID, req.Title, req.Message, middleware.GetIPFromContext(c)); err != nil {
		if errors.Is(err, ErrNoDevices) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		if errors.Is(err, ErrPushNotConfigured) {
			c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
			return
		}
		log.Printf("❌ Push to user %d failed: %v\n", req.UserID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send push notification"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Push notification sent"})
}

// ===========================
// 🔔 Send Reminders
// ===========================
func (h *Handler) SendReminders(c *gin.Context) {
	var req SendRemindersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sent, err := h.Service.SendReminderEmails(req.EventID, middleware.GetIPFromContext(c))
	if err != nil {
		if errors.Is(err, ErrNoRecipients) {
			c.JSON(http.StatusOK, gin.H{"message": "No attendees to remind", "sent": 0})
			return
		}
		log.Printf("❌ Reminders for event %d failed: %v\n", req.EventID, err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to send reminders"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Reminders sent", "sent": sent})
}

// ===========================
// 📲 Device Tokens
// ===========================
func (h *Handler) RegisterDeviceToken(c *gin.Context) {
	userID := c.GetUint("user_id")

	var req RegisterDeviceTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Service.RegisterDeviceToken(userID, &req); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register device token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device token registered"})
}

func (h *Handler) RemoveDeviceToken(c *gin.Context) {
	userID := c.GetUint("user_id")
	deviceToken := c.Param("token")

	if err := h.Service.RemoveDeviceToken(userID, deviceToken); err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove device token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Device token removed"})
}

// ===========================
// 🧾 Event Notification Log
// ===========================
func (h *Handler) ListEventLogs(c *gin.Context) {
	eventID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return
	}

	logs, err := h.Service.ListLogsByEvent(uint(eventID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load notification logs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"notifications": logs, "count": len(logs)})
}
