package attendance

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	"github.com/krisdikachi/Plancer/internal/event"
)

type Handler struct {
	Service *Service
}

func NewHandler(s *Service) *Handler {
	return &Handler{Service: s}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrMissingContact):
		return http.StatusBadRequest
	case errors.Is(err, event.ErrEventNotFound), errors.Is(err, ErrAttendanceNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrCapacityExceeded), errors.Is(err, ErrDuplicateRegistration), errors.Is(err, ErrAlreadyRedeemed):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func eventIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid event ID"})
		return 0, false
	}
	return uint(id), true
}

// ===========================
// 🎟 RSVP (signed-in) - POST /events/:id/rsvp
func (h *Handler) RSVP(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	var req RSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	a, err := h.Service.RecordAttendance(eventID, &userID, req.FullName, req.Email)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, a)
}

// ===========================
// 🎟 RSVP via invite code (anonymous contact) - POST /events/invite/:code/rsvp
func (h *Handler) RSVPByInviteCode(c *gin.Context) {
	code := c.Param("code")

	e, err := h.Service.Events.GetEventByInviteCode(code)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no event with this invite code"})
		return
	}

	var req RSVPRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input: " + err.Error()})
		return
	}

	a, err := h.Service.RecordAttendance(e.ID, nil, req.FullName, req.Email)
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, a)
}

// ===========================
// 🔍 My registration - GET /events/:id/attendance/me
func (h *Handler) GetMyAttendance(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	a, err := h.Service.GetAttendanceForUser(eventID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up attendance"})
		return
	}
	if a == nil {
		c.JSON(http.StatusOK, gin.H{"registered": false})
		return
	}

	c.JSON(http.StatusOK, gin.H{"registered": true, "attendance": a})
}

// ===========================
// 🔢 Registration count - GET /events/:id/attendance/count
func (h *Handler) CountAttendance(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}

	count, err := h.Service.CountAttendance(eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count attendance"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

// ===========================
// 📄 Attendee list (creator only) - GET /events/:id/attendees
func (h *Handler) ListAttendees(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	e, err := h.Service.Events.GetEventByID(eventID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	if e.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the event creator"})
		return
	}

	list, err := h.Service.ListAttendees(eventID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list attendees"})
		return
	}

	c.JSON(http.StatusOK, list)
}

// ===========================
// ✅ Redeem (scanner, creator only) - POST /events/:id/redeem
func (h *Handler) RedeemToken(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	e, err := h.Service.Events.GetEventByID(eventID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "event not found"})
		return
	}
	if e.CreatorID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "not the event creator"})
		return
	}

	var req RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "access_token required"})
		return
	}

	a, err := h.Service.RedeemToken(eventID, req.AccessToken)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyRedeemed):
			// Distinct from not-found so the scanner can show "already
			// checked in" instead of "invalid code".
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		case errors.Is(err, ErrAttendanceNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "invalid code for this event"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "checked in",
		"full_name": a.FullName,
		"attendance": a,
	})
}

// ===========================
// 🎫 Ticket QR - GET /events/:id/ticket
// Renders the caller's access token as a PNG, the payload the scanner reads.
func (h *Handler) TicketQR(c *gin.Context) {
	eventID, ok := eventIDParam(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	a, err := h.Service.GetAttendanceForUser(eventID, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to look up attendance"})
		return
	}
	if a == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not registered for this event"})
		return
	}

	png, err := qrcode.Encode(a.AccessToken, qrcode.Medium, 256)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to render QR code"})
		return
	}

	c.Header("Content-Disposition", `inline; filename="ticket.png"`)
	c.Data(http.StatusOK, "image/png", png)
}
