package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-booking-api/internal/booking"
	"clinic-booking-api/internal/store"
)

type slotRequest struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

func (h *Handler) CheckSlot(c *gin.Context) {
	var req slotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"available": false, "message": "Date and time are required"})
		return
	}

	av, err := h.svc.CheckSlotAvailability(c.Request.Context(), req.Date, req.Time)
	var ve *booking.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"available": false, "message": "Date and time are required"})
	case err != nil:
		h.logf(c, "check slot %s %s: %v", req.Date, req.Time, err)
		c.JSON(http.StatusInternalServerError, gin.H{"available": false, "message": "Server error"})
	case !av.Available:
		c.JSON(http.StatusOK, gin.H{"available": false, "message": "Slot already booked"})
	default:
		c.JSON(http.StatusOK, gin.H{"available": true})
	}
}

func (h *Handler) BookedSlots(c *gin.Context) {
	date := c.Param("date")
	slots, err := h.svc.ListBookedSlots(c.Request.Context(), date)
	var ve *booking.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Date must be YYYY-MM-DD"})
	case err != nil:
		h.logf(c, "booked slots %s: %v", date, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	default:
		c.JSON(http.StatusOK, gin.H{"bookedSlots": slots})
	}
}

// ConfirmAppointment never echoes raw SMTP or database errors to the caller;
// the cause only goes to the log.
func (h *Handler) ConfirmAppointment(c *gin.Context) {
	var req booking.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request body"})
		return
	}

	err := h.svc.ConfirmAndBook(c.Request.Context(), req)
	if err == nil {
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "Appointment confirmed and confirmation email sent successfully!",
		})
		return
	}

	var (
		ve *booking.ValidationError
		ne *booking.NotificationError
		pe *booking.PersistenceError
	)
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Required fields are missing",
			"fields":  ve.Fields,
		})
		return
	case errors.As(err, &pe) && errors.Is(err, store.ErrSlotTaken):
		h.logf(c, "appointment error for %s: %v", req.Email, err)
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"message": "Slot already booked",
			"error":   "slot already booked",
		})
		return
	}

	h.logf(c, "appointment error for %s: %v", req.Email, err)
	reason := "internal error"
	switch {
	case errors.As(err, &ne):
		reason = "confirmation email could not be sent"
	case errors.As(err, &pe):
		reason = "appointment could not be saved"
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Error confirming appointment. Please try again later.",
		"error":   reason,
	})
}
