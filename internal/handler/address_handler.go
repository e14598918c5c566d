package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-booking-api/internal/booking"
	"clinic-booking-api/internal/store"
)

func (h *Handler) SaveAddress(c *gin.Context) {
	var req booking.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	a, err := h.svc.SaveAddress(c.Request.Context(), req)
	var ve *booking.ValidationError
	switch {
	case errors.As(err, &ve):
		c.JSON(http.StatusBadRequest, gin.H{"message": "Street, area and city are required", "fields": ve.Fields})
	case err != nil:
		h.logf(c, "save address: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error saving address"})
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Address saved successfully!", "id": a.ID})
	}
}

func (h *Handler) LatestAddress(c *gin.Context) {
	a, err := h.svc.LatestAddress(c.Request.Context())
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "No address found"})
	case err != nil:
		h.logf(c, "latest address: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching latest address"})
	default:
		c.JSON(http.StatusOK, a)
	}
}
