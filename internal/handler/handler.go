package handler

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"clinic-booking-api/internal/booking"
	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/model"
)

// Booker is the workflow the HTTP layer drives. *booking.Service satisfies it.
type Booker interface {
	ConfirmAndBook(ctx context.Context, req booking.Request) error
	CheckSlotAvailability(ctx context.Context, date, slot string) (booking.Availability, error)
	ListBookedSlots(ctx context.Context, date string) ([]string, error)
	SaveAddress(ctx context.Context, req booking.AddressRequest) (*model.Address, error)
	LatestAddress(ctx context.Context) (*model.Address, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	svc    Booker
	health Pinger
	logger *log.Logger
}

func New(svc Booker, health Pinger, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.Default()
	}
	return &Handler{svc: svc, health: health, logger: logger}
}

// Router wires every route behind request id, CORS and access logging.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.CORS(), middleware.AccessLog(h.logger))

	r.GET("/healthz", h.Healthz)
	r.POST("/save", h.SaveAddress)

	api := r.Group("/api")
	{
		api.GET("/address/latest", h.LatestAddress)
		api.POST("/check-slot", h.CheckSlot)
		api.GET("/booked-slots/:date", h.BookedSlots)
		api.POST("/appointment/confirm", h.ConfirmAppointment)
	}
	return r
}

func (h *Handler) logf(c *gin.Context, format string, args ...any) {
	h.logger.Printf("["+middleware.ReqID(c)+"] "+format, args...)
}

func (h *Handler) Healthz(c *gin.Context) {
	if h.health == nil {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
		return
	}
	if err := h.health.Ping(c.Request.Context()); err != nil {
		h.logf(c, "health: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
