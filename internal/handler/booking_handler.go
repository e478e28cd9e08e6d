package handler

import (
	"context"
	"strconv"

	"github.com/Kilat-Pet-Delivery/service-sharing/internal/application"
	bookingDomain "github.com/Kilat-Pet-Delivery/service-sharing/internal/domain/booking"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/middleware"
	"github.com/Kilat-Pet-Delivery/service-sharing/internal/platform/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/api/v1/bookings")
	bookings.Use(middleware.IdentityMiddleware())
	{
		bookings.POST("", h.AddBooking)
		bookings.GET("", h.ListBookerBookings)
		bookings.GET("/owner", h.ListOwnerBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.PATCH("/:id", h.ApproveBooking)
	}
}

// AddBooking handles POST /api/v1/bookings.
func (h *BookingHandler) AddBooking(c *gin.Context) {
	bookerID, ok := callerID(c)
	if !ok {
		return
	}

	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddBooking(c.Request.Context(), bookerID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ApproveBooking handles PATCH /api/v1/bookings/:id?approved=true|false.
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	bookingID, ok := pathID(c, "booking")
	if !ok {
		return
	}
	ownerID, ok := callerID(c)
	if !ok {
		return
	}

	approved, err := strconv.ParseBool(c.Query("approved"))
	if err != nil {
		response.BadRequest(c, "query parameter approved must be true or false")
		return
	}

	result, err := h.service.ApproveBooking(c.Request.Context(), ownerID, bookingID, approved)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, ok := pathID(c, "booking")
	if !ok {
		return
	}
	userID, ok := callerID(c)
	if !ok {
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), userID, bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// ListBookerBookings handles GET /api/v1/bookings.
func (h *BookingHandler) ListBookerBookings(c *gin.Context) {
	h.list(c, h.service.GetBookerBookings)
}

// ListOwnerBookings handles GET /api/v1/bookings/owner.
func (h *BookingHandler) ListOwnerBookings(c *gin.Context) {
	h.list(c, h.service.GetOwnerBookings)
}

type bookingLister func(ctx context.Context, userID uuid.UUID, state bookingDomain.State, from, size int) ([]application.BookingDTO, error)

func (h *BookingHandler) list(c *gin.Context, lister bookingLister) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	state, err := bookingDomain.ParseState(c.DefaultQuery("state", string(bookingDomain.StateAll)))
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	page, ok := bindPage(c)
	if !ok {
		return
	}

	result, err := lister(c.Request.Context(), userID, state, page.From, page.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
