package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wittybrains/busbooking/internal/domain"
	"github.com/wittybrains/busbooking/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
	// emptyListOK switches GET /bookings to 200 + [] on an empty table
	// instead of the historical 404.
	emptyListOK bool
}

type bookingResponse struct {
	ID          int64  `json:"id"`
	UserID      int64  `json:"user_id"`
	ScheduleID  int64  `json:"schedule_id"`
	Status      string `json:"status"`
	BookingTime string `json:"booking_time,omitempty"`
}

type bookingDetailsResponse struct {
	BookingID  int64 `json:"booking_id"`
	ScheduleID int64 `json:"schedule_id"`
	UserID     int64 `json:"user_id"`
}

func NewBookingHandler(service booking.BookingUseCase, emptyListOK bool) *BookingHandler {
	return &BookingHandler{service: service, emptyListOK: emptyListOK}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("", h.list)
	router.GET("/details", h.details)
	router.GET("/:id", h.get)
	router.PUT("/:id", h.update)
	router.DELETE("/:id", h.delete)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req booking.CreateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	created, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrScheduleNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrNotificationFailed):
			// the booking is committed, only delivery failed
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(created))
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(found))
}

func (h *BookingHandler) update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	var req booking.UpdateBookingInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		if errors.Is(err, domain.ErrBookingNotFound) || errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrScheduleNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(updated))
}

func (h *BookingHandler) delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.Status(http.StatusOK)
}

func (h *BookingHandler) list(c *gin.Context) {
	bookings, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	if len(bookings) == 0 && !h.emptyListOK {
		c.JSON(http.StatusNotFound, gin.H{"error": "no bookings found"})
		return
	}

	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *BookingHandler) details(c *gin.Context) {
	filter := domain.BookingDetailsFilter{
		BusNumber:   queryPtr(c, "bus_number"),
		Username:    queryPtr(c, "username"),
		Source:      queryPtr(c, "source"),
		Destination: queryPtr(c, "destination"),
		DriverName:  queryPtr(c, "driver_name"),
	}

	details, err := h.service.FindDetails(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if details == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no matching booking found"})
		return
	}

	c.JSON(http.StatusOK, bookingDetailsResponse{
		BookingID:  details.BookingID,
		ScheduleID: details.ScheduleID,
		UserID:     details.UserID,
	})
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	resp := bookingResponse{
		ID:         b.ID,
		UserID:     b.UserID,
		ScheduleID: b.ScheduleID,
		Status:     string(b.Status),
	}
	if b.BookingTime != nil {
		resp.BookingTime = b.BookingTime.Format(time.RFC3339)
	}
	return resp
}

func queryPtr(c *gin.Context, name string) *string {
	if value, ok := c.GetQuery(name); ok {
		return &value
	}
	return nil
}
