package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wittybrains/busbooking/internal/domain"
	"github.com/wittybrains/busbooking/internal/service/schedules"
)

type ScheduleHandler struct {
	service schedules.ScheduleUseCase
}

type scheduleResponse struct {
	ID                 int64  `json:"id"`
	Source             string `json:"source"`
	Destination        string `json:"destination"`
	EstimatedDeparture string `json:"estimated_departure"`
	EstimatedArrival   string `json:"estimated_arrival"`
	BusID              int64  `json:"bus_id"`
	DriverID           int64  `json:"driver_id"`
}

type schedulePageResponse struct {
	Schedules []scheduleResponse `json:"schedules"`
	Page      int                `json:"page"`
	Size      int                `json:"size"`
	Total     int                `json:"total"`
}

func NewScheduleHandler(service schedules.ScheduleUseCase) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

func (h *ScheduleHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	// the search endpoint keeps its historical path
	router.GET("/schedules", h.search)
	router.GET("/:id", h.get)
}

func (h *ScheduleHandler) list(c *gin.Context) {
	found, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]scheduleResponse, 0, len(found))
	for i := range found {
		out = append(out, toScheduleResponse(&found[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *ScheduleHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid schedule id"})
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, toScheduleResponse(found))
}

func (h *ScheduleHandler) search(c *gin.Context) {
	page, err := intQuery(c, "page", schedules.DefaultPage)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid page"})
		return
	}
	size, err := intQuery(c, "size", schedules.DefaultPageSize)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid size"})
		return
	}

	criteria := domain.ScheduleCriteria{
		Source:      queryPtr(c, "source"),
		Destination: queryPtr(c, "destination"),
	}
	if criteria.BusID, err = int64Query(c, "bus_id"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid bus_id"})
		return
	}
	if criteria.DriverID, err = int64Query(c, "driver_id"); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid driver_id"})
		return
	}
	for _, bound := range []struct {
		name string
		dest **time.Time
	}{
		{"arrival_start", &criteria.ArrivalStart},
		{"arrival_end", &criteria.ArrivalEnd},
		{"departure_start", &criteria.DepartureStart},
		{"departure_end", &criteria.DepartureEnd},
	} {
		if *bound.dest, err = timeQuery(c, bound.name); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + bound.name})
			return
		}
	}

	result, err := h.service.Search(c.Request.Context(), criteria, page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	out := make([]scheduleResponse, 0, len(result.Schedules))
	for i := range result.Schedules {
		out = append(out, toScheduleResponse(&result.Schedules[i]))
	}
	c.JSON(http.StatusOK, schedulePageResponse{
		Schedules: out,
		Page:      result.Page,
		Size:      result.Size,
		Total:     result.Total,
	})
}

func toScheduleResponse(s *domain.TravelSchedule) scheduleResponse {
	return scheduleResponse{
		ID:                 s.ID,
		Source:             s.Source,
		Destination:        s.Destination,
		EstimatedDeparture: s.EstimatedDeparture.Format(time.RFC3339),
		EstimatedArrival:   s.EstimatedArrival.Format(time.RFC3339),
		BusID:              s.BusID,
		DriverID:           s.DriverID,
	}
}

func intQuery(c *gin.Context, name string, def int) (int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func int64Query(c *gin.Context, name string) (*int64, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, err
	}
	return &value, nil
}

func timeQuery(c *gin.Context, name string) (*time.Time, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	value, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &value, nil
}
