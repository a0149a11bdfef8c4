package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/wittybrains/busbooking/internal/domain"
	"github.com/wittybrains/busbooking/internal/service/booking"
)

type MockBookingUseCase struct {
	mock.Mock
}

func (m *MockBookingUseCase) Create(ctx context.Context, input booking.CreateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Get(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Update(ctx context.Context, id int64, input booking.UpdateBookingInput) (*domain.Booking, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingUseCase) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

func (m *MockBookingUseCase) FindDetails(ctx context.Context, filter domain.BookingDetailsFilter) (*domain.BookingDetails, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BookingDetails), args.Error(1)
}

func (m *MockBookingUseCase) ExpireStaleBookings(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func testContext(t *testing.T, method, target string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	var reader *bytes.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	} else {
		reader = bytes.NewReader(nil)
	}
	c.Request = httptest.NewRequest(method, target, reader)
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func TestBookingHandler_Create(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	userID, scheduleID := int64(7), int64(3)
	body, _ := json.Marshal(map[string]any{
		"user":     map[string]any{"id": userID},
		"schedule": map[string]any{"id": scheduleID},
	})
	c, w := testContext(t, "POST", "/bookings", body)

	created := &domain.Booking{ID: 1, UserID: userID, ScheduleID: scheduleID, Status: domain.BookingStatusPending}
	mockService.On("Create", mock.Anything, mock.AnythingOfType("booking.CreateBookingInput")).Return(created, nil).Once()

	handler.create(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp bookingResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "pending", resp.Status)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_Create_UserNotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	body, _ := json.Marshal(map[string]any{
		"user":     map[string]any{"id": 99},
		"schedule": map[string]any{"id": 3},
	})
	c, w := testContext(t, "POST", "/bookings", body)

	mockService.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrUserNotFound).Once()

	handler.create(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestBookingHandler_Create_NotificationFailed(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	body, _ := json.Marshal(map[string]any{
		"user":     map[string]any{"id": 7},
		"schedule": map[string]any{"id": 3},
	})
	c, w := testContext(t, "POST", "/bookings", body)

	mockService.On("Create", mock.Anything, mock.Anything).Return(nil, domain.ErrNotificationFailed).Once()

	handler.create(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestBookingHandler_Get_NotFound(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	c, w := testContext(t, "GET", "/bookings/404", nil)
	c.Params = gin.Params{{Key: "id", Value: "404"}}

	mockService.On("Get", mock.Anything, int64(404)).Return(nil, domain.ErrBookingNotFound).Once()

	handler.get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBookingHandler_List_EmptyIs404(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	c, w := testContext(t, "GET", "/bookings", nil)
	mockService.On("List", mock.Anything).Return([]domain.Booking{}, nil).Once()

	handler.list(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "no bookings found")
}

func TestBookingHandler_List_EmptyOKWhenConfigured(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, true)

	c, w := testContext(t, "GET", "/bookings", nil)
	mockService.On("List", mock.Anything).Return([]domain.Booking{}, nil).Once()

	handler.list(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, "[]", w.Body.String())
}

func TestBookingHandler_Delete(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	c, w := testContext(t, "DELETE", "/bookings/5", nil)
	c.Params = gin.Params{{Key: "id", Value: "5"}}

	mockService.On("Delete", mock.Anything, int64(5)).Return(nil).Once()

	handler.delete(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestBookingHandler_Details(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	c, w := testContext(t, "GET", "/bookings/details?bus_number=B100", nil)

	busNumber := "B100"
	expectedFilter := domain.BookingDetailsFilter{BusNumber: &busNumber}
	mockService.On("FindDetails", mock.Anything, expectedFilter).
		Return(&domain.BookingDetails{BookingID: 12, ScheduleID: 3, UserID: 7}, nil).Once()

	handler.details(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp bookingDetailsResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(12), resp.BookingID)
	mockService.AssertExpectations(t)
}

func TestBookingHandler_Details_NoMatch(t *testing.T) {
	mockService := &MockBookingUseCase{}
	handler := NewBookingHandler(mockService, false)

	c, w := testContext(t, "GET", "/bookings/details", nil)

	mockService.On("FindDetails", mock.Anything, domain.BookingDetailsFilter{}).Return(nil, nil).Once()

	handler.details(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
