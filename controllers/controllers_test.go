package controllers

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"residence/constants"
	"residence/models"
	"residence/repository"
	"residence/services"
	"residence/services/occupancy"
	"residence/validator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	if err := validator.RegisterValidations(); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

var testNow = time.Date(2024, 1, 3, 12, 0, 0, 0, time.UTC)

type apiEnv struct {
	router   *gin.Engine
	rooms    *repository.RoomRepository
	bookings *repository.BookingRepository
}

func newAPIEnv(t *testing.T) *apiEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Room{}, &models.Booking{}, &models.Notification{}))

	rooms := repository.NewRoomRepository(db)
	bookings := repository.NewBookingRepository(db)
	clock := occupancy.ClockFunc(func() time.Time { return testNow })
	reconciler := occupancy.NewReconciler(occupancy.Options{Bookings: bookings, Rooms: rooms, Clock: clock, Workers: 2})

	roomService := services.NewRoomService(services.RoomServiceOptions{Rooms: rooms, Reconciler: reconciler})
	bookingService := services.NewBookingService(services.BookingServiceOptions{
		DB: db, Bookings: bookings, Rooms: rooms, Reconciler: reconciler, Clock: clock,
	})
	dashboardService := services.NewDashboardService(services.DashboardServiceOptions{
		Rooms: rooms, Bookings: bookings, Reconciler: reconciler, Clock: clock,
	})

	router := gin.New()
	rc := NewRoomController(roomService, nil)
	bc := NewBookingController(bookingService, nil)
	dc := NewDashboardController(dashboardService, nil)

	v1 := router.Group("/api/v1")
	v1.GET("/rooms", rc.GetRooms)
	v1.GET("/rooms/:id/occupancy", rc.GetRoomOccupancy)
	v1.POST("/rooms/:id/reconcile", rc.ReconcileRoom)
	v1.POST("/rooms/reconcile", rc.ReconcileAllRooms)
	v1.PUT("/roomStatus", rc.ChangeRoomStatus)
	v1.POST("/bookings", bc.CreateBooking)
	v1.GET("/bookings/:id", bc.GetBookingDetail)
	v1.PUT("/bookingStatus", bc.ChangeBookingStatus)
	v1.PUT("/bookingExtend", bc.ExtendBooking)
	v1.GET("/dashboard", dc.GetDashboard)

	return &apiEnv{router: router, rooms: rooms, bookings: bookings}
}

func (e *apiEnv) room(t *testing.T, number string, status constants.RoomStatus) uint {
	t.Helper()
	r := &models.Room{Number: number, Floor: 1, Block: "A", Status: status}
	require.NoError(t, e.rooms.Create(context.Background(), r))
	return r.RoomId
}

type envelope struct {
	Code int             `json:"code"`
	Mess string          `json:"mess"`
	Data json.RawMessage `json:"data"`
}

func (e *apiEnv) do(t *testing.T, method, path string, body interface{}) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestBookingFlow_OverHTTP(t *testing.T) {
	api := newAPIEnv(t)
	roomID := api.room(t, "101", constants.RoomStatusAvailable)

	code, res := api.do(t, http.MethodPost, "/api/v1/bookings", gin.H{
		"roomId":   roomID,
		"userId":   7,
		"checkIn":  "2024-01-02T14:00:00Z",
		"checkOut": "2024-01-05T11:00:00Z",
	})
	require.Equal(t, http.StatusOK, code, res.Mess)
	var created struct {
		ID         uint   `json:"id"`
		StatusName string `json:"statusName"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &created))
	assert.Equal(t, "PENDING", created.StatusName)

	code, res = api.do(t, http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d/occupancy", roomID), nil)
	require.Equal(t, http.StatusOK, code)
	var preview occupancy.Preview
	require.NoError(t, json.Unmarshal(res.Data, &preview))
	assert.Equal(t, constants.RoomStatusOccupied, preview.Stored)
	assert.False(t, preview.Drifted)

	code, _ = api.do(t, http.MethodPut, "/api/v1/bookingStatus", gin.H{"id": created.ID, "action": "cancel"})
	assert.Equal(t, http.StatusOK, code)

	status, err := api.rooms.GetStatus(context.Background(), roomID)
	require.NoError(t, err)
	assert.Equal(t, constants.RoomStatusAvailable, status)

	code, _ = api.do(t, http.MethodPut, "/api/v1/bookingStatus", gin.H{"id": created.ID, "action": "checkin"})
	assert.Equal(t, http.StatusUnprocessableEntity, code)
}

func TestCreateBooking_Errors(t *testing.T) {
	api := newAPIEnv(t)
	free := api.room(t, "201", constants.RoomStatusAvailable)
	closed := api.room(t, "202", constants.RoomStatusMaintenance)

	_, res := api.do(t, http.MethodPost, "/api/v1/bookings", gin.H{
		"roomId": free, "userId": 1, "checkIn": "2024-01-02T14:00:00Z", "checkOut": "2024-01-06T11:00:00Z",
	})
	require.Equal(t, 1, res.Code)

	tests := []struct {
		name string
		body gin.H
		want int
	}{
		{"checkout_before_checkin", gin.H{"roomId": free, "userId": 1, "checkIn": "2024-01-10T14:00:00Z", "checkOut": "2024-01-09T11:00:00Z"}, http.StatusBadRequest},
		{"missing_room", gin.H{"userId": 1, "checkIn": "2024-01-10T14:00:00Z", "checkOut": "2024-01-12T11:00:00Z"}, http.StatusBadRequest},
		{"overlap", gin.H{"roomId": free, "userId": 2, "checkIn": "2024-01-05T14:00:00Z", "checkOut": "2024-01-08T11:00:00Z"}, http.StatusConflict},
		{"maintenance", gin.H{"roomId": closed, "userId": 2, "checkIn": "2024-01-05T14:00:00Z", "checkOut": "2024-01-08T11:00:00Z"}, http.StatusConflict},
		{"unknown_room", gin.H{"roomId": 999, "userId": 2, "checkIn": "2024-01-05T14:00:00Z", "checkOut": "2024-01-08T11:00:00Z"}, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, res := api.do(t, http.MethodPost, "/api/v1/bookings", tt.body)
			assert.Equal(t, tt.want, code, res.Mess)
			assert.Equal(t, 0, res.Code)
		})
	}
}

func TestChangeRoomStatus(t *testing.T) {
	api := newAPIEnv(t)
	roomID := api.room(t, "301", constants.RoomStatusAvailable)

	code, _ := api.do(t, http.MethodPut, "/api/v1/roomStatus", gin.H{"id": roomID, "status": int(constants.RoomStatusOccupied)})
	assert.Equal(t, http.StatusBadRequest, code, "OCCUPIED cannot be requested")

	code, _ = api.do(t, http.MethodPut, "/api/v1/roomStatus", gin.H{"id": roomID, "status": int(constants.RoomStatusMaintenance)})
	assert.Equal(t, http.StatusOK, code)

	code, res := api.do(t, http.MethodPost, fmt.Sprintf("/api/v1/rooms/%d/reconcile", roomID), nil)
	require.Equal(t, http.StatusOK, code)
	var rec struct {
		StatusName string `json:"statusName"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &rec))
	assert.Equal(t, "AVAILABLE", rec.StatusName)

	status, err := api.rooms.GetStatus(context.Background(), roomID)
	require.NoError(t, err)
	assert.Equal(t, constants.RoomStatusMaintenance, status, "reconcile leaves maintenance alone")

	code, _ = api.do(t, http.MethodPut, "/api/v1/roomStatus", gin.H{"id": roomID, "status": int(constants.RoomStatusAvailable)})
	assert.Equal(t, http.StatusOK, code)
}

func TestReconcileAllAndDashboard(t *testing.T) {
	api := newAPIEnv(t)
	drifted := api.room(t, "401", constants.RoomStatusOccupied)
	api.room(t, "402", constants.RoomStatusAvailable)
	api.room(t, "403", constants.RoomStatusMaintenance)

	code, res := api.do(t, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, code)
	var summary struct {
		DriftedRooms []uint `json:"driftedRooms"`
	}
	require.NoError(t, json.Unmarshal(res.Data, &summary))
	assert.Equal(t, []uint{drifted}, summary.DriftedRooms)

	code, res = api.do(t, http.MethodPost, "/api/v1/rooms/reconcile", nil)
	require.Equal(t, http.StatusOK, code)
	var rep occupancy.Report
	require.NoError(t, json.Unmarshal(res.Data, &rep))
	assert.Len(t, rep.Statuses, 2)
	assert.Empty(t, rep.Errors)

	code, res = api.do(t, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, code)
	require.NoError(t, json.Unmarshal(res.Data, &summary))
	assert.Empty(t, summary.DriftedRooms)
}

func TestBadIDs(t *testing.T) {
	api := newAPIEnv(t)

	code, _ := api.do(t, http.MethodGet, "/api/v1/bookings/abc", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = api.do(t, http.MethodGet, "/api/v1/bookings/42", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, _ = api.do(t, http.MethodGet, "/api/v1/rooms/42/occupancy", nil)
	assert.Equal(t, http.StatusNotFound, code)
}
