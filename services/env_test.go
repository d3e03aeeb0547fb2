package services

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"residence/constants"
	"residence/models"
	"residence/repository"
	"residence/services/occupancy"
)

type testEnv struct {
	db            *gorm.DB
	rooms         *repository.RoomRepository
	bookings      *repository.BookingRepository
	notifications *repository.NotificationRepository
	reconciler    *occupancy.Reconciler
	now           time.Time
}

func newTestEnv(t *testing.T, now time.Time, observers ...occupancy.StatusObserver) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Room{}, &models.Booking{}, &models.Notification{}))

	env := &testEnv{
		db:            db,
		rooms:         repository.NewRoomRepository(db),
		bookings:      repository.NewBookingRepository(db),
		notifications: repository.NewNotificationRepository(db),
		now:           now,
	}
	env.reconciler = occupancy.NewReconciler(occupancy.Options{
		Bookings:  env.bookings,
		Rooms:     env.rooms,
		Clock:     env.clock(),
		Workers:   2,
		Observers: observers,
	})
	return env
}

func (e *testEnv) clock() occupancy.Clock {
	return occupancy.ClockFunc(func() time.Time { return e.now })
}

func (e *testEnv) room(t *testing.T, number string, status constants.RoomStatus) *models.Room {
	t.Helper()
	r := &models.Room{Number: number, Floor: 2, Block: "B", Status: status}
	require.NoError(t, e.rooms.Create(context.Background(), r))
	return r
}

func (e *testEnv) booking(t *testing.T, roomID uint, status constants.BookingStatus, in, out time.Time) *models.Booking {
	t.Helper()
	b := &models.Booking{RoomID: roomID, UserID: 1, Status: status, CheckIn: in.UTC(), CheckOut: out.UTC()}
	require.NoError(t, e.bookings.Create(context.Background(), b))
	return b
}

func (e *testEnv) roomStatus(t *testing.T, id uint) constants.RoomStatus {
	t.Helper()
	s, err := e.rooms.GetStatus(context.Background(), id)
	require.NoError(t, err)
	return s
}

func day(d, h int) time.Time {
	return time.Date(2024, 1, d, h, 0, 0, 0, time.UTC)
}
