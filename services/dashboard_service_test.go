package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"residence/constants"
)

func TestDashboardService_Summary(t *testing.T) {
	env := newTestEnv(t, day(10, 12))
	drifted := env.room(t, "501", constants.RoomStatusAvailable)
	settled := env.room(t, "502", constants.RoomStatusOccupied)
	env.room(t, "503", constants.RoomStatusMaintenance)

	soon := env.booking(t, drifted.RoomId, constants.BookingStatusConfirmed, day(8, 12), day(11, 10))
	overdue := env.booking(t, settled.RoomId, constants.BookingStatusCheckedIn, day(1, 12), day(9, 10))
	env.booking(t, settled.RoomId, constants.BookingStatusConfirmed, day(20, 12), day(22, 10))

	svc := NewDashboardService(DashboardServiceOptions{
		Rooms:          env.rooms,
		Bookings:       env.bookings,
		Reconciler:     env.reconciler,
		Clock:          env.clock(),
		CheckoutWindow: 24 * time.Hour,
	})

	summary, err := svc.Summary(context.Background())

	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"AVAILABLE": 1, "OCCUPIED": 1, "MAINTENANCE": 1}, summary.RoomCounts)
	assert.Equal(t, []uint{drifted.RoomId}, summary.DriftedRooms)

	require.Len(t, summary.CriticalCheckouts, 2)
	byID := map[uint]bool{}
	for _, c := range summary.CriticalCheckouts {
		byID[c.BookingID] = c.Overdue
	}
	assert.Equal(t, map[uint]bool{soon.ID: false, overdue.ID: true}, byID)
}
