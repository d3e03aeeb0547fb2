package services

import (
	"context"
	"time"

	"residence/constants"
	"residence/dto"
	"residence/repository"
	"residence/services/logger"
	"residence/services/occupancy"
)

type DashboardServiceOptions struct {
	Rooms          *repository.RoomRepository
	Bookings       *repository.BookingRepository
	Reconciler     *occupancy.Reconciler
	Clock          occupancy.Clock
	CheckoutWindow time.Duration
	Logger         logger.Logger
}

type DashboardService struct {
	rooms      *repository.RoomRepository
	bookings   *repository.BookingRepository
	reconciler *occupancy.Reconciler
	clock      occupancy.Clock
	window     time.Duration
	logger     logger.Logger
}

func NewDashboardService(opts DashboardServiceOptions) *DashboardService {
	s := &DashboardService{
		rooms:      opts.Rooms,
		bookings:   opts.Bookings,
		reconciler: opts.Reconciler,
		clock:      opts.Clock,
		window:     opts.CheckoutWindow,
		logger:     opts.Logger,
	}
	if s.clock == nil {
		s.clock = occupancy.SystemClock
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	if s.window <= 0 {
		s.window = 24 * time.Hour
	}
	return s
}

// Summary counts rooms per status, lists rooms whose stored status has
// drifted from their bookings, and lists the critical checkouts.
func (s *DashboardService) Summary(ctx context.Context) (*dto.DashboardSummary, error) {
	now := s.clock.Now()

	counts, err := s.rooms.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	summary := &dto.DashboardSummary{
		At:                now,
		RoomCounts:        make(map[string]int64, 3),
		DriftedRooms:      []uint{},
		CriticalCheckouts: []dto.CheckoutItem{},
	}
	for _, st := range []constants.RoomStatus{
		constants.RoomStatusAvailable,
		constants.RoomStatusOccupied,
		constants.RoomStatusMaintenance,
	} {
		summary.RoomCounts[st.String()] = counts[st]
	}

	roomIDs, err := s.bookings.FindAllNonMaintenanceRooms(ctx)
	if err != nil {
		return nil, err
	}
	for _, id := range roomIDs {
		p, err := s.reconciler.Preview(ctx, id)
		if err != nil {
			s.logger.Warn("dashboard: preview room %d: %v", id, err)
			continue
		}
		if p.Drifted {
			summary.DriftedRooms = append(summary.DriftedRooms, id)
		}
	}

	active, err := s.bookings.FindOccupancyRelevant(ctx)
	if err != nil {
		return nil, err
	}
	for _, b := range occupancy.CriticalCheckouts(active, now, s.window) {
		summary.CriticalCheckouts = append(summary.CriticalCheckouts, dto.CheckoutItem{
			BookingID: b.ID,
			RoomID:    b.RoomID,
			CheckOut:  b.CheckOut,
			Overdue:   !now.Before(b.CheckOut),
		})
	}
	return summary, nil
}
