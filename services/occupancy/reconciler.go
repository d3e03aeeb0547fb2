package occupancy

import (
	"context"
	"sync"
	"time"

	"residence/constants"
	"residence/models"
	"residence/services/logger"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// BookingStore reads the bookings that may hold a room.
type BookingStore interface {
	// FindActiveBookingsForRoom returns the room's PENDING, CONFIRMED and CHECKED_IN bookings.
	FindActiveBookingsForRoom(ctx context.Context, roomID uint) ([]models.Booking, error)
	FindAllNonMaintenanceRooms(ctx context.Context) ([]uint, error)
}

// RoomStore reads and writes a room's persisted status.
type RoomStore interface {
	GetStatus(ctx context.Context, roomID uint) (constants.RoomStatus, error)
	// SetStatus writes status unless the room is in MAINTENANCE at write time,
	// and reports whether it wrote.
	SetStatus(ctx context.Context, roomID uint, status constants.RoomStatus) (bool, error)
}

// Clock supplies the current instant.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock is the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// StatusObserver is told about every status write that changed a room's value.
type StatusObserver interface {
	RoomStatusChanged(ctx context.Context, roomID uint, from, to constants.RoomStatus)
}

type Options struct {
	Bookings BookingStore
	Rooms    RoomStore
	Clock    Clock
	Logger   logger.Logger
	// Workers bounds how many rooms ReconcileAll handles at once. Values below 1 mean 1.
	Workers   int
	Observers []StatusObserver
}

type Reconciler struct {
	bookings  BookingStore
	rooms     RoomStore
	clock     Clock
	logger    logger.Logger
	workers   int
	observers []StatusObserver
}

func NewReconciler(opts Options) *Reconciler {
	r := &Reconciler{
		bookings:  opts.Bookings,
		rooms:     opts.Rooms,
		clock:     opts.Clock,
		logger:    opts.Logger,
		workers:   opts.Workers,
		observers: opts.Observers,
	}
	if r.clock == nil {
		r.clock = SystemClock
	}
	if r.logger == nil {
		r.logger = logger.Nop()
	}
	if r.workers < 1 {
		r.workers = 1
	}
	return r
}

// ReconcileRoom recomputes the room's status and stores it unless the room is
// in MAINTENANCE. The computed status is returned whether or not it was written.
func (r *Reconciler) ReconcileRoom(ctx context.Context, roomID uint) (constants.RoomStatus, error) {
	bookings, err := r.bookings.FindActiveBookingsForRoom(ctx, roomID)
	if err != nil {
		return 0, &StoreError{Op: "load bookings", RoomID: roomID, Err: err}
	}
	r.reportMalformed(roomID, bookings)

	computed := ComputeStatus(roomID, bookings, r.clock.Now())

	current, err := r.rooms.GetStatus(ctx, roomID)
	if err != nil {
		return 0, &StoreError{Op: "get status", RoomID: roomID, Err: err}
	}
	if current == constants.RoomStatusMaintenance {
		r.logger.Debug("room %d is under maintenance, computed %s not written", roomID, computed)
		return computed, nil
	}

	written, err := r.rooms.SetStatus(ctx, roomID, computed)
	if err != nil {
		return 0, &StoreError{Op: "set status", RoomID: roomID, Err: err}
	}
	if !written {
		r.logger.Debug("room %d entered maintenance before the write, computed %s not written", roomID, computed)
		return computed, nil
	}
	if current != computed {
		r.logger.Info("room %d status %s -> %s", roomID, current, computed)
		for _, o := range r.observers {
			o.RoomStatusChanged(ctx, roomID, current, computed)
		}
	}
	return computed, nil
}

func (r *Reconciler) reportMalformed(roomID uint, bookings []models.Booking) {
	for _, id := range MalformedBookings(bookings) {
		r.logger.Warn("room %d: booking %d has check-out not after check-in", roomID, id)
	}
}

// Report summarises one ReconcileAll run.
type Report struct {
	RunID      string                        `json:"runId"`
	StartedAt  time.Time                     `json:"startedAt"`
	FinishedAt time.Time                     `json:"finishedAt"`
	Statuses   map[uint]constants.RoomStatus `json:"statuses"`
	Failures   RoomFailures                  `json:"-"`
	Errors     map[uint]string               `json:"errors,omitempty"`
}

// Err returns the collected failures, or nil when every room succeeded.
func (rep *Report) Err() error {
	if len(rep.Failures) == 0 {
		return nil
	}
	return rep.Failures
}

// ReconcileAll reconciles every room not in MAINTENANCE exactly once. A room
// that fails does not stop the others; all failures are collected in the
// report and returned together. Only a failure to list the rooms aborts the run.
func (r *Reconciler) ReconcileAll(ctx context.Context) (*Report, error) {
	rep := &Report{
		RunID:     uuid.NewString(),
		StartedAt: r.clock.Now(),
		Statuses:  make(map[uint]constants.RoomStatus),
		Failures:  make(RoomFailures),
		Errors:    make(map[uint]string),
	}

	roomIDs, err := r.bookings.FindAllNonMaintenanceRooms(ctx)
	if err != nil {
		return rep, &StoreError{Op: "list rooms", Err: err}
	}
	r.logger.Info("reconcile run %s: %d room(s)", rep.RunID, len(roomIDs))

	var (
		mu   sync.Mutex
		seen = make(map[uint]struct{}, len(roomIDs))
		g    errgroup.Group
	)
	g.SetLimit(r.workers)

	for _, id := range roomIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		roomID := id
		g.Go(func() error {
			status, err := r.ReconcileRoom(ctx, roomID)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rep.Failures[roomID] = err
				rep.Errors[roomID] = err.Error()
				r.logger.Error("reconcile run %s: room %d: %v", rep.RunID, roomID, err)
				return nil
			}
			rep.Statuses[roomID] = status
			return nil
		})
	}
	_ = g.Wait()

	rep.FinishedAt = r.clock.Now()
	r.logger.Info("reconcile run %s done: %d ok, %d failed", rep.RunID, len(rep.Statuses), len(rep.Failures))
	return rep, rep.Err()
}

// Preview is the read-only comparison of stored and derived status.
type Preview struct {
	RoomID         uint                 `json:"roomId"`
	Stored         constants.RoomStatus `json:"stored"`
	Computed       constants.RoomStatus `json:"computed"`
	Maintenance    bool                 `json:"maintenance"`
	Drifted        bool                 `json:"drifted"`
	ActiveBookings []uint               `json:"activeBookings"`
	Malformed      []uint               `json:"malformed,omitempty"`
	At             time.Time            `json:"at"`
}

// Preview computes the room's status without writing anything.
func (r *Reconciler) Preview(ctx context.Context, roomID uint) (*Preview, error) {
	bookings, err := r.bookings.FindActiveBookingsForRoom(ctx, roomID)
	if err != nil {
		return nil, &StoreError{Op: "load bookings", RoomID: roomID, Err: err}
	}
	stored, err := r.rooms.GetStatus(ctx, roomID)
	if err != nil {
		return nil, &StoreError{Op: "get status", RoomID: roomID, Err: err}
	}

	now := r.clock.Now()
	p := &Preview{
		RoomID:         roomID,
		Stored:         stored,
		Computed:       ComputeStatus(roomID, bookings, now),
		Maintenance:    stored == constants.RoomStatusMaintenance,
		ActiveBookings: []uint{},
		Malformed:      MalformedBookings(bookings),
		At:             now,
	}
	for _, b := range bookings {
		if IsOccupancyRelevant(b.Status) && IsActiveAt(b, now) {
			p.ActiveBookings = append(p.ActiveBookings, b.ID)
		}
	}
	p.Drifted = !p.Maintenance && p.Stored != p.Computed
	return p, nil
}
