package services

import (
	"context"
	"fmt"
	"time"

	"residence/builders"
	"residence/constants"
	"residence/dto"
	"residence/errors"
	"residence/models"
	"residence/repository"
	"residence/services/logger"
	"residence/services/occupancy"
	"residence/validator"

	"gorm.io/gorm"
)

// RoomReconciler is the part of occupancy.Reconciler the services call after a change.
type RoomReconciler interface {
	ReconcileRoom(ctx context.Context, roomID uint) (constants.RoomStatus, error)
}

type BookingServiceOptions struct {
	DB         *gorm.DB
	Bookings   *repository.BookingRepository
	Rooms      *repository.RoomRepository
	Reconciler RoomReconciler
	Clock      occupancy.Clock
	Logger     logger.Logger
}

// BookingService drives booking creation, status changes and extensions,
// and reconciles the affected room after each committed change.
type BookingService struct {
	db         *gorm.DB
	bookings   *repository.BookingRepository
	rooms      *repository.RoomRepository
	reconciler RoomReconciler
	clock      occupancy.Clock
	logger     logger.Logger
}

func NewBookingService(opts BookingServiceOptions) *BookingService {
	l := opts.Logger
	if l == nil {
		l = logger.Nop()
	}
	clock := opts.Clock
	if clock == nil {
		clock = occupancy.SystemClock
	}
	return &BookingService{
		db:         opts.DB,
		bookings:   opts.Bookings,
		rooms:      opts.Rooms,
		reconciler: opts.Reconciler,
		clock:      clock,
		logger:     l,
	}
}

func (s *BookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	return s.bookings.GetByID(ctx, id)
}

// Create stores a PENDING booking after checking the room is bookable for the
// whole stay.
func (s *BookingService) Create(ctx context.Context, req dto.CreateBookingRequest) (*models.Booking, error) {
	if err := validator.ValidateBookingInterval(req.CheckIn, req.CheckOut); err != nil {
		return nil, err
	}

	booking := builders.NewBookingBuilder().
		WithUser(req.UserID).
		WithRoom(req.RoomID).
		WithGuestInfo(req.GuestName, req.GuestPhone, req.GuestEmail).
		WithStay(req.CheckIn, req.CheckOut).
		Build()

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		room, err := s.rooms.WithTx(tx).GetByIDForUpdate(ctx, booking.RoomID)
		if err != nil {
			return err
		}
		if room.Status == constants.RoomStatusMaintenance {
			return errors.NewAppError(errors.ErrCodeRoomUnderMaintenance,
				fmt.Sprintf("room %d is under maintenance", room.RoomId), errors.ErrRoomUnderMaintenance)
		}

		txBookings := s.bookings.WithTx(tx)
		if err := s.checkNoOverlap(ctx, txBookings, booking.RoomID, 0, booking.CheckIn, booking.CheckOut); err != nil {
			return err
		}
		return txBookings.Create(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking %d created for room %d [%s, %s)", booking.ID, booking.RoomID,
		booking.CheckIn.Format(time.RFC3339), booking.CheckOut.Format(time.RFC3339))
	s.reconcile(ctx, booking.RoomID)
	return booking, nil
}

// Transition applies a confirm, checkin, checkout or cancel action.
func (s *BookingService) Transition(ctx context.Context, id uint, action string) (*models.Booking, error) {
	var booking *models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txBookings := s.bookings.WithTx(tx)
		b, err := txBookings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := models.ApplyAction(b, action); err != nil {
			return err
		}
		booking = b
		return txBookings.Save(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking %d: %s -> %s", booking.ID, action, booking.Status)
	s.reconcile(ctx, booking.RoomID)
	return booking, nil
}

// Extend moves the check-out of a CONFIRMED or CHECKED_IN booking later.
// The added nights must not collide with another booking of the room.
func (s *BookingService) Extend(ctx context.Context, id uint, newCheckOut time.Time) (*models.Booking, error) {
	newCheckOut = newCheckOut.UTC()

	var booking *models.Booking
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txBookings := s.bookings.WithTx(tx)
		b, err := txBookings.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if _, err := s.rooms.WithTx(tx).GetByIDForUpdate(ctx, b.RoomID); err != nil {
			return err
		}
		if b.Status != constants.BookingStatusConfirmed && b.Status != constants.BookingStatusCheckedIn {
			return errors.NewAppError(errors.ErrCodeInvalidTransition,
				fmt.Sprintf("cannot extend a %s booking", b.Status), errors.ErrInvalidTransition)
		}
		if !newCheckOut.After(b.CheckOut) {
			return errors.NewAppError(errors.ErrCodeInvalidInterval,
				"new checkOut must be after the current checkOut", errors.ErrInvalidInterval)
		}
		if err := s.checkNoOverlap(ctx, txBookings, b.RoomID, b.ID, b.CheckOut, newCheckOut); err != nil {
			return err
		}

		b.CheckOut = newCheckOut
		// the longer stay gets its own progress notice
		b.NotifiedAt = nil
		booking = b
		return txBookings.Save(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("booking %d extended to %s", booking.ID, booking.CheckOut.Format(time.RFC3339))
	s.reconcile(ctx, booking.RoomID)
	return booking, nil
}

// checkNoOverlap rejects [from, to) when another booking of the room holds it.
// An overdue checked-in guest blocks every stay that starts before they leave.
func (s *BookingService) checkNoOverlap(ctx context.Context, bookings *repository.BookingRepository, roomID, exclude uint, from, to time.Time) error {
	existing, err := bookings.FindActiveBookingsForRoom(ctx, roomID)
	if err != nil {
		return err
	}
	now := s.clock.Now()
	for _, other := range existing {
		if other.ID == exclude {
			continue
		}
		if occupancy.Blocks(other, from, to, now) {
			return errors.NewAppError(errors.ErrCodeBookingOverlap,
				fmt.Sprintf("room %d is already booked by booking %d", roomID, other.ID), errors.ErrBookingOverlap)
		}
	}
	return nil
}

// The booking change is already committed, so a failure here only leaves the
// room stale until the next scheduled run.
func (s *BookingService) reconcile(ctx context.Context, roomID uint) {
	if s.reconciler == nil {
		return
	}
	if _, err := s.reconciler.ReconcileRoom(ctx, roomID); err != nil {
		s.logger.Error("reconcile room %d after booking change: %v", roomID, err)
	}
}
