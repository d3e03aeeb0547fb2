package services

import (
	"context"

	"residence/constants"
	"residence/errors"
	"residence/models"
	"residence/repository"
	"residence/services/logger"
	"residence/services/occupancy"
)

type RoomServiceOptions struct {
	Rooms      *repository.RoomRepository
	Reconciler *occupancy.Reconciler
	Cache      *RoomCache
	Logger     logger.Logger
	// Observers hear about maintenance toggles. Reconciler writes notify the
	// reconciler's own observers.
	Observers []occupancy.StatusObserver
}

type RoomService struct {
	rooms      *repository.RoomRepository
	reconciler *occupancy.Reconciler
	cache      *RoomCache
	logger     logger.Logger
	observers  []occupancy.StatusObserver
}

func NewRoomService(opts RoomServiceOptions) *RoomService {
	l := opts.Logger
	if l == nil {
		l = logger.Nop()
	}
	return &RoomService{
		rooms:      opts.Rooms,
		reconciler: opts.Reconciler,
		cache:      opts.Cache,
		logger:     l,
		observers:  opts.Observers,
	}
}

// List returns all rooms, served from the cache when possible.
func (s *RoomService) List(ctx context.Context) ([]models.Room, error) {
	if rooms, ok := s.cache.GetRooms(ctx); ok {
		return rooms, nil
	}
	rooms, err := s.rooms.List(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetRooms(ctx, rooms)
	return rooms, nil
}

func (s *RoomService) Get(ctx context.Context, id uint) (*models.Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *RoomService) Preview(ctx context.Context, id uint) (*occupancy.Preview, error) {
	if _, err := s.rooms.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.reconciler.Preview(ctx, id)
}

func (s *RoomService) Reconcile(ctx context.Context, id uint) (constants.RoomStatus, error) {
	if _, err := s.rooms.GetByID(ctx, id); err != nil {
		return 0, err
	}
	return s.reconciler.ReconcileRoom(ctx, id)
}

func (s *RoomService) ReconcileAll(ctx context.Context) (*occupancy.Report, error) {
	return s.reconciler.ReconcileAll(ctx)
}

// SetMaintenance flags or clears MAINTENANCE. Clearing it hands the room back
// to the reconciler, so a booked room comes back as OCCUPIED.
func (s *RoomService) SetMaintenance(ctx context.Context, id uint, on bool) (*models.Room, error) {
	room, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	from := room.Status

	if on {
		if from == constants.RoomStatusMaintenance {
			return room, nil
		}
		if err := s.rooms.UpdateStatus(ctx, id, constants.RoomStatusMaintenance); err != nil {
			return nil, err
		}
		s.notify(ctx, id, from, constants.RoomStatusMaintenance)
		room.Status = constants.RoomStatusMaintenance
		return room, nil
	}

	if from != constants.RoomStatusMaintenance {
		return nil, errors.NewAppError(errors.ErrCodeInvalidOperation, "room is not under maintenance", errors.ErrInvalidInput)
	}
	if err := s.rooms.UpdateStatus(ctx, id, constants.RoomStatusAvailable); err != nil {
		return nil, err
	}
	s.notify(ctx, id, from, constants.RoomStatusAvailable)

	status, err := s.reconciler.ReconcileRoom(ctx, id)
	if err != nil {
		s.logger.Error("reconcile room %d after maintenance: %v", id, err)
		status = constants.RoomStatusAvailable
	}
	room.Status = status
	return room, nil
}

func (s *RoomService) notify(ctx context.Context, id uint, from, to constants.RoomStatus) {
	s.logger.Info("room %d status %s -> %s (maintenance)", id, from, to)
	for _, o := range s.observers {
		o.RoomStatusChanged(ctx, id, from, to)
	}
}
