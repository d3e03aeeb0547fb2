package services

import (
	"context"
	"errors"

	"residence/models"
	"residence/repository"
	"residence/services/logger"
	"residence/services/notification"
	"residence/services/occupancy"
)

type StayNoticeServiceOptions struct {
	Bookings      *repository.BookingRepository
	Notifications *repository.NotificationRepository
	Dispatcher    notification.Dispatcher
	Clock         occupancy.Clock
	// Threshold is the fraction of the stay after which the notice goes out.
	Threshold float64
	Logger    logger.Logger
}

// StayNoticeService tells checked-in guests when most of their stay has passed.
type StayNoticeService struct {
	bookings      *repository.BookingRepository
	notifications *repository.NotificationRepository
	dispatcher    notification.Dispatcher
	clock         occupancy.Clock
	threshold     float64
	logger        logger.Logger
}

func NewStayNoticeService(opts StayNoticeServiceOptions) *StayNoticeService {
	s := &StayNoticeService{
		bookings:      opts.Bookings,
		notifications: opts.Notifications,
		dispatcher:    opts.Dispatcher,
		clock:         opts.Clock,
		threshold:     opts.Threshold,
		logger:        opts.Logger,
	}
	if s.clock == nil {
		s.clock = occupancy.SystemClock
	}
	if s.logger == nil {
		s.logger = logger.Nop()
	}
	if s.threshold <= 0 || s.threshold > 1 {
		s.threshold = 0.75
	}
	return s
}

// Run sends every due notice once. A booking whose dispatch fails is left
// un-notified and retried on the next run. The returned error joins the
// store failures met along the way.
func (s *StayNoticeService) Run(ctx context.Context) (int, error) {
	candidates, err := s.bookings.FindCheckedInUnnotified(ctx)
	if err != nil {
		return 0, err
	}

	now := s.clock.Now()
	sent := 0
	var errs []error
	for _, b := range candidates {
		if !occupancy.ValidInterval(b) {
			s.logger.Warn("stay notice: booking %d has check-out not after check-in", b.ID)
			continue
		}
		progress := occupancy.StayProgress(b, now)
		if progress < s.threshold {
			continue
		}

		msg := notification.NewMessageBuilder(b, progress).Build()
		if err := s.dispatcher.Dispatch(ctx, msg); err != nil {
			s.logger.Error("stay notice: dispatch booking %d: %v", b.ID, err)
			continue
		}
		if err := s.record(ctx, b, msg); err != nil {
			errs = append(errs, err)
			continue
		}
		sent++
	}

	if sent > 0 {
		s.logger.Info("stay notice: %d notice(s) sent", sent)
	}
	return sent, errors.Join(errs...)
}

func (s *StayNoticeService) record(ctx context.Context, b models.Booking, msg notification.Message) error {
	if err := s.bookings.MarkNotified(ctx, b.ID, s.clock.Now()); err != nil {
		return err
	}
	return s.notifications.Create(ctx, &models.Notification{
		UserID:    b.UserID,
		BookingID: b.ID,
		Template:  msg.Template,
		Message:   msg.Body,
	})
}
