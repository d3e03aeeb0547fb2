package jobs

import (
	"context"
	"time"

	"residence/services/logger"
	"residence/services/occupancy"

	"github.com/robfig/cron/v3"
)

// RoomReconciler runs a full reconcile pass.
type RoomReconciler interface {
	ReconcileAll(ctx context.Context) (*occupancy.Report, error)
}

// StayNoticeRunner sends the due stay-progress notices.
type StayNoticeRunner interface {
	Run(ctx context.Context) (int, error)
}

type Schedule struct {
	ReconcileSpec  string
	StayNoticeSpec string
	// Timeout bounds a single run. Zero means no limit.
	Timeout time.Duration
}

// InitCronJobs registers the periodic jobs on c and starts it.
func InitCronJobs(c *cron.Cron, s Schedule, reconciler RoomReconciler, notices StayNoticeRunner, log logger.Logger) error {
	if log == nil {
		log = logger.Nop()
	}

	if _, err := c.AddFunc(s.ReconcileSpec, ReconcileJob(reconciler, s.Timeout, log)); err != nil {
		return err
	}
	if notices != nil {
		if _, err := c.AddFunc(s.StayNoticeSpec, StayNoticeJob(notices, s.Timeout, log)); err != nil {
			return err
		}
	}

	c.Start()
	log.Info("cron jobs initialized: reconcile %q, stay notices %q", s.ReconcileSpec, s.StayNoticeSpec)
	return nil
}

func runContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}

func ReconcileJob(r RoomReconciler, timeout time.Duration, log logger.Logger) func() {
	return func() {
		ctx, cancel := runContext(timeout)
		defer cancel()

		rep, err := r.ReconcileAll(ctx)
		if err != nil {
			if rep != nil && len(rep.Failures) > 0 {
				log.Warn("scheduled reconcile %s: %d room(s) failed: %v", rep.RunID, len(rep.Failures), err)
				return
			}
			log.Error("scheduled reconcile: %v", err)
		}
	}
}

func StayNoticeJob(n StayNoticeRunner, timeout time.Duration, log logger.Logger) func() {
	return func() {
		ctx, cancel := runContext(timeout)
		defer cancel()

		if _, err := n.Run(ctx); err != nil {
			log.Error("stay notices: %v", err)
		}
	}
}
