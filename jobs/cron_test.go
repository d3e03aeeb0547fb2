package jobs

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"residence/services/logger"
	"residence/services/occupancy"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReconciler struct {
	calls atomic.Int32
	err   error
}

func (f *fakeReconciler) ReconcileAll(ctx context.Context) (*occupancy.Report, error) {
	f.calls.Add(1)
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("expected a deadline")
	}
	return &occupancy.Report{RunID: "run"}, f.err
}

type fakeNotices struct {
	calls atomic.Int32
}

func (f *fakeNotices) Run(context.Context) (int, error) {
	f.calls.Add(1)
	return 2, nil
}

func TestInitCronJobs_RegistersBothJobs(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	err := InitCronJobs(c, Schedule{ReconcileSpec: "*/15 * * * *", StayNoticeSpec: "0 * * * *"},
		&fakeReconciler{}, &fakeNotices{}, logger.Nop())

	require.NoError(t, err)
	assert.Len(t, c.Entries(), 2)
}

func TestInitCronJobs_RejectsBadSpec(t *testing.T) {
	c := cron.New()
	defer c.Stop()

	err := InitCronJobs(c, Schedule{ReconcileSpec: "every now and then"}, &fakeReconciler{}, nil, nil)

	assert.Error(t, err)
	assert.Empty(t, c.Entries())
}

func TestJobs_RunWithTimeout(t *testing.T) {
	r := &fakeReconciler{err: errors.New("room 3 failed")}
	n := &fakeNotices{}

	ReconcileJob(r, time.Minute, logger.Nop())()
	StayNoticeJob(n, time.Minute, logger.Nop())()

	assert.Equal(t, int32(1), r.calls.Load())
	assert.Equal(t, int32(1), n.calls.Load())
}
