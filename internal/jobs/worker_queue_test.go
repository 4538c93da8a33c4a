package jobs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/pharmaflash/internal/worker"
)

type recordingAutofiller struct {
	calls chan [2]int64
}

func (r *recordingAutofiller) AutofillItem(_ context.Context, profileID, itemID int64) error {
	r.calls <- [2]int64{profileID, itemID}
	return nil
}

func TestEnqueueAutofillRunsOnPool(t *testing.T) {
	pool := worker.NewPool(1, 2)
	pool.Start(context.Background())
	defer pool.Stop()

	rec := &recordingAutofiller{calls: make(chan [2]int64, 1)}
	q := NewWorkerQueue(pool, nil)
	q.SetAutofiller(rec)

	require.NoError(t, q.EnqueueAutofill(4, 42))
	select {
	case got := <-rec.calls:
		assert.Equal(t, [2]int64{4, 42}, got)
	case <-time.After(2 * time.Second):
		t.Fatal("autofill job never ran")
	}
}

func TestEnqueueAutofillReportsStoppedPool(t *testing.T) {
	pool := worker.NewPool(1, 1)
	pool.Stop()
	q := NewWorkerQueue(pool, &recordingAutofiller{calls: make(chan [2]int64, 1)})
	assert.ErrorIs(t, q.EnqueueAutofill(1, 1), worker.ErrPoolStopped)
}
