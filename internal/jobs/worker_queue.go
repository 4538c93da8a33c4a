package jobs

import (
	"github.com/vytor/pharmaflash/internal/worker"
)

// WorkerQueue implements JobQueue using a worker pool
type WorkerQueue struct {
	pool       *worker.Pool
	autofiller worker.Autofiller
}

// NewWorkerQueue creates a new WorkerQueue implementation
func NewWorkerQueue(pool *worker.Pool, autofiller worker.Autofiller) *WorkerQueue {
	return &WorkerQueue{pool: pool, autofiller: autofiller}
}

// SetAutofiller binds the job target after construction, breaking the
// service <-> queue construction cycle.
func (q *WorkerQueue) SetAutofiller(a worker.Autofiller) {
	q.autofiller = a
}

func (q *WorkerQueue) EnqueueAutofill(profileID, itemID int64) error {
	return q.pool.Submit(&worker.AutofillItemJob{
		Autofiller: q.autofiller,
		ProfileID:  profileID,
		ItemID:     itemID,
	})
}

var _ JobQueue = (*WorkerQueue)(nil)
