package pipeline

import (
	"context"
	"time"

	"github.com/casebridge-io/casebridge/config"
	"github.com/casebridge-io/casebridge/pkg/pool"
	"go.uber.org/zap"
)

// Scheduler hands an accepted event id off for processing. Intake never
// processes inline; it only schedules.
type Scheduler interface {
	Schedule(id int64)
}

// AsyncScheduler runs the pipeline on a bounded worker pool. When the
// backlog is full the event stays in received and is picked up by a later
// reprocess instead of blocking intake.
type AsyncScheduler struct {
	log      *zap.SugaredLogger
	pool     *pool.Pool
	pipeline *Pipeline
}

func NewAsyncScheduler(cfg config.WorkerConfig, pipeline *Pipeline) *AsyncScheduler {
	return &AsyncScheduler{
		log:      zap.S(),
		pool:     pool.NewPool(int(cfg.Backlog), int(cfg.Workers)),
		pipeline: pipeline,
	}
}

func (s *AsyncScheduler) Schedule(id int64) {
	err := s.pool.SubmitFn(time.Second, func() {
		s.pipeline.Process(context.Background(), id)
	})
	if err != nil {
		s.log.Warnf("[scheduler] failed to schedule event %d: %v", id, err)
	}
}

func (s *AsyncScheduler) Shutdown() {
	s.pool.Shutdown()
}

// SyncScheduler processes inline on the caller's goroutine.
type SyncScheduler struct {
	pipeline *Pipeline
}

func NewSyncScheduler(pipeline *Pipeline) *SyncScheduler {
	return &SyncScheduler{pipeline: pipeline}
}

func (s *SyncScheduler) Schedule(id int64) {
	s.pipeline.Process(context.Background(), id)
}
