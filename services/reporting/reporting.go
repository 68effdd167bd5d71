// Package reporting periodically logs event throughput so operators can
// watch the pipeline without hitting the API.
package reporting

import (
	"context"
	"time"

	"github.com/casebridge-io/casebridge/db"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const schedule = "@every 1m"

type Reporter struct {
	log  *zap.SugaredLogger
	db   *db.DB
	cron *cron.Cron
}

func NewReporter(db *db.DB) *Reporter {
	return &Reporter{
		log:  zap.S(),
		db:   db,
		cron: cron.New(),
	}
}

func (r *Reporter) Start() error {
	if _, err := r.cron.AddFunc(schedule, r.report); err != nil {
		return err
	}
	r.cron.Start()
	return nil
}

func (r *Reporter) Stop() {
	<-r.cron.Stop().Done()
}

func (r *Reporter) report() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	since := time.Now().Add(-24 * time.Hour)
	breakdown, err := r.db.Events.StatusBreakdown(ctx, since)
	if err != nil {
		r.log.Errorf("[reporting] failed to collect status breakdown: %v", err)
		return
	}

	var total int64
	for _, count := range breakdown {
		total += count
	}
	r.log.Infow("[reporting] events in the last 24h",
		"total", total,
		"received", breakdown["received"],
		"processing", breakdown["processing"],
		"processed", breakdown["processed"],
		"failed", breakdown["failed"],
		"requires_action", breakdown["requires_action"],
	)
}
