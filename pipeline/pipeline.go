// Package pipeline drives events through the processing lifecycle.
package pipeline

import (
	"context"

	"github.com/casebridge-io/casebridge/db"
	"github.com/casebridge-io/casebridge/db/entities"
	"github.com/casebridge-io/casebridge/dispatcher"
	"github.com/casebridge-io/casebridge/pkg/types"
	"go.uber.org/zap"
)

// Pipeline claims an event, dispatches it and persists the terminal state.
// All state transitions on the events table go through here or through the
// DAO's guarded reprocess reset.
type Pipeline struct {
	log        *zap.SugaredLogger
	db         *db.DB
	dispatcher *dispatcher.Dispatcher
}

func NewPipeline(db *db.DB, dispatcher *dispatcher.Dispatcher) *Pipeline {
	return &Pipeline{
		log:        zap.S(),
		db:         db,
		dispatcher: dispatcher,
	}
}

// Process runs one event to a terminal status. It is safe to call with ids
// that no longer exist or were already claimed; such calls are logged and
// dropped.
func (p *Pipeline) Process(ctx context.Context, id int64) {
	event, err := p.db.Events.Get(ctx, id)
	if err != nil {
		p.log.Errorf("[pipeline] failed to load event %d: %v", id, err)
		return
	}
	if event == nil {
		p.log.Warnf("[pipeline] event %d not found, skipping", id)
		return
	}

	claimed, err := p.db.Events.MarkProcessing(ctx, id)
	if err != nil {
		p.log.Errorf("[pipeline] failed to claim event %d: %v", id, err)
		return
	}
	if !claimed {
		p.log.Debugf("[pipeline] event %d already claimed (status %s), skipping", id, event.Status)
		return
	}

	outcome := p.dispatcher.Dispatch(ctx, event)

	status, result := terminalState(outcome)
	if err := p.db.Events.Terminate(ctx, id, status, result); err != nil {
		p.log.Errorf("[pipeline] failed to finalize event %d: %v", id, err)
		return
	}
	p.log.Infow("[pipeline] event finalized",
		"id", id,
		"event", event.EventType,
		"status", status,
	)
}

// terminalState maps a dispatch outcome onto the persisted status and
// processing_result document. Unhandled event types terminate as processed
// with an ignored marker rather than piling up as failures.
func terminalState(outcome dispatcher.Outcome) (entities.Status, types.Map) {
	switch outcome.Kind {
	case dispatcher.KindProcessed:
		return entities.StatusProcessed, outcome.Result
	case dispatcher.KindIgnored:
		return entities.StatusProcessed, types.Map{
			"status":  "ignored",
			"message": outcome.Message,
		}
	case dispatcher.KindNeedsAction:
		result := types.Map{
			"status":  "requires_action",
			"message": outcome.Message,
		}
		for k, v := range outcome.Result {
			result[k] = v
		}
		return entities.StatusRequiresAction, result
	default:
		return entities.StatusFailed, types.Map{
			"status":  "error",
			"message": outcome.Message,
		}
	}
}
