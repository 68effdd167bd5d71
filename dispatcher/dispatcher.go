package dispatcher

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/casebridge-io/casebridge/db/entities"
	"github.com/casebridge-io/casebridge/pega"
	"go.uber.org/zap"
)

// Handler is per-event-type business logic. Handlers must not mutate the
// event record; persistence is owned by the pipeline. A returned error is
// converted to an Errored outcome by the dispatcher.
type Handler interface {
	Handle(ctx context.Context, event *entities.Event, client pega.Client) (Outcome, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, event *entities.Event, client pega.Client) (Outcome, error)

func (f HandlerFunc) Handle(ctx context.Context, event *entities.Event, client pega.Client) (Outcome, error) {
	return f(ctx, event, client)
}

// Dispatcher routes events to handlers by event type. Registration happens
// at startup; Dispatch may be called concurrently.
type Dispatcher struct {
	log      *zap.SugaredLogger
	client   pega.Client
	handlers map[string]Handler
}

func New(client pega.Client) *Dispatcher {
	return &Dispatcher{
		log:      zap.S(),
		client:   client,
		handlers: make(map[string]Handler),
	}
}

func (d *Dispatcher) Register(eventType string, handler Handler) {
	d.handlers[eventType] = handler
}

// Types returns the registered event types, sorted.
func (d *Dispatcher) Types() []string {
	list := make([]string, 0, len(d.handlers))
	for eventType := range d.handlers {
		list = append(list, eventType)
	}
	sort.Strings(list)
	return list
}

// Dispatch invokes the handler registered for the event's type. A handler
// failure never propagates: errors and panics become an Errored outcome so
// the pipeline can persist them.
func (d *Dispatcher) Dispatch(ctx context.Context, event *entities.Event) (outcome Outcome) {
	defer func() {
		if e := recover(); e != nil {
			buf := make([]byte, 2048)
			n := runtime.Stack(buf, false)
			buf = buf[:n]
			d.log.Errorf("[dispatcher] handler panic on event %d: %v\n %s", event.ID, e, buf)
			outcome = Errored(fmt.Sprintf("handler panic: %v", e))
		}
	}()

	handler, ok := d.handlers[event.EventType]
	if !ok {
		return Ignored(fmt.Sprintf("no handler registered for event type: %s", event.EventType))
	}

	outcome, err := handler.Handle(ctx, event, d.client)
	if err != nil {
		return Errored(err.Error())
	}
	return outcome
}
