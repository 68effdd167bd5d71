package dispatcher

import "github.com/casebridge-io/casebridge/pkg/types"

// Kind tags the result of dispatching an event.
type Kind string

const (
	// KindIgnored means no handler is registered for the event type.
	KindIgnored Kind = "ignored"
	// KindProcessed means the handler completed successfully.
	KindProcessed Kind = "processed"
	// KindErrored means the handler returned an error or panicked.
	KindErrored Kind = "error"
	// KindNeedsAction means the handler detected a condition requiring
	// human follow-up.
	KindNeedsAction Kind = "needs_action"
)

// Outcome is the result of one dispatch. Result carries the handler's
// document to persist alongside the terminal status.
type Outcome struct {
	Kind    Kind
	Message string
	Result  types.Map
}

func Ignored(reason string) Outcome {
	return Outcome{
		Kind:    KindIgnored,
		Message: reason,
	}
}

func Processed(result types.Map) Outcome {
	return Outcome{
		Kind:   KindProcessed,
		Result: result,
	}
}

func Errored(message string) Outcome {
	return Outcome{
		Kind:    KindErrored,
		Message: message,
	}
}

func NeedsAction(reason string, result types.Map) Outcome {
	return Outcome{
		Kind:    KindNeedsAction,
		Message: reason,
		Result:  result,
	}
}
