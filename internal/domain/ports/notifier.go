package ports

import "context"

// EventRecorder delivers usage events to an external sink. Implementations
// must never fail the caller: delivery errors are swallowed.
type EventRecorder interface {
	RecordEvent(ctx context.Context, event, payload string)
}
