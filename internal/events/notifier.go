package events

import (
	"context"

	"github.com/rs/zerolog"
)

// LogNotifier writes every event to a zerolog logger.
type LogNotifier struct {
	Logger zerolog.Logger
}

// Notify implements Notifier.
func (n LogNotifier) Notify(_ context.Context, event Event) error {
	n.Logger.Info().
		Str("event_id", event.ID.String()).
		Str("topic", event.Topic).
		Str("aggregate", event.Aggregate).
		RawJSON("payload", event.Payload).
		Msg("domain_event")
	return nil
}
