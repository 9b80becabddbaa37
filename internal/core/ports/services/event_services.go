package services

import "context"

// LoadChangeEvent is one change-feed notification. It carries no diff; the
// consumer reacts by reloading its visible loads.
type LoadChangeEvent struct {
	Table  string `json:"table"`
	LoadID string `json:"loadID"`
}

// ChangeFeedSvc fans load change notifications out to connected dashboard
// clients.
type ChangeFeedSvc interface {
	// Subscribe registers a new consumer. The returned cancel function must
	// be called when the consumer goes away.
	Subscribe(ctx context.Context) (<-chan LoadChangeEvent, func())

	// Publish delivers an event to every current subscriber without blocking
	// on slow consumers.
	Publish(event LoadChangeEvent)
}
