package services

// Realtime event names published by the services. The payload is always the
// affected entity. Broadcasts are unfiltered: every connected client receives
// every event and filters client-side by relevance.
const (
	EventBookingCreated = "booking_created"
	EventBookingUpdated = "booking_updated"
	EventNewMessage     = "new_message"
)

// Broadcaster publishes an event to all connected realtime clients. Publish
// is fire-and-forget: it must not block and its failure does not roll back
// any committed state. Services guarantee that notification persistence
// completes before Publish is called, so a client reacting to an event by
// refetching notifications observes a committed view.
type Broadcaster interface {
	Publish(eventType string, payload interface{})
}

// NoopBroadcaster discards all events. Used when no realtime hub is wired,
// e.g. in one-off tooling.
type NoopBroadcaster struct{}

func (NoopBroadcaster) Publish(eventType string, payload interface{}) {}
