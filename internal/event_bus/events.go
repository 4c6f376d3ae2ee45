package event_bus

// EventsChanged is published by the event store after every mutation.
const EventsChanged EventType = "calendar.events.changed"
