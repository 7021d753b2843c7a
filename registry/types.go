package registry

import "github.com/wippyai/opaque/proj"

// Handle is an opaque reference to a value in a table.
// Handle 0 is reserved and always invalid.
type Handle uint32

// EventType identifies a lifecycle notification.
type EventType uint8

const (
	EventCreated EventType = iota
	EventDropped
)

func (t EventType) String() string {
	switch t {
	case EventCreated:
		return "created"
	case EventDropped:
		return "dropped"
	default:
		return "unknown"
	}
}

// Event describes a value entering or leaving a table.
type Event struct {
	Value  proj.Erased
	Handle Handle
	Type   EventType
}

// Observer receives lifecycle events.
type Observer interface {
	OnRegistryEvent(Event)
}

// Dropper is optionally implemented by stored values that need cleanup.
type Dropper interface {
	Drop()
}
