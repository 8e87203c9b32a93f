package notify

// EventType identifies what happened to a listing.
type EventType string

const (
	EventCreated EventType = "created"
	EventUpdated EventType = "updated"
	EventDeleted EventType = "deleted"
)

// Subject is the human-readable headline used as the message subject and
// embedded in the payload.
func (t EventType) Subject() string {
	switch t {
	case EventCreated:
		return "New room listing created"
	case EventUpdated:
		return "Room listing updated"
	case EventDeleted:
		return "Room listing deleted"
	default:
		return "Room listing event"
	}
}

// Event is the payload published to the room-events topic. Message and
// Timestamp are stamped by the broker at publish time.
type Event struct {
	Type       EventType `json:"type"`
	RoomID     string    `json:"roomId"`
	Title      string    `json:"title"`
	OwnerName  string    `json:"ownerName,omitempty"`
	OwnerEmail string    `json:"ownerEmail,omitempty"`
	Message    string    `json:"message,omitempty"`
	Timestamp  string    `json:"timestamp,omitempty"`
}
