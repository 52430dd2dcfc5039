package events

import "time"

// Event names published on the bus.
const (
	TypeUserRegistered        = "USER_REGISTERED"
	TypeUserLogin             = "USER_LOGIN"
	TypeUserLogout            = "USER_LOGOUT"
	TypeFeedbackSubmitted     = "FEEDBACK_SUBMITTED"
	TypeFeedbackStatusChanged = "FEEDBACK_STATUS_CHANGED"
)

// Event defines the contract for all system events.
type Event interface {
	EventType() string
	Payload() map[string]interface{}
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}
