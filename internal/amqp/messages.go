package amqp

import (
	"encoding/json"
	"fmt"
	"time"
)

// Actions carried by a TransactionEvent.
const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// TransactionEvent is a lightweight change notification. It carries only
// the record id and the action; consumers re-read the record from the
// store when they need the full payload.
type TransactionEvent struct {
	ID        string    `json:"id"`
	Action    string    `json:"action"`
	Timestamp time.Time `json:"timestamp"`
}

// NewTransactionEvent builds a change event for the given record id.
func NewTransactionEvent(id, action string) *TransactionEvent {
	return &TransactionEvent{
		ID:        id,
		Action:    action,
		Timestamp: time.Now(),
	}
}

// Validate rejects events a consumer could not act on.
func (e *TransactionEvent) Validate() error {
	if e.ID == "" {
		return fmt.Errorf("event missing id")
	}
	switch e.Action {
	case ActionCreated, ActionUpdated, ActionDeleted:
		return nil
	default:
		return fmt.Errorf("unknown event action %q", e.Action)
	}
}

// ToJSON converts the event to JSON bytes.
func (e *TransactionEvent) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// TransactionEventFromJSON decodes an event from JSON bytes.
func TransactionEventFromJSON(data []byte) (*TransactionEvent, error) {
	var e TransactionEvent
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}
