package amqp

import (
	"encoding/json"
	"time"
)

// ChangeMessage notifies the backup worker that a record changed. It carries
// only the entity, action and id; the worker reads the full state from the
// store when it snapshots.
type ChangeMessage struct {
	Entity    string    `json:"entity"` // "category" or "order"
	Action    string    `json:"action"` // "created", "updated" or "deleted"
	ID        int64     `json:"id"`
	Timestamp time.Time `json:"timestamp"`
}

func NewChangeMessage(entity, action string, id int64) *ChangeMessage {
	return &ChangeMessage{
		Entity:    entity,
		Action:    action,
		ID:        id,
		Timestamp: time.Now(),
	}
}

func (m *ChangeMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func ChangeMessageFromJSON(data []byte) (*ChangeMessage, error) {
	var msg ChangeMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
