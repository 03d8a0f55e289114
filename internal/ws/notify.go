package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ApplicationUpdatedEvent tells connected clients that something happened on
// an application's pipeline: a stage move, a task action, an interview or
// offer event.
type ApplicationUpdatedEvent struct {
	Type          string `json:"type"`
	ApplicationID string `json:"application_id"`
	ActivityType  string `json:"activity_type"`
	Timestamp     string `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

func NotifyApplicationUpdated(applicationID uuid.UUID, activityType string) {
	h := defaultHub.Load()
	if h == nil {
		return
	}
	if applicationID == uuid.Nil {
		return
	}

	evt := ApplicationUpdatedEvent{
		Type:          "application_updated",
		ApplicationID: applicationID.String(),
		ActivityType:  activityType,
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}

	h.Broadcast(b)
}
