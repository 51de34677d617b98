package ws

import (
	"encoding/json"
	"time"
)

const (
	EventJobCreated = "job_created"
	EventJobDeleted = "job_deleted"
)

type JobEvent struct {
	Type      string `json:"type"`
	JobID     string `json:"job_id"`
	Title     string `json:"title,omitempty"`
	Timestamp string `json:"timestamp"`
}

// PublishJobEvent broadcasts a job lifecycle event to every subscriber.
func (h *Hub) PublishJobEvent(eventType, jobID, title string) {
	if h == nil {
		return
	}
	b, err := json.Marshal(JobEvent{
		Type:      eventType,
		JobID:     jobID,
		Title:     title,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	h.Broadcast(b)
}
