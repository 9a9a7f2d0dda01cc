package tasks

import "encoding/json"

// ---
// QUEUE DEFINITIONS
// ---
const (
	// QueueVideoGeneration receives one task per newly triggered video job.
	QueueVideoGeneration = "q_video_generation"
)

// ---
// TASK PAYLOADS
// ---
// These are JSON-marshalled and pushed to Redis.

// VideoTaskPayload is the payload for QueueVideoGeneration.
type VideoTaskPayload struct {
	VideoID string `json:"video_id"`
}

// Marshal creates a JSON payload for a task.
func Marshal(payload interface{}) (string, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
