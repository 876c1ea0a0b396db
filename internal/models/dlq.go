package models

import (
	"time"
)

// FailedMessage is what consumers park on the dead letter topic.
type FailedMessage struct {
	Topic      string    `json:"topic"`
	Key        string    `json:"key"`
	Payload    []byte    `json:"payload"`
	Timestamp  time.Time `json:"timestamp"`
	CauseError error     `json:"-"`

	// Error is a string representation of CauseError
	Error string `json:"error"`
}
