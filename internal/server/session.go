package server

import "github.com/google/uuid"

// NewSessionID creates a unique client session ID.
func NewSessionID() string {
	return uuid.NewString()
}
