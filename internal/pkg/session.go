package pkg

import "github.com/google/uuid"

// GenerateNewSessionID - random session identifier for the user_session cookie.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
