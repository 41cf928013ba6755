package model

import "time"

// Actor identifies one side of a directed notification: the portal user
// who sent or receives the message.
type Actor struct {
	// ID is the backend's numeric identifier for the user.
	ID int64 `json:"id"`

	// Name is the display name shown in alerts and lists.
	Name string `json:"name"`

	// Role is the user's portal role.
	Role Role `json:"role"`
}

// Notification represents a directed message between two portal users.
// The ID is stable across fetches and is the sole key used when diffing
// a freshly fetched list against the local cache.
type Notification struct {
	// ID is the unique identifier for this notification.
	ID string `json:"id"`

	// Sender is the user who authored the message.
	Sender Actor `json:"sender"`

	// Receiver is the user the message is addressed to.
	Receiver Actor `json:"receiver"`

	// Message is the human-readable notification text.
	Message string `json:"message"`

	// Read indicates whether the receiver has seen this notification.
	Read bool `json:"read"`

	// CreatedAt is when this notification was generated.
	CreatedAt time.Time `json:"created_at"`
}
