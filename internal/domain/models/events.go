// File: internal/domain/models/events.go
package models

// UserRegisteredEvent is published when an account is created, either through
// registration or through first federated login.
type UserRegisteredEvent struct {
	UserID       string `json:"userId"`
	Email        string `json:"email"`
	FullName     string `json:"fullName"`
	AuthProvider string `json:"authProvider"`
}

// UserBannedEvent is published when an admin deactivates an account.
type UserBannedEvent struct {
	UserID string `json:"userId"`
}
