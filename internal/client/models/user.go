package models

import "time"

// DefaultRole is assigned to users synthesized on the client.
const DefaultRole = "user"

// User is an authenticated identity as known to the client.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Credentials are submitted on login and registration.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}
