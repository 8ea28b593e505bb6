package response

import "time"

type AuthResponse struct {
	Token     string    `json:"token"`
	ActorID   string    `json:"actor_id"`
	ActorType string    `json:"actor_type"`
	Role      string    `json:"role,omitempty"`
	ExpiresAt time.Time `json:"expires_at"`
}
