package models

import "time"

type ActorType string

const (
	ActorAdmin  ActorType = "Admin"
	ActorUser   ActorType = "User"
	ActorSystem ActorType = "System"
)

type ActivityLog struct {
	ID        int64          `json:"id"`
	ActorType ActorType      `json:"actor_type"`
	ActorID   *int64         `json:"actor_id,omitempty"`
	Action    string         `json:"action"`
	Details   map[string]any `json:"details,omitempty"`
	IPAddress string         `json:"ip_address,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
