// Package notice defines the transient, auto-expiring notices the backend
// surfaces to the dashboard. Every failure class ends up here rather than
// crashing the process; the frontend polls the active set and renders them
// as dismissable alerts.
package notice

import "time"

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

type Notice struct {
	ID         string    `json:"id"`
	Level      Level     `json:"level"`
	Title      string    `json:"title"`
	Message    string    `json:"message"`
	InstanceID string    `json:"instanceId,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}
