// Package queue defines message payloads exchanged over the message broker.
package queue

// TaskCompletedEvent is published when a task transitions into the Completed
// status. It carries the resolved reference names so downstream consumers
// can log or notify without querying the primary database.
type TaskCompletedEvent struct {
	TaskID      uint64   `json:"task_id"`
	Name        string   `json:"name"`
	ProjectName string   `json:"project,omitempty"`
	TeamName    string   `json:"team,omitempty"`
	OwnerNames  []string `json:"owners,omitempty"`
	CompletedAt string   `json:"completed_at"`
}
