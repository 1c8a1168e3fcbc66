// FILE: internal/entity/instance_entity.go
package entity

import "time"

// Known instance statuses. The remote system owns the status field and may
// report values outside this set (e.g. "deleting", error states); merges
// accept whatever it returns. Only the optimistic client-side writes are
// restricted to the two transitional values.
const (
	StatusRunning  = "running"
	StatusPaused   = "paused"
	StatusPausing  = "pausing"
	StatusResuming = "resuming"
)

// IsTransitional reports whether a status is remotely-owned and in flight.
// While a record is transitional no new action may be issued against it.
func IsTransitional(status string) bool {
	return status == StatusPausing || status == StatusResuming
}

// InstanceRecord is the unit of state tracked by the reconciler. One record
// per instance id; Memory/Storage/Region are display-only and never mutated
// locally.
type InstanceRecord struct {
	ID          string
	Name        string
	Status      string
	Memory      string
	Storage     string
	Region      string
	LastUpdated time.Time

	// Seq tags the last merge applied to this record. Every fetch is tagged
	// at issuance with a monotonically increasing sequence; a merge carrying
	// an older tag is dropped so stale responses cannot regress the status.
	Seq uint64
}

func (r *InstanceRecord) Clone() *InstanceRecord {
	clone := *r
	return &clone
}
