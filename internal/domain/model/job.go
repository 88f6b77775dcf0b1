package model

import "time"

type JobStatus string

const (
	JobStatusQueued     JobStatus = "QUEUED"
	JobStatusProcessing JobStatus = "PROCESSING"
	JobStatusCompleted  JobStatus = "COMPLETED"
	JobStatusFailed     JobStatus = "FAILED"
)

// Terminal reports whether a status admits no further transitions.
func (s JobStatus) Terminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// Job is one submitted document's processing record. ID is assigned by the
// backend at submission and is the only merge key; Filename is client-supplied
// and unknown to the backend status endpoint, so it must survive every merge.
type Job struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	Status    JobStatus `json:"status"`
	Stage     string    `json:"stage"`
	Progress  int       `json:"progress"`
	CreatedAt time.Time `json:"created_at"`
}

// StatusUpdate is the authoritative remote state for one job.
type StatusUpdate struct {
	Status   JobStatus `json:"status"`
	Stage    string    `json:"stage"`
	Progress int       `json:"progress"`
}

// Apply merges a remote status update into the job, returning the merged copy.
// ID and Filename are preserved. A terminal job is returned unchanged: status
// transitions are monotonic and the synchronizer must never regress one.
func (j Job) Apply(u StatusUpdate) Job {
	if j.Status.Terminal() {
		return j
	}
	j.Status = u.Status
	j.Stage = u.Stage
	j.Progress = clampProgress(u.Progress)
	return j
}

func clampProgress(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
