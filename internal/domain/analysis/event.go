package analysis

import "time"

// CompletedEvent is published once a run has been accepted and stored.
type CompletedEvent struct {
	RunID          string    `json:"run_id"`
	ProjectName    string    `json:"project_name"`
	DeliveredCount int       `json:"delivered_count"`
	Truncated      bool      `json:"truncated"`
	FixtureVersion string    `json:"fixture_version"`
	CompletedAt    time.Time `json:"completed_at"`
}

// CompletedEventFor derives the event payload from a stored run.
func CompletedEventFor(r *Run, at time.Time) CompletedEvent {
	return CompletedEvent{
		RunID:          r.ID,
		ProjectName:    r.ProjectName,
		DeliveredCount: r.Resolution.Delivered,
		Truncated:      r.Resolution.Truncated,
		FixtureVersion: r.FixtureVersion,
		CompletedAt:    at.UTC(),
	}
}

//Personal.AI order the ending
