package submission

// ProcessedEvent is published after a submission's processing transaction
// has committed.
type ProcessedEvent struct {
	Submission Submission
}

// FailedEvent is published when processing a submission fails and the
// failure has been recorded.
type FailedEvent struct {
	Submission Submission
	Reason     string
}
