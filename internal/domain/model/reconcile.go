package model

// ReconcileResult describes the outcome of posting a report.
type ReconcileResult struct {
	Action  ReconcileAction
	Comment IssueComment

	// Degraded holds the list or update error that was downgraded to a
	// warning before falling back to creating a new comment. Nil when the
	// preferred path succeeded or was never attempted.
	Degraded error
}

// FellBack reports whether the result came from the create fallback.
func (r ReconcileResult) FellBack() bool {
	return r.Degraded != nil
}
