package model

// ReconcileMode selects how a rendered report is reconciled with the PR's
// existing comments.
type ReconcileMode string

const (
	ReconcileModeEditExisting ReconcileMode = "edit_existing" // Search for a prior report and update it.
	ReconcileModeAlwaysCreate ReconcileMode = "always_create" // Always post a new comment.
)

// ReconcileModeFromEdit maps the boolean edit-comment setting to a mode.
func ReconcileModeFromEdit(editExisting bool) ReconcileMode {
	if editExisting {
		return ReconcileModeEditExisting
	}
	return ReconcileModeAlwaysCreate
}

// ReconcileAction records which mutating call finished a reconciliation.
type ReconcileAction string

const (
	ReconcileActionCreated ReconcileAction = "created"
	ReconcileActionUpdated ReconcileAction = "updated"
)
