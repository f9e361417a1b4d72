package model

import "fmt"

// PullRequestRef identifies the pull request a report is posted to.
type PullRequestRef struct {
	RepoFullName string // "owner/repo".
	Number       int
}

// Valid reports whether the ref carries a usable repository and PR number.
func (r *PullRequestRef) Valid() bool {
	return r != nil && r.RepoFullName != "" && r.Number > 0
}

func (r PullRequestRef) String() string {
	return fmt.Sprintf("%s#%d", r.RepoFullName, r.Number)
}
