package model

// RunIdentity names the logical report stream a comment belongs to. Two runs
// with the same Command and StackName share a stream and update one comment.
type RunIdentity struct {
	Command   string
	StackName string
}

// RenderedComment is a report formatted for posting as a PR comment.
type RenderedComment struct {
	IdentityPrefix string // Leading text shared by every comment of the same RunIdentity.
	Body           string // Full comment body; always starts with IdentityPrefix.
	Truncated      bool
}
