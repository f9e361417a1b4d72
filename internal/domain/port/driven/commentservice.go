package driven

import (
	"context"

	"github.com/ericfisherdev/stackreport/internal/domain/model"
)

// IssueCommentService defines the driven port for PR-level comment operations
// on the hosting service. Implementations handle pagination and authentication.
type IssueCommentService interface {
	// ListIssueComments returns every issue comment on the pull request, across
	// all pages, in the order the service returns them (creation order).
	ListIssueComments(ctx context.Context, repoFullName string, prNumber int) ([]model.IssueComment, error)

	// UpdateIssueComment replaces the body of an existing comment.
	UpdateIssueComment(ctx context.Context, repoFullName string, commentID int64, body string) (model.IssueComment, error)

	// CreateIssueComment creates a top-level (non-diff) comment on a pull request.
	CreateIssueComment(ctx context.Context, repoFullName string, prNumber int, body string) (model.IssueComment, error)
}
