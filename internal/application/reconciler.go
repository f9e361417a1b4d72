package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ericfisherdev/stackreport/internal/domain/model"
	"github.com/ericfisherdev/stackreport/internal/domain/port/driven"
)

// ErrMissingPullRequest is returned when a reconcile is attempted without a
// pull request to post to. It indicates a misconfigured invocation.
var ErrMissingPullRequest = errors.New("missing pull request event data")

// ReconcileRequest carries everything a single reconciliation needs.
type ReconcileRequest struct {
	PR       *model.PullRequestRef
	Identity model.RunIdentity
	Output   string
	Mode     model.ReconcileMode
}

// CommentReconciler posts a command report to a pull request, updating the
// report comment from a previous run when one exists.
type CommentReconciler struct {
	comments driven.IssueCommentService
	logger   *slog.Logger
}

// NewCommentReconciler creates a CommentReconciler. A nil logger falls back to
// slog.Default().
func NewCommentReconciler(comments driven.IssueCommentService, logger *slog.Logger) *CommentReconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &CommentReconciler{
		comments: comments,
		logger:   logger,
	}
}

// Reconcile formats the report and either updates the matching comment or
// creates a new one.
//
// In edit mode, a failure to list or update comments is not fatal: it is
// logged, recorded in ReconcileResult.Degraded, and the report is posted as a
// new comment instead. Only a failed create is returned as an error.
func (r *CommentReconciler) Reconcile(ctx context.Context, req ReconcileRequest) (model.ReconcileResult, error) {
	if !req.PR.Valid() {
		return model.ReconcileResult{}, ErrMissingPullRequest
	}
	pr := *req.PR

	rendered := FormatReport(req.Identity, req.Output)
	if rendered.Truncated {
		r.logger.Warn(TruncationLogMessage, "limit_bytes", MaxReportBytes, "output_bytes", len(req.Output))
	}

	var degraded error
	if req.Mode == model.ReconcileModeEditExisting {
		updated, found, err := r.updateExisting(ctx, pr, rendered)
		switch {
		case err != nil:
			r.logger.Warn("not able to edit comment, defaulting to creating a new comment",
				"pr", pr.String(),
				"error", err,
			)
			degraded = err
		case found:
			return model.ReconcileResult{
				Action:  model.ReconcileActionUpdated,
				Comment: updated,
			}, nil
		default:
			r.logger.Debug("no existing comment found; creating new comment", "pr", pr.String())
		}
	}

	created, err := r.comments.CreateIssueComment(ctx, pr.RepoFullName, pr.Number, rendered.Body)
	if err != nil {
		return model.ReconcileResult{}, fmt.Errorf("creating report comment on %s: %w", pr, err)
	}
	r.logger.Debug("created report comment", "pr", pr.String(), "comment_id", created.ID)

	return model.ReconcileResult{
		Action:   model.ReconcileActionCreated,
		Comment:  created,
		Degraded: degraded,
	}, nil
}

// updateExisting locates the previous report comment and replaces its body.
// found is false with a nil error when no comment matches.
func (r *CommentReconciler) updateExisting(ctx context.Context, pr model.PullRequestRef, rendered model.RenderedComment) (model.IssueComment, bool, error) {
	r.logger.Debug("searching for an existing comment", "pr", pr.String(), "prefix", rendered.IdentityPrefix)

	comments, err := r.comments.ListIssueComments(ctx, pr.RepoFullName, pr.Number)
	if err != nil {
		return model.IssueComment{}, false, fmt.Errorf("listing comments: %w", err)
	}

	existing, ok := FindComment(comments, rendered.IdentityPrefix)
	if !ok {
		return model.IssueComment{}, false, nil
	}
	r.logger.Debug("found existing comment to update", "pr", pr.String(), "comment_id", existing.ID)

	updated, err := r.comments.UpdateIssueComment(ctx, pr.RepoFullName, existing.ID, rendered.Body)
	if err != nil {
		return model.IssueComment{}, false, fmt.Errorf("updating comment %d: %w", existing.ID, err)
	}

	return updated, true, nil
}
