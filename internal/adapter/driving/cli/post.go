package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/stackreport/internal/adapter/driving/actions"
	"github.com/ericfisherdev/stackreport/internal/application"
	"github.com/ericfisherdev/stackreport/internal/domain/model"
)

func (a *app) newPostCommand() *cobra.Command {
	var (
		flags       reportFlags
		editComment bool
		repo        string
		prNumber    int
	)

	cmd := &cobra.Command{
		Use:   "post",
		Short: "Post or update the report comment on the current pull request",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.cfg.ValidatePost(); err != nil {
				return err
			}
			if err := a.cfg.RequireToken(); err != nil {
				return err
			}
			identity, err := flags.identity()
			if err != nil {
				return err
			}
			output, err := flags.readOutput(cmd)
			if err != nil {
				return err
			}

			pr, err := a.resolvePullRequest(repo, prNumber)
			if err != nil {
				return err
			}

			comments, err := a.newCommentService(a.cfg.GitHubToken, a.cfg.GitHubAPIURL)
			if err != nil {
				return fmt.Errorf("creating github client: %w", err)
			}

			reconciler := application.NewCommentReconciler(comments, a.logger)
			result, err := reconciler.Reconcile(cmd.Context(), application.ReconcileRequest{
				PR:       pr,
				Identity: identity,
				Output:   output,
				Mode:     model.ReconcileModeFromEdit(editComment),
			})
			if err != nil {
				return err
			}

			a.logger.Info("report comment posted",
				"pr", pr.String(),
				"action", result.Action,
				"comment_id", result.Comment.ID,
				"fell_back", result.FellBack(),
			)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s comment %d on %s\n", result.Action, result.Comment.ID, pr)
			return err
		},
	}

	flags.register(cmd, a)
	cmd.Flags().BoolVar(&editComment, "edit-comment", a.cfg.EditComment, "Update the previous report comment instead of always adding a new one")
	cmd.Flags().StringVar(&repo, "repo", a.cfg.Repository, "Repository as owner/repo")
	cmd.Flags().IntVar(&prNumber, "pr", a.cfg.PRNumber, "Pull request number (default: from the workflow event payload)")

	return cmd
}

// errMissingRepository is returned when a pull request number is known but no
// repository can be determined for it.
var errMissingRepository = errors.New("repository is not set (--repo, GITHUB_REPOSITORY or the event payload's repository.full_name)")

// resolvePullRequest prefers an explicit PR number and otherwise reads the
// workflow event payload. An empty repo is filled from the payload's
// repository. A nil ref is returned, not an error, when neither identifies a
// pull request; the reconciler rejects it.
func (a *app) resolvePullRequest(repo string, prNumber int) (*model.PullRequestRef, error) {
	if prNumber > 0 {
		if repo == "" {
			fromEvent, err := actions.LoadRepository(a.cfg.EventPath)
			if err != nil {
				return nil, err
			}
			repo = fromEvent
		}
		if repo == "" {
			return nil, fmt.Errorf("pull request #%d: %w", prNumber, errMissingRepository)
		}
		return &model.PullRequestRef{RepoFullName: repo, Number: prNumber}, nil
	}

	ref, err := actions.LoadPullRequestRef(repo, a.cfg.EventPath)
	if err != nil {
		return nil, err
	}
	if ref == nil {
		a.logger.Debug("event is not associated with a pull request", "event", a.cfg.EventName)
		return nil, nil
	}
	if ref.RepoFullName == "" {
		return nil, fmt.Errorf("pull request #%d: %w", ref.Number, errMissingRepository)
	}
	return ref, nil
}
