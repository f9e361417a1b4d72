// Package cli implements the stackreport command line using cobra.
package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	githubadapter "github.com/ericfisherdev/stackreport/internal/adapter/driven/github"
	"github.com/ericfisherdev/stackreport/internal/config"
	"github.com/ericfisherdev/stackreport/internal/domain/port/driven"
)

// Version is overridden at build time via -ldflags.
var Version = "dev"

// CommentServiceFactory builds the comment service used by the post command.
type CommentServiceFactory func(token, apiURL string) (driven.IssueCommentService, error)

// Deps holds the collaborators the commands are built with.
type Deps struct {
	Config *config.Config

	// NewCommentService defaults to the go-github adapter when nil.
	NewCommentService CommentServiceFactory
}

// app carries state shared by the subcommands of one root command.
type app struct {
	cfg               *config.Config
	newCommentService CommentServiceFactory
	logger            *slog.Logger
}

// NewRootCommand assembles the stackreport command tree.
func NewRootCommand(deps Deps) *cobra.Command {
	a := &app{
		cfg:               deps.Config,
		newCommentService: deps.NewCommentService,
		logger:            slog.Default(),
	}
	if a.cfg == nil {
		a.cfg = &config.Config{EditComment: true, LogLevel: slog.LevelInfo}
	}
	if a.newCommentService == nil {
		a.newCommentService = func(token, apiURL string) (driven.IssueCommentService, error) {
			return githubadapter.NewClient(token, apiURL)
		}
	}

	root := &cobra.Command{
		Use:           "stackreport",
		Short:         "Post command reports as pull request comments",
		Long:          "stackreport posts the output of an infrastructure command as a pull request comment, updating the previous report for the same command and stack instead of adding a new one.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: a.cfg.LogLevel}))
			slog.SetDefault(a.logger)
		},
	}

	root.AddCommand(a.newPostCommand())
	root.AddCommand(a.newPreviewCommand())
	root.AddCommand(newVersionCommand())

	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print stackreport version",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "stackreport version %s\n", Version)
		},
	}
}
