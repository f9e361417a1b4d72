package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/stackreport/internal/adapter/driving/render"
	"github.com/ericfisherdev/stackreport/internal/application"
)

func (a *app) newPreviewCommand() *cobra.Command {
	var (
		flags  reportFlags
		asHTML bool
	)

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the comment that post would send, without calling GitHub",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			identity, err := flags.identity()
			if err != nil {
				return err
			}
			output, err := flags.readOutput(cmd)
			if err != nil {
				return err
			}

			rendered := application.FormatReport(identity, output)
			if rendered.Truncated {
				a.logger.Warn(application.TruncationLogMessage, "limit_bytes", application.MaxReportBytes, "output_bytes", len(output))
			}

			body := rendered.Body
			if asHTML {
				body = render.RenderComment(rendered)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), body)
			return err
		},
	}

	flags.register(cmd, a)
	cmd.Flags().BoolVar(&asHTML, "html", false, "Render the comment to sanitized HTML instead of markdown")

	return cmd
}
