package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/stackreport/internal/domain/model"
)

// reportFlags are shared by every command that formats a report.
type reportFlags struct {
	command    string
	stackName  string
	outputFile string
}

func (f *reportFlags) register(cmd *cobra.Command, a *app) {
	cmd.Flags().StringVar(&f.command, "command", a.cfg.Command, "Command whose output is reported (e.g. up, preview)")
	cmd.Flags().StringVar(&f.stackName, "stack", a.cfg.StackName, "Stack the command ran against")
	cmd.Flags().StringVar(&f.outputFile, "output-file", a.cfg.OutputFile, `File holding the command output ("-" or empty for stdin)`)
}

func (f *reportFlags) identity() (model.RunIdentity, error) {
	if f.command == "" || f.stackName == "" {
		return model.RunIdentity{}, errors.New("--command and --stack are required")
	}
	return model.RunIdentity{Command: f.command, StackName: f.stackName}, nil
}

// readOutput returns the report text from --output-file or stdin.
func (f *reportFlags) readOutput(cmd *cobra.Command) (string, error) {
	if f.outputFile == "" || f.outputFile == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading output from stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(f.outputFile)
	if err != nil {
		return "", fmt.Errorf("reading output file: %w", err)
	}
	return string(data), nil
}
