package application

import (
	"fmt"
	"strings"

	"github.com/ericfisherdev/stackreport/internal/domain/model"
)

// MaxReportBytes caps how much raw command output is embedded in a comment.
// GitHub rejects comment bodies above 65536 characters; the remainder covers
// the header, fence and notice.
const MaxReportBytes = 64_000

// TruncationNotice is appended after the fenced block when the report was cut.
const TruncationNotice = "**Warn**: The output was too long and trimmed."

// TruncationLogMessage is logged at warn level whenever a report is trimmed.
const TruncationLogMessage = "report exceeds comment budget and was trimmed"

// IdentityPrefix returns the header that opens every comment for identity.
// Later runs find their previous comment by matching this prefix, so its
// output must stay byte-stable for a given Command and StackName.
func IdentityPrefix(identity model.RunIdentity) string {
	return fmt.Sprintf("#### :tropical_drink: `%s` on %s\n\n<details>\n<summary>Click to expand report</summary>",
		identity.Command, identity.StackName)
}

// TruncateReport cuts output to at most MaxReportBytes bytes.
//
// truncated is true when the kept text is exactly MaxReportBytes long, which
// includes an input of exactly that size where nothing was removed. Existing
// consumers rely on this; comparing against len(output) would be the fix.
func TruncateReport(output string) (kept string, truncated bool) {
	kept = output
	if len(kept) > MaxReportBytes {
		kept = kept[:MaxReportBytes]
	}
	return kept, len(kept) == MaxReportBytes
}

// FormatReport renders output as a collapsible PR comment for identity.
func FormatReport(identity model.RunIdentity, output string) model.RenderedComment {
	prefix := IdentityPrefix(identity)
	report, truncated := TruncateReport(output)

	var b strings.Builder
	b.Grow(len(prefix) + len(report) + len(TruncationNotice) + 32)

	b.WriteString(prefix)
	// The fence only renders when separated from the HTML above by a blank line.
	b.WriteString("\n\n```\n")
	b.WriteString(report)
	b.WriteString("\n```\n")
	if truncated {
		b.WriteString(TruncationNotice)
		b.WriteString("\n")
	}
	b.WriteString("</details>")

	return model.RenderedComment{
		IdentityPrefix: prefix,
		Body:           b.String(),
		Truncated:      truncated,
	}
}
