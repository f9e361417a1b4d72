package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/stackreport/internal/application"
	"github.com/ericfisherdev/stackreport/internal/config"
	"github.com/ericfisherdev/stackreport/internal/domain/model"
	"github.com/ericfisherdev/stackreport/internal/domain/port/driven"
)

// --- Fake comment service ---

type fakeCommentService struct {
	comments []model.IssueComment
	listErr  error

	listedPR  int
	updatedID int64
	created   []string
}

func (f *fakeCommentService) ListIssueComments(_ context.Context, _ string, prNumber int) ([]model.IssueComment, error) {
	f.listedPR = prNumber
	return f.comments, f.listErr
}

func (f *fakeCommentService) UpdateIssueComment(_ context.Context, _ string, commentID int64, body string) (model.IssueComment, error) {
	f.updatedID = commentID
	return model.IssueComment{ID: commentID, Body: body}, nil
}

func (f *fakeCommentService) CreateIssueComment(_ context.Context, _ string, _ int, body string) (model.IssueComment, error) {
	f.created = append(f.created, body)
	return model.IssueComment{ID: 555, Body: body}, nil
}

// --- Helpers ---

func baseConfig() *config.Config {
	return &config.Config{
		GitHubToken: "ghp_test",
		EditComment: true,
		Repository:  "owner/repo",
	}
}

func runCommand(t *testing.T, cfg *config.Config, svc *fakeCommentService, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var gotToken string
	root := NewRootCommand(Deps{
		Config: cfg,
		NewCommentService: func(token, _ string) (driven.IssueCommentService, error) {
			gotToken = token
			return svc, nil
		},
	})

	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)

	err := root.ExecuteContext(context.Background())
	if err == nil && svc != nil && len(args) > 0 && args[0] == "post" {
		assert.Equal(t, cfg.GitHubToken, gotToken)
	}
	return stdout.String(), stderr.String(), err
}

func writeEvent(t *testing.T, payload string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "event.json")
	require.NoError(t, os.WriteFile(path, []byte(payload), 0o600))
	return path
}

// loadConfigWithBadEnv loads config the way main does, with a valid token and
// repository but an unparseable value for key.
func loadConfigWithBadEnv(t *testing.T, key, value string) *config.Config {
	t.Helper()
	t.Setenv("STACKREPORT_GITHUB_TOKEN", "ghp_test")
	t.Setenv("GITHUB_REPOSITORY", "owner/repo")
	t.Setenv("GITHUB_EVENT_PATH", "")
	t.Setenv("STACKREPORT_LOG_LEVEL", "")
	t.Setenv("STACKREPORT_EDIT_COMMENT", "")
	t.Setenv("STACKREPORT_PR_NUMBER", "")
	t.Setenv(key, value)

	cfg, err := config.Load()
	require.NoError(t, err)
	return cfg
}

// --- post ---

func TestPost_CreatesCommentFromEventPayload(t *testing.T) {
	cfg := baseConfig()
	cfg.EventPath = writeEvent(t, `{"pull_request": {"number": 8}}`)
	svc := &fakeCommentService{}

	stdout, _, err := runCommand(t, cfg, svc, "OK", "post", "--command", "up", "--stack", "prod")

	require.NoError(t, err)
	assert.Equal(t, 8, svc.listedPR)
	require.Len(t, svc.created, 1)
	assert.Contains(t, svc.created[0], "`up` on prod")
	assert.Contains(t, svc.created[0], "```\nOK\n```")
	assert.Equal(t, "created comment 555 on owner/repo#8\n", stdout)
}

func TestPost_UpdatesExistingComment(t *testing.T) {
	prefix := application.IdentityPrefix(model.RunIdentity{Command: "up", StackName: "prod"})
	svc := &fakeCommentService{
		comments: []model.IssueComment{{ID: 77, Body: prefix + "\n\nold"}},
	}

	stdout, _, err := runCommand(t, baseConfig(), svc, "new output", "post", "--command", "up", "--stack", "prod", "--pr", "3")

	require.NoError(t, err)
	assert.Equal(t, int64(77), svc.updatedID)
	assert.Empty(t, svc.created)
	assert.Equal(t, "updated comment 77 on owner/repo#3\n", stdout)
}

func TestPost_EditCommentDisabled(t *testing.T) {
	prefix := application.IdentityPrefix(model.RunIdentity{Command: "up", StackName: "prod"})
	svc := &fakeCommentService{
		comments: []model.IssueComment{{ID: 77, Body: prefix}},
	}

	_, _, err := runCommand(t, baseConfig(), svc, "OK", "post", "--command", "up", "--stack", "prod", "--pr", "3", "--edit-comment=false")

	require.NoError(t, err)
	assert.Equal(t, 0, svc.listedPR, "list must not be called in always-create mode")
	assert.Equal(t, int64(0), svc.updatedID)
	assert.Len(t, svc.created, 1)
}

func TestPost_ListFailureWarnsAndCreates(t *testing.T) {
	svc := &fakeCommentService{listErr: errors.New("boom")}

	_, stderr, err := runCommand(t, baseConfig(), svc, "OK", "post", "--command", "up", "--stack", "prod", "--pr", "3")

	require.NoError(t, err)
	assert.Len(t, svc.created, 1)
	assert.Contains(t, stderr, "level=WARN")
}

func TestPost_ReadsOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "up.log")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o600))
	svc := &fakeCommentService{}

	_, _, err := runCommand(t, baseConfig(), svc, "from stdin", "post", "--command", "up", "--stack", "prod", "--pr", "3", "--output-file", path)

	require.NoError(t, err)
	require.Len(t, svc.created, 1)
	assert.Contains(t, svc.created[0], "from file")
	assert.NotContains(t, svc.created[0], "from stdin")
}

func TestPost_MissingPullRequest(t *testing.T) {
	cfg := baseConfig()
	cfg.EventPath = writeEvent(t, `{"ref": "refs/heads/main"}`)
	svc := &fakeCommentService{}

	_, _, err := runCommand(t, cfg, svc, "OK", "post", "--command", "up", "--stack", "prod")

	assert.ErrorIs(t, err, application.ErrMissingPullRequest)
	assert.Empty(t, svc.created)
}

func TestPost_PRFlagUsesPayloadRepository(t *testing.T) {
	cfg := baseConfig()
	cfg.Repository = ""
	cfg.EventPath = writeEvent(t, `{"repository": {"full_name": "payload-owner/payload-repo"}}`)
	svc := &fakeCommentService{}

	stdout, _, err := runCommand(t, cfg, svc, "OK", "post", "--command", "up", "--stack", "prod", "--pr", "8")

	require.NoError(t, err)
	assert.Equal(t, 8, svc.listedPR)
	assert.Equal(t, "created comment 555 on payload-owner/payload-repo#8\n", stdout)
}

func TestPost_PRFlagWithoutRepository(t *testing.T) {
	cfg := baseConfig()
	cfg.Repository = ""
	svc := &fakeCommentService{}

	_, _, err := runCommand(t, cfg, svc, "OK", "post", "--command", "up", "--stack", "prod", "--pr", "8")

	require.ErrorIs(t, err, errMissingRepository)
	assert.NotErrorIs(t, err, application.ErrMissingPullRequest)
	assert.Contains(t, err.Error(), "GITHUB_REPOSITORY")
	assert.Empty(t, svc.created)
}

func TestPost_EventWithoutRepository(t *testing.T) {
	cfg := baseConfig()
	cfg.Repository = ""
	cfg.EventPath = writeEvent(t, `{"pull_request": {"number": 8}}`)
	svc := &fakeCommentService{}

	_, _, err := runCommand(t, cfg, svc, "OK", "post", "--command", "up", "--stack", "prod")

	assert.ErrorIs(t, err, errMissingRepository)
	assert.Empty(t, svc.created)
}

func TestPost_MissingToken(t *testing.T) {
	cfg := baseConfig()
	cfg.GitHubToken = ""

	_, _, err := runCommand(t, cfg, &fakeCommentService{}, "OK", "post", "--command", "up", "--stack", "prod", "--pr", "3")

	assert.ErrorIs(t, err, config.ErrMissingToken)
}

func TestPost_RequiresCommandAndStack(t *testing.T) {
	_, _, err := runCommand(t, baseConfig(), &fakeCommentService{}, "OK", "post", "--command", "up", "--pr", "3")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--command and --stack are required")
}

func TestPost_FlagsDefaultFromConfig(t *testing.T) {
	cfg := baseConfig()
	cfg.Command = "preview"
	cfg.StackName = "dev"
	cfg.PRNumber = 12
	svc := &fakeCommentService{}

	_, _, err := runCommand(t, cfg, svc, "OK", "post")

	require.NoError(t, err)
	assert.Equal(t, 12, svc.listedPR)
	require.Len(t, svc.created, 1)
	assert.Contains(t, svc.created[0], "`preview` on dev")
}

// --- preview ---

func TestPreview_Markdown(t *testing.T) {
	stdout, _, err := runCommand(t, baseConfig(), nil, "OK", "preview", "--command", "up", "--stack", "prod")

	require.NoError(t, err)
	want := application.FormatReport(model.RunIdentity{Command: "up", StackName: "prod"}, "OK").Body + "\n"
	assert.Equal(t, want, stdout)
}

func TestPreview_HTML(t *testing.T) {
	stdout, _, err := runCommand(t, baseConfig(), nil, "OK", "preview", "--command", "up", "--stack", "prod", "--html")

	require.NoError(t, err)
	assert.Contains(t, stdout, "<code>up</code> on prod")
	assert.Contains(t, stdout, "<pre><code>OK")
}

func TestPreview_TruncationWarning(t *testing.T) {
	long := strings.Repeat("x", application.MaxReportBytes+1)

	stdout, stderr, err := runCommand(t, baseConfig(), nil, long, "preview", "--command", "up", "--stack", "prod")

	require.NoError(t, err)
	assert.Contains(t, stdout, application.TruncationNotice)
	assert.Contains(t, stderr, "level=WARN")
	assert.Contains(t, stderr, application.TruncationLogMessage)
}

// --- version ---

func TestVersion(t *testing.T) {
	stdout, _, err := runCommand(t, baseConfig(), nil, "", "version")

	require.NoError(t, err)
	assert.Equal(t, "stackreport version dev\n", stdout)
}

// --- invalid post-only settings ---

func TestInvalidPostSettings(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{key: "STACKREPORT_PR_NUMBER", value: "abc"},
		{key: "STACKREPORT_EDIT_COMMENT", value: "sometimes"},
	}

	for _, tc := range tests {
		t.Run(tc.key, func(t *testing.T) {
			t.Run("version runs", func(t *testing.T) {
				stdout, _, err := runCommand(t, loadConfigWithBadEnv(t, tc.key, tc.value), nil, "", "version")

				require.NoError(t, err)
				assert.Equal(t, "stackreport version dev\n", stdout)
			})

			t.Run("preview runs", func(t *testing.T) {
				stdout, _, err := runCommand(t, loadConfigWithBadEnv(t, tc.key, tc.value), nil, "OK", "preview", "--command", "up", "--stack", "prod")

				require.NoError(t, err)
				assert.Contains(t, stdout, "```\nOK\n```")
			})

			t.Run("post fails", func(t *testing.T) {
				svc := &fakeCommentService{}

				_, _, err := runCommand(t, loadConfigWithBadEnv(t, tc.key, tc.value), svc, "OK", "post", "--command", "up", "--stack", "prod", "--pr", "3")

				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.key)
				assert.Empty(t, svc.created)
			})
		})
	}
}
