// Package actions resolves the pull request a run belongs to from the GitHub
// Actions runner environment.
package actions

import (
	"encoding/json"
	"fmt"
	"os"

	gh "github.com/google/go-github/v82/github"

	"github.com/ericfisherdev/stackreport/internal/domain/model"
)

// eventPayload holds the parts of a workflow event that can identify a pull
// request. pull_request, pull_request_target, pull_request_review and
// pull_request_review_comment carry "pull_request"; issue_comment carries an
// "issue" that may be a pull request.
type eventPayload struct {
	PullRequest *gh.PullRequest `json:"pull_request"`
	Issue       *gh.Issue       `json:"issue"`
	Repository  *gh.Repository  `json:"repository"`
}

// LoadPullRequestRef reads the event payload at eventPath and resolves the
// target pull request. repository ("owner/repo", usually GITHUB_REPOSITORY)
// takes precedence over the payload's repository.
//
// It returns a nil ref and nil error when eventPath is empty or the event is
// not associated with a pull request.
func LoadPullRequestRef(repository, eventPath string) (*model.PullRequestRef, error) {
	if eventPath == "" {
		return nil, nil
	}

	data, err := os.ReadFile(eventPath)
	if err != nil {
		return nil, fmt.Errorf("reading event payload: %w", err)
	}

	return ParsePullRequestRef(repository, data)
}

// ParsePullRequestRef resolves the target pull request from a raw event payload.
func ParsePullRequestRef(repository string, payload []byte) (*model.PullRequestRef, error) {
	var event eventPayload
	if err := json.Unmarshal(payload, &event); err != nil {
		return nil, fmt.Errorf("decoding event payload: %w", err)
	}

	var number int
	switch {
	case event.PullRequest != nil:
		number = event.PullRequest.GetNumber()
	case event.Issue != nil && event.Issue.IsPullRequest():
		number = event.Issue.GetNumber()
	default:
		return nil, nil
	}

	if repository == "" {
		repository = event.Repository.GetFullName()
	}

	return &model.PullRequestRef{
		RepoFullName: repository,
		Number:       number,
	}, nil
}

// LoadRepository reads the event payload at eventPath and returns its
// repository.full_name. It returns "" and a nil error when eventPath is empty
// or the payload names no repository.
func LoadRepository(eventPath string) (string, error) {
	if eventPath == "" {
		return "", nil
	}

	data, err := os.ReadFile(eventPath)
	if err != nil {
		return "", fmt.Errorf("reading event payload: %w", err)
	}

	var event eventPayload
	if err := json.Unmarshal(data, &event); err != nil {
		return "", fmt.Errorf("decoding event payload: %w", err)
	}
	return event.Repository.GetFullName(), nil
}
