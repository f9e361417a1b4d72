package application

import (
	"strings"

	"github.com/ericfisherdev/stackreport/internal/domain/model"
)

// FindComment returns the first comment whose body starts with prefix.
// comments are expected in creation order, so the oldest report wins.
func FindComment(comments []model.IssueComment, prefix string) (model.IssueComment, bool) {
	for _, c := range comments {
		if strings.HasPrefix(c.Body, prefix) {
			return c, true
		}
	}
	return model.IssueComment{}, false
}
