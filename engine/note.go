package engine

import (
	"fmt"
	"strings"

	"github.com/releasebot/releasebot/pkg/client"
)

// BuildReleasePayload maps a merged release pull request onto the
// release resource: the title becomes both tag and release name, the
// body becomes the release notes.
func BuildReleasePayload(owner, repo string, pr client.PullRequest, target string) *client.CreateReleaseOperation {
	return &client.CreateReleaseOperation{
		Owner:           owner,
		Repo:            repo,
		TagName:         pr.Title,
		TargetCommitish: target,
		Name:            pr.Title,
		Body:            pr.Body,
	}
}

// BuildNoteComment formats the suggested release note line for a pull
// request whose title carries an issue key.
func BuildNoteComment(issueKey, description, browseURL string) string {
	link := strings.TrimRight(browseURL, "/") + "/" + issueKey
	return fmt.Sprintf("Suggested release note: [%s](%s) %s", issueKey, link, description)
}
