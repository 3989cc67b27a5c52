package client

import (
	"time"

	"github.com/google/go-github/github"
)

// PullRequest is an immutable snapshot of the host's pull request
// resource at dispatch time.
type PullRequest struct {
	Number         int
	State          string
	Title          string
	Body           string
	BaseBranch     string
	HeadSHA        string
	MergeCommitSHA string
	Merged         bool
	User           string
	HTMLURL        string
}

// NewPullRequest converts a go-github pull request into a snapshot.
func NewPullRequest(pr *github.PullRequest) PullRequest {
	if pr == nil {
		return PullRequest{}
	}
	return PullRequest{
		Number:         pr.GetNumber(),
		State:          pr.GetState(),
		Title:          pr.GetTitle(),
		Body:           pr.GetBody(),
		BaseBranch:     pr.GetBase().GetRef(),
		HeadSHA:        pr.GetHead().GetSHA(),
		MergeCommitSHA: pr.GetMergeCommitSHA(),
		Merged:         pr.GetMerged(),
		User:           pr.GetUser().GetLogin(),
		HTMLURL:        pr.GetHTMLURL(),
	}
}

// Review is a host-tracked review object attached to a pull request.
type Review struct {
	ID          int64
	User        string
	State       string
	Body        string
	SubmittedAt time.Time
}

// Commit status states tracked by the host.
const (
	StatusPending = "pending"
	StatusSuccess = "success"
	StatusFailure = "failure"
	StatusError   = "error"
)

// Review states as reported by the host.
const (
	ReviewStateApproved         = "APPROVED"
	ReviewStateChangesRequested = "CHANGES_REQUESTED"
	ReviewStateCommented        = "COMMENTED"
)

// Review events accepted by the host when creating a review.
const (
	ReviewEventApprove        = "APPROVE"
	ReviewEventRequestChanges = "REQUEST_CHANGES"
	ReviewEventComment        = "COMMENT"
)
