package event

import (
	"github.com/releasebot/releasebot/pkg/client"
)

const (
	EvPullRequest = "pull_request"
	EvPing        = "ping"
)

const (
	ActionOpened      = "opened"
	ActionReopened    = "reopened"
	ActionEdited      = "edited"
	ActionSynchronize = "synchronize"
	ActionClosed      = "closed"
)

// EventContext is the normalized view of one pull request delivery.
// It is built once from the webhook payload and passed by value
// through the engine; the engine never parses raw payload JSON.
type EventContext struct {
	Action      string
	Owner       string
	Repo        string
	PullRequest client.PullRequest
}
