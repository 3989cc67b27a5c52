package client

import (
	"context"
	"fmt"

	"github.com/google/go-github/github"
)

// StatusContext is the name the bot's commit statuses show up under on
// the host's check list.
const StatusContext = "releasebot"

type SetCommitStatusOperation struct {
	Owner       string
	Repo        string
	SHA         string
	State       string
	Description string
}

func (cli *githubClient) doSetCommitStatusOperation(ctx context.Context, op *SetCommitStatusOperation) error {
	_, _, err := cli.client.Repositories.CreateStatus(ctx, op.Owner, op.Repo, op.SHA, &github.RepoStatus{
		State:       github.String(op.State),
		Description: github.String(op.Description),
		Context:     github.String(StatusContext),
	})
	if err != nil {
		return fmt.Errorf("set commit status [%s/%s@%s] state [%s] description [%s] error: %v",
			op.Owner, op.Repo, op.SHA, op.State, op.Description, err)
	}
	return nil
}
