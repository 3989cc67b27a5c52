package client

import (
	"context"
	"fmt"

	"github.com/google/go-github/github"
)

// ClientInterface is the narrow facade over the host's API consumed by
// the engine. Queries are plain methods; mutations go through
// DoOperation so every write carries its full request context when it
// fails.
type ClientInterface interface {
	DoOperation(ctx context.Context, op interface{}) error
	GetPullRequest(ctx context.Context, owner, repo string, number int) (PullRequest, error)
	GetTagExists(ctx context.Context, owner, repo, tag string) (bool, error)
	ListReviews(ctx context.Context, owner, repo string, number int) ([]Review, error)
	GetSelfLogin(ctx context.Context) (string, error)
}

var _ ClientInterface = &githubClient{}

type githubClient struct {
	client *github.Client
}

func NewGithubClient(client *github.Client) ClientInterface {
	return &githubClient{
		client: client,
	}
}

func (cli *githubClient) DoOperation(ctx context.Context, op interface{}) (err error) {
	switch v := op.(type) {
	case *SetCommitStatusOperation:
		err = cli.doSetCommitStatusOperation(ctx, v)
	case *CreateReviewOperation:
		err = cli.doCreateReviewOperation(ctx, v)
	case *CreateReleaseOperation:
		err = cli.doCreateReleaseOperation(ctx, v)
	default:
		err = fmt.Errorf("no support operation")
	}
	return
}

func (cli *githubClient) GetSelfLogin(ctx context.Context) (string, error) {
	user, _, err := cli.client.Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("get authenticated user error: %v", err)
	}
	return user.GetLogin(), nil
}
