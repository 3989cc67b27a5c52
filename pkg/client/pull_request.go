package client

import (
	"context"
	"fmt"

	"github.com/google/go-github/github"
)

func (cli *githubClient) GetPullRequest(ctx context.Context, owner, repo string, number int) (PullRequest, error) {
	pr, _, err := cli.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return PullRequest{}, fmt.Errorf("get pull request [%s/%s#%d] error: %v", owner, repo, number, err)
	}
	return NewPullRequest(pr), nil
}

func (cli *githubClient) ListReviews(ctx context.Context, owner, repo string, number int) ([]Review, error) {
	out := make([]Review, 0)
	opt := &github.ListOptions{
		PerPage: 100,
	}
	for {
		reviews, resp, err := cli.client.PullRequests.ListReviews(ctx, owner, repo, number, opt)
		if err != nil {
			return nil, fmt.Errorf("list reviews [%s/%s#%d] error: %v", owner, repo, number, err)
		}
		for _, r := range reviews {
			review := Review{
				ID:    r.GetID(),
				User:  r.GetUser().GetLogin(),
				State: r.GetState(),
				Body:  r.GetBody(),
			}
			if r.SubmittedAt != nil {
				review.SubmittedAt = *r.SubmittedAt
			}
			out = append(out, review)
		}
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}
	return out, nil
}

// operations

type CreateReviewOperation struct {
	Owner  string
	Repo   string
	Number int
	Event  string
	Body   string
}

func (cli *githubClient) doCreateReviewOperation(ctx context.Context, op *CreateReviewOperation) error {
	_, _, err := cli.client.PullRequests.CreateReview(ctx, op.Owner, op.Repo, op.Number, &github.PullRequestReviewRequest{
		Event: github.String(op.Event),
		Body:  github.String(op.Body),
	})
	if err != nil {
		return fmt.Errorf("create review [%s/%s#%d] event [%s] body [%s] error: %v",
			op.Owner, op.Repo, op.Number, op.Event, op.Body, err)
	}
	return nil
}
