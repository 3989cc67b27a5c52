package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/github"
)

// GetTagExists reports whether a tag with the given name already exists
// in the repository. A 404 from the host means the tag is free; any
// other failure is returned as an error, never folded into the result.
func (cli *githubClient) GetTagExists(ctx context.Context, owner, repo, tag string) (bool, error) {
	_, resp, err := cli.client.Git.GetRef(ctx, owner, repo, "tags/"+tag)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("get tag [%s/%s] [%s] error: %v", owner, repo, tag, err)
	}
	return true, nil
}

// operations

type CreateReleaseOperation struct {
	Owner           string
	Repo            string
	TagName         string
	TargetCommitish string
	Name            string
	Body            string
}

func (cli *githubClient) doCreateReleaseOperation(ctx context.Context, op *CreateReleaseOperation) error {
	_, _, err := cli.client.Repositories.CreateRelease(ctx, op.Owner, op.Repo, &github.RepositoryRelease{
		TagName:         github.String(op.TagName),
		TargetCommitish: github.String(op.TargetCommitish),
		Name:            github.String(op.Name),
		Body:            github.String(op.Body),
	})
	if err != nil {
		return fmt.Errorf("create release [%s/%s] tag [%s] target [%s] error: %v",
			op.Owner, op.Repo, op.TagName, op.TargetCommitish, err)
	}
	return nil
}
