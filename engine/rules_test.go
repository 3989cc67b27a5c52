package engine

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDateMode(t *testing.T) {
	cli := newFakeClient()
	e := newTestEngine(t, cli, PolicyOptions{})

	pr := validPR()
	outcome := e.validate(context.Background(), testEventContext("opened", pr))
	assert.Equal(t, Valid(), outcome)

	pr.Title = "20240101.12"
	outcome = e.validate(context.Background(), testEventContext("opened", pr))
	assert.Equal(t, Valid(), outcome)

	pr.Title = "1.2.3"
	outcome = e.validate(context.Background(), testEventContext("opened", pr))
	assert.Equal(t, Invalid(ReasonInvalidTitle), outcome)
}

func TestValidateStaleDate(t *testing.T) {
	cli := newFakeClient()
	e := newTestEngine(t, cli, PolicyOptions{})
	e.now = func() time.Time {
		return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	}

	pr := validPR()
	pr.Title = "20240101.1"
	outcome := e.validate(context.Background(), testEventContext("opened", pr))
	assert.Equal(t, Invalid(ReasonStaleDate), outcome)
}

func TestValidateSemverMode(t *testing.T) {
	cli := newFakeClient()
	e := newTestEngine(t, cli, PolicyOptions{ReleaseMode: ReleaseModeSemver})

	pr := validPR()
	pr.Title = "1.2.3"
	outcome := e.validate(context.Background(), testEventContext("opened", pr))
	assert.Equal(t, Valid(), outcome)

	for _, title := range []string{"1.2", "v1.2.3", "20240101.1", "release"} {
		pr.Title = title
		outcome = e.validate(context.Background(), testEventContext("opened", pr))
		assert.Equal(t, Invalid(ReasonInvalidTitle), outcome, "title %q", title)
	}
}

func TestValidateMissingBody(t *testing.T) {
	cli := newFakeClient()
	e := newTestEngine(t, cli, PolicyOptions{})

	pr := validPR()
	pr.Body = ""
	outcome := e.validate(context.Background(), testEventContext("opened", pr))
	assert.Equal(t, Invalid(ReasonMissingBody), outcome)

	pr.Body = "  \n\t "
	outcome = e.validate(context.Background(), testEventContext("opened", pr))
	assert.Equal(t, Invalid(ReasonMissingBody), outcome)
}

func TestValidateRuleOrdering(t *testing.T) {
	cli := newFakeClient()
	cli.tagExists = true
	e := newTestEngine(t, cli, PolicyOptions{})

	// Title failure wins over the empty body.
	pr := validPR()
	pr.Title = "nope"
	pr.Body = ""
	outcome := e.validate(context.Background(), testEventContext("opened", pr))
	assert.Equal(t, Invalid(ReasonInvalidTitle), outcome)

	// Body failure wins over the existing tag.
	pr = validPR()
	pr.Body = ""
	outcome = e.validate(context.Background(), testEventContext("opened", pr))
	assert.Equal(t, Invalid(ReasonMissingBody), outcome)
}

func TestValidateTagExists(t *testing.T) {
	cli := newFakeClient()
	cli.tagExists = true
	e := newTestEngine(t, cli, PolicyOptions{})

	outcome := e.validate(context.Background(), testEventContext("opened", validPR()))
	assert.Equal(t, Invalid(ReasonTagExists), outcome)
}

func TestValidateTagCheckError(t *testing.T) {
	cli := newFakeClient()
	cli.tagErr = fmt.Errorf("host unavailable")
	e := newTestEngine(t, cli, PolicyOptions{})

	outcome := e.validate(context.Background(), testEventContext("opened", validPR()))
	require.Equal(t, OutcomeError, outcome.State)
	assert.Contains(t, outcome.Reason, "host unavailable")
}

func TestPolicyOptionsComplete(t *testing.T) {
	options := PolicyOptions{}
	options.Complete()
	require.NoError(t, options.Validate())

	assert.Equal(t, "master", options.StableBranch)
	assert.Equal(t, "develop", options.DevelopmentBranch)
	assert.Equal(t, ReleaseModeDate, options.ReleaseMode)
	assert.Equal(t, 10, options.MergePollAttempts)
	assert.Equal(t, int64(3), options.MergePollIntervalSeconds)
	assert.NotEmpty(t, options.IssueKeyPattern)
}

func TestPolicyOptionsValidate(t *testing.T) {
	options := PolicyOptions{ReleaseMode: "calendar"}
	options.Complete()
	assert.Error(t, options.Validate())

	options = PolicyOptions{IssueKeyPattern: "("}
	options.Complete()
	assert.Error(t, options.Validate())
}
