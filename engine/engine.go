package engine

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/releasebot/releasebot/pkg/client"
	"github.com/releasebot/releasebot/pkg/event"
	"github.com/releasebot/releasebot/pkg/log"
	"github.com/releasebot/releasebot/pkg/notify"
)

// ErrMergeCommitUnavailable is returned by the release cycle when the
// host never populates the merge commit SHA within the poll budget.
var ErrMergeCommitUnavailable = errors.New("merge commit unavailable")

const (
	descValidating   = "Validating release"
	descValidRelease = "Valid release"
)

// Engine reconciles the host's commit-status and review state with the
// outcome of the release policy. It keeps no state of its own: the
// host's pull request, status and review resources are the source of
// truth, and every cycle is safe to repeat.
type Engine struct {
	cli           client.ClientInterface
	notifier      notify.NotifyInterface
	notifyOptions *notify.NotifyOptions
	options       PolicyOptions
	issueKeyRe    *regexp.Regexp

	now func() time.Time
}

func NewEngine(cli client.ClientInterface, notifier notify.NotifyInterface,
	notifyOptions *notify.NotifyOptions, options PolicyOptions) (*Engine, error) {

	options.Complete()
	if err := options.Validate(); err != nil {
		return nil, err
	}

	re, err := regexp.Compile(options.IssueKeyPattern)
	if err != nil {
		return nil, fmt.Errorf("issue key pattern error: %v", err)
	}

	return &Engine{
		cli:           cli,
		notifier:      notifier,
		notifyOptions: notifyOptions,
		options:       options,
		issueKeyRe:    re,
		now:           time.Now,
	}, nil
}

func (e *Engine) Classify(ectx *event.EventContext) Intent {
	return Classify(ectx.Action, ectx.PullRequest, e.options)
}

// Execute runs one cycle for the given intent. It never panics across
// this boundary: unexpected conditions are reported as an error commit
// status and returned, so a single bad event can't take the process
// down.
func (e *Engine) Execute(ctx context.Context, ectx *event.EventContext, intent Intent) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cycle [%s] panic: %v", intent, r)
			log.Error("[%s/%s#%d] %v", ectx.Owner, ectx.Repo, ectx.PullRequest.Number, err)
			if ectx.PullRequest.HeadSHA != "" {
				if statusErr := e.setStatus(ctx, ectx, client.StatusError, "internal error"); statusErr != nil {
					log.Warn("[%s/%s#%d] set error status error: %v",
						ectx.Owner, ectx.Repo, ectx.PullRequest.Number, statusErr)
				}
			}
		}
	}()

	switch intent {
	case IntentValidate:
		return e.runValidateCycle(ctx, ectx)
	case IntentRelease:
		return e.runReleaseCycle(ctx, ectx)
	case IntentSuggestNote:
		return e.runSuggestNoteCycle(ctx, ectx)
	default:
		log.Debug("[%s/%s#%d] action [%s] ignored",
			ectx.Owner, ectx.Repo, ectx.PullRequest.Number, ectx.Action)
		return nil
	}
}

func (e *Engine) runValidateCycle(ctx context.Context, ectx *event.EventContext) error {
	number := ectx.PullRequest.Number

	if !e.options.SkipPendingStatus {
		// Not load-bearing: validation proceeds even if this write fails.
		if err := e.setStatus(ctx, ectx, client.StatusPending, descValidating); err != nil {
			log.Warn("[%s/%s#%d] set pending status error: %v", ectx.Owner, ectx.Repo, number, err)
		}
	}

	outcome := e.validate(ctx, ectx)
	switch outcome.State {
	case OutcomeValid:
		if err := e.setStatus(ctx, ectx, client.StatusSuccess, descValidRelease); err != nil {
			return err
		}
		return e.reconcileReview(ctx, ectx)

	case OutcomeInvalid:
		log.Info("[%s/%s#%d] invalid release candidate: %s", ectx.Owner, ectx.Repo, number, outcome.Reason)
		if err := e.setStatus(ctx, ectx, client.StatusFailure, outcome.Reason); err != nil {
			return err
		}
		reviewEvent := client.ReviewEventComment
		if e.options.ApproveReleases {
			reviewEvent = client.ReviewEventRequestChanges
		}
		// Invalid outcomes are reported fresh every time: the reason
		// may have changed since the last run.
		return e.cli.DoOperation(ctx, &client.CreateReviewOperation{
			Owner:  ectx.Owner,
			Repo:   ectx.Repo,
			Number: number,
			Event:  reviewEvent,
			Body:   outcome.Reason,
		})

	default:
		log.Error("[%s/%s#%d] validation error: %s", ectx.Owner, ectx.Repo, number, outcome.Reason)
		if err := e.setStatus(ctx, ectx, client.StatusError, outcome.Reason); err != nil {
			return err
		}
		return fmt.Errorf("validation error: %s", outcome.Reason)
	}
}

// reconcileReview makes the bot's review state converge on "approved"
// without ever stacking duplicate reviews. The most recent review
// authored by the bot governs: if it exists and is not a change
// request, there is nothing to do.
func (e *Engine) reconcileReview(ctx context.Context, ectx *event.EventContext) error {
	number := ectx.PullRequest.Number

	login, err := e.cli.GetSelfLogin(ctx)
	if err != nil {
		return err
	}

	reviews, err := e.cli.ListReviews(ctx, ectx.Owner, ectx.Repo, number)
	if err != nil {
		return err
	}

	if last, ok := latestReviewBy(reviews, login); ok && last.State != client.ReviewStateChangesRequested {
		log.Debug("[%s/%s#%d] own review already present (%s), skip",
			ectx.Owner, ectx.Repo, number, last.State)
		return nil
	}

	reviewEvent := client.ReviewEventComment
	if e.options.ApproveReleases {
		reviewEvent = client.ReviewEventApprove
	}
	return e.cli.DoOperation(ctx, &client.CreateReviewOperation{
		Owner:  ectx.Owner,
		Repo:   ectx.Repo,
		Number: number,
		Event:  reviewEvent,
		Body:   descValidRelease,
	})
}

// latestReviewBy returns the most recent review authored by login.
// Reviews arrive in submission order, so on equal timestamps the later
// entry wins.
func latestReviewBy(reviews []client.Review, login string) (client.Review, bool) {
	var out client.Review
	found := false
	for _, r := range reviews {
		if r.User != login {
			continue
		}
		if !found || !r.SubmittedAt.Before(out.SubmittedAt) {
			out = r
			found = true
		}
	}
	return out, found
}

func (e *Engine) runReleaseCycle(ctx context.Context, ectx *event.EventContext) error {
	pr := ectx.PullRequest

	// Last-minute guard: the PR may have been merged before validation
	// finished. A release must never be cut from a title that fails
	// policy.
	if outcome := e.checkTitle(pr.Title); outcome.State != OutcomeValid {
		return fmt.Errorf("refuse to release [%s/%s#%d]: %s", ectx.Owner, ectx.Repo, pr.Number, outcome.Reason)
	}

	sha := pr.MergeCommitSHA
	if sha == "" {
		var err error
		sha, err = e.waitMergeCommit(ctx, ectx)
		if err != nil {
			return err
		}
	}

	op := BuildReleasePayload(ectx.Owner, ectx.Repo, pr, sha)
	if err := e.cli.DoOperation(ctx, op); err != nil {
		return err
	}
	log.Info("[%s/%s#%d] release [%s] created from [%s]", ectx.Owner, ectx.Repo, pr.Number, pr.Title, sha)

	if e.notifier != nil {
		content := fmt.Sprintf("New release, repo: %s/%s, tag: %s", ectx.Owner, ectx.Repo, pr.Title)
		if err := e.notifier.Send(ctx, e.notifyOptions, content); err != nil {
			log.Warn("[%s/%s#%d] notify release error: %v", ectx.Owner, ectx.Repo, pr.Number, err)
		}
	}
	return nil
}

// waitMergeCommit polls the pull request until the host populates the
// merge commit SHA. The budget is bounded: attempts * interval, and the
// wait honors context cancellation.
func (e *Engine) waitMergeCommit(ctx context.Context, ectx *event.EventContext) (string, error) {
	interval := time.Duration(e.options.MergePollIntervalSeconds) * time.Second
	for i := 0; i < e.options.MergePollAttempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(interval):
			}
		}

		pr, err := e.cli.GetPullRequest(ctx, ectx.Owner, ectx.Repo, ectx.PullRequest.Number)
		if err != nil {
			return "", err
		}
		if pr.MergeCommitSHA != "" {
			return pr.MergeCommitSHA, nil
		}
		log.Debug("[%s/%s#%d] merge commit not yet available, attempt %d/%d",
			ectx.Owner, ectx.Repo, ectx.PullRequest.Number, i+1, e.options.MergePollAttempts)
	}
	return "", ErrMergeCommitUnavailable
}

func (e *Engine) runSuggestNoteCycle(ctx context.Context, ectx *event.EventContext) error {
	pr := ectx.PullRequest

	if e.options.IssueBrowseURL == "" {
		log.Debug("[%s/%s#%d] no issue browse url configured, skip note suggestion",
			ectx.Owner, ectx.Repo, pr.Number)
		return nil
	}

	m := e.issueKeyRe.FindStringSubmatch(strings.TrimSpace(pr.Title))
	if len(m) < 3 {
		log.Debug("[%s/%s#%d] title has no issue key, skip note suggestion",
			ectx.Owner, ectx.Repo, pr.Number)
		return nil
	}

	return e.cli.DoOperation(ctx, &client.CreateReviewOperation{
		Owner:  ectx.Owner,
		Repo:   ectx.Repo,
		Number: pr.Number,
		Event:  client.ReviewEventComment,
		Body:   BuildNoteComment(m[1], m[2], e.options.IssueBrowseURL),
	})
}

func (e *Engine) setStatus(ctx context.Context, ectx *event.EventContext, state, description string) error {
	return e.cli.DoOperation(ctx, &client.SetCommitStatusOperation{
		Owner:       ectx.Owner,
		Repo:        ectx.Repo,
		SHA:         ectx.PullRequest.HeadSHA,
		State:       state,
		Description: description,
	})
}
