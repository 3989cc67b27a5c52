package engine

import (
	"context"
	"strings"

	"github.com/releasebot/releasebot/pkg/event"
)

// Failure reasons reported back to the pull request author.
const (
	ReasonInvalidTitle = "invalid release title"
	ReasonStaleDate    = "release date not current"
	ReasonMissingBody  = "missing description"
	ReasonTagExists    = "tag exists"
)

type OutcomeState int

const (
	OutcomeValid OutcomeState = iota
	OutcomeInvalid
	OutcomeError
)

// Outcome is the result of one validation run. Invalid means the pull
// request violates release policy; Error means validation itself could
// not complete and must not be confused with a policy verdict.
type Outcome struct {
	State  OutcomeState
	Reason string
}

func Valid() Outcome {
	return Outcome{State: OutcomeValid}
}

func Invalid(reason string) Outcome {
	return Outcome{State: OutcomeInvalid, Reason: reason}
}

func ValidationError(reason string) Outcome {
	return Outcome{State: OutcomeError, Reason: reason}
}

// validate runs the ordered rule set and stops at the first rule that
// does not pass.
func (e *Engine) validate(ctx context.Context, ectx *event.EventContext) Outcome {
	pr := ectx.PullRequest

	if outcome := e.checkTitle(pr.Title); outcome.State != OutcomeValid {
		return outcome
	}

	if strings.TrimSpace(pr.Body) == "" {
		return Invalid(ReasonMissingBody)
	}

	exists, err := e.cli.GetTagExists(ctx, ectx.Owner, ectx.Repo, pr.Title)
	if err != nil {
		return ValidationError(err.Error())
	}
	if exists {
		return Invalid(ReasonTagExists)
	}

	return Valid()
}

// checkTitle verifies the title against the configured release pattern.
// In date mode the embedded date must be the current UTC date; a
// syntactically correct but stale date gets its own reason.
func (e *Engine) checkTitle(title string) Outcome {
	switch e.options.ReleaseMode {
	case ReleaseModeSemver:
		if !semverTitlePattern.MatchString(title) {
			return Invalid(ReasonInvalidTitle)
		}
	default:
		m := dateTitlePattern.FindStringSubmatch(title)
		if m == nil {
			return Invalid(ReasonInvalidTitle)
		}
		if m[1] != e.now().UTC().Format("20060102") {
			return Invalid(ReasonStaleDate)
		}
	}
	return Valid()
}
