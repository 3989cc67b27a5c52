package engine

import (
	"github.com/releasebot/releasebot/pkg/client"
	"github.com/releasebot/releasebot/pkg/event"
)

// Intent is what the engine should do with one pull request delivery.
type Intent int

const (
	IntentIgnore Intent = iota
	IntentValidate
	IntentRelease
	IntentSuggestNote
)

func (i Intent) String() string {
	switch i {
	case IntentValidate:
		return "validate"
	case IntentRelease:
		return "release"
	case IntentSuggestNote:
		return "suggest-note"
	default:
		return "ignore"
	}
}

// Classify maps an (action, base branch) pair to an intent. Unknown
// actions and unmonitored branches resolve to IntentIgnore; they are
// never an error.
func Classify(action string, pr client.PullRequest, options PolicyOptions) Intent {
	switch action {
	case event.ActionOpened, event.ActionReopened, event.ActionEdited, event.ActionSynchronize:
		if pr.BaseBranch == options.StableBranch {
			return IntentValidate
		}
	case event.ActionClosed:
		if !pr.Merged {
			return IntentIgnore
		}
		switch pr.BaseBranch {
		case options.StableBranch:
			return IntentRelease
		case options.DevelopmentBranch:
			return IntentSuggestNote
		}
	}
	return IntentIgnore
}
