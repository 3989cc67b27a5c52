package releasebot

import (
	"context"
	"encoding/json"
	"time"

	"github.com/releasebot/releasebot/engine"
	"github.com/releasebot/releasebot/pkg/client"
	"github.com/releasebot/releasebot/pkg/event"
	"github.com/releasebot/releasebot/pkg/httputil"
	"github.com/releasebot/releasebot/pkg/log"

	"github.com/google/go-github/github"
)

var (
	ErrEventPayload   = httputil.NewHttpError(400, "error event payload")
	ErrNoSupportEvent = httputil.NewHttpError(400, "no support event")
	ErrNoOwnerRepo    = httputil.NewHttpError(400, "event no owner and repo info")
)

// executeTimeout bounds one engine cycle, merge commit poll included.
const executeTimeout = 5 * time.Minute

type releaseEngine interface {
	Classify(ectx *event.EventContext) engine.Intent
	Execute(ctx context.Context, ectx *event.EventContext, intent engine.Intent) error
}

type EventHandler struct {
	eng releaseEngine
}

func NewEventHandler(eng releaseEngine) *EventHandler {
	return &EventHandler{
		eng: eng,
	}
}

// HandleEvent decodes one delivery, classifies it and runs matching
// cycles on their own goroutine, one per event. The webhook reply never
// waits on host API latency; duplicate or out-of-order deliveries are
// expected and handled by the engine's idempotence, not here.
func (eh *EventHandler) HandleEvent(evType string, content []byte) error {
	switch evType {
	case event.EvPing:
		return nil
	case event.EvPullRequest:
	default:
		return ErrNoSupportEvent
	}

	payload := &github.PullRequestEvent{}
	if err := json.Unmarshal(content, payload); err != nil {
		return ErrEventPayload
	}

	owner := payload.GetRepo().GetOwner().GetLogin()
	repo := payload.GetRepo().GetName()
	if owner == "" || repo == "" {
		return ErrNoOwnerRepo
	}

	ectx := &event.EventContext{
		Action:      payload.GetAction(),
		Owner:       owner,
		Repo:        repo,
		PullRequest: client.NewPullRequest(payload.GetPullRequest()),
	}

	intent := eh.eng.Classify(ectx)
	log.Info("[%s/%s#%d] action [%s] intent [%s]",
		owner, repo, ectx.PullRequest.Number, ectx.Action, intent)
	if intent == engine.IntentIgnore {
		return nil
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), executeTimeout)
		defer cancel()
		if err := eh.eng.Execute(ctx, ectx, intent); err != nil {
			log.Warn("[%s/%s#%d] %s cycle error: %v",
				owner, repo, ectx.PullRequest.Number, intent, err)
		}
	}()
	return nil
}
