package releasebot

import (
	"context"
	"io/ioutil"
	"net/http"

	"github.com/releasebot/releasebot/engine"
	"github.com/releasebot/releasebot/pkg/client"
	"github.com/releasebot/releasebot/pkg/httputil"
	"github.com/releasebot/releasebot/pkg/log"
	"github.com/releasebot/releasebot/pkg/notify"

	"github.com/google/go-github/github"
	"golang.org/x/oauth2"
)

type Config struct {
	BindAddr          string `json:"bind_addr"`
	LogLevel          string `json:"log_level"`
	LogFile           string `json:"log_file"`
	LogMaxDays        int64  `json:"log_max_days"`
	GithubAccessToken string `json:"github_access_token"`
	WebhookSecret     string `json:"webhook_secret"`

	Policy engine.PolicyOptions  `json:"policy"`
	Notify *notify.NotifyOptions `json:"notify"`
}

type Service struct {
	Config

	eventHandler *EventHandler
}

func NewService(cfg Config) (*Service, error) {
	if cfg.LogMaxDays <= 0 {
		cfg.LogMaxDays = 3
	}
	if cfg.LogFile == "" {
		log.InitLog("console", "", cfg.LogLevel, cfg.LogMaxDays)
	} else {
		log.InitLog("file", cfg.LogFile, cfg.LogLevel, cfg.LogMaxDays)
	}

	svc := &Service{
		Config: cfg,
	}

	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: cfg.GithubAccessToken},
	)
	tc := oauth2.NewClient(context.Background(), ts)
	cli := client.NewGithubClient(github.NewClient(tc))

	eng, err := engine.NewEngine(cli, notify.NewNotifyController(), cfg.Notify, cfg.Policy)
	if err != nil {
		return nil, err
	}

	log.Info("release policy: stable branch [%s], development branch [%s], mode [%s], approve releases [%v]",
		cfg.Policy.StableBranch, cfg.Policy.DevelopmentBranch, cfg.Policy.ReleaseMode, cfg.Policy.ApproveReleases)

	svc.eventHandler = NewEventHandler(eng)
	return svc, nil
}

func (svc *Service) Run() error {
	log.Info("releasebot listen on %s", svc.BindAddr)
	err := http.ListenAndServe(svc.BindAddr, http.HandlerFunc(svc.Handler))
	return err
}

func (svc *Service) Handler(w http.ResponseWriter, r *http.Request) {
	eventType := r.Header.Get("X-Github-Event")
	if eventType == "" {
		httputil.ReplyError(w, httputil.NewHttpError(400, "unsupport event"))
		return
	}

	log.Debug("event [%s], id [%s]", eventType, r.Header.Get("X-GitHub-Delivery"))

	var (
		content []byte
		err     error
	)
	if svc.WebhookSecret != "" {
		content, err = github.ValidatePayload(r, []byte(svc.WebhookSecret))
		if err != nil {
			log.Warn("validate payload signature error: %v", err)
			httputil.ReplyError(w, httputil.NewHttpError(403, "invalid signature"))
			return
		}
	} else {
		content, err = ioutil.ReadAll(r.Body)
		if err != nil {
			log.Warn("read request body error: %v", err)
			httputil.ReplyError(w, httputil.NewHttpError(400, "read request error"))
			return
		}
	}

	err = svc.eventHandler.HandleEvent(eventType, content)
	if err != nil {
		log.Warn("handle event error: %v", err)
		httputil.ReplyError(w, err)
		return
	}

	w.WriteHeader(200)
}
