package slack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

type SlackNotifyOptions struct {
	Url            string `json:"url"`
	SenderUsername string `json:"sender_username"`
	Channel        string `json:"channel"`
}

type RequestPayload struct {
	Text     string `json:"text"`
	Username string `json:"username,omitempty"`
	Channel  string `json:"channel,omitempty"`
}

type SlackNotify struct {
	url      string
	username string
	channel  string
}

func NewSlackNotify(options SlackNotifyOptions) *SlackNotify {
	if options.SenderUsername == "" {
		options.SenderUsername = "releasebot"
	}
	return &SlackNotify{
		url:      options.Url,
		username: options.SenderUsername,
		channel:  options.Channel,
	}
}

func (notify *SlackNotify) Send(ctx context.Context, content string) error {
	payload := &RequestPayload{
		Text:     content,
		Username: notify.username,
		Channel:  notify.channel,
	}
	buf, _ := json.Marshal(payload)
	req, err := http.NewRequest("POST", notify.url, bytes.NewReader(buf))
	if err != nil {
		return err
	}
	req = req.WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return fmt.Errorf("slack response error code: %d", resp.StatusCode)
	}
	return nil
}
