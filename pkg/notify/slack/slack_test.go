package slack

import (
	"context"
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSend(t *testing.T) {
	var got RequestPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := ioutil.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &got))
		w.WriteHeader(200)
	}))
	defer server.Close()

	notify := NewSlackNotify(SlackNotifyOptions{
		Url:     server.URL,
		Channel: "#releases",
	})
	require.NoError(t, notify.Send(context.Background(), "New release, repo: octo/widgets, tag: 20240101.1"))

	assert.Equal(t, "New release, repo: octo/widgets, tag: 20240101.1", got.Text)
	assert.Equal(t, "releasebot", got.Username)
	assert.Equal(t, "#releases", got.Channel)
}

func TestSendErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(500)
	}))
	defer server.Close()

	notify := NewSlackNotify(SlackNotifyOptions{Url: server.URL})
	assert.Error(t, notify.Send(context.Background(), "hello"))
}
