package notifier_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/clambin/rachio-tools/internal/notifier"
	"github.com/clambin/rachio-tools/internal/notifier/mocks"
	"github.com/slack-go/slack"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestNotifiers_Notify(t *testing.T) {
	var channels []slack.Channel
	require.NoError(t, json.Unmarshal([]byte(`[
	{ "id": "C1", "name": "general", "is_member": true },
	{ "id": "C2", "name": "random", "is_member": false },
	{ "id": "C3", "name": "old", "is_member": true, "is_archived": true }
]`), &channels))

	s := mocks.NewSlackSender(t)
	s.EXPECT().AuthTest().Return(&slack.AuthTestResponse{UserID: "U1"}, nil).Once()
	s.EXPECT().GetConversations(mock.Anything).Return(channels[:2], "next", nil).Once()
	s.EXPECT().GetConversations(mock.Anything).Return(channels[2:], "", nil).Once()
	s.EXPECT().PostMessage("C1", mock.Anything).Return("C1", "1", nil).Twice()

	var out bytes.Buffer
	n := notifier.Notifiers{
		&notifier.SLogNotifier{Logger: slog.New(slog.NewTextHandler(&out, &slog.HandlerOptions{ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}}))},
		&notifier.SlackNotifier{SlackSender: s, Logger: slog.New(slog.DiscardHandler)},
	}

	n.Notify("winterize started", "2 zones")
	n.Notify("winterize complete", "")

	assert.Equal(t, `level=INFO msg="winterize started" details="2 zones"
level=INFO msg="winterize complete" details=""
`, out.String())
}

func TestSlackNotifier_Failure(t *testing.T) {
	s := mocks.NewSlackSender(t)
	s.EXPECT().AuthTest().Return(nil, errors.New("invalid_auth")).Twice()

	n := notifier.SlackNotifier{SlackSender: s, Logger: slog.New(slog.DiscardHandler)}
	n.Notify("foo", "bar")
	n.Notify("foo", "bar")
}

func TestSlackNotifier_ChannelLookupRetried(t *testing.T) {
	s := mocks.NewSlackSender(t)
	s.EXPECT().AuthTest().Return(&slack.AuthTestResponse{UserID: "U1"}, nil).Twice()
	s.EXPECT().GetConversations(mock.Anything).Return(nil, "", errors.New("ratelimited")).Once()
	s.EXPECT().GetConversations(mock.MatchedBy(func(p *slack.GetConversationsParameters) bool { return p.Cursor == "" })).
		Return([]slack.Channel{}, "page-2", nil).Once()
	s.EXPECT().GetConversations(mock.MatchedBy(func(p *slack.GetConversationsParameters) bool { return p.Cursor == "page-2" })).
		Return(nil, "", nil).Once()

	// no Logger
	n := notifier.SlackNotifier{SlackSender: s}
	n.Notify("foo", "bar")
	// the failed lookup isn't cached. no channels joined, so nothing is posted
	n.Notify("foo", "bar")
	n.Notify("foo", "bar")
}
