package notifier

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/slack-go/slack"
)

// SlackNotifier posts each notification as an attachment to every open Slack channel the bot has joined.
// The channel list is looked up on the first notification and reused afterwards.
type SlackNotifier struct {
	Logger *slog.Logger
	SlackSender
	targets []slack.Channel
	lock    sync.Mutex
}

// SlackSender contains the Slack API calls needed by the SlackNotifier. It is implemented by slack.Client.
type SlackSender interface {
	PostMessage(string, ...slack.MsgOption) (string, string, error)
	GetConversations(*slack.GetConversationsParameters) ([]slack.Channel, string, error)
	AuthTest() (*slack.AuthTestResponse, error)
}

var _ Notifier = &SlackNotifier{}

func (s *SlackNotifier) Notify(title, text string) {
	logger := s.logger()
	targets, err := s.channels()
	if err != nil {
		logger.Error("no slack channels to send winterize notifications to", "err", err)
		return
	}
	attachment := slack.MsgOptionAttachments(slack.Attachment{Color: "good", Title: title, Text: text})
	for _, target := range targets {
		logger.Debug("posting notification", "channel", target.Name, "title", title)
		if _, _, err = s.SlackSender.PostMessage(target.ID, attachment); err != nil {
			logger.Error("failed to post notification to slack", "channel", target.Name, "err", err)
		}
	}
}

// channels returns the channels to post to. A failed lookup is not cached, so the next notification tries again.
func (s *SlackNotifier) channels() ([]slack.Channel, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.targets == nil {
		if _, err := s.SlackSender.AuthTest(); err != nil {
			return nil, fmt.Errorf("slack auth: %w", err)
		}
		targets, err := s.memberChannels()
		if err != nil {
			return nil, fmt.Errorf("slack channels: %w", err)
		}
		s.targets = targets
	}
	return s.targets, nil
}

func (s *SlackNotifier) memberChannels() ([]slack.Channel, error) {
	members := make([]slack.Channel, 0)
	params := slack.GetConversationsParameters{Limit: 100}
	for {
		page, next, err := s.SlackSender.GetConversations(&params)
		if err != nil {
			return nil, err
		}
		for _, channel := range page {
			if channel.IsMember && !channel.IsArchived {
				members = append(members, channel)
			}
		}
		if next == "" {
			return members, nil
		}
		params.Cursor = next
	}
}

func (s *SlackNotifier) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
