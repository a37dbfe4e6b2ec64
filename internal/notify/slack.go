package notify

import (
	"context"
	"fmt"
	"os"

	"github.com/slack-go/slack"
	"github.com/spf13/viper"
)

// slackAPI is the subset of the slack client used here; narrowed for tests.
type slackAPI interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// SlackNotifier posts compile results to a Slack channel.
type SlackNotifier struct {
	api     slackAPI
	channel string
}

// NewSlackNotifier builds a notifier from viper configuration. It returns a
// Noop when Slack is disabled or the bot token is missing, so callers never
// need to branch.
func NewSlackNotifier() Notifier {
	if !viper.GetBool("notifications.slack.enabled") {
		return Noop{}
	}
	token := os.Getenv("SLACK_BOT_USER_TOKEN")
	if token == "" {
		return Noop{}
	}
	return &SlackNotifier{
		api:     slack.New(token),
		channel: viper.GetString("notifications.slack.channel"),
	}
}

// Notify posts the message when the event type is enabled in configuration.
func (s *SlackNotifier) Notify(ctx context.Context, eventType, message string) error {
	if !viper.GetBool("notifications.slack.events." + eventType) {
		return nil
	}
	_, _, err := s.api.PostMessageContext(ctx, s.channel, slack.MsgOptionText(message, false))
	if err != nil {
		return fmt.Errorf("failed to send slack notification: %w", err)
	}
	return nil
}
