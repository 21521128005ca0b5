// Package notifier sends progress messages to the user: to the log and, optionally, to Slack.
package notifier

type Notifier interface {
	Notify(title, text string)
}

type Notifiers []Notifier

func (n Notifiers) Notify(title, text string) {
	for _, l := range n {
		l.Notify(title, text)
	}
}
