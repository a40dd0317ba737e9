package notify

import (
	"fmt"
	"log/slog"

	"github.com/gen2brain/beeep"
)

const appName = "Lifelog"

// Sender delivers one desktop notification.
type Sender func(title, message string) error

func Info(title, message string) error {
	return beeep.Notify(title, message, "")
}

// Notifier sends desktop notices when enabled. Delivery failures are logged,
// never returned to the caller's flow as fatal.
type Notifier struct {
	enabled bool
	send    Sender
	log     *slog.Logger
}

func New(enabled bool, logger *slog.Logger) *Notifier {
	return NewWithSender(enabled, Info, logger)
}

func NewWithSender(enabled bool, send Sender, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{enabled: enabled, send: send, log: logger.With("component", "notify")}
}

// Enabled reports whether Notify will try to deliver anything.
func (n *Notifier) Enabled() bool { return n != nil && n.enabled }

// Notify reports whether a notice was actually delivered.
func (n *Notifier) Notify(title, message string) bool {
	if !n.enabled {
		return false
	}
	if err := n.send(title, message); err != nil {
		n.log.Warn("notification failed", "title", title, "error", err)
		return false
	}
	return true
}

func FormatDailyPrompt(today int) (string, string) {
	title := "Daily log reminder"
	if today == 0 {
		return title, "Nothing logged today yet. How was your day?"
	}
	return title, fmt.Sprintf("You logged %d %s today. Anything else worth keeping?", today, plural(today, "entry", "entries"))
}

// QuickAction titles a home page action notice with the app name.
func QuickAction(notice string) (string, string) {
	return appName, notice
}

func FormatMoodLogged(mood string) (string, string) {
	return appName, fmt.Sprintf("Mood logged: %s", mood)
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
