package ui

import (
	"log/slog"

	"github.com/ramanasai/lifelog/internal/notify"
)

// QuickAction is one button of the home page grid.
type QuickAction string

const (
	ActionQuick   QuickAction = "quick"
	ActionLong    QuickAction = "long"
	ActionPicture QuickAction = "picture"
	ActionVideo   QuickAction = "video"
)

// QuickActions in grid order: left to right, top to bottom.
var QuickActions = []QuickAction{ActionQuick, ActionLong, ActionPicture, ActionVideo}

var quickActionInfo = map[QuickAction]struct {
	label, key, notice string
}{
	ActionQuick:   {"Quick entry", "w", "Quick entry: open fast entry (placeholder)"},
	ActionLong:    {"Long entry", "l", "Long entry: open detailed editor (placeholder)"},
	ActionPicture: {"Add picture", "p", "Add picture: open camera/gallery (placeholder)"},
	ActionVideo:   {"Add video", "v", "Add video: open recorder (placeholder)"},
}

func (a QuickAction) Label() string { return quickActionInfo[a].label }

// Key is the home page shortcut for a.
func (a QuickAction) Key() string { return quickActionInfo[a].key }

// Dispatch runs a quick action and returns the notice to show. Unknown
// actions are logged and report false.
func Dispatch(a QuickAction, n *notify.Notifier, logger *slog.Logger) (string, bool) {
	info, ok := quickActionInfo[a]
	if !ok {
		logger.Info("unknown quick action", "action", string(a))
		return "", false
	}
	if n != nil {
		n.Notify(notify.QuickAction(info.notice))
	}
	return info.notice, true
}
