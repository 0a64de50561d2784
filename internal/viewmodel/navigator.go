package viewmodel

import "log/slog"

// NavAction is a navigation request raised by a view-model.
type NavAction interface {
	navAction() string
}

type Back struct{}

type Home struct{}

type ArticleSelected struct {
	URI   string
	Title string
}

type OpenURL struct {
	URL string
}

func (Back) navAction() string            { return "back" }
func (Home) navAction() string            { return "home" }
func (ArticleSelected) navAction() string { return "article_selected" }
func (OpenURL) navAction() string         { return "open_url" }

// Navigator decouples view-models from whatever performs navigation.
// Handle never blocks: with one action already pending, newer ones are dropped.
type Navigator struct {
	actions chan NavAction
	logger  *slog.Logger
}

func NewNavigator(logger *slog.Logger) *Navigator {
	return &Navigator{
		actions: make(chan NavAction, 1),
		logger:  logger.With("component", "navigator"),
	}
}

// Handle queues action and reports whether it was accepted.
func (n *Navigator) Handle(action NavAction) bool {
	select {
	case n.actions <- action:
		n.logger.Debug("navigation requested", "action", action.navAction())
		return true
	default:
		n.logger.Warn("navigation dropped", "action", action.navAction())
		return false
	}
}

// Actions is read by the navigation host.
func (n *Navigator) Actions() <-chan NavAction {
	return n.actions
}
