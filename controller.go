package furigo

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Notifier delivers pushes to listening display surfaces. Delivery is best
// effort: implementations return ErrNoListener when nobody is listening.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}

// Controller handles context-menu activations and owns the latest result.
//
// Only the controller writes the result; display surfaces read it through
// Latest (pull) or receive it through the Notifier (push).
type Controller struct {
	translator *Translator
	notifier   Notifier
	overlay    bool
	logger     zerolog.Logger

	mu     sync.RWMutex
	latest TranslationResult
}

// ControllerOption is a functional option for configuring the Controller.
type ControllerOption func(*Controller)

// WithNotifier sets the push channel to display surfaces.
func WithNotifier(n Notifier) ControllerOption {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithOverlay enables the showTranslation echo to page overlays.
func WithOverlay(enabled bool) ControllerOption {
	return func(c *Controller) {
		c.overlay = enabled
	}
}

// WithControllerLogger sets the controller's logger.
func WithControllerLogger(logger zerolog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// NewController creates a Controller that translates with t.
func NewController(t *Translator, opts ...ControllerOption) *Controller {
	c := &Controller{
		translator: t,
		logger:     zerolog.Nop(),
		latest:     InitialResult(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Request is an accepted menu activation waiting for its translation.
type Request struct {
	Text      string
	Direction Direction
}

// Menu returns the entries the controller responds to.
func (c *Controller) Menu() []MenuItem {
	return Menu()
}

// Latest returns the current result. It answers getTranslation.
func (c *Controller) Latest() TranslationResult {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest
}

// Respond answers a message sent by a display surface. Only getTranslation
// has a reply.
func (c *Controller) Respond(msg Message) (TranslationResult, bool) {
	if msg.Type != MessageGetTranslation {
		return TranslationResult{}, false
	}
	return c.Latest(), true
}

func (c *Controller) store(r TranslationResult) {
	c.mu.Lock()
	c.latest = r
	c.mu.Unlock()
}

// Begin accepts a menu activation: it validates the entry and the selection,
// replaces the latest result with the loading placeholder and asks display
// surfaces to open.
func (c *Controller) Begin(ctx context.Context, click MenuClick) (*Request, error) {
	d, ok := DirectionForMenuItem(click.MenuItemID)
	if !ok {
		return nil, ErrUnknownMenuItem
	}

	text := strings.TrimSpace(click.SelectionText)
	if text == "" {
		return nil, ErrEmptySelection
	}

	c.store(LoadingResult(d))
	c.notify(ctx, Message{Type: MessageOpenPopup})

	c.logger.Info().
		Str("direction", d.String()).
		Str("selection", SelectionDigest(text)).
		Int("length", len([]rune(text))).
		Msg("translation requested")

	return &Request{Text: text, Direction: d}, nil
}

// Finish runs the translation for req, stores the classified result and pushes
// it to listening surfaces.
func (c *Controller) Finish(ctx context.Context, req *Request) TranslationResult {
	result := Classify(c.translator.Translate(ctx, req.Text, req.Direction))
	c.store(result)

	c.notify(ctx, ResultMessage(result))
	if c.overlay {
		c.notify(ctx, Message{Type: MessageShowTranslation, Text: result.PlainText})
	}

	c.logger.Info().
		Str("direction", req.Direction.String()).
		Bool("is_error", result.IsError).
		Msg("translation finished")

	return result
}

// HandleClick runs Begin and Finish in sequence.
func (c *Controller) HandleClick(ctx context.Context, click MenuClick) (TranslationResult, error) {
	req, err := c.Begin(ctx, click)
	if err != nil {
		return TranslationResult{}, err
	}
	return c.Finish(ctx, req), nil
}

// notify pushes msg; failures are expected and never surfaced.
func (c *Controller) notify(ctx context.Context, msg Message) {
	if c.notifier == nil {
		return
	}
	if err := c.notifier.Notify(ctx, msg); err != nil {
		event := c.logger.Warn()
		if errors.Is(err, ErrNoListener) {
			event = c.logger.Debug()
		}
		event.Err(err).Str("type", msg.Type).Msg("push not delivered")
	}
}
