package display

import (
	"sync"
	"time"

	"github.com/ZaguanLabs/furigo"
)

// DefaultOverlayDuration is how long an overlay stays up without a click.
const DefaultOverlayDuration = 7 * time.Second

// Overlay is a transient in-page message. Showing a new message replaces the
// current one.
type Overlay struct {
	duration time.Duration

	mu      sync.Mutex
	text    string
	visible bool
	gen     uint64
	timer   *time.Timer
}

// NewOverlay creates an Overlay that dismisses itself after d. A
// non-positive d uses DefaultOverlayDuration.
func NewOverlay(d time.Duration) *Overlay {
	if d <= 0 {
		d = DefaultOverlayDuration
	}
	return &Overlay{duration: d}
}

// Duration returns the auto-dismiss delay.
func (o *Overlay) Duration() time.Duration {
	return o.duration
}

// Show displays text and restarts the dismiss timer.
func (o *Overlay) Show(text string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.timer != nil {
		o.timer.Stop()
	}

	o.gen++
	gen := o.gen
	o.text = text
	o.visible = true
	o.timer = time.AfterFunc(o.duration, func() {
		o.expire(gen)
	})
}

func (o *Overlay) expire(gen uint64) {
	o.mu.Lock()
	defer o.mu.Unlock()

	// A newer message owns the overlay now
	if gen != o.gen {
		return
	}
	o.visible = false
	o.text = ""
}

// Dismiss removes the message immediately.
func (o *Overlay) Dismiss() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.timer != nil {
		o.timer.Stop()
		o.timer = nil
	}
	o.gen++
	o.visible = false
	o.text = ""
}

// Message returns the displayed text and whether the overlay is visible.
func (o *Overlay) Message() (string, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.text, o.visible
}

// Handle shows showTranslation messages and ignores everything else.
func (o *Overlay) Handle(msg furigo.Message) bool {
	if msg.Type != furigo.MessageShowTranslation {
		return false
	}
	o.Show(msg.Text)
	return true
}
