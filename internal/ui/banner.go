package ui

import (
	"sync"
	"time"
)

// BannerTimeout is how long an error banner stays up.
const BannerTimeout = 5 * time.Second

// Banner holds a dismissible error message that hides itself after a delay.
type Banner struct {
	mu      sync.Mutex
	msg     string
	visible bool
	timer   *time.Timer
	after   time.Duration
	gen     uint64
}

func NewBanner(after time.Duration) *Banner {
	if after <= 0 {
		after = BannerTimeout
	}
	return &Banner{after: after}
}

// Show displays msg, replacing any current message and restarting the timer.
func (b *Banner) Show(msg string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
	}
	b.msg = msg
	b.visible = true
	b.gen++
	gen := b.gen
	b.timer = time.AfterFunc(b.after, func() { b.expire(gen) })
}

func (b *Banner) expire(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.gen == gen {
		b.visible = false
		b.timer = nil
	}
}

// Dismiss hides the banner.
func (b *Banner) Dismiss() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	b.visible = false
}

// Current returns the message and whether it is still shown.
func (b *Banner) Current() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.msg, b.visible
}
