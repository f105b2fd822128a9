package display

import (
	"sync"
	"time"
)

// DefaultHighlightDelay is how long highlight-words changes are held
// back before being applied to the text model.
const DefaultHighlightDelay = 900 * time.Millisecond

// HighlightWords is one pending highlight request.
type HighlightWords struct {
	Words         string
	CaseSensitive bool
}

// HighlightThrottle debounces highlight-words updates. Applying
// highlight words re-renders the whole text model, so rapid keystrokes
// are coalesced: a change is applied only after the delay elapses, and
// a value that was changed and changed back to the last applied one is
// dropped without re-applying. Apply runs on a timer goroutine.
type HighlightThrottle struct {
	mu          sync.Mutex
	delay       time.Duration
	apply       func(HighlightWords)
	pending     *HighlightWords
	lastApplied *HighlightWords
	timer       *time.Timer
	running     bool
}

// NewHighlightThrottle creates a throttle that calls apply with each
// settled highlight request. A non-positive delay falls back to
// DefaultHighlightDelay.
func NewHighlightThrottle(delay time.Duration, apply func(HighlightWords)) *HighlightThrottle {
	if delay <= 0 {
		delay = DefaultHighlightDelay
	}
	return &HighlightThrottle{delay: delay, apply: apply}
}

// Set queues a highlight request. The ticking timer is not restarted
// by further calls; the newest request wins when it fires.
func (t *HighlightThrottle) Set(words string, caseSensitive bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.pending = &HighlightWords{Words: words, CaseSensitive: caseSensitive}
	if !t.running {
		t.running = true
		t.timer = time.AfterFunc(t.delay, t.tick)
	}
}

// tick fires on each delay boundary while requests keep arriving.
func (t *HighlightThrottle) tick() {
	t.mu.Lock()
	if t.pending == nil {
		// Nothing arrived during the last period; go idle.
		t.running = false
		t.mu.Unlock()
		return
	}
	if t.lastApplied != nil && *t.pending == *t.lastApplied {
		// Changed and changed back. Drop it and wait once more.
		t.pending = nil
		t.timer = time.AfterFunc(t.delay, t.tick)
		t.mu.Unlock()
		return
	}
	req := *t.pending
	t.lastApplied = t.pending
	t.pending = nil
	t.timer = time.AfterFunc(t.delay, t.tick)
	apply := t.apply
	t.mu.Unlock()
	apply(req)
}

// Stop cancels any pending request without applying it.
func (t *HighlightThrottle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		t.timer.Stop()
		t.running = false
	}
	t.pending = nil
}
