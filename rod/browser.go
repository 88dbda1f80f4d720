package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is how many pages a browser renders before it is replaced.
const DefaultMaxPages = 75

// browser owns a headless Chrome process and replaces it after a fixed
// number of pages. Long export runs otherwise grow Chrome's memory without
// bound.
type browser struct {
	mu       sync.Mutex
	current  *rod.Browser
	launcher *launcher.Launcher
	pages    int
	maxPages int
	closed   bool
}

func newBrowser(maxPages int) (*browser, error) {
	b := &browser{maxPages: maxPages}
	if err := b.launch(); err != nil {
		return nil, err
	}
	return b, nil
}

// acquire returns the browser to render the next page on, replacing the
// current one first when it has reached its page budget. A failed
// replacement keeps the old browser.
func (b *browser) acquire() (*rod.Browser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil, fmt.Errorf("browser closed")
	}
	if b.pages >= b.maxPages {
		old, oldLauncher := b.current, b.launcher
		if err := b.launch(); err == nil {
			_ = old.Close()
			oldLauncher.Kill()
			b.pages = 0
		} else {
			b.current, b.launcher = old, oldLauncher
		}
	}
	b.pages++
	return b.current, nil
}

// launch starts Chrome. Must be called with mu held or before b is shared.
func (b *browser) launch() error {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}

	rb := rod.New().ControlURL(u)
	if err := rb.Connect(); err != nil {
		l.Kill()
		return fmt.Errorf("connecting to browser: %w", err)
	}

	b.current = rb
	b.launcher = l
	return nil
}

// close shuts Chrome down. Safe to call more than once.
func (b *browser) close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	err := b.current.Close()
	b.launcher.Kill()
	return err
}
