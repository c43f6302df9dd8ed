package rod

import (
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
)

// DefaultMaxPages is how many pages a browser serves before it is replaced.
const DefaultMaxPages = 75

// BrowserManager owns a headless Chrome and replaces it after a number of
// pages, since a long-lived Chrome keeps growing in memory.
//
// BrowserManager is safe for concurrent use.
type BrowserManager struct {
	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
	pages    int64
	maxPages int64
	closed   bool
}

// ManagerOption configures a BrowserManager.
type ManagerOption func(*BrowserManager)

// WithMaxPages sets how many pages are served before the browser is replaced.
func WithMaxPages(n int64) ManagerOption {
	return func(bm *BrowserManager) {
		bm.maxPages = n
	}
}

// NewBrowserManager launches a headless browser. Close must be called when
// the BrowserManager is no longer needed.
func NewBrowserManager(opts ...ManagerOption) (*BrowserManager, error) {
	bm := &BrowserManager{maxPages: DefaultMaxPages}
	for _, opt := range opts {
		opt(bm)
	}

	browser, l, err := launch()
	if err != nil {
		return nil, err
	}
	bm.browser, bm.launcher = browser, l
	return bm, nil
}

// Browser returns the current browser, replacing it first when it has
// served maxPages pages. If a replacement cannot be launched the current
// browser is kept.
func (bm *BrowserManager) Browser() *rod.Browser {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.maxPages > 0 && bm.pages >= bm.maxPages && !bm.closed {
		if browser, l, err := launch(); err == nil {
			_ = bm.browser.Close()
			bm.launcher.Kill()
			bm.browser, bm.launcher = browser, l
			bm.pages = 0
		}
	}
	return bm.browser
}

// IncrementPageCount records that a page has been served.
func (bm *BrowserManager) IncrementPageCount() {
	bm.mu.Lock()
	bm.pages++
	bm.mu.Unlock()
}

// Close shuts down the browser and its process. Close is safe to call
// multiple times.
func (bm *BrowserManager) Close() error {
	bm.mu.Lock()
	defer bm.mu.Unlock()

	if bm.closed {
		return nil
	}
	bm.closed = true

	err := bm.browser.Close()
	bm.launcher.Kill()
	return err
}

// LauncherPID returns the process ID of the browser launcher, or 0 once
// the manager is closed.
func (bm *BrowserManager) LauncherPID() int {
	bm.mu.Lock()
	defer bm.mu.Unlock()
	if bm.closed {
		return 0
	}
	return bm.launcher.PID()
}

// launch starts Chrome with flags that keep background pages responsive
// inside containers.
func launch() (*rod.Browser, *launcher.Launcher, error) {
	l := launcher.New().
		Set("disable-background-timer-throttling").
		Set("disable-backgrounding-occluded-windows").
		Set("disable-renderer-backgrounding").
		Set("disable-dev-shm-usage").
		Set("disable-hang-monitor").
		Leakless(true).
		Headless(true)

	u, err := l.Launch()
	if err != nil {
		return nil, nil, fmt.Errorf("launching browser: %w", err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, nil, fmt.Errorf("connecting to browser: %w", err)
	}
	return browser, l, nil
}
