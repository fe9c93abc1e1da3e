// Package browser is the automation surface the capture engine drives. The
// engine only sees the Driver interface; Chrome implements it with chromedp.
package browser

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrWindowClosed means the browser window or session is gone.
	ErrWindowClosed = errors.New("browser window closed")
	// ErrConnectionLost means the driver could not reach the browser.
	ErrConnectionLost = errors.New("browser connection lost")
	// ErrNotFound means no element matched before the wait ran out.
	ErrNotFound = errors.New("element not found")
)

// Driver is the subset of browser automation the capture engine needs.
type Driver interface {
	// CurrentLocation returns the URL of the active page.
	CurrentLocation(ctx context.Context) (string, error)
	// FindElement waits up to timeout for the first element matching the
	// XPath selector.
	FindElement(ctx context.Context, selector string, timeout time.Duration) (Element, error)
	// SendKeys types text into the element matching selector, replacing its
	// current value, and presses enter when submit is set.
	SendKeys(ctx context.Context, selector, text string, submit bool) error
}

// Element is a snapshot of a matched DOM node.
type Element interface {
	Attribute(name string) string
	Text(ctx context.Context) (string, error)
}

// IsSessionGone reports whether err ends the browser session.
func IsSessionGone(err error) bool {
	return errors.Is(err, ErrWindowClosed) || errors.Is(err, ErrConnectionLost)
}
