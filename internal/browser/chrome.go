package browser

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/inspector"
	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
)

// Options configures the Chrome instance started by Launch.
type Options struct {
	StartURL  string
	Headless  bool
	UserAgent string
	Width     int
	Height    int
	// Timeout bounds waits that have no explicit timeout, such as SendKeys.
	Timeout time.Duration
}

// Chrome is a Driver backed by a single chromedp tab.
type Chrome struct {
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	timeout     time.Duration
	closed      atomic.Bool
}

// Launch starts Chrome and opens opts.StartURL in its first tab.
func Launch(ctx context.Context, opts Options) (*Chrome, error) {
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", opts.Headless),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.DisableGPU,
	)
	if opts.UserAgent != "" {
		allocOpts = append(allocOpts, chromedp.UserAgent(opts.UserAgent))
	}
	if opts.Width > 0 && opts.Height > 0 {
		allocOpts = append(allocOpts, chromedp.WindowSize(opts.Width, opts.Height))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)

	c := &Chrome{
		ctx:         tabCtx,
		cancel:      tabCancel,
		allocCancel: allocCancel,
		timeout:     opts.Timeout,
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
	}

	chromedp.ListenTarget(tabCtx, func(ev interface{}) {
		if _, ok := ev.(*inspector.EventDetached); ok {
			log.Debug("Browser target detached")
			c.closed.Store(true)
		}
	})

	if err := chromedp.Run(tabCtx, chromedp.Navigate(opts.StartURL)); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to open %s: %w", opts.StartURL, err)
	}
	return c, nil
}

// Close shuts down the tab and the browser process.
func (c *Chrome) Close() {
	c.cancel()
	c.allocCancel()
}

// CurrentLocation implements Driver.
func (c *Chrome) CurrentLocation(ctx context.Context) (string, error) {
	runCtx, cancel := c.runContext(ctx, c.timeout)
	defer cancel()

	var location string
	if err := chromedp.Run(runCtx, chromedp.Location(&location)); err != nil {
		return "", c.classify(err)
	}
	if location == "" {
		return "", ErrWindowClosed
	}
	return location, nil
}

// FindElement implements Driver.
func (c *Chrome) FindElement(ctx context.Context, selector string, timeout time.Duration) (Element, error) {
	runCtx, cancel := c.runContext(ctx, timeout)
	defer cancel()

	var nodes []*cdp.Node
	err := chromedp.Run(runCtx, chromedp.Nodes(selector, &nodes, chromedp.BySearch))
	if err != nil {
		if c.gone() || ctx.Err() != nil {
			return nil, c.classify(err)
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, selector)
		}
		return nil, c.classify(err)
	}
	if len(nodes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, selector)
	}
	return &chromeElement{chrome: c, node: nodes[0]}, nil
}

// SendKeys implements Driver.
func (c *Chrome) SendKeys(ctx context.Context, selector, text string, submit bool) error {
	runCtx, cancel := c.runContext(ctx, c.timeout)
	defer cancel()

	tasks := []chromedp.Action{
		chromedp.WaitVisible(selector, chromedp.BySearch),
		chromedp.SetValue(selector, "", chromedp.BySearch),
		chromedp.SendKeys(selector, text, chromedp.BySearch),
	}
	if submit {
		tasks = append(tasks, chromedp.SendKeys(selector, kb.Enter, chromedp.BySearch))
	}

	if err := chromedp.Run(runCtx, tasks...); err != nil {
		if !c.gone() && errors.Is(err, context.DeadlineExceeded) {
			return fmt.Errorf("%w: %s", ErrNotFound, selector)
		}
		return c.classify(err)
	}
	return nil
}

// runContext derives a chromedp context from the tab that is also cancelled
// when the caller's ctx is done.
func (c *Chrome) runContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	var (
		runCtx context.Context
		cancel context.CancelFunc
	)
	if timeout > 0 {
		runCtx, cancel = context.WithTimeout(c.ctx, timeout)
	} else {
		runCtx, cancel = context.WithCancel(c.ctx)
	}
	stop := context.AfterFunc(ctx, cancel)
	return runCtx, func() {
		stop()
		cancel()
	}
}

func (c *Chrome) gone() bool {
	return c.closed.Load() || c.ctx.Err() != nil
}

func (c *Chrome) classify(err error) error {
	if err == nil {
		return nil
	}
	if c.gone() || errors.Is(err, context.Canceled) || errors.Is(err, chromedp.ErrInvalidContext) {
		return fmt.Errorf("%w: %v", ErrWindowClosed, err)
	}
	return fmt.Errorf("%w: %v", ErrConnectionLost, err)
}

type chromeElement struct {
	chrome *Chrome
	node   *cdp.Node
}

func (e *chromeElement) Attribute(name string) string {
	return e.node.AttributeValue(name)
}

func (e *chromeElement) Text(ctx context.Context) (string, error) {
	runCtx, cancel := e.chrome.runContext(ctx, e.chrome.timeout)
	defer cancel()

	var text string
	err := chromedp.Run(runCtx, chromedp.Text([]cdp.NodeID{e.node.NodeID}, &text, chromedp.ByNodeID))
	if err != nil {
		return "", e.chrome.classify(err)
	}
	return text, nil
}
