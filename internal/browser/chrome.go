package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dwellscan/listingworker/logger"
	apperr "dwellscan/listingworker/pkg/errors"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"
)

// Options configures the browser session manager
type Options struct {
	Headless        bool
	UserAgent       string
	NavigateTimeout time.Duration
	ElementTimeout  time.Duration
}

// Manager owns the headless-browser lifecycle. Every scrape gets its own
// browser process; launches are throttled through a shared rate limiter.
type Manager struct {
	opts    Options
	limiter *rate.Limiter
	log     *logger.Logger
}

// NewManager creates a session manager. launchesPerMinute bounds how often
// new browser processes may start across concurrent scrapes.
func NewManager(opts Options, launchesPerMinute int) *Manager {
	if opts.NavigateTimeout <= 0 {
		opts.NavigateTimeout = 15 * time.Second
	}
	if opts.ElementTimeout <= 0 {
		opts.ElementTimeout = 5 * time.Second
	}
	if launchesPerMinute <= 0 {
		launchesPerMinute = 6
	}
	return &Manager{
		opts:    opts,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(launchesPerMinute)), 1),
		log:     logger.ForBrowser(),
	}
}

// WithSession launches a browser, navigates to the address and hands the
// live page to fn. The browser is torn down on every exit path, whether fn
// returns normally, fails, or navigation never completes.
func (m *Manager) WithSession(ctx context.Context, address string, fn func(Page) error) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return apperr.NewSession("browser launch throttle interrupted", err)
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", m.opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(m.opts.UserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	tabCtx, cancelTab := chromedp.NewContext(allocCtx)
	defer cancelTab()

	m.log.Debug().Str("address", address).Msg("Opening page")

	// Wait for the DOM to be parsed, not for network idle
	navCtx, cancelNav := context.WithTimeout(tabCtx, m.opts.NavigateTimeout)
	defer cancelNav()
	if err := chromedp.Run(navCtx,
		chromedp.Navigate(address),
		chromedp.WaitReady("body", chromedp.ByQuery),
	); err != nil {
		return apperr.NewNavigation(address, "failed to load page", err)
	}

	return fn(&chromePage{ctx: tabCtx, elementTimeout: m.opts.ElementTimeout})
}

// chromePage implements Page against a live chromedp tab
type chromePage struct {
	ctx            context.Context
	elementTimeout time.Duration
}

func (p *chromePage) WaitReady(sel string, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = p.elementTimeout
	}
	ctx, cancel := context.WithTimeout(p.ctx, timeout)
	defer cancel()
	return chromedp.Run(ctx, chromedp.WaitReady(sel, chromedp.ByQuery))
}

func (p *chromePage) ClickIfPresent(sel string) (bool, error) {
	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return false;
		el.scrollIntoView({block: "center"});
		el.click();
		return true;
	})()`, sel)
	var clicked bool
	if err := chromedp.Run(p.ctx, chromedp.Evaluate(script, &clicked)); err != nil {
		return false, err
	}
	return clicked, nil
}

func (p *chromePage) ScrollIntoView(sel string) error {
	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return false;
		el.scrollIntoView({block: "center"});
		return true;
	})()`, sel)
	var found bool
	return chromedp.Run(p.ctx, chromedp.Evaluate(script, &found))
}

func (p *chromePage) ScrollToBottom() error {
	script := `(() => { window.scrollTo(0, document.body.scrollHeight); return true; })()`
	var ok bool
	return chromedp.Run(p.ctx, chromedp.Evaluate(script, &ok))
}

func (p *chromePage) ForceVisible(sel string) error {
	script := fmt.Sprintf(`(() => {
		const el = document.querySelector(%q);
		if (!el) return false;
		el.style.display = "block";
		el.removeAttribute("hidden");
		return true;
	})()`, sel)
	var found bool
	return chromedp.Run(p.ctx, chromedp.Evaluate(script, &found))
}

func (p *chromePage) Settle(d time.Duration) {
	_ = chromedp.Run(p.ctx, chromedp.Sleep(d))
}

func (p *chromePage) Document() (*goquery.Document, error) {
	var html string
	if err := chromedp.Run(p.ctx, chromedp.OuterHTML("html", &html, chromedp.ByQuery)); err != nil {
		return nil, err
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}
