package startupschool

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/playwright-community/playwright-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("scrapers/startupschool")

var (
	ErrSessionInit       = errors.New("failed to initialize browser session")
	ErrNavigationTimeout = errors.New("timed out waiting for profile content")
)

const selectorTimeoutMs = 30000

// Credentials replays a previously captured login, the two tokens are
// installed as cookies on the browser context before any navigation.
type Credentials struct {
	BaseUrl    string `json:"base_url"`
	SsoKey     string `json:"sso_key"`
	SusSession string `json:"sus_session"`
}

func (c Credentials) Validate() error {
	var missing []string
	if c.BaseUrl == "" {
		missing = append(missing, "base_url")
	}
	if c.SsoKey == "" {
		missing = append(missing, "sso_key")
	}
	if c.SusSession == "" {
		missing = append(missing, "sus_session")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing credentials: %s", strings.Join(missing, ", "))
	}
	return nil
}

// cookieDomain widens the base url's host so the tokens also cover
// subdomains, mirroring how the site scopes its own session cookies.
func (c Credentials) cookieDomain() (string, error) {
	link, err := url.Parse(c.BaseUrl)
	if err != nil {
		return "", err
	}
	host := strings.TrimPrefix(link.Hostname(), "www.")
	if host == "" {
		return "", fmt.Errorf("base url %q has no host", c.BaseUrl)
	}
	return "." + host, nil
}

// Session owns one browser process, one context and one page. It is
// reused across every profile in a batch and must not be shared
// between goroutines, a single page cannot serve concurrent
// navigations.
type Session struct {
	baseUrl    string
	pw         *playwright.Playwright
	browser    playwright.Browser
	browserCtx playwright.BrowserContext
	page       playwright.Page
}

// OpenSession launches a headless chromium, installs the session
// cookies and wires up request filtering that drops asset and tracker
// traffic. Always Close the returned session, even when OpenSession's
// caller later fails.
func OpenSession(ctx context.Context, creds Credentials) (*Session, error) {
	_, span := tracer.Start(ctx, "OpenSession")
	defer span.End()

	domain, err := creds.cookieDomain()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "bad base url")
		return nil, fmt.Errorf("%w: %s", ErrSessionInit, err)
	}

	pw, err := playwright.Run()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to start playwright")
		return nil, fmt.Errorf("%w: %s", ErrSessionInit, err)
	}

	s := &Session{baseUrl: strings.TrimSuffix(creds.BaseUrl, "/"), pw: pw}

	launch := playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	}
	if path := os.Getenv("PLAYWRIGHT_EXECUTABLE_PATH"); path != "" {
		launch.ExecutablePath = playwright.String(path)
	}

	s.browser, err = pw.Chromium.Launch(launch)
	if err != nil {
		s.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to launch browser")
		return nil, fmt.Errorf("%w: %s", ErrSessionInit, err)
	}

	s.browserCtx, err = s.browser.NewContext(playwright.BrowserNewContextOptions{
		IgnoreHttpsErrors: playwright.Bool(true),
		ExtraHttpHeaders: map[string]string{
			"Accept-Encoding": "gzip, deflate, br",
		},
	})
	if err != nil {
		s.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create browser context")
		return nil, fmt.Errorf("%w: %s", ErrSessionInit, err)
	}

	err = s.browserCtx.AddCookies([]playwright.OptionalCookie{
		{
			Name:   "_sso.key",
			Value:  creds.SsoKey,
			Domain: playwright.String(domain),
			Path:   playwright.String("/"),
		},
		{
			Name:   "_sus_session",
			Value:  creds.SusSession,
			Domain: playwright.String(domain),
			Path:   playwright.String("/"),
		},
	})
	if err != nil {
		s.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to install cookies")
		return nil, fmt.Errorf("%w: %s", ErrSessionInit, err)
	}

	s.page, err = s.browserCtx.NewPage()
	if err != nil {
		s.Close()
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to create page")
		return nil, fmt.Errorf("%w: %s", ErrSessionInit, err)
	}

	// profile markup is all we need, dropping assets and trackers cuts
	// most of the page weight
	abort := func(route playwright.Route) {
		_ = route.Abort()
	}
	for _, pattern := range []string{
		"**/*.{png,jpg,jpeg,gif,css}",
		"**/*.{woff,woff2,ttf,otf}",
		"**/{analytics,tracking,advertisement}/**",
	} {
		err = s.page.Route(pattern, abort)
		if err != nil {
			s.Close()
			span.RecordError(err)
			span.SetStatus(codes.Error, "failed to install request filter")
			return nil, fmt.Errorf("%w: %s", ErrSessionInit, err)
		}
	}

	return s, nil
}

// Visit renders the profile page at baseUrl/<path> and returns its
// document. It waits for the DOM to parse rather than a full load,
// asset requests are aborted by the route filters anyway, then waits
// up to 30s for the main content container to appear.
func (s *Session) Visit(ctx context.Context, path string) (*goquery.Document, error) {
	ctx, span := tracer.Start(ctx, "Visit")
	defer span.End()
	span.SetAttributes(attribute.String("path", path))

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	link := fmt.Sprintf("%s/%s", s.baseUrl, path)
	slog.DebugContext(ctx, "visiting profile", "url", link)

	_, err := s.page.Goto(link, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(selectorTimeoutMs),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "navigation failed")
		return nil, fmt.Errorf("navigate to %s: %w", path, err)
	}

	_, err = s.page.WaitForSelector(mainContentSelector, playwright.PageWaitForSelectorOptions{
		Timeout: playwright.Float(selectorTimeoutMs),
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "content selector never appeared")
		return nil, fmt.Errorf("%w: %s", ErrNavigationTimeout, err)
	}

	content, err := s.page.Content()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to read page content")
		return nil, fmt.Errorf("read content of %s: %w", path, err)
	}

	return goquery.NewDocumentFromReader(strings.NewReader(content))
}

// Close releases the page, context, browser and playwright runtime. It
// is safe to call on a partially opened session and after a failure
// mid-batch.
func (s *Session) Close() error {
	var errlist []error
	if s.page != nil {
		errlist = append(errlist, s.page.Close())
		s.page = nil
	}
	if s.browserCtx != nil {
		errlist = append(errlist, s.browserCtx.Close())
		s.browserCtx = nil
	}
	if s.browser != nil {
		errlist = append(errlist, s.browser.Close())
		s.browser = nil
	}
	if s.pw != nil {
		errlist = append(errlist, s.pw.Stop())
		s.pw = nil
	}
	return errors.Join(errlist...)
}
