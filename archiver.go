package battlelog

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/semaphore"
)

var (
	defaultUserAgent = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:73.0) Gecko/20100101 Firefox/73.0"
	maxElapsedTime   = 30 * time.Second
)

// Archiver downloads a soldier's Battlelog profile data and battle
// reports, saving each response body to disk.
type Archiver struct {
	BaseURL   string
	UserAgent string

	EnableLog        bool
	EnableVerboseLog bool

	Transport             http.RoundTripper
	RequestTimeout        time.Duration
	MaxRetries            int
	MaxConcurrentDownload int64

	OutputDir   string
	UseGzip     bool
	SkipReports bool

	isValidated bool
	cookies     []*http.Cookie
	httpClient  *http.Client
	dlSemaphore *semaphore.Weighted
}

// Validate prepares Archiver to make sure its configurations
// are valid and ready to use. Must be run at least once before
// archival started.
func (arc *Archiver) Validate() {
	if arc.BaseURL == "" {
		arc.BaseURL = DefaultBaseURL
	}

	if arc.UserAgent == "" {
		arc.UserAgent = defaultUserAgent
	}

	if arc.MaxConcurrentDownload <= 0 {
		arc.MaxConcurrentDownload = 10
	}

	arc.isValidated = true
	arc.dlSemaphore = semaphore.NewWeighted(arc.MaxConcurrentDownload)

	if arc.Transport == nil {
		arc.Transport = http.DefaultTransport
	}

	arc.httpClient = &http.Client{
		Timeout:   arc.RequestTimeout,
		Transport: arc.Transport,
	}
}

// WithCookies attaches the session cookies that are sent with
// every request.
func (arc *Archiver) WithCookies(cookies []*http.Cookie) *Archiver {
	arc.cookies = cookies
	return arc
}

func (arc *Archiver) downloadFile(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", arc.UserAgent)
	req.Header.Set("X-AjaxNavigation", "1")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")

	for _, cookie := range arc.cookies {
		req.AddCookie(cookie)
	}

	// Battlelog answers with 504 or 429 when it feels like it. Those
	// are the only statuses worth retrying; everything else, 403
	// included, is handed back to the caller untouched.
	var resp *http.Response
	op := func() error {
		var err error
		resp, err = arc.httpClient.Do(req) //nolint:bodyclose,goimports
		if err == nil && (resp.StatusCode == http.StatusGatewayTimeout || resp.StatusCode == http.StatusTooManyRequests) {
			resp.Body.Close()
			err = fmt.Errorf("failed to fetch with status code: %d", resp.StatusCode)
		}
		return err
	}
	exp := backoff.NewExponentialBackOff()
	exp.MaxElapsedTime = maxElapsedTime
	bo := backoff.WithMaxRetries(exp, uint64(arc.MaxRetries))
	err = backoff.Retry(op, backoff.WithContext(bo, ctx))

	return resp, err
}
