package reachability

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

const (
	probeTimeout = 5 * time.Second
	userAgent    = "ShrinkLink-Bot/1.0"
)

// Result is the outcome of a reachability probe.
type Result struct {
	OK     bool
	Reason string
}

// Checker probes a destination URL before a short link is created.
// The probe is advisory but fails closed: an unreachable destination blocks
// creation, and the probe never outlives its timeout budget (2x5s worst case).
type Checker struct {
	client *http.Client
}

func NewChecker() *Checker {
	return &Checker{
		client: &http.Client{Timeout: probeTimeout},
	}
}

// NewCheckerWithClient is used by tests to inject a client against a local server.
func NewCheckerWithClient(client *http.Client) *Checker {
	return &Checker{client: client}
}

// Validate issues a HEAD request against the URL. Servers that reject HEAD
// with 405 get a second chance via a ranged GET. 2xx/3xx counts as reachable.
func (c *Checker) Validate(ctx context.Context, rawURL string) Result {
	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return Result{OK: false, Reason: "URL is malformed."}
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		zap.L().Info("URL probe failed",
			zap.String("url", rawURL),
			zap.Error(err))
		return Result{OK: false, Reason: "URL is unreachable or timed out."}
	}
	defer resp.Body.Close()

	if success(resp.StatusCode) {
		return Result{OK: true}
	}

	// Some sites serve GET but not HEAD.
	if resp.StatusCode == http.StatusMethodNotAllowed {
		return c.rangedGet(rawURL)
	}

	return Result{OK: false, Reason: "URL returned status " + resp.Status}
}

func (c *Checker) rangedGet(rawURL string) Result {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{OK: false, Reason: "URL is malformed."}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Range", "bytes=0-10")

	resp, err := c.client.Do(req)
	if err != nil {
		return Result{OK: false, Reason: "URL is unreachable or timed out."}
	}
	defer resp.Body.Close()

	if success(resp.StatusCode) {
		return Result{OK: true}
	}
	return Result{OK: false, Reason: "URL returned status " + resp.Status}
}

// success treats 2xx and 3xx as reachable; the probe client follows
// redirects, so 3xx here means a redirect loop was cut short.
func success(code int) bool {
	return code >= 200 && code < 400
}
