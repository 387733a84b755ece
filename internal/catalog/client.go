package catalog

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/pkg/errors"
)

// Client performs the HTTP requests against the VizieR and SIMBAD services.
type Client struct {
	httpClient *http.Client
	vizierURL  string
	simbadURL  string
}

// NewClient creates a client for the given service base URLs. The timeout
// applies to every single request.
func NewClient(vizierURL, simbadURL string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		vizierURL:  vizierURL,
		simbadURL:  simbadURL,
	}
}

// get performs a GET on base+path with the given query values and returns the
// response body. Any non-200 status is an error.
func (c *Client) get(ctx context.Context, base, path string, values url.Values) ([]byte, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid base URL %s", base)
	}
	u = u.JoinPath(path)
	u.RawQuery = values.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "unable to build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "request %s failed", u.String())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("request %s returned status %d", u.String(), resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read response body")
	}

	return body, nil
}
