package cfapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/programme-lv/unsolved/unsolved/unsolveddomain"
)

const (
	BaseURL = "https://codeforces.com/api"

	// DefaultCount is large enough to fetch a whole history in one request.
	DefaultCount = 10000
)

// errBodyLimit bounds how much of a non-success response is read.
const errBodyLimit = 64 << 10

type Client struct {
	client  *http.Client
	baseURL string
	count   int
}

type Option func(*Client)

func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// WithTimeout bounds each request. It replaces the HTTP client, so it
// must not be combined with WithHTTPClient.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.client = &http.Client{Timeout: timeout}
		}
	}
}

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = baseURL
		}
	}
}

func WithCount(count int) Option {
	return func(c *Client) {
		if count > 0 {
			c.count = count
		}
	}
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		client:  http.DefaultClient,
		baseURL: BaseURL,
		count:   DefaultCount,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// UserSubmissions fetches the submission history of handle in the order the
// judge reports it. The handle is sent as given. Every failure is a
// *FetchError; nothing is retried.
func (c *Client) UserSubmissions(ctx context.Context, handle string) ([]unsolveddomain.Submission, error) {
	q := url.Values{}
	q.Set("handle", handle)
	q.Set("from", "1")
	q.Set("count", fmt.Sprint(c.count))
	reqURL := fmt.Sprintf("%s/user.status?%s", c.baseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, newTransportErr(0, fmt.Errorf("creating user.status request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, newTransportErr(0, fmt.Errorf("requesting user.status: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusErr(resp)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, newMalformedErr(fmt.Errorf("decoding user.status response: %w", err))
	}
	if env.Status != statusOK {
		return nil, newServiceErr(resp.StatusCode, env.Comment)
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return nil, newMalformedErr(errors.New("user.status response has no result"))
	}

	var raw []submission
	if err := json.Unmarshal(env.Result, &raw); err != nil {
		return nil, newMalformedErr(fmt.Errorf("decoding user.status result: %w", err))
	}

	subms := make([]unsolveddomain.Submission, 0, len(raw))
	for i, s := range raw {
		mapped, err := mapSubmission(i, s)
		if err != nil {
			return nil, newMalformedErr(err)
		}
		subms = append(subms, mapped)
	}

	return subms, nil
}

// statusErr classifies a non-200 response. The judge answers unknown
// handles with 400 and a FAILED envelope, which is a service error rather
// than a transport one.
func statusErr(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, errBodyLimit))

	var env envelope
	if err := json.Unmarshal(body, &env); err == nil && env.Status == statusFailed {
		return newServiceErr(resp.StatusCode, env.Comment)
	}

	return newTransportErr(resp.StatusCode, fmt.Errorf("user.status returned status %d", resp.StatusCode))
}
