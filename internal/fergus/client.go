// Package fergus is the JSON client for the remote quoting service.
// Transport policy (auth header, rate limit, retry) lives here; the
// pipeline only hands it finished payloads.
package fergus

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"fergusquote/internal"
	"fergusquote/internal/config"
)

type Client struct {
	cfg        config.Config
	httpClient *http.Client
	limiter    *RateLimiter
}

func NewClient(cfg config.Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: time.Duration(cfg.FergusTimeoutMs) * time.Millisecond},
		limiter:    NewRateLimiter(cfg.FergusRateLimitRPS),
	}
}

type listResponse struct {
	Data []map[string]any `json:"data"`
}

// GetJobByNumber looks a job up by its human job number. Returns nil
// when no job matches exactly.
func (c *Client) GetJobByNumber(ctx context.Context, jobNo string) (*internal.JobDetails, error) {
	body, err := c.doJSON(ctx, http.MethodGet, "jobs", map[string]string{"filterSearchText": jobNo}, nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	for _, raw := range resp.Data {
		if toString(raw["jobNo"]) != jobNo {
			continue
		}
		job := toJobDetails(raw)
		return &job, nil
	}
	return nil, nil
}

func (c *Client) MustJobByNumber(ctx context.Context, jobNo string) (internal.JobDetails, error) {
	job, err := c.GetJobByNumber(ctx, jobNo)
	if err != nil {
		return internal.JobDetails{}, err
	}
	if job == nil {
		return internal.JobDetails{}, fmt.Errorf("job not found: jobNo=%s", jobNo)
	}
	return *job, nil
}

func (c *Client) ListQuotes(ctx context.Context, jobID int) ([]internal.QuoteSummary, error) {
	body, err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("jobs/%d/quotes", jobID), nil, nil)
	if err != nil {
		return nil, err
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, err
	}

	out := make([]internal.QuoteSummary, 0, len(resp.Data))
	for _, raw := range resp.Data {
		out = append(out, internal.QuoteSummary{
			ID:            toInt(raw["id"]),
			VersionNumber: toInt(raw["versionNumber"]),
			IsAccepted:    toBool(raw["isAccepted"]),
			IsSent:        toBool(raw["isSent"]),
			LastModified:  toString(raw["lastModified"]),
		})
	}
	return out, nil
}

// CreateQuote submits a new quote and returns the remote quote id when
// the response carries one.
func (c *Client) CreateQuote(ctx context.Context, jobID int, payload internal.QuotePayload) (int, error) {
	body, err := c.doJSON(ctx, http.MethodPost, fmt.Sprintf("jobs/%d/quotes", jobID), nil, payload)
	if err != nil {
		return 0, err
	}
	return extractQuoteID(body), nil
}

// UpdateQuote replaces an existing quote's content wholesale.
func (c *Client) UpdateQuote(ctx context.Context, jobID, quoteID int, payload internal.QuotePayload) error {
	_, err := c.doJSON(ctx, http.MethodPut, fmt.Sprintf("jobs/%d/quotes/%d", jobID, quoteID), nil, payload)
	return err
}

// QuoteWebURL is the web app page for a job's quotes, shown to the
// operator after a successful push.
func (c *Client) QuoteWebURL(jobNo string) string {
	return strings.TrimRight(c.cfg.FergusWebBaseURL, "/") + "/jobs/view/" + jobNo + "/quote"
}

func (c *Client) doJSON(ctx context.Context, method, endpoint string, params map[string]string, payload any) ([]byte, error) {
	if strings.TrimSpace(c.cfg.FergusAPIToken) == "" {
		return nil, errors.New("missing FERGUS_API_TOKEN")
	}

	baseURL := strings.TrimRight(c.cfg.FergusAPIBaseURL, "/") + "/"
	u, err := url.Parse(baseURL + endpoint)
	if err != nil {
		return nil, err
	}

	q := u.Query()
	for k, v := range params {
		if strings.TrimSpace(v) != "" {
			q.Set(k, v)
		}
	}
	u.RawQuery = q.Encode()

	var reqBody []byte
	if payload != nil {
		reqBody, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}

	var lastErr error
	for attempt := 1; attempt <= 5; attempt++ {
		c.limiter.WaitTurn()

		var reader io.Reader
		if reqBody != nil {
			reader = bytes.NewReader(reqBody)
		}
		req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.FergusAPIToken)
		req.Header.Set("Accept", "application/json")
		if reqBody != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		_ = resp.Body.Close()
		if readErr != nil {
			lastErr = readErr
			continue
		}

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			if isRetryableStatus(resp.StatusCode) && attempt < 5 {
				backoff := time.Duration(250*(1<<(attempt-1))+rand.Intn(100)) * time.Millisecond
				time.Sleep(backoff)
				lastErr = fmt.Errorf("fergus status %d", resp.StatusCode)
				continue
			}
			return nil, fmt.Errorf("fergus api error: status=%d body=%s", resp.StatusCode, string(body))
		}

		return body, nil
	}

	if lastErr == nil {
		lastErr = errors.New("fergus request failed")
	}
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	switch status {
	case 429, 500, 502, 503, 504:
		return true
	default:
		return false
	}
}

func toJobDetails(raw map[string]any) internal.JobDetails {
	job := internal.JobDetails{
		ID:          toInt(raw["id"]),
		JobNo:       toString(raw["jobNo"]),
		Description: toString(raw["description"]),
	}
	if customer, ok := raw["customer"].(map[string]any); ok {
		job.Customer = toString(customer["customerFullName"])
	}
	if active, ok := raw["activeQuote"].(map[string]any); ok {
		job.QuoteAccepted = toBool(active["isAccepted"])
	}
	return job
}

// Quote creation responses have been seen both as {"data":{"id":N}}
// and as a bare {"id":N}; absence yields 0.
func extractQuoteID(body []byte) int {
	var resp map[string]any
	if err := json.Unmarshal(body, &resp); err != nil {
		return 0
	}
	if data, ok := resp["data"].(map[string]any); ok {
		if id := toInt(data["id"]); id != 0 {
			return id
		}
	}
	return toInt(resp["id"])
}

func toInt(v any) int {
	switch t := v.(type) {
	case int:
		return t
	case int64:
		return int(t)
	case float64:
		return int(t)
	case json.Number:
		i, err := t.Int64()
		if err != nil {
			return 0
		}
		return int(i)
	default:
		return 0
	}
}

// toString tolerates numbers: job numbers arrive as either JSON
// strings or integers depending on tenant.
func toString(v any) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case float64:
		if t == float64(int64(t)) {
			return fmt.Sprintf("%d", int64(t))
		}
		return fmt.Sprintf("%v", t)
	case json.Number:
		return t.String()
	default:
		return ""
	}
}

func toBool(v any) bool {
	b, ok := v.(bool)
	return ok && b
}
