// Package rachio provides a client for the Rachio public API.
//
// Only the calls needed by rachio-tools are implemented:
//
//	GetPerson:          the account, with all its devices and their zones
//	GetDeviceEvents:    a device's events for a time range
//	StartZone:          run a zone for a given duration
//	SetDeviceHibernate: put a device in (or take it out of) hibernation
package rachio

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/clambin/go-common/http/metrics"
	"github.com/clambin/go-common/http/roundtripper"
)

// DefaultURL is the base URL of the Rachio public API
const DefaultURL = "https://api.rach.io/1/public/"

// Client calls the Rachio public API
type Client struct {
	HTTPClient *http.Client
	baseURL    *url.URL
	apiKey     string
}

type Option func(*Client)

// WithHTTPClient sets the http.Client used to call the API
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.HTTPClient = httpClient
	}
}

// WithRoundTripper sets the transport of the client's http.Client
func WithRoundTripper(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.HTTPClient.Transport = rt
	}
}

// WithRequestMetrics instruments all API calls with the provided metrics.
func WithRequestMetrics(m metrics.RequestMetrics) Option {
	return func(c *Client) {
		next := c.HTTPClient.Transport
		if next == nil {
			next = http.DefaultTransport
		}
		c.HTTPClient.Transport = roundtripper.New(
			roundtripper.WithRequestMetrics(m),
			roundtripper.WithRoundTripper(next),
		)
	}
}

// New returns a Client for the API at baseURL, authenticating with apiKey.
func New(baseURL, apiKey string, options ...Option) (*Client, error) {
	if baseURL == "" || apiKey == "" {
		return nil, fmt.Errorf("rachio: url and api key are required: %w", ErrMissingConfiguration)
	}
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("rachio: invalid url: %w", err)
	}
	c := Client{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    u,
		apiKey:     apiKey,
	}
	for _, option := range options {
		option(&c)
	}
	return &c, nil
}

// GetPerson returns the account the API key belongs to. If the account cannot be found, GetPerson returns ErrNotFound.
func (c *Client) GetPerson(ctx context.Context) (Person, error) {
	var info struct {
		ID string `json:"id"`
	}
	if err := c.call(ctx, http.MethodGet, "person/info", nil, nil, &info); err != nil {
		return Person{}, fmt.Errorf("person info: %w", err)
	}
	if info.ID == "" {
		return Person{}, fmt.Errorf("person info: %w", ErrNotFound)
	}

	var person Person
	if err := c.call(ctx, http.MethodGet, "person/"+url.PathEscape(info.ID), nil, nil, &person); err != nil {
		return Person{}, fmt.Errorf("person: %w", err)
	}
	if person.ID == "" {
		return Person{}, fmt.Errorf("person: %w", ErrNotFound)
	}
	return person, nil
}

// StartZone runs the zone for the specified duration. The API only accepts whole seconds.
func (c *Client) StartZone(ctx context.Context, zoneID string, duration time.Duration) error {
	body := struct {
		ID       string `json:"id"`
		Duration int    `json:"duration"`
	}{ID: zoneID, Duration: int(duration.Seconds())}
	if err := c.call(ctx, http.MethodPut, "zone/start", nil, body, nil); err != nil {
		return fmt.Errorf("zone start: %w", err)
	}
	return nil
}

// GetDeviceEvents returns the events for the device, for the time range [start, end].
// The API limits the range that can be queried in one call; see events.Paginator to retrieve a device's full history.
func (c *Client) GetDeviceEvents(ctx context.Context, deviceID string, start, end time.Time) ([]DeviceEvent, error) {
	args := url.Values{
		"startTime": []string{strconv.FormatInt(start.UnixMilli(), 10)},
		"endTime":   []string{strconv.FormatInt(end.UnixMilli(), 10)},
	}
	var events []DeviceEvent
	if err := c.call(ctx, http.MethodGet, "device/"+url.PathEscape(deviceID)+"/event", args, nil, &events); err != nil {
		return nil, fmt.Errorf("device events: %w", err)
	}
	return events, nil
}

// SetDeviceHibernate hibernates the device (hibernate is true) or makes it active again (hibernate is false).
func (c *Client) SetDeviceHibernate(ctx context.Context, deviceID string, hibernate bool) error {
	action := "on"
	if hibernate {
		action = "off"
	}
	body := struct {
		ID string `json:"id"`
	}{ID: deviceID}
	if err := c.call(ctx, http.MethodPut, "device/"+action, nil, body, nil); err != nil {
		return fmt.Errorf("device %s: %w", action, err)
	}
	return nil
}

func (c *Client) call(ctx context.Context, method, path string, args url.Values, body any, response any) error {
	target := c.baseURL.JoinPath(path)
	if len(args) > 0 {
		target.RawQuery = args.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target.String(), reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &HTTPError{Method: method, Path: "/" + path, StatusCode: resp.StatusCode, Status: resp.Status}
	}
	if response == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(response); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}
