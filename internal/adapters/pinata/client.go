package pinata

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tododapp/internal/application"
	"tododapp/internal/ports"
)

const (
	DefaultAPIURL     = "https://api.pinata.cloud"
	DefaultGatewayURL = "https://gateway.pinata.cloud"
	DefaultTimeout    = 15 * time.Second

	pinJSONPath  = "/pinning/pinJSONToIPFS"
	metadataName = "todo-task"
	maxErrorBody = 512
)

// Client implements ports.ContentStore on top of the Pinata pinning API
// and an IPFS HTTP gateway
type Client struct {
	apiURL     string
	gatewayURL string
	apiKey     string
	secretKey  string
	client     *http.Client
	now        func() time.Time
}

// Ensure Client implements ContentStore
var _ ports.ContentStore = (*Client)(nil)

// Options configures a Client. Zero values fall back to the public Pinata endpoints.
type Options struct {
	APIURL     string
	GatewayURL string
	APIKey     string
	SecretKey  string
	Timeout    time.Duration
}

type pinRequest struct {
	PinataOptions  pinOptions  `json:"pinataOptions"`
	PinataMetadata pinMetadata `json:"pinataMetadata"`
	PinataContent  taskContent `json:"pinataContent"`
}

type pinOptions struct {
	CIDVersion int `json:"cidVersion"`
}

type pinMetadata struct {
	Name string `json:"name"`
}

// taskContent is the JSON document pinned for every task
type taskContent struct {
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // Unix milliseconds
}

type pinResponse struct {
	IpfsHash  string `json:"IpfsHash"`
	PinSize   int64  `json:"PinSize"`
	Timestamp string `json:"Timestamp"`
}

// NewClient creates a new Pinata client
func NewClient(opts Options) *Client {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	apiURL := opts.APIURL
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	gatewayURL := opts.GatewayURL
	if gatewayURL == "" {
		gatewayURL = DefaultGatewayURL
	}

	return &Client{
		apiURL:     strings.TrimRight(apiURL, "/"),
		gatewayURL: strings.TrimRight(gatewayURL, "/"),
		apiKey:     opts.APIKey,
		secretKey:  opts.SecretKey,
		client:     &http.Client{Timeout: timeout},
		now:        time.Now,
	}
}

// Publish pins the task text and returns its CID
func (c *Client) Publish(ctx context.Context, content string) (string, error) {
	if c.apiKey == "" || c.secretKey == "" {
		return "", &application.NetworkError{Op: "publish", Err: errors.New("pinata credentials not configured")}
	}

	body, err := json.Marshal(pinRequest{
		PinataOptions:  pinOptions{CIDVersion: 1},
		PinataMetadata: pinMetadata{Name: metadataName},
		PinataContent:  taskContent{Content: content, Timestamp: c.now().UnixMilli()},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL+pinJSONPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("pinata_api_key", c.apiKey)
	req.Header.Set("pinata_secret_api_key", c.secretKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", &application.NetworkError{Op: "publish", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &application.NetworkError{Op: "publish", Err: fmt.Errorf("failed to read response body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &application.NetworkError{
			Op:  "publish",
			Err: fmt.Errorf("pinata API error (%d): %s", resp.StatusCode, truncate(respBody)),
		}
	}

	var pinned pinResponse
	if err := json.Unmarshal(respBody, &pinned); err != nil {
		return "", &application.NetworkError{Op: "publish", Err: fmt.Errorf("failed to decode response: %w", err)}
	}
	if pinned.IpfsHash == "" {
		return "", &application.NetworkError{Op: "publish", Err: errors.New("response carried no content address")}
	}

	return pinned.IpfsHash, nil
}

// Fetch resolves a CID through the gateway and returns the task text
func (c *Client) Fetch(ctx context.Context, address string) (string, error) {
	fail := func(err error) (string, error) {
		return "", &application.FetchError{Address: address, Err: err}
	}

	if strings.TrimSpace(address) == "" {
		return fail(errors.New("empty content address"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.GatewayURL(address), nil)
	if err != nil {
		return fail(err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fail(err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fail(err)
	}
	if resp.StatusCode != http.StatusOK {
		return fail(fmt.Errorf("gateway returned %d: %s", resp.StatusCode, truncate(respBody)))
	}

	var doc taskContent
	if err := json.Unmarshal(respBody, &doc); err != nil {
		return fail(fmt.Errorf("failed to decode content: %w", err))
	}

	return doc.Content, nil
}

// GatewayURL returns the public gateway URL for a CID
func (c *Client) GatewayURL(address string) string {
	return c.gatewayURL + "/ipfs/" + url.PathEscape(address)
}

func truncate(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}
