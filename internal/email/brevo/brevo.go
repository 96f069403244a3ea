package brevo

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/ecodeclub/ekit/net/httpx"
	"github.com/ecodeclub/ekit/slice"
	"github.com/spf13/viper"
	"github.com/styleaura/storefront/internal/email"
)

const defaultBaseURL = "https://api.brevo.com"

// ErrRequestFailed is returned when Brevo answers with a non-2xx status.
var ErrRequestFailed = errors.New("brevo request failed")

type contact struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type attachment struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

type sendRequest struct {
	Sender      contact      `json:"sender"`
	To          []contact    `json:"to"`
	Subject     string       `json:"subject"`
	HTMLContent string       `json:"htmlContent"`
	Attachment  []attachment `json:"attachment,omitempty"`
}

type contactRequest struct {
	Email         string  `json:"email"`
	ListIDs       []int64 `json:"listIds,omitempty"`
	UpdateEnabled bool    `json:"updateEnabled"`
}

type apiResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client talks to the Brevo transactional email and contacts API.
type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.client = client
	}
}

func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// MustNewClientFromConfig reads BREVO_API_KEY and brevo.base_url.
func MustNewClientFromConfig() *Client {
	apiKey := os.Getenv("BREVO_API_KEY")
	if apiKey == "" {
		panic("BREVO_API_KEY is not set")
	}

	var opts []Option
	if url := viper.GetString("brevo.base_url"); url != "" {
		opts = append(opts, WithBaseURL(url))
	}

	return NewClient(apiKey, opts...)
}

// SendMail sends m through /v3/smtp/email with base64 encoded attachments.
func (c *Client) SendMail(ctx context.Context, m email.Mail) error {
	body := sendRequest{
		Sender:      contact{Email: m.From, Name: m.FromName},
		To:          []contact{{Email: m.To, Name: m.ToName}},
		Subject:     m.Subject,
		HTMLContent: m.HTML,
		Attachment: slice.Map(m.Attachments, func(_ int, a email.Attachment) attachment {
			return attachment{
				Name:    a.Filename,
				Content: base64.StdEncoding.EncodeToString(a.Content),
			}
		}),
	}

	return c.post(ctx, "/v3/smtp/email", body)
}

// AddContact creates or updates a contact and adds it to the given lists.
func (c *Client) AddContact(ctx context.Context, address string, listIDs []int64) error {
	return c.post(ctx, "/v3/contacts", contactRequest{
		Email:         address,
		ListIDs:       listIDs,
		UpdateEnabled: true,
	})
}

func (c *Client) post(ctx context.Context, path string, body any) error {
	resp := httpx.NewRequest(ctx, http.MethodPost, c.baseURL+path).
		Client(c.client).
		AddHeader("api-key", c.apiKey).
		AddHeader("Accept", "application/json").
		JSONBody(body).
		Do()

	var res apiResponse
	err := resp.JSONScan(&res)
	if resp.Response == nil {
		return fmt.Errorf("brevo %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %s returned %d %s", ErrRequestFailed, path, resp.StatusCode, res.Message)
	}
	// Some endpoints answer 204 with an empty body.
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("brevo %s: failed to decode response: %w", path, err)
	}

	return nil
}
