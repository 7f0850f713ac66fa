// Package api is the HTTP client for the CodeChat backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zhubert/codechat/internal/conversation"
	pErrors "github.com/zhubert/codechat/internal/errors"
	"github.com/zhubert/codechat/internal/logger"
)

const (
	defaultBaseURL     = "http://localhost:5000"
	defaultHTTPTimeout = 120 * time.Second

	// maxErrorBody bounds how much of a failed response is read for its message.
	maxErrorBody = 64 << 10
)

// Backend is the set of backend operations the rest of the client depends on.
type Backend interface {
	CreateConversation(ctx context.Context, name string) (CreateResponse, error)
	RenameConversation(ctx context.Context, id conversation.ID, name string) error
	DeleteConversation(ctx context.Context, id conversation.ID) error
	LoadConversation(ctx context.Context, id conversation.ID) (LoadResponse, error)
	Process(ctx context.Context, req ProcessRequest) (ProcessResponse, error)
}

// Client implements Backend over HTTP.
type Client struct {
	httpClient *http.Client
	baseURL    string
	log        *slog.Logger
}

var _ Backend = (*Client)(nil)

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}
	return NewClientWithHTTP(&http.Client{Timeout: timeout}, baseURL)
}

// NewClientWithHTTP creates a client with a custom HTTP client (for testing).
func NewClientWithHTTP(client *http.Client, baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		httpClient: client,
		baseURL:    strings.TrimRight(baseURL, "/"),
		log:        logger.WithComponent("api"),
	}
}

// BaseURL returns the backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// CreateConversation starts a new conversation. An empty name lets the
// backend choose its default.
func (c *Client) CreateConversation(ctx context.Context, name string) (CreateResponse, error) {
	const op = pErrors.Op("api.CreateConversation")
	name = strings.TrimSpace(name)
	if err := validateRequest(op, createInput{Name: name}); err != nil {
		return CreateResponse{}, err
	}

	form := url.Values{}
	if name != "" {
		form.Set("name", name)
	}

	var out CreateResponse
	if err := c.postForm(ctx, op, "/new-conversation", form, &out); err != nil {
		return CreateResponse{}, err
	}
	if out.ConversationID.IsZero() {
		return CreateResponse{}, pErrors.E(op, pErrors.KindServer, "malformed response: missing conversation_id")
	}
	return out, nil
}

// RenameConversation sets a conversation's name.
func (c *Client) RenameConversation(ctx context.Context, id conversation.ID, name string) error {
	const op = pErrors.Op("api.RenameConversation")
	if err := validateRequest(op, renameInput{ID: string(id), Name: name}); err != nil {
		return err
	}

	form := url.Values{}
	form.Set("conversation_id", string(id))
	form.Set("name", name)
	return c.postForm(ctx, op, "/rename-conversation", form, nil)
}

// DeleteConversation removes a conversation.
func (c *Client) DeleteConversation(ctx context.Context, id conversation.ID) error {
	const op = pErrors.Op("api.DeleteConversation")
	if err := validateRequest(op, idInput{ID: string(id)}); err != nil {
		return err
	}

	form := url.Values{}
	form.Set("conversation_id", string(id))
	return c.postForm(ctx, op, "/delete-conversation", form, nil)
}

// LoadConversation fetches a conversation's messages, artifacts, tokens and
// context files.
func (c *Client) LoadConversation(ctx context.Context, id conversation.ID) (LoadResponse, error) {
	const op = pErrors.Op("api.LoadConversation")
	if err := validateRequest(op, idInput{ID: string(id)}); err != nil {
		return LoadResponse{}, err
	}

	path := "/load-conversation/" + url.PathEscape(string(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return LoadResponse{}, pErrors.E(op, pErrors.KindNetwork, err)
	}
	req.Header.Set("Accept", "application/json")

	var out LoadResponse
	if err := c.do(op, path, req, &out); err != nil {
		return LoadResponse{}, err
	}
	return out, nil
}

// Process sends a prompt, with an optional file, and returns the reply.
func (c *Client) Process(ctx context.Context, pr ProcessRequest) (ProcessResponse, error) {
	const op = pErrors.Op("api.Process")
	if err := validateRequest(op, pr); err != nil {
		return ProcessResponse{}, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("conversation_id", string(pr.ConversationID)); err != nil {
		return ProcessResponse{}, pErrors.E(op, pErrors.KindIO, err)
	}
	if pr.Prompt != "" {
		if err := mw.WriteField("prompt", pr.Prompt); err != nil {
			return ProcessResponse{}, pErrors.E(op, pErrors.KindIO, err)
		}
	}
	if pr.File != nil {
		fw, err := mw.CreateFormFile("file", pr.File.Name)
		if err != nil {
			return ProcessResponse{}, pErrors.E(op, pErrors.KindIO, err)
		}
		if _, err := fw.Write(pr.File.Content); err != nil {
			return ProcessResponse{}, pErrors.E(op, pErrors.KindIO, err)
		}
	}
	if err := mw.Close(); err != nil {
		return ProcessResponse{}, pErrors.E(op, pErrors.KindIO, err)
	}

	const path = "/process"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &body)
	if err != nil {
		return ProcessResponse{}, pErrors.E(op, pErrors.KindNetwork, err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	var out ProcessResponse
	if err := c.do(op, path, req, &out); err != nil {
		return ProcessResponse{}, err
	}
	return out, nil
}

func (c *Client) postForm(ctx context.Context, op pErrors.Op, path string, form url.Values, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return pErrors.E(op, pErrors.KindNetwork, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	return c.do(op, path, req, out)
}

// do sends req and decodes a success body into out (if non-nil).
func (c *Client) do(op pErrors.Op, path string, req *http.Request, out interface{}) error {
	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", "method", req.Method, "path", path, "error", err)
		return pErrors.NetworkError(op, path, err)
	}
	defer resp.Body.Close()

	c.log.Debug("request completed", "method", req.Method, "path", path,
		"status", resp.StatusCode, "duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.serverError(op, path, resp)
	}

	if out == nil {
		// Drain so the connection can be reused.
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			return pErrors.NetworkError(op, path, err)
		}
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return pErrors.NetworkError(op, path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		c.log.Warn("malformed response", "path", path, "error", err)
		return pErrors.E(op, pErrors.KindServer, "malformed response from "+path, err)
	}
	return nil
}

func (c *Client) serverError(op pErrors.Op, path string, resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body errorBody
	msg := ""
	if json.Unmarshal(data, &body) == nil {
		msg = body.Error
	}
	c.log.Warn("server returned error", "path", path, "status", resp.StatusCode, "error", msg)
	if msg == "" {
		msg = fmt.Sprintf("%s returned status %d", path, resp.StatusCode)
	}
	return pErrors.ServerError(op, resp.StatusCode, msg)
}
