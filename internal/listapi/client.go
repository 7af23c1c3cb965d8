package listapi

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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/five82/tote/internal/shopping"
)

// Service is the remote contract the mutation layer depends on.
// It is implemented by *Client and can be replaced in tests.
type Service interface {
	FetchLists(ctx context.Context) ([]shopping.List, error)
	FetchList(ctx context.Context, id shopping.ID) (shopping.List, error)
	CreateList(ctx context.Context, name string) (shopping.List, error)
	UpdateList(ctx context.Context, id shopping.ID, patch shopping.ListPatch) (*shopping.List, error)
	DeleteList(ctx context.Context, id shopping.ID) error
	ToggleDefault(ctx context.Context, id shopping.ID) (*shopping.List, error)
	ShareList(ctx context.Context, id shopping.ID, username string) (ShareResult, error)
	FetchShares(ctx context.Context, id shopping.ID) ([]shopping.Share, error)
	RemoveShare(ctx context.Context, id shopping.ID, userID int64) error
	FetchItems(ctx context.Context, listID shopping.ID) ([]shopping.Item, error)
	CreateItem(ctx context.Context, listID shopping.ID, name string) (shopping.Item, error)
	UpdateItem(ctx context.Context, listID, itemID shopping.ID, patch shopping.ItemPatch) (*shopping.Item, error)
	DeleteItem(ctx context.Context, listID, itemID shopping.ID) error
	ToggleItem(ctx context.Context, listID, itemID shopping.ID) (*shopping.Item, error)
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// Header names attached to every request.
const (
	InitDataHeader   = "X-Telegram-Init-Data"
	VersionHeader    = "X-Api-Version"
	RequestIDHeader  = "X-Request-ID"
	defaultBaseURL   = "http://localhost:3000/api"
	defaultUserAgent = "tote/0.1"
	maxBodyBytes     = 4 << 20
)

// Options configure a Client.
type Options struct {
	BaseURL    string
	InitData   string        // opaque identity blob from the host platform
	Timeout    time.Duration // zero keeps the transport default
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client talks to the shopping-list REST service.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	initData  string
	log       *zap.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:   base,
		http:      httpClient,
		userAgent: defaultUserAgent,
		initData:  opts.InitData,
		log:       logger.Named("listapi"),
	}, nil
}

// BaseURL returns the resolved service root.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// FetchLists retrieves every list visible to the caller.
func (c *Client) FetchLists(ctx context.Context) ([]shopping.List, error) {
	var payload []ListRecord
	if _, err := c.do(ctx, http.MethodGet, "/lists", nil, &payload); err != nil {
		return nil, err
	}
	return ToLists(payload), nil
}

// FetchList retrieves a single list.
func (c *Client) FetchList(ctx context.Context, id shopping.ID) (shopping.List, error) {
	var payload ListRecord
	ok, err := c.do(ctx, http.MethodGet, listPath(id), nil, &payload)
	if err != nil {
		return shopping.List{}, err
	}
	if !ok {
		return shopping.List{}, fmt.Errorf("decode response: empty list payload")
	}
	return payload.ToList(), nil
}

// CreateList creates a list and returns the server's record.
func (c *Client) CreateList(ctx context.Context, name string) (shopping.List, error) {
	var payload ListRecord
	ok, err := c.do(ctx, http.MethodPost, "/lists", CreateListRequest{Name: name}, &payload)
	if err != nil {
		return shopping.List{}, err
	}
	if !ok {
		return shopping.List{}, fmt.Errorf("decode response: empty list payload")
	}
	return payload.ToList(), nil
}

// UpdateList patches a list. The result is nil when the server replies
// without a body.
func (c *Client) UpdateList(ctx context.Context, id shopping.ID, patch shopping.ListPatch) (*shopping.List, error) {
	var payload ListRecord
	ok, err := c.do(ctx, http.MethodPatch, listPath(id), UpdateListRequestFrom(patch), &payload)
	if err != nil || !ok {
		return nil, err
	}
	l := payload.ToList()
	return &l, nil
}

// DeleteList removes a list.
func (c *Client) DeleteList(ctx context.Context, id shopping.ID) error {
	_, err := c.do(ctx, http.MethodDelete, listPath(id), nil, nil)
	return err
}

// ToggleDefault flips the default flag of a list on the server.
func (c *Client) ToggleDefault(ctx context.Context, id shopping.ID) (*shopping.List, error) {
	var payload ListRecord
	ok, err := c.do(ctx, http.MethodPost, listPath(id)+"/toggle-default", nil, &payload)
	if err != nil || !ok {
		return nil, err
	}
	l := payload.ToList()
	return &l, nil
}

// ShareList grants username access to a list.
func (c *Client) ShareList(ctx context.Context, id shopping.ID, username string) (ShareResult, error) {
	var payload ShareResult
	if _, err := c.do(ctx, http.MethodPost, listPath(id)+"/share", ShareRequest{TelegramUsername: username}, &payload); err != nil {
		return ShareResult{}, err
	}
	return payload, nil
}

// FetchShares retrieves the grants of a list.
func (c *Client) FetchShares(ctx context.Context, id shopping.ID) ([]shopping.Share, error) {
	var payload []ShareRecord
	if _, err := c.do(ctx, http.MethodGet, listPath(id)+"/shares", nil, &payload); err != nil {
		return nil, err
	}
	return ToShares(payload), nil
}

// RemoveShare revokes a user's access to a list.
func (c *Client) RemoveShare(ctx context.Context, id shopping.ID, userID int64) error {
	path := listPath(id) + "/shares/" + strconv.FormatInt(userID, 10)
	_, err := c.do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// FetchItems retrieves the items of a list.
func (c *Client) FetchItems(ctx context.Context, listID shopping.ID) ([]shopping.Item, error) {
	var payload []ItemRecord
	if _, err := c.do(ctx, http.MethodGet, listPath(listID)+"/items", nil, &payload); err != nil {
		return nil, err
	}
	return ToItems(payload), nil
}

// CreateItem adds an item to a list.
func (c *Client) CreateItem(ctx context.Context, listID shopping.ID, name string) (shopping.Item, error) {
	var payload ItemRecord
	ok, err := c.do(ctx, http.MethodPost, listPath(listID)+"/items", CreateItemRequest{Name: name}, &payload)
	if err != nil {
		return shopping.Item{}, err
	}
	if !ok {
		return shopping.Item{}, fmt.Errorf("decode response: empty item payload")
	}
	return payload.ToItem(), nil
}

// UpdateItem patches an item. The result is nil when the server replies
// without a body.
func (c *Client) UpdateItem(ctx context.Context, listID, itemID shopping.ID, patch shopping.ItemPatch) (*shopping.Item, error) {
	var payload ItemRecord
	body := UpdateItemRequest{Name: patch.Name, Completed: patch.Completed}
	ok, err := c.do(ctx, http.MethodPatch, itemPath(listID, itemID), body, &payload)
	if err != nil || !ok {
		return nil, err
	}
	item := payload.ToItem()
	return &item, nil
}

// DeleteItem removes an item.
func (c *Client) DeleteItem(ctx context.Context, listID, itemID shopping.ID) error {
	_, err := c.do(ctx, http.MethodDelete, itemPath(listID, itemID), nil, nil)
	return err
}

// ToggleItem flips an item's completion on the server.
func (c *Client) ToggleItem(ctx context.Context, listID, itemID shopping.ID) (*shopping.Item, error) {
	var payload ItemRecord
	ok, err := c.do(ctx, http.MethodPost, itemPath(listID, itemID)+"/toggle", nil, &payload)
	if err != nil || !ok {
		return nil, err
	}
	item := payload.ToItem()
	return &item, nil
}

func listPath(id shopping.ID) string {
	return "/lists/" + id.String()
}

func itemPath(listID, itemID shopping.ID) string {
	return listPath(listID) + "/items/" + itemID.String()
}

// do performs one round trip. It reports whether a response body was decoded
// into dest; 204 and empty bodies leave dest untouched.
func (c *Client) do(ctx context.Context, method, path string, body, dest any) (bool, error) {
	if c == nil {
		return false, fmt.Errorf("client is nil")
	}
	reqURL := *c.baseURL
	reqURL.Path = strings.TrimSuffix(c.baseURL.Path, "/") + path

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return false, fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reader)
	if err != nil {
		return false, fmt.Errorf("create request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set(InitDataHeader, c.initData)
	req.Header.Set(VersionHeader, APIVersion)
	req.Header.Set(RequestIDHeader, requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return false, networkError(method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return false, networkError(method, path, err)
	}

	c.log.Debug("request completed",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
		zap.String("request_id", requestID),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errBody ErrorBody
		_ = json.Unmarshal(raw, &errBody)
		return false, statusError(method, path, resp.StatusCode, errBody)
	}
	if dest == nil || len(bytes.TrimSpace(raw)) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, fmt.Errorf("decode response: %w", err)
	}
	return true, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", raw, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("parse api url %q: missing host", raw)
	}
	u.Path = strings.TrimSuffix(u.Path, "/")
	u.RawPath = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
