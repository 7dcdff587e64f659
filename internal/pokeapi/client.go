package pokeapi

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
)

// Catalog defines the remote collection operations the rest of the
// application depends on. Implemented by *Client; test doubles implement
// it for the state-machine packages.
type Catalog interface {
	List(ctx context.Context, page, limit int) (Page, error)
	GetByID(ctx context.Context, id int) (Pokemon, error)
	SearchByName(ctx context.Context, name string) (Pokemon, error)
	Create(ctx context.Context, draft Draft) (Pokemon, error)
	Update(ctx context.Context, id int, draft Draft) (Pokemon, error)
	Delete(ctx context.Context, id int) error
}

// Ensure Client implements Catalog at compile time.
var _ Catalog = (*Client)(nil)

// Client talks to the Pokémon HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
}

const (
	defaultBaseURL   = "http://localhost:3000"
	defaultUserAgent = "pokedeck/0.1"
	requestTimeout   = 10 * time.Second
)

// APIError is the normalized failure for any non-2xx response. Message is
// the server's structured error when it sends one, otherwise a
// status-derived fallback.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// NewClient builds a Client for the given base URL. An empty value falls
// back to the default local API address.
func NewClient(baseURL string) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	return &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: requestTimeout,
		},
		userAgent: defaultUserAgent,
	}, nil
}

// List retrieves one page of the collection.
func (c *Client) List(ctx context.Context, page, limit int) (Page, error) {
	if c == nil {
		return Page{}, fmt.Errorf("client is nil")
	}
	values := url.Values{}
	if page > 0 {
		values.Set("page", strconv.Itoa(page))
	}
	if limit > 0 {
		values.Set("limit", strconv.Itoa(limit))
	}
	rel := &url.URL{Path: "/pokemons", RawQuery: values.Encode()}
	var payload listResponse
	if err := c.doURL(ctx, http.MethodGet, rel, nil, &payload); err != nil {
		return Page{}, err
	}
	return Page{
		Items:      payload.Data,
		TotalPages: payload.Pagination.TotalPages,
		TotalCount: payload.Pagination.TotalPokemons,
	}, nil
}

// GetByID retrieves a single entry.
func (c *Client) GetByID(ctx context.Context, id int) (Pokemon, error) {
	if c == nil {
		return Pokemon{}, fmt.Errorf("client is nil")
	}
	var payload Pokemon
	if err := c.do(ctx, http.MethodGet, "/pokemons/"+strconv.Itoa(id), nil, &payload); err != nil {
		return Pokemon{}, err
	}
	return payload, nil
}

// SearchByName asks the server for the entry matching the given name.
func (c *Client) SearchByName(ctx context.Context, name string) (Pokemon, error) {
	if c == nil {
		return Pokemon{}, fmt.Errorf("client is nil")
	}
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Pokemon{}, fmt.Errorf("search name required")
	}
	var payload Pokemon
	if err := c.do(ctx, http.MethodGet, "/pokemons/search/"+url.PathEscape(trimmed), nil, &payload); err != nil {
		return Pokemon{}, err
	}
	return payload, nil
}

// Create submits a new entry. The draft's id is caller-assigned and must
// already be validated.
func (c *Client) Create(ctx context.Context, draft Draft) (Pokemon, error) {
	if c == nil {
		return Pokemon{}, fmt.Errorf("client is nil")
	}
	var payload Pokemon
	if err := c.do(ctx, http.MethodPost, "/pokemons", draft, &payload); err != nil {
		return Pokemon{}, err
	}
	return payload, nil
}

// Update submits the editable fields for an existing entry. The id travels
// in the path, never in the body.
func (c *Client) Update(ctx context.Context, id int, draft Draft) (Pokemon, error) {
	if c == nil {
		return Pokemon{}, fmt.Errorf("client is nil")
	}
	draft.ID = 0 // omitted from the body
	var payload Pokemon
	if err := c.do(ctx, http.MethodPut, "/pokemons/"+strconv.Itoa(id), draft, &payload); err != nil {
		return Pokemon{}, err
	}
	return payload, nil
}

// Delete removes an entry.
func (c *Client) Delete(ctx context.Context, id int) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	return c.do(ctx, http.MethodDelete, "/pokemons/"+strconv.Itoa(id), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, body, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, body, dest any) error {
	reqURL := c.baseURL.ResolveReference(rel)

	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalizeError(resp)
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// normalizeError extracts the human-readable message from an error
// response body, falling back to the status text.
func normalizeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Error string `json:"error"`
	}
	if raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); err == nil {
		_ = json.Unmarshal(raw, &body)
	}

	if msg := strings.TrimSpace(body.Error); msg != "" {
		apiErr.Message = msg
	} else {
		apiErr.Message = fmt.Sprintf("api returned status %d (%s)", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return apiErr
}

func parseBaseURL(baseURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(baseURL)
	if trimmed == "" {
		trimmed = defaultBaseURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", baseURL, err)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
