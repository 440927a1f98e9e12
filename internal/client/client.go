// ABOUTME: HTTP client for the Shopper core API
// ABOUTME: Attaches bearer tokens and classifies failures for CLI display

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/kdjuwidja/shopper-cli/internal/session"
)

// Versioned prefix for all core endpoints.
const corePrefix = "/core/v2"

// Failure classes every operation can return. ErrNotLoggedIn is raised
// locally before any network call; ErrSessionExpired means a 401 purged the
// stored token and the user must log in again.
var (
	ErrNotLoggedIn      = errors.New("not logged in - run 'shopper login' first")
	ErrSessionExpired   = errors.New("your session has expired - please log in again")
	ErrProfileNotFound  = errors.New("user profile not found")
	ErrShopListNotFound = errors.New("shop list not found")
)

// Client is the API client for the Shopper core service.
type Client struct {
	baseURL    string
	sess       session.Store
	httpClient *http.Client
}

// New creates a core API client backed by the given session store.
func New(baseURL string, sess session.Store) *Client {
	return &Client{
		baseURL: baseURL,
		sess:    sess,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// newRequest checks the token precondition and builds an authenticated
// request. A missing token fails synchronously with zero network calls.
func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	token := c.sess.AccessToken()
	if token == "" {
		return nil, ErrNotLoggedIn
	}

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	var req *http.Request
	var err error
	if reader != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+corePrefix+path, reader)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+corePrefix+path, nil)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// send issues the request and classifies the response. A 401 deletes the
// stored tokens as a side effect regardless of operation. notFound, when
// non-nil, is returned for 404 so single-resource fetches get a distinct
// message. out, when non-nil, receives the decoded 2xx body.
func (c *Client) send(req *http.Request, out any, notFound error) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(req.Context(), err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		_ = c.sess.ClearTokens()
		return ErrSessionExpired
	case resp.StatusCode == http.StatusNotFound && notFound != nil:
		return notFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return c.handleErrorResponse(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("invalid response from core API: %w", err)
		}
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if ctx.Err() == context.Canceled {
		return fmt.Errorf("request canceled")
	}
	if ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to core API at %s: %w", c.baseURL, err)
}

// handleErrorResponse parses API error bodies, falling back to the status
func (c *Client) handleErrorResponse(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return fmt.Errorf("core API returned status %d", resp.StatusCode)
	}
	return fmt.Errorf("core API error: %s", errResp.Error)
}

// FetchProfile calls GET /user. A 404 means the user has not initialized
// their profile yet and is reported distinctly. The fetched profile is
// cached in the session store for display priming.
func (c *Client) FetchProfile(ctx context.Context) (*session.Profile, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/user", nil)
	if err != nil {
		return nil, err
	}

	var profile session.Profile
	if err := c.send(req, &profile, ErrProfileNotFound); err != nil {
		return nil, err
	}

	_ = c.sess.SetProfile(&profile)
	return &profile, nil
}

// SaveProfile calls POST /user to create or update the profile.
func (c *Client) SaveProfile(ctx context.Context, nickname, postalCode string) (*session.Profile, error) {
	body := map[string]string{
		"nickname":    nickname,
		"postal_code": postalCode,
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/user", body)
	if err != nil {
		return nil, err
	}

	var profile session.Profile
	if err := c.send(req, &profile, nil); err != nil {
		return nil, err
	}

	_ = c.sess.SetProfile(&profile)
	return &profile, nil
}

// ShopLists calls GET /shoplist and normalizes each entry.
func (c *Client) ShopLists(ctx context.Context) ([]ShopList, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/shoplist", nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		ShopLists []rawShopList `json:"shoplists"`
	}
	if err := c.send(req, &body, nil); err != nil {
		return nil, err
	}

	lists := make([]ShopList, 0, len(body.ShopLists))
	for _, raw := range body.ShopLists {
		lists = append(lists, raw.normalize())
	}
	return lists, nil
}

// CreateShopList calls PUT /shoplist.
func (c *Client) CreateShopList(ctx context.Context, name string) error {
	req, err := c.newRequest(ctx, http.MethodPut, "/shoplist", map[string]string{"name": name})
	if err != nil {
		return err
	}
	return c.send(req, nil, nil)
}

// ShopList calls GET /shoplist/{id}. 404 is "shop list not found", never
// the generic failure.
func (c *Client) ShopList(ctx context.Context, id int64) (*ShopList, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/shoplist/%d", id), nil)
	if err != nil {
		return nil, err
	}

	var raw rawShopList
	if err := c.send(req, &raw, ErrShopListNotFound); err != nil {
		return nil, err
	}
	list := raw.normalize()
	return &list, nil
}

// LeaveShopList calls POST /shoplist/{id}/leave.
func (c *Client) LeaveShopList(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/shoplist/%d/leave", id), nil)
	if err != nil {
		return err
	}
	return c.send(req, nil, nil)
}

// JoinShopList calls POST /shoplist/join with a share code.
func (c *Client) JoinShopList(ctx context.Context, shareCode string) error {
	req, err := c.newRequest(ctx, http.MethodPost, "/shoplist/join", map[string]string{"share_code": shareCode})
	if err != nil {
		return err
	}
	return c.send(req, nil, nil)
}

// ShareCode calls POST /shoplist/{id}/share-code and returns the code that
// grants join access to the list.
func (c *Client) ShareCode(ctx context.Context, id int64) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/shoplist/%d/share-code", id), nil)
	if err != nil {
		return "", err
	}

	var body struct {
		ShareCode string `json:"share_code"`
	}
	if err := c.send(req, &body, ErrShopListNotFound); err != nil {
		return "", err
	}
	return body.ShareCode, nil
}

// RevokeShareCode calls POST /shoplist/{id}/share-code/revoke. Any code
// previously handed out stops granting access.
func (c *Client) RevokeShareCode(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/shoplist/%d/share-code/revoke", id), nil)
	if err != nil {
		return err
	}
	return c.send(req, nil, nil)
}

// Members calls GET /shoplist/{id}/members.
func (c *Client) Members(ctx context.Context, id int64) ([]ShopListMember, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/shoplist/%d/members", id), nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Members []ShopListMember `json:"members"`
	}
	if err := c.send(req, &body, ErrShopListNotFound); err != nil {
		return nil, err
	}
	if body.Members == nil {
		body.Members = []ShopListMember{}
	}
	return body.Members, nil
}

// AddItem calls PUT /shoplist/{id}/item.
func (c *Client) AddItem(ctx context.Context, id int64, item ItemInput) error {
	req, err := c.newRequest(ctx, http.MethodPut, fmt.Sprintf("/shoplist/%d/item", id), item)
	if err != nil {
		return err
	}
	return c.send(req, nil, nil)
}

// EditItem calls POST /shoplist/{id}/item/{itemId} with partial fields.
func (c *Client) EditItem(ctx context.Context, id, itemID int64, patch ItemPatch) error {
	req, err := c.newRequest(ctx, http.MethodPost, fmt.Sprintf("/shoplist/%d/item/%d", id, itemID), patch)
	if err != nil {
		return err
	}
	return c.send(req, nil, nil)
}

// RemoveItem calls DELETE /shoplist/{id}/item/{itemId}.
func (c *Client) RemoveItem(ctx context.Context, id, itemID int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/shoplist/%d/item/%d", id, itemID), nil)
	if err != nil {
		return err
	}
	return c.send(req, nil, nil)
}

// SearchFlyers calls GET /search/flyers?searchName= and returns the
// matching promotional listings.
func (c *Client) SearchFlyers(ctx context.Context, term string) ([]Flyer, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/search/flyers?searchName="+url.QueryEscape(term), nil)
	if err != nil {
		return nil, err
	}

	var body struct {
		Flyers []Flyer `json:"flyers"`
	}
	if err := c.send(req, &body, nil); err != nil {
		return nil, err
	}
	if body.Flyers == nil {
		body.Flyers = []Flyer{}
	}
	return body.Flyers, nil
}
