// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/danielhkuo/quickly-gallery/feed"
	"github.com/danielhkuo/quickly-gallery/models"
)

var (
	ErrHiddenQuery = errors.New("hidden entries are only listed through the admin API")
	ErrNoBody      = errors.New("asset body is nil")
)

// APIError is a non-2xx response from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.Code)
}

// Client talks to the gallery API. It implements feed.Querier,
// feed.Inserter, feed.Updater and feed.AssetStore. The admin session
// cookie is kept in its jar after Login.
type Client struct {
	base *url.URL
	http *http.Client
}

// New returns a client for the API at baseURL. A nil hc uses a default
// client with a 30s timeout.
func New(baseURL string, hc *http.Client) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("cookie jar: %w", err)
		}
		hc.Jar = jar
	}
	return &Client{base: base, http: hc}, nil
}

func (c *Client) url(path string, query url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = query.Encode()
	return u.String()
}

// do sends the request and decodes a JSON response into out when non-nil
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Code: http.StatusText(resp.StatusCode)}
		var body models.ErrorResponse
		if json.NewDecoder(resp.Body).Decode(&body) == nil {
			if body.Error != "" {
				apiErr.Code = body.Error
			}
			apiErr.Message = body.Message
		}
		return apiErr
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.url(path, nil), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path, query), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func pageQuery(limit int, before *time.Time) url.Values {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if before != nil {
		q.Set("before", before.UTC().Format(time.RFC3339Nano))
	}
	return q
}

// QueryEntries fetches one page of the public feed.
func (c *Client) QueryEntries(ctx context.Context, q feed.Query) ([]models.Entry, error) {
	if q.Hidden {
		return nil, ErrHiddenQuery
	}
	var resp models.ListEntriesResponse
	if err := c.get(ctx, "/entries", pageQuery(q.Limit, q.OlderThan), &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}

// GetEntry fetches one visible entry.
func (c *Client) GetEntry(ctx context.Context, id int64) (models.Entry, error) {
	var e models.Entry
	err := c.get(ctx, "/entries/"+strconv.FormatInt(id, 10), nil, &e)
	return e, err
}

func (c *Client) InsertEntry(ctx context.Context, d models.EntryDraft) (models.Entry, error) {
	var e models.Entry
	err := c.sendJSON(ctx, http.MethodPost, "/entries", models.CreateEntryRequest(d), &e)
	return e, err
}

// UpdateEntry sends counts to the public endpoint and the hidden flag to
// the admin endpoint, which needs a prior Login.
func (c *Client) UpdateEntry(ctx context.Context, id int64, p models.EntryPatch) error {
	if p.Empty() {
		return nil
	}
	path := "/entries/" + strconv.FormatInt(id, 10)

	if p.Stars != nil || p.Votes != nil {
		req := models.UpdateCountsRequest{}
		if p.Stars != nil {
			req.Stars = *p.Stars
		}
		if p.Votes != nil {
			req.Votes = *p.Votes
		}
		if err := c.sendJSON(ctx, http.MethodPatch, path+"/counts", req, nil); err != nil {
			return err
		}
	}

	if p.Hidden != nil {
		path = "/admin" + path + "/hidden"
		if err := c.sendJSON(ctx, http.MethodPatch, path, models.SetHiddenRequest{Hidden: *p.Hidden}, nil); err != nil {
			return err
		}
	}
	return nil
}

// PutAsset uploads body under name and returns the server's reference.
func (c *Client) PutAsset(ctx context.Context, name string, body io.Reader) (string, error) {
	if body == nil {
		return "", ErrNoBody
	}
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := mw.WriteField("name", name)
		if err == nil {
			var part io.Writer
			part, err = mw.CreateFormFile("file", name)
			if err == nil {
				_, err = io.Copy(part, body)
			}
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/assets", nil), pr)
	if err != nil {
		pr.Close()
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp models.UploadAssetResponse
	if err := c.do(req, &resp); err != nil {
		pr.Close()
		return "", err
	}
	return resp.Reference, nil
}

// Login starts an admin session and returns its expiry.
func (c *Client) Login(ctx context.Context, password string) (time.Time, error) {
	var resp models.LoginResponse
	err := c.sendJSON(ctx, http.MethodPost, "/admin/login", models.LoginRequest{Password: password}, &resp)
	return resp.ExpiresAt, err
}

func (c *Client) Logout(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/admin/logout", nil), nil)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// ListAll fetches a page of all entries, hidden included. Needs Login.
func (c *Client) ListAll(ctx context.Context, before *time.Time, limit int) ([]models.Entry, error) {
	var resp models.ListEntriesResponse
	if err := c.get(ctx, "/admin/entries", pageQuery(limit, before), &resp); err != nil {
		return nil, err
	}
	return resp.Entries, nil
}
