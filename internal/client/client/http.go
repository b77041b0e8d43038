package client

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

	"github.com/tidwall/gjson"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// HTTPClient is a Client over the server's JSON API.
type HTTPClient struct {
	baseURL  string
	adminKey string
	http     *http.Client
}

var _ Client = (*HTTPClient)(nil)

func NewHTTPClient(baseURL, adminKey string, timeout time.Duration) (*HTTPClient, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("server url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("server url: unsupported scheme %q", u.Scheme)
	}
	return &HTTPClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		adminKey: adminKey,
		http:     &http.Client{Timeout: timeout},
	}, nil
}

type requestOption func(*http.Request)

func withBearer(token string) requestOption {
	return func(r *http.Request) {
		r.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
}

func (c *HTTPClient) withAdminKey() requestOption {
	return func(r *http.Request) {
		r.Header.Set(common.AdminKeyHeaderName, c.adminKey)
	}
}

func (c *HTTPClient) do(ctx context.Context, method, path string, body any, opts ...requestOption) ([]byte, error) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, o := range opts {
		o(req)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{Status: resp.StatusCode, Detail: gjson.GetBytes(data, "detail").String()}
	}
	return data, nil
}

func (c *HTTPClient) Signup(ctx context.Context, email, nickname, password string) error {
	_, err := c.do(ctx, http.MethodPost, "/users/create/", map[string]string{
		"email":    email,
		"nickname": nickname,
		"password": password,
	})
	return err
}

func (c *HTTPClient) Confirm(ctx context.Context, id string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/email/registration/"+url.PathEscape(id), nil)
}

func (c *HTTPClient) Login(ctx context.Context, login, password string) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/users/login/", map[string]string{
		"nick_or_email": login,
		"password":      password,
	})
	if err != nil {
		return "", err
	}
	return accessToken(data)
}

func (c *HTTPClient) RefreshToken(ctx context.Context, token string) (string, error) {
	data, err := c.do(ctx, http.MethodPost, "/users/token_update/", map[string]string{
		"access_token": token,
		"token_type":   common.TokenTypeBearer,
	})
	if err != nil {
		return "", err
	}
	return accessToken(data)
}

func (c *HTTPClient) Me(ctx context.Context, token string) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/me/", nil, withBearer(token))
}

func (c *HTTPClient) ListAccounts(ctx context.Context, skip, limit int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/users/"+pageQuery(skip, limit), nil, c.withAdminKey())
}

func (c *HTTPClient) ListPending(ctx context.Context, skip, limit int) (json.RawMessage, error) {
	return c.do(ctx, http.MethodGet, "/users/unconfirmed/"+pageQuery(skip, limit), nil, c.withAdminKey())
}

func (c *HTTPClient) DeleteAccount(ctx context.Context, nickname string) error {
	_, err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(nickname), nil, c.withAdminKey())
	return err
}

// Ping checks that the server answers at all.
func (c *HTTPClient) Ping(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodGet, "/", nil)
	return err
}

func accessToken(data []byte) (string, error) {
	tok := gjson.GetBytes(data, "access_token")
	if !tok.Exists() || tok.String() == "" {
		return "", fmt.Errorf("response has no access_token")
	}
	return tok.String(), nil
}

func pageQuery(skip, limit int) string {
	q := url.Values{}
	q.Set("skip", strconv.Itoa(skip))
	q.Set("limit", strconv.Itoa(limit))
	return "?" + q.Encode()
}
