// Package github passes public profile lookups through to the GitHub REST
// API so browsers never need a token.
package github

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const DefaultAPIURL = "https://api.github.com"

// maxBody caps how much of an upstream response is relayed.
const maxBody = 2 << 20

var validLogin = regexp.MustCompile(`^[A-Za-z0-9](?:[A-Za-z0-9-]{0,38})$`)

// ErrInvalidUsername is returned for names GitHub could never accept.
var ErrInvalidUsername = fmt.Errorf("github: invalid username")

// Response is an upstream reply relayed verbatim.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string, hc *http.Client) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), token: token, http: hc}
}

// User fetches /users/{username}.
func (c *Client) User(ctx context.Context, username string) (Response, error) {
	return c.get(ctx, username, "", nil)
}

// Repos fetches /users/{username}/repos, most recently pushed first.
func (c *Client) Repos(ctx context.Context, username string, query url.Values) (Response, error) {
	q := url.Values{"sort": {"pushed"}, "per_page": {"30"}}
	for _, k := range []string{"sort", "per_page", "page", "type", "direction"} {
		if v := query.Get(k); v != "" {
			q.Set(k, v)
		}
	}
	return c.get(ctx, username, "/repos", q)
}

func (c *Client) get(ctx context.Context, username, suffix string, q url.Values) (Response, error) {
	if !validLogin.MatchString(username) {
		return Response{}, ErrInvalidUsername
	}

	u := c.baseURL + "/users/" + url.PathEscape(username) + suffix
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("github: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return Response{}, fmt.Errorf("github: read body: %w", err)
	}

	return Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
