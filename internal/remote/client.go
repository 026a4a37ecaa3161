// Package remote fetches the user and post collections from the upstream
// JSONPlaceholder-style REST source and normalizes them to the local schema.
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// User is a remote user record reduced to the fields the local schema keeps.
type User struct {
	ID       int32  `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Post is a remote post record. The upstream "userId" field becomes the local
// owning-user foreign key.
type Post struct {
	ID     int32  `json:"id"`
	UserID int32  `json:"userId"`
	Title  string `json:"title"`
	Body   string `json:"body"`
}

type Config struct {
	UsersURL string
	PostsURL string
}

func NewConfig(usersURL, postsURL string) *Config {
	return &Config{UsersURL: usersURL, PostsURL: postsURL}
}

type Client struct {
	logger *zap.SugaredLogger
	client *http.Client
	config *Config
}

func NewClient(logger *zap.SugaredLogger, config *Config) *Client {
	return &Client{logger: logger, client: &http.Client{}, config: config}
}

// StatusError reports a non-success HTTP status from the remote source.
type StatusError struct {
	URL    string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("remote returned status %d for %s", e.Status, e.URL)
}

// getJSON performs a single GET and decodes the response body into out.
// Transport failures, non-2xx statuses and malformed bodies each surface as
// distinct errors; none are retried.
func (c *Client) getJSON(ctx context.Context, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("couldn't build request for %s: %w", url, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("couldn't fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &StatusError{URL: url, Status: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("couldn't decode response from %s: %w", url, err)
	}

	return nil
}

func (c *Client) FetchUsers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.getJSON(ctx, c.config.UsersURL, &users); err != nil {
		return nil, err
	}
	c.logger.Infof("Fetched %d users from %s.", len(users), c.config.UsersURL)
	return users, nil
}

func (c *Client) FetchPosts(ctx context.Context) ([]Post, error) {
	var posts []Post
	if err := c.getJSON(ctx, c.config.PostsURL, &posts); err != nil {
		return nil, err
	}
	c.logger.Infof("Fetched %d posts from %s.", len(posts), c.config.PostsURL)
	return posts, nil
}

// FetchAll fetches both collections concurrently and returns them only when
// both fetches succeed. The first failure cancels the other fetch and fails
// the whole call; no partial pair is ever returned.
func (c *Client) FetchAll(ctx context.Context) ([]User, []Post, error) {
	var (
		users []User
		posts []Post
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = c.FetchUsers(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		posts, err = c.FetchPosts(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return users, posts, nil
}
