// Package client talks to the Hangman web server.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"

	"github.com/bcspragu/Hangman/hangman"
	"github.com/bcspragu/Hangman/scoreboard"
)

type Client struct {
	scheme string
	addr   string
	http   *http.Client
}

func New(scheme, addr string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %v", err)
	}

	return &Client{
		scheme: scheme,
		addr:   addr,
		http:   &http.Client{Jar: jar},
	}, nil
}

func (c *Client) url(path string) string {
	return c.scheme + "://" + c.addr + path
}

// CreateSession starts a session with the server, which is needed before
// calling Watch. CreateRun starts one implicitly.
func (c *Client) CreateSession() (hangman.SessionID, error) {
	req, err := http.NewRequest(http.MethodPost, c.url("/api/session"), nil)
	if err != nil {
		return "", fmt.Errorf("failed to form request: %w", err)
	}

	var resp struct {
		ID string `json:"id"`
	}
	if err := c.do(req, &resp); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return hangman.SessionID(resp.ID), nil
}

// CreateRun plays the server's two solvers against word, and returns once
// both games are over. An empty word has the server pick one, zero lives
// means the server's default.
func (c *Client) CreateRun(word string, maxLives int) (*hangman.Run, error) {
	body := struct {
		Word     string `json:"word"`
		MaxLives int    `json:"max_lives"`
	}{word, maxLives}

	req, err := http.NewRequest(http.MethodPost, c.url("/api/run"), toBody(body))
	if err != nil {
		return nil, fmt.Errorf("failed to form request: %w", err)
	}

	var resp hangman.Run
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to create run: %w", err)
	}
	return &resp, nil
}

func (c *Client) Run(id hangman.RunID) (*hangman.Run, error) {
	req, err := http.NewRequest(http.MethodGet, c.url("/api/run/"+string(id)), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to form request: %w", err)
	}

	var resp hangman.Run
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	return &resp, nil
}

// Runs returns the runs made by this client's session.
func (c *Client) Runs() ([]*hangman.Run, error) {
	req, err := http.NewRequest(http.MethodGet, c.url("/api/runs"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to form request: %w", err)
	}

	var resp []*hangman.Run
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to load runs: %w", err)
	}
	return resp, nil
}

func (c *Client) Scoreboard() ([]*scoreboard.Standing, error) {
	req, err := http.NewRequest(http.MethodGet, c.url("/api/scoreboard"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to form request: %w", err)
	}

	var resp []*scoreboard.Standing
	if err := c.do(req, &resp); err != nil {
		return nil, fmt.Errorf("failed to load scoreboard: %w", err)
	}
	return resp, nil
}

func (c *Client) do(req *http.Request, resp interface{}) error {
	if req.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	httpResp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer httpResp.Body.Close()
	if httpResp.StatusCode != http.StatusOK {
		return handleError(httpResp)
	}

	if resp != nil {
		if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}

	return nil
}

// HTTPError is returned when the server responds with anything but a 200.
type HTTPError struct {
	StatusCode int
	body       string
	err        error
}

func (h *HTTPError) Error() string {
	if h.err != nil {
		return fmt.Sprintf("[%d] failed to handle error: %v", h.StatusCode, h.err)
	}
	return fmt.Sprintf("[%d] error from server: %s", h.StatusCode, h.body)
}

func handleError(resp *http.Response) error {
	dat, err := io.ReadAll(resp.Body)
	if err != nil {
		return &HTTPError{
			StatusCode: resp.StatusCode,
			err:        fmt.Errorf("failed to read error response body: %w", err),
		}
	}

	return &HTTPError{
		StatusCode: resp.StatusCode,
		body:       string(bytes.TrimSpace(dat)),
	}
}

func toBody(req interface{}) io.Reader {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return &errReader{err: err}
	}
	return &buf
}

type errReader struct {
	err error
}

func (e *errReader) Read(_ []byte) (int, error) {
	return 0, e.err
}
