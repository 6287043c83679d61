// Package aiclient implements hangman.Solver by asking a remote solver
// service, see cmd/solver-server.
package aiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/bcspragu/Hangman/hangman"
)

// GuessRequest is what gets sent to the solver service for each guess.
type GuessRequest struct {
	Pattern        string `json:"pattern"`
	Guessed        string `json:"guessed"`
	LivesRemaining int    `json:"lives_remaining"`
}

type GuessResponse struct {
	Letter string `json:"letter"`
}

type Client struct {
	secret string
	scheme string
	addr   string
	http   *http.Client
}

var _ hangman.Solver = (*Client)(nil)

// New returns a client for the solver service at addr. A zero timeout means
// requests never time out.
func New(secret, scheme, addr string, timeout time.Duration) *Client {
	return &Client{
		secret: secret,
		scheme: scheme,
		addr:   addr,
		http:   &http.Client{Timeout: timeout},
	}
}

// Guess asks the service for its next letter. Whether the letter is legal is
// left to the caller, the same as any other solver.
func (c *Client) Guess(pattern string, guessed *hangman.Guesses, livesRemaining int) (hangman.Letter, error) {
	body := &GuessRequest{
		Pattern:        pattern,
		Guessed:        guessed.String(),
		LivesRemaining: livesRemaining,
	}

	endpoint := c.scheme + "://" + c.addr + "/guess"
	req, err := http.NewRequest(http.MethodPost, endpoint, toBody(body))
	if err != nil {
		return 0, fmt.Errorf("failed to form request: %w", err)
	}
	req.Header.Set("Authorization", c.secret)
	req.Header.Set("Content-Type", "application/json")

	var resp GuessResponse
	if err := c.do(req, &resp); err != nil {
		return 0, fmt.Errorf("failed to get guess from solver service: %w", err)
	}
	if len(resp.Letter) != 1 {
		return 0, fmt.Errorf("solver service returned %q, want a single letter", resp.Letter)
	}
	// Not validated here, a bad letter is the service breaking its contract.
	return hangman.Letter(resp.Letter[0]), nil
}

func (c *Client) do(req *http.Request, resp interface{}) error {
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

func toBody(req interface{}) io.Reader {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(req); err != nil {
		return &errReader{err: err}
	}
	return &buf
}

type httpError struct {
	statusCode int
	body       string
	err        error
}

func (h *httpError) Error() string {
	if h.err != nil {
		return fmt.Sprintf("[%d] failed to handle error: %v", h.statusCode, h.err)
	}
	return fmt.Sprintf("[%d] error from server: %s", h.statusCode, h.body)
}

func handleError(resp *http.Response) error {
	dat, err := io.ReadAll(resp.Body)
	if err != nil {
		return &httpError{
			statusCode: resp.StatusCode,
			err:        fmt.Errorf("failed to read error response body: %w", err),
		}
	}

	return &httpError{
		statusCode: resp.StatusCode,
		body:       string(bytes.TrimSpace(dat)),
	}
}

type errReader struct {
	err error
}

func (e *errReader) Read(_ []byte) (int, error) {
	return 0, e.err
}
