package httperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		desc     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			desc:     "plain error",
			err:      errors.New("db exploded"),
			wantCode: http.StatusInternalServerError,
			wantMsg:  "Internal Server Error",
		},
		{
			desc:     "no message",
			err:      Forbidden("bad secret %q", "hunter2"),
			wantCode: http.StatusForbidden,
			wantMsg:  "Forbidden",
		},
		{
			desc:     "with message",
			err:      BadRequest("word %q", "a1").WithMessage("word must be letters"),
			wantCode: http.StatusBadRequest,
			wantMsg:  "word must be letters",
		},
		{
			desc:     "wrapped",
			err:      fmt.Errorf("serveRun: %w", NotFound("run_3").WithMessage("no such run")),
			wantCode: http.StatusNotFound,
			wantMsg:  "no such run",
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			code, msg := Extract(test.err)
			if code != test.wantCode {
				t.Errorf("code = %d, want %d", code, test.wantCode)
			}
			if msg != test.wantMsg {
				t.Errorf("msg = %q, want %q", msg, test.wantMsg)
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	sentinel := errors.New("sentinel")
	err := Internal("loading run: %w", sentinel)
	if !errors.Is(err, sentinel) {
		t.Errorf("errors.Is(%v, sentinel) = false, want true", err)
	}
}
