package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bcspragu/Hangman/dict"
	"github.com/bcspragu/Hangman/freq"
	"github.com/bcspragu/Hangman/hangman"
	"github.com/bcspragu/Hangman/memdb"
	"github.com/bcspragu/Hangman/scoreboard"
	"github.com/bcspragu/Hangman/sim"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/websocket"
)

func TestBasicallyEverything(t *testing.T) {
	env := setup(t)
	alice := env.newUser(t)
	bob := env.newUser(t)

	// Letter frequency alone runs out of lives on apple, the dictionary solver
	// knows the word.
	run := env.createRun(t, alice, createRunRequest{Word: "Apple"})
	if run.ID != "run_0" {
		t.Errorf("run ID = %q, want run_0", run.ID)
	}
	if run.Word != "apple" || run.MaxLives != hangman.DefaultMaxLives {
		t.Errorf("run = %q with %d lives, want apple with %d", run.Word, run.MaxLives, hangman.DefaultMaxLives)
	}
	gotOutcomes := outcomes(run.Results)
	wantOutcomes := map[hangman.SolverID]hangman.Outcome{
		"freq": hangman.OutcomeLost,
		"dict": hangman.OutcomeWon,
	}
	if diff := cmp.Diff(wantOutcomes, gotOutcomes); diff != "" {
		t.Errorf("unexpected outcomes (-want +got)\n%s", diff)
	}
	if got := run.Results[0].Guesses; got != "etaoinsh" {
		t.Errorf("freq guessed %q, want %q", got, "etaoinsh")
	}

	env.createRun(t, bob, createRunRequest{Word: "kiwi", MaxLives: 20})

	// Each session only sees its own runs.
	var aliceRuns []*hangman.Run
	env.get(t, alice, "/api/runs", &aliceRuns)
	if len(aliceRuns) != 1 || aliceRuns[0].ID != "run_0" {
		t.Errorf("alice's runs = %+v, want just run_0", aliceRuns)
	}

	var bobRun hangman.Run
	env.get(t, alice, "/api/run/run_1", &bobRun)
	if bobRun.Word != "kiwi" || bobRun.MaxLives != 20 {
		t.Errorf("run_1 = %q with %d lives, want kiwi with 20", bobRun.Word, bobRun.MaxLives)
	}

	var standings []*scoreboard.Standing
	env.get(t, bob, "/api/scoreboard", &standings)
	if len(standings) != 2 {
		t.Fatalf("got %d standings, want 2", len(standings))
	}
	if standings[0].SolverID != "dict" || standings[0].Wins != 2 || standings[0].Games != 2 {
		t.Errorf("unexpected leader %+v", standings[0])
	}
}

func TestCreateRunErrors(t *testing.T) {
	env := setup(t)
	c := env.newUser(t)

	tests := []struct {
		desc string
		body string
		want int
	}{
		{"not json", "{", http.StatusBadRequest},
		{"bad word", `{"word": "r2d2"}`, http.StatusBadRequest},
		{"bad lives", `{"word": "kiwi", "max_lives": -1}`, http.StatusBadRequest},
	}
	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			resp, err := c.Post(env.srv.URL+"/api/run", "application/json", strings.NewReader(test.body))
			if err != nil {
				t.Fatalf("Post: %v", err)
			}
			resp.Body.Close()
			if resp.StatusCode != test.want {
				t.Errorf("status = %d, want %d", resp.StatusCode, test.want)
			}
		})
	}

	resp, err := c.Get(env.srv.URL + "/api/run/run_7")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("missing run status = %d, want %d", resp.StatusCode, http.StatusNotFound)
	}
}

func TestRandomWord(t *testing.T) {
	env := setup(t)
	c := env.newUser(t)

	run := env.createRun(t, c, createRunRequest{})
	if _, err := hangman.ParseWord(string(run.Word)); err != nil {
		t.Errorf("random run picked a bad word %q: %v", run.Word, err)
	}
}

func TestRandomWordFromCorpus(t *testing.T) {
	env := setupWithWords(t, []hangman.Word{"zephyr", "quartz"})
	c := env.newUser(t)

	for i := 0; i < 5; i++ {
		run := env.createRun(t, c, createRunRequest{})
		if run.Word != "zephyr" && run.Word != "quartz" {
			t.Errorf("random run picked %q, want a word from the server's corpus", run.Word)
		}
	}
}

func TestNewRejectsUnusableCorpus(t *testing.T) {
	_, err := New(memdb.New(), &Config{
		Players: [2]*sim.Player{
			{ID: "a", Solver: freq.New()},
			{ID: "b", Solver: freq.New()},
		},
		Rand:  rand.New(rand.NewSource(0)),
		Words: []hangman.Word{"don't", "42"},
	}, setupCookies())
	if err == nil {
		t.Error("New with no usable words should fail")
	}
}

func TestWatch(t *testing.T) {
	env := setup(t)
	c := env.newUser(t)

	u := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/api/ws"
	dialer := websocket.Dialer{Jar: c.Jar}
	ws, _, err := dialer.Dial(u, nil)
	if err != nil {
		t.Fatalf("Dial: %v", err)
	}
	defer ws.Close()
	// Give the hub a moment to register the connection.
	time.Sleep(100 * time.Millisecond)

	env.createRun(t, c, createRunRequest{Word: "dog"})

	type msg struct {
		Action   string `json:"action"`
		SolverID string `json:"solver_id"`
		Letter   string `json:"letter"`
		Word     string `json:"word"`
	}
	var actions []string
	for {
		ws.SetReadDeadline(time.Now().Add(5 * time.Second))
		var m msg
		if err := ws.ReadJSON(&m); err != nil {
			t.Fatalf("ReadJSON: %v", err)
		}
		if m.Action == ActionGuess && m.Word != "dog" {
			t.Errorf("guess for word %q, want dog", m.Word)
		}
		if len(actions) == 0 || actions[len(actions)-1] != m.Action {
			actions = append(actions, m.Action)
		}
		if m.Action == ActionRunComplete {
			break
		}
	}

	want := []string{ActionGuess, ActionGameEnd, ActionGuess, ActionGameEnd, ActionRunComplete}
	if diff := cmp.Diff(want, actions); diff != "" {
		t.Errorf("unexpected message sequence (-want +got)\n%s", diff)
	}
}

func TestWatchRequiresSession(t *testing.T) {
	env := setup(t)

	u := "ws" + strings.TrimPrefix(env.srv.URL, "http") + "/api/ws"
	_, resp, err := websocket.DefaultDialer.Dial(u, nil)
	if err == nil {
		t.Fatal("Dial without a session should fail")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("resp = %+v, want a 401", resp)
	}
}

func TestWithAction(t *testing.T) {
	dat, err := json.Marshal(&GuessMsg{
		Word: "dog",
		Event: &sim.Event{
			SolverID:       "freq",
			Letter:         "e",
			Pattern:        "---",
			LivesRemaining: 5,
			Status:         hangman.InProgress,
		},
	})
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(dat, &got); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	want := map[string]interface{}{
		"action":          "GUESS",
		"word":            "dog",
		"solver_id":       "freq",
		"letter":          "e",
		"hit":             false,
		"pattern":         "---",
		"lives_remaining": float64(5),
		"status":          string(hangman.InProgress),
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("unexpected message (-want +got)\n%s", diff)
	}
}

func outcomes(rs hangman.Report) map[hangman.SolverID]hangman.Outcome {
	out := make(map[hangman.SolverID]hangman.Outcome)
	for _, r := range rs {
		out[r.SolverID] = r.Outcome
	}
	return out
}

type testEnv struct {
	db  *memdb.DB
	srv *httptest.Server
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	return setupWithWords(t, nil)
}

func setupWithWords(t *testing.T, words []hangman.Word) *testEnv {
	t.Helper()
	d, err := dict.FromStrings(hangman.Words)
	if err != nil {
		t.Fatalf("FromStrings: %v", err)
	}

	db := memdb.New()
	s, err := New(db, &Config{
		Players: [2]*sim.Player{
			{ID: "freq", Solver: freq.New()},
			{ID: "dict", Solver: dict.NewSolver(d, nil)},
		},
		Rand:  rand.New(rand.NewSource(0)),
		Words: words,
	}, setupCookies())
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	srv := httptest.NewServer(s)
	t.Cleanup(srv.Close)
	return &testEnv{db: db, srv: srv}
}

// newUser returns an HTTP client with its own session.
func (env *testEnv) newUser(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	c := &http.Client{Jar: jar}

	resp, err := c.Post(env.srv.URL+"/api/session", "application/json", nil)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create session status = %d", resp.StatusCode)
	}
	return c
}

func (env *testEnv) createRun(t *testing.T, c *http.Client, req createRunRequest) *hangman.Run {
	t.Helper()
	resp, err := c.Post(env.srv.URL+"/api/run", "application/json", toBody(t, req))
	if err != nil {
		t.Fatalf("failed to create run: %v", err)
	}
	var run hangman.Run
	fromBody(t, resp, &run)
	return &run
}

func (env *testEnv) get(t *testing.T, c *http.Client, path string, v interface{}) {
	t.Helper()
	resp, err := c.Get(env.srv.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	fromBody(t, resp, v)
}

func toBody(t *testing.T, body interface{}) io.Reader {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		t.Fatalf("failed to encode body: %v", err)
	}
	return &buf
}

func fromBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		dat, _ := io.ReadAll(resp.Body)
		t.Fatalf("unexpected status %d: %s", resp.StatusCode, dat)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
}

func setupCookies() *securecookie.SecureCookie {
	return securecookie.New(
		[]byte{
			1, 2, 3, 4, 5, 6, 7, 8,
			9, 10, 11, 12, 13, 14, 15, 16,
			17, 18, 19, 20, 21, 22, 23, 24,
			25, 26, 27, 28, 29, 30, 31, 32,
		},
		[]byte{
			33, 34, 35, 36, 37, 38, 39, 40,
			41, 42, 43, 44, 45, 46, 47, 48,
			49, 50, 51, 52, 53, 54, 55, 56,
			57, 58, 59, 60, 61, 62, 63, 64,
		})
}

func TestConcurrentRuns(t *testing.T) {
	env := setup(t)
	c := env.newUser(t)

	words := []string{"apple", "kiwi", "zephyr", "bhaskar", "xylophone"}
	errs := make(chan error, len(words))
	for _, w := range words {
		w := w
		go func() {
			resp, err := c.Post(env.srv.URL+"/api/run", "application/json", strings.NewReader(`{"word": "`+w+`"}`))
			if err != nil {
				errs <- err
				return
			}
			resp.Body.Close()
			if resp.StatusCode != http.StatusOK {
				errs <- fmt.Errorf("run for %q: status %d", w, resp.StatusCode)
				return
			}
			errs <- nil
		}()
	}
	for range words {
		if err := <-errs; err != nil {
			t.Error(err)
		}
	}

	var runs []*hangman.Run
	env.get(t, c, "/api/runs", &runs)
	if len(runs) != len(words) {
		t.Fatalf("got %d runs, want %d", len(runs), len(words))
	}
	for _, run := range runs {
		for id, o := range outcomes(run.Results) {
			if o == hangman.OutcomeDefective {
				t.Errorf("%s was defective on %q", id, run.Word)
			}
		}
		if len(run.Results) != 2 {
			t.Errorf("run for %q has %d results, want 2", run.Word, len(run.Results))
		}
	}
}
