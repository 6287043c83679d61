package web

import (
	"encoding/json"
	"fmt"

	"github.com/bcspragu/Hangman/hangman"
	"github.com/bcspragu/Hangman/sim"
)

const (
	ActionGuess       = "GUESS"
	ActionGameEnd     = "GAME_END"
	ActionRunComplete = "RUN_COMPLETE"
)

// GuessMsg is sent to watchers after every guess in a run. Runs aren't
// stored until they finish, so in-progress messages are keyed by word.
type GuessMsg struct {
	Word hangman.Word `json:"word"`
	*sim.Event
}

func (m *GuessMsg) MarshalJSON() ([]byte, error) {
	type plain GuessMsg
	return withAction(ActionGuess, (*plain)(m))
}

// GameEndMsg is sent when one solver's game in a run finishes.
type GameEndMsg struct {
	Result *hangman.GameResult `json:"result"`
}

func (m *GameEndMsg) MarshalJSON() ([]byte, error) {
	type plain GameEndMsg
	return withAction(ActionGameEnd, (*plain)(m))
}

// RunCompleteMsg is sent once both games in a run are done and the run has
// been stored.
type RunCompleteMsg struct {
	Run *hangman.Run `json:"run"`
}

func (m *RunCompleteMsg) MarshalJSON() ([]byte, error) {
	type plain RunCompleteMsg
	return withAction(ActionRunComplete, (*plain)(m))
}

// withAction encodes msg, which must encode to a JSON object, with an
// additional "action" key.
func withAction(action string, msg interface{}) ([]byte, error) {
	dat, err := json.Marshal(msg)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(dat, &fields); err != nil {
		return nil, fmt.Errorf("%s message isn't an object: %w", action, err)
	}
	act, err := json.Marshal(action)
	if err != nil {
		return nil, err
	}
	fields["action"] = act
	return json.Marshal(fields)
}
