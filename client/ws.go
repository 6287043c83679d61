package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/bcspragu/Hangman/web"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// WSHooks are called for each message the server sends while watching. Any of
// them can be nil.
type WSHooks struct {
	OnConnect     func()
	OnGuess       func(*web.GuessMsg)
	OnGameEnd     func(*web.GameEndMsg)
	OnRunComplete func(*web.RunCompleteMsg)
}

type wsClient struct {
	conn  *websocket.Conn
	msgs  chan []byte
	done  chan struct{}
	hooks WSHooks
}

// Watch streams the progress of this session's runs until ctx is cancelled or
// the connection drops. Hooks are called one at a time, in the order messages
// arrive.
func (c *Client) Watch(ctx context.Context, hooks WSHooks) error {
	scheme := "ws"
	if c.scheme == "https" {
		scheme = "wss"
	}

	dialer := &websocket.Dialer{
		Proxy:            http.ProxyFromEnvironment,
		HandshakeTimeout: 45 * time.Second,
		Jar:              c.http.Jar,
	}
	conn, _, err := dialer.DialContext(ctx, scheme+"://"+c.addr+"/api/ws", nil)
	if err != nil {
		return fmt.Errorf("failed to connect to server: %w", err)
	}

	if hooks.OnConnect != nil {
		go hooks.OnConnect()
	}

	wsc := &wsClient{
		conn: conn,
		done: make(chan struct{}),
		// Buffered so a slow hook doesn't stall reads, hooks still run one at a
		// time.
		msgs:  make(chan []byte, 100),
		hooks: hooks,
	}

	go wsc.handleMessages()
	go func() {
		select {
		case <-ctx.Done():
			conn.Close()
		case <-wsc.done:
		}
	}()

	err = wsc.read()
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (ws *wsClient) read() error {
	defer close(ws.done)
	defer ws.conn.Close()
	for {
		messageType, message, err := ws.conn.ReadMessage()
		if err != nil {
			var ce *websocket.CloseError
			if errors.As(err, &ce) && ce.Code == websocket.CloseNormalClosure {
				return nil
			}
			return fmt.Errorf("ReadMessage: %w", err)
		}

		if messageType != websocket.TextMessage {
			continue
		}

		ws.msgs <- message
	}
}

func (ws *wsClient) handleMessages() {
	for {
		select {
		case <-ws.done:
			return
		case msg := <-ws.msgs:
			var justAction struct {
				Action string `json:"action"`
			}
			if err := json.Unmarshal(msg, &justAction); err != nil {
				log.Error().Err(err).Msg("failed to unmarshal action from server")
				continue
			}

			switch justAction.Action {
			case web.ActionGuess:
				handle(msg, ws.hooks.OnGuess)
			case web.ActionGameEnd:
				handle(msg, ws.hooks.OnGameEnd)
			case web.ActionRunComplete:
				handle(msg, ws.hooks.OnRunComplete)
			default:
				log.Warn().Str("action", justAction.Action).Msg("unknown message action")
			}
		}
	}
}

func handle[T any](dat []byte, hook func(*T)) {
	if hook == nil {
		return
	}
	var msg T
	if err := json.Unmarshal(dat, &msg); err != nil {
		log.Error().Err(err).Msgf("failed to decode %T", msg)
		return
	}
	hook(&msg)
}
