// Package hub fans messages out to the websocket connections of a session.
package hub

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/bcspragu/Hangman/hangman"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Hub maintains the set of active connections and sends messages to them.
type Hub struct {
	// Registered connections.
	connections map[hangman.SessionID][]*connection

	// Messages to send to everyone watching a session.
	session chan *sessionMsg

	// Register requests from the connections.
	register chan *connection

	// Unregister requests from connections.
	unregister chan *connection

	// count requests, for tests and logging.
	count chan countReq
}

// New creates a new Hub and starts it in a background Go routine.
func New() *Hub {
	h := &Hub{
		session:     make(chan *sessionMsg),
		register:    make(chan *connection),
		unregister:  make(chan *connection),
		count:       make(chan countReq),
		connections: make(map[hangman.SessionID][]*connection),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case c := <-h.register:
			conns := h.connections[c.sessionID]
			h.connections[c.sessionID] = append(conns, c)
		case c := <-h.unregister:
			h.deleteConn(c)
		case m := <-h.session:
			// Copy, deleteConn modifies the slice we're iterating over.
			conns := append([]*connection(nil), h.connections[m.sessionID]...)
			for _, c := range conns {
				select {
				case c.send <- m.msg:
				default:
					log.Warn().Str("conn", c.id).Msg("Connection isn't keeping up, dropping it")
					h.deleteConn(c)
				}
			}
		case req := <-h.count:
			req.resp <- len(h.connections[req.sessionID])
		}
	}
}

func (h *Hub) deleteConn(c *connection) {
	rconns := h.connections[c.sessionID]
	for i, rconn := range rconns {
		if rconn.id == c.id {
			close(c.send)
			// Remove the connection.
			copy(rconns[i:], rconns[i+1:])
			rconns[len(rconns)-1] = nil
			rconns = rconns[:len(rconns)-1]
			if len(rconns) == 0 {
				delete(h.connections, c.sessionID)
			} else {
				h.connections[c.sessionID] = rconns
			}
			return
		}
	}
}

type sessionMsg struct {
	sessionID hangman.SessionID
	msg       []byte
}

// ToSession sends a message to every connection opened by a session. Sessions
// with no connections are fine, the message is dropped.
func (h *Hub) ToSession(sID hangman.SessionID, msg interface{}) error {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(msg); err != nil {
		return fmt.Errorf("failed to encode message: %w", err)
	}

	h.session <- &sessionMsg{
		sessionID: sID,
		msg:       buf.Bytes(),
	}

	return nil
}

type countReq struct {
	sessionID hangman.SessionID
	resp      chan int
}

// Connections returns how many connections a session has open.
func (h *Hub) Connections(sID hangman.SessionID) int {
	resp := make(chan int)
	h.count <- countReq{sessionID: sID, resp: resp}
	return <-resp
}

// Register associates a connection with the hub and a given session.
func (h *Hub) Register(ws *websocket.Conn, sID hangman.SessionID) {
	conn := &connection{
		id:        uuid.NewString(),
		h:         h,
		sessionID: sID,
		send:      make(chan []byte, 256),
		ws:        ws,
	}
	h.register <- conn
	log.Debug().Str("conn", conn.id).Str("session", string(sID)).Msg("Registered connection")
	go conn.writePump()
	go conn.readPump()
}
