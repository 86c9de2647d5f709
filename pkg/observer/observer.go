// Copyright © 2024 Rak Laptudirm <rak@laptudirm.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package observer publishes the progress of a game over HTTP and
// websockets so that it can be followed from outside the referee.
package observer

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/matryer/way"
	"github.com/sirupsen/logrus"

	"laptudirm.com/x/maze/pkg/maze/state"
	"laptudirm.com/x/maze/pkg/maze/wire"
	"laptudirm.com/x/maze/pkg/referee"
)

// Message types sent to watchers.
const (
	TypeState   = "state"
	TypeOutcome = "outcome"
)

// Message is a single update sent to a watcher.
type Message struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Observer records every state of a game and serves them:
//
//	GET /state         latest state
//	GET /states/:n     n-th state, starting from 0
//	GET /outcome       outcome, once the game is over
//	GET /watch         websocket stream of every state and the outcome
type Observer struct {
	router   *way.Router
	upgrader websocket.Upgrader

	mu       sync.Mutex
	states   []json.RawMessage
	outcome  json.RawMessage
	watchers map[chan Message]bool
}

var _ referee.Observer = (*Observer)(nil)

func New() *Observer {
	observer := &Observer{
		router:   way.NewRouter(),
		watchers: make(map[chan Message]bool),
	}

	observer.router.HandleFunc("GET", "/state", observer.handleLatest)
	observer.router.HandleFunc("GET", "/states/:n", observer.handleState)
	observer.router.HandleFunc("GET", "/outcome", observer.handleOutcome)
	observer.router.HandleFunc("GET", "/watch", observer.handleWatch)
	return observer
}

func (observer *Observer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	observer.router.ServeHTTP(w, r)
}

// Observe records a new state of the game.
func (observer *Observer) Observe(s state.State) {
	data, err := json.Marshal(wire.FromState(s, nil))
	if err != nil {
		logrus.Errorf("observer: %v", err)
		return
	}

	observer.mu.Lock()
	defer observer.mu.Unlock()

	observer.states = append(observer.states, data)
	observer.broadcast(Message{Type: TypeState, Payload: data})
}

// Finish records the outcome and ends every watch stream.
func (observer *Observer) Finish(outcome referee.Outcome) {
	data, err := json.Marshal(outcome)
	if err != nil {
		logrus.Errorf("observer: %v", err)
		return
	}

	observer.mu.Lock()
	defer observer.mu.Unlock()

	observer.outcome = data
	observer.broadcast(Message{Type: TypeOutcome, Payload: data})
	for watcher := range observer.watchers {
		close(watcher)
		delete(observer.watchers, watcher)
	}
}

// broadcast sends a message to every watcher, dropping watchers that
// fall too far behind. The caller must hold mu.
func (observer *Observer) broadcast(message Message) {
	for watcher := range observer.watchers {
		select {
		case watcher <- message:
		default:
			close(watcher)
			delete(observer.watchers, watcher)
		}
	}
}

func (observer *Observer) handleLatest(w http.ResponseWriter, r *http.Request) {
	observer.mu.Lock()
	defer observer.mu.Unlock()

	if len(observer.states) == 0 {
		http.Error(w, "game has not started", http.StatusNotFound)
		return
	}

	writeJSON(w, observer.states[len(observer.states)-1])
}

func (observer *Observer) handleState(w http.ResponseWriter, r *http.Request) {
	n, err := strconv.Atoi(way.Param(r.Context(), "n"))
	if err != nil {
		http.Error(w, "bad state number", http.StatusBadRequest)
		return
	}

	observer.mu.Lock()
	defer observer.mu.Unlock()

	if n < 0 || n >= len(observer.states) {
		http.Error(w, "no such state", http.StatusNotFound)
		return
	}

	writeJSON(w, observer.states[n])
}

func (observer *Observer) handleOutcome(w http.ResponseWriter, r *http.Request) {
	observer.mu.Lock()
	defer observer.mu.Unlock()

	if observer.outcome == nil {
		http.Error(w, "game is not over", http.StatusNotFound)
		return
	}

	writeJSON(w, observer.outcome)
}

func (observer *Observer) handleWatch(w http.ResponseWriter, r *http.Request) {
	conn, err := observer.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logrus.Warnf("observer: %v", err)
		return
	}
	defer conn.Close()

	// replay the history before following the game live
	observer.mu.Lock()
	backlog := make([]Message, 0, len(observer.states)+1)
	for _, data := range observer.states {
		backlog = append(backlog, Message{Type: TypeState, Payload: data})
	}

	var live chan Message
	if observer.outcome != nil {
		backlog = append(backlog, Message{Type: TypeOutcome, Payload: observer.outcome})
	} else {
		live = make(chan Message, 64)
		observer.watchers[live] = true
	}
	observer.mu.Unlock()

	for _, message := range backlog {
		if err := conn.WriteJSON(message); err != nil {
			observer.forget(live)
			return
		}
	}

	if live == nil {
		return
	}

	for message := range live {
		if err := conn.WriteJSON(message); err != nil {
			observer.forget(live)
			return
		}
	}
}

func (observer *Observer) forget(watcher chan Message) {
	if watcher == nil {
		return
	}

	observer.mu.Lock()
	defer observer.mu.Unlock()

	if observer.watchers[watcher] {
		close(watcher)
		delete(observer.watchers, watcher)
	}
}

func writeJSON(w http.ResponseWriter, data json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}
