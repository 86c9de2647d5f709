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

package remote

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"laptudirm.com/x/maze/pkg/maze/wire"
)

// Names of the methods a referee calls on a remote player.
const (
	MethodSetup    = "setup"
	MethodTakeTurn = "take-turn"
	MethodWin      = "win"
)

// void is the response to calls without a result.
const void = "void"

var (
	ErrMethodNotRecognized = errors.New("remote: method not recognized")
	ErrMalformedArguments  = errors.New("remote: malformed arguments")
	ErrNotVoid             = errors.New(`remote: expected "void" response`)
)

// Call is a request from the referee to a player, sent over the wire as
// [method, arguments]. It is one of SetupCall, TakeTurnCall or WinCall.
type Call interface {
	Method() string
	arguments() []any
}

// SetupCall hands the player its goal. View is nil when the player is
// sent home, and is encoded as false.
type SetupCall struct {
	View *wire.State
	Goal wire.Coordinate
}

// TakeTurnCall asks the player for an action.
type TakeTurnCall struct {
	View wire.State
}

// WinCall tells the player whether it won.
type WinCall struct {
	Won bool
}

func (SetupCall) Method() string    { return MethodSetup }
func (TakeTurnCall) Method() string { return MethodTakeTurn }
func (WinCall) Method() string      { return MethodWin }

func (call SetupCall) arguments() []any {
	if call.View == nil {
		return []any{false, call.Goal}
	}

	return []any{call.View, call.Goal}
}

func (call TakeTurnCall) arguments() []any { return []any{call.View} }
func (call WinCall) arguments() []any      { return []any{call.Won} }

// EncodeCall returns the wire form of a call.
func EncodeCall(call Call) []any {
	return []any{call.Method(), call.arguments()}
}

// DecodeCall parses a [method, arguments] request.
func DecodeCall(data json.RawMessage) (Call, error) {
	var request []json.RawMessage
	if err := json.Unmarshal(data, &request); err != nil || len(request) != 2 {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotRecognized, data)
	}

	var method string
	if err := json.Unmarshal(request[0], &method); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrMethodNotRecognized, request[0])
	}

	var args []json.RawMessage
	if err := json.Unmarshal(request[1], &args); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedArguments, method, err)
	}

	call, err := decodeArguments(method, args)
	if err != nil && !errors.Is(err, ErrMethodNotRecognized) {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedArguments, method, err)
	}

	return call, err
}

func decodeArguments(method string, args []json.RawMessage) (Call, error) {
	arity := map[string]int{MethodSetup: 2, MethodTakeTurn: 1, MethodWin: 1}
	if n, found := arity[method]; !found {
		return nil, fmt.Errorf("%w: %q", ErrMethodNotRecognized, method)
	} else if len(args) != n {
		return nil, fmt.Errorf("%d arguments, want %d", len(args), n)
	}

	switch method {
	case MethodSetup:
		var call SetupCall
		if !bytes.Equal(bytes.TrimSpace(args[0]), []byte("false")) {
			call.View = new(wire.State)
			if err := strict(args[0], call.View); err != nil {
				return nil, err
			}
		}

		err := strict(args[1], &call.Goal)
		return call, err

	case MethodTakeTurn:
		var call TakeTurnCall
		err := strict(args[0], &call.View)
		return call, err

	default:
		var call WinCall
		err := strict(args[0], &call.Won)
		return call, err
	}
}

// strict decodes an object rejecting unknown fields, so that arguments
// of the wrong kind do not silently decode as zero values.
func strict(data json.RawMessage, v any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.DisallowUnknownFields()
	return decoder.Decode(v)
}
