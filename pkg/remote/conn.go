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
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

var (
	ErrReadTimeout = errors.New("remote: read i/o timeout")
	ErrClosed      = errors.New("remote: connection closed")
)

// Conn is a half-duplex stream of JSON values. Values are read by a
// background goroutine and handed out one at a time by Await.
type Conn struct {
	name string

	rwc     io.ReadWriteCloser
	encoder *json.Encoder

	values chan json.RawMessage
	done   chan struct{}
	once   sync.Once

	// set before values is closed
	err error
}

// NewConn starts reading JSON values from rwc. name is only used for
// logging.
func NewConn(name string, rwc io.ReadWriteCloser) *Conn {
	conn := &Conn{
		name:    name,
		rwc:     rwc,
		encoder: json.NewEncoder(rwc),
		values:  make(chan json.RawMessage),
		done:    make(chan struct{}),
	}

	go func() {
		defer close(conn.values)

		decoder := json.NewDecoder(rwc)
		for {
			var value json.RawMessage
			if err := decoder.Decode(&value); err != nil {
				conn.err = err
				return
			}

			logrus.Debugf("info: (%s)> %s", conn.name, value)

			select {
			case conn.values <- value:
			case <-conn.done:
				return
			}
		}
	}()

	return conn
}

// Name returns the name the connection logs with.
func (conn *Conn) Name() string {
	return conn.name
}

// Await waits for the next JSON value from the peer. A zero timeout
// waits until the value arrives, the connection breaks, or ctx is done.
func (conn *Conn) Await(ctx context.Context, timeout time.Duration) (json.RawMessage, error) {
	var expired <-chan time.Time
	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case value, ok := <-conn.values:
		if !ok {
			// reader goroutine exited: broken stream
			if conn.err == nil || errors.Is(conn.err, io.EOF) {
				return nil, ErrClosed
			}

			return nil, fmt.Errorf("%w: %v", ErrClosed, conn.err)
		}

		return value, nil

	case <-expired:
		return nil, ErrReadTimeout

	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Write sends a single JSON value to the peer.
func (conn *Conn) Write(v any) error {
	if logrus.IsLevelEnabled(logrus.DebugLevel) {
		data, _ := json.Marshal(v)
		logrus.Debugf("info: (%s)< %s", conn.name, data)
	}

	return conn.encoder.Encode(v)
}

// Close closes the underlying stream and stops the reader.
func (conn *Conn) Close() error {
	var err error
	conn.once.Do(func() {
		close(conn.done)
		err = conn.rwc.Close()
	})

	return err
}
