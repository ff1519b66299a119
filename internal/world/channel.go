// Package world provides the control channel to the running game server: a
// websocket session used to issue console commands and query block state.
package world

import (
	"errors"
	"fmt"
	"time"

	"flintmc/internal/domain"
)

// Channel is the world-control boundary the executor and scheduler drive.
// All calls are synchronous request/response; the engine issues at most one
// call at a time.
type Channel interface {
	// SendCommand fires a console command at the world. Errors are fatal
	// to the run.
	SendCommand(text string) error
	// GetBlock returns the block identifier at pos, or ok=false when the
	// position holds no block (air/unloaded).
	GetBlock(pos domain.Vec3) (block string, ok bool, err error)
	// GetBlockStateProperty returns the named block-state property at pos.
	GetBlockStateProperty(pos domain.Vec3, property string) (value string, ok bool, err error)
	// RecvChat returns the next inbound chat line, waiting up to timeout.
	// A non-positive timeout polls without blocking.
	RecvChat(timeout time.Duration) (msg string, ok bool)
	Close() error
}

// ErrConnectTimeout reports that the session did not reach the joined state
// within the connect timeout.
var ErrConnectTimeout = errors.New("world: timed out waiting to join")

// CommandError wraps a failed world-control call. It aborts the whole run,
// unlike an assertion mismatch which is scoped to one test.
type CommandError struct {
	Op  string
	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("world: %s: %v", e.Op, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
