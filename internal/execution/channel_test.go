package execution

import (
	"fmt"
	"time"

	"flintmc/internal/domain"
)

// fakeChannel is a scripted world-control channel. It keeps one ordered
// event log across commands and queries so tests can assert cross-call
// ordering.
type fakeChannel struct {
	events  []string
	sendErr error

	blockFn func(pos domain.Vec3) (string, bool, error)
	stateFn func(pos domain.Vec3, property string) (string, bool, error)

	// stale is drained by non-blocking reads, live by waiting reads.
	stale []string
	live  []string
}

func (f *fakeChannel) SendCommand(text string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.events = append(f.events, "cmd: "+text)
	return nil
}

func (f *fakeChannel) GetBlock(pos domain.Vec3) (string, bool, error) {
	f.events = append(f.events, fmt.Sprintf("query: %s", pos))
	if f.blockFn == nil {
		return "", false, nil
	}
	return f.blockFn(pos)
}

func (f *fakeChannel) GetBlockStateProperty(pos domain.Vec3, property string) (string, bool, error) {
	f.events = append(f.events, fmt.Sprintf("query: %s %s", pos, property))
	if f.stateFn == nil {
		return "", false, nil
	}
	return f.stateFn(pos, property)
}

func (f *fakeChannel) RecvChat(timeout time.Duration) (string, bool) {
	if timeout <= 0 {
		if len(f.stale) == 0 {
			return "", false
		}
		m := f.stale[0]
		f.stale = f.stale[1:]
		return m, true
	}
	if len(f.live) == 0 {
		return "", false
	}
	m := f.live[0]
	f.live = f.live[1:]
	return m, true
}

func (f *fakeChannel) Close() error { return nil }

// commands returns only the command events, in order.
func (f *fakeChannel) commands() []string {
	var cmds []string
	for _, e := range f.events {
		if len(e) > 5 && e[:5] == "cmd: " {
			cmds = append(cmds, e[5:])
		}
	}
	return cmds
}
