// ©Hayabusa Cloud Co., Ltd. 2025. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package vsockrpc

import "sync"

// pendingMap correlates outstanding call ids to the one-shot channel their
// response will arrive on. A capacity-1 buffered channel stands in for the
// original's oneshot::Sender: exactly one send ever happens on it, and the
// send must never block even if nobody is left to receive.
type pendingMap struct {
	mu      sync.Mutex
	entries map[uint64]chan *AlignedBuffer
}

func newPendingMap() *pendingMap {
	return &pendingMap{entries: make(map[uint64]chan *AlignedBuffer)}
}

// register creates and stores a one-shot channel for id, overwriting any
// previous entry (callers are expected to pick ids that do not repeat while
// still pending).
func (m *pendingMap) register(id uint64) chan *AlignedBuffer {
	ch := make(chan *AlignedBuffer, 1)
	m.mu.Lock()
	m.entries[id] = ch
	m.mu.Unlock()
	return ch
}

// remove deletes and returns the channel registered for id, if any.
func (m *pendingMap) remove(id uint64) (chan *AlignedBuffer, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.entries[id]
	if ok {
		delete(m.entries, id)
	}
	return ch, ok
}

// len reports how many calls are currently outstanding. Intended for tests.
func (m *pendingMap) len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

// closeAll closes every still-registered channel without sending a value
// and clears the map. Called once a session loop's incoming channel closes
// (the Peer's reader has exited), so calls blocked waiting on a response
// that will now never arrive fail immediately instead of waiting out their
// full timeout.
func (m *pendingMap) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, ch := range m.entries {
		close(ch)
		delete(m.entries, id)
	}
}
