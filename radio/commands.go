// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: radio/commands.go
// Summary: The Command Queue singleton (§3): a bounded ring of
// device-initiated request/response words.
// Usage: used by the attribute layer to serialize outbound requests the
// device itself initiates, independent of the Message singleton's
// reply path.

package radio

import (
	"errors"
	"sync"

	"golang.org/x/exp/slices"
)

const commandQueueCapacity = 8

var ErrCommandQueueFull = errors.New("radio: command queue full")

// CommandWord packs either a one-byte request opcode or a
// (response opcode, status) pair, matching the spec's packed ring
// buffer entries.
type CommandWord struct {
	Opcode   Opcode
	IsReply  bool
	Status   Status
}

// CommandQueue is a small mutex-guarded ring buffer, the Go analogue of
// the spec's binary-semaphore-protected singleton.
type CommandQueue struct {
	mu     sync.Mutex
	items  [commandQueueCapacity]CommandWord
	head   int
	count  int
}

func NewCommandQueue() *CommandQueue {
	return &CommandQueue{}
}

func (q *CommandQueue) Push(w CommandWord) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == commandQueueCapacity {
		return ErrCommandQueueFull
	}
	tail := (q.head + q.count) % commandQueueCapacity
	q.items[tail] = w
	q.count++
	return nil
}

func (q *CommandQueue) Pop() (CommandWord, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == 0 {
		return CommandWord{}, false
	}
	w := q.items[q.head]
	q.head = (q.head + 1) % commandQueueCapacity
	q.count--
	return w, true
}

func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// HasPendingRequest reports whether a request (non-reply) word for
// opcode is already queued, so a caller can skip re-issuing one rather
// than filling the ring with duplicates of the same outstanding ask.
func (q *CommandQueue) HasPendingRequest(opcode Opcode) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	ordered := make([]CommandWord, q.count)
	for i := 0; i < q.count; i++ {
		ordered[i] = q.items[(q.head+i)%commandQueueCapacity]
	}
	return slices.ContainsFunc(ordered, func(w CommandWord) bool {
		return !w.IsReply && w.Opcode == opcode
	})
}
