// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: radio/message.go
// Summary: The Message singleton and its framing state machine (§3, §4.3).
// Usage: one Message per device, mutated only through its own methods
// (Start/Continue/Reset, BeginProcessing/AutoReject, SendReply/
// SendErrorReply, NextChunk/Acknowledge); guarded by a mutex the way
// the spec's msg.lock binary semaphore guards the C singleton.

package radio

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"sync"

	"github.com/firefly/hollows/internal/tlv"
)

// State is the Message singleton's position in its framing cycle.
type State int

const (
	StateReady State = iota
	StateReceiving
	StateReceived
	StateProcessing
	StateSending
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "Ready"
	case StateReceiving:
		return "Receiving"
	case StateReceived:
		return "Received"
	case StateProcessing:
		return "Processing"
	case StateSending:
		return "Sending"
	default:
		return "Unknown"
	}
}

var (
	ErrWrongState  = errors.New("radio: message not in expected state")
	ErrWrongReply  = errors.New("radio: reply id does not match pending message")
	ErrReplyTooBig = errors.New("radio: encoded reply exceeds payload capacity")
)

// Decoded holds the parsed fields of a successfully reassembled message
// (state Received/Processing).
type Decoded struct {
	ID     uint32
	Method string
	Params interface{}
}

// Message is the singleton in-flight message buffer (§3). buf[0:32) is
// the digest slot; buf[32:32+length) is the payload.
type Message struct {
	mu       sync.Mutex
	state    State
	buf      [BufferCapacity]byte
	offset   int // bytes received so far, into buf
	expected int // total envelope bytes declared by START_MESSAGE

	decoded  Decoded
	replyID  uint32 // the id sendReply/sendErrorReply must match

	sendBuf   []byte // encoded outbound payload, pending chunked transmission
	sendSent  int    // bytes of sendBuf already chunked out
	chunkSize int    // largest outbound chunk body, see SetChunkSize

	notify chan struct{} // signaled when a reply is staged for the outbound pump
}

func NewMessage() *Message {
	return &Message{state: StateReady, notify: make(chan struct{}, 1), chunkSize: defaultOutboundChunkSize}
}

// SetChunkSize overrides the largest outbound chunk body NextChunk hands
// out per call.
func (m *Message) SetChunkSize(n int) {
	if n <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chunkSize = n
}

// Notify returns the channel the outbound pump wakes on whenever a new
// reply has been staged, the Go analogue of the spec's direct task
// notification (§5).
func (m *Message) Notify() <-chan struct{} { return m.notify }

func (m *Message) signal() {
	select {
	case m.notify <- struct{}{}:
	default:
	}
}

func (m *Message) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Reset unconditionally returns the Message to Ready, abandoning any
// in-flight receive (the RESET opcode, §4.3).
func (m *Message) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resetLocked()
}

func (m *Message) resetLocked() {
	m.state = StateReady
	m.offset = 0
	m.expected = 0
	m.decoded = Decoded{}
	m.sendBuf = nil
	m.sendSent = 0
}

// Query returns the QUERY response payload reflecting current framing
// progress (§4.3: "reply includes ... current message offset/length").
func (m *Message) Query(model, serial uint32) QueryReply {
	m.mu.Lock()
	defer m.mu.Unlock()
	return QueryReply{Model: model, Serial: serial, CurrentOffset: uint32(m.offset), CurrentLength: uint32(m.expected)}
}

// Start begins a fresh receive. envelopeLen is the total digest+payload
// byte count declared by the peer.
func (m *Message) Start(envelopeLen int, chunk []byte) Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateReady {
		// §4.3 failure semantics: START while offset != 0 -> MISSING_MESSAGE;
		// any other non-Ready state (Received/Processing/Sending, or a
		// Receiving that hasn't taken its first chunk yet) rejects with
		// BUSY rather than clobbering the in-flight message.
		if m.state == StateReceiving && m.offset != 0 {
			m.resetLocked()
			return StatusMissingMessage
		}
		return StatusBusy
	}
	if envelopeLen > BufferCapacity {
		m.resetLocked()
		return StatusBufferOverrun
	}
	if len(chunk) > envelopeLen {
		m.resetLocked()
		return StatusBufferOverrun
	}

	m.state = StateReceiving
	m.expected = envelopeLen
	m.offset = 0
	copy(m.buf[:], chunk)
	m.offset = len(chunk)

	return m.checkCompleteLocked()
}

// Continue appends the next chunk at the declared offset.
func (m *Message) Continue(claimedOffset int, chunk []byte) Status {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateReceiving {
		return StatusMissingMessage
	}
	if claimedOffset != m.offset {
		m.resetLocked()
		return StatusMissingMessage
	}
	if m.offset+len(chunk) > m.expected || m.offset+len(chunk) > BufferCapacity {
		m.resetLocked()
		return StatusBufferOverrun
	}

	copy(m.buf[m.offset:], chunk)
	m.offset += len(chunk)

	return m.checkCompleteLocked()
}

// checkCompleteLocked verifies the digest and decodes the payload once
// the full envelope has arrived, transitioning Receiving -> Received.
// Must be called with m.mu held.
func (m *Message) checkCompleteLocked() Status {
	if m.offset < m.expected {
		return StatusOK
	}

	payloadLen := m.expected - DigestSize
	if payloadLen < 0 {
		m.resetLocked()
		return StatusBufferOverrun
	}

	want := m.buf[:DigestSize]
	got := sha256.Sum256(m.buf[DigestSize:m.expected])
	if !bytesEqual(want, got[:]) {
		m.resetLocked()
		return StatusBadChecksum
	}

	decodedVal, err := tlv.Decode(m.buf[DigestSize:m.expected])
	if err != nil {
		m.resetLocked()
		return StatusMissingMessage
	}
	body, ok := decodedVal.(tlv.Map)
	if !ok {
		m.resetLocked()
		return StatusMissingMessage
	}

	version, okV := tlv.GetUint32(body, "v")
	id, okID := tlv.GetUint32(body, "id")
	method, okM := tlv.GetString(body, "method")
	if !okV || version != 1 || !okID || id == 0 || !okM || len(method) == 0 || len(method) > 31 {
		m.resetLocked()
		return StatusMissingMessage
	}

	m.decoded = Decoded{ID: id, Method: method, Params: body["params"]}
	m.replyID = id
	m.state = StateReceived
	return StatusOK
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// BeginProcessing transitions Received -> Processing and returns the
// decoded request. The radio task calls it when the active panel has a
// Message handler, just before queuing the Message event for it.
func (m *Message) BeginProcessing() (Decoded, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReceived {
		return Decoded{}, fmt.Errorf("%w: want Received, have %s", ErrWrongState, m.state)
	}
	m.state = StateProcessing
	return m.decoded, nil
}

// Peek returns the decoded request without changing state. Valid only
// while State() == StateReceived.
func (m *Message) Peek() Decoded {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.decoded
}

// AutoReject is invoked by the radio task itself when no panel accepted
// the Message event; it stages {error:{code:2,message:"NOT READY"}}
// straight from Received and, once it has been fully chunked out,
// returns to Ready rather than passing through Processing (§4.3 reply
// routing, §7 application rejections).
func (m *Message) AutoReject() error {
	m.mu.Lock()
	if m.state != StateReceived {
		m.mu.Unlock()
		return ErrWrongState
	}
	replyID := m.decoded.ID
	m.mu.Unlock()

	return m.stageFromReceived(replyID, tlv.Map{
		"v":  uint64(1),
		"id": uint64(replyID),
		"error": tlv.Map{
			"code":    uint64(NotReadyCode),
			"message": NotReadyMessage,
		},
	})
}

// stageFromReceived stages a reply without requiring the Processing
// gate, used only by AutoReject.
func (m *Message) stageFromReceived(id uint32, body tlv.Map) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateReceived {
		return ErrWrongState
	}
	payload, err := tlv.Encode(body)
	if err != nil {
		return fmt.Errorf("radio: encode reply: %w", err)
	}
	digest := sha256.Sum256(payload)
	envelope := make([]byte, 0, DigestSize+len(payload))
	envelope = append(envelope, digest[:]...)
	envelope = append(envelope, payload...)

	m.sendBuf = envelope
	m.sendSent = 0
	m.state = StateSending
	m.signal()
	return nil
}

// stageReply validates and stages a success/error reply body,
// computing its digest and transitioning Processing -> Sending.
// Exactly one of SendReply/SendErrorReply succeeds per id (§8 property 8).
func (m *Message) stageReply(id uint32, body tlv.Map) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateProcessing {
		return ErrWrongState
	}
	if id != m.replyID {
		return ErrWrongReply
	}

	payload, err := tlv.Encode(body)
	if err != nil {
		return fmt.Errorf("radio: encode reply: %w", err)
	}
	if len(payload) > PayloadCapacity {
		return ErrReplyTooBig
	}

	digest := sha256.Sum256(payload)
	envelope := make([]byte, 0, DigestSize+len(payload))
	envelope = append(envelope, digest[:]...)
	envelope = append(envelope, payload...)

	m.sendBuf = envelope
	m.sendSent = 0
	m.state = StateSending
	// replyID is left as is: a second call for the same id is rejected
	// with ErrWrongState, since the Message has left Processing.
	m.signal()
	return nil
}
