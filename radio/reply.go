// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: radio/reply.go
// Summary: sendReply/sendErrorReply and the outbound chunking pump
// (§4.3 "Reply path").
// Usage: called from a panel's Message handler (sendReply/sendErrorReply)
// and from Task's outbound loop (NextChunk/Acknowledge).

package radio

import "github.com/firefly/hollows/internal/tlv"

// SendReply builds {v:1, id:replyID, result:result} and stages it for
// transmission. It returns an error if the Message singleton isn't in
// Processing, the id doesn't match, or the encoded body is too large.
func (m *Message) SendReply(replyID uint32, result interface{}) error {
	return m.stageReply(replyID, tlv.Map{
		"v":      uint64(1),
		"id":     uint64(replyID),
		"result": result,
	})
}

// ErrorBody is the {code,message} shape nested under "error" in an
// error reply (§4.3, §7).
type ErrorBody struct {
	Code    int
	Message string
}

// SendErrorReply builds {v:1, id:replyID, error:{code,message}} and
// stages it for transmission.
func (m *Message) SendErrorReply(replyID uint32, code int, message string) error {
	return m.stageReply(replyID, tlv.Map{
		"v":  uint64(1),
		"id": uint64(replyID),
		"error": tlv.Map{
			"code":    uint64(code),
			"message": message,
		},
	})
}

// NotReadyCode/NotReadyMessage are the auto-reply sent when no panel is
// listening for a Message event (§4.3, §7, open question 3: the numeric
// code is otherwise unspecified upstream so it's preserved verbatim).
const (
	NotReadyCode    = 2
	NotReadyMessage = "NOT READY"
)

// Chunk is one outbound START_MESSAGE/CONTINUE_MESSAGE frame body,
// ready to be wrapped in the transport's opcode+body framing.
type Chunk struct {
	First  bool // true selects OpStartMessage, false OpContinueMessage
	Offset int  // only meaningful for CONTINUE frames
	Total  int  // total envelope length, only meaningful for START frames
	Data   []byte
}

// NextChunk returns the next outbound chunk of the staged reply, or
// (Chunk{}, false) once everything has been handed out. The caller must
// call Acknowledge once the transport's indication completes before
// requesting the next chunk (one pending indication at a time, §4.3/§5).
func (m *Message) NextChunk() (Chunk, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state != StateSending || m.sendSent >= len(m.sendBuf) {
		return Chunk{}, false
	}

	first := m.sendSent == 0
	end := m.sendSent + m.chunkSize
	if end > len(m.sendBuf) {
		end = len(m.sendBuf)
	}
	data := append([]byte(nil), m.sendBuf[m.sendSent:end]...)

	c := Chunk{First: first, Data: data}
	if first {
		c.Total = len(m.sendBuf)
	} else {
		c.Offset = m.sendSent
	}
	return c, true
}

// Acknowledge marks the most recently returned chunk as delivered. Once
// every byte of the staged reply has been acked, the Message returns to
// Ready (Sending -> Ready, §4.3).
func (m *Message) Acknowledge(c Chunk) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state != StateSending {
		return
	}
	m.sendSent += len(c.Data)
	if m.sendSent >= len(m.sendBuf) {
		m.resetLocked()
	}
}
