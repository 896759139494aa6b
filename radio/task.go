// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: radio/task.go
// Summary: The radio task: inbound frame dispatch, reply routing to the
// active panel, and the outbound indication pump (§4.3, §5).
// Usage: one Task per device; HandleInbound is called by the attribute
// layer for every write, PumpOutbound runs forever on the radio
// goroutine.

package radio

import (
	"encoding/binary"
	"log"
	"time"

	"github.com/firefly/hollows/panel"
)

// Task wires the Message/Connection/CommandQueue singletons to the
// panel scheduler.
type Task struct {
	msg    *Message
	conn   *Connection
	cmds   *CommandQueue
	sched  *panel.Scheduler
	model  uint32
	serial uint32
}

func NewTask(sched *panel.Scheduler, msg *Message, conn *Connection, cmds *CommandQueue, model, serial uint32) *Task {
	return &Task{sched: sched, msg: msg, conn: conn, cmds: cmds, model: model, serial: serial}
}

// HandleInbound processes one raw frame (opcode byte + body) and returns
// the response frame (status || opcode || payload) to write back. Unknown
// opcodes produce BAD_COMMAND with no state change (§4.3 failure
// semantics).
func (t *Task) HandleInbound(frame []byte) []byte {
	if len(frame) == 0 {
		return t.respond(StatusBadCommand, 0, nil)
	}
	opcode := Opcode(frame[0])
	body := frame[1:]

	switch opcode {
	case OpQuery:
		q := t.msg.Query(t.model, t.serial)
		payload := make([]byte, 16)
		binary.LittleEndian.PutUint32(payload[0:], q.Model)
		binary.LittleEndian.PutUint32(payload[4:], q.Serial)
		binary.LittleEndian.PutUint32(payload[8:], q.CurrentOffset)
		binary.LittleEndian.PutUint32(payload[12:], q.CurrentLength)
		return t.respond(StatusOK, opcode, payload)

	case OpReset:
		t.msg.Reset()
		return t.respond(StatusOK, opcode, nil)

	case OpStartMessage:
		if len(body) < 2 {
			return t.respond(StatusBadCommand, opcode, nil)
		}
		envelopeLen := int(binary.BigEndian.Uint16(body[0:2]))
		status := t.msg.Start(envelopeLen, body[2:])
		t.maybeDispatch()
		return t.respond(status, opcode, nil)

	case OpContinueMessage:
		if len(body) < 2 {
			return t.respond(StatusBadCommand, opcode, nil)
		}
		claimedOffset := int(binary.BigEndian.Uint16(body[0:2]))
		status := t.msg.Continue(claimedOffset, body[2:])
		t.maybeDispatch()
		return t.respond(status, opcode, nil)

	default:
		return t.respond(StatusBadCommand, opcode, nil)
	}
}

func (t *Task) respond(status Status, opcode Opcode, payload []byte) []byte {
	out := make([]byte, 2, 2+len(payload))
	out[0] = byte(status)
	out[1] = byte(opcode)
	return append(out, payload...)
}

// maybeDispatch emits a Message event to the active panel once the
// singleton reaches Received, auto-replying NOT READY if no panel
// claims it (§4.3 "Reply routing to panels").
func (t *Task) maybeDispatch() {
	if t.msg.State() != StateReceived {
		return
	}
	decoded := t.msg.Peek()

	if !t.sched.HasHandler(panel.KindMessage) {
		if err := t.msg.AutoReject(); err != nil {
			log.Printf("radio: auto-reject failed for id %d: %v", decoded.ID, err)
		}
		return
	}

	// Enter Processing before the event is queued, so the panel's
	// handler can reply as soon as it runs.
	if _, err := t.msg.BeginProcessing(); err != nil {
		log.Printf("radio: maybeDispatch: %v", err)
		return
	}

	accepted := t.sched.Emit(panel.Event{
		Kind: panel.KindMessage,
		Message: panel.Message{
			ID:     decoded.ID,
			Method: decoded.Method,
			Params: decoded.Params,
		},
	})

	if !accepted {
		if err := t.msg.SendErrorReply(decoded.ID, NotReadyCode, NotReadyMessage); err != nil {
			log.Printf("radio: not-ready reply failed for id %d: %v", decoded.ID, err)
		}
	}
}

// RequestCommand queues a device-initiated request opcode for the
// outbound pump to send, skipping it if one for the same opcode is
// already pending rather than piling up duplicates.
func (t *Task) RequestCommand(opcode Opcode) error {
	if t.cmds.HasPendingRequest(opcode) {
		return nil
	}
	return t.cmds.Push(CommandWord{Opcode: opcode})
}

// Sender writes one outbound frame (opcode || body) to the attribute
// layer. It must not block past the point of handing the frame to the
// transport; completion is reported asynchronously via
// Connection.NotifyComplete.
type Sender func(frame []byte) error

// PumpOutbound drains staged replies as START_MESSAGE/CONTINUE_MESSAGE
// chunks, respecting one-indication-in-flight backpressure (§4.3/§5).
// It blocks forever; run it on the radio goroutine.
func (t *Task) PumpOutbound(send Sender) {
	for {
		select {
		case <-t.msg.Notify():
		case <-time.After(1 * time.Second):
		}
		t.drainOutbound(send)
	}
}

func (t *Task) drainOutbound(send Sender) {
	t.drainCommands(send)

	for {
		if !t.conn.ClearToSend() {
			return
		}
		chunk, ok := t.msg.NextChunk()
		if !ok {
			return
		}

		var frame []byte
		if chunk.First {
			frame = make([]byte, 3, 3+len(chunk.Data))
			frame[0] = byte(OpStartMessage)
			binary.BigEndian.PutUint16(frame[1:3], uint16(chunk.Total))
		} else {
			frame = make([]byte, 3, 3+len(chunk.Data))
			frame[0] = byte(OpContinueMessage)
			binary.BigEndian.PutUint16(frame[1:3], uint16(chunk.Offset))
		}
		frame = append(frame, chunk.Data...)

		t.conn.Arm()
		if err := send(frame); err != nil {
			log.Printf("radio: outbound send failed, will retry: %v", err)
			t.conn.NotifyComplete()
			return
		}
		t.msg.Acknowledge(chunk)
	}
}

// drainCommands flushes every pending device-initiated command word as a
// one-byte (plus status, for replies) frame. These are independent of
// the Message singleton's chunked reply path and its CTS gate, since a
// device-initiated request is never more than a byte or two.
func (t *Task) drainCommands(send Sender) {
	for {
		word, ok := t.cmds.Pop()
		if !ok {
			return
		}
		frame := []byte{byte(word.Opcode)}
		if word.IsReply {
			frame = append(frame, byte(word.Status))
		}
		if err := send(frame); err != nil {
			log.Printf("radio: command send failed: %v", err)
			return
		}
	}
}
