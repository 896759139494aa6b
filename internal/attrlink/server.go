// Copyright © 2026 Hollows contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: internal/attrlink/server.go
// Summary: Wires the radio task's inbound/outbound frame contract to
// the simulated attribute-layer transport, plus the Logger
// characteristic's notify-on-subscribe drain (§6 "Logging").
// Usage: one Server per connection; Run blocks until the link closes.

package attrlink

import (
	"errors"
	"io"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/firefly/hollows/internal/logring"
	"github.com/firefly/hollows/radio"
)

// Server bridges one attrlink.Link pair (Content + Logger) to a
// radio.Task.
type Server struct {
	content *Link
	logger  *Link
	task    *radio.Task
	conn    *radio.Connection
	logs    *logring.Ring

	// sessionID tags every log line this Server emits so a multi-session
	// log can be split back into per-connection history.
	sessionID uuid.UUID

	loggerSubscribed atomic.Bool
}

// NewServer builds a Server over fresh content and logger links.
func NewServer(task *radio.Task, conn *radio.Connection, logs *logring.Ring) *Server {
	return &Server{
		content:   NewLink(),
		logger:    NewLink(),
		task:      task,
		conn:      conn,
		logs:      logs,
		sessionID: uuid.New(),
	}
}

// SessionID identifies this connection for log correlation across a
// multi-connection run.
func (s *Server) SessionID() uuid.UUID { return s.sessionID }

// ContentPeer and LoggerPeer expose the peer-facing ends for a
// simulated central to write/read against.
func (s *Server) ContentPeer() io.ReadWriter { return s.content.Peer }
func (s *Server) LoggerPeer() io.ReadWriter  { return s.logger.Peer }

// SetLoggerSubscribed simulates the peer's CCCD write enabling or
// disabling Logger characteristic notifications.
func (s *Server) SetLoggerSubscribed(on bool) { s.loggerSubscribed.Store(on) }

// Run serves inbound Content writes, drives the outbound indication
// pump, and drains the log ring to any Logger subscriber. It blocks
// until a read from the content link fails (for example once the link
// is closed); run it on its own goroutine.
func (s *Server) Run() {
	log.Printf("attrlink: session %s starting", s.sessionID)
	go s.task.PumpOutbound(s.sendIndication)
	go s.drainLogger()
	s.serveContent()
}

func (s *Server) serveContent() {
	for {
		payload, err := ReadFrame(s.content.Device)
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrClosedPipe) {
				log.Printf("attrlink: session %s: content read failed: %v", s.sessionID, err)
			}
			return
		}
		resp := s.task.HandleInbound(payload)
		if err := WriteDeviceFrame(s.content.Device, resp); err != nil {
			log.Printf("attrlink: session %s: content write failed: %v", s.sessionID, err)
			return
		}
	}
}

func (s *Server) sendIndication(frame []byte) error {
	if err := WriteDeviceFrame(s.content.Device, frame); err != nil {
		return err
	}
	// A net.Pipe write returns only once the peer has read the frame,
	// which stands in for the indication's acknowledgement.
	s.conn.NotifyComplete()
	return nil
}

func (s *Server) drainLogger() {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()
	for range ticker.C {
		if !s.loggerSubscribed.Load() {
			continue
		}
		for _, line := range s.logs.Drain() {
			if err := WriteDeviceFrame(s.logger.Device, []byte(line)); err != nil {
				log.Printf("attrlink: logger write failed: %v", err)
				return
			}
		}
	}
}
