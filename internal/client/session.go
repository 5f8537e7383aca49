// Package client implements the client side of the remmux protocol: one
// TCP connection per remote session, strict one-write/one-read exchanges,
// and a cached working directory used for prompt rendering.
package client

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"sync"

	"github.com/simon/remmux/internal/proto"
)

// ErrCommandTooLong is returned before any network I/O when a command
// exceeds the protocol limit; the session stays usable.
var ErrCommandTooLong = errors.New("command too long")

// Session abstracts one remote session. Panes depend on this interface
// rather than the TCP implementation so a multiplexed transport could be
// swapped in without touching pane logic.
type Session interface {
	// Send writes one command and blocks for exactly one response.
	Send(command string) (string, error)
	// Path returns the cached working directory shown in the prompt.
	Path() string
	// SetPath updates the cached working directory.
	SetPath(path string)
	Close() error
}

// TCPSession is the standard Session over one TCP connection.
type TCPSession struct {
	log *slog.Logger

	sendMu sync.Mutex
	conn   net.Conn

	pathMu sync.Mutex
	path   string
}

var _ Session = (*TCPSession)(nil)

// Dial connects to a remmux server. The cached path starts empty; the
// caller seeds it (usually from the server handshake).
func Dial(log *slog.Logger, addr string) (*TCPSession, error) {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		log.Error("connect failed", "addr", addr, "err", err)
		return nil, fmt.Errorf("connect %s: %w", addr, err)
	}
	log.Debug("session opened", "addr", addr, "local", conn.LocalAddr().String())
	return &TCPSession{log: log, conn: conn}, nil
}

// Send writes one command and reads one response. A zero-byte read means
// the server is gone and is reported as an error; transport failures are
// fatal to the session but never to the process.
func (s *TCPSession) Send(command string) (string, error) {
	if len(command) > proto.MaxCommandLen {
		return "", fmt.Errorf("%w: %d bytes (max %d)", ErrCommandTooLong, len(command), proto.MaxCommandLen)
	}

	s.sendMu.Lock()
	defer s.sendMu.Unlock()

	if _, err := s.conn.Write([]byte(command)); err != nil {
		s.log.Error("send failed", "err", err)
		return "", fmt.Errorf("send failed: %w", err)
	}

	buf := make([]byte, proto.MaxResponseLen)
	n, err := s.conn.Read(buf)
	if err != nil {
		s.log.Error("receive failed", "err", err)
		return "", fmt.Errorf("receive failed: %w", err)
	}
	if n == 0 {
		s.log.Error("receive failed: connection closed")
		return "", errors.New("receive failed: connection closed")
	}
	return string(buf[:n]), nil
}

func (s *TCPSession) Path() string {
	s.pathMu.Lock()
	defer s.pathMu.Unlock()
	return s.path
}

func (s *TCPSession) SetPath(path string) {
	s.pathMu.Lock()
	s.path = path
	s.pathMu.Unlock()
}

func (s *TCPSession) Close() error {
	s.log.Debug("session closed")
	return s.conn.Close()
}
