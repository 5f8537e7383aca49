// Package server implements the remmux server: a TCP listener that runs
// one worker goroutine per connection, keeping a per-connection working
// directory and executing shell-like commands against it.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/simon/remmux/internal/proto"
)

// ConnID identifies one accepted connection for the lifetime of its
// worker.
type ConnID = uuid.UUID

// SessionTable maps connection IDs to their current working directory.
// Workers insert on accept and must remove their entry on exit; a table
// that only grows leaks an entry per disconnect.
type SessionTable struct {
	mu   sync.RWMutex
	dirs map[ConnID]string
}

func NewSessionTable() *SessionTable {
	return &SessionTable{dirs: make(map[ConnID]string)}
}

// Add inserts a fresh session and returns its ID.
func (t *SessionTable) Add(dir string) ConnID {
	id := uuid.New()
	t.mu.Lock()
	t.dirs[id] = dir
	t.mu.Unlock()
	return id
}

// Dir returns the working directory for a session.
func (t *SessionTable) Dir(id ConnID) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	dir, ok := t.dirs[id]
	return dir, ok
}

// SetDir updates the working directory for a session.
func (t *SessionTable) SetDir(id ConnID, dir string) {
	t.mu.Lock()
	t.dirs[id] = dir
	t.mu.Unlock()
}

// Remove deletes a session entry.
func (t *SessionTable) Remove(id ConnID) {
	t.mu.Lock()
	delete(t.dirs, id)
	t.mu.Unlock()
}

// Len returns the number of live sessions.
func (t *SessionTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.dirs)
}

// Server accepts connections and serves the remmux protocol.
type Server struct {
	log      *slog.Logger
	table    *SessionTable
	startDir string
	ln       net.Listener

	wg sync.WaitGroup
}

// New creates a server. New sessions start in startDir; when empty, the
// process working directory is used.
func New(log *slog.Logger, startDir string) (*Server, error) {
	if startDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("cannot determine working directory: %w", err)
		}
		startDir = wd
	}
	return &Server{
		log:      log,
		table:    NewSessionTable(),
		startDir: startDir,
	}, nil
}

// Table exposes the session table, mainly for tests.
func (s *Server) Table() *SessionTable {
	return s.table
}

// Listen binds the listener. Addr returns the bound address afterwards,
// useful with ":0".
func (s *Server) Listen(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.ln = ln
	s.log.Info("listening", "addr", ln.Addr().String())
	return nil
}

func (s *Server) Addr() string {
	if s.ln == nil {
		return ""
	}
	return s.ln.Addr().String()
}

// Serve accepts connections until the context is canceled or the
// listener fails. Each connection gets its own worker goroutine; Serve
// waits for all workers before returning.
func (s *Server) Serve(ctx context.Context) error {
	if s.ln == nil {
		return errors.New("server: Serve called before Listen")
	}

	go func() {
		<-ctx.Done()
		s.ln.Close()
	}()

	for {
		conn, err := s.ln.Accept()
		if err != nil {
			if ctx.Err() != nil {
				break
			}
			s.log.Error("accept failed", "err", err)
			continue
		}
		s.wg.Add(1)
		go s.handleConn(conn)
	}

	s.wg.Wait()
	return ctx.Err()
}

// handleConn is the per-connection worker: read one command, dispatch,
// write one response, until terminate, peer close, or a read error.
func (s *Server) handleConn(conn net.Conn) {
	defer s.wg.Done()
	defer conn.Close()

	id := s.table.Add(s.startDir)
	defer s.table.Remove(id)

	log := s.log.With("conn", id, "remote", conn.RemoteAddr().String())
	log.Debug("client connected")

	d := &dispatcher{log: log, table: s.table}
	buf := make([]byte, proto.MaxCommandLen)

	for {
		n, err := conn.Read(buf)
		if err != nil || n == 0 {
			if err != nil && !errors.Is(err, net.ErrClosed) {
				log.Debug("client disconnected", "err", err)
			} else {
				log.Debug("client disconnected")
			}
			return
		}

		cmd := proto.Classify(string(buf[:n]))
		log.Debug("received command", "kind", cmd.Kind.String(), "raw", cmd.Raw)

		response := s.safeDispatch(log, d, id, cmd)
		if _, err := conn.Write([]byte(response)); err != nil {
			log.Error("write failed", "err", err)
			return
		}

		if cmd.Kind == proto.KindTerminate {
			log.Debug("terminate received, closing connection")
			return
		}
	}
}

// safeDispatch recovers a panicking handler into an error response so a
// single bad command cannot take the worker (or the process) down.
func (s *Server) safeDispatch(log *slog.Logger, d *dispatcher, id ConnID, cmd proto.Command) (response string) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("dispatch panicked", "cmd", cmd.Raw, "panic", r)
			response = fmt.Sprintf("Error: %v", r)
		}
	}()
	return d.dispatch(id, cmd)
}
