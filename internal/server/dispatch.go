package server

import (
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/simon/remmux/internal/proto"
)

// dispatcher routes classified commands to their handlers. It holds no
// state of its own; the per-connection working directory is read and
// written through the session table.
type dispatcher struct {
	log   *slog.Logger
	table *SessionTable
}

// dispatch executes one command for the given connection and returns the
// response to write back. It never returns an empty string: every
// outcome, including failures, produces a response so the client's
// one-write/one-read contract holds.
func (d *dispatcher) dispatch(id ConnID, cmd proto.Command) string {
	switch cmd.Kind {
	case proto.KindChangeDir:
		return d.changeDir(id, cmd.Arg)
	case proto.KindEdit:
		return d.editFile(id, cmd.Arg)
	case proto.KindSave:
		return d.saveFile(id, cmd.Arg, cmd.Payload)
	case proto.KindTerminate:
		return proto.Farewell
	default:
		return d.execute(id, cmd.Raw)
	}
}

func (d *dispatcher) changeDir(id ConnID, raw string) string {
	base, ok := d.table.Dir(id)
	if !ok {
		return "Error: unknown session"
	}

	target, err := Resolve(raw, base)
	if err != nil {
		d.log.Error("cd failed", "conn", id, "path", raw, "err", err)
		return "Invalid directory: " + raw
	}
	if !validateDirectory(d.log, target) {
		return "Invalid directory: " + raw
	}

	d.table.SetDir(id, target)
	d.log.Debug("changed directory", "conn", id, "dir", target)
	return "\n" + target
}

// filePath resolves a file token against the session working directory.
// Unlike cd targets the file itself need not exist yet, so this joins
// without canonicalizing.
func filePath(base, raw string) string {
	if strings.HasPrefix(raw, "/") {
		return filepath.Clean(raw)
	}
	return filepath.Join(base, raw)
}

func (d *dispatcher) editFile(id ConnID, raw string) string {
	base, _ := d.table.Dir(id)
	path := filePath(base, raw)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		f, err := os.Create(path)
		if err != nil {
			d.log.Error("cannot create file", "conn", id, "path", path, "err", err)
			return "Error: Cannot open file: " + raw
		}
		f.Close()
		d.log.Debug("created new file", "conn", id, "path", path)
		return proto.NewFileSentinel
	}

	content, err := os.ReadFile(path)
	if err != nil {
		d.log.Error("cannot read file", "conn", id, "path", path, "err", err)
		return "Error: Cannot open file: " + raw
	}
	// A zero-byte response is indistinguishable from a closed peer, so an
	// existing empty file is answered with a single newline.
	if len(content) == 0 {
		return "\n"
	}
	d.log.Debug("read file", "conn", id, "path", path, "bytes", len(content))
	return string(content)
}

func (d *dispatcher) saveFile(id ConnID, raw, content string) string {
	base, _ := d.table.Dir(id)
	path := filePath(base, raw)

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		d.log.Error("cannot write file", "conn", id, "path", path, "err", err)
		return "Error: Cannot write file: " + raw
	}
	d.log.Debug("saved file", "conn", id, "path", path, "bytes", len(content))
	return "Saved " + raw
}

// execute runs a generic command through the shell with the session's
// working directory, capturing combined stdout and stderr. There is no
// timeout: a long-running command blocks only its own connection.
func (d *dispatcher) execute(id ConnID, command string) string {
	if command == "" {
		return "Warn: Command executed but produced no output."
	}
	if strings.Contains(command, "sudo") {
		d.log.Warn("blocked sudo command", "conn", id, "cmd", command)
		return "Error: sudo commands are not allowed"
	}

	dir, _ := d.table.Dir(id)
	cmd := exec.Command("/bin/bash", "-c", command)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()

	if len(out) > proto.ExecCaptureLen {
		out = out[:proto.ExecCaptureLen]
	}

	if err != nil {
		d.log.Warn("command returned non-zero status", "conn", id, "cmd", command, "err", err)
		if len(out) == 0 {
			return "Error: Unknown command: " + command
		}
	}
	if len(out) == 0 {
		return "Warn: Command executed but produced no output."
	}
	return string(out)
}
