// Package proto holds the wire-level constants and command classification
// shared by the remmux server and client. The protocol is plain text over
// TCP: one write is one command, one read is one response.
package proto

import "strings"

const (
	// MaxCommandLen is the largest command (in bytes) either side will
	// put on the wire in a single write.
	MaxCommandLen = 1024

	// MaxResponseLen is the client's read buffer for a single response.
	MaxResponseLen = 8192

	// ExecCaptureLen caps the combined output captured from a subprocess.
	ExecCaptureLen = 4096

	// NewFileSentinel is the server's answer to editing a file that did
	// not exist yet. An existing empty file is answered with "\n" instead,
	// so the two cases stay distinguishable on the wire.
	NewFileSentinel = "NEW_FILE"

	// Farewell is sent in response to the terminate command, after which
	// the server closes the connection.
	Farewell = "Goodbye!"
)

// Kind classifies a cleaned command line.
type Kind int

const (
	KindGeneric Kind = iota
	KindChangeDir
	KindEdit
	KindSave
	KindTerminate
)

func (k Kind) String() string {
	switch k {
	case KindChangeDir:
		return "cd"
	case KindEdit:
		return "nano"
	case KindSave:
		return "save"
	case KindTerminate:
		return "exit"
	default:
		return "generic"
	}
}

// Command is a classified command line. Arg holds the path token for
// cd/nano/save; Payload holds the file content for save; Raw is the full
// cleaned line and is what a generic command executes.
type Command struct {
	Kind    Kind
	Arg     string
	Payload string
	Raw     string
}

// Clean strips every newline, carriage return, and backspace byte from a
// raw command line before classification.
func Clean(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '\b':
			return -1
		}
		return r
	}, s)
}

// Classify parses a command line into its reserved form, or KindGeneric.
// Save commands carry their payload after the first newline and must be
// classified before Clean (Clean would eat the separator); everything
// else is classified on the cleaned line.
func Classify(line string) Command {
	if arg, payload, ok := splitSave(line); ok {
		return Command{Kind: KindSave, Arg: arg, Payload: payload, Raw: line}
	}

	cleaned := Clean(line)
	switch {
	case cleaned == "exit":
		return Command{Kind: KindTerminate, Raw: cleaned}
	case cleaned == "cd" || strings.HasPrefix(cleaned, "cd "):
		return Command{Kind: KindChangeDir, Arg: strings.TrimSpace(strings.TrimPrefix(cleaned, "cd")), Raw: cleaned}
	case strings.HasPrefix(cleaned, "nano "):
		return Command{Kind: KindEdit, Arg: strings.TrimSpace(strings.TrimPrefix(cleaned, "nano")), Raw: cleaned}
	default:
		return Command{Kind: KindGeneric, Raw: cleaned}
	}
}

// SaveCommand builds the wire form of a save command: "save <path>" on
// the first line, the file content after it.
func SaveCommand(path, content string) string {
	return "save " + path + "\n" + content
}

func splitSave(line string) (arg, payload string, ok bool) {
	if !strings.HasPrefix(line, "save ") {
		return "", "", false
	}
	rest := strings.TrimPrefix(line, "save ")
	idx := strings.IndexByte(rest, '\n')
	if idx < 0 {
		return strings.TrimSpace(rest), "", true
	}
	return strings.TrimSpace(rest[:idx]), rest[idx+1:], true
}

// IsFailure reports whether a response denotes a failed operation rather
// than ordinary output. Both sides treat the "Invalid directory" and
// "Error" substrings as non-success.
func IsFailure(response string) bool {
	return strings.Contains(response, "Invalid directory") ||
		strings.Contains(response, "Error")
}

// PathFromResponse extracts the canonical path from a successful cd
// response, which is sent as "\n" + path: the text after the last newline.
func PathFromResponse(response string) string {
	if idx := strings.LastIndexByte(response, '\n'); idx >= 0 {
		return response[idx+1:]
	}
	return response
}
