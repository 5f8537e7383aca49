package proto

import "testing"

func TestClean(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{"trailing newline", "ls -la\n", "ls -la"},
		{"crlf", "pwd\r\n", "pwd"},
		{"backspaces", "ls\b\bpwd", "lspwd"},
		{"embedded newline", "echo a\necho b", "echo aecho b"},
		{"clean already", "whoami", "whoami"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clean(tt.input); got != tt.expect {
				t.Errorf("Clean(%q) = %q, want %q", tt.input, got, tt.expect)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		kind    Kind
		arg     string
		payload string
	}{
		{"exit", "exit\n", KindTerminate, "", ""},
		{"bare cd", "cd", KindChangeDir, "", ""},
		{"cd with path", "cd /tmp\n", KindChangeDir, "/tmp", ""},
		{"cd dotdot", "cd ..", KindChangeDir, "..", ""},
		{"cd tilde", "cd ~/src", KindChangeDir, "~/src", ""},
		{"nano", "nano notes.txt", KindEdit, "notes.txt", ""},
		{"save with payload", "save notes.txt\nhello\nworld\n", KindSave, "notes.txt", "hello\nworld\n"},
		{"save empty payload", "save notes.txt\n", KindSave, "notes.txt", ""},
		{"generic", "ls -la", KindGeneric, "", ""},
		{"cd prefix of word", "cdecho", KindGeneric, "", ""},
		{"nano needs arg", "nano", KindGeneric, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := Classify(tt.input)
			if cmd.Kind != tt.kind {
				t.Fatalf("Classify(%q).Kind = %v, want %v", tt.input, cmd.Kind, tt.kind)
			}
			if cmd.Arg != tt.arg {
				t.Errorf("Arg = %q, want %q", cmd.Arg, tt.arg)
			}
			if cmd.Payload != tt.payload {
				t.Errorf("Payload = %q, want %q", cmd.Payload, tt.payload)
			}
		})
	}
}

func TestSaveCommandRoundTrip(t *testing.T) {
	wire := SaveCommand("a/b.txt", "line1\nline2\n")
	cmd := Classify(wire)
	if cmd.Kind != KindSave {
		t.Fatalf("Kind = %v, want KindSave", cmd.Kind)
	}
	if cmd.Arg != "a/b.txt" {
		t.Errorf("Arg = %q", cmd.Arg)
	}
	if cmd.Payload != "line1\nline2\n" {
		t.Errorf("Payload = %q", cmd.Payload)
	}
}

func TestIsFailure(t *testing.T) {
	if !IsFailure("Invalid directory: /nope") {
		t.Error("Invalid directory should be a failure")
	}
	if !IsFailure("Error: sudo commands are not allowed") {
		t.Error("Error responses should be failures")
	}
	if IsFailure("\n/home/u") {
		t.Error("cd success should not be a failure")
	}
}

func TestPathFromResponse(t *testing.T) {
	if got := PathFromResponse("\n/home/u"); got != "/home/u" {
		t.Errorf("got %q", got)
	}
	if got := PathFromResponse("junk\nmore\n/srv"); got != "/srv" {
		t.Errorf("got %q", got)
	}
}
