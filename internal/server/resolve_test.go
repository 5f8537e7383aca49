package server

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

// canon mirrors what Resolve does to its result so expectations survive
// symlinked temp dirs (e.g. /tmp -> /private/tmp).
func canon(t *testing.T, p string) string {
	t.Helper()
	c, err := filepath.EvalSymlinks(p)
	if err != nil {
		t.Fatalf("EvalSymlinks(%q): %v", p, err)
	}
	return c
}

func TestResolve(t *testing.T) {
	base := t.TempDir()
	sub := filepath.Join(base, "sub")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		name   string
		raw    string
		base   string
		expect string
	}{
		{"empty goes home", "", base, canon(t, home)},
		{"tilde goes home", "~", base, canon(t, home)},
		{"dot is base", ".", base, canon(t, base)},
		{"dotdot is parent", "..", sub, canon(t, base)},
		{"absolute", sub, base, canon(t, sub)},
		{"relative joins base", "sub", base, canon(t, sub)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.raw, tt.base)
			if err != nil {
				t.Fatalf("Resolve(%q, %q): %v", tt.raw, tt.base, err)
			}
			if got != tt.expect {
				t.Errorf("Resolve(%q, %q) = %q, want %q", tt.raw, tt.base, got, tt.expect)
			}
		})
	}
}

func TestResolveDotIdempotent(t *testing.T) {
	base := canon(t, t.TempDir())
	got, err := Resolve(".", base)
	if err != nil {
		t.Fatal(err)
	}
	again, err := Resolve(".", got)
	if err != nil {
		t.Fatal(err)
	}
	if got != base || again != base {
		t.Errorf("resolve . not idempotent: %q -> %q -> %q", base, got, again)
	}
}

func TestResolveTildeSlash(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	dir := filepath.Join(home, "work")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Resolve("~/work", "/")
	if err != nil {
		t.Fatal(err)
	}
	if got != canon(t, dir) {
		t.Errorf("Resolve(~/work) = %q, want %q", got, canon(t, dir))
	}
}

func TestResolveNonexistent(t *testing.T) {
	_, err := Resolve("no-such-dir-here", t.TempDir())
	if err == nil {
		t.Fatal("expected error for nonexistent path")
	}
}

func TestValidateDirectory(t *testing.T) {
	log := slog.New(slog.DiscardHandler)
	dir := t.TempDir()

	file := filepath.Join(dir, "f.txt")
	if err := os.WriteFile(file, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	if !validateDirectory(log, dir) {
		t.Error("existing readable directory should validate")
	}
	if validateDirectory(log, file) {
		t.Error("regular file should not validate")
	}
	if validateDirectory(log, filepath.Join(dir, "missing")) {
		t.Error("missing path should not validate")
	}
}
