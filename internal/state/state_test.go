package state

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := OpenPath(filepath.Join(t.TempDir(), "state.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAppendAndRecent(t *testing.T) {
	s := openTestStore(t)

	for _, cmd := range []string{"ls", "cd /tmp", "echo hi"} {
		if err := s.Append("127.0.0.1:8080", cmd); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Append("other:9090", "pwd"); err != nil {
		t.Fatal(err)
	}

	got, err := s.Recent("127.0.0.1:8080", 10)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"ls", "cd /tmp", "echo hi"}
	if len(got) != len(want) {
		t.Fatalf("got %d entries, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entry %d = %q, want %q (oldest first)", i, got[i], want[i])
		}
	}
}

func TestRecentLimit(t *testing.T) {
	s := openTestStore(t)

	for _, cmd := range []string{"a", "b", "c", "d"} {
		if err := s.Append("h", cmd); err != nil {
			t.Fatal(err)
		}
	}

	got, err := s.Recent("h", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != "c" || got[1] != "d" {
		t.Errorf("got %v, want last two oldest-first", got)
	}
}

func TestRecentEmpty(t *testing.T) {
	s := openTestStore(t)
	got, err := s.Recent("nowhere", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}

func TestList(t *testing.T) {
	s := openTestStore(t)
	s.Append("h1", "first")
	s.Append("h2", "second")

	entries, err := s.List(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	if entries[0].Command != "second" || entries[1].Command != "first" {
		t.Errorf("want newest first, got %+v", entries)
	}
}
